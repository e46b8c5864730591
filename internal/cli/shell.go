package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/dispatch/internal/adapters/broadcast"
	cliadapter "github.com/example/dispatch/internal/adapters/cli"
	"github.com/example/dispatch/internal/wire"
)

// ShellCmd returns the shell command
func ShellCmd() *cobra.Command {
	var script string
	var failFast bool

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Run dispatch commands against one in-memory registry",
		Long: `Read commands line by line and run each against the same registry.
Lines use the normal command syntax without the leading "dispatch".
Blank lines and lines starting with # are ignored.

Shell built-ins:
  watch on|off   print change events as commands publish them
  exit, quit     leave the shell

Examples:
  dispatch shell
  dispatch shell --script drill.txt --fail-fast`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			interactive := script == ""
			if !interactive {
				f, err := os.Open(script)
				if err != nil {
					return fmt.Errorf("failed to open script: %w", err)
				}
				defer f.Close()
				in = f
			}

			actor, _ := cmd.Flags().GetString("as")
			sh := newShell(in, cmd.OutOrStdout(), cmd.ErrOrStderr(), wire.Hub())
			sh.actor = actor
			sh.prompt = interactive
			sh.failFast = failFast
			return sh.run()
		},
	}

	cmd.Flags().StringVar(&script, "script", "", "Read commands from a file instead of stdin")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first failing command")

	return cmd
}

// lockedWriter serializes command output with the watch goroutine.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

type shell struct {
	in       io.Reader
	out      *lockedWriter
	errOut   *lockedWriter
	hub      *broadcast.Hub
	actor    string
	prompt   bool
	failFast bool

	// newRoot builds the tree each line runs against.
	newRoot func() *cobra.Command

	stopWatch func()
}

func newShell(in io.Reader, out, errOut io.Writer, hub *broadcast.Hub) *shell {
	return &shell{
		in:      in,
		out:     &lockedWriter{w: out},
		errOut:  &lockedWriter{w: errOut},
		hub:     hub,
		newRoot: RootCmd,
	}
}

func (s *shell) run() error {
	defer s.watch(false)

	failed := 0
	scanner := bufio.NewScanner(s.in)
	for {
		if s.prompt {
			fmt.Fprint(s.out, color.New(color.FgCyan).Sprint("dispatch> "))
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args, err := splitLine(line)
		if err != nil {
			fmt.Fprintf(s.errOut, "error: %v\n", err)
			failed++
			continue
		}

		done, err := s.exec(args)
		if err != nil {
			fmt.Fprintf(s.errOut, "error: %v\n", err)
			failed++
			if s.failFast {
				return fmt.Errorf("stopped at %q: %w", line, err)
			}
		}
		if done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if failed > 0 && !s.prompt {
		return fmt.Errorf("%d command(s) failed", failed)
	}
	return nil
}

// exec runs one parsed line. done reports that the shell should exit.
func (s *shell) exec(args []string) (done bool, err error) {
	switch args[0] {
	case "exit", "quit":
		return true, nil
	case "shell":
		return false, fmt.Errorf("already in a shell")
	case "watch":
		if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
			return false, fmt.Errorf("usage: watch on|off")
		}
		s.watch(args[1] == "on")
		return false, nil
	}

	root := s.newRoot()
	if s.actor != "" {
		args = append([]string{"--as=" + s.actor}, args...)
	}
	root.SetArgs(args)
	root.SetIn(s.in)
	root.SetOut(s.out)
	root.SetErr(s.errOut)
	root.SilenceErrors = true
	root.SilenceUsage = true
	return false, root.Execute()
}

// watch starts or stops printing change events.
func (s *shell) watch(on bool) {
	if s.stopWatch != nil {
		s.stopWatch()
		s.stopWatch = nil
	}
	if !on || s.hub == nil {
		return
	}

	events, cancel := s.hub.Subscribe(broadcast.DefaultBuffer)
	droppedBefore := s.hub.Dropped()
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for ev := range events {
			fmt.Fprintln(s.out, cliadapter.FormatChange(ev))
		}
	}()
	s.stopWatch = func() {
		cancel()
		<-finished
		if n := s.hub.Dropped() - droppedBefore; n > 0 {
			fmt.Fprintf(s.errOut, "watch: %d change event(s) dropped\n", n)
		}
	}
}

// splitLine splits a shell line into arguments. Single and double quotes
// group words; a backslash escapes the next rune outside single quotes.
func splitLine(line string) ([]string, error) {
	var args []string
	var cur strings.Builder
	inArg := false
	var quote rune
	escaped := false

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inArg = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if escaped {
		return nil, fmt.Errorf("trailing backslash")
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
