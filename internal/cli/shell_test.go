package cli

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/example/dispatch/internal/wire"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []string
		wantErr bool
	}{
		{name: "plain", line: "unit create 3B alice bob", want: []string{"unit", "create", "3B", "alice", "bob"}},
		{name: "repeated spaces", line: "player  list \t --alive", want: []string{"player", "list", "--alive"}},
		{name: "double quotes", line: `player role alice "field medic"`, want: []string{"player", "role", "alice", "field medic"}},
		{name: "single quotes keep backslash", line: `x 'a\b'`, want: []string{"x", `a\b`}},
		{name: "escaped space", line: `x a\ b`, want: []string{"x", "a b"}},
		{name: "empty quoted arg", line: `unit code UNIT-001 ""`, want: []string{"unit", "code", "UNIT-001", ""}},
		{name: "unterminated", line: `x "abc`, wantErr: true},
		{name: "trailing backslash", line: `x \`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitLine(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitLine() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func runScript(t *testing.T, script string, failFast bool) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	sh := newShell(strings.NewReader(script), &out, &errOut, wire.Hub())
	sh.failFast = failFast
	err := sh.run()
	return out.String(), errOut.String(), err
}

func TestShell_Session(t *testing.T) {
	script := `
# a short drill
player create zed-captain --rank captain
player create zed-officer
watch on
unit create 3B zed-captain zed-officer
situation create fire --meta channel=TAC-1
situation attach SIT-001 UNIT-001
watch off
channel show CH-01
player show zed-officer
`
	out, errOut, err := runScript(t, script, false)
	if err != nil {
		t.Fatalf("run failed: %v\nstderr: %s", err, errOut)
	}

	for _, want := range []string{
		"✓ Created player zed-captain (captain)",
		"✓ Created unit UNIT-001 [3B] (lead) with zed-captain, zed-officer",
		"+ unit UNIT-001 [3B]",
		"✓ Created situation SIT-001 (fire)",
		"initiator=UNIT-001 commander=UNIT-001",
		"CH-01 TAC-1 busy SIT-001",
		"Unit:     UNIT-001",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestShell_ErrorsContinueUnlessFailFast(t *testing.T) {
	script := "player show nobody-here\nplayer create yara\nexit\nplayer create never-run\n"

	out, errOut, err := runScript(t, script, false)
	if err == nil {
		t.Error("expected a summary error for the failed command")
	}
	if !strings.Contains(errOut, "error:") {
		t.Errorf("expected error output, got %q", errOut)
	}
	if !strings.Contains(out, "✓ Created player yara") {
		t.Errorf("expected the shell to continue, got %q", out)
	}
	if strings.Contains(out, "never-run") {
		t.Error("commands after exit must not run")
	}

	out, _, err = runScript(t, "player show nobody-here\nplayer create yuri\n", true)
	if err == nil {
		t.Fatal("expected fail-fast error")
	}
	if strings.Contains(out, "yuri") {
		t.Error("fail-fast must stop at the first error")
	}
}

func TestShell_Builtins(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{name: "nested shell", line: "shell", want: "already in a shell"},
		{name: "bad watch", line: "watch maybe", want: "usage: watch on|off"},
		{name: "bad quote", line: `player create "oops`, want: "unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errOut, _ := runScript(t, tt.line+"\n", false)
			if !strings.Contains(errOut, tt.want) {
				t.Errorf("expected %q, got %q", tt.want, errOut)
			}
		})
	}
}

func TestShell_ActorFlagIsForwarded(t *testing.T) {
	var out, errOut bytes.Buffer
	sh := newShell(strings.NewReader("player create xavier\n"), &out, &errOut, nil)
	sh.actor = "ops-2"

	var seen []string
	sh.newRoot = func() *cobra.Command {
		root := RootCmd()
		root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
			as, _ := cmd.Flags().GetString("as")
			seen = append(seen, as)
		}
		return root
	}

	if err := sh.run(); err != nil {
		t.Fatalf("run failed: %v (%s)", err, errOut.String())
	}
	if len(seen) != 1 || seen[0] != "ops-2" {
		t.Errorf("seen actors = %v, want [ops-2]", seen)
	}
}
