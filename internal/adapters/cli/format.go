// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/ports/secondary"
)

const rule = "────────────────────────────────────────────────────────────────"

// colorStatus renders an operative status. Colors are dropped automatically
// when stdout is not a terminal.
func colorStatus(status string) string {
	switch status {
	case "leading":
		return color.New(color.FgHiMagenta).Sprint(status)
	case "on-duty":
		return color.New(color.FgGreen).Sprint(status)
	case "off-duty":
		return color.New(color.FgYellow).Sprint(status)
	default:
		return status
	}
}

// pad left-aligns s in a column of width runes, ignoring color escapes.
func pad(s, plain string, width int) string {
	if n := width - len([]rune(plain)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatPosition(p *primary.Player) string {
	if p.Sentinel {
		return "(admin)"
	}
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}

func formatMetadata(md map[string]string) string {
	if len(md) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + md[k]
	}
	return strings.Join(parts, " ")
}

// FormatChange renders one change descriptor as a single line.
func FormatChange(ev secondary.ChangeEvent) string {
	var action string
	switch ev.Action {
	case "create":
		action = color.New(color.FgGreen).Sprint("+")
	case "delete":
		action = color.New(color.FgRed).Sprint("-")
	default:
		action = color.New(color.FgCyan).Sprint("~")
	}

	line := fmt.Sprintf("%s %s %s %s", ev.At.Format("15:04:05"), action, ev.Kind, ev.EntityID)
	switch snap := ev.Snapshot.(type) {
	case *primary.Player:
		line += fmt.Sprintf(" %s %s", snap.Status, formatPosition(snap))
	case *primary.Unit:
		line += fmt.Sprintf(" [%s] members=%s", snap.Marking, strings.Join(snap.Members, ","))
	case *primary.Situation:
		line += fmt.Sprintf(" %s units=%d commander=%s", snap.Type, len(snap.Units), dash(snap.CommanderID))
	case *primary.Channel:
		line += fmt.Sprintf(" %s situation=%s", snap.Name, dash(snap.SituationID))
	}
	return line
}
