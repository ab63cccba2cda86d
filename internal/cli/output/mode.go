// Package output renders command results for terminals, scripts and agents.
//
// Auto mode picks styled text when stdout is a terminal and markdown
// otherwise. JSON and YAML are explicit opt-ins for machine consumers.
package output

import (
	"fmt"
	"strings"
)

// OutputMode selects how command results are rendered.
type OutputMode string //nolint:revive // output.OutputMode reads better at call sites than output.Kind

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
	ModeYAML     OutputMode = "yaml"
)

// Modes lists every accepted mode name.
var Modes = []string{
	string(ModeAuto),
	string(ModeText),
	string(ModeMarkdown),
	string(ModeJSON),
	string(ModeYAML),
}

// Mode converts a configured value into an OutputMode.
// Empty and unrecognised values fall back to ModeAuto; use ParseMode to reject them.
func Mode(s string) OutputMode {
	m, err := ParseMode(s)
	if err != nil {
		return ModeAuto
	}
	return m
}

// ParseMode validates a mode name. "md" is accepted as an alias for markdown.
func ParseMode(s string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "text":
		return ModeText, nil
	case "markdown", "md":
		return ModeMarkdown, nil
	case "json":
		return ModeJSON, nil
	case "yaml", "yml":
		return ModeYAML, nil
	default:
		return "", fmt.Errorf("invalid output mode %q (valid: %s)", s, strings.Join(Modes, ", "))
	}
}
