// Package fragment builds literal SQL text fragments for repeated idioms.
// Fragments are meant to be spliced into larger statements; values are
// interpolated as-is, so callers must only pass trusted configuration values.
package fragment

import "strings"

// Default labels for AppNameCase.
const (
	DefaultUnknownLabel      = "<unknown>"
	DefaultLabelA            = "landlord-go"
	DefaultLabelB            = "landlord-tycoon"
	DefaultTrailingSeparator = ","
)

type appNameConfig struct {
	unknownLabel string
	labelA       string
	labelB       string
	separator    string
	secondGroup  bool
}

// AppNameOption is a functional option for AppNameCase.
type AppNameOption func(*appNameConfig)

// WithUnknownLabel sets the label used in the ELSE branch.
func WithUnknownLabel(label string) AppNameOption {
	return func(c *appNameConfig) {
		c.unknownLabel = label
	}
}

// WithLabels sets the labels of the first and second group.
func WithLabels(labelA, labelB string) AppNameOption {
	return func(c *appNameConfig) {
		c.labelA = labelA
		c.labelB = labelB
	}
}

// WithTrailingSeparator sets the text appended after the alias.
// An empty separator appends nothing.
func WithTrailingSeparator(sep string) AppNameOption {
	return func(c *appNameConfig) {
		c.separator = sep
	}
}

// WithSecondGroup adds a WHEN branch for the second group.
// Without it the second group is accepted but not encoded in the output.
func WithSecondGroup() AppNameOption {
	return func(c *appNameConfig) {
		c.secondGroup = true
	}
}

// AppNameCase builds a CASE expression classifying column into a named app:
//
//	CASE WHEN game IN ('a', 'b') THEN 'landlord-go' ELSE '<unknown>' END AS app_name,
func AppNameCase(column string, groupA, groupB []string, opts ...AppNameOption) string {
	cfg := appNameConfig{
		unknownLabel: DefaultUnknownLabel,
		labelA:       DefaultLabelA,
		labelB:       DefaultLabelB,
		separator:    DefaultTrailingSeparator,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var sb strings.Builder
	sb.WriteString("CASE")
	writeWhen(&sb, column, groupA, cfg.labelA)
	if cfg.secondGroup {
		writeWhen(&sb, column, groupB, cfg.labelB)
	}
	sb.WriteString(" ELSE ")
	sb.WriteString(quote(cfg.unknownLabel))
	sb.WriteString(" END AS app_name")
	sb.WriteString(cfg.separator)
	return sb.String()
}

func writeWhen(sb *strings.Builder, column string, values []string, label string) {
	sb.WriteString(" WHEN ")
	sb.WriteString(column)
	sb.WriteString(" IN (")
	sb.WriteString(quoteList(values))
	sb.WriteString(") THEN ")
	sb.WriteString(quote(label))
}

func quote(s string) string {
	return "'" + s + "'"
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}
	return strings.Join(quoted, ", ")
}
