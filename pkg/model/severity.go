package model

import "strings"

// Severity is the level a rule assigns to its violations.
// Values are uppercase to match the analysis service wire format.
type Severity string

const (
	// Error blocks a release: the statement breaks a mandatory rule.
	Error Severity = "ERROR"

	// Warning should be fixed but does not block.
	Warning Severity = "WARNING"

	// Info is advisory only.
	Info Severity = "INFO"
)

// Severities lists every known severity, most severe first.
var Severities = []Severity{Error, Warning, Info}

// IsValid reports whether s is a recognized severity level.
func (s Severity) IsValid() bool {
	switch s {
	case Error, Warning, Info:
		return true
	}
	return false
}

// Score returns a numeric score for sorting and comparison.
// Error=3, Warning=2, Info=1, Unknown=0.
func (s Severity) Score() int {
	switch s {
	case Error:
		return 3
	case Warning:
		return 2
	case Info:
		return 1
	default:
		return 0
	}
}

// String returns the severity as a string.
func (s Severity) String() string {
	return string(s)
}

// ParseSeverity maps a case-insensitive name to a Severity.
// The second result is false for unknown names.
func ParseSeverity(name string) (Severity, bool) {
	s := Severity(strings.ToUpper(strings.TrimSpace(name)))
	return s, s.IsValid()
}

// RuleSource tells whether a rule ships with the service or was uploaded.
type RuleSource string

const (
	// SourceDefault marks built-in rules.
	SourceDefault RuleSource = "DEFAULT"

	// SourceCustom marks rules parsed from an uploaded Word document.
	SourceCustom RuleSource = "CUSTOM"
)
