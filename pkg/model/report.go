package model

import (
	"fmt"
	"strings"
)

// ScanReport is the result of one scan run.
//
// TotalViolations is expected to equal ErrorCount+WarningCount+InfoCount.
// RepoPath is empty for ad-hoc SQL script scans. LimitReached is set when
// the service capped the violation list.
type ScanReport struct {
	TotalFiles      int         `json:"totalFiles"`
	TotalStatements int         `json:"totalStatements"`
	TotalViolations int         `json:"totalViolations"`
	ErrorCount      int         `json:"errorCount"`
	WarningCount    int         `json:"warningCount"`
	InfoCount       int         `json:"infoCount"`
	ScanTime        string      `json:"scanTime,omitempty"`
	RepoPath        string      `json:"repoPath,omitempty"`
	LimitReached    bool        `json:"limitReached"`
	Notices         []string    `json:"notices"`
	ScannedFiles    []string    `json:"scannedFiles"`
	Violations      []Violation `json:"violations"`
}

// Violation is one rule breach found in one SQL fragment.
// Message is always present; the remaining text fields are optional.
type Violation struct {
	Rule        Rule        `json:"rule"`
	SQLFragment SQLFragment `json:"sqlFragment"`
	Message     string      `json:"message"`
	MatchedText string      `json:"matchedText,omitempty"`
	Suggestion  string      `json:"suggestion,omitempty"`
	ExampleSQL  string      `json:"exampleSql,omitempty"`
}

// HasExample reports whether the violation carries a rewritten statement.
func (v Violation) HasExample() bool {
	return strings.TrimSpace(v.ExampleSQL) != ""
}

// Rule is the specification a violation breaks.
type Rule struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name"`
	Severity    Severity   `json:"severity"`
	Section     string     `json:"section,omitempty"`
	Category    string     `json:"category,omitempty"`
	Source      RuleSource `json:"source,omitempty"`
	Description string     `json:"description,omitempty"`

	// Service-side matching details, carried through untouched.
	Type        string `json:"type,omitempty"`
	Pattern     string `json:"pattern,omitempty"`
	CheckerName string `json:"checkerName,omitempty"`
}

// SQLFragment is the located piece of SQL a violation refers to.
type SQLFragment struct {
	RelativePath  string `json:"relativePath"`
	StatementType string `json:"statementType"`
	StatementID   string `json:"statementId"`
	LineNumber    int    `json:"lineNumber"`
	SQLText       string `json:"sqlText"`

	FilePath  string `json:"filePath,omitempty"`
	Namespace string `json:"namespace,omitempty"`
}

// Location renders the fragment as path:line.
func (f SQLFragment) Location() string {
	return fmt.Sprintf("%s:%d", f.RelativePath, f.LineNumber)
}

// SeverityCounts tallies violations per severity.
type SeverityCounts struct {
	Error   int
	Warning int
	Info    int
}

// Total returns the sum of all known severities.
func (c SeverityCounts) Total() int {
	return c.Error + c.Warning + c.Info
}

// Counts recomputes per-severity counts from a violation list.
// Violations with an unknown severity are not counted.
func Counts(violations []Violation) SeverityCounts {
	var c SeverityCounts
	for _, v := range violations {
		switch v.Rule.Severity {
		case Error:
			c.Error++
		case Warning:
			c.Warning++
		case Info:
			c.Info++
		}
	}
	return c
}

// Consistent reports whether the declared totals add up.
func (r *ScanReport) Consistent() bool {
	return r.TotalViolations == r.ErrorCount+r.WarningCount+r.InfoCount
}

// IsSQLScan reports whether the report came from an uploaded SQL script
// rather than a repository scan.
func (r *ScanReport) IsSQLScan() bool {
	return strings.TrimSpace(r.RepoPath) == ""
}
