package model

import (
	"bytes"
	"fmt"

	"github.com/benjaminpeng/sql-audit/pkg/iohelper"
	"github.com/benjaminpeng/sql-audit/pkg/jsonutil"
)

// rawReport mirrors ScanReport with pointer fields so Decode can tell an
// absent member from a zero one.
type rawReport struct {
	TotalFiles      *int        `json:"totalFiles"`
	TotalStatements *int        `json:"totalStatements"`
	TotalViolations *int        `json:"totalViolations"`
	ErrorCount      *int        `json:"errorCount"`
	WarningCount    *int        `json:"warningCount"`
	InfoCount       *int        `json:"infoCount"`
	ScanTime        string      `json:"scanTime"`
	RepoPath        string      `json:"repoPath"`
	LimitReached    bool        `json:"limitReached"`
	Notices         []string    `json:"notices"`
	ScannedFiles    []string    `json:"scannedFiles"`
	Violations      []Violation `json:"violations"`
}

// Decode parses a scan report and applies Normalize. Counts the document
// omits are derived from its lists:
//
//   - a missing totalFiles falls back to len(scannedFiles)
//   - missing severity counts are counted from the violation list
//   - a missing totalViolations is the sum of the three counts
//
// Counts that are present are kept as declared, even when zero.
func Decode(data []byte) (*ScanReport, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}
	var raw rawReport
	if err := jsonutil.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding scan report: %w", err)
	}
	if raw.TotalFiles == nil && raw.TotalViolations == nil && raw.Violations == nil && raw.ScannedFiles == nil {
		return nil, ErrNotScanReport
	}

	r := &ScanReport{
		ScanTime:     raw.ScanTime,
		RepoPath:     raw.RepoPath,
		LimitReached: raw.LimitReached,
		Notices:      raw.Notices,
		ScannedFiles: raw.ScannedFiles,
		Violations:   raw.Violations,
	}
	r.TotalFiles = orDerived(raw.TotalFiles, len(raw.ScannedFiles))
	r.TotalStatements = orDerived(raw.TotalStatements, 0)

	c := Counts(raw.Violations)
	r.ErrorCount = orDerived(raw.ErrorCount, c.Error)
	r.WarningCount = orDerived(raw.WarningCount, c.Warning)
	r.InfoCount = orDerived(raw.InfoCount, c.Info)
	r.TotalViolations = orDerived(raw.TotalViolations, r.ErrorCount+r.WarningCount+r.InfoCount)
	return Normalize(r), nil
}

func orDerived(declared *int, derived int) int {
	if declared != nil {
		return *declared
	}
	return derived
}

// Load reads a report file written by a JSON export or a saved scan. Files
// over iohelper.LargeMaxBodySize are rejected.
func Load(path string) (*ScanReport, error) {
	data, err := iohelper.ReadFileStrict(path, iohelper.LargeMaxBodySize)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	r, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Normalize replaces nil Notices, ScannedFiles and Violations with empty
// slices in place and returns r. Counts and violations are left as they are;
// ScanTime and RepoPath stay empty when absent and renderers substitute their
// own placeholders.
func Normalize(r *ScanReport) *ScanReport {
	if r == nil {
		return &ScanReport{Notices: []string{}, ScannedFiles: []string{}, Violations: []Violation{}}
	}
	if r.Notices == nil {
		r.Notices = []string{}
	}
	if r.ScannedFiles == nil {
		r.ScannedFiles = []string{}
	}
	if r.Violations == nil {
		r.Violations = []Violation{}
	}
	return r
}
