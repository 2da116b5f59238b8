package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity_IsValid(t *testing.T) {
	t.Parallel()
	for _, s := range Severities {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, Severity("CRITICAL").IsValid())
	assert.False(t, Severity("").IsValid())
}

func TestSeverity_ScoreOrdering(t *testing.T) {
	t.Parallel()
	assert.Greater(t, Error.Score(), Warning.Score())
	assert.Greater(t, Warning.Score(), Info.Score())
	assert.Equal(t, 0, Severity("bogus").Score())
}

func TestParseSeverity(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want Severity
		ok   bool
	}{
		{"error", Error, true},
		{" Warning ", Warning, true},
		{"INFO", Info, true},
		{"fatal", Severity("FATAL"), false},
	}
	for _, tt := range tests {
		got, ok := ParseSeverity(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestCounts(t *testing.T) {
	t.Parallel()
	vs := []Violation{
		{Rule: Rule{Severity: Error}},
		{Rule: Rule{Severity: Error}},
		{Rule: Rule{Severity: Warning}},
		{Rule: Rule{Severity: Info}},
		{Rule: Rule{Severity: "OTHER"}},
	}
	c := Counts(vs)
	assert.Equal(t, SeverityCounts{Error: 2, Warning: 1, Info: 1}, c)
	assert.Equal(t, 4, c.Total())
}

func TestDecode_FullReport(t *testing.T) {
	t.Parallel()
	data := []byte(`{
		"repoPath": "/srv/app",
		"scanTime": "2026-03-01T10:20:30",
		"totalFiles": 2,
		"totalStatements": 14,
		"totalViolations": 1,
		"errorCount": 1,
		"warningCount": 0,
		"infoCount": 0,
		"limitReached": false,
		"notices": ["decoded as GBK"],
		"scannedFiles": ["a/OrderMapper.xml", "a/UserMapper.xml"],
		"violations": [{
			"rule": {"id": "R1", "name": "No SELECT *", "severity": "ERROR", "section": "3.3.1", "source": "DEFAULT"},
			"sqlFragment": {"relativePath": "a/OrderMapper.xml", "statementType": "select", "statementId": "findAll", "lineNumber": 12, "sqlText": "select * from t"},
			"message": "avoid select *",
			"exampleSql": "select id from t"
		}]
	}`)

	r, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "/srv/app", r.RepoPath)
	assert.Equal(t, 14, r.TotalStatements)
	assert.Equal(t, []string{"decoded as GBK"}, r.Notices)
	require.Len(t, r.Violations, 1)
	v := r.Violations[0]
	assert.Equal(t, Error, v.Rule.Severity)
	assert.Equal(t, SourceDefault, v.Rule.Source)
	assert.Equal(t, "a/OrderMapper.xml:12", v.SQLFragment.Location())
	assert.True(t, v.HasExample())
	assert.True(t, r.Consistent())
	assert.False(t, r.IsSQLScan())
}

func TestDecode_AbsentFieldDefaults(t *testing.T) {
	t.Parallel()
	r, err := Decode([]byte(`{"scannedFiles": ["x.sql"], "violations": [
		{"rule": {"name": "n", "severity": "WARNING"}, "sqlFragment": {"relativePath": "x.sql"}, "message": "m"},
		{"rule": {"name": "n", "severity": "INFO"}, "sqlFragment": {"relativePath": "x.sql"}, "message": "m"}
	]}`))
	require.NoError(t, err)
	assert.Equal(t, 1, r.TotalFiles)
	assert.Equal(t, 2, r.TotalViolations)
	assert.Equal(t, 1, r.WarningCount)
	assert.Equal(t, 1, r.InfoCount)
	assert.Empty(t, r.ScanTime)
	assert.NotNil(t, r.Notices)
	assert.True(t, r.IsSQLScan())
}

func TestDecode_KeepsDeclaredZeroCounts(t *testing.T) {
	t.Parallel()
	r, err := Decode([]byte(`{"totalFiles": 0, "totalViolations": 0, "errorCount": 0,
		"scannedFiles": ["a.xml"], "violations": [
		{"rule": {"name": "n", "severity": "ERROR"}, "sqlFragment": {"relativePath": "a.xml"}, "message": "m"}
	]}`))
	require.NoError(t, err)
	assert.Equal(t, 0, r.TotalFiles)
	assert.Equal(t, 0, r.TotalViolations)
	assert.Equal(t, 0, r.ErrorCount)
	assert.Len(t, r.Violations, 1)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()
	_, err := Decode([]byte("  "))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = Decode([]byte(`{"target": "https://example.com"}`))
	assert.ErrorIs(t, err, ErrNotScanReport)

	_, err = Decode([]byte(`{"totalFiles": "many"}`))
	assert.Error(t, err)
}

func TestNormalize_NilReport(t *testing.T) {
	t.Parallel()
	r := Normalize(nil)
	require.NotNil(t, r)
	assert.Empty(t, r.Violations)
	assert.NotNil(t, r.ScannedFiles)
}

func TestNormalize_KeepsDeclaredCounts(t *testing.T) {
	t.Parallel()
	r := Normalize(&ScanReport{
		TotalViolations: 1000,
		ErrorCount:      1000,
		LimitReached:    true,
		Violations:      []Violation{{Rule: Rule{Severity: Warning}}},
	})
	assert.Equal(t, 1000, r.TotalViolations)
	assert.Equal(t, 1000, r.ErrorCount)
	assert.Equal(t, 0, r.WarningCount)
}

func TestNormalize_LeavesCountsAlone(t *testing.T) {
	t.Parallel()
	r := Normalize(&ScanReport{
		ScannedFiles: []string{"a.xml"},
		Violations:   []Violation{{Rule: Rule{Severity: Error}}},
	})
	assert.Equal(t, 0, r.TotalFiles)
	assert.Equal(t, 0, r.TotalViolations)
	assert.Equal(t, 0, r.ErrorCount)
	assert.NotNil(t, r.Notices)
}

func TestLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"totalFiles": 0, "totalViolations": 0}`), 0o644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, r.TotalViolations)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
