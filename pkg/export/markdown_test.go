package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminpeng/sql-audit/pkg/model"
)

func sampleReport() *model.ScanReport {
	return &model.ScanReport{
		TotalFiles:      2,
		TotalStatements: 5,
		TotalViolations: 2,
		ErrorCount:      1,
		WarningCount:    1,
		ScanTime:        "2026-01-02T03:04:05",
		RepoPath:        "/repo",
		ScannedFiles:    []string{"a.xml", "b`x.xml"},
		Violations: []model.Violation{
			{
				Rule: model.Rule{ID: "R1", Name: "No SELECT *", Severity: model.Error, Section: "3.1"},
				SQLFragment: model.SQLFragment{
					RelativePath: "a.xml", StatementType: "select", StatementID: "findAll", LineNumber: 12,
				},
				Message:     "avoid select *",
				Suggestion:  "list columns",
				ExampleSQL:  "SELECT id FROM t",
				MatchedText: "SELECT\n*",
			},
			{
				Rule:        model.Rule{Severity: model.Warning},
				SQLFragment: model.SQLFragment{StatementID: " ", LineNumber: 3},
				Message:     "m`x",
			},
		},
	}
}

func TestToMarkdown_Golden(t *testing.T) {
	t.Parallel()
	fence := "```"
	want := strings.Join([]string{
		"# SQL Audit Compliance Report",
		"",
		"**Scan time:** 2026-01-02T03:04:05",
		"**Scan scope:** `/repo`",
		"",
		"## 📊 Summary",
		"- **Files scanned:** 2",
		"- **SQL statements:** 5",
		"- **Violations:** 2 (❌ errors: 1, ⚠️ warnings: 1, ℹ️ info: 0)",
		"",
		"## 🚫 Violations",
		"",
		"### 📄 `a.xml` (1)",
		"",
		"**[ERROR]** §3.1 No SELECT *",
		"- **Location:** line 12 (SELECT #findAll)",
		"- **Message:** avoid select *",
		"- **Suggestion:** list columns",
		"- **Example rewrite (review before use):**",
		"",
		fence + "sql",
		"SELECT id FROM t",
		fence,
		"- **Matched:** `SELECT *`",
		"",
		"### 📄 `unknown` (1)",
		"",
		"**[WARNING]** unnamed rule",
		"- **Location:** line 3 (UNKNOWN #unknown)",
		"- **Message:** m`x",
		"",
		"## 📁 Scanned files",
		"",
		"- `a.xml`",
		"- `b\\`x.xml`",
		"",
	}, "\n")

	assert.Equal(t, want, ToMarkdown(sampleReport()))
}

func TestToMarkdown_Deterministic(t *testing.T) {
	t.Parallel()
	r := sampleReport()
	assert.Equal(t, ToMarkdown(r), ToMarkdown(r))
}

func TestToMarkdown_DoesNotModifyReport(t *testing.T) {
	t.Parallel()
	r := &model.ScanReport{Violations: []model.Violation{{Rule: model.Rule{Severity: model.Error}}}}
	_ = ToMarkdown(r)
	assert.Equal(t, 0, r.TotalViolations)
	assert.Nil(t, r.ScannedFiles)
}

func TestToMarkdown_NoViolationsStopsAfterSummary(t *testing.T) {
	t.Parallel()
	r := &model.ScanReport{TotalFiles: 4, TotalStatements: 9, ScannedFiles: []string{"a.xml"}}
	md := ToMarkdown(r)

	assert.True(t, strings.HasSuffix(md, "✅ **All SQL statements comply with the rules**\n"))
	assert.NotContains(t, md, "## 🚫 Violations")
	assert.NotContains(t, md, "## 📁 Scanned files")
	assert.Contains(t, md, "**Scan scope:** `SQL script upload`")
	assert.Contains(t, md, "**Scan time:** unknown")
}

func TestToMarkdown_DeclaredZeroViolationsStops(t *testing.T) {
	t.Parallel()
	r := sampleReport()
	r.TotalViolations, r.ErrorCount, r.WarningCount = 0, 0, 0
	md := ToMarkdown(r)

	assert.True(t, strings.HasSuffix(md, "✅ **All SQL statements comply with the rules**\n"))
	assert.NotContains(t, md, "## 🚫 Violations")
	assert.Contains(t, md, "- **Violations:** 0 (")
}

func TestToMarkdown_TruncationWarning(t *testing.T) {
	t.Parallel()
	r := sampleReport()
	assert.NotContains(t, ToMarkdown(r), "truncated")

	r.LimitReached = true
	md := ToMarkdown(r)
	require.Contains(t, md, "> ⚠️ **Warning: scan results truncated**")
	assert.Contains(t, md, "only the first 1000 are kept")
	assert.Less(t, strings.Index(md, "truncated"), strings.Index(md, "## 📊 Summary"))
}

func TestToMarkdown_NilReport(t *testing.T) {
	t.Parallel()
	md := ToMarkdown(nil)
	assert.Contains(t, md, "# SQL Audit Compliance Report")
	assert.Contains(t, md, "✅")
}
