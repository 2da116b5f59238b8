package export

import (
	"fmt"
	"strings"

	"github.com/benjaminpeng/sql-audit/pkg/defaults"
	"github.com/benjaminpeng/sql-audit/pkg/grouping"
	"github.com/benjaminpeng/sql-audit/pkg/model"
)

const (
	markdownTitle    = "# SQL Audit Compliance Report"
	sqlUploadScope   = "SQL script upload"
	unnamedRule      = "unnamed rule"
	unknownStatement = "UNKNOWN"
	unknownSeverity  = "UNKNOWN"
)

// ToMarkdown renders the report as a Markdown document. The output depends
// only on the report, so the same report always yields the same bytes.
func ToMarkdown(r *model.ScanReport) string {
	r = normalized(r)

	var sb strings.Builder
	sb.WriteString(markdownTitle + "\n\n")
	fmt.Fprintf(&sb, "**Scan time:** %s\n", orPlaceholder(r.ScanTime, defaults.UnknownPath))
	fmt.Fprintf(&sb, "**Scan scope:** `%s`\n\n", escapeInlineCode(scanScope(r)))

	if r.LimitReached {
		sb.WriteString("> ⚠️ **Warning: scan results truncated**\n")
		fmt.Fprintf(&sb, "> Too many violations were found; only the first %d are kept and shown. "+
			"Narrow the scan scope or refine the rule set.\n\n", defaults.ViolationLimit)
	}

	sb.WriteString("## 📊 Summary\n")
	fmt.Fprintf(&sb, "- **Files scanned:** %d\n", r.TotalFiles)
	fmt.Fprintf(&sb, "- **SQL statements:** %d\n", r.TotalStatements)
	fmt.Fprintf(&sb, "- **Violations:** %d (❌ errors: %d, ⚠️ warnings: %d, ℹ️ info: %d)\n\n",
		r.TotalViolations, r.ErrorCount, r.WarningCount, r.InfoCount)

	if r.TotalViolations == 0 {
		sb.WriteString("✅ **All SQL statements comply with the rules**\n")
		return sb.String()
	}

	sb.WriteString("## 🚫 Violations\n\n")
	for _, g := range grouping.Group(r.Violations, grouping.All) {
		fmt.Fprintf(&sb, "### 📄 `%s` (%d)\n\n", escapeInlineCode(g.Path), len(g.Violations))
		for _, v := range g.Violations {
			writeViolation(&sb, v)
		}
	}

	sb.WriteString("## 📁 Scanned files\n\n")
	for _, f := range r.ScannedFiles {
		fmt.Fprintf(&sb, "- `%s`\n", escapeInlineCode(f))
	}
	return sb.String()
}

func writeViolation(sb *strings.Builder, v model.Violation) {
	section := ""
	if v.Rule.Section != "" {
		section = "§" + v.Rule.Section + " "
	}
	fmt.Fprintf(sb, "**[%s]** %s%s\n", severityLabel(v), section, ruleName(v))
	fmt.Fprintf(sb, "- **Location:** line %d (%s #%s)\n",
		v.SQLFragment.LineNumber, statementType(v), statementID(v))
	fmt.Fprintf(sb, "- **Message:** %s\n", v.Message)
	if notBlank(v.Suggestion) {
		fmt.Fprintf(sb, "- **Suggestion:** %s\n", v.Suggestion)
	}
	if notBlank(v.ExampleSQL) {
		sb.WriteString("- **Example rewrite (review before use):**\n\n")
		fmt.Fprintf(sb, "```sql\n%s\n```\n", v.ExampleSQL)
	}
	if notBlank(v.MatchedText) {
		fmt.Fprintf(sb, "- **Matched:** `%s`\n", escapeInlineCode(strings.ReplaceAll(v.MatchedText, "\n", " ")))
	}
	sb.WriteString("\n")
}

// normalized returns a normalized shallow copy; the caller's report is left
// as it was.
func normalized(r *model.ScanReport) *model.ScanReport {
	if r == nil {
		return model.Normalize(nil)
	}
	cp := *r
	return model.Normalize(&cp)
}

func severityLabel(v model.Violation) string {
	if v.Rule.Severity == "" {
		return unknownSeverity
	}
	return string(v.Rule.Severity)
}

func ruleName(v model.Violation) string {
	if v.Rule.Name == "" {
		return unnamedRule
	}
	return v.Rule.Name
}

func statementType(v model.Violation) string {
	if v.SQLFragment.StatementType == "" {
		return unknownStatement
	}
	return strings.ToUpper(v.SQLFragment.StatementType)
}

func statementID(v model.Violation) string {
	if !notBlank(v.SQLFragment.StatementID) {
		return defaults.UnknownPath
	}
	return v.SQLFragment.StatementID
}

func scanScope(r *model.ScanReport) string {
	if notBlank(r.RepoPath) {
		return r.RepoPath
	}
	return sqlUploadScope
}

func escapeInlineCode(s string) string {
	return strings.ReplaceAll(s, "`", "\\`")
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

func orPlaceholder(s, placeholder string) string {
	if notBlank(s) {
		return s
	}
	return placeholder
}
