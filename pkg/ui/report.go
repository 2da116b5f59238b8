package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/benjaminpeng/sql-audit/pkg/defaults"
	"github.com/benjaminpeng/sql-audit/pkg/export"
	"github.com/benjaminpeng/sql-audit/pkg/grouping"
	"github.com/benjaminpeng/sql-audit/pkg/model"
	"github.com/benjaminpeng/sql-audit/pkg/pagination"
	"github.com/benjaminpeng/sql-audit/pkg/viewstate"
)

// RenderSummary writes the report header: scope, scan time, totals,
// the truncation warning and any decode notices.
func RenderSummary(w io.Writer, r *model.ScanReport) {
	if r == nil {
		return
	}
	scope := r.RepoPath
	if r.IsSQLScan() {
		scope = "SQL script upload"
	}
	scanTime := r.ScanTime
	if strings.TrimSpace(scanTime) == "" {
		scanTime = "unknown"
	}

	Fprintf(w, "%s\n", TitleStyle.Render("SQL Audit Report"))
	summaryLine(w, "Scope", scope)
	summaryLine(w, "Scan time", scanTime)
	summaryLine(w, "Files", fmt.Sprint(r.TotalFiles))
	summaryLine(w, "Statements", fmt.Sprint(r.TotalStatements))
	summaryLine(w, "Violations", fmt.Sprintf("%d (%s %d  %s %d  %s %d)",
		r.TotalViolations,
		SeverityIcon(model.Error), r.ErrorCount,
		SeverityIcon(model.Warning), r.WarningCount,
		SeverityIcon(model.Info), r.InfoCount,
	))
	if r.LimitReached {
		Fprintf(w, "%s\n", WarnStyle.Render(fmt.Sprintf(
			"  [!] Results truncated: only the first %d violations were returned",
			defaults.ViolationLimit)))
	}
	RenderNotices(w, r.Notices)
}

func summaryLine(w io.Writer, label, value string) {
	Fprintf(w, " :: %-12s : %s\n", label, ConfigValueStyle.Render(value))
}

// RenderNotices writes the advisories the service attached to a report,
// such as a non-UTF-8 source file that was decoded with a fallback charset.
func RenderNotices(w io.Writer, notices []string) {
	for _, n := range notices {
		if strings.TrimSpace(n) == "" {
			continue
		}
		Fprintf(w, "%s\n", HelpStyle.Render("  [i] "+n))
	}
}

// RenderPage writes the visible window of a view, grouped by file. Entries
// are numbered from 1 in display order; the same numbers select a violation
// for diff and copy.
func RenderPage(w io.Writer, v viewstate.View) {
	switch v.Outcome {
	case grouping.NoViolations:
		Fprintf(w, "%s\n", PassStyle.Render(Icon("✅", "[+]")+" All SQL statements comply with the rules"))
		return
	case grouping.AllFilteredOut:
		Fprintf(w, "%s\n", HelpStyle.Render(fmt.Sprintf(
			"No violations match the %s filter. Choose another filter to see the rest.", v.Filter)))
		return
	}

	n := 0
	for _, g := range v.Window.Groups {
		Fprintf(w, "\n%s %s %s\n",
			Icon("📄", "#"),
			PathStyle.Render(g.Path),
			StatLabelStyle.Render(fmt.Sprintf("(%d)", len(g.Violations))),
		)
		for _, viol := range g.Violations {
			n++
			RenderViolation(w, n, viol)
		}
	}
	Fprintf(w, "\n%s\n", HelpStyle.Render(PageFooter(v.Window)))
}

// PageFooter describes how much of the filtered list is on screen.
func PageFooter(p pagination.Page) string {
	s := fmt.Sprintf("Showing %d of %d violations", p.Visible, p.Total)
	if p.HasMore {
		s += " (more available)"
	}
	return s
}

// RenderViolation writes one numbered violation.
func RenderViolation(w io.Writer, n int, v model.Violation) {
	sev := v.Rule.Severity
	label := string(sev)
	if label == "" {
		label = "UNKNOWN"
	}
	name := v.Rule.Name
	if strings.TrimSpace(name) == "" {
		name = "unnamed rule"
	}
	if v.Rule.Section != "" {
		name = "§" + v.Rule.Section + " " + name
	}

	Fprintf(w, "  %s %s %s %s\n",
		StatLabelStyle.Render(fmt.Sprintf("%3d.", n)),
		BracketStyle.Render("[")+SeverityStyle(sev).Render(label)+BracketStyle.Render("]"),
		StatValueStyle.Render(name),
		StatLabelStyle.Render(fmt.Sprintf("line %d", v.SQLFragment.LineNumber)),
	)
	Fprintf(w, "       %s\n", v.Message)
	if strings.TrimSpace(v.Suggestion) != "" {
		Fprintf(w, "       %s %s\n", StatLabelStyle.Render("suggestion:"), v.Suggestion)
	}
	if v.HasExample() {
		Fprintf(w, "       %s %s\n", StatLabelStyle.Render("example:"), HelpStyle.Render(export.AnchorID(v)))
	}
}
