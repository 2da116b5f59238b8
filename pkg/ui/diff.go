package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/benjaminpeng/sql-audit/pkg/sqldiff"
)

// RenderDiff writes a side-by-side comparison. Changed rows are marked with
// "-" on the original side and "+" on the rewrite side; width is the column
// width of each side.
func RenderDiff(w io.Writer, res sqldiff.Result, width int) {
	if width < 20 {
		width = 20
	}
	Fprintf(w, "%s  %s\n",
		SectionStyle.Render(pad("original", width+7)),
		SectionStyle.Render("rewrite"),
	)
	for _, row := range res.Rows {
		left := side(row.LeftNo, row.Left, row.HasLeft, width)
		right := side(row.RightNo, row.Right, row.HasRight, width)
		if row.Changed {
			Fprintf(w, "%s %s  %s %s\n",
				RemovedStyle.Render("-"), RemovedStyle.Render(left),
				AddedStyle.Render("+"), AddedStyle.Render(right),
			)
			continue
		}
		Fprintf(w, "  %s    %s\n", left, right)
	}
	if res.Identical() {
		Fprintf(w, "%s\n", HelpStyle.Render("No differences"))
		return
	}
	Fprintf(w, "%s\n", HelpStyle.Render(fmt.Sprintf("%d changed line(s)", res.Changed())))
}

func side(no int, text string, present bool, width int) string {
	if !present {
		return fmt.Sprintf("%4d  %s", no, pad("", width))
	}
	return fmt.Sprintf("%4d  %s", no, pad(truncate(text, width), width))
}

func truncate(s string, width int) string {
	r := []rune(strings.ReplaceAll(s, "\t", "    "))
	if len(r) <= width {
		return string(r)
	}
	return string(r[:width-1]) + "…"
}

func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
