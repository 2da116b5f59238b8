// Package sqldiff compares an original SQL fragment with a suggested rewrite
// line by line.
//
// The comparison is positional: row i pairs line i of each side. Inserted or
// deleted lines are not realigned, so one insertion marks every later row as
// changed. Unified offers a minimal-edit view when that matters.
package sqldiff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Row is one aligned pair of lines. LeftNo and RightNo are 1-based and are
// set for every row, even when the corresponding side has no line there.
type Row struct {
	LeftNo   int
	RightNo  int
	Left     string
	Right    string
	HasLeft  bool
	HasRight bool
	Changed  bool
}

// Result is the full comparison.
type Result struct {
	Rows []Row
}

// Changed returns the number of changed rows.
func (r Result) Changed() int {
	n := 0
	for _, row := range r.Rows {
		if row.Changed {
			n++
		}
	}
	return n
}

// Identical reports whether no row changed.
func (r Result) Identical() bool {
	return r.Changed() == 0
}

// Normalize converts CRLF and bare CR to LF and splits into lines.
// Empty input yields zero lines, not one empty line.
func Normalize(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// Compare aligns original and rewrite row by row. The result has
// max(len(left), len(right)) rows; a missing cell is empty. A row is changed
// when the cells differ after trimming trailing whitespace only.
func Compare(original, rewrite string) Result {
	left := Normalize(original)
	right := Normalize(rewrite)

	n := max(len(left), len(right))
	rows := make([]Row, n)
	for i := range rows {
		row := Row{LeftNo: i + 1, RightNo: i + 1}
		if i < len(left) {
			row.Left, row.HasLeft = left[i], true
		}
		if i < len(right) {
			row.Right, row.HasRight = right[i], true
		}
		row.Changed = trimTrailing(row.Left) != trimTrailing(row.Right)
		rows[i] = row
	}
	return Result{Rows: rows}
}

func trimTrailing(s string) string {
	return strings.TrimRight(s, " \t\f\v")
}

// Unified renders a minimal-edit unified diff between original and rewrite.
// It returns an empty string when the texts have no line differences.
func Unified(original, rewrite string, context int) (string, error) {
	a := strings.TrimRight(strings.Join(Normalize(original), "\n"), "\n")
	b := strings.TrimRight(strings.Join(Normalize(rewrite), "\n"), "\n")
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(a + "\n"),
		B:        difflib.SplitLines(b + "\n"),
		FromFile: "original",
		ToFile:   "rewrite",
		Context:  context,
	}
	return difflib.GetUnifiedDiffString(ud)
}
