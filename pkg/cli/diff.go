package cli

import (
	"fmt"

	"github.com/benjaminpeng/sql-audit/pkg/defaults"
	"github.com/benjaminpeng/sql-audit/pkg/model"
	"github.com/benjaminpeng/sql-audit/pkg/sqldiff"
	"github.com/benjaminpeng/sql-audit/pkg/ui"
)

// DiffOptions configures the diff command.
type DiffOptions struct {
	ReportPath string
	Selector

	// Unified prints a minimal-edit unified diff instead of the aligned
	// side-by-side view.
	Unified bool
	Context int
}

// RunDiff compares a violation's SQL with its example rewrite.
func (r *Runner) RunDiff(opts *DiffOptions) error {
	report, err := model.Load(opts.ReportPath)
	if err != nil {
		return err
	}
	v, err := r.selectViolation(report, opts.Selector)
	if err != nil {
		return err
	}
	if !v.HasExample() {
		return fmt.Errorf("%w: %s", ErrNoExample, v.SQLFragment.Location())
	}

	out := r.out()
	ui.Fprintf(out, "%s %s\n", ui.PathStyle.Render(v.SQLFragment.Location()), ui.StatValueStyle.Render(v.Rule.Name))
	if opts.Unified {
		text, err := sqldiff.Unified(v.SQLFragment.SQLText, v.ExampleSQL, opts.Context)
		if err != nil {
			return err
		}
		ui.Fprintf(out, "%s", text)
		return nil
	}
	ui.RenderDiff(out, sqldiff.Compare(v.SQLFragment.SQLText, v.ExampleSQL), r.diffWidth())
	return nil
}

func (r *Runner) diffWidth() int {
	if r.DiffWidth > 0 {
		return r.DiffWidth
	}
	// two sides, each with a marker and a line number column
	return (ui.Width(defaults.TerminalWidth) - 16) / 2
}
