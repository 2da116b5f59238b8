package cli

import (
	"fmt"

	"github.com/benjaminpeng/sql-audit/pkg/export"
	"github.com/benjaminpeng/sql-audit/pkg/grouping"
	"github.com/benjaminpeng/sql-audit/pkg/model"
)

// Selector picks one violation from a report, either by the anchor id shown
// next to an example rewrite or by its 1-based number in the filtered view.
type Selector struct {
	ID     string
	Index  int
	Filter string
}

func (r *Runner) selectViolation(report *model.ScanReport, sel Selector) (model.Violation, error) {
	if sel.ID != "" {
		v, ok := export.FindByAnchor(report, sel.ID)
		if !ok {
			return model.Violation{}, fmt.Errorf("%w: id %s", ErrNoSelection, sel.ID)
		}
		return v, nil
	}
	if sel.Index < 1 {
		return model.Violation{}, fmt.Errorf("%w: give -id or a positive -index", ErrNoSelection)
	}

	f, err := r.filter(sel.Filter)
	if err != nil {
		return model.Violation{}, err
	}
	entries := grouping.Flatten(grouping.Group(report.Violations, f))
	if sel.Index > len(entries) {
		return model.Violation{}, fmt.Errorf("%w: index %d of %d", ErrNoSelection, sel.Index, len(entries))
	}
	return entries[sel.Index-1].Violation, nil
}
