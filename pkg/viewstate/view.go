package viewstate

import (
	"github.com/benjaminpeng/sql-audit/pkg/grouping"
	"github.com/benjaminpeng/sql-audit/pkg/pagination"
)

// View is everything a renderer needs for the current state.
type View struct {
	// Groups is the filtered grouping before pagination.
	Groups []grouping.FileGroup

	// Window is the visible page over Groups.
	Window pagination.Page

	// Outcome tells a clean scan apart from an over-restrictive filter.
	Outcome grouping.Outcome

	Filter grouping.Filter
	Page   int
}

// View derives the render model. It is recomputed on every call; the state
// stores no derived data.
func (s State) View() View {
	v := View{Filter: s.Filter, Page: s.Page}
	if s.Report == nil {
		v.Outcome = grouping.NoViolations
		v.Groups = []grouping.FileGroup{}
		v.Window = s.controller().Window(nil)
		return v
	}
	v.Groups = grouping.Group(s.Report.Violations, s.Filter)
	v.Window = s.controller().Window(v.Groups)
	v.Outcome = grouping.Classify(s.Report, v.Groups)
	return v
}

// HasReport reports whether a report is loaded.
func (s State) HasReport() bool {
	return s.Report != nil
}
