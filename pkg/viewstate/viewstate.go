// Package viewstate holds the report view as one immutable record.
//
// Every user action is a transition that takes the current State and returns
// the next one; nothing is mutated in place. The owner (the CLI session)
// swaps its State atomically after each transition.
package viewstate

import (
	"github.com/benjaminpeng/sql-audit/pkg/grouping"
	"github.com/benjaminpeng/sql-audit/pkg/model"
	"github.com/benjaminpeng/sql-audit/pkg/pagination"
)

// State is the complete view state: current report, active filter and
// pagination cursor, plus scan bookkeeping.
type State struct {
	Report   *model.ScanReport
	Filter   grouping.Filter
	Page     int
	PageSize int

	// Scanning is true between BeginScan and CompleteScan/FailScan.
	Scanning bool

	// Generation identifies the latest scan request. Responses tagged with an
	// older generation are stale and ignored.
	Generation uint64
}

// New returns the initial state: no report, filter ALL, page 1.
func New(pageSize int) State {
	return State{
		Filter:   grouping.All,
		Page:     1,
		PageSize: pagination.New(pageSize).PageSize(),
	}
}

// NewReport replaces the report and resets filter and cursor.
func (s State) NewReport(r *model.ScanReport) State {
	s.Report = r
	s.Filter = grouping.All
	s.Page = 1
	s.Scanning = false
	return s
}

// BeginScan discards the current report and starts a new scan generation.
// The returned generation must be handed back to CompleteScan.
func (s State) BeginScan() (State, uint64) {
	s = s.Clear()
	s.Generation++
	s.Scanning = true
	return s, s.Generation
}

// CompleteScan installs a scan result if gen is still the latest
// generation. The boolean is false when the response was stale and the
// state is returned unchanged.
func (s State) CompleteScan(gen uint64, r *model.ScanReport) (State, bool) {
	if gen != s.Generation {
		return s, false
	}
	return s.NewReport(r), true
}

// FailScan ends the scan for gen without a report. Stale failures are
// ignored like stale results.
func (s State) FailScan(gen uint64) (State, bool) {
	if gen != s.Generation {
		return s, false
	}
	s.Scanning = false
	return s, true
}

// ChangeFilter sets the filter and always resets the cursor to page 1,
// even when the filter is unchanged.
func (s State) ChangeFilter(f grouping.Filter) State {
	s.Filter = f
	s.Page = 1
	return s
}

// Advance reveals one more page.
func (s State) Advance() State {
	s.Page = s.controller().Advance().Page()
	return s
}

// Clear drops the report and resets derived view state.
func (s State) Clear() State {
	s.Report = nil
	s.Filter = grouping.All
	s.Page = 1
	s.Scanning = false
	return s
}

func (s State) controller() pagination.Controller {
	return pagination.At(s.Page, s.PageSize)
}
