package grouping

import "github.com/benjaminpeng/sql-audit/pkg/model"

// Outcome explains why a grouping is, or is not, empty.
type Outcome int

const (
	// HasResults means at least one group survived the filter.
	HasResults Outcome = iota

	// NoViolations means the scan itself found nothing.
	NoViolations

	// AllFilteredOut means violations exist but none match the filter.
	AllFilteredOut
)

// String returns a short label for logs and tests.
func (o Outcome) String() string {
	switch o {
	case NoViolations:
		return "no-violations"
	case AllFilteredOut:
		return "all-filtered-out"
	default:
		return "has-results"
	}
}

// Classify tells an empty grouping caused by a clean scan apart from one
// caused by the filter. The report's declared TotalViolations decides, not
// the grouping itself.
func Classify(report *model.ScanReport, groups []FileGroup) Outcome {
	if report == nil || report.TotalViolations == 0 {
		return NoViolations
	}
	if len(groups) == 0 {
		return AllFilteredOut
	}
	return HasResults
}
