package viewstate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminpeng/sql-audit/pkg/grouping"
	"github.com/benjaminpeng/sql-audit/pkg/model"
)

func report(errors, warnings int) *model.ScanReport {
	r := &model.ScanReport{}
	for i := 0; i < errors; i++ {
		r.Violations = append(r.Violations, model.Violation{
			Rule:        model.Rule{Severity: model.Error},
			SQLFragment: model.SQLFragment{RelativePath: fmt.Sprintf("e%d.xml", i%3), StatementID: fmt.Sprintf("e%d", i)},
		})
	}
	for i := 0; i < warnings; i++ {
		r.Violations = append(r.Violations, model.Violation{
			Rule:        model.Rule{Severity: model.Warning},
			SQLFragment: model.SQLFragment{RelativePath: "w.xml", StatementID: fmt.Sprintf("w%d", i)},
		})
	}
	r.ErrorCount, r.WarningCount = errors, warnings
	r.TotalViolations = errors + warnings
	return model.Normalize(r)
}

func TestNew_InitialState(t *testing.T) {
	t.Parallel()
	s := New(0)
	assert.Equal(t, grouping.All, s.Filter)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 50, s.PageSize)
	assert.False(t, s.HasReport())
	assert.Equal(t, grouping.NoViolations, s.View().Outcome)
}

func TestTransitions_DoNotMutatePrevious(t *testing.T) {
	t.Parallel()
	s0 := New(10).NewReport(report(30, 0))
	s1 := s0.Advance()
	s2 := s1.ChangeFilter(grouping.OnlyError)

	assert.Equal(t, 1, s0.Page)
	assert.Equal(t, 2, s1.Page)
	assert.Equal(t, grouping.All, s1.Filter)
	assert.Equal(t, grouping.OnlyError, s2.Filter)
}

func TestChangeFilter_ResetsCursor(t *testing.T) {
	t.Parallel()
	s := New(10).NewReport(report(35, 25)).Advance().Advance()
	require.Equal(t, 30, s.View().Window.Visible)

	s = s.ChangeFilter(grouping.OnlyWarning)
	v := s.View()
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 10, v.Window.Visible)
	assert.Equal(t, 25, v.Window.Total)
	assert.True(t, v.Window.HasMore)

	// Re-selecting the same filter still resets.
	s = s.Advance().ChangeFilter(grouping.OnlyWarning)
	assert.Equal(t, 1, s.Page)
}

func TestNewReport_ResetsFilterAndPage(t *testing.T) {
	t.Parallel()
	s := New(10).NewReport(report(30, 0)).ChangeFilter(grouping.OnlyError).Advance()
	s = s.NewReport(report(1, 1))
	assert.Equal(t, grouping.All, s.Filter)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 2, s.View().Window.Total)
}

func TestClear(t *testing.T) {
	t.Parallel()
	s := New(10).NewReport(report(3, 0)).ChangeFilter(grouping.OnlyInfo).Clear()
	assert.Nil(t, s.Report)
	assert.Equal(t, grouping.All, s.Filter)
	assert.Equal(t, 1, s.Page)
}

func TestScanGenerations_StaleResponseIgnored(t *testing.T) {
	t.Parallel()
	s := New(10)
	s, first := s.BeginScan()
	assert.True(t, s.Scanning)

	s, second := s.BeginScan()
	require.NotEqual(t, first, second)

	next, applied := s.CompleteScan(first, report(5, 0))
	assert.False(t, applied)
	assert.Nil(t, next.Report)
	assert.True(t, next.Scanning)

	_, applied = s.FailScan(first)
	assert.False(t, applied)

	next, applied = s.CompleteScan(second, report(2, 0))
	assert.True(t, applied)
	assert.False(t, next.Scanning)
	assert.Equal(t, 2, next.View().Window.Total)
}

func TestFailScan(t *testing.T) {
	t.Parallel()
	s, gen := New(10).BeginScan()
	s, ok := s.FailScan(gen)
	assert.True(t, ok)
	assert.False(t, s.Scanning)
	assert.Nil(t, s.Report)
}

func TestView_Outcomes(t *testing.T) {
	t.Parallel()
	clean := New(10).NewReport(model.Normalize(&model.ScanReport{TotalFiles: 3}))
	assert.Equal(t, grouping.NoViolations, clean.View().Outcome)

	filtered := New(10).NewReport(report(2, 0)).ChangeFilter(grouping.OnlyInfo)
	v := filtered.View()
	assert.Equal(t, grouping.AllFilteredOut, v.Outcome)
	assert.Empty(t, v.Window.Groups)
}
