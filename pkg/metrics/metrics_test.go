package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminpeng/sql-audit/pkg/model"
)

func TestNilRecorderIsNoop(t *testing.T) {
	t.Parallel()
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveRequest("scan", 200, time.Millisecond)
		r.ObserveExport("markdown", "remote")
		r.ObserveCopy("native")
		r.ObserveReport(&model.ScanReport{})
	})
	assert.Nil(t, r.Registry())
	assert.NoError(t, r.WriteFile(filepath.Join(t.TempDir(), "m.prom")))
}

func TestObserveRequest(t *testing.T) {
	t.Parallel()
	r, err := New()
	require.NoError(t, err)

	r.ObserveRequest("scan", 200, 10*time.Millisecond)
	r.ObserveRequest("scan", 200, 20*time.Millisecond)
	r.ObserveRequest("scan", 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.requestsTotal.WithLabelValues("scan", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requestsTotal.WithLabelValues("scan", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.requestDuration))
}

func TestObserveExportAndCopy(t *testing.T) {
	t.Parallel()
	r, err := New()
	require.NoError(t, err)

	r.ObserveExport("json", "fallback")
	r.ObserveCopy("osc52")
	r.ObserveCopy("osc52")

	assert.Equal(t, 1.0, testutil.ToFloat64(r.exportsTotal.WithLabelValues("json", "fallback")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.copiesTotal.WithLabelValues("osc52")))
}

func TestObserveReport(t *testing.T) {
	t.Parallel()
	r, err := New()
	require.NoError(t, err)

	r.ObserveReport(&model.ScanReport{ErrorCount: 3, WarningCount: 2, InfoCount: 1})
	assert.Equal(t, 3.0, testutil.ToFloat64(r.violations.WithLabelValues("ERROR")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.violations.WithLabelValues("INFO")))
}

func TestWriteFile(t *testing.T) {
	t.Parallel()
	r, err := New()
	require.NoError(t, err)
	r.ObserveExport("markdown", "remote")

	path := filepath.Join(t.TempDir(), "sqlaudit.prom")
	require.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `sqlaudit_exports_total{format="markdown",via="remote"} 1`)
}
