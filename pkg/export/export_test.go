package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminpeng/sql-audit/pkg/model"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]Format{"markdown": Markdown, "MD": Markdown, " json ": JSON, "tmpl": Template} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("pdf")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	assert.Equal(t, ".md", Markdown.Ext())
	assert.Equal(t, ".json", JSON.Ext())
	assert.False(t, Template.Remote())
}

func TestToJSON_RoundTrip(t *testing.T) {
	t.Parallel()
	in := model.Normalize(sampleReport())
	in.LimitReached = true
	in.Notices = []string{"decoded a.xml as GBK"}

	s, err := ToJSON(in)
	require.NoError(t, err)
	assert.Contains(t, s, "\n  \"totalFiles\": 2")

	out, err := model.Decode([]byte(s))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestToJSON_KeepsDeclaredCounts(t *testing.T) {
	t.Parallel()
	in := &model.ScanReport{
		ScannedFiles: []string{"a.xml"},
		Violations:   []model.Violation{{Rule: model.Rule{Severity: model.Error}}},
	}

	s, err := ToJSON(in)
	require.NoError(t, err)
	assert.Contains(t, s, "\"totalFiles\": 0")
	assert.Contains(t, s, "\"totalViolations\": 0")
	assert.Contains(t, s, "\"errorCount\": 0")

	out, err := model.Decode([]byte(s))
	require.NoError(t, err)
	assert.Equal(t, 0, out.TotalFiles)
	assert.Equal(t, 0, out.TotalViolations)
	assert.Len(t, out.Violations, 1)
}

func TestRender(t *testing.T) {
	t.Parallel()
	r := sampleReport()

	md, err := Render(Markdown, r)
	require.NoError(t, err)
	assert.Equal(t, ToMarkdown(r), string(md))

	_, err = Render(Template, r)
	assert.ErrorIs(t, err, ErrNoTemplate)

	_, err = Render("pdf", r)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestGeneratedFilename(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	assert.Equal(t, "sql-audit-report-20260304-050607.md", GeneratedFilename(Markdown, now))
	assert.Equal(t, "sql-audit-report-20260304-050607.json", GeneratedFilename(JSON, now))
}

func TestFilenameFromHeader(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"empty", "", "", false},
		{"no filename", "attachment", "", false},
		{"quoted", `attachment; filename="report.md"`, "report.md", true},
		{"unquoted", `attachment; filename=report.json`, "report.json", true},
		{"extended utf8", `attachment; filename*=UTF-8''%E5%AE%A1%E8%AE%A1.md`, "审计.md", true},
		{"extended wins", `attachment; filename="plain.md"; filename*=UTF-8''ext%20name.md`, "ext name.md", true},
		{"extended encoded quotes", `attachment; filename*=UTF-8''%22report.md%22`, "report.md", true},
		{"extended quotes only", `attachment; filename*=UTF-8''%22%22`, "", false},
		{"extended latin1", `attachment; filename*=ISO-8859-1''caf%E9.md`, "café.md", true},
		{"traversal stripped", `attachment; filename="../../etc/passwd"`, "passwd", true},
		{"windows path stripped", `attachment; filename="C:\\tmp\\r.md"`, "r.md", true},
		{"dot only", `attachment; filename=".."`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FilenameFromHeader(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnchorID(t *testing.T) {
	t.Parallel()
	r := sampleReport()
	a := AnchorID(r.Violations[0])
	assert.True(t, strings.HasPrefix(a, "example-sql-"))
	assert.Len(t, a, len("example-sql-")+16)
	assert.Equal(t, a, AnchorID(r.Violations[0]))
	assert.NotEqual(t, a, AnchorID(r.Violations[1]))

	v, ok := FindByAnchor(r, a)
	require.True(t, ok)
	assert.Equal(t, "R1", v.Rule.ID)

	_, ok = FindByAnchor(r, "example-sql-0000000000000000")
	assert.False(t, ok)
}

func TestTemplateRenderer(t *testing.T) {
	t.Parallel()
	tr, err := NewTemplateRenderer("")
	require.NoError(t, err)
	out, err := tr.Render(sampleReport())
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "SQL audit: 2 violation(s) in 2 file(s)")
	assert.Contains(t, s, "a.xml (1)")
	assert.Contains(t, s, "L12 No SELECT *")
	assert.Contains(t, s, "unnamed rule")

	custom, err := NewTemplateRenderer(`{{ range .Report.Violations }}{{ anchor . }} {{ location . | upper }}{{ "\n" }}{{ end }}`)
	require.NoError(t, err)
	out, err = custom.Render(sampleReport())
	require.NoError(t, err)
	assert.Contains(t, string(out), "A.XML:12")

	_, err = NewTemplateRenderer("{{ .Nope")
	assert.Error(t, err)
}

// memDownloader records documents in memory.
type memDownloader struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func (m *memDownloader) Download(_ context.Context, name string, body []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[name] = body
	return "mem://" + name, nil
}

type fakeRenderer struct {
	doc   *Document
	err   error
	calls int
}

func (f *fakeRenderer) RenderReport(_ context.Context, _ Format, _ *model.ScanReport) (*Document, error) {
	f.calls++
	return f.doc, f.err
}

func fixedNow() time.Time { return time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC) }

func TestExporter_RemoteSuccess(t *testing.T) {
	t.Parallel()
	dl := &memDownloader{}
	e := &Exporter{
		Remote: &fakeRenderer{doc: &Document{
			Disposition: `attachment; filename="server.md"; filename*=UTF-8''server%20report.md`,
			Body:        []byte("# remote"),
		}},
		Downloader: dl,
		Now:        fixedNow,
	}

	res, err := e.Export(context.Background(), Markdown, sampleReport())
	require.NoError(t, err)
	assert.Equal(t, ViaRemote, res.Via)
	assert.Equal(t, "server report.md", res.Filename)
	assert.Equal(t, "# remote", string(dl.files["server report.md"]))
}

func TestExporter_RemoteWithoutDispositionUsesGeneratedName(t *testing.T) {
	t.Parallel()
	dl := &memDownloader{}
	e := &Exporter{Remote: &fakeRenderer{doc: &Document{Body: []byte(`{"totalFiles":1}`)}}, Downloader: dl, Now: fixedNow}

	res, err := e.Export(context.Background(), JSON, sampleReport())
	require.NoError(t, err)
	assert.Equal(t, "sql-audit-report-20261019-083000.json", res.Filename)
}

func TestExporter_FallbackMatchesLocalSerializer(t *testing.T) {
	t.Parallel()
	report := sampleReport()
	wantJSON, err := ToJSON(report)
	require.NoError(t, err)

	failures := map[string]*fakeRenderer{
		"transport error": {err: errors.New("connection refused")},
		"empty body":      {doc: &Document{}},
		"malformed json":  {doc: &Document{Body: []byte("<html>oops")}},
	}
	for name, remote := range failures {
		t.Run(name, func(t *testing.T) {
			dl := &memDownloader{}
			e := &Exporter{Remote: remote, Downloader: dl, Now: fixedNow}

			res, err := e.Export(context.Background(), JSON, report)
			require.NoError(t, err)
			assert.Equal(t, ViaFallback, res.Via)
			assert.Equal(t, "sql-audit-report-20261019-083000.json", res.Filename)
			assert.Equal(t, wantJSON, string(dl.files[res.Filename]))
		})
	}

	dl := &memDownloader{}
	e := &Exporter{Remote: &fakeRenderer{err: errors.New("503")}, Downloader: dl, Now: fixedNow}
	res, err := e.Export(context.Background(), Markdown, report)
	require.NoError(t, err)
	assert.Equal(t, ToMarkdown(report), string(dl.files[res.Filename]))
}

func TestExporter_BothPathsFail(t *testing.T) {
	t.Parallel()
	remoteErr := errors.New("connection refused")
	diskErr := errors.New("disk full")
	e := &Exporter{
		Remote:     &fakeRenderer{err: remoteErr},
		Downloader: &memDownloader{err: diskErr},
		Now:        fixedNow,
	}

	_, err := e.Export(context.Background(), Markdown, sampleReport())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExport)
	assert.ErrorIs(t, err, remoteErr)
	assert.ErrorIs(t, err, diskErr)
	assert.True(t, IsExportError(err))
}

func TestExporter_LocalOnlyFormats(t *testing.T) {
	t.Parallel()
	remote := &fakeRenderer{err: errors.New("should not be called")}
	dl := &memDownloader{}
	e := &Exporter{Remote: remote, Downloader: dl, Now: fixedNow}

	res, err := e.Export(context.Background(), Template, sampleReport())
	require.NoError(t, err)
	assert.Equal(t, ViaLocal, res.Via)
	assert.Equal(t, 0, remote.calls)
	assert.True(t, strings.HasSuffix(res.Filename, ".txt"))

	noRemote := &Exporter{Downloader: dl, Now: fixedNow}
	res, err = noRemote.Export(context.Background(), Markdown, sampleReport())
	require.NoError(t, err)
	assert.Equal(t, ViaLocal, res.Via)
}

func TestExporter_NilReport(t *testing.T) {
	t.Parallel()
	_, err := (&Exporter{}).Export(context.Background(), Markdown, nil)
	assert.ErrorIs(t, err, ErrNilReport)
}

func TestDirDownloader(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "out")
	d := DirDownloader{Dir: dir}

	path, err := d.Download(context.Background(), "../escape/report.md", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")

	_, err = d.Download(context.Background(), "..", []byte("x"))
	assert.Error(t, err)
}
