// Package export turns a scan report into portable documents.
//
// ToMarkdown and ToJSON are pure serializers. Exporter adds delivery: it asks
// the audit service to render the document and, when that fails for any
// reason, renders the same document locally. Only a failure of both paths
// surfaces as an ExportError.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/benjaminpeng/sql-audit/pkg/jsonutil"
	"github.com/benjaminpeng/sql-audit/pkg/metrics"
	"github.com/benjaminpeng/sql-audit/pkg/model"
)

// Renderer produces a document on the audit service.
type Renderer interface {
	RenderReport(ctx context.Context, format Format, report *model.ScanReport) (*Document, error)
}

// Document is a fully buffered rendered report.
type Document struct {
	// Disposition is the raw Content-Disposition header, if any.
	Disposition string
	ContentType string
	Body        []byte
}

// Via names the path that produced an exported document.
type Via string

const (
	ViaRemote   Via = "remote"
	ViaFallback Via = "fallback"

	// ViaLocal is used for formats that are never rendered remotely.
	ViaLocal Via = "local"
)

// Result describes a delivered export.
type Result struct {
	Filename string
	Path     string
	Via      Via
	Size     int
}

// Exporter renders and delivers reports.
type Exporter struct {
	// Remote is tried first for markdown and json. Nil means local only.
	Remote Renderer

	// Downloader receives the document. Nil means DirDownloader{}.
	Downloader Downloader

	// Template renders the template format. Nil means SummaryTemplate.
	Template *TemplateRenderer

	Logger  *slog.Logger
	Metrics *metrics.Recorder

	// Now stamps generated file names. Nil means time.Now.
	Now func() time.Time
}

// Export renders report in format and hands it to the downloader.
func (e *Exporter) Export(ctx context.Context, format Format, report *model.ScanReport) (*Result, error) {
	if report == nil {
		return nil, ErrNilReport
	}

	ctx, span := otel.Tracer("sqlaudit/export").Start(ctx, "export",
		trace.WithAttributes(attribute.String("format", string(format))),
	)
	defer span.End()

	res, err := e.export(ctx, format, report)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.String("via", string(res.Via)),
		attribute.Int("size", res.Size),
	)
	e.Metrics.ObserveExport(string(format), string(res.Via))
	return res, nil
}

func (e *Exporter) export(ctx context.Context, format Format, report *model.ScanReport) (*Result, error) {
	log := orDefault(e.Logger)

	var remoteErr error
	if format.Remote() && e.Remote != nil {
		res, err := e.exportRemote(ctx, format, report)
		if err == nil {
			return res, nil
		}
		remoteErr = err
		log.Warn("exported via fallback", slog.String("format", string(format)), slog.Any("error", err))
	}

	via := ViaFallback
	if remoteErr == nil {
		via = ViaLocal
	}

	body, err := e.renderLocal(format, report)
	if err == nil {
		name := GeneratedFilename(format, e.now())
		var path string
		path, err = e.downloader().Download(ctx, name, body)
		if err == nil {
			return &Result{Filename: name, Path: path, Via: via, Size: len(body)}, nil
		}
	}
	return nil, &ExportError{Format: format, Remote: remoteErr, Local: err}
}

func (e *Exporter) exportRemote(ctx context.Context, format Format, report *model.ScanReport) (*Result, error) {
	doc, err := e.Remote.RenderReport(ctx, format, report)
	if err != nil {
		return nil, err
	}
	if err := checkDocument(format, doc); err != nil {
		return nil, err
	}

	name, ok := FilenameFromHeader(doc.Disposition)
	if !ok {
		name = GeneratedFilename(format, e.now())
	}
	path, err := e.downloader().Download(ctx, name, doc.Body)
	if err != nil {
		return nil, fmt.Errorf("save remote document: %w", err)
	}
	return &Result{Filename: name, Path: path, Via: ViaRemote, Size: len(doc.Body)}, nil
}

func checkDocument(format Format, doc *Document) error {
	if doc == nil || len(doc.Body) == 0 {
		return ErrEmptyDocument
	}
	if format == JSON && !jsonutil.Valid(doc.Body) {
		return ErrMalformedDocument
	}
	return nil
}

func (e *Exporter) renderLocal(format Format, report *model.ScanReport) ([]byte, error) {
	if format == Template {
		t := e.Template
		if t == nil {
			var err error
			if t, err = NewTemplateRenderer(""); err != nil {
				return nil, err
			}
		}
		return t.Render(report)
	}
	return Render(format, report)
}

// Render serializes report locally in format. The template format needs a
// TemplateRenderer and is rejected here.
func Render(format Format, report *model.ScanReport) ([]byte, error) {
	switch format {
	case Markdown:
		return []byte(ToMarkdown(report)), nil
	case JSON:
		s, err := ToJSON(report)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case Template:
		return nil, ErrNoTemplate
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}

func (e *Exporter) downloader() Downloader {
	if e.Downloader != nil {
		return e.Downloader
	}
	return DirDownloader{}
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// IsExportError reports whether err came from a failure of both paths.
func IsExportError(err error) bool {
	var ee *ExportError
	return errors.As(err, &ee)
}
