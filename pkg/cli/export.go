package cli

import (
	"context"
	"fmt"

	"github.com/benjaminpeng/sql-audit/pkg/export"
	"github.com/benjaminpeng/sql-audit/pkg/model"
	"github.com/benjaminpeng/sql-audit/pkg/ui"
)

// ExportOptions configures the export command.
type ExportOptions struct {
	ReportPath string
	Format     string

	// Template is a text/template file for the template format.
	Template string

	// Latest downloads the server's most recent report instead of
	// exporting ReportPath. Only markdown and json are available.
	Latest bool
}

// RunExport exports a saved report, or the server's latest one.
func (r *Runner) RunExport(ctx context.Context, opts *ExportOptions) error {
	format, err := export.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	if opts.Latest {
		return r.exportLatest(ctx, format)
	}

	if r.Exporter == nil {
		return ErrNoExporter
	}
	report, err := model.Load(opts.ReportPath)
	if err != nil {
		return err
	}

	exporter := r.Exporter
	if opts.Template != "" {
		tmpl, err := export.LoadTemplateRenderer(opts.Template)
		if err != nil {
			return err
		}
		custom := *r.Exporter
		custom.Template = tmpl
		exporter = &custom
	}
	return r.deliver(ctx, exporter, format, report)
}

// deliver runs one export and reports where the document went.
func (r *Runner) deliver(ctx context.Context, exporter *export.Exporter, format export.Format, report *model.ScanReport) error {
	if exporter == nil {
		return ErrNoExporter
	}
	res, err := exporter.Export(ctx, format, report)
	if err != nil {
		return err
	}
	if res.Via == export.ViaFallback {
		ui.PrintWarning("Server export unavailable, rendered locally")
	}
	ui.PrintSuccess(fmt.Sprintf("Exported %s report to %s (%d bytes)", format, res.Path, res.Size))
	return nil
}

func (r *Runner) exportLatest(ctx context.Context, format export.Format) error {
	if !format.Remote() {
		return fmt.Errorf("%w: %s is not rendered by the server", export.ErrUnknownFormat, format)
	}
	doc, err := r.API.LatestDocument(ctx, format)
	if err != nil {
		return err
	}
	if len(doc.Body) == 0 {
		return export.ErrEmptyDocument
	}
	name, ok := export.FilenameFromHeader(doc.Disposition)
	if !ok {
		name = export.GeneratedFilename(format, r.now())
	}

	var dl export.Downloader = export.DirDownloader{}
	if r.Exporter != nil && r.Exporter.Downloader != nil {
		dl = r.Exporter.Downloader
	}
	path, err := dl.Download(ctx, name, doc.Body)
	if err != nil {
		return err
	}
	r.Metrics.ObserveExport(string(format), string(export.ViaRemote))
	ui.PrintSuccess(fmt.Sprintf("Downloaded latest %s report to %s (%d bytes)", format, path, len(doc.Body)))
	return nil
}
