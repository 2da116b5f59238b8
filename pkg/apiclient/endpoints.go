package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/benjaminpeng/sql-audit/pkg/defaults"
	"github.com/benjaminpeng/sql-audit/pkg/export"
	"github.com/benjaminpeng/sql-audit/pkg/jsonutil"
	"github.com/benjaminpeng/sql-audit/pkg/model"
	"github.com/benjaminpeng/sql-audit/pkg/retry"
)

// Service routes.
const (
	pathScan         = "/api/scan"
	pathScanSQL      = "/api/scan/sql"
	pathRules        = "/api/rules"
	pathDefaultRules = "/api/rules/default"
	pathCustomRules  = "/api/rules/custom"
	pathUploadRules  = "/api/rules/upload"
	pathExport       = "/api/report/export/"
)

// UploadResult is the service's reply to a rule document upload.
type UploadResult struct {
	Message string       `json:"message"`
	Rules   []model.Rule `json:"rules"`
}

// Scan asks the service to audit the repository at repoPath (a path on the
// service host).
func (c *Client) Scan(ctx context.Context, repoPath string) (*model.ScanReport, error) {
	if err := ValidateRepoPath(repoPath); err != nil {
		return nil, err
	}
	body, err := jsonutil.Marshal(map[string]string{"repoPath": strings.TrimSpace(repoPath)})
	if err != nil {
		return nil, fmt.Errorf("encode scan request: %w", err)
	}

	resp, err := c.send(ctx, call{
		op:          OpScan,
		method:      http.MethodPost,
		path:        pathScan,
		body:        body,
		contentType: defaults.ContentTypeJSON,
		timeout:     c.scanTimeout,
		retry:       retry.Once(),
	})
	if err != nil {
		return nil, err
	}
	return c.decodeReport(OpScan, resp)
}

// ScanSQL uploads a .sql script for audit.
func (c *Client) ScanSQL(ctx context.Context, script Upload) (*model.ScanReport, error) {
	if err := ValidateUpload(script, defaults.SQLScriptExt); err != nil {
		return nil, err
	}
	body, contentType, err := multipartFile(script)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, call{
		op:          OpScanSQL,
		method:      http.MethodPost,
		path:        pathScanSQL,
		body:        body,
		contentType: contentType,
		timeout:     c.scanTimeout,
		retry:       retry.Once(),
	})
	if err != nil {
		return nil, err
	}
	return c.decodeReport(OpScanSQL, resp)
}

// Rules returns the effective rule set (default plus custom).
func (c *Client) Rules(ctx context.Context) ([]model.Rule, error) {
	return c.listRules(ctx, OpRules, pathRules)
}

// DefaultRules returns the built-in rules.
func (c *Client) DefaultRules(ctx context.Context) ([]model.Rule, error) {
	return c.listRules(ctx, OpDefaultRules, pathDefaultRules)
}

// CustomRules returns the rules loaded from uploaded documents.
func (c *Client) CustomRules(ctx context.Context) ([]model.Rule, error) {
	return c.listRules(ctx, OpCustomRules, pathCustomRules)
}

func (c *Client) listRules(ctx context.Context, op, path string) ([]model.Rule, error) {
	resp, err := c.send(ctx, call{
		op:      op,
		method:  http.MethodGet,
		path:    path,
		timeout: c.timeout,
		retry:   c.retry,
	})
	if err != nil {
		return nil, err
	}
	var rules []model.Rule
	if err := c.decode(op, resp, &rules); err != nil {
		return nil, err
	}
	if rules == nil {
		rules = []model.Rule{}
	}
	return rules, nil
}

// UploadRules sends a .docx rule document. The parsed rules replace the
// service's custom rule set.
func (c *Client) UploadRules(ctx context.Context, doc Upload) (*UploadResult, error) {
	if err := ValidateUpload(doc, defaults.RuleDocumentExt); err != nil {
		return nil, err
	}
	body, contentType, err := multipartFile(doc)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, call{
		op:          OpUploadRules,
		method:      http.MethodPost,
		path:        pathUploadRules,
		body:        body,
		contentType: contentType,
		timeout:     c.scanTimeout,
		retry:       retry.Once(),
	})
	if err != nil {
		return nil, err
	}
	var out UploadResult
	if err := c.decode(OpUploadRules, resp, &out); err != nil {
		return nil, err
	}
	if out.Rules == nil {
		out.Rules = []model.Rule{}
	}
	return &out, nil
}

// ClearCustomRules drops every custom rule and returns the service message.
func (c *Client) ClearCustomRules(ctx context.Context) (string, error) {
	resp, err := c.send(ctx, call{
		op:      OpClearRules,
		method:  http.MethodDelete,
		path:    pathCustomRules,
		timeout: c.timeout,
		retry:   retry.Once(),
	})
	if err != nil {
		return "", err
	}
	var out struct {
		Message string `json:"message"`
	}
	if err := c.decode(OpClearRules, resp, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// RenderReport asks the service to render report. It implements
// export.Renderer; the body is buffered in full.
func (c *Client) RenderReport(ctx context.Context, format export.Format, report *model.ScanReport) (*export.Document, error) {
	if !format.Remote() {
		return nil, &ValidationError{Field: "format", Reason: fmt.Sprintf("%q cannot be rendered by the service", format)}
	}
	body, err := jsonutil.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	resp, err := c.send(ctx, call{
		op:          OpExport,
		method:      http.MethodPost,
		path:        pathExport + string(format),
		body:        body,
		contentType: defaults.ContentTypeJSON,
		accept:      format.ContentType(),
		timeout:     c.exportTimeout,
		retry:       retry.Once(),
	})
	if err != nil {
		return nil, err
	}
	return document(resp), nil
}

// LatestDocument downloads the service's rendering of its most recent scan.
func (c *Client) LatestDocument(ctx context.Context, format export.Format) (*export.Document, error) {
	if !format.Remote() {
		return nil, &ValidationError{Field: "format", Reason: fmt.Sprintf("%q cannot be rendered by the service", format)}
	}
	resp, err := c.send(ctx, call{
		op:      OpExportLatest,
		method:  http.MethodGet,
		path:    pathExport + string(format),
		accept:  format.ContentType(),
		timeout: c.exportTimeout,
		retry:   c.retry,
	})
	if err != nil {
		return nil, err
	}
	return document(resp), nil
}

func document(resp *response) *export.Document {
	return &export.Document{
		Disposition: resp.header.Get("Content-Disposition"),
		ContentType: resp.header.Get("Content-Type"),
		Body:        resp.body,
	}
}

func (c *Client) decodeReport(op string, resp *response) (*model.ScanReport, error) {
	report, err := model.Decode(resp.body)
	if err != nil {
		return nil, &TransportError{Op: op, Status: resp.status, Err: fmt.Errorf("%w: %w", ErrMalformedResponse, err)}
	}
	return report, nil
}

// multipartFile encodes u as the "file" form field.
func multipartFile(u Upload) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, u.Name))
	h.Set("Content-Type", defaults.ContentTypeOctetStream)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(u.Data); err != nil {
		return nil, "", fmt.Errorf("write form part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

var _ export.Renderer = (*Client)(nil)
