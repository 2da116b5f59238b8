// Package apiclient talks to the SQL audit service over its JSON HTTP API.
//
// Input is validated locally before any request is made. Reads of the rule
// catalog are retried with backoff; scans, uploads and exports are sent once.
// Every failure after validation is a *TransportError.
package apiclient

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/benjaminpeng/sql-audit/pkg/defaults"
	"github.com/benjaminpeng/sql-audit/pkg/duration"
	"github.com/benjaminpeng/sql-audit/pkg/httpclient"
	"github.com/benjaminpeng/sql-audit/pkg/iohelper"
	"github.com/benjaminpeng/sql-audit/pkg/jsonutil"
	"github.com/benjaminpeng/sql-audit/pkg/metrics"
	"github.com/benjaminpeng/sql-audit/pkg/retry"
)

// Options configures a Client. Zero values take defaults.
type Options struct {
	// BaseURL is the service root, e.g. http://localhost:8080.
	BaseURL string

	// HTTP configures the underlying client. Ignored when HTTPClient is set.
	HTTP httpclient.Config

	// HTTPClient replaces the client built from HTTP.
	HTTPClient *http.Client

	// Timeout bounds rule and clear calls (default: duration.HTTPAPI).
	Timeout time.Duration

	// ScanTimeout bounds scans and uploads (default: duration.HTTPScan).
	ScanTimeout time.Duration

	// ExportTimeout bounds remote rendering (default: duration.HTTPExport).
	ExportTimeout time.Duration

	// RateLimit is requests per second. 0 means defaults.RequestsPerSecond;
	// negative disables limiting.
	RateLimit float64

	// Retry is applied to idempotent reads (default: retry.DefaultConfig()).
	Retry *retry.Config

	// MaxResponseSize bounds buffered response bodies (default: iohelper.LargeMaxBodySize).
	MaxResponseSize int64

	Logger  *slog.Logger
	Metrics *metrics.Recorder
}

// Client is safe for concurrent use.
type Client struct {
	base          *url.URL
	http          *http.Client
	limiter       *rate.Limiter
	retry         retry.Config
	timeout       time.Duration
	scanTimeout   time.Duration
	exportTimeout time.Duration
	maxBody       int64
	logger        *slog.Logger
	metrics       *metrics.Recorder
}

// New validates opts and builds a Client.
func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		raw = defaults.ServerURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, &ValidationError{Field: "baseURL", Reason: ErrInvalidBaseURL.Error() + ": " + raw}
	}

	c := &Client{
		base:          base,
		http:          opts.HTTPClient,
		retry:         retry.DefaultConfig(),
		timeout:       opts.Timeout,
		scanTimeout:   opts.ScanTimeout,
		exportTimeout: opts.ExportTimeout,
		maxBody:       opts.MaxResponseSize,
		logger:        opts.Logger,
		metrics:       opts.Metrics,
	}
	if c.http == nil {
		cfg := opts.HTTP
		if cfg.Timeout == 0 {
			// Per-call contexts enforce the shorter limits.
			cfg.Timeout = duration.HTTPScan
		}
		c.http = httpclient.New(cfg)
	}
	if opts.Retry != nil {
		c.retry = *opts.Retry
	}
	if c.timeout == 0 {
		c.timeout = duration.HTTPAPI
	}
	if c.scanTimeout == 0 {
		c.scanTimeout = duration.HTTPScan
	}
	if c.exportTimeout == 0 {
		c.exportTimeout = duration.HTTPExport
	}
	if c.maxBody == 0 {
		c.maxBody = iohelper.LargeMaxBodySize
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	switch {
	case opts.RateLimit < 0:
		c.limiter = rate.NewLimiter(rate.Inf, 1)
	case opts.RateLimit == 0:
		c.limiter = rate.NewLimiter(rate.Limit(defaults.RequestsPerSecond), defaults.RequestsPerSecond)
	default:
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), max(1, int(opts.RateLimit)))
	}
	return c, nil
}

// BaseURL returns the normalized service root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// call describes one logical API operation.
type call struct {
	op          string
	method      string
	path        string
	body        []byte
	contentType string
	accept      string
	timeout     time.Duration
	retry       retry.Config
}

// response is a fully buffered 2xx reply.
type response struct {
	status int
	header http.Header
	body   []byte
}

// send performs cl, retrying per cl.retry. 4xx responses stop retries.
func (c *Client) send(ctx context.Context, cl call) (*response, error) {
	if cl.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cl.timeout)
		defer cancel()
	}

	ctx, span := otel.Tracer("sqlaudit/apiclient").Start(ctx, "apiclient."+cl.op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", cl.method),
			attribute.String("url.path", cl.path),
		),
	)
	defer span.End()

	rc := cl.retry
	rc.OnRetry = func(n int, err error, wait time.Duration) {
		c.logger.Debug("retrying request",
			slog.String("op", cl.op),
			slog.Int("attempt", n+1),
			slog.Duration("wait", wait),
			slog.Any("error", err),
		)
	}
	out, err := retry.Do(ctx, rc, func(ctx context.Context) (*response, error) {
		resp, err := c.attempt(ctx, cl)
		if err != nil {
			var te *TransportError
			if errors.As(err, &te) && te.Status >= 400 && te.Status < 500 {
				return nil, retry.Stop(err)
			}
			return nil, err
		}
		return resp, nil
	})
	if err != nil {
		var te *TransportError
		if !errors.As(err, &te) {
			// Context expiry between attempts surfaces unwrapped from retry.Do.
			err = &TransportError{Op: cl.op, Err: httpclient.Classify(err)}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("http.response.status_code", out.status))
	return out, nil
}

func (c *Client) attempt(ctx context.Context, cl call) (*response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{Op: cl.op, Err: httpclient.Classify(err)}
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.endpoint(cl.path), bytes.NewReader(cl.body))
	if err != nil {
		return nil, retry.Stop(&TransportError{Op: cl.op, Err: err})
	}
	if cl.body != nil {
		req.Header.Set("Content-Type", cl.contentType)
	}
	accept := cl.accept
	if accept == "" {
		accept = defaults.ContentTypeJSON
	}
	req.Header.Set("Accept", accept)
	reqID := httpclient.RequestID(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(cl.op, 0, time.Since(start))
		c.logger.Debug("request failed", slog.String("op", cl.op), slog.String("request_id", reqID), slog.Any("error", err))
		return nil, &TransportError{Op: cl.op, RequestID: reqID, Err: httpclient.Classify(err)}
	}
	defer iohelper.DrainAndClose(resp.Body)

	body, readErr := iohelper.ReadBodyStrict(resp.Body, c.maxBody)
	c.metrics.ObserveRequest(cl.op, resp.StatusCode, time.Since(start))
	c.logger.Debug("request done",
		slog.String("op", cl.op),
		slog.String("request_id", reqID),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Op:        cl.op,
			Status:    resp.StatusCode,
			Message:   serverMessage(body),
			RequestID: reqID,
		}
	}
	if readErr != nil {
		return nil, &TransportError{Op: cl.op, Status: resp.StatusCode, RequestID: reqID, Err: readErr}
	}
	return &response{status: resp.StatusCode, header: resp.Header, body: body}, nil
}

func (c *Client) endpoint(path string) string {
	return c.base.String() + path
}

// serverMessage extracts {"error": "..."} from an error body.
func serverMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if len(body) == 0 || jsonutil.Unmarshal(body, &payload) != nil {
		return ""
	}
	return strings.TrimSpace(payload.Error)
}

func (c *Client) decode(op string, resp *response, v any) error {
	if err := jsonutil.Unmarshal(resp.body, v); err != nil {
		return &TransportError{Op: op, Status: resp.status, Err: errors.Join(ErrMalformedResponse, err)}
	}
	return nil
}
