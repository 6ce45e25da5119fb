// Package solr is a minimal Solr admin API client: core system info, ping and CoreAdmin reload.
package solr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/schemagen/internal/domain"
	"github.com/kailas-cloud/schemagen/internal/metrics"
	"github.com/kailas-cloud/schemagen/internal/version"
)

// Operation names used in errors and metric labels.
const (
	OpSystemInfo = "system_info"
	OpReload     = "reload"
	OpPing       = "ping"
)

const maxErrorBody = 4 << 10

// StatusError is a non-2xx response or a non-zero Solr responseHeader.status.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("solr %s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Unwrap classifies admin failures as I/O errors.
func (e *StatusError) Unwrap() error { return domain.ErrIO }

// Config holds the client settings.
type Config struct {
	URL        string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to one Solr core and its CoreAdmin API.
type Client struct {
	http   *http.Client
	url    CoreURL
	logger *zap.Logger
}

// NewClient parses the connection URL and builds the client.
func NewClient(cfg Config) (*Client, error) {
	u, err := ParseCoreURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: metrics.InstrumentTransport(nil),
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{http: hc, url: u, logger: logger}, nil
}

// Core returns the core name derived from the connection URL.
func (c *Client) Core() string { return c.url.Core }

// SystemInfo returns the decoded core-level /admin/system response.
func (c *Client) SystemInfo(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.get(ctx, OpSystemInfo, c.url.SystemInfoURL(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ping checks that the core is loaded and answering queries.
func (c *Client) Ping(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, OpPing, c.url.PingURL(), &out); err != nil {
		return err
	}
	if !strings.EqualFold(out.Status, "OK") {
		return &StatusError{Op: OpPing, StatusCode: http.StatusOK, Body: "status " + out.Status}
	}
	return nil
}

// Reload asks CoreAdmin to reload core.
func (c *Client) Reload(ctx context.Context, core string) error {
	var out struct {
		ResponseHeader struct {
			Status int `json:"status"`
		} `json:"responseHeader"`
		Error struct {
			Msg string `json:"msg"`
		} `json:"error"`
	}
	if err := c.get(ctx, OpReload, c.url.ReloadURL(core), &out); err != nil {
		return err
	}
	if out.ResponseHeader.Status != 0 {
		return &StatusError{Op: OpReload, StatusCode: out.ResponseHeader.Status, Body: out.Error.Msg}
	}
	return nil
}

func (c *Client) get(ctx context.Context, op, target string, dst any) error {
	req, err := http.NewRequestWithContext(metrics.WithOp(ctx, op), http.MethodGet, target, http.NoBody)
	if err != nil {
		return fmt.Errorf("solr %s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("solr %s: %w: %w", op, domain.ErrIO, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("Solr admin request",
		zap.String("op", op),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("solr %s: decode response: %w: %w", op, domain.ErrIO, err)
	}
	return nil
}
