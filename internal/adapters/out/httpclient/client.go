// Package httpclient is the JSON-over-HTTP transport shared by the ERP and
// RFID clients: per-call timeout, outbound throttling and error
// classification.
package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shopfloor/internal/pkg/errs"

	"golang.org/x/time/rate"
)

const maxErrorBody = 512

type Config struct {
	BaseURL string
	Timeout time.Duration

	// RatePerSecond and Burst throttle outbound calls. RatePerSecond <= 0
	// disables throttling.
	RatePerSecond float64
	Burst         int
}

// Client issues GET requests and decodes JSON bodies.
type Client struct {
	system  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// New returns a client for system, which names the remote in errors.
func New(system string, cfg Config, transport http.RoundTripper) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if _, err := url.ParseRequestURI(base); err != nil || base == "" {
		return nil, errs.NewValueIsInvalidErrorWithCause(system+" base URL", fmt.Errorf("%q: %w", cfg.BaseURL, err))
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		system:  system,
		baseURL: base,
		http:    &http.Client{Timeout: cfg.Timeout, Transport: transport},
		limiter: limiter,
	}, nil
}

func (c *Client) System() string {
	return c.system
}

// Get fetches baseURL+path and decodes the body into out.
//
// Errors:
//   - *errs.ObjectNotFoundError on 404, with subject and key as its fields
//   - *errs.ExternalTransientError on timeouts, connection failures, 429 and 5xx
//   - a plain error for any other status or an undecodable body
func (c *Client) Get(ctx context.Context, operation, subject, key, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errs.NewExternalTransientError(c.system, operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if isTransient(err) {
			return errs.NewExternalTransientError(c.system, operation, err)
		}
		return fmt.Errorf("%s %s: %w", c.system, operation, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return errs.NewObjectNotFoundError(subject, key)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return errs.NewExternalTransientError(c.system, operation, statusError(resp))
	default:
		return fmt.Errorf("%s %s: %w", c.system, operation, statusError(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", c.system, operation, err)
	}
	return nil
}

// PathEscape joins escaped segments into a path starting with "/".
func PathEscape(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
}
