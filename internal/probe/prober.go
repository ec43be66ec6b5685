// Package probe performs the HTTP checks behind link validation: plain
// reachability and the content marker lookup.
//
// Transport failures never escape this package. They are logged and reported
// as "not reachable".
package probe

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"git.home.luguber.info/inful/apilinks/internal/foundation/errors"
	"git.home.luguber.info/inful/apilinks/internal/logfields"
)

// DefaultTimeout applies to every request when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// maxBodyBytes bounds how much of a page is scanned for a marker.
const maxBodyBytes = 16 << 20

// Prober issues GET requests with one uniform timeout.
type Prober struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// Option configures a Prober.
type Option func(*Prober)

// WithHTTPClient uses a copy of c as the underlying client. The copy takes
// the prober's timeout when c has none; c itself is never modified.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Prober) {
		timeout := p.client.Timeout
		client := *c
		if client.Timeout == 0 {
			client.Timeout = timeout
		}
		p.client = &client
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(p *Prober) { p.userAgent = ua }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Prober) { p.logger = l }
}

// New creates a Prober. A non-positive timeout falls back to DefaultTimeout.
func New(timeout time.Duration, opts ...Option) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	// Clone so HTTP_PROXY, HTTPS_PROXY and NO_PROXY are still honored.
	transport := http.DefaultTransport.(*http.Transport).Clone()
	p := &Prober{
		client:    &http.Client{Timeout: timeout, Transport: transport},
		userAgent: "apilinks",
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Timeout returns the per-request timeout.
func (p *Prober) Timeout() time.Duration {
	return p.client.Timeout
}

// Reachable reports whether a GET for rawURL answers with HTTP 200.
func (p *Prober) Reachable(ctx context.Context, rawURL string) bool {
	resp, ok := p.get(ctx, rawURL)
	if !ok {
		return false
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	return resp.StatusCode == http.StatusOK
}

// ContainsMarker fetches rawURL and reports whether the decoded body contains
// marker. A non-200 answer or a failed fetch counts as "marker missing".
func (p *Prober) ContainsMarker(ctx context.Context, rawURL, marker string) bool {
	resp, ok := p.get(ctx, rawURL)
	if !ok {
		return false
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return false
	}

	var body io.Reader = io.LimitReader(resp.Body, maxBodyBytes)
	if decoded, err := charset.NewReader(body, resp.Header.Get("Content-Type")); err == nil {
		body = decoded
	} else {
		p.logger.Debug("Falling back to raw page bytes", logfields.URL(rawURL), logfields.Error(err))
	}

	data, err := io.ReadAll(body)
	if err != nil {
		p.logNetworkError(rawURL, "read page body", err)
		return false
	}
	return strings.Contains(string(data), marker)
}

// get performs the request. ok is false on any transport failure.
func (p *Prober) get(ctx context.Context, rawURL string) (*http.Response, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		p.logNetworkError(rawURL, "build request", err)
		return nil, false
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		p.logNetworkError(rawURL, "request failed", err)
		return nil, false
	}
	p.logger.Debug("Fetched URL",
		logfields.URL(rawURL),
		logfields.HTTPStatus(resp.StatusCode),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return resp, true
}

func (p *Prober) logNetworkError(rawURL, msg string, err error) {
	classified := errors.WrapError(err, errors.CategoryNetwork, msg).
		Warning().
		WithContext(logfields.KeyURL, rawURL).
		Build()
	p.logger.LogAttrs(context.Background(), slog.LevelWarn, classified.Message(), classified.LogAttrs()...)
}
