// Package reporting forwards unexpected errors to Sentry when a DSN is
// configured.
package reporting

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
)

type Config struct {
	Dsn         string
	Environment string
	Release     string
	Debug       bool
}

type Reporter struct {
	enabled bool
}

func New(cfg Config) (*Reporter, error) {
	if cfg.Dsn == "" {
		return &Reporter{}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Dsn,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		Debug:            cfg.Debug,
		AttachStacktrace: true,
		SampleRate:       1.0,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sentry: %w", err)
	}

	return &Reporter{enabled: true}, nil
}

func (r *Reporter) Enabled() bool {
	return r != nil && r.enabled
}

// CaptureRequestError reports err with the request it happened in.
func (r *Reporter) CaptureRequestError(req *http.Request, err error) {
	if !r.Enabled() {
		return
	}

	hub := sentry.GetHubFromContext(req.Context())
	if hub == nil {
		hub = sentry.CurrentHub().Clone()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetRequest(req)
		scope.SetTag("route", req.URL.Path)
		hub.CaptureException(err)
	})
}

func (r *Reporter) CaptureError(ctx context.Context, err error) {
	if !r.Enabled() {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}

// Flush waits for buffered events before the process exits.
func (r *Reporter) Flush(timeout time.Duration) bool {
	if !r.Enabled() {
		return true
	}
	return sentry.Flush(timeout)
}

// Middleware attaches a per-request hub so captured errors carry request
// data. Panics are re-raised for the router's recoverer.
func (r *Reporter) Middleware(next http.Handler) http.Handler {
	if !r.Enabled() {
		return next
	}
	return sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(next)
}
