package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/nftjctl/nftjctl/internal/logging"
)

// Exporter serves a registry over HTTP at /metrics.
type Exporter struct {
	registry *Registry
	logger   *logging.Logger
	srv      *http.Server
}

// NewExporter creates an exporter for reg. A nil reg gets the global
// registry, a nil logger the default.
func NewExporter(reg *Registry, logger *logging.Logger) *Exporter {
	if reg == nil {
		reg = Get()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Exporter{
		registry: reg,
		logger:   logger.WithComponent("exporter"),
	}
}

// ListenAndServe blocks serving /metrics on addr until Shutdown.
func (e *Exporter) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.registry.Handler())

	e.srv = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	e.logger.Info("serving metrics", "addr", addr)
	err := e.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the HTTP server gracefully.
func (e *Exporter) Shutdown(ctx context.Context) error {
	if e.srv == nil {
		return nil
	}
	return e.srv.Shutdown(ctx)
}
