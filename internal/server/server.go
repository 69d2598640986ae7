// Package server exposes the run's Prometheus metrics over HTTP while the
// parallel phase is in flight. The endpoint is optional and scoped to the
// lifetime of a single run.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/agbru/mtcollatz/internal/logging"
	"github.com/agbru/mtcollatz/internal/metrics"
)

// ReadHeaderTimeout bounds how long a client may take to send request
// headers. The endpoint only ever serves scrapes, so a short limit is enough.
const ReadHeaderTimeout = 5 * time.Second

// Server serves /metrics and /healthz on a dedicated listener.
type Server struct {
	httpServer *http.Server
	log        logging.Logger
}

// New builds a Server for the given listen address and run metrics.
func New(addr string, m *metrics.RunMetrics, log logging.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           newMux(m),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		log: log,
	}
}

// newMux builds the route table for the endpoint.
func newMux(m *metrics.RunMetrics) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}

// Start begins serving in a background goroutine. Listen failures are logged,
// not fatal: the metrics endpoint is auxiliary and must never abort a run.
func (s *Server) Start() {
	s.log.Info("metrics endpoint listening", logging.String("addr", s.httpServer.Addr))
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("metrics endpoint failed", err)
		}
	}()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
