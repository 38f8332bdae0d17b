// Package metrics instruments the serve command: a counter of parse attempts
// by outcome and a histogram of parse duration, exposed over a small
// Prometheus HTTP server separate from the parser's own request traffic.
package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome classifies a completed parse attempt for the ParseAttemptsTotal
// counter's "outcome" label.
type Outcome string

const (
	OutcomeOK           Outcome = "ok"
	OutcomeLexicalError Outcome = "lexical_error"
	OutcomeSyntaxError  Outcome = "syntax_error"
)

// Metrics holds the serve command's custom Prometheus instruments.
type Metrics struct {
	ParseAttemptsTotal *prometheus.CounterVec
	ParseDuration      prometheus.Histogram
}

// NewMetrics creates and registers the serve command's custom metrics
// against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ParseAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "solast_parse_attempts_total",
				Help: "Total number of parse attempts by outcome",
			},
			[]string{"outcome"},
		),
		ParseDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "solast_parse_duration_seconds",
				Help:    "Duration of a parse attempt in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	reg.MustRegister(m.ParseAttemptsTotal)
	reg.MustRegister(m.ParseDuration)

	return m
}

// Observe records one completed parse attempt.
func (m *Metrics) Observe(outcome Outcome, duration time.Duration) {
	m.ParseAttemptsTotal.WithLabelValues(string(outcome)).Inc()
	m.ParseDuration.Observe(duration.Seconds())
}

// Server exposes /metrics in Prometheus exposition format on its own
// listener, separate from the serve command's /parse traffic.
type Server struct {
	addr       string
	listener   net.Listener
	httpServer *http.Server
	registry   *prometheus.Registry
	metrics    *Metrics
	running    atomic.Bool
}

// NewServer creates a metrics server bound to addr. It registers the
// standard Go/process collectors alongside the solast-specific instruments.
func NewServer(addr string) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Server{
		addr:     addr,
		registry: registry,
		metrics:  NewMetrics(registry),
	}
}

// Metrics returns the instruments for the caller to record against.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start begins serving /metrics in the background.
func (s *Server) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("metrics server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	s.listener = listener

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{EnableOpenMetrics: true}))

	s.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if serveErr := s.httpServer.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			slog.Error("metrics server error", "error", serveErr)
		}
	}()

	slog.Info("metrics server started", "addr", listener.Addr().String())
	return nil
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.Load() {
		return nil
	}
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown metrics server: %w", err)
		}
	}
	s.running.Store(false)
	slog.Info("metrics server stopped")
	return nil
}

// Addr returns the address the server is listening on, or "" if not started.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}
