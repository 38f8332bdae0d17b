package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/th13vn/solast/internal/metrics"
	"github.com/th13vn/solast/pkg/diagnostics"
	"github.com/th13vn/solast/pkg/parser"
)

// runServe starts the /parse HTTP service and a separate /metrics service,
// and blocks until SIGINT/SIGTERM.
func runServe(cmd *cobra.Command, args []string) error {
	metricsServer := metrics.NewServer(metricsAddr)
	if err := metricsServer.Start(); err != nil {
		return err
	}

	handler := &parseHandler{metrics: metricsServer.Metrics()}
	mux := http.NewServeMux()
	mux.Handle("/parse", loggingMiddleware(handler))

	httpServer := &http.Server{
		Addr:              serveAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("parse service started", "addr", serveAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return metricsServer.Stop(shutdownCtx)
}

// parseHandler implements POST /parse: body is source text, response is
// JSON carrying the parsed AST, the diagnostics, or both (a tolerant parse
// that hit syntax errors returns its best-effort AST alongside them).
type parseHandler struct {
	metrics *metrics.Metrics
}

type parseResponse struct {
	OK          bool        `json:"ok"`
	AST         interface{} `json:"ast,omitempty"`
	Diagnostics []diagResp  `json:"diagnostics,omitempty"`
}

type diagResp struct {
	Kind    string `json:"kind"`
	Code    string `json:"code"`
	Span    string `json:"span"`
	Message string `json:"message"`
}

func (h *parseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "cannot read request body", http.StatusBadRequest)
		return
	}

	start := time.Now()
	unit, parseErr := parser.Parse(string(body), &parser.Options{Tolerant: true})
	duration := time.Since(start)

	resp := parseResponse{OK: parseErr == nil}
	outcome := metrics.OutcomeOK

	if parseErr != nil {
		resp.OK = false
		bundle, ok := parseErr.(*diagnostics.Bundle)
		if !ok {
			bundle = &diagnostics.Bundle{Errors: []*diagnostics.Error{asDiagOrNil(parseErr)}}
		}
		for _, d := range bundle.Errors {
			if d == nil {
				continue
			}
			if d.Kind == diagnostics.KindLexical {
				outcome = metrics.OutcomeLexicalError
			} else if outcome != metrics.OutcomeLexicalError {
				outcome = metrics.OutcomeSyntaxError
			}
			resp.Diagnostics = append(resp.Diagnostics, diagResp{
				Kind:    string(d.Kind),
				Code:    d.Code,
				Span:    d.Span.String(),
				Message: d.Error(),
			})
		}
	}
	if unit != nil {
		resp.AST = unit
	}

	h.metrics.Observe(outcome, duration)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode parse response", "error", err)
	}
}

func asDiagOrNil(err error) *diagnostics.Error {
	if d, ok := err.(*diagnostics.Error); ok {
		return d
	}
	return nil
}

// loggingMiddleware logs one structured line per request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
