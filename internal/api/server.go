// Package api exposes the assessment and visualization pipeline over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/pipeline"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/report"
)

// Maximum accepted request body. Wallet snapshots are small; anything
// larger is malformed or abusive.
const maxBodyBytes = 8 << 20

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	prices report.PriceSource
	logger *log.Logger
}

// NewServer creates an API server. prices may be nil, in which case
// report endpoints return null fiat values.
func NewServer(runner *pipeline.Runner, prices report.PriceSource, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, prices: prices, logger: logger}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/assess", s.handleAssess)
		r.Post("/layout", s.handleLayout)
		r.Post("/report", s.handleReport)
	})
	return r
}

// logRequests logs one line per request with the request ID for correlation.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
