package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/MJE43/fxparams/internal/metrics"
	"github.com/MJE43/fxparams/internal/sketch"
)

const requestTimeout = 60 * time.Second

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithGatherer sets the registry served on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// Server serves the sketch over HTTP
type Server struct {
	sketch       *sketch.Sketch
	errorHandler *ErrorHandler
	log          zerolog.Logger
	gatherer     prometheus.Gatherer
	startTime    time.Time
}

// NewServer creates a server for an initialised sketch
func NewServer(sk *sketch.Sketch, opts ...Option) *Server {
	s := &Server{
		sketch:    sk,
		log:       zerolog.Nop(),
		gatherer:  prometheus.DefaultGatherer,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.errorHandler = NewErrorHandler(s.log)
	return s
}

// Routes sets up the HTTP routes with middleware
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.errorHandler.RecoveryHandler)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/", s.handlePage)
	r.Post("/randomize", s.handleRandomize)

	r.Get("/health", s.handleHealthCheck)
	r.Get("/health/ready", s.handleReadiness)
	r.Get("/health/live", s.handleLiveness)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Get("/params", s.handleDefinitions)
		r.Get("/params/values", s.handleValues)
		r.Post("/params/random", s.handleRandom)
		r.Get("/params/{id}", s.handleParam)
		r.Get("/features", s.handleFeatures)
	})

	return r
}

// requestLogger logs each request and records its duration by route.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		elapsed := time.Since(start)
		metrics.ObserveRequest(route, strconv.Itoa(status), elapsed)

		s.log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", elapsed).
			Msg("request")
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Fxparams-Version", Version)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}
