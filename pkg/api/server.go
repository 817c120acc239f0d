// Package api serves the codec catalog and the value store over HTTP.
//
// Routes under /api/v1 require the X-API-Key header. /metrics is open for
// scraping.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const defaultShutdownTimeout = 5 * time.Second

// NewRouter returns the HTTP handler for s
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", s.metricsHandler())

	m := s.metrics
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(m.InstrumentAuthMiddleware(apiKeyMiddleware(s.config.APIKey)))

		r.Get("/health", m.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))
		r.Get("/types", m.InstrumentHandler("GET", "/api/v1/types", s.handleTypes))

		// Codec
		r.Post("/encode/{type}", m.InstrumentHandler("POST", "/api/v1/encode/{type}", s.handleEncode))
		r.Post("/decode/{type}", m.InstrumentHandler("POST", "/api/v1/decode/{type}", s.handleDecode))

		// Stored values
		r.Get("/values", m.InstrumentHandler("GET", "/api/v1/values", s.handleListValues))
		r.Put("/values/{type}", m.InstrumentHandler("PUT", "/api/v1/values/{type}", s.handlePutValue))
		r.Get("/values/{type}/{id}", m.InstrumentHandler("GET", "/api/v1/values/{type}/{id}", s.handleGetValue))
		r.Delete("/values/{id}", m.InstrumentHandler("DELETE", "/api/v1/values/{id}", s.handleDeleteValue))
	})

	return r
}

func (s *Server) metricsHandler() http.Handler {
	if s.gatherer != nil {
		return promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})
	}
	return promhttp.Handler()
}

// WithGatherer makes /metrics serve g instead of the default registry
func (s *Server) WithGatherer(g prometheus.Gatherer) *Server {
	s.gatherer = g
	return s
}

// Run serves handler on config.Addr until ctx is cancelled, then shuts the
// server down gracefully. It returns nil after a clean shutdown.
func Run(ctx context.Context, config ServerConfig, handler http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              config.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", config.Addr).Msg("starting transmit API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		logger.Info().Msg("shutting down transmit API server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
