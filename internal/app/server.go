package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"github.com/ashkan-3rdlaw/pdf-scan/internal/api/handlers"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/config"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/db"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/processing"
)

const Version = "0.1.0"

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, backends *db.Backends, processor *processing.Processor) *Server {
	docHandler := handlers.NewDocumentHandler(backends, processor, cfg)
	findingHandler := handlers.NewFindingHandler(backends)
	metricsHandler := handlers.NewMetricsHandler(backends)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","version":"` + Version + `"}`))
	})

	r.Post("/upload", docHandler.Upload)
	r.Get("/documents", docHandler.List)
	r.Get("/documents/{id}/findings", docHandler.GetFindings)
	r.Get("/findings", findingHandler.List)
	r.Get("/metrics", metricsHandler.Query)
	r.Get("/metrics/average", metricsHandler.Average)

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("HTTP server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
