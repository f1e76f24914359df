package app

import (
	"context"
	"log"

	"github.com/ashkan-3rdlaw/pdf-scan/internal/config"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/db"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/db/factory"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/processing"
)

// App wires the backend composition, the pipeline and the HTTP server.
// Everything is constructed once here and shared for the process lifetime.
type App struct {
	Backends  *db.Backends
	Processor *processing.Processor
	Server    *Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	backends, err := factory.NewBackends(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("Backends initialized and ready (backend=%s, scanner=%s).", cfg.Backend, backends.Scanner.Name())

	processor := processing.NewProcessor(backends)
	server := NewServer(cfg, backends, processor)

	return &App{Backends: backends, Processor: processor, Server: server}, nil
}

func (a *App) Close() {
	if a.Backends != nil {
		_ = a.Backends.Close()
	}
}
