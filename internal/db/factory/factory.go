// Package factory builds the Backends composition for the configured storage
// backend. Selection happens here, once at process startup; nothing downstream
// ever inspects concrete types.
package factory

import (
	"context"
	"fmt"

	"github.com/ashkan-3rdlaw/pdf-scan/internal/config"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/db"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/db/clickhouse"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/db/memory"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/db/postgres"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/scanner"
)

// NewBackends constructs the repositories and scanner for cfg.Backend.
// The returned Backends is meant to be built exactly once and shared by
// every request for the life of the process.
func NewBackends(ctx context.Context, cfg *config.Config) (*db.Backends, error) {
	sc := scanner.NewRegexScanner()

	switch cfg.Backend {
	case config.BackendMemory:
		return db.NewBackends(
			memory.NewDocumentRepository(),
			memory.NewFindingRepository(),
			memory.NewMetricsRepository(),
			sc,
			nil,
		), nil

	case config.BackendPostgres:
		sqlDB, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres backend: %w", err)
		}
		return db.NewBackends(
			postgres.NewDocumentRepository(sqlDB),
			postgres.NewFindingRepository(sqlDB),
			postgres.NewMetricsRepository(sqlDB),
			sc,
			sqlDB.Close,
		), nil

	case config.BackendClickHouse:
		sqlDB, err := clickhouse.Open(ctx, cfg.ClickHouseAddr, cfg.ClickHouseDatabase, cfg.ClickHouseUser, cfg.ClickHousePassword)
		if err != nil {
			return nil, fmt.Errorf("clickhouse backend: %w", err)
		}
		return db.NewBackends(
			clickhouse.NewDocumentRepository(sqlDB),
			clickhouse.NewFindingRepository(sqlDB),
			clickhouse.NewMetricsRepository(sqlDB),
			sc,
			sqlDB.Close,
		), nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
