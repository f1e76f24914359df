// Package clickhouse implements the repository contracts on ClickHouse, the
// columnar analytics store this service reports into. Documents and findings
// live in ReplacingMergeTree tables keyed by id so Store stays an idempotent
// upsert; reads use FINAL to collapse unmerged duplicates. Metrics are
// append-only and go into a plain MergeTree.
package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id            String,
		filename      String,
		upload_time   DateTime64(3, 'UTC'),
		status        String,
		file_size     Int64,
		error_message String
	) ENGINE = ReplacingMergeTree
	ORDER BY id`,

	`CREATE TABLE IF NOT EXISTS findings (
		id           String,
		document_id  String,
		finding_type String,
		location     String,
		confidence   Float64,
		created_at   DateTime64(3, 'UTC')
	) ENGINE = ReplacingMergeTree
	ORDER BY id`,

	`CREATE TABLE IF NOT EXISTS metrics (
		id          String,
		operation   String,
		duration_ms Float64,
		timestamp   DateTime64(3, 'UTC'),
		document_id String,
		metadata    String
	) ENGINE = MergeTree
	ORDER BY (timestamp, id)`,
}

// Open connects to ClickHouse and ensures the schema exists.
func Open(ctx context.Context, addr, database, user, password string) (*sql.DB, error) {
	sqlDB := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: database,
			Username: user,
			Password: password,
		},
		DialTimeout: 10 * time.Second,
	})

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	for _, ddl := range schema {
		if _, err := sqlDB.ExecContext(ctx, ddl); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("clickhouse bootstrap: %w", err)
		}
	}
	return sqlDB, nil
}
