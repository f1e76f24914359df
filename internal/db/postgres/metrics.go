package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ashkan-3rdlaw/pdf-scan/internal/db"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/models"
)

type MetricsRepository struct {
	db *sql.DB
}

func NewMetricsRepository(sqlDB *sql.DB) *MetricsRepository {
	return &MetricsRepository{db: sqlDB}
}

func (r *MetricsRepository) Store(ctx context.Context, metric *models.Metric) error {
	meta, err := json.Marshal(metric.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metric metadata: %w", err)
	}
	const q = `
		INSERT INTO metrics (id, operation, duration_ms, timestamp, document_id, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.ExecContext(ctx, q,
		metric.ID, metric.Operation, metric.DurationMS, metric.Timestamp, metric.DocumentID, string(meta))
	return err
}

func (r *MetricsRepository) Query(ctx context.Context, filter db.MetricFilter) ([]models.Metric, error) {
	const q = `
		SELECT id, operation, duration_ms, timestamp, document_id, metadata
		FROM metrics
		WHERE ($1 = '' OR operation = $1)
		  AND ($2 = '' OR document_id = $2)
		  AND ($3::timestamptz IS NULL OR timestamp >= $3)
		  AND ($4::timestamptz IS NULL OR timestamp <= $4)
		ORDER BY timestamp DESC
		LIMIT $5 OFFSET $6
	`
	rows, err := r.db.QueryContext(ctx, q,
		filter.Operation, filter.DocumentID, nullTime(filter.Start), nullTime(filter.End),
		filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Metric{}
	for rows.Next() {
		var (
			m    models.Metric
			meta string
		)
		if err := rows.Scan(
			&m.ID, &m.Operation, &m.DurationMS, &m.Timestamp, &m.DocumentID, &meta,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(meta), &m.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metric metadata: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MetricsRepository) AverageDuration(ctx context.Context, operation string, start, end *time.Time) (float64, error) {
	// COALESCE keeps the zero-match case at 0.0 instead of NULL.
	const q = `
		SELECT COALESCE(AVG(duration_ms), 0)
		FROM metrics
		WHERE operation = $1
		  AND ($2::timestamptz IS NULL OR timestamp >= $2)
		  AND ($3::timestamptz IS NULL OR timestamp <= $3)
	`
	var avg float64
	if err := r.db.QueryRowContext(ctx, q, operation, nullTime(start), nullTime(end)).Scan(&avg); err != nil {
		return 0, err
	}
	return avg, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
