package clickhouse

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
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
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, q,
		metric.ID, metric.Operation, metric.DurationMS, metric.Timestamp,
		metric.DocumentID, string(meta))
	return err
}

func (r *MetricsRepository) Query(ctx context.Context, filter db.MetricFilter) ([]models.Metric, error) {
	where, args := metricConditions(filter.Operation, filter.DocumentID, filter.Start, filter.End)
	q := `
		SELECT id, operation, duration_ms, timestamp, document_id, metadata
		FROM metrics
	` + where + `
		ORDER BY timestamp DESC
		LIMIT ? OFFSET ?
	`
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
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
	where, args := metricConditions(operation, "", start, end)
	q := `
		SELECT avgOrDefault(duration_ms)
		FROM metrics
	` + where
	var avg float64
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&avg); err != nil {
		return 0, err
	}
	return avg, nil
}

// metricConditions builds a conjunctive WHERE clause for the set filters.
func metricConditions(operation, documentID string, start, end *time.Time) (string, []any) {
	conds := []string{}
	args := []any{}
	if operation != "" {
		conds = append(conds, "operation = ?")
		args = append(args, operation)
	}
	if documentID != "" {
		conds = append(conds, "document_id = ?")
		args = append(args, documentID)
	}
	if start != nil {
		conds = append(conds, "timestamp >= ?")
		args = append(args, *start)
	}
	if end != nil {
		conds = append(conds, "timestamp <= ?")
		args = append(args, *end)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
