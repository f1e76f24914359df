package db

import (
	"context"
	"time"

	"github.com/ashkan-3rdlaw/pdf-scan/internal/models"
)

// MetricFilter narrows a metrics query. Zero values mean "no filter";
// filters are conjunctive when several are set.
type MetricFilter struct {
	Operation  string
	DocumentID string
	Start      *time.Time
	End        *time.Time
	Limit      int
	Offset     int
}

// MetricsRepository abstracts append-only metric storage.
type MetricsRepository interface {
	// Store appends a metric.
	Store(ctx context.Context, metric *models.Metric) error

	// Query returns metrics matching the filter, sorted by timestamp descending.
	Query(ctx context.Context, filter MetricFilter) ([]models.Metric, error)

	// AverageDuration returns the arithmetic mean of duration_ms for an
	// operation within the optional time window, or 0.0 when nothing matches.
	AverageDuration(ctx context.Context, operation string, start, end *time.Time) (float64, error)
}
