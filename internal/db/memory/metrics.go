package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ashkan-3rdlaw/pdf-scan/internal/db"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/models"
)

// MetricsRepository stores metrics in memory, append-only.
type MetricsRepository struct {
	mu      sync.RWMutex
	metrics []models.Metric
}

func NewMetricsRepository() *MetricsRepository {
	return &MetricsRepository{}
}

func (r *MetricsRepository) Store(ctx context.Context, metric *models.Metric) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics = append(r.metrics, *metric)
	return nil
}

func (r *MetricsRepository) Query(ctx context.Context, filter db.MetricFilter) ([]models.Metric, error) {
	r.mu.RLock()
	matched := r.match(filter.Operation, filter.DocumentID, filter.Start, filter.End)
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	if filter.Offset >= len(matched) {
		return []models.Metric{}, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], nil
}

func (r *MetricsRepository) AverageDuration(ctx context.Context, operation string, start, end *time.Time) (float64, error) {
	r.mu.RLock()
	matched := r.match(operation, "", start, end)
	r.mu.RUnlock()

	if len(matched) == 0 {
		return 0.0, nil
	}
	total := 0.0
	for _, m := range matched {
		total += m.DurationMS
	}
	return total / float64(len(matched)), nil
}

// match applies conjunctive filters. Caller holds the lock.
func (r *MetricsRepository) match(operation, documentID string, start, end *time.Time) []models.Metric {
	out := make([]models.Metric, 0, len(r.metrics))
	for _, m := range r.metrics {
		if operation != "" && m.Operation != operation {
			continue
		}
		if documentID != "" && m.DocumentID != documentID {
			continue
		}
		if start != nil && m.Timestamp.Before(*start) {
			continue
		}
		if end != nil && m.Timestamp.After(*end) {
			continue
		}
		out = append(out, m)
	}
	return out
}
