package memory

import (
	"context"
	"testing"
	"time"

	"github.com/ashkan-3rdlaw/pdf-scan/internal/db"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/models"
)

func storedMetric(t *testing.T, r *MetricsRepository, operation string, durationMS float64, docID string, ts time.Time) *models.Metric {
	t.Helper()
	m := models.NewMetric(operation, durationMS, docID, nil)
	m.Timestamp = ts
	if err := r.Store(context.Background(), m); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestMetricsQueryFiltersAreConjunctive(t *testing.T) {
	r := NewMetricsRepository()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	storedMetric(t, r, "scan", 10, "doc-1", base)
	storedMetric(t, r, "scan", 20, "doc-2", base.Add(time.Minute))
	storedMetric(t, r, "upload", 30, "doc-1", base.Add(2*time.Minute))

	got, err := r.Query(ctx, db.MetricFilter{Operation: "scan", DocumentID: "doc-1", Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].DurationMS != 10 {
		t.Fatalf("conjunctive filter returned %+v", got)
	}
}

func TestMetricsQueryTimeWindowAndOrder(t *testing.T) {
	r := NewMetricsRepository()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	early := storedMetric(t, r, "scan", 1, "", base)
	mid := storedMetric(t, r, "scan", 2, "", base.Add(time.Hour))
	late := storedMetric(t, r, "scan", 3, "", base.Add(2*time.Hour))

	start := base.Add(30 * time.Minute)
	got, err := r.Query(ctx, db.MetricFilter{Start: &start, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d metrics, want 2", len(got))
	}
	// Timestamp descending.
	if got[0].ID != late.ID || got[1].ID != mid.ID {
		t.Fatalf("wrong order: %v", got)
	}

	end := base.Add(30 * time.Minute)
	got, err = r.Query(ctx, db.MetricFilter{End: &end, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != early.ID {
		t.Fatalf("end filter returned %+v", got)
	}
}

func TestMetricsQueryPagination(t *testing.T) {
	r := NewMetricsRepository()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		storedMetric(t, r, "scan", float64(i), "", base.Add(time.Duration(i)*time.Second))
	}

	page, err := r.Query(ctx, db.MetricFilter{Limit: 2, Offset: 4})
	if err != nil || len(page) != 1 {
		t.Fatalf("Query(2, 4) = (%d items, %v), want 1 item", len(page), err)
	}
	page, err = r.Query(ctx, db.MetricFilter{Limit: 2, Offset: 10})
	if err != nil || len(page) != 0 {
		t.Fatalf("Query past end = (%d items, %v)", len(page), err)
	}
}

func TestAverageDuration(t *testing.T) {
	r := NewMetricsRepository()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	storedMetric(t, r, "scan", 100, "", base)
	storedMetric(t, r, "scan", 200, "", base.Add(time.Second))
	storedMetric(t, r, "scan", 150, "", base.Add(2*time.Second))
	storedMetric(t, r, "upload", 999, "", base)

	avg, err := r.AverageDuration(ctx, "scan", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if avg != 150.0 {
		t.Fatalf("avg = %v, want 150.0", avg)
	}
}

func TestAverageDurationNoMatches(t *testing.T) {
	r := NewMetricsRepository()
	avg, err := r.AverageDuration(context.Background(), "missing", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if avg != 0.0 {
		t.Fatalf("avg = %v, want exactly 0.0", avg)
	}
}

func TestAverageDurationWindow(t *testing.T) {
	r := NewMetricsRepository()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	storedMetric(t, r, "scan", 100, "", base)
	storedMetric(t, r, "scan", 300, "", base.Add(time.Hour))

	start := base.Add(30 * time.Minute)
	avg, err := r.AverageDuration(ctx, "scan", &start, nil)
	if err != nil {
		t.Fatal(err)
	}
	if avg != 300.0 {
		t.Fatalf("windowed avg = %v, want 300.0", avg)
	}
}
