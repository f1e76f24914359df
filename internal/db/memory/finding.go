package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ashkan-3rdlaw/pdf-scan/internal/models"
)

// FindingRepository stores findings in memory. Insertion order is tracked so
// confidence ties sort stably, matching the durable backends' created_at
// tie-break.
type FindingRepository struct {
	mu       sync.RWMutex
	findings map[string]models.Finding
	order    []string // IDs in first-insertion order
}

func NewFindingRepository() *FindingRepository {
	return &FindingRepository{findings: make(map[string]models.Finding)}
}

func (r *FindingRepository) Store(ctx context.Context, finding *models.Finding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.findings[finding.ID]; !ok {
		r.order = append(r.order, finding.ID)
	}
	r.findings[finding.ID] = *finding
	return nil
}

func (r *FindingRepository) GetByDocument(ctx context.Context, documentID string) ([]models.Finding, error) {
	r.mu.RLock()
	findings := r.snapshot(func(f models.Finding) bool { return f.DocumentID == documentID })
	r.mu.RUnlock()

	sortByConfidence(findings)
	return findings, nil
}

func (r *FindingRepository) GetAll(ctx context.Context, limit, offset int, findingType models.FindingType) ([]models.Finding, error) {
	r.mu.RLock()
	findings := r.snapshot(func(f models.Finding) bool {
		return findingType == "" || f.Type == findingType
	})
	r.mu.RUnlock()

	sortByConfidence(findings)
	if offset >= len(findings) {
		return []models.Finding{}, nil
	}
	end := offset + limit
	if end > len(findings) {
		end = len(findings)
	}
	return findings[offset:end], nil
}

func (r *FindingRepository) Count(ctx context.Context, documentID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if documentID == "" {
		return len(r.findings), nil
	}
	n := 0
	for _, f := range r.findings {
		if f.DocumentID == documentID {
			n++
		}
	}
	return n, nil
}

// snapshot copies matching findings in insertion order. Caller holds the lock.
func (r *FindingRepository) snapshot(keep func(models.Finding) bool) []models.Finding {
	out := make([]models.Finding, 0, len(r.order))
	for _, id := range r.order {
		f := r.findings[id]
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

func sortByConfidence(findings []models.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Confidence > findings[j].Confidence
	})
}
