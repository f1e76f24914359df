package db

import (
	"context"

	"github.com/ashkan-3rdlaw/pdf-scan/internal/models"
)

// FindingRepository abstracts finding storage.
type FindingRepository interface {
	// Store upserts a finding by ID.
	Store(ctx context.Context, finding *models.Finding) error

	// GetByDocument returns all findings for a document, sorted by confidence
	// descending with ties in insertion order.
	GetByDocument(ctx context.Context, documentID string) ([]models.Finding, error)

	// GetAll returns findings sorted by confidence descending, optionally
	// filtered by type before pagination is applied.
	GetAll(ctx context.Context, limit, offset int, findingType models.FindingType) ([]models.Finding, error)

	// Count returns the number of findings, for one document when documentID
	// is non-empty or in total otherwise.
	Count(ctx context.Context, documentID string) (int, error)
}
