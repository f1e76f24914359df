package db

import (
	"context"

	"github.com/ashkan-3rdlaw/pdf-scan/internal/models"
)

// DocumentRepository abstracts document storage so the pipeline never depends
// on a specific backend.
type DocumentRepository interface {
	// Store upserts a document by ID; storing an existing ID overwrites it.
	Store(ctx context.Context, doc *models.Document) error

	// Get returns the document or (nil, nil) if the ID is unknown.
	Get(ctx context.Context, id string) (*models.Document, error)

	// UpdateStatus replaces the status (and error message, for failed) of an
	// existing document, leaving every other field unchanged. Returns
	// ErrNotFound for an unknown ID; it never creates a document.
	UpdateStatus(ctx context.Context, id string, status models.DocumentStatus, errorMessage string) error

	// List returns documents sorted by upload time descending, skipping
	// offset rows and returning at most limit. An offset past the end yields
	// an empty slice, not an error.
	List(ctx context.Context, limit, offset int) ([]models.Document, error)
}
