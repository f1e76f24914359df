// Package memory provides the in-process reference implementations of the
// repository contracts, backed by mutex-guarded maps. Used as the default
// backend and throughout the tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ashkan-3rdlaw/pdf-scan/internal/db"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/models"
)

// DocumentRepository stores documents in memory.
type DocumentRepository struct {
	mu   sync.RWMutex
	docs map[string]models.Document
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{docs: make(map[string]models.Document)}
}

func (r *DocumentRepository) Store(ctx context.Context, doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = *doc
	return nil
}

func (r *DocumentRepository) Get(ctx context.Context, id string) (*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (r *DocumentRepository) UpdateStatus(ctx context.Context, id string, status models.DocumentStatus, errorMessage string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return db.ErrNotFound
	}
	doc.Status = status
	doc.ErrorMessage = ""
	if status == models.StatusFailed {
		doc.ErrorMessage = errorMessage
	}
	r.docs[id] = doc
	return nil
}

func (r *DocumentRepository) List(ctx context.Context, limit, offset int) ([]models.Document, error) {
	r.mu.RLock()
	docs := make([]models.Document, 0, len(r.docs))
	for _, d := range r.docs {
		docs = append(docs, d)
	}
	r.mu.RUnlock()

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].UploadTime.After(docs[j].UploadTime)
	})
	return paginateDocuments(docs, limit, offset), nil
}

func paginateDocuments(docs []models.Document, limit, offset int) []models.Document {
	if offset >= len(docs) {
		return []models.Document{}
	}
	end := offset + limit
	if end > len(docs) {
		end = len(docs)
	}
	return docs[offset:end]
}
