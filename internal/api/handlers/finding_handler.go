package handlers

import (
	"net/http"

	"github.com/ashkan-3rdlaw/pdf-scan/internal/db"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/models"
)

type FindingHandler struct {
	backends *db.Backends
}

func NewFindingHandler(backends *db.Backends) *FindingHandler {
	return &FindingHandler{backends: backends}
}

// List returns findings across all documents, sorted by confidence
// descending, optionally filtered by type (?type=ssn).
func (h *FindingHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, 20, 100)
	findingType := models.FindingType(r.URL.Query().Get("type"))

	findings, err := h.backends.Findings.GetAll(r.Context(), limit, offset, findingType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "STORAGE_ERROR")
		return
	}
	total, err := h.backends.Findings.Count(r.Context(), "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "STORAGE_ERROR")
		return
	}

	payload := make([]findingPayload, 0, len(findings))
	for _, f := range findings {
		payload = append(payload, findingPayload{
			ID:         f.ID,
			Type:       f.Type,
			Location:   f.Location,
			Confidence: f.Confidence,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"findings": payload,
		"pagination": map[string]int{
			"limit":    limit,
			"offset":   offset,
			"total":    total,
			"returned": len(payload),
		},
	})
}
