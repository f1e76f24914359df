package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ashkan-3rdlaw/pdf-scan/internal/config"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/db"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/models"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/processing"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/scanner"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/validation"
)

type DocumentHandler struct {
	backends  *db.Backends
	processor *processing.Processor
	cfg       *config.Config
}

func NewDocumentHandler(backends *db.Backends, processor *processing.Processor, cfg *config.Config) *DocumentHandler {
	return &DocumentHandler{backends: backends, processor: processor, cfg: cfg}
}

// Upload receives a multipart PDF, validates it and runs the processing
// pipeline. Validation failures map to 400/413; scanner failures to 400/422;
// anything else to 500.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", "INVALID_FORM")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided", "MISSING_FILE")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read file: "+err.Error(), "FILE_READ_ERROR")
		return
	}

	// Strip any path components from the client-supplied name.
	filename := filepath.Base(header.Filename)
	contentType := header.Header.Get("Content-Type")
	fileSize := int64(len(content))

	if err := validation.ValidatePDFUpload(filename, contentType, fileSize, h.cfg.MaxUploadBytes); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			status := http.StatusBadRequest
			if verr.Code == validation.CodeFileTooLarge {
				status = http.StatusRequestEntityTooLarge
			}
			writeError(w, status, verr.Message, verr.Code)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	result, err := h.processor.ProcessUpload(r.Context(), filename, fileSize, content)
	if err != nil {
		log.Printf("upload processing failed for %q: %v", filename, err)
		switch {
		case errors.Is(err, scanner.ErrInvalidPDF):
			writeError(w, http.StatusBadRequest, err.Error(), "INVALID_PDF")
		case errors.Is(err, scanner.ErrEncrypted):
			writeError(w, http.StatusUnprocessableEntity, err.Error(), "UNSUPPORTED_PDF")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to process document: "+err.Error(), "PROCESSING_ERROR")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// List returns documents ordered by upload time, newest first.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, 20, 100)

	docs, err := h.backends.Documents.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "STORAGE_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"documents": docs,
		"pagination": map[string]int{
			"limit":    limit,
			"offset":   offset,
			"returned": len(docs),
		},
	})
}

type findingPayload struct {
	ID         string             `json:"id"`
	Type       models.FindingType `json:"type"`
	Location   string             `json:"location"`
	Confidence float64            `json:"confidence"`
}

type documentFindingsPayload struct {
	DocumentID string                `json:"document_id"`
	Filename   string                `json:"filename"`
	UploadTime time.Time             `json:"upload_time"`
	Status     models.DocumentStatus `json:"status"`
	FileSize   int64                 `json:"file_size"`
	Findings   []findingPayload      `json:"findings"`
}

// GetFindings returns a document plus all its findings, highest confidence
// first, or 404 for an unknown document ID.
func (h *DocumentHandler) GetFindings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := h.backends.Documents.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "STORAGE_ERROR")
		return
	}
	if doc == nil {
		writeError(w, http.StatusNotFound, "Document not found: "+id, "NOT_FOUND")
		return
	}

	findings, err := h.backends.Findings.GetByDocument(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error(), "STORAGE_ERROR")
		return
	}

	payload := documentFindingsPayload{
		DocumentID: doc.ID,
		Filename:   doc.Filename,
		UploadTime: doc.UploadTime,
		Status:     doc.Status,
		FileSize:   doc.FileSize,
		Findings:   make([]findingPayload, 0, len(findings)),
	}
	for _, f := range findings {
		payload.Findings = append(payload.Findings, findingPayload{
			ID:         f.ID,
			Type:       f.Type,
			Location:   f.Location,
			Confidence: f.Confidence,
		})
	}
	writeJSON(w, http.StatusOK, payload)
}
