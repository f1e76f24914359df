// Package processing orchestrates the document pipeline: persist, scan,
// record findings and metrics, and track status transitions.
package processing

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ashkan-3rdlaw/pdf-scan/internal/db"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/models"
)

// UploadResult is the payload returned to the caller after an upload has
// been processed.
type UploadResult struct {
	DocumentID    string                `json:"document_id"`
	Filename      string                `json:"filename"`
	Status        models.DocumentStatus `json:"status"`
	UploadTime    time.Time             `json:"upload_time"`
	FileSize      int64                 `json:"file_size"`
	FindingsCount int                   `json:"findings_count"`
}

// Processor runs the upload pipeline against a shared Backends composition.
// Each call is independent; concurrent uploads only meet at the repositories,
// which handle their own locking.
type Processor struct {
	backends *db.Backends
}

func NewProcessor(backends *db.Backends) *Processor {
	return &Processor{backends: backends}
}

// ProcessUpload drives one document through pending -> processing ->
// completed, or -> failed on any error between temp-file creation and
// metric recording.
//
// Failure semantics: the document's error message captures the cause
// verbatim and the error is returned unchanged, never swallowed. Finding
// writes committed before the failure are not rolled back. Repository
// failures on the document store itself are fatal; there is no retry.
// The temp file is removed on every exit path. The "upload" metric is
// recorded on the success path only.
func (p *Processor) ProcessUpload(ctx context.Context, filename string, fileSize int64, content []byte) (*UploadResult, error) {
	start := time.Now()

	doc := models.NewDocument(filename, fileSize)
	if err := p.backends.Documents.Store(ctx, doc); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	if err := p.backends.Documents.UpdateStatus(ctx, doc.ID, models.StatusProcessing, ""); err != nil {
		return nil, fmt.Errorf("mark document processing: %w", err)
	}

	findingsCount, err := p.scanAndRecord(ctx, doc.ID, content)
	if err != nil {
		if uerr := p.backends.Documents.UpdateStatus(ctx, doc.ID, models.StatusFailed, err.Error()); uerr != nil {
			return nil, fmt.Errorf("mark document failed: %w", uerr)
		}
		return nil, err
	}

	uploadMetric := models.NewMetric("upload", durationMS(start), doc.ID, map[string]any{
		"file_size": fileSize,
		"filename":  filename,
	})
	if err := p.backends.Metrics.Store(ctx, uploadMetric); err != nil {
		return nil, fmt.Errorf("store upload metric: %w", err)
	}

	// Re-fetch so the response reflects the persisted status, not the
	// in-memory transition.
	status := doc.Status
	if final, err := p.backends.Documents.Get(ctx, doc.ID); err == nil && final != nil {
		status = final.Status
	}

	return &UploadResult{
		DocumentID:    doc.ID,
		Filename:      filename,
		Status:        status,
		UploadTime:    doc.UploadTime,
		FileSize:      fileSize,
		FindingsCount: findingsCount,
	}, nil
}

// scanAndRecord writes the content to a scoped temp file, scans it, persists
// the findings under the real document ID and marks the document completed.
func (p *Processor) scanAndRecord(ctx context.Context, documentID string, content []byte) (int, error) {
	tmp, err := os.CreateTemp("", "pdf_scan_"+documentID+"_*.pdf")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close temp file: %w", err)
	}

	scanStart := time.Now()
	findings, err := p.backends.Scanner.Scan(ctx, tmpPath)
	if err != nil {
		return 0, err
	}

	for i := range findings {
		f := findings[i]
		// The scanner emits a placeholder document ID; persist under ours.
		f.DocumentID = documentID
		if err := p.backends.Findings.Store(ctx, &f); err != nil {
			return 0, fmt.Errorf("store finding: %w", err)
		}
	}

	if err := p.backends.Documents.UpdateStatus(ctx, documentID, models.StatusCompleted, ""); err != nil {
		return 0, fmt.Errorf("mark document completed: %w", err)
	}

	scanMetric := models.NewMetric("scan", durationMS(scanStart), documentID, map[string]any{
		"findings_count": len(findings),
		"scanner_type":   p.backends.Scanner.Name(),
	})
	if err := p.backends.Metrics.Store(ctx, scanMetric); err != nil {
		return 0, fmt.Errorf("store scan metric: %w", err)
	}
	return len(findings), nil
}

func durationMS(since time.Time) float64 {
	return float64(time.Since(since).Microseconds()) / 1000.0
}
