package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentStatus tracks where a document is in the processing pipeline.
type DocumentStatus string

const (
	StatusPending    DocumentStatus = "pending"
	StatusProcessing DocumentStatus = "processing"
	StatusCompleted  DocumentStatus = "completed"
	StatusFailed     DocumentStatus = "failed"
)

// FindingType identifies the kind of sensitive data detected.
type FindingType string

const (
	FindingSSN   FindingType = "ssn"
	FindingEmail FindingType = "email"
	// Extensible - add more types as needed
)

// Document represents an uploaded PDF and its processing state.
// ErrorMessage is set only when Status is failed.
type Document struct {
	ID           string         `db:"id" json:"id"`
	Filename     string         `db:"filename" json:"filename"`
	UploadTime   time.Time      `db:"upload_time" json:"upload_time"`
	Status       DocumentStatus `db:"status" json:"status"`
	FileSize     int64          `db:"file_size" json:"file_size"`
	ErrorMessage string         `db:"error_message" json:"error_message,omitempty"`
}

// NewDocument creates a pending document with a generated ID and the current time.
// Status changes go through DocumentRepository.UpdateStatus, never field writes.
func NewDocument(filename string, fileSize int64) *Document {
	return &Document{
		ID:         uuid.NewString(),
		Filename:   filename,
		UploadTime: time.Now().UTC(),
		Status:     StatusPending,
		FileSize:   fileSize,
	}
}

// Finding records that a sensitive-data pattern matched somewhere in a document.
// The matched text itself is intentionally never stored; only metadata about
// the match (type, location, confidence) is kept.
type Finding struct {
	ID         string      `db:"id" json:"id"`
	DocumentID string      `db:"document_id" json:"document_id"`
	Type       FindingType `db:"finding_type" json:"type"`
	Location   string      `db:"location" json:"location"` // e.g. "page 2"
	Confidence float64     `db:"confidence" json:"confidence"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
}

// NewFinding creates a finding with a generated ID and the current time.
// Confidence must be in [0, 1].
func NewFinding(documentID string, findingType FindingType, location string, confidence float64) *Finding {
	return &Finding{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Type:       findingType,
		Location:   location,
		Confidence: confidence,
		CreatedAt:  time.Now().UTC(),
	}
}

// Metric is one timestamped duration measurement for an operation.
// Metrics are append-only; DocumentID is empty when the metric is not tied
// to a particular document.
type Metric struct {
	ID         string         `db:"id" json:"id"`
	Operation  string         `db:"operation" json:"operation"` // e.g. "upload", "scan"
	DurationMS float64        `db:"duration_ms" json:"duration_ms"`
	Timestamp  time.Time      `db:"timestamp" json:"timestamp"`
	DocumentID string         `db:"document_id" json:"document_id,omitempty"`
	Metadata   map[string]any `db:"metadata" json:"metadata,omitempty"`
}

// NewMetric creates a metric with a generated ID and the current time.
func NewMetric(operation string, durationMS float64, documentID string, metadata map[string]any) *Metric {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &Metric{
		ID:         uuid.NewString(),
		Operation:  operation,
		DurationMS: durationMS,
		Timestamp:  time.Now().UTC(),
		DocumentID: documentID,
		Metadata:   metadata,
	}
}
