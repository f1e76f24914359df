package models

import (
	"testing"
	"time"
)

func TestNewDocument(t *testing.T) {
	before := time.Now().UTC()
	doc := NewDocument("report.pdf", 2048)

	if doc.ID == "" {
		t.Fatal("expected generated ID")
	}
	if doc.Status != StatusPending {
		t.Errorf("new document status = %q, want %q", doc.Status, StatusPending)
	}
	if doc.Filename != "report.pdf" || doc.FileSize != 2048 {
		t.Errorf("unexpected fields: %+v", doc)
	}
	if doc.ErrorMessage != "" {
		t.Errorf("new document should have no error message, got %q", doc.ErrorMessage)
	}
	if doc.UploadTime.Before(before) || doc.UploadTime.After(time.Now().UTC()) {
		t.Errorf("upload time %v not set to creation time", doc.UploadTime)
	}
}

func TestNewDocumentUniqueIDs(t *testing.T) {
	a := NewDocument("a.pdf", 1)
	b := NewDocument("b.pdf", 1)
	if a.ID == b.ID {
		t.Fatalf("expected unique IDs, both were %q", a.ID)
	}
}

func TestNewFinding(t *testing.T) {
	f := NewFinding("doc-1", FindingSSN, "page 2", 1.0)

	if f.ID == "" {
		t.Fatal("expected generated ID")
	}
	if f.DocumentID != "doc-1" || f.Type != FindingSSN || f.Location != "page 2" {
		t.Errorf("unexpected fields: %+v", f)
	}
	if f.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", f.Confidence)
	}
	if f.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestNewMetric(t *testing.T) {
	m := NewMetric("scan", 12.5, "doc-1", map[string]any{"findings_count": 3})

	if m.ID == "" {
		t.Fatal("expected generated ID")
	}
	if m.Operation != "scan" || m.DurationMS != 12.5 || m.DocumentID != "doc-1" {
		t.Errorf("unexpected fields: %+v", m)
	}
	if m.Metadata["findings_count"] != 3 {
		t.Errorf("metadata = %v", m.Metadata)
	}
	if m.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestNewMetricNilMetadata(t *testing.T) {
	m := NewMetric("upload", 1.0, "", nil)
	if m.Metadata == nil {
		t.Fatal("expected empty metadata map, got nil")
	}
}
