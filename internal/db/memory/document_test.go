package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ashkan-3rdlaw/pdf-scan/internal/db"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/models"
)

func storedDoc(t *testing.T, r *DocumentRepository, filename string, uploadTime time.Time) *models.Document {
	t.Helper()
	doc := models.NewDocument(filename, 100)
	doc.UploadTime = uploadTime
	if err := r.Store(context.Background(), doc); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestDocumentStoreAndGet(t *testing.T) {
	r := NewDocumentRepository()
	ctx := context.Background()

	doc := models.NewDocument("a.pdf", 42)
	if err := r.Store(ctx, doc); err != nil {
		t.Fatal(err)
	}

	got, err := r.Get(ctx, doc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.ID != doc.ID || got.Filename != "a.pdf" {
		t.Fatalf("Get = %+v, want stored document", got)
	}

	// Unknown ID misses without an error.
	got, err = r.Get(ctx, "nope")
	if err != nil || got != nil {
		t.Fatalf("Get(unknown) = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestDocumentStoreOverwrites(t *testing.T) {
	r := NewDocumentRepository()
	ctx := context.Background()

	doc := models.NewDocument("a.pdf", 42)
	if err := r.Store(ctx, doc); err != nil {
		t.Fatal(err)
	}
	doc.Filename = "b.pdf"
	if err := r.Store(ctx, doc); err != nil {
		t.Fatal(err)
	}

	got, _ := r.Get(ctx, doc.ID)
	if got.Filename != "b.pdf" {
		t.Fatalf("expected overwrite, got filename %q", got.Filename)
	}
	docs, _ := r.List(ctx, 10, 0)
	if len(docs) != 1 {
		t.Fatalf("expected 1 document after upsert, got %d", len(docs))
	}
}

func TestDocumentUpdateStatus(t *testing.T) {
	r := NewDocumentRepository()
	ctx := context.Background()

	doc := storedDoc(t, r, "a.pdf", time.Now().UTC())

	if err := r.UpdateStatus(ctx, doc.ID, models.StatusProcessing, ""); err != nil {
		t.Fatal(err)
	}
	got, _ := r.Get(ctx, doc.ID)
	if got.Status != models.StatusProcessing {
		t.Fatalf("status = %q, want processing", got.Status)
	}
	// Other fields untouched.
	if got.Filename != doc.Filename || !got.UploadTime.Equal(doc.UploadTime) || got.FileSize != doc.FileSize {
		t.Fatalf("UpdateStatus changed unrelated fields: %+v", got)
	}

	if err := r.UpdateStatus(ctx, doc.ID, models.StatusFailed, "boom"); err != nil {
		t.Fatal(err)
	}
	got, _ = r.Get(ctx, doc.ID)
	if got.Status != models.StatusFailed || got.ErrorMessage != "boom" {
		t.Fatalf("failed update = %+v", got)
	}

	// Moving out of failed clears the error message.
	if err := r.UpdateStatus(ctx, doc.ID, models.StatusCompleted, "ignored"); err != nil {
		t.Fatal(err)
	}
	got, _ = r.Get(ctx, doc.ID)
	if got.Status != models.StatusCompleted || got.ErrorMessage != "" {
		t.Fatalf("completed update = %+v", got)
	}
}

func TestDocumentUpdateStatusNotFound(t *testing.T) {
	r := NewDocumentRepository()
	err := r.UpdateStatus(context.Background(), "missing", models.StatusCompleted, "")
	if !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	// It must never create the document.
	if got, _ := r.Get(context.Background(), "missing"); got != nil {
		t.Fatal("UpdateStatus created a document")
	}
}

func TestDocumentListOrderAndPagination(t *testing.T) {
	r := NewDocumentRepository()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// Five docs, oldest first.
	ids := make([]string, 5)
	for i := 0; i < 5; i++ {
		ids[i] = storedDoc(t, r, "f.pdf", base.Add(time.Duration(i)*time.Minute)).ID
	}

	all, err := r.List(ctx, 100, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Fatalf("got %d documents, want 5", len(all))
	}
	for i := range all {
		// Newest first.
		if all[i].ID != ids[4-i] {
			t.Fatalf("position %d = %s, want %s", i, all[i].ID, ids[4-i])
		}
	}

	// Concatenating pages of 2 reproduces the full sequence exactly once.
	var paged []models.Document
	for offset := 0; offset < 6; offset += 2 {
		page, err := r.List(ctx, 2, offset)
		if err != nil {
			t.Fatal(err)
		}
		want := 2
		if offset == 4 {
			want = 1
		}
		if len(page) != want {
			t.Fatalf("List(2, %d) returned %d, want %d", offset, len(page), want)
		}
		paged = append(paged, page...)
	}
	for i := range all {
		if paged[i].ID != all[i].ID {
			t.Fatalf("paged sequence diverges at %d", i)
		}
	}

	// Offset past the end is an empty result, not an error.
	page, err := r.List(ctx, 2, 50)
	if err != nil || len(page) != 0 {
		t.Fatalf("List past end = (%d items, %v)", len(page), err)
	}
}
