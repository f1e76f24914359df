package clickhouse

import (
	"context"
	"database/sql"

	"github.com/ashkan-3rdlaw/pdf-scan/internal/db"
	"github.com/ashkan-3rdlaw/pdf-scan/internal/models"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(sqlDB *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: sqlDB}
}

func (r *DocumentRepository) Store(ctx context.Context, doc *models.Document) error {
	// ReplacingMergeTree keyed by id makes the insert an upsert.
	const q = `
		INSERT INTO documents (id, filename, upload_time, status, file_size, error_message)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, q,
		doc.ID, doc.Filename, doc.UploadTime, string(doc.Status), doc.FileSize, doc.ErrorMessage)
	return err
}

func (r *DocumentRepository) Get(ctx context.Context, id string) (*models.Document, error) {
	const q = `
		SELECT id, filename, upload_time, status, file_size, error_message
		FROM documents FINAL
		WHERE id = ?
	`
	var d models.Document
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.Filename, &d.UploadTime, &d.Status, &d.FileSize, &d.ErrorMessage,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepository) UpdateStatus(ctx context.Context, id string, status models.DocumentStatus, errorMessage string) error {
	// ALTER ... UPDATE reports no affected-row count, so the not-found check
	// is a separate existence probe.
	var exists uint8
	if err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM documents FINAL WHERE id = ? LIMIT 1`, id).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return db.ErrNotFound
		}
		return err
	}

	if status != models.StatusFailed {
		errorMessage = ""
	}
	const q = `
		ALTER TABLE documents
		UPDATE status = ?, error_message = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, q, string(status), errorMessage, id)
	return err
}

func (r *DocumentRepository) List(ctx context.Context, limit, offset int) ([]models.Document, error) {
	const q = `
		SELECT id, filename, upload_time, status, file_size, error_message
		FROM documents FINAL
		ORDER BY upload_time DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Document{}
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(
			&d.ID, &d.Filename, &d.UploadTime, &d.Status, &d.FileSize, &d.ErrorMessage,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
