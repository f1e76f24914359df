package postgres

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
	const q = `
		INSERT INTO documents (id, filename, upload_time, status, file_size, error_message)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			filename = EXCLUDED.filename,
			upload_time = EXCLUDED.upload_time,
			status = EXCLUDED.status,
			file_size = EXCLUDED.file_size,
			error_message = EXCLUDED.error_message
	`
	_, err := r.db.ExecContext(ctx, q,
		doc.ID, doc.Filename, doc.UploadTime, doc.Status, doc.FileSize, doc.ErrorMessage)
	return err
}

func (r *DocumentRepository) Get(ctx context.Context, id string) (*models.Document, error) {
	const q = `
		SELECT id, filename, upload_time, status, file_size, error_message
		FROM documents WHERE id = $1
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
	if status != models.StatusFailed {
		errorMessage = ""
	}
	const q = `
		UPDATE documents
		SET status = $2, error_message = $3
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, id, status, errorMessage)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *DocumentRepository) List(ctx context.Context, limit, offset int) ([]models.Document, error) {
	const q = `
		SELECT id, filename, upload_time, status, file_size, error_message
		FROM documents
		ORDER BY upload_time DESC
		LIMIT $1 OFFSET $2
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
