package clickhouse

import (
	"context"
	"database/sql"

	"github.com/ashkan-3rdlaw/pdf-scan/internal/models"
)

type FindingRepository struct {
	db *sql.DB
}

func NewFindingRepository(sqlDB *sql.DB) *FindingRepository {
	return &FindingRepository{db: sqlDB}
}

func (r *FindingRepository) Store(ctx context.Context, finding *models.Finding) error {
	const q = `
		INSERT INTO findings (id, document_id, finding_type, location, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, q,
		finding.ID, finding.DocumentID, string(finding.Type), finding.Location,
		finding.Confidence, finding.CreatedAt)
	return err
}

func (r *FindingRepository) GetByDocument(ctx context.Context, documentID string) ([]models.Finding, error) {
	const q = `
		SELECT id, document_id, finding_type, location, confidence, created_at
		FROM findings FINAL
		WHERE document_id = ?
		ORDER BY confidence DESC, created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFindings(rows)
}

func (r *FindingRepository) GetAll(ctx context.Context, limit, offset int, findingType models.FindingType) ([]models.Finding, error) {
	const q = `
		SELECT id, document_id, finding_type, location, confidence, created_at
		FROM findings FINAL
		WHERE (? = '' OR finding_type = ?)
		ORDER BY confidence DESC, created_at ASC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, q, string(findingType), string(findingType), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFindings(rows)
}

func (r *FindingRepository) Count(ctx context.Context, documentID string) (int, error) {
	const q = `
		SELECT toInt64(count()) FROM findings FINAL
		WHERE (? = '' OR document_id = ?)
	`
	var n int64
	if err := r.db.QueryRowContext(ctx, q, documentID, documentID).Scan(&n); err != nil {
		return 0, err
	}
	return int(n), nil
}

func scanFindings(rows *sql.Rows) ([]models.Finding, error) {
	out := []models.Finding{}
	for rows.Next() {
		var f models.Finding
		if err := rows.Scan(
			&f.ID, &f.DocumentID, &f.Type, &f.Location, &f.Confidence, &f.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
