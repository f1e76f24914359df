package postgres

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
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			document_id = EXCLUDED.document_id,
			finding_type = EXCLUDED.finding_type,
			location = EXCLUDED.location,
			confidence = EXCLUDED.confidence
	`
	_, err := r.db.ExecContext(ctx, q,
		finding.ID, finding.DocumentID, finding.Type, finding.Location, finding.Confidence, finding.CreatedAt)
	return err
}

func (r *FindingRepository) GetByDocument(ctx context.Context, documentID string) ([]models.Finding, error) {
	const q = `
		SELECT id, document_id, finding_type, location, confidence, created_at
		FROM findings
		WHERE document_id = $1
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
	// The type filter is applied before pagination.
	const q = `
		SELECT id, document_id, finding_type, location, confidence, created_at
		FROM findings
		WHERE ($3 = '' OR finding_type = $3)
		ORDER BY confidence DESC, created_at ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, limit, offset, string(findingType))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFindings(rows)
}

func (r *FindingRepository) Count(ctx context.Context, documentID string) (int, error) {
	const q = `
		SELECT COUNT(*) FROM findings
		WHERE ($1 = '' OR document_id = $1)
	`
	var n int
	if err := r.db.QueryRowContext(ctx, q, documentID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
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
