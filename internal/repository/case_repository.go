package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lawfirm-api/internal/domain"
)

// CaseFilter captures list query parameters.
type CaseFilter struct {
	Status     *domain.CaseStatus
	ClientID   *string
	AttorneyID *string
	Page       Page
}

// CaseRepository encapsulates legal case persistence.
type CaseRepository interface {
	Create(ctx context.Context, c *domain.LegalCase) error
	Update(ctx context.Context, c *domain.LegalCase) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.LegalCase, error)
	List(ctx context.Context, filter CaseFilter) ([]domain.LegalCase, error)
}

type caseRepository struct {
	db DBTX
}

// NewCaseRepository instantiates repository.
func NewCaseRepository(pool *pgxpool.Pool) CaseRepository {
	return &caseRepository{db: pool}
}

const caseColumns = `id, case_number, title, description, client_id, attorney_id, practice_area, status,
               opened_at, closed_at, created_at, updated_at`

func (r *caseRepository) Create(ctx context.Context, c *domain.LegalCase) error {
	const query = `
        INSERT INTO cases (case_number, title, description, client_id, attorney_id, practice_area, status, opened_at, closed_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		c.CaseNumber,
		c.Title,
		c.Description,
		c.ClientID,
		c.AttorneyID,
		c.PracticeArea,
		c.Status,
		c.OpenedAt,
		c.ClosedAt,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *caseRepository) Update(ctx context.Context, c *domain.LegalCase) error {
	const query = `
        UPDATE cases SET case_number=$1, title=$2, description=$3, client_id=$4, attorney_id=$5,
            practice_area=$6, status=$7, opened_at=$8, closed_at=$9, updated_at=NOW()
        WHERE id=$10
        RETURNING updated_at`
	return r.db.QueryRow(ctx, query,
		c.CaseNumber,
		c.Title,
		c.Description,
		c.ClientID,
		c.AttorneyID,
		c.PracticeArea,
		c.Status,
		c.OpenedAt,
		c.ClosedAt,
		c.ID,
	).Scan(&c.UpdatedAt)
}

func (r *caseRepository) Delete(ctx context.Context, id string) error {
	return execAffectingOne(ctx, r.db, `DELETE FROM cases WHERE id=$1`, id)
}

func (r *caseRepository) GetByID(ctx context.Context, id string) (*domain.LegalCase, error) {
	rows, err := r.db.Query(ctx, `SELECT `+caseColumns+` FROM cases WHERE id=$1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items, err := scanCases(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &items[0], nil
}

func (r *caseRepository) List(ctx context.Context, filter CaseFilter) ([]domain.LegalCase, error) {
	w := &where{}
	if filter.Status != nil {
		w.add("status=$%d", *filter.Status)
	}
	if filter.ClientID != nil {
		w.add("client_id=$%d", *filter.ClientID)
	}
	if filter.AttorneyID != nil {
		w.add("attorney_id=$%d", *filter.AttorneyID)
	}
	query := `SELECT ` + caseColumns + ` FROM cases` + w.String() + ` ORDER BY opened_at DESC` + filter.Page.clause()
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCases(rows)
}

func scanCases(rows pgx.Rows) ([]domain.LegalCase, error) {
	var result []domain.LegalCase
	for rows.Next() {
		var c domain.LegalCase
		if err := rows.Scan(
			&c.ID,
			&c.CaseNumber,
			&c.Title,
			&c.Description,
			&c.ClientID,
			&c.AttorneyID,
			&c.PracticeArea,
			&c.Status,
			&c.OpenedAt,
			&c.ClosedAt,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
