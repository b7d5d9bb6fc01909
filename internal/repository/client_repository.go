package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lawfirm-api/internal/domain"
)

// ClientFilter captures list query parameters.
type ClientFilter struct {
	Status *domain.ClientStatus
	Search *string
	Page   Page
}

// ClientRepository encapsulates client persistence.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, filter ClientFilter) ([]domain.Client, error)
}

type clientRepository struct {
	db DBTX
}

// NewClientRepository instantiates repository.
func NewClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &clientRepository{db: pool}
}

const clientColumns = `id, first_name, last_name, email, phone, address, company, notes, status, created_at, updated_at`

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	const query = `
        INSERT INTO clients (first_name, last_name, email, phone, address, company, notes, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		client.FirstName,
		client.LastName,
		strings.ToLower(client.Email),
		client.Phone,
		client.Address,
		client.Company,
		client.Notes,
		client.Status,
	).Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt)
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	const query = `
        UPDATE clients SET first_name=$1, last_name=$2, email=$3, phone=$4, address=$5, company=$6,
            notes=$7, status=$8, updated_at=NOW()
        WHERE id=$9
        RETURNING updated_at`
	return r.db.QueryRow(ctx, query,
		client.FirstName,
		client.LastName,
		strings.ToLower(client.Email),
		client.Phone,
		client.Address,
		client.Company,
		client.Notes,
		client.Status,
		client.ID,
	).Scan(&client.UpdatedAt)
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	return execAffectingOne(ctx, r.db, `DELETE FROM clients WHERE id=$1`, id)
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	rows, err := r.db.Query(ctx, `SELECT `+clientColumns+` FROM clients WHERE id=$1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items, err := scanClients(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &items[0], nil
}

func (r *clientRepository) List(ctx context.Context, filter ClientFilter) ([]domain.Client, error) {
	w := &where{}
	if filter.Status != nil {
		w.add("status=$%d", *filter.Status)
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		w.add("(LOWER(first_name || ' ' || last_name) LIKE $%[1]d OR LOWER(email) LIKE $%[1]d OR LOWER(company) LIKE $%[1]d)", search)
	}
	query := `SELECT ` + clientColumns + ` FROM clients` + w.String() + ` ORDER BY created_at DESC` + filter.Page.clause()
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanClients(rows)
}

func scanClients(rows pgx.Rows) ([]domain.Client, error) {
	var result []domain.Client
	for rows.Next() {
		var client domain.Client
		if err := rows.Scan(
			&client.ID,
			&client.FirstName,
			&client.LastName,
			&client.Email,
			&client.Phone,
			&client.Address,
			&client.Company,
			&client.Notes,
			&client.Status,
			&client.CreatedAt,
			&client.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, client)
	}
	return result, rows.Err()
}
