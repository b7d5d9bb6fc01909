package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lawfirm-api/internal/domain"
)

// ContentFilter captures list query parameters. Kind is always applied.
type ContentFilter struct {
	Kind          domain.ContentKind
	PublishedOnly bool
	Page          Page
}

// ContentRepository persists practice areas, team members and home cards,
// which share one table keyed by kind.
type ContentRepository interface {
	Create(ctx context.Context, item *domain.ContentItem) error
	Update(ctx context.Context, item *domain.ContentItem) error
	Delete(ctx context.Context, kind domain.ContentKind, id string) error
	GetByID(ctx context.Context, kind domain.ContentKind, id string) (*domain.ContentItem, error)
	List(ctx context.Context, filter ContentFilter) ([]domain.ContentItem, error)
}

type contentRepository struct {
	db DBTX
}

// NewContentRepository instantiates repository.
func NewContentRepository(pool *pgxpool.Pool) ContentRepository {
	return &contentRepository{db: pool}
}

const contentColumns = `id, kind, title, slug, summary, body, image, icon, position, published, created_at, updated_at`

func (r *contentRepository) Create(ctx context.Context, item *domain.ContentItem) error {
	const query = `
        INSERT INTO content_items (kind, title, slug, summary, body, image, icon, position, published)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		item.Kind,
		item.Title,
		item.Slug,
		item.Summary,
		item.Body,
		item.Image,
		item.Icon,
		item.Position,
		item.Published,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *contentRepository) Update(ctx context.Context, item *domain.ContentItem) error {
	const query = `
        UPDATE content_items SET title=$1, slug=$2, summary=$3, body=$4, image=$5, icon=$6,
            position=$7, published=$8, updated_at=NOW()
        WHERE id=$9 AND kind=$10
        RETURNING updated_at`
	return r.db.QueryRow(ctx, query,
		item.Title,
		item.Slug,
		item.Summary,
		item.Body,
		item.Image,
		item.Icon,
		item.Position,
		item.Published,
		item.ID,
		item.Kind,
	).Scan(&item.UpdatedAt)
}

func (r *contentRepository) Delete(ctx context.Context, kind domain.ContentKind, id string) error {
	return execAffectingOne(ctx, r.db, `DELETE FROM content_items WHERE id=$1 AND kind=$2`, id, kind)
}

func (r *contentRepository) GetByID(ctx context.Context, kind domain.ContentKind, id string) (*domain.ContentItem, error) {
	rows, err := r.db.Query(ctx, `SELECT `+contentColumns+` FROM content_items WHERE id=$1 AND kind=$2`, id, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items, err := scanContentItems(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &items[0], nil
}

func (r *contentRepository) List(ctx context.Context, filter ContentFilter) ([]domain.ContentItem, error) {
	w := &where{}
	w.add("kind=$%d", filter.Kind)
	if filter.PublishedOnly {
		w.add("published=$%d", true)
	}
	query := `SELECT ` + contentColumns + ` FROM content_items` + w.String() +
		` ORDER BY position, created_at` + filter.Page.clause()
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanContentItems(rows)
}

func scanContentItems(rows pgx.Rows) ([]domain.ContentItem, error) {
	var result []domain.ContentItem
	for rows.Next() {
		var item domain.ContentItem
		if err := rows.Scan(
			&item.ID,
			&item.Kind,
			&item.Title,
			&item.Slug,
			&item.Summary,
			&item.Body,
			&item.Image,
			&item.Icon,
			&item.Position,
			&item.Published,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
