package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lawfirm-api/internal/domain"
)

// BlogFilter captures list query parameters.
type BlogFilter struct {
	PublishedOnly bool
	Tag           *string
	Search        *string
	Page          Page
}

// BlogRepository encapsulates blog post persistence.
type BlogRepository interface {
	Create(ctx context.Context, post *domain.BlogPost) error
	Update(ctx context.Context, post *domain.BlogPost) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*domain.BlogPost, error)
	List(ctx context.Context, filter BlogFilter) ([]domain.BlogPost, error)
}

type blogRepository struct {
	db DBTX
}

// NewBlogRepository instantiates repository.
func NewBlogRepository(pool *pgxpool.Pool) BlogRepository {
	return &blogRepository{db: pool}
}

const blogColumns = `id, title, slug, excerpt, body, cover_image, author_id, tags, published, published_at,
               created_at, updated_at`

func (r *blogRepository) Create(ctx context.Context, post *domain.BlogPost) error {
	const query = `
        INSERT INTO blog_posts (title, slug, excerpt, body, cover_image, author_id, tags, published, published_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Body,
		post.CoverImage,
		post.AuthorID,
		nonNilTags(post.Tags),
		post.Published,
		post.PublishedAt,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

func (r *blogRepository) Update(ctx context.Context, post *domain.BlogPost) error {
	const query = `
        UPDATE blog_posts SET title=$1, slug=$2, excerpt=$3, body=$4, cover_image=$5, tags=$6,
            published=$7, published_at=$8, updated_at=NOW()
        WHERE id=$9
        RETURNING updated_at`
	return r.db.QueryRow(ctx, query,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Body,
		post.CoverImage,
		nonNilTags(post.Tags),
		post.Published,
		post.PublishedAt,
		post.ID,
	).Scan(&post.UpdatedAt)
}

func (r *blogRepository) Delete(ctx context.Context, id string) error {
	return execAffectingOne(ctx, r.db, `DELETE FROM blog_posts WHERE id=$1`, id)
}

func (r *blogRepository) GetByID(ctx context.Context, id string) (*domain.BlogPost, error) {
	return r.getOne(ctx, `id=$1`, id)
}

func (r *blogRepository) GetBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	return r.getOne(ctx, `slug=$1`, slug)
}

func (r *blogRepository) getOne(ctx context.Context, predicate string, arg any) (*domain.BlogPost, error) {
	rows, err := r.db.Query(ctx, `SELECT `+blogColumns+` FROM blog_posts WHERE `+predicate, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items, err := scanBlogPosts(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &items[0], nil
}

func (r *blogRepository) List(ctx context.Context, filter BlogFilter) ([]domain.BlogPost, error) {
	w := &where{}
	if filter.PublishedOnly {
		w.add("published=$%d", true)
	}
	if filter.Tag != nil {
		w.add("$%d = ANY(tags)", *filter.Tag)
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		w.add("(LOWER(title) LIKE $%[1]d OR LOWER(excerpt) LIKE $%[1]d)", search)
	}
	query := `SELECT ` + blogColumns + ` FROM blog_posts` + w.String() +
		` ORDER BY COALESCE(published_at, created_at) DESC` + filter.Page.clause()
	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBlogPosts(rows)
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func scanBlogPosts(rows pgx.Rows) ([]domain.BlogPost, error) {
	var result []domain.BlogPost
	for rows.Next() {
		var post domain.BlogPost
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Slug,
			&post.Excerpt,
			&post.Body,
			&post.CoverImage,
			&post.AuthorID,
			&post.Tags,
			&post.Published,
			&post.PublishedAt,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, post)
	}
	return result, rows.Err()
}
