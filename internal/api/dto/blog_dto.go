package dto

import (
	"time"

	"github.com/spec-kit/lawfirm-api/internal/domain"
)

// CreateBlogPostRequest payload.
type CreateBlogPostRequest struct {
	Title      string   `json:"title" validate:"required,max=200"`
	Excerpt    string   `json:"excerpt" validate:"max=500"`
	Body       string   `json:"body" validate:"required"`
	CoverImage string   `json:"coverImage" validate:"max=300"`
	Tags       []string `json:"tags" validate:"max=20,dive,max=40"`
	Published  bool     `json:"published"`
}

// UpdateBlogPostRequest payload; omitted fields are left unchanged.
type UpdateBlogPostRequest struct {
	Title      *string   `json:"title" validate:"omitempty,max=200"`
	Excerpt    *string   `json:"excerpt" validate:"omitempty,max=500"`
	Body       *string   `json:"body"`
	CoverImage *string   `json:"coverImage" validate:"omitempty,max=300"`
	Tags       *[]string `json:"tags" validate:"omitempty,max=20"`
	Published  *bool     `json:"published"`
}

type BlogPostResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Excerpt        string     `json:"excerpt"`
	Body           string     `json:"body"`
	CoverImage     string     `json:"coverImage"`
	AuthorID       *string    `json:"authorId"`
	Tags           []string   `json:"tags"`
	Published      bool       `json:"published"`
	PublishedAt    *time.Time `json:"publishedAt"`
	ReadingMinutes int        `json:"readingTime"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func NewBlogPostResponse(p *domain.BlogPost) BlogPostResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return BlogPostResponse{
		ID:             p.ID,
		Title:          p.Title,
		Slug:           p.Slug,
		Excerpt:        p.Excerpt,
		Body:           p.Body,
		CoverImage:     p.CoverImage,
		AuthorID:       p.AuthorID,
		Tags:           tags,
		Published:      p.Published,
		PublishedAt:    p.PublishedAt,
		ReadingMinutes: p.ReadingMinutes(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func NewBlogPostList(items []domain.BlogPost) []BlogPostResponse {
	return mapAll(items, NewBlogPostResponse)
}
