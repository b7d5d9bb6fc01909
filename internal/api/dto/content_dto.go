package dto

import (
	"time"

	"github.com/spec-kit/lawfirm-api/internal/domain"
)

// CreateContentRequest payload shared by practice areas, team members and
// home cards. Published defaults to true.
type CreateContentRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Slug      string `json:"slug" validate:"max=200"`
	Summary   string `json:"summary" validate:"max=1000"`
	Body      string `json:"body"`
	Image     string `json:"image" validate:"max=300"`
	Icon      string `json:"icon" validate:"max=100"`
	Position  int    `json:"position" validate:"gte=0"`
	Published *bool  `json:"published"`
}

type UpdateContentRequest struct {
	Title     *string `json:"title" validate:"omitempty,max=200"`
	Slug      *string `json:"slug" validate:"omitempty,max=200"`
	Summary   *string `json:"summary" validate:"omitempty,max=1000"`
	Body      *string `json:"body"`
	Image     *string `json:"image" validate:"omitempty,max=300"`
	Icon      *string `json:"icon" validate:"omitempty,max=100"`
	Position  *int    `json:"position" validate:"omitempty,gte=0"`
	Published *bool   `json:"published"`
}

type ContentResponse struct {
	ID        string             `json:"id"`
	Kind      domain.ContentKind `json:"kind"`
	Title     string             `json:"title"`
	Slug      string             `json:"slug"`
	Summary   string             `json:"summary"`
	Body      string             `json:"body"`
	Image     string             `json:"image"`
	Icon      string             `json:"icon"`
	Position  int                `json:"position"`
	Published bool               `json:"published"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func NewContentResponse(item *domain.ContentItem) ContentResponse {
	return ContentResponse{
		ID:        item.ID,
		Kind:      item.Kind,
		Title:     item.Title,
		Slug:      item.Slug,
		Summary:   item.Summary,
		Body:      item.Body,
		Image:     item.Image,
		Icon:      item.Icon,
		Position:  item.Position,
		Published: item.Published,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func NewContentList(items []domain.ContentItem) []ContentResponse {
	return mapAll(items, NewContentResponse)
}
