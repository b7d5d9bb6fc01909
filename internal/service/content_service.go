package service

import (
	"context"
	"strings"

	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/repository"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

// ContentService is plain CRUD over the marketing collections.
type ContentService struct {
	items repository.ContentRepository
}

// ContentInput describes a new content item.
type ContentInput struct {
	Title     string
	Slug      string
	Summary   string
	Body      string
	Image     string
	Icon      string
	Position  int
	Published *bool
}

// ContentPatch holds optional field updates.
type ContentPatch struct {
	Title     *string
	Slug      *string
	Summary   *string
	Body      *string
	Image     *string
	Icon      *string
	Position  *int
	Published *bool
}

// NewContentService constructs the service.
func NewContentService(items repository.ContentRepository) *ContentService {
	return &ContentService{items: items}
}

func (s *ContentService) Create(ctx context.Context, kind domain.ContentKind, input ContentInput) (*domain.ContentItem, error) {
	item := &domain.ContentItem{
		Kind:      kind,
		Title:     strings.TrimSpace(input.Title),
		Slug:      domain.Slugify(input.Slug),
		Summary:   strings.TrimSpace(input.Summary),
		Body:      input.Body,
		Image:     strings.TrimSpace(input.Image),
		Icon:      strings.TrimSpace(input.Icon),
		Position:  input.Position,
		Published: true,
	}
	if input.Published != nil {
		item.Published = *input.Published
	}
	if item.Slug == "" {
		item.Slug = domain.Slugify(item.Title)
	}
	if item.Title == "" || item.Slug == "" {
		return nil, apperrors.NewValidationError("invalid "+kindLabel(kind), map[string]any{"title": "is required"})
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, apperrors.MapError(err)
	}
	return item, nil
}

func (s *ContentService) Update(ctx context.Context, kind domain.ContentKind, id string, patch ContentPatch) (*domain.ContentItem, error) {
	item, err := s.items.GetByID(ctx, kind, id)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, kindLabel(kind))
	}
	setTrimmed(&item.Title, patch.Title)
	setTrimmed(&item.Summary, patch.Summary)
	setTrimmed(&item.Image, patch.Image)
	setTrimmed(&item.Icon, patch.Icon)
	if patch.Slug != nil {
		item.Slug = domain.Slugify(*patch.Slug)
	}
	if patch.Body != nil {
		item.Body = *patch.Body
	}
	if patch.Position != nil {
		item.Position = *patch.Position
	}
	if patch.Published != nil {
		item.Published = *patch.Published
	}
	if item.Title == "" || item.Slug == "" {
		return nil, apperrors.NewValidationError("invalid "+kindLabel(kind), map[string]any{"title": "is required"})
	}
	if err := s.items.Update(ctx, item); err != nil {
		return nil, apperrors.NotFoundOr(err, kindLabel(kind))
	}
	return item, nil
}

func (s *ContentService) Delete(ctx context.Context, kind domain.ContentKind, id string) error {
	if err := s.items.Delete(ctx, kind, id); err != nil {
		return apperrors.NotFoundOr(err, kindLabel(kind))
	}
	return nil
}

// Get hides unpublished items unless includeDrafts is set.
func (s *ContentService) Get(ctx context.Context, kind domain.ContentKind, id string, includeDrafts bool) (*domain.ContentItem, error) {
	item, err := s.items.GetByID(ctx, kind, id)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, kindLabel(kind))
	}
	if !item.Published && !includeDrafts {
		return nil, apperrors.NewNotFound(kindLabel(kind), nil)
	}
	return item, nil
}

func (s *ContentService) List(ctx context.Context, filter repository.ContentFilter) ([]domain.ContentItem, error) {
	items, err := s.items.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}

func kindLabel(kind domain.ContentKind) string {
	return strings.ReplaceAll(string(kind), "_", " ")
}
