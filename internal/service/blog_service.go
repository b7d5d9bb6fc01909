package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/repository"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

const maxSlugAttempts = 50

// BlogService manages blog posts. Anonymous readers only ever see published
// posts.
type BlogService struct {
	posts repository.BlogRepository
	now   func() time.Time
}

// BlogInput describes a new post.
type BlogInput struct {
	Title      string
	Excerpt    string
	Body       string
	CoverImage string
	Tags       []string
	Published  bool
}

// BlogPatch holds optional field updates.
type BlogPatch struct {
	Title      *string
	Excerpt    *string
	Body       *string
	CoverImage *string
	Tags       *[]string
	Published  *bool
}

// NewBlogService constructs the service.
func NewBlogService(posts repository.BlogRepository) *BlogService {
	return &BlogService{posts: posts, now: time.Now}
}

func (s *BlogService) Create(ctx context.Context, authorID string, input BlogInput) (*domain.BlogPost, error) {
	post := &domain.BlogPost{
		Title:      strings.TrimSpace(input.Title),
		Excerpt:    strings.TrimSpace(input.Excerpt),
		Body:       input.Body,
		CoverImage: strings.TrimSpace(input.CoverImage),
		AuthorID:   actor(authorID),
		Tags:       normalizeTags(input.Tags),
		Published:  input.Published,
	}
	if err := validatePost(post); err != nil {
		return nil, err
	}
	slug, err := s.uniqueSlug(ctx, post.Title, "")
	if err != nil {
		return nil, err
	}
	post.Slug = slug
	s.stampPublished(post)
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, apperrors.MapError(err)
	}
	return post, nil
}

func (s *BlogService) Update(ctx context.Context, id string, patch BlogPatch) (*domain.BlogPost, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "blog post")
	}
	titleChanged := patch.Title != nil && strings.TrimSpace(*patch.Title) != post.Title
	setTrimmed(&post.Title, patch.Title)
	setTrimmed(&post.Excerpt, patch.Excerpt)
	setTrimmed(&post.CoverImage, patch.CoverImage)
	if patch.Body != nil {
		post.Body = *patch.Body
	}
	if patch.Tags != nil {
		post.Tags = normalizeTags(*patch.Tags)
	}
	if patch.Published != nil {
		post.Published = *patch.Published
	}
	if err := validatePost(post); err != nil {
		return nil, err
	}
	if titleChanged {
		if post.Slug, err = s.uniqueSlug(ctx, post.Title, post.ID); err != nil {
			return nil, err
		}
	}
	s.stampPublished(post)
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, apperrors.NotFoundOr(err, "blog post")
	}
	return post, nil
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return apperrors.NotFoundOr(err, "blog post")
	}
	return nil
}

// Get resolves a post by id or slug. Unpublished posts are hidden unless
// includeDrafts is set.
func (s *BlogService) Get(ctx context.Context, idOrSlug string, includeDrafts bool) (*domain.BlogPost, error) {
	var (
		post *domain.BlogPost
		err  error
	)
	if looksLikeUUID(idOrSlug) {
		post, err = s.posts.GetByID(ctx, idOrSlug)
	} else {
		post, err = s.posts.GetBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "blog post")
	}
	if !post.Published && !includeDrafts {
		return nil, apperrors.NewNotFound("blog post", nil)
	}
	return post, nil
}

func (s *BlogService) List(ctx context.Context, filter repository.BlogFilter) ([]domain.BlogPost, error) {
	items, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}

func (s *BlogService) stampPublished(post *domain.BlogPost) {
	if !post.Published {
		post.PublishedAt = nil
		return
	}
	if post.PublishedAt == nil {
		now := s.now()
		post.PublishedAt = &now
	}
}

func (s *BlogService) uniqueSlug(ctx context.Context, title, selfID string) (string, error) {
	base := domain.Slugify(title)
	if base == "" {
		base = "post"
	}
	candidate := base
	for i := 2; i < maxSlugAttempts; i++ {
		existing, err := s.posts.GetBySlug(ctx, candidate)
		if isNoRows(err) || (err == nil && existing.ID == selfID) {
			return candidate, nil
		}
		if err != nil {
			return "", apperrors.MapError(err)
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", apperrors.NewConflict("could not derive a unique slug", map[string]any{"slug": base})
}

func validatePost(post *domain.BlogPost) error {
	details := map[string]any{}
	if post.Title == "" {
		details["title"] = "is required"
	}
	if strings.TrimSpace(post.Body) == "" {
		details["body"] = "is required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid blog post", details)
	}
	return nil
}

func normalizeTags(tags []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func looksLikeUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
