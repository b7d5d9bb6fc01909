package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lawfirm-api/internal/repository"
	"github.com/spec-kit/lawfirm-api/internal/repository/repotest"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

func newBlogService() (*BlogService, time.Time) {
	now := time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)
	svc := NewBlogService(repotest.NewBlog())
	svc.now = func() time.Time { return now }
	return svc, now
}

func TestBlogService_SlugsAreUnique(t *testing.T) {
	svc, _ := newBlogService()
	ctx := context.Background()
	input := BlogInput{Title: "Family Law Basics", Body: "body", Published: true}

	first, err := svc.Create(ctx, "", input)
	require.NoError(t, err)
	second, err := svc.Create(ctx, "", input)
	require.NoError(t, err)
	third, err := svc.Create(ctx, "", input)
	require.NoError(t, err)

	assert.Equal(t, "family-law-basics", first.Slug)
	assert.Equal(t, "family-law-basics-2", second.Slug)
	assert.Equal(t, "family-law-basics-3", third.Slug)

	// Renaming to the same title keeps the post's own slug.
	same := "Family Law Basics"
	updated, err := svc.Update(ctx, first.ID, BlogPatch{Title: &same})
	require.NoError(t, err)
	assert.Equal(t, "family-law-basics", updated.Slug)
}

func TestBlogService_DraftsHiddenFromPublic(t *testing.T) {
	svc, now := newBlogService()
	ctx := context.Background()

	draft, err := svc.Create(ctx, "", BlogInput{Title: "Work in progress", Body: "draft", Tags: []string{" Estate ", "estate", ""}})
	require.NoError(t, err)
	assert.Nil(t, draft.PublishedAt)
	assert.Equal(t, []string{"estate"}, draft.Tags)

	_, err = svc.Get(ctx, draft.Slug, false)
	assertCode(t, err, apperrors.CodeNotFound)
	_, err = svc.Get(ctx, draft.ID, false)
	assertCode(t, err, apperrors.CodeNotFound)

	got, err := svc.Get(ctx, draft.Slug, true)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)

	published := true
	updated, err := svc.Update(ctx, draft.ID, BlogPatch{Published: &published})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	assert.Equal(t, now, *updated.PublishedAt)

	got, err = svc.Get(ctx, draft.ID, false)
	require.NoError(t, err)
	assert.True(t, got.Published)

	list, err := svc.List(ctx, repository.BlogFilter{PublishedOnly: true})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestBlogService_Validation(t *testing.T) {
	svc, _ := newBlogService()
	_, err := svc.Create(context.Background(), "", BlogInput{Title: "  "})
	assertCode(t, err, apperrors.CodeValidation)

	err = svc.Delete(context.Background(), "00000000-0000-0000-0000-000000000000")
	assertCode(t, err, apperrors.CodeNotFound)
}
