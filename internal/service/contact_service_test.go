package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/events"
	"github.com/spec-kit/lawfirm-api/internal/repository"
	"github.com/spec-kit/lawfirm-api/internal/repository/repotest"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

func TestContactService_SubmitPublishesEvent(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	svc := NewContactService(repotest.NewContacts(), dispatcher, nil)
	ctx := context.Background()

	contact, err := svc.Submit(ctx, ContactInput{
		Name:    " Sam Client ",
		Email:   "Sam@Example.com",
		Subject: "Divorce",
		Message: strings.Repeat("x", 300),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ContactNew, contact.Status)
	assert.Equal(t, "sam@example.com", contact.Email)

	require.Equal(t, []events.EventType{events.EventContactSubmitted}, dispatcher.types())
	payload, ok := dispatcher.events[0].Payload.(events.ContactSubmittedPayload)
	require.True(t, ok)
	assert.Equal(t, "Sam Client", payload.Name)
	assert.Len(t, payload.MessagePreview, 120)
}

func TestContactService_SubmitValidation(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	svc := NewContactService(repotest.NewContacts(), dispatcher, nil)

	_, err := svc.Submit(context.Background(), ContactInput{Name: "Sam"})
	assertCode(t, err, apperrors.CodeValidation)
	assert.Empty(t, dispatcher.types())
}

func TestContactService_Triage(t *testing.T) {
	svc := NewContactService(repotest.NewContacts(), &recordingDispatcher{}, nil)
	ctx := context.Background()

	contact, err := svc.Submit(ctx, ContactInput{Name: "Sam", Email: "sam@example.com", Message: "hello"})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, contact.ID, domain.ContactReplied)
	require.NoError(t, err)
	assert.Equal(t, domain.ContactReplied, updated.Status)

	_, err = svc.UpdateStatus(ctx, contact.ID, domain.ContactStatus("spam"))
	assertCode(t, err, apperrors.CodeValidation)

	replied := domain.ContactReplied
	list, err := svc.List(ctx, repository.ContactFilter{Status: &replied})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, contact.ID))
	_, err = svc.Get(ctx, contact.ID)
	assertCode(t, err, apperrors.CodeNotFound)
}
