package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/events"
	"github.com/spec-kit/lawfirm-api/internal/repository"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

// ContactService stores contact-form submissions and triages them.
type ContactService struct {
	contacts repository.ContactRepository
	events   publisher
}

// ContactInput is a public contact-form submission.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// NewContactService constructs the service.
func NewContactService(contacts repository.ContactRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ContactService {
	return &ContactService{contacts: contacts, events: publisher{dispatcher: dispatcher, logger: logger}}
}

// Submit stores a submission and notifies the office.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*domain.Contact, error) {
	contact := &domain.Contact{
		Name:    strings.TrimSpace(input.Name),
		Email:   normalizeEmail(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
		Status:  domain.ContactNew,
	}
	details := map[string]any{}
	if contact.Name == "" {
		details["name"] = "is required"
	}
	if contact.Email == "" {
		details["email"] = "is required"
	}
	if contact.Message == "" {
		details["message"] = "is required"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid contact submission", details)
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.events.publish(ctx, events.Event{
		Type:      events.EventContactSubmitted,
		SubjectID: contact.ID,
		Payload: events.ContactSubmittedPayload{
			Name:           contact.Name,
			Email:          contact.Email,
			Subject:        contact.Subject,
			MessagePreview: stringPreview(contact.Message, 120),
		},
	})
	return contact, nil
}

func (s *ContactService) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.Contact, error) {
	switch status {
	case domain.ContactNew, domain.ContactRead, domain.ContactReplied, domain.ContactArchived:
	default:
		return nil, apperrors.NewValidationError("invalid contact status", map[string]any{"status": status})
	}
	if err := s.contacts.UpdateStatus(ctx, id, status); err != nil {
		return nil, apperrors.NotFoundOr(err, "contact")
	}
	return s.Get(ctx, id)
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		return apperrors.NotFoundOr(err, "contact")
	}
	return nil
}

func (s *ContactService) Get(ctx context.Context, id string) (*domain.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "contact")
	}
	return contact, nil
}

func (s *ContactService) List(ctx context.Context, filter repository.ContactFilter) ([]domain.Contact, error) {
	items, err := s.contacts.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}
