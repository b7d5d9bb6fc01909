package service

import (
	"context"
	"strings"

	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/repository"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

// ClientService manages the client register.
type ClientService struct {
	clients repository.ClientRepository
}

// ClientInput describes a new client.
type ClientInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	Company   string
	Notes     string
	Status    domain.ClientStatus
}

// ClientPatch holds optional field updates.
type ClientPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
	Company   *string
	Notes     *string
	Status    *domain.ClientStatus
}

// NewClientService constructs the service.
func NewClientService(clients repository.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

func (s *ClientService) Create(ctx context.Context, input ClientInput) (*domain.Client, error) {
	client := &domain.Client{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     normalizeEmail(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Address:   strings.TrimSpace(input.Address),
		Company:   strings.TrimSpace(input.Company),
		Notes:     strings.TrimSpace(input.Notes),
		Status:    input.Status,
	}
	if client.Status == "" {
		client.Status = domain.ClientActive
	}
	if err := validateClient(client); err != nil {
		return nil, err
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

func (s *ClientService) Update(ctx context.Context, id string, patch ClientPatch) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "client")
	}
	setTrimmed(&client.FirstName, patch.FirstName)
	setTrimmed(&client.LastName, patch.LastName)
	setTrimmed(&client.Phone, patch.Phone)
	setTrimmed(&client.Address, patch.Address)
	setTrimmed(&client.Company, patch.Company)
	setTrimmed(&client.Notes, patch.Notes)
	if patch.Email != nil {
		client.Email = normalizeEmail(*patch.Email)
	}
	if patch.Status != nil {
		client.Status = *patch.Status
	}
	if err := validateClient(client); err != nil {
		return nil, err
	}
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, apperrors.NotFoundOr(err, "client")
	}
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	if err := s.clients.Delete(ctx, id); err != nil {
		return apperrors.NotFoundOr(err, "client")
	}
	return nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "client")
	}
	return client, nil
}

func (s *ClientService) List(ctx context.Context, filter repository.ClientFilter) ([]domain.Client, error) {
	items, err := s.clients.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}

func validateClient(client *domain.Client) error {
	details := map[string]any{}
	if client.FirstName == "" {
		details["first_name"] = "is required"
	}
	switch client.Status {
	case domain.ClientActive, domain.ClientInactive, domain.ClientProspect:
	default:
		details["status"] = "is not a known status"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid client", details)
	}
	return nil
}

func setTrimmed(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
