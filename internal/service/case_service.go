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

// CaseService manages legal matters.
type CaseService struct {
	cases   repository.CaseRepository
	clients repository.ClientRepository
	users   repository.UserRepository
	now     func() time.Time
}

// CaseDependencies bundles repositories for the case service.
type CaseDependencies struct {
	CaseRepo   repository.CaseRepository
	ClientRepo repository.ClientRepository
	UserRepo   repository.UserRepository
}

// CaseInput describes a new matter. An empty CaseNumber is generated.
type CaseInput struct {
	CaseNumber   string
	Title        string
	Description  string
	ClientID     string
	AttorneyID   *string
	PracticeArea string
	Status       domain.CaseStatus
	OpenedAt     *time.Time
}

// CasePatch holds optional field updates.
type CasePatch struct {
	Title        *string
	Description  *string
	ClientID     *string
	AttorneyID   *string
	PracticeArea *string
	Status       *domain.CaseStatus
}

// NewCaseService constructs the service.
func NewCaseService(deps CaseDependencies) *CaseService {
	return &CaseService{cases: deps.CaseRepo, clients: deps.ClientRepo, users: deps.UserRepo, now: time.Now}
}

func (s *CaseService) Create(ctx context.Context, input CaseInput) (*domain.LegalCase, error) {
	now := s.now()
	c := &domain.LegalCase{
		CaseNumber:   strings.TrimSpace(input.CaseNumber),
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		ClientID:     input.ClientID,
		AttorneyID:   input.AttorneyID,
		PracticeArea: strings.TrimSpace(input.PracticeArea),
		Status:       input.Status,
		OpenedAt:     now,
	}
	if input.OpenedAt != nil {
		c.OpenedAt = *input.OpenedAt
	}
	if c.Status == "" {
		c.Status = domain.CaseOpen
	}
	if c.CaseNumber == "" {
		c.CaseNumber = generateCaseNumber(now)
	}
	s.stampClosed(c)
	if err := s.validate(ctx, c); err != nil {
		return nil, err
	}
	if err := s.cases.Create(ctx, c); err != nil {
		return nil, apperrors.MapError(err)
	}
	return c, nil
}

func (s *CaseService) Update(ctx context.Context, id string, patch CasePatch) (*domain.LegalCase, error) {
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "case")
	}
	setTrimmed(&c.Title, patch.Title)
	setTrimmed(&c.Description, patch.Description)
	setTrimmed(&c.PracticeArea, patch.PracticeArea)
	if patch.ClientID != nil {
		c.ClientID = *patch.ClientID
	}
	if patch.AttorneyID != nil {
		if *patch.AttorneyID == "" {
			c.AttorneyID = nil
		} else {
			attorney := *patch.AttorneyID
			c.AttorneyID = &attorney
		}
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	s.stampClosed(c)
	if err := s.validate(ctx, c); err != nil {
		return nil, err
	}
	if err := s.cases.Update(ctx, c); err != nil {
		return nil, apperrors.NotFoundOr(err, "case")
	}
	return c, nil
}

func (s *CaseService) Delete(ctx context.Context, id string) error {
	if err := s.cases.Delete(ctx, id); err != nil {
		return apperrors.NotFoundOr(err, "case")
	}
	return nil
}

func (s *CaseService) Get(ctx context.Context, id string) (*domain.LegalCase, error) {
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "case")
	}
	return c, nil
}

func (s *CaseService) List(ctx context.Context, filter repository.CaseFilter) ([]domain.LegalCase, error) {
	items, err := s.cases.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}

// stampClosed keeps ClosedAt in step with terminal statuses.
func (s *CaseService) stampClosed(c *domain.LegalCase) {
	switch c.Status {
	case domain.CaseClosed, domain.CaseWon, domain.CaseLost:
		if c.ClosedAt == nil {
			now := s.now()
			c.ClosedAt = &now
		}
	default:
		c.ClosedAt = nil
	}
}

func (s *CaseService) validate(ctx context.Context, c *domain.LegalCase) error {
	details := map[string]any{}
	if c.Title == "" {
		details["title"] = "is required"
	}
	switch c.Status {
	case domain.CaseOpen, domain.CasePending, domain.CaseClosed, domain.CaseWon, domain.CaseLost:
	default:
		details["status"] = "is not a known status"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid case", details)
	}
	if _, err := s.clients.GetByID(ctx, c.ClientID); err != nil {
		return apperrors.NotFoundOr(err, "client")
	}
	if c.AttorneyID != nil {
		attorney, err := s.users.GetByID(ctx, *c.AttorneyID)
		if err != nil {
			return apperrors.NotFoundOr(err, "attorney")
		}
		if attorney.Role != domain.RoleAttorney && attorney.Role != domain.RoleAdmin {
			return apperrors.NewValidationError("assigned user is not an attorney", map[string]any{"attorneyId": *c.AttorneyID})
		}
	}
	return nil
}

func generateCaseNumber(now time.Time) string {
	return fmt.Sprintf("CASE-%d-%s", now.Year(), strings.ToUpper(uuid.NewString()[:8]))
}
