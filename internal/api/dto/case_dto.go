package dto

import (
	"time"

	"github.com/spec-kit/lawfirm-api/internal/domain"
)

// CreateCaseRequest payload. An omitted caseNumber is generated.
type CreateCaseRequest struct {
	CaseNumber   string            `json:"caseNumber" validate:"max=40"`
	Title        string            `json:"title" validate:"required,max=200"`
	Description  string            `json:"description"`
	ClientID     string            `json:"clientId" validate:"required,uuid"`
	AttorneyID   *string           `json:"attorneyId" validate:"omitempty,uuid"`
	PracticeArea string            `json:"practiceArea" validate:"max=120"`
	Status       domain.CaseStatus `json:"status" validate:"omitempty,oneof=open pending closed won lost"`
	OpenedAt     *time.Time        `json:"openedAt"`
}

// UpdateCaseRequest payload. An empty attorneyId unassigns the case.
type UpdateCaseRequest struct {
	Title        *string            `json:"title" validate:"omitempty,max=200"`
	Description  *string            `json:"description"`
	ClientID     *string            `json:"clientId" validate:"omitempty,uuid"`
	AttorneyID   *string            `json:"attorneyId"`
	PracticeArea *string            `json:"practiceArea" validate:"omitempty,max=120"`
	Status       *domain.CaseStatus `json:"status" validate:"omitempty,oneof=open pending closed won lost"`
}

type CaseResponse struct {
	ID           string            `json:"id"`
	CaseNumber   string            `json:"caseNumber"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	ClientID     string            `json:"clientId"`
	AttorneyID   *string           `json:"attorneyId"`
	PracticeArea string            `json:"practiceArea"`
	Status       domain.CaseStatus `json:"status"`
	OpenedAt     time.Time         `json:"openedAt"`
	ClosedAt     *time.Time        `json:"closedAt"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func NewCaseResponse(c *domain.LegalCase) CaseResponse {
	return CaseResponse{
		ID:           c.ID,
		CaseNumber:   c.CaseNumber,
		Title:        c.Title,
		Description:  c.Description,
		ClientID:     c.ClientID,
		AttorneyID:   c.AttorneyID,
		PracticeArea: c.PracticeArea,
		Status:       c.Status,
		OpenedAt:     c.OpenedAt,
		ClosedAt:     c.ClosedAt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func NewCaseList(items []domain.LegalCase) []CaseResponse {
	return mapAll(items, NewCaseResponse)
}
