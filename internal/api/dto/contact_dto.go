package dto

import (
	"time"

	"github.com/spec-kit/lawfirm-api/internal/domain"
)

// SubmitContactRequest is the public contact form.
type SubmitContactRequest struct {
	Name    string `json:"name" form:"name" validate:"required,max=120"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Phone   string `json:"phone" form:"phone" validate:"max=40"`
	Subject string `json:"subject" form:"subject" validate:"max=200"`
	Message string `json:"message" form:"message" validate:"required,max=5000"`
}

// UpdateContactRequest changes the triage status of a submission.
type UpdateContactRequest struct {
	Status domain.ContactStatus `json:"status" validate:"required,oneof=new read replied archived"`
}

type ContactResponse struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Phone     string               `json:"phone"`
	Subject   string               `json:"subject"`
	Message   string               `json:"message"`
	Status    domain.ContactStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

func NewContactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Subject:   c.Subject,
		Message:   c.Message,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewContactList(items []domain.Contact) []ContactResponse {
	return mapAll(items, NewContactResponse)
}
