package dto

import (
	"time"

	"github.com/spec-kit/lawfirm-api/internal/domain"
)

// CreateClientRequest payload.
type CreateClientRequest struct {
	FirstName string              `json:"firstName" validate:"required,max=100"`
	LastName  string              `json:"lastName" validate:"required,max=100"`
	Email     string              `json:"email" validate:"omitempty,email"`
	Phone     string              `json:"phone" validate:"max=40"`
	Address   string              `json:"address" validate:"max=300"`
	Company   string              `json:"company" validate:"max=200"`
	Notes     string              `json:"notes"`
	Status    domain.ClientStatus `json:"status" validate:"omitempty,oneof=active inactive prospect"`
}

// UpdateClientRequest payload; omitted fields are left unchanged.
type UpdateClientRequest struct {
	FirstName *string              `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string              `json:"lastName" validate:"omitempty,max=100"`
	Email     *string              `json:"email" validate:"omitempty,email"`
	Phone     *string              `json:"phone" validate:"omitempty,max=40"`
	Address   *string              `json:"address" validate:"omitempty,max=300"`
	Company   *string              `json:"company" validate:"omitempty,max=200"`
	Notes     *string              `json:"notes"`
	Status    *domain.ClientStatus `json:"status" validate:"omitempty,oneof=active inactive prospect"`
}

type ClientResponse struct {
	ID        string              `json:"id"`
	FirstName string              `json:"firstName"`
	LastName  string              `json:"lastName"`
	FullName  string              `json:"fullName"`
	Email     string              `json:"email"`
	Phone     string              `json:"phone"`
	Address   string              `json:"address"`
	Company   string              `json:"company"`
	Notes     string              `json:"notes"`
	Status    domain.ClientStatus `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func NewClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Company:   c.Company,
		Notes:     c.Notes,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewClientList(items []domain.Client) []ClientResponse {
	return mapAll(items, NewClientResponse)
}
