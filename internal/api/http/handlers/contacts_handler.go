package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lawfirm-api/internal/api/dto"
	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/repository"
	"github.com/spec-kit/lawfirm-api/internal/service"
)

// ContactsHandler serves /contacts.
type ContactsHandler struct {
	service *service.ContactService
}

// NewContactsHandler constructs handler.
func NewContactsHandler(contactService *service.ContactService) *ContactsHandler {
	return &ContactsHandler{service: contactService}
}

// Submit POST /contacts (public).
func (h *ContactsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitContactRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	contact, err := h.service.Submit(c.UserContext(), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.Success("contact", dto.NewContactResponse(contact)))
}

// List GET /contacts?status=.
func (h *ContactsHandler) List(c *fiber.Ctx) error {
	filter := repository.ContactFilter{Page: pageFromQuery(c)}
	if status := optionalQuery(c, "status"); status != nil {
		s := domain.ContactStatus(*status)
		filter.Status = &s
	}
	items, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.List("contacts", dto.NewContactList(items)))
}

// Get GET /contacts/:id.
func (h *ContactsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	contact, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.Success("contact", dto.NewContactResponse(contact)))
}

// Update PATCH /contacts/:id.
func (h *ContactsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateContactRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	contact, err := h.service.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.Success("contact", dto.NewContactResponse(contact)))
}

// Delete DELETE /contacts/:id.
func (h *ContactsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
