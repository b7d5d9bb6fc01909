package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lawfirm-api/internal/api/dto"
	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/repository"
	"github.com/spec-kit/lawfirm-api/internal/service"
)

// ClientsHandler serves /clients.
type ClientsHandler struct {
	service *service.ClientService
}

// NewClientsHandler constructs handler.
func NewClientsHandler(clientService *service.ClientService) *ClientsHandler {
	return &ClientsHandler{service: clientService}
}

// List GET /clients?status=&search=.
func (h *ClientsHandler) List(c *fiber.Ctx) error {
	filter := repository.ClientFilter{Search: optionalQuery(c, "search"), Page: pageFromQuery(c)}
	if status := optionalQuery(c, "status"); status != nil {
		s := domain.ClientStatus(*status)
		filter.Status = &s
	}
	items, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.List("clients", dto.NewClientList(items)))
}

// Get GET /clients/:id.
func (h *ClientsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	client, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.Success("client", dto.NewClientResponse(client)))
}

// Create POST /clients.
func (h *ClientsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateClientRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	client, err := h.service.Create(c.UserContext(), service.ClientInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Company:   req.Company,
		Notes:     req.Notes,
		Status:    req.Status,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.Success("client", dto.NewClientResponse(client)))
}

// Update PATCH /clients/:id.
func (h *ClientsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateClientRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	client, err := h.service.Update(c.UserContext(), id, service.ClientPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Company:   req.Company,
		Notes:     req.Notes,
		Status:    req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.Success("client", dto.NewClientResponse(client)))
}

// Delete DELETE /clients/:id.
func (h *ClientsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
