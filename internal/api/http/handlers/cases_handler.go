package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lawfirm-api/internal/api/dto"
	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/repository"
	"github.com/spec-kit/lawfirm-api/internal/service"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

// CasesHandler serves /cases.
type CasesHandler struct {
	service *service.CaseService
}

// NewCasesHandler constructs handler.
func NewCasesHandler(caseService *service.CaseService) *CasesHandler {
	return &CasesHandler{service: caseService}
}

// List GET /cases?status=&client_id=&attorney_id=.
func (h *CasesHandler) List(c *fiber.Ctx) error {
	clientID, err := optionalUUIDQuery(c, "client_id")
	if err != nil {
		return err
	}
	attorneyID, err := optionalUUIDQuery(c, "attorney_id")
	if err != nil {
		return err
	}
	filter := repository.CaseFilter{ClientID: clientID, AttorneyID: attorneyID, Page: pageFromQuery(c)}
	if status := optionalQuery(c, "status"); status != nil {
		s := domain.CaseStatus(*status)
		filter.Status = &s
	}
	items, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.List("cases", dto.NewCaseList(items)))
}

// Get GET /cases/:id.
func (h *CasesHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	legalCase, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.Success("case", dto.NewCaseResponse(legalCase)))
}

// Create POST /cases.
func (h *CasesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCaseRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	legalCase, err := h.service.Create(c.UserContext(), service.CaseInput{
		CaseNumber:   req.CaseNumber,
		Title:        req.Title,
		Description:  req.Description,
		ClientID:     req.ClientID,
		AttorneyID:   req.AttorneyID,
		PracticeArea: req.PracticeArea,
		Status:       req.Status,
		OpenedAt:     req.OpenedAt,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.Success("case", dto.NewCaseResponse(legalCase)))
}

// Update PATCH /cases/:id.
func (h *CasesHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateCaseRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.AttorneyID != nil && *req.AttorneyID != "" && !isUUID(*req.AttorneyID) {
		return apperrors.NewValidationError("validation failed", map[string]any{"attorneyId": "uuid"})
	}
	legalCase, err := h.service.Update(c.UserContext(), id, service.CasePatch{
		Title:        req.Title,
		Description:  req.Description,
		ClientID:     req.ClientID,
		AttorneyID:   req.AttorneyID,
		PracticeArea: req.PracticeArea,
		Status:       req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.Success("case", dto.NewCaseResponse(legalCase)))
}

// Delete DELETE /cases/:id.
func (h *CasesHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
