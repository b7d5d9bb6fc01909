package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lawfirm-api/internal/api/dto"
	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/repository"
	"github.com/spec-kit/lawfirm-api/internal/service"
)

// ContentHandler serves one marketing collection (practice areas, team,
// home cards). Reads are public and hide unpublished items from everyone
// but admins.
type ContentHandler struct {
	kind    domain.ContentKind
	one     string
	many    string
	service *service.ContentService
	uploads *service.UploadService
}

// NewContentHandler binds a handler to kind. one and many name the envelope
// keys, e.g. "practiceArea" and "practiceAreas".
func NewContentHandler(kind domain.ContentKind, one, many string, contentService *service.ContentService, uploads *service.UploadService) *ContentHandler {
	return &ContentHandler{kind: kind, one: one, many: many, service: contentService, uploads: uploads}
}

func (h *ContentHandler) List(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext(), repository.ContentFilter{
		Kind:          h.kind,
		PublishedOnly: !hasRole(c, domain.RoleAdmin),
		Page:          pageFromQuery(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.List(h.many, dto.NewContentList(items)))
}

func (h *ContentHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	item, err := h.service.Get(c.UserContext(), h.kind, id, hasRole(c, domain.RoleAdmin))
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(h.one, dto.NewContentResponse(item)))
}

func (h *ContentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateContentRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	item, err := h.service.Create(c.UserContext(), h.kind, service.ContentInput{
		Title:     req.Title,
		Slug:      req.Slug,
		Summary:   req.Summary,
		Body:      req.Body,
		Image:     req.Image,
		Icon:      req.Icon,
		Position:  req.Position,
		Published: req.Published,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.Success(h.one, dto.NewContentResponse(item)))
}

func (h *ContentHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateContentRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	item, err := h.service.Update(c.UserContext(), h.kind, id, service.ContentPatch{
		Title:     req.Title,
		Slug:      req.Slug,
		Summary:   req.Summary,
		Body:      req.Body,
		Image:     req.Image,
		Icon:      req.Icon,
		Position:  req.Position,
		Published: req.Published,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(h.one, dto.NewContentResponse(item)))
}

func (h *ContentHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), h.kind, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *ContentHandler) UploadImage(c *fiber.Ctx) error {
	return saveImage(c, h.uploads)
}
