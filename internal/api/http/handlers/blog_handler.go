package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lawfirm-api/internal/api/dto"
	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/repository"
	"github.com/spec-kit/lawfirm-api/internal/service"
)

// editorRoles may see and change unpublished posts.
var editorRoles = []domain.Role{domain.RoleAdmin, domain.RoleAttorney}

// BlogHandler serves /blog. Reads are public; anonymous callers only see
// published posts.
type BlogHandler struct {
	service *service.BlogService
	uploads *service.UploadService
}

// NewBlogHandler constructs handler.
func NewBlogHandler(blogService *service.BlogService, uploads *service.UploadService) *BlogHandler {
	return &BlogHandler{service: blogService, uploads: uploads}
}

// List GET /blog?tag=&search=.
func (h *BlogHandler) List(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext(), repository.BlogFilter{
		PublishedOnly: !hasRole(c, editorRoles...),
		Tag:           optionalQuery(c, "tag"),
		Search:        optionalQuery(c, "search"),
		Page:          pageFromQuery(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.List("posts", dto.NewBlogPostList(items)))
}

// Get GET /blog/:id, where id is a post id or slug.
func (h *BlogHandler) Get(c *fiber.Ctx) error {
	post, err := h.service.Get(c.UserContext(), c.Params("id"), hasRole(c, editorRoles...))
	if err != nil {
		return err
	}
	return c.JSON(dto.Success("post", dto.NewBlogPostResponse(post)))
}

// Create POST /blog.
func (h *BlogHandler) Create(c *fiber.Ctx) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	var req dto.CreateBlogPostRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	post, err := h.service.Create(c.UserContext(), caller.UserID, service.BlogInput{
		Title:      req.Title,
		Excerpt:    req.Excerpt,
		Body:       req.Body,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
		Published:  req.Published,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.Success("post", dto.NewBlogPostResponse(post)))
}

// Update PATCH /blog/:id.
func (h *BlogHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateBlogPostRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	post, err := h.service.Update(c.UserContext(), id, service.BlogPatch{
		Title:      req.Title,
		Excerpt:    req.Excerpt,
		Body:       req.Body,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
		Published:  req.Published,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.Success("post", dto.NewBlogPostResponse(post)))
}

// Delete DELETE /blog/:id.
func (h *BlogHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// UploadImage POST /blog/upload-image.
func (h *BlogHandler) UploadImage(c *fiber.Ctx) error {
	return saveImage(c, h.uploads)
}
