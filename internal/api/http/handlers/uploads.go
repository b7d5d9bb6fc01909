package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lawfirm-api/internal/api/dto"
	"github.com/spec-kit/lawfirm-api/internal/service"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

const uploadField = "image"

// saveImage stores the single "image" part of a multipart request.
func saveImage(c *fiber.Ctx, uploads *service.UploadService) error {
	file, err := c.FormFile(uploadField)
	if err != nil {
		return apperrors.NewValidationError("no image uploaded", map[string]any{uploadField: "is required"})
	}
	name, err := uploads.SaveImage(file)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.Success("filename", name))
}
