package handlers

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lawfirm-api/internal/auth"
	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/repository"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json field names so details match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// bindJSON decodes the body into dst and validates its struct tags.
func bindJSON(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.NewValidationError("invalid request body", map[string]any{"body": err.Error()})
	}
	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return apperrors.NewValidationError("invalid request body", nil)
		}
		details := make(map[string]any, len(fieldErrs))
		for _, fe := range fieldErrs {
			if fe.Param() != "" {
				details[fe.Field()] = fe.Tag() + "=" + fe.Param()
			} else {
				details[fe.Field()] = fe.Tag()
			}
		}
		return apperrors.NewValidationError("validation failed", details)
	}
	return nil
}

// pageFromQuery reads ?page=&limit= (1-based page).
func pageFromQuery(c *fiber.Ctx) repository.Page {
	page := queryInt(c, "page", 1)
	limit, _ := repository.Page{Limit: queryInt(c, "limit", 0)}.Bounds()
	return repository.Page{Limit: limit, Offset: (page - 1) * limit}
}

func queryInt(c *fiber.Ctx, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func optionalQuery(c *fiber.Ctx, key string) *string {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	return &raw
}

// optionalUUIDQuery is optionalQuery for id filters.
func optionalUUIDQuery(c *fiber.Ctx, key string) (*string, error) {
	v := optionalQuery(c, key)
	if v != nil && !isUUID(*v) {
		return nil, apperrors.NewValidationError("malformed id filter", map[string]any{key: "uuid"})
	}
	return v, nil
}

// pathID returns the :id parameter, rejecting anything that is not a uuid.
func pathID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if !isUUID(id) {
		return "", apperrors.NewBadRequest("malformed id")
	}
	return id, nil
}

func isUUID(s string) bool {
	return validate.Var(s, "required,uuid") == nil
}

// identity returns the authenticated caller or fails Unauthenticated.
func identity(c *fiber.Ctx) (*domain.Identity, error) {
	id, ok := auth.IdentityFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthenticated("you are not logged in, please log in to get access")
	}
	return id, nil
}

// hasRole reports whether the optional caller holds one of roles.
func hasRole(c *fiber.Ctx, roles ...domain.Role) bool {
	id, ok := auth.IdentityFromContext(c)
	return ok && auth.Roles(roles...).Allows(id)
}
