package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/lawfirm-api/internal/api/dto"
	"github.com/spec-kit/lawfirm-api/internal/auth"
	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/observability"
	"github.com/spec-kit/lawfirm-api/internal/service"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

// AuthHandler exposes the /auth endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	cookie   *auth.SessionCookie
	security *observability.SecurityLog
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookie *auth.SessionCookie, security *observability.SecurityLog) *AuthHandler {
	return &AuthHandler{auth: authService, cookie: cookie, security: security}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	user, token, err := h.auth.Signup(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.signedIn(c, http.StatusCreated, user, token)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	user, token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.NewUnauthenticated("")) {
			h.security.RecordRequest(c, observability.EventLoginFailed, zap.String("email", req.Email))
		}
		return err
	}
	return h.signedIn(c, http.StatusOK, user, token)
}

// Logout handles GET /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.cookie.Clear(c)
	return c.JSON(dto.Envelope{Status: "success"})
}

// Refresh handles POST /auth/refresh-token.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	user, token, err := h.auth.Refresh(c.UserContext(), caller.UserID)
	if err != nil {
		return err
	}
	return h.signedIn(c, http.StatusOK, user, token)
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	user, err := h.auth.Me(c.UserContext(), caller.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.Success("user", dto.NewUserResponse(user)))
}

// UpdatePassword handles PATCH /auth/update-password. The response carries a
// fresh token because the caller's current one is superseded by the change.
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	var req dto.UpdatePasswordRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	user, token, err := h.auth.UpdatePassword(c.UserContext(), caller.UserID, req.PasswordCurrent, req.Password)
	if err != nil {
		return err
	}
	return h.signedIn(c, http.StatusOK, user, token)
}

func (h *AuthHandler) signedIn(c *fiber.Ctx, status int, user *domain.User, token *service.IssuedToken) error {
	h.cookie.Set(c, token.Token)
	return c.Status(status).JSON(dto.AuthResponse(token.Token, user))
}
