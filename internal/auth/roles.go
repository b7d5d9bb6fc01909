package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/lawfirm-api/internal/domain"
	"github.com/spec-kit/lawfirm-api/internal/observability"
	apperrors "github.com/spec-kit/lawfirm-api/pkg/util/errorutil"
)

// RoleSet is an immutable set of permitted roles.
type RoleSet map[domain.Role]struct{}

// Roles builds a RoleSet.
func Roles(roles ...domain.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return set
}

// Allows reports whether identity holds one of the permitted roles.
func (s RoleSet) Allows(identity *domain.Identity) bool {
	if identity == nil {
		return false
	}
	_, ok := s[identity.Role]
	return ok
}

// RestrictTo admits only callers whose role is in allowed. It must run after
// AuthMiddleware.Handle.
func RestrictTo(security *observability.SecurityLog, allowed ...domain.Role) fiber.Handler {
	set := Roles(allowed...)
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok || !set.Allows(identity) {
			fields := []zap.Field{}
			if ok {
				fields = append(fields, zap.String("user_id", identity.UserID), zap.String("role", string(identity.Role)))
			}
			security.RecordRequest(c, observability.EventAccessForbidden, fields...)
			return apperrors.NewForbidden("you do not have permission to perform this action")
		}
		return c.Next()
	}
}
