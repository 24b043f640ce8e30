package auth

import (
	"slices"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-intake/internal/domain"
	apperrors "github.com/spec-kit/lead-intake/pkg/util/errorutil"
)

// RestrictTo ensures the authenticated user holds one of the allowed roles.
// It must run after AuthMiddleware.Handle.
func RestrictTo(allowed ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Not authorized to access this route")
		}
		if !slices.Contains(allowed, principal.User.Role) {
			return apperrors.NewForbidden("You do not have permission to perform this action")
		}
		return c.Next()
	}
}

// RequireAdmin is RestrictTo(admin).
func RequireAdmin() fiber.Handler {
	return RestrictTo(domain.UserRoleAdmin)
}
