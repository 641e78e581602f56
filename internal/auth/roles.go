package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/getaroom/rental-service/internal/domain"
	apperrors "github.com/getaroom/rental-service/pkg/util"
)

// RequireRole admits only principals holding one of the allowed roles.
// With no roles listed any authenticated principal passes.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowed) == 0 {
			return c.Next()
		}
		for _, role := range allowed {
			if principal.Role == role {
				return c.Next()
			}
		}
		return apperrors.NewForbidden("role not permitted for this resource")
	}
}

// RequireAnyRole admits any authenticated principal.
func RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
