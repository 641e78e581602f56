package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/getaroom/rental-service/internal/domain"
	"github.com/getaroom/rental-service/internal/repository"
	apperrors "github.com/getaroom/rental-service/pkg/util"
)

const principalKey = "auth_principal"

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens    *TokenManager
	tenants   repository.TenantRepository
	landlords repository.LandlordRepository
	providers repository.ServiceProviderRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, tenants repository.TenantRepository, landlords repository.LandlordRepository, providers repository.ServiceProviderRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, tenants: tenants, landlords: landlords, providers: providers}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	principal, err := m.resolvePrincipal(c, claims)
	if err != nil {
		return err
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

func (m *AuthMiddleware) resolvePrincipal(c *fiber.Ctx, claims *Claims) (*Principal, error) {
	switch claims.Role {
	case domain.RoleTenant:
		tenant, err := m.tenants.GetByID(c.Context(), claims.SubjectID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewUnauthorized("tenant not found")
			}
			return nil, apperrors.MapError(err)
		}
		return TenantPrincipal(tenant), nil
	case domain.RoleLandlord:
		landlord, err := m.landlords.GetByID(c.Context(), claims.SubjectID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewUnauthorized("landlord not found")
			}
			return nil, apperrors.MapError(err)
		}
		return LandlordPrincipal(landlord), nil
	case domain.RoleServiceProvider:
		provider, err := m.providers.GetByID(c.Context(), claims.SubjectID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewUnauthorized("service provider not found")
			}
			return nil, apperrors.MapError(err)
		}
		return ProviderPrincipal(provider), nil
	case domain.RoleTrustee:
		// A trustee token references the granting tenant; the grant must still
		// exist on that tenant at request time.
		tenant, err := m.tenants.GetByID(c.Context(), claims.GrantorTenantID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewUnauthorized("granting tenant not found")
			}
			return nil, apperrors.MapError(err)
		}
		for _, grant := range tenant.Trustees {
			if grant.ID == claims.SubjectID {
				return TrusteePrincipal(&domain.TrusteeView{
					ID:    grant.ID,
					Name:  grant.Name,
					Email: grant.Email,
					TenantInTrust: domain.TenantInTrust{
						ID:           tenant.ID,
						Name:         tenant.Name,
						LeasedRoomID: tenant.LeasedRoomID,
					},
				}), nil
			}
		}
		return nil, apperrors.NewUnauthorized("trustee grant revoked")
	default:
		return nil, apperrors.NewUnauthorized("unknown role")
	}
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
