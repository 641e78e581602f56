package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/getaroom/rental-service/internal/auth"
	"github.com/getaroom/rental-service/internal/config"
	"github.com/getaroom/rental-service/internal/domain"
	"github.com/getaroom/rental-service/internal/repository"
	apperrors "github.com/getaroom/rental-service/pkg/util"
)

// AuthService coordinates registration and login for every role variant.
type AuthService struct {
	tenants    repository.TenantRepository
	landlords  repository.LandlordRepository
	providers  repository.ServiceProviderRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for the auth service.
type AuthDependencies struct {
	TenantRepo   repository.TenantRepository
	LandlordRepo repository.LandlordRepository
	ProviderRepo repository.ServiceProviderRepository
}

// Session is the result of a successful login or registration.
type Session struct {
	Principal *auth.Principal
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		tenants:    deps.TenantRepo,
		landlords:  deps.LandlordRepo,
		providers:  deps.ProviderRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterTenant creates a tenant account.
func (s *AuthService) RegisterTenant(ctx context.Context, name, email, password string, kind domain.TenantKind) (*Session, error) {
	email = normalizeEmail(email)
	if err := s.checkEmailFree(ctx, email); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if kind != domain.TenantKindStudent && kind != domain.TenantKindGeneral {
		kind = domain.TenantKindGeneral
	}

	tenant := &domain.Tenant{
		Account: domain.Account{
			Name:         strings.TrimSpace(name),
			Email:        email,
			PasswordHash: hash,
		},
		Kind:           kind,
		RentStatus:     domain.RentStatusPaid,
		Warnings:       []string{},
		Trustees:       []domain.TrusteeGrant{},
		BookingHistory: []domain.BookingHistoryEntry{},
	}
	if err := s.tenants.Create(ctx, tenant); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.session(auth.TenantPrincipal(tenant), tenant.ID, domain.RoleTenant, "")
}

// RegisterLandlord creates a landlord account.
func (s *AuthService) RegisterLandlord(ctx context.Context, name, email, password string, propertyTypes []domain.PropertyType) (*Session, error) {
	email = normalizeEmail(email)
	if err := s.checkEmailFree(ctx, email); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	landlord := &domain.Landlord{
		Account: domain.Account{
			Name:         strings.TrimSpace(name),
			Email:        email,
			PasswordHash: hash,
		},
		PropertyTypes:     propertyTypes,
		ManagedProperties: []string{},
		Reviews:           []domain.LandlordReview{},
	}
	if err := s.landlords.Create(ctx, landlord); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.session(auth.LandlordPrincipal(landlord), landlord.ID, domain.RoleLandlord, "")
}

// RegisterServiceProvider creates a provider account with declared services.
func (s *AuthService) RegisterServiceProvider(ctx context.Context, name, email, password string, services []domain.ServiceCategory) (*Session, error) {
	email = normalizeEmail(email)
	if err := s.checkEmailFree(ctx, email); err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, apperrors.NewValidationError("at least one service required", nil)
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	provider := &domain.ServiceProvider{
		Account: domain.Account{
			Name:         strings.TrimSpace(name),
			Email:        email,
			PasswordHash: hash,
		},
		Services: services,
		Feedback: []domain.ClientFeedback{},
	}
	if err := s.providers.Create(ctx, provider); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.session(auth.ProviderPrincipal(provider), provider.ID, domain.RoleServiceProvider, "")
}

// Login authenticates a stored account by email, trying each role table.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)

	if tenant, err := s.tenants.GetByEmail(ctx, email); err == nil {
		if auth.VerifyPassword(tenant.PasswordHash, password) != nil {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return s.session(auth.TenantPrincipal(tenant), tenant.ID, domain.RoleTenant, "")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	if landlord, err := s.landlords.GetByEmail(ctx, email); err == nil {
		if auth.VerifyPassword(landlord.PasswordHash, password) != nil {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return s.session(auth.LandlordPrincipal(landlord), landlord.ID, domain.RoleLandlord, "")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	if provider, err := s.providers.GetByEmail(ctx, email); err == nil {
		if auth.VerifyPassword(provider.PasswordHash, password) != nil {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return s.session(auth.ProviderPrincipal(provider), provider.ID, domain.RoleServiceProvider, "")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	return nil, apperrors.NewUnauthorized("invalid credentials")
}

// LoginTrustee resolves a trustee identity by scanning tenants' trustee
// grants. Grants carry no credentials of their own; possession of the granted
// email is the whole identity.
func (s *AuthService) LoginTrustee(ctx context.Context, email string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperrors.NewValidationError("email required", nil)
	}

	tenants, err := s.tenants.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	for i := range tenants {
		tenant := &tenants[i]
		for _, grant := range tenant.Trustees {
			if strings.EqualFold(grant.Email, email) {
				view := &domain.TrusteeView{
					ID:    grant.ID,
					Name:  grant.Name,
					Email: grant.Email,
					TenantInTrust: domain.TenantInTrust{
						ID:           tenant.ID,
						Name:         tenant.Name,
						LeasedRoomID: tenant.LeasedRoomID,
					},
				}
				return s.session(auth.TrusteePrincipal(view), grant.ID, domain.RoleTrustee, tenant.ID)
			}
		}
	}
	return nil, apperrors.NewUnauthorized("no trustee grant for this email")
}

// ChangePassword verifies the current password before updating the hash.
func (s *AuthService) ChangePassword(ctx context.Context, actor *auth.Principal, currentPassword, newPassword string) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}

	switch actor.Role {
	case domain.RoleTenant:
		tenant := actor.Tenant
		if auth.VerifyPassword(tenant.PasswordHash, currentPassword) != nil {
			return apperrors.NewUnauthorized("invalid credentials")
		}
		tenant.PasswordHash = hash
		return apperrors.MapError(s.tenants.Update(ctx, tenant))
	case domain.RoleLandlord:
		landlord := actor.Landlord
		if auth.VerifyPassword(landlord.PasswordHash, currentPassword) != nil {
			return apperrors.NewUnauthorized("invalid credentials")
		}
		landlord.PasswordHash = hash
		return apperrors.MapError(s.landlords.Update(ctx, landlord))
	case domain.RoleServiceProvider:
		provider := actor.Provider
		if auth.VerifyPassword(provider.PasswordHash, currentPassword) != nil {
			return apperrors.NewUnauthorized("invalid credentials")
		}
		provider.PasswordHash = hash
		return apperrors.MapError(s.providers.Update(ctx, provider))
	default:
		return apperrors.NewForbidden("trustees have no stored credentials")
	}
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) session(principal *auth.Principal, subjectID string, role domain.Role, grantorTenantID string) (*Session, error) {
	token, exp, err := s.tokenMgr.GenerateToken(subjectID, role, grantorTenantID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &Session{Principal: principal, Token: token, ExpiresAt: exp}, nil
}

func (s *AuthService) checkEmailFree(ctx context.Context, email string) error {
	if email == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	checks := []func() error{
		func() error { _, err := s.tenants.GetByEmail(ctx, email); return err },
		func() error { _, err := s.landlords.GetByEmail(ctx, email); return err },
		func() error { _, err := s.providers.GetByEmail(ctx, email); return err },
	}
	for _, check := range checks {
		err := check()
		if err == nil {
			return apperrors.NewConflict("email already registered", map[string]any{"email": email})
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return apperrors.MapError(err)
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
