package auth

import "github.com/getaroom/rental-service/internal/domain"

// Principal represents the authenticated caller, one variant populated per
// role. There is no ambient session state; the principal is passed explicitly
// into every lifecycle operation.
type Principal struct {
	Role     domain.Role
	Tenant   *domain.Tenant
	Landlord *domain.Landlord
	Provider *domain.ServiceProvider
	Trustee  *domain.TrusteeView
}

// ID returns the identifier of the underlying actor.
func (p *Principal) ID() string {
	switch p.Role {
	case domain.RoleTenant:
		if p.Tenant != nil {
			return p.Tenant.ID
		}
	case domain.RoleLandlord:
		if p.Landlord != nil {
			return p.Landlord.ID
		}
	case domain.RoleServiceProvider:
		if p.Provider != nil {
			return p.Provider.ID
		}
	case domain.RoleTrustee:
		if p.Trustee != nil {
			return p.Trustee.ID
		}
	}
	return ""
}

// Name returns the display name of the underlying actor.
func (p *Principal) Name() string {
	switch p.Role {
	case domain.RoleTenant:
		if p.Tenant != nil {
			return p.Tenant.Name
		}
	case domain.RoleLandlord:
		if p.Landlord != nil {
			return p.Landlord.Name
		}
	case domain.RoleServiceProvider:
		if p.Provider != nil {
			return p.Provider.Name
		}
	case domain.RoleTrustee:
		if p.Trustee != nil {
			return p.Trustee.Name
		}
	}
	return ""
}

// TenantPrincipal wraps a tenant as a principal.
func TenantPrincipal(tenant *domain.Tenant) *Principal {
	return &Principal{Role: domain.RoleTenant, Tenant: tenant}
}

// LandlordPrincipal wraps a landlord as a principal.
func LandlordPrincipal(landlord *domain.Landlord) *Principal {
	return &Principal{Role: domain.RoleLandlord, Landlord: landlord}
}

// ProviderPrincipal wraps a service provider as a principal.
func ProviderPrincipal(provider *domain.ServiceProvider) *Principal {
	return &Principal{Role: domain.RoleServiceProvider, Provider: provider}
}

// TrusteePrincipal wraps a resolved trustee view as a principal.
func TrusteePrincipal(trustee *domain.TrusteeView) *Principal {
	return &Principal{Role: domain.RoleTrustee, Trustee: trustee}
}
