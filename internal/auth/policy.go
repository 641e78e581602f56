package auth

import "github.com/getaroom/rental-service/internal/domain"

// Action identifies a role-gated lifecycle operation.
type Action string

const (
	ActionSubmitBooking        Action = "booking.submit"
	ActionDecideBooking        Action = "booking.decide"
	ActionReportFault          Action = "ticket.report"
	ActionPlaceBid             Action = "ticket.bid"
	ActionAcceptBid            Action = "ticket.accept_bid"
	ActionMarkJobComplete      Action = "ticket.mark_complete"
	ActionConfirmResolution    Action = "ticket.confirm_resolution"
	ActionFileComplaint        Action = "complaint.file"
	ActionManageTrustees       Action = "tenant.manage_trustees"
	ActionRequestLeaseExt      Action = "tenant.request_lease_extension"
	ActionDecideLeaseExt       Action = "tenant.decide_lease_extension"
	ActionIssueWarning         Action = "tenant.issue_warning"
	ActionRateTenant           Action = "tenant.rate"
	ActionRateLandlord         Action = "landlord.rate"
	ActionRegisterRoom         Action = "room.register"
	ActionPublishAnnouncement  Action = "announcement.publish"
	ActionToggleKeylessEntry   Action = "access.toggle"
)

// Target carries the entities an action operates on. Only the fields relevant
// to the action need to be set.
type Target struct {
	Room       *domain.Room
	Ticket     *domain.FaultTicket
	Tenant     *domain.Tenant
	LandlordID string
	RoomID     string
}

// Can is the single authorization predicate for the lifecycle core. Every
// service consults it before mutating state, replacing per-view role
// branching with one place that knows the role/ownership rules.
func Can(p *Principal, action Action, target Target) bool {
	if p == nil {
		return false
	}
	switch action {
	case ActionSubmitBooking:
		return p.Role == domain.RoleTenant && p.Tenant != nil

	case ActionDecideBooking:
		return landlordManages(p, roomID(target))

	case ActionReportFault:
		// Tenants report for their own leased room; trustees on behalf of
		// exactly their tenant-in-trust's leased room.
		switch p.Role {
		case domain.RoleTenant:
			return p.Tenant != nil && p.Tenant.LeasedRoomID != nil && *p.Tenant.LeasedRoomID == roomID(target)
		case domain.RoleTrustee:
			return p.Trustee != nil && p.Trustee.TenantInTrust.LeasedRoomID != nil &&
				*p.Trustee.TenantInTrust.LeasedRoomID == roomID(target)
		}
		return false

	case ActionPlaceBid:
		if p.Role != domain.RoleServiceProvider || p.Provider == nil || target.Ticket == nil {
			return false
		}
		return p.Provider.Offers(domain.ServiceCategory(target.Ticket.Category))

	case ActionAcceptBid:
		return p.Role == domain.RoleLandlord && p.Landlord != nil &&
			target.Ticket != nil && target.Ticket.LandlordID == p.Landlord.ID

	case ActionMarkJobComplete:
		if p.Role != domain.RoleServiceProvider || p.Provider == nil || target.Ticket == nil {
			return false
		}
		accepted := target.Ticket.AcceptedBid()
		return accepted != nil && accepted.ServiceProviderID == p.Provider.ID

	case ActionConfirmResolution:
		if target.Ticket == nil {
			return false
		}
		switch p.Role {
		case domain.RoleTenant:
			return p.Tenant != nil && p.Tenant.ID == target.Ticket.TenantID
		case domain.RoleLandlord:
			return p.Landlord != nil && p.Landlord.ID == target.Ticket.LandlordID
		}
		return false

	case ActionFileComplaint:
		// Any stored role-holder may file; trustees act through their tenant.
		return p.Role == domain.RoleTenant || p.Role == domain.RoleLandlord || p.Role == domain.RoleServiceProvider

	case ActionManageTrustees, ActionRequestLeaseExt:
		return p.Role == domain.RoleTenant && p.Tenant != nil &&
			target.Tenant != nil && target.Tenant.ID == p.Tenant.ID

	case ActionDecideLeaseExt, ActionIssueWarning, ActionRateTenant:
		// Landlord authority over a tenant flows through the leased room.
		if p.Role != domain.RoleLandlord || p.Landlord == nil || target.Tenant == nil {
			return false
		}
		if target.Tenant.LeasedRoomID == nil {
			return false
		}
		return managesRoom(p.Landlord, *target.Tenant.LeasedRoomID)

	case ActionRateLandlord:
		// Once per completed, not-yet-reviewed stay with that landlord.
		if p.Role != domain.RoleTenant || p.Tenant == nil || target.LandlordID == "" {
			return false
		}
		for _, entry := range p.Tenant.BookingHistory {
			if entry.LandlordID == target.LandlordID && !entry.Reviewed {
				return true
			}
		}
		return false

	case ActionRegisterRoom, ActionPublishAnnouncement:
		return p.Role == domain.RoleLandlord && p.Landlord != nil

	case ActionToggleKeylessEntry:
		// Access is specific to one room and never transitively granted.
		switch p.Role {
		case domain.RoleTenant:
			return p.Tenant != nil && p.Tenant.LeasedRoomID != nil && *p.Tenant.LeasedRoomID == roomID(target)
		case domain.RoleTrustee:
			return p.Trustee != nil && p.Trustee.TenantInTrust.LeasedRoomID != nil &&
				*p.Trustee.TenantInTrust.LeasedRoomID == roomID(target)
		}
		return false
	}
	return false
}

func roomID(target Target) string {
	if target.Room != nil {
		return target.Room.ID
	}
	return target.RoomID
}

func landlordManages(p *Principal, id string) bool {
	if p.Role != domain.RoleLandlord || p.Landlord == nil || id == "" {
		return false
	}
	return managesRoom(p.Landlord, id)
}

func managesRoom(landlord *domain.Landlord, id string) bool {
	for _, managed := range landlord.ManagedProperties {
		if managed == id {
			return true
		}
	}
	return false
}
