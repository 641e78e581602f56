package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/getaroom/rental-service/internal/domain"
	"github.com/getaroom/rental-service/internal/events"
	"github.com/getaroom/rental-service/internal/repository"
)

// In-memory repository fakes. They hand out the stored pointers, matching how
// services mutate an entity and then persist it with Update.

type fakeTenantRepo struct {
	tenants map[string]*domain.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: map[string]*domain.Tenant{}}
}

func (r *fakeTenantRepo) Create(_ context.Context, tenant *domain.Tenant) error {
	if tenant.ID == "" {
		tenant.ID = uuid.NewString()
	}
	r.tenants[tenant.ID] = tenant
	return nil
}

func (r *fakeTenantRepo) Update(_ context.Context, tenant *domain.Tenant) error {
	if _, ok := r.tenants[tenant.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.tenants[tenant.ID] = tenant
	return nil
}

func (r *fakeTenantRepo) GetByID(_ context.Context, id string) (*domain.Tenant, error) {
	tenant, ok := r.tenants[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return tenant, nil
}

func (r *fakeTenantRepo) GetByEmail(_ context.Context, email string) (*domain.Tenant, error) {
	for _, tenant := range r.tenants {
		if tenant.Email == email {
			return tenant, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTenantRepo) ListAll(_ context.Context) ([]domain.Tenant, error) {
	out := make([]domain.Tenant, 0, len(r.tenants))
	for _, tenant := range r.tenants {
		out = append(out, *tenant)
	}
	return out, nil
}

type fakeLandlordRepo struct {
	landlords map[string]*domain.Landlord
}

func newFakeLandlordRepo() *fakeLandlordRepo {
	return &fakeLandlordRepo{landlords: map[string]*domain.Landlord{}}
}

func (r *fakeLandlordRepo) Create(_ context.Context, landlord *domain.Landlord) error {
	if landlord.ID == "" {
		landlord.ID = uuid.NewString()
	}
	r.landlords[landlord.ID] = landlord
	return nil
}

func (r *fakeLandlordRepo) Update(_ context.Context, landlord *domain.Landlord) error {
	if _, ok := r.landlords[landlord.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.landlords[landlord.ID] = landlord
	return nil
}

func (r *fakeLandlordRepo) GetByID(_ context.Context, id string) (*domain.Landlord, error) {
	landlord, ok := r.landlords[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return landlord, nil
}

func (r *fakeLandlordRepo) GetByEmail(_ context.Context, email string) (*domain.Landlord, error) {
	for _, landlord := range r.landlords {
		if landlord.Email == email {
			return landlord, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeProviderRepo struct {
	providers map[string]*domain.ServiceProvider
}

func newFakeProviderRepo() *fakeProviderRepo {
	return &fakeProviderRepo{providers: map[string]*domain.ServiceProvider{}}
}

func (r *fakeProviderRepo) Create(_ context.Context, provider *domain.ServiceProvider) error {
	if provider.ID == "" {
		provider.ID = uuid.NewString()
	}
	r.providers[provider.ID] = provider
	return nil
}

func (r *fakeProviderRepo) Update(_ context.Context, provider *domain.ServiceProvider) error {
	if _, ok := r.providers[provider.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.providers[provider.ID] = provider
	return nil
}

func (r *fakeProviderRepo) GetByID(_ context.Context, id string) (*domain.ServiceProvider, error) {
	provider, ok := r.providers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return provider, nil
}

func (r *fakeProviderRepo) GetByEmail(_ context.Context, email string) (*domain.ServiceProvider, error) {
	for _, provider := range r.providers {
		if provider.Email == email {
			return provider, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeRoomRepo struct {
	rooms map[string]*domain.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: map[string]*domain.Room{}}
}

func (r *fakeRoomRepo) Create(_ context.Context, room *domain.Room) error {
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	r.rooms[room.ID] = room
	return nil
}

func (r *fakeRoomRepo) Update(_ context.Context, room *domain.Room) error {
	if _, ok := r.rooms[room.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.rooms[room.ID] = room
	return nil
}

func (r *fakeRoomRepo) GetByID(_ context.Context, id string) (*domain.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return room, nil
}

func (r *fakeRoomRepo) ListWithFilter(_ context.Context, filter repository.RoomFilter) ([]domain.Room, error) {
	out := []domain.Room{}
	for _, room := range r.rooms {
		if filter.LandlordID != nil && room.LandlordID != *filter.LandlordID {
			continue
		}
		if filter.Location != nil && room.Location != *filter.Location {
			continue
		}
		out = append(out, *room)
	}
	return out, nil
}

type fakeBookingRepo struct {
	bookings map[string]*domain.BookingApplication
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]*domain.BookingApplication{}}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.BookingApplication) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, booking *domain.BookingApplication) error {
	if _, ok := r.bookings[booking.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.BookingApplication, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return booking, nil
}

func (r *fakeBookingRepo) ListWithFilter(_ context.Context, filter repository.BookingFilter) ([]domain.BookingApplication, error) {
	out := []domain.BookingApplication{}
	for _, booking := range r.bookings {
		if filter.TenantID != nil && booking.TenantID != *filter.TenantID {
			continue
		}
		if len(filter.RoomIDs) > 0 && !containsString(filter.RoomIDs, booking.RoomID) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsBookingStatus(filter.Statuses, booking.Status) {
			continue
		}
		out = append(out, *booking)
	}
	return out, nil
}

type fakeTicketRepo struct {
	tickets map[string]*domain.FaultTicket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*domain.FaultTicket{}}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.FaultTicket) error {
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	r.tickets[ticket.ID] = ticket
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.FaultTicket) error {
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.tickets[ticket.ID] = ticket
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.FaultTicket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return ticket, nil
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.FaultTicket, error) {
	out := []domain.FaultTicket{}
	for _, ticket := range r.tickets {
		if filter.TenantID != nil && ticket.TenantID != *filter.TenantID {
			continue
		}
		if filter.LandlordID != nil && ticket.LandlordID != *filter.LandlordID {
			continue
		}
		if filter.RoomID != nil && ticket.RoomID != *filter.RoomID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsTicketStatus(filter.Statuses, ticket.Status) {
			continue
		}
		if len(filter.Categories) > 0 && !containsCategory(filter.Categories, ticket.Category) {
			continue
		}
		if filter.BidderID != nil && ticket.BidBy(*filter.BidderID) == nil {
			continue
		}
		out = append(out, *ticket)
	}
	return out, nil
}

type fakeComplaintRepo struct {
	complaints map[string]*domain.Complaint
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{complaints: map[string]*domain.Complaint{}}
}

func (r *fakeComplaintRepo) Create(_ context.Context, complaint *domain.Complaint) error {
	if complaint.ID == "" {
		complaint.ID = uuid.NewString()
	}
	r.complaints[complaint.ID] = complaint
	return nil
}

func (r *fakeComplaintRepo) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	complaint, ok := r.complaints[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return complaint, nil
}

func (r *fakeComplaintRepo) ListByFiler(_ context.Context, filedByID string) ([]domain.Complaint, error) {
	out := []domain.Complaint{}
	for _, complaint := range r.complaints {
		if complaint.FiledByID == filedByID {
			out = append(out, *complaint)
		}
	}
	return out, nil
}

func (r *fakeComplaintRepo) ListAgainst(_ context.Context, againstID string) ([]domain.Complaint, error) {
	out := []domain.Complaint{}
	for _, complaint := range r.complaints {
		if complaint.FiledAgainst.ID == againstID {
			out = append(out, *complaint)
		}
	}
	return out, nil
}

type fakeAnnouncementRepo struct {
	announcements []*domain.Announcement
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{}
}

func (r *fakeAnnouncementRepo) Create(_ context.Context, announcement *domain.Announcement) error {
	if announcement.ID == "" {
		announcement.ID = uuid.NewString()
	}
	r.announcements = append(r.announcements, announcement)
	return nil
}

func (r *fakeAnnouncementRepo) List(_ context.Context, _, _ int) ([]domain.Announcement, error) {
	out := make([]domain.Announcement, 0, len(r.announcements))
	for _, announcement := range r.announcements {
		out = append(out, *announcement)
	}
	return out, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := []events.Event{}
	for _, event := range d.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func containsBookingStatus(haystack []domain.BookingStatus, needle domain.BookingStatus) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func containsTicketStatus(haystack []domain.TicketStatus, needle domain.TicketStatus) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func containsCategory(haystack []domain.FaultCategory, needle domain.FaultCategory) bool {
	for _, c := range haystack {
		if c == needle {
			return true
		}
	}
	return false
}
