package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventbroker/internal/models"
)

// memStore is an in-memory stand-in for the event and booking repositories.
// Its Create mirrors the database transaction's semantics: the capacity
// check, decrement and insert happen under one lock, so concurrency tests
// exercise the same all-or-nothing behavior.
type memStore struct {
	mu       sync.Mutex
	events   map[uuid.UUID]*models.Event
	bookings map[uuid.UUID]*models.Booking
	byOrder  map[string]uuid.UUID

	createCalls int
	writeCalls  int
}

func newMemStore() *memStore {
	return &memStore{
		events:   make(map[uuid.UUID]*models.Event),
		bookings: make(map[uuid.UUID]*models.Booking),
		byOrder:  make(map[string]uuid.UUID),
	}
}

func (m *memStore) addEvent(title, venue string, capacity int, priceCents int64) *models.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	event := &models.Event{
		ID:               uuid.New(),
		Title:            title,
		Venue:            venue,
		Date:             time.Now().Add(24 * time.Hour),
		Capacity:         capacity,
		TicketPriceCents: priceCents,
		MediaURLs:        []string{},
	}
	m.events[event.ID] = event
	return event
}

// BookingRepository implementation

func (m *memStore) Create(ctx context.Context, req *models.BookingCreateRequest) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++

	event, ok := m.events[req.EventID]
	if !ok {
		return nil, models.ErrEventNotFound
	}
	if event.Capacity < req.Quantity {
		return nil, models.ErrInsufficientCapacity
	}
	event.Capacity -= req.Quantity

	booking := &models.Booking{
		ID:              uuid.New(),
		EventID:         event.ID,
		EventTitle:      event.Title,
		EventDate:       event.Date,
		EventVenue:      event.Venue,
		UserID:          req.UserID,
		UserName:        req.UserName,
		UserEmail:       req.UserEmail,
		Quantity:        req.Quantity,
		UnitPriceCents:  event.TicketPriceCents,
		TotalPriceCents: event.TicketPriceCents * int64(req.Quantity),
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   models.PaymentPending,
		BookingStatus:   models.BookingPending,
		CreatedAt:       time.Now(),
	}
	m.bookings[booking.ID] = booking
	return booking, nil
}

func (m *memStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, models.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (m *memStore) GetByGatewayOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byOrder[orderID]
	if !ok {
		return nil, models.ErrBookingNotFound
	}
	copied := *m.bookings[id]
	return &copied, nil
}

func (m *memStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Booking{}
	for _, b := range m.bookings {
		if b.UserID == userID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memStore) SetGatewayOrder(ctx context.Context, bookingID uuid.UUID, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[bookingID]
	if !ok {
		return models.ErrBookingNotFound
	}
	booking.GatewayOrderID = orderID
	m.byOrder[orderID] = bookingID
	return nil
}

func (m *memStore) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, payment models.PaymentStatus, status models.BookingStatus) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, models.ErrBookingNotFound
	}
	booking.PaymentStatus = payment
	booking.BookingStatus = status
	copied := *booking
	return &copied, nil
}

// EventRepository implementation

func (m *memStore) CreateEvent(ctx context.Context, req *models.EventCreateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeCalls++
	event := &models.Event{
		ID:               uuid.New(),
		Title:            req.Title,
		Description:      req.Description,
		Date:             req.Date,
		Venue:            req.Venue,
		Capacity:         req.Capacity,
		TicketPriceCents: models.MinorUnits(req.TicketPrice),
		MediaURLs:        append([]string{}, req.MediaURLs...),
	}
	m.events[event.ID] = event
	return event, nil
}

func (m *memStore) GetEventByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[id]
	if !ok {
		return nil, models.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (m *memStore) List(ctx context.Context, upcomingOnly bool, limit int) ([]*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Event{}
	for _, e := range m.events {
		copied := *e
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memStore) Update(ctx context.Context, id uuid.UUID, req *models.EventUpdateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeCalls++
	event, ok := m.events[id]
	if !ok {
		return nil, models.ErrEventNotFound
	}
	event.Title = req.Title
	event.Description = req.Description
	event.Date = req.Date
	event.Venue = req.Venue
	event.Capacity = req.Capacity
	event.TicketPriceCents = models.MinorUnits(req.TicketPrice)
	event.MediaURLs = append([]string{}, req.MediaURLs...)
	copied := *event
	return &copied, nil
}

func (m *memStore) AppendMediaURL(ctx context.Context, id uuid.UUID, url string) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeCalls++
	event, ok := m.events[id]
	if !ok {
		return nil, models.ErrEventNotFound
	}
	event.MediaURLs = append(event.MediaURLs, url)
	copied := *event
	return &copied, nil
}

func (m *memStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeCalls++
	if _, ok := m.events[id]; !ok {
		return models.ErrEventNotFound
	}
	delete(m.events, id)
	return nil
}

// eventRepoAdapter exposes memStore under the EventRepository interface,
// whose Create/GetByID names collide with the booking methods.
type eventRepoAdapter struct{ *memStore }

func (a eventRepoAdapter) Create(ctx context.Context, req *models.EventCreateRequest) (*models.Event, error) {
	return a.memStore.CreateEvent(ctx, req)
}

func (a eventRepoAdapter) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return a.memStore.GetEventByID(ctx, id)
}
