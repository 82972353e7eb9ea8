package handlers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventbroker/internal/models"
	"eventbroker/internal/services"
)

// memStore backs the handler tests with in-memory repositories sharing one
// lock, mirroring the database's atomic capacity semantics.
type memStore struct {
	mu       sync.Mutex
	events   map[uuid.UUID]*models.Event
	bookings map[uuid.UUID]*models.Booking
	byOrder  map[string]uuid.UUID
	users    map[uuid.UUID]*models.User
	byEmail  map[string]uuid.UUID
	sessions map[string]*models.Session
}

func newMemStore() *memStore {
	return &memStore{
		events:   make(map[uuid.UUID]*models.Event),
		bookings: make(map[uuid.UUID]*models.Booking),
		byOrder:  make(map[string]uuid.UUID),
		users:    make(map[uuid.UUID]*models.User),
		byEmail:  make(map[string]uuid.UUID),
		sessions: make(map[string]*models.Session),
	}
}

func (m *memStore) addEvent(title string, capacity int, priceCents int64) *models.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	event := &models.Event{
		ID:               uuid.New(),
		Title:            title,
		Venue:            "Blue Hall",
		Date:             time.Now().Add(24 * time.Hour),
		Capacity:         capacity,
		TicketPriceCents: priceCents,
		MediaURLs:        []string{},
	}
	m.events[event.ID] = event
	return event
}

// bookingRepo

type bookingRepo struct{ *memStore }

func (r bookingRepo) Create(ctx context.Context, req *models.BookingCreateRequest) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[req.EventID]
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
	r.bookings[booking.ID] = booking
	return booking, nil
}

func (r bookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, models.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r bookingRepo) GetByGatewayOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byOrder[orderID]
	if !ok {
		return nil, models.ErrBookingNotFound
	}
	copied := *r.bookings[id]
	return &copied, nil
}

func (r bookingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Booking{}
	for _, b := range r.bookings {
		if b.UserID == userID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r bookingRepo) SetGatewayOrder(ctx context.Context, bookingID uuid.UUID, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[bookingID]
	if !ok {
		return models.ErrBookingNotFound
	}
	booking.GatewayOrderID = orderID
	r.byOrder[orderID] = bookingID
	return nil
}

func (r bookingRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, payment models.PaymentStatus, status models.BookingStatus) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, models.ErrBookingNotFound
	}
	booking.PaymentStatus = payment
	booking.BookingStatus = status
	copied := *booking
	return &copied, nil
}

// eventRepo

type eventRepo struct{ *memStore }

func (r eventRepo) Create(ctx context.Context, req *models.EventCreateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
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
	r.events[event.ID] = event
	return event, nil
}

func (r eventRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, models.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (r eventRepo) List(ctx context.Context, upcomingOnly bool, limit int) ([]*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Event{}
	for _, e := range r.events {
		copied := *e
		out = append(out, &copied)
	}
	return out, nil
}

func (r eventRepo) Update(ctx context.Context, id uuid.UUID, req *models.EventUpdateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, models.ErrEventNotFound
	}
	event.Title = req.Title
	event.Description = req.Description
	event.Date = req.Date
	event.Venue = req.Venue
	event.Capacity = req.Capacity
	event.TicketPriceCents = models.MinorUnits(req.TicketPrice)
	copied := *event
	return &copied, nil
}

func (r eventRepo) AppendMediaURL(ctx context.Context, id uuid.UUID, url string) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, models.ErrEventNotFound
	}
	event.MediaURLs = append(event.MediaURLs, url)
	copied := *event
	return &copied, nil
}

func (r eventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return models.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

// userRepo

type userRepo struct{ *memStore }

func (r userRepo) Create(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(email)
	if _, ok := r.byEmail[key]; ok {
		return nil, models.ErrDuplicateEmail
	}
	user := &models.User{ID: uuid.New(), Name: name, Email: key, PasswordHash: passwordHash, CreatedAt: time.Now()}
	r.users[user.ID] = user
	r.byEmail[key] = user.ID
	return user, nil
}

func (r userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	copied := *r.users[id]
	return &copied, nil
}

func (r userRepo) CreateSession(ctx context.Context, token string, userID uuid.UUID, duration time.Duration) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session := &models.Session{ID: token, UserID: userID, ExpiresAt: time.Now().Add(duration), CreatedAt: time.Now()}
	r.sessions[token] = session
	return session, nil
}

func (r userRepo) GetSession(ctx context.Context, token string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[token]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	copied := *session
	return &copied, nil
}

func (r userRepo) DeleteSession(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}

func (r userRepo) DeleteExpiredSessions(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, session := range r.sessions {
		if session.Expired() {
			delete(r.sessions, token)
		}
	}
	return nil
}

// stubGateway fakes the payment provider. Signatures are deterministic so
// tests can present both matching and forged ones.
type stubGateway struct {
	mu     sync.Mutex
	orders int
	fail   bool
}

func (g *stubGateway) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (*services.Order, error) {
	if g.fail {
		return nil, &services.RazorpayError{StatusCode: 500, Description: "upstream down"}
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: order amount must be positive", models.ErrInvalidInput)
	}
	if currency == "" {
		currency = "INR"
	}
	g.mu.Lock()
	g.orders++
	id := fmt.Sprintf("order_stub_%d", g.orders)
	g.mu.Unlock()
	return &services.Order{ID: id, Amount: models.MinorUnits(amount), Currency: currency, Receipt: receipt}, nil
}

func (g *stubGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return signature == g.signature(orderID, paymentID)
}

func (g *stubGateway) signature(orderID, paymentID string) string {
	return "sig:" + orderID + "|" + paymentID
}
