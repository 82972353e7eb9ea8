package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// BookingStatus represents the state of a booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
)

// Booking represents a reservation of tickets against an event's capacity.
// The event title, date and venue are denormalized snapshots taken at booking
// time so later event edits do not retroactively alter historical bookings.
type Booking struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	EventID         uuid.UUID     `json:"event_id" db:"event_id"`
	EventTitle      string        `json:"event_title" db:"event_title"`
	EventDate       time.Time     `json:"event_date" db:"event_date"`
	EventVenue      string        `json:"event_venue" db:"event_venue"`
	UserID          uuid.UUID     `json:"user_id" db:"user_id"`
	UserName        string        `json:"user_name" db:"user_name"`
	UserEmail       string        `json:"user_email" db:"user_email"`
	Quantity        int           `json:"quantity" db:"quantity"`
	UnitPriceCents  int64         `json:"unit_price_cents" db:"unit_price_cents"`
	TotalPriceCents int64         `json:"total_price_cents" db:"total_price_cents"`
	PaymentMethod   string        `json:"payment_method" db:"payment_method"`
	PaymentStatus   PaymentStatus `json:"payment_status" db:"payment_status"`
	BookingStatus   BookingStatus `json:"booking_status" db:"booking_status"`
	GatewayOrderID  string        `json:"gateway_order_id,omitempty" db:"gateway_order_id"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
}

// BookingCreateRequest represents the data needed to book tickets.
type BookingCreateRequest struct {
	EventID       uuid.UUID `json:"-"`
	UserID        uuid.UUID `json:"-"`
	UserName      string    `json:"name"`
	UserEmail     string    `json:"email"`
	Quantity      int       `json:"quantity"`
	PaymentMethod string    `json:"payment_method"`
}

var bookingEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate validates booking creation data
func (req *BookingCreateRequest) Validate() error {
	if req.EventID == uuid.Nil {
		return fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	if req.UserID == uuid.Nil {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.UserName) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !bookingEmailRegex.MatchString(req.UserEmail) {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if req.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "razorpay"
	}
	return nil
}
