package models

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event represents an event in the system. Capacity is the remaining unsold
// ticket count; it is decremented by the booking transaction and must never
// go negative. TicketPriceCents is the unit price in minor units.
type Event struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	Date             time.Time `json:"date" db:"event_date"`
	Venue            string    `json:"venue" db:"venue"`
	Capacity         int       `json:"capacity" db:"capacity"`
	TicketPriceCents int64     `json:"ticket_price_cents" db:"ticket_price_cents"`
	MediaURLs        []string  `json:"media_urls" db:"media_urls"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// TicketPrice returns the unit price as a decimal amount for display.
func (e *Event) TicketPrice() float64 {
	return MajorUnits(e.TicketPriceCents)
}

// EventCreateRequest represents the data needed to create a new event.
// TicketPrice is a decimal amount; it is stored in minor units.
type EventCreateRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Venue       string    `json:"venue"`
	Capacity    int       `json:"capacity"`
	TicketPrice float64   `json:"ticket_price"`
	MediaURLs   []string  `json:"media_urls"`
}

// EventUpdateRequest represents the data that can be updated for an event.
// Capacity here replaces the stored value outright; it is not an adjustment
// relative to sold tickets.
type EventUpdateRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Venue       string    `json:"venue"`
	Capacity    int       `json:"capacity"`
	TicketPrice float64   `json:"ticket_price"`
	MediaURLs   []string  `json:"media_urls"`
}

// Validate validates event creation data
func (req *EventCreateRequest) Validate() error {
	return validateEventFields(req.Title, req.Venue, req.Date, req.Capacity, req.TicketPrice, req.MediaURLs)
}

// Validate validates event update data
func (req *EventUpdateRequest) Validate() error {
	return validateEventFields(req.Title, req.Venue, req.Date, req.Capacity, req.TicketPrice, req.MediaURLs)
}

func validateEventFields(title, venue string, date time.Time, capacity int, ticketPrice float64, mediaURLs []string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(title) > 200 {
		return fmt.Errorf("%w: title must be 200 characters or less", ErrInvalidInput)
	}
	if strings.TrimSpace(venue) == "" {
		return fmt.Errorf("%w: venue is required", ErrInvalidInput)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if capacity < 0 {
		return fmt.Errorf("%w: capacity cannot be negative", ErrInvalidInput)
	}
	if ticketPrice < 0 {
		return fmt.Errorf("%w: ticket price cannot be negative", ErrInvalidInput)
	}
	for _, u := range mediaURLs {
		parsed, err := url.Parse(u)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return fmt.Errorf("%w: invalid media URL %q", ErrInvalidInput, u)
		}
	}
	return nil
}
