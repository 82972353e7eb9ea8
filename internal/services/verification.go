package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"eventbroker/internal/models"
)

// VerificationService checks tickets at the venue. The booking id, typed
// manually or decoded from a QR payload, is the sole source of truth: the
// record is always re-fetched from storage, never trusted from the payload.
type VerificationService struct {
	bookingRepo BookingRepository
}

// NewVerificationService creates a new ticket verification service
func NewVerificationService(bookingRepo BookingRepository) *VerificationService {
	return &VerificationService{bookingRepo: bookingRepo}
}

// VerificationResult reports whether a ticket is valid, with attendee and
// event details when it is and a human-readable reason when it is not.
type VerificationResult struct {
	Valid       bool      `json:"valid"`
	Reason      string    `json:"reason,omitempty"`
	EventTitle  string    `json:"event_title,omitempty"`
	Attendee    string    `json:"attendee,omitempty"`
	Quantity    int       `json:"quantity,omitempty"`
	BookingDate time.Time `json:"booking_date,omitempty"`
}

// Verify checks the ticket named by the given input, which may be a bare
// booking id or a full QR payload. Unknown or malformed identifiers yield an
// invalid result, not an error; an error is returned only when storage
// itself fails.
func (s *VerificationService) Verify(ctx context.Context, input string) (*VerificationResult, error) {
	idText, ok := ParseQRPayload(input)
	if !ok {
		return &VerificationResult{
			Valid:  false,
			Reason: "No booking ID found in the scanned code.",
		}, nil
	}

	id, err := uuid.Parse(idText)
	if err != nil {
		return &VerificationResult{
			Valid:  false,
			Reason: "Invalid ticket. No booking found with this ID.",
		}, nil
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrBookingNotFound) {
			return &VerificationResult{
				Valid:  false,
				Reason: "Invalid ticket. No booking found with this ID.",
			}, nil
		}
		return nil, err
	}

	return &VerificationResult{
		Valid:       true,
		EventTitle:  booking.EventTitle,
		Attendee:    booking.UserName,
		Quantity:    booking.Quantity,
		BookingDate: booking.CreatedAt,
	}, nil
}
