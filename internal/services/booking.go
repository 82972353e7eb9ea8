package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"eventbroker/internal/models"
)

// BookingService handles ticket booking and lookup on top of the atomic
// booking transaction in the repository.
type BookingService struct {
	bookingRepo BookingRepository
	eventRepo   EventRepository
}

// NewBookingService creates a new booking service
func NewBookingService(bookingRepo BookingRepository, eventRepo EventRepository) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
	}
}

// BookTickets reserves quantity tickets for the user on the given event.
// Capacity checking, the decrement and the booking insert are a single
// database transaction; callers see either a booking or an error, never a
// partial write.
func (s *BookingService) BookTickets(ctx context.Context, req *models.BookingCreateRequest) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	if booking.TotalPriceCents != booking.UnitPriceCents*int64(booking.Quantity) {
		// The repository computes the total; a mismatch here means the
		// storage layer is broken, not user error.
		return nil, fmt.Errorf("booking %s total %d does not equal quantity x unit price", booking.ID, booking.TotalPriceCents)
	}

	return booking, nil
}

// GetBooking returns a booking, restricted to its owner.
func (s *BookingService) GetBooking(ctx context.Context, id, requestingUserID uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != requestingUserID {
		return nil, models.ErrUnauthorized
	}
	return booking, nil
}

// ListUserBookings returns the caller's bookings, most recent first.
func (s *BookingService) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]*models.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}
