package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"eventbroker/internal/models"
)

// PaymentService ties gateway orders to bookings and performs the
// server-side payment confirmation. A booking is only marked paid after the
// gateway's signature has been verified; the client is never trusted.
type PaymentService struct {
	gateway     PaymentGateway
	bookingRepo BookingRepository
	email       EmailService
}

// NewPaymentService creates a new payment service. email may be nil when no
// mail provider is configured.
func NewPaymentService(gateway PaymentGateway, bookingRepo BookingRepository, email EmailService) *PaymentService {
	return &PaymentService{
		gateway:     gateway,
		bookingRepo: bookingRepo,
		email:       email,
	}
}

// CreateOrderForBooking opens a gateway order for the booking's payment and
// records the order id on the booking so the confirmation callback can
// locate it.
func (s *PaymentService) CreateOrderForBooking(ctx context.Context, bookingID uuid.UUID, amount float64, currency string) (*Order, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	order, err := s.gateway.CreateOrder(ctx, amount, currency, booking.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	if err := s.bookingRepo.SetGatewayOrder(ctx, booking.ID, order.ID); err != nil {
		return nil, fmt.Errorf("failed to link gateway order to booking: %w", err)
	}

	return order, nil
}

// ConfirmPayment verifies the gateway's signature over orderID|paymentID and,
// only on a match, marks the linked booking paid and confirmed. A signature
// mismatch mutates nothing and returns ErrVerificationFailed.
func (s *PaymentService) ConfirmPayment(ctx context.Context, orderID, paymentID, signature string) (*models.Booking, error) {
	if !s.gateway.VerifyPaymentSignature(orderID, paymentID, signature) {
		return nil, models.ErrVerificationFailed
	}

	booking, err := s.bookingRepo.GetByGatewayOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	booking, err = s.bookingRepo.UpdatePaymentStatus(ctx, booking.ID, models.PaymentCompleted, models.BookingConfirmed)
	if err != nil {
		return nil, err
	}

	if s.email != nil {
		// Confirmation mail is best effort; the payment is already recorded.
		if err := s.email.SendBookingConfirmation(ctx, booking, QRImageURL(booking)); err != nil {
			log.Printf("failed to send booking confirmation for %s: %v", booking.ID, err)
		}
	}

	return booking, nil
}
