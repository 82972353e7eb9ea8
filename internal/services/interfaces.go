package services

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"eventbroker/internal/models"
)

// EventRepository defines the event data access the services need
type EventRepository interface {
	Create(ctx context.Context, req *models.EventCreateRequest) (*models.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	List(ctx context.Context, upcomingOnly bool, limit int) ([]*models.Event, error)
	Update(ctx context.Context, id uuid.UUID, req *models.EventUpdateRequest) (*models.Event, error)
	AppendMediaURL(ctx context.Context, id uuid.UUID, url string) (*models.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookingRepository defines the booking data access the services need
type BookingRepository interface {
	Create(ctx context.Context, req *models.BookingCreateRequest) (*models.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	GetByGatewayOrderID(ctx context.Context, orderID string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Booking, error)
	SetGatewayOrder(ctx context.Context, bookingID uuid.UUID, orderID string) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, payment models.PaymentStatus, status models.BookingStatus) (*models.Booking, error)
}

// UserRepository defines the user/session data access the services need
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	CreateSession(ctx context.Context, token string, userID uuid.UUID, duration time.Duration) (*models.Session, error)
	GetSession(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context) error
}

// PaymentGateway defines the payment provider operations used by the
// payment service and handlers. Implemented by RazorpayService.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount float64, currency, receipt string) (*Order, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}

// StorageService defines object storage operations for event media
type StorageService interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, key string) error
	GetURL(key string) string
}

// EmailService defines the outbound mail operations the payment flow uses
type EmailService interface {
	SendBookingConfirmation(ctx context.Context, booking *models.Booking, qrImageURL string) error
}
