package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"eventbroker/internal/models"
)

// BookingRepository handles booking data operations, including the atomic
// capacity-decrementing booking transaction.
type BookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, event_id, event_title, event_date, event_venue,
	user_id, user_name, user_email, quantity, unit_price_cents, total_price_cents,
	payment_method, payment_status, booking_status, gateway_order_id, created_at, updated_at`

func scanBooking(row interface{ Scan(...interface{}) error }) (*models.Booking, error) {
	booking := &models.Booking{}
	err := row.Scan(
		&booking.ID,
		&booking.EventID,
		&booking.EventTitle,
		&booking.EventDate,
		&booking.EventVenue,
		&booking.UserID,
		&booking.UserName,
		&booking.UserEmail,
		&booking.Quantity,
		&booking.UnitPriceCents,
		&booking.TotalPriceCents,
		&booking.PaymentMethod,
		&booking.PaymentStatus,
		&booking.BookingStatus,
		&booking.GatewayOrderID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// Create books tickets inside a single database transaction:
//
//  1. lock the event row
//  2. fail if remaining capacity is below the requested quantity
//  3. write the decremented capacity back
//  4. insert the booking with its denormalized event snapshot
//
// The row lock serializes concurrent bookings on the same event, so two
// simultaneous requests for the last ticket cannot both succeed. Nothing is
// written on the ErrInsufficientCapacity path.
func (r *BookingRepository) Create(ctx context.Context, req *models.BookingCreateRequest) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		eventTitle string
		eventDate  sql.NullTime
		eventVenue string
		capacity   int
		unitPrice  int64
	)
	err = tx.QueryRowContext(ctx, `
		SELECT title, event_date, venue, capacity, ticket_price_cents
		FROM events
		WHERE id = $1
		FOR UPDATE`, req.EventID).
		Scan(&eventTitle, &eventDate, &eventVenue, &capacity, &unitPrice)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to lock event: %w", err)
	}

	if capacity < req.Quantity {
		return nil, models.ErrInsufficientCapacity
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE events SET capacity = capacity - $2, updated_at = NOW()
		WHERE id = $1`, req.EventID, req.Quantity); err != nil {
		return nil, fmt.Errorf("failed to decrement capacity: %w", err)
	}

	query := `
		INSERT INTO bookings (
			id, event_id, event_title, event_date, event_venue,
			user_id, user_name, user_email, quantity,
			unit_price_cents, total_price_cents, payment_method,
			payment_status, booking_status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING ` + bookingColumns

	row := tx.QueryRowContext(ctx, query,
		uuid.New(),
		req.EventID,
		eventTitle,
		eventDate.Time,
		eventVenue,
		req.UserID,
		req.UserName,
		req.UserEmail,
		req.Quantity,
		unitPrice,
		unitPrice*int64(req.Quantity),
		req.PaymentMethod,
		models.PaymentPending,
		models.BookingPending,
	)

	booking, err := scanBooking(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	return booking, nil
}

// GetByID retrieves a booking by id
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	query := "SELECT " + bookingColumns + " FROM bookings WHERE id = $1"

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// GetByGatewayOrderID retrieves the booking linked to a payment gateway
// order.
func (r *BookingRepository) GetByGatewayOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	query := "SELECT " + bookingColumns + " FROM bookings WHERE gateway_order_id = $1"

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, orderID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking by gateway order: %w", err)
	}
	return booking, nil
}

// ListByUser returns the user's bookings, most recent first.
func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Booking, error) {
	query := "SELECT " + bookingColumns + " FROM bookings WHERE user_id = $1 ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*models.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

// SetGatewayOrder links a created payment gateway order to a booking so the
// confirmation handler can find it later.
func (r *BookingRepository) SetGatewayOrder(ctx context.Context, bookingID uuid.UUID, orderID string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE bookings SET gateway_order_id = $2, updated_at = NOW()
		WHERE id = $1`, bookingID, orderID)
	if err != nil {
		return fmt.Errorf("failed to set gateway order: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}

// UpdatePaymentStatus sets the payment and booking status fields. These are
// the only booking fields that change after creation.
func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, payment models.PaymentStatus, status models.BookingStatus) (*models.Booking, error) {
	query := `
		UPDATE bookings SET payment_status = $2, booking_status = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + bookingColumns

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id, payment, status))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	return booking, nil
}
