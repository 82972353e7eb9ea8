package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"eventbroker/internal/models"
)

// EventRepository handles event data operations
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = "id, title, description, event_date, venue, capacity, ticket_price_cents, media_urls, created_at, updated_at"

func scanEvent(row interface{ Scan(...interface{}) error }) (*models.Event, error) {
	event := &models.Event{}
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Venue,
		&event.Capacity,
		&event.TicketPriceCents,
		pq.Array(&event.MediaURLs),
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if event.MediaURLs == nil {
		event.MediaURLs = []string{}
	}
	return event, nil
}

// Create inserts a new event
func (r *EventRepository) Create(ctx context.Context, req *models.EventCreateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO events (id, title, description, event_date, venue, capacity, ticket_price_cents, media_urls, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + eventColumns

	media := req.MediaURLs
	if media == nil {
		media = []string{}
	}

	row := r.db.QueryRowContext(ctx, query,
		uuid.New(),
		req.Title,
		req.Description,
		req.Date,
		req.Venue,
		req.Capacity,
		models.MinorUnits(req.TicketPrice),
		pq.Array(media),
	)

	event, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// GetByID retrieves an event by id
func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE id = $1"

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// List returns events ordered by date. When upcomingOnly is set, events in
// the past are excluded.
func (r *EventRepository) List(ctx context.Context, upcomingOnly bool, limit int) ([]*models.Event, error) {
	query := "SELECT " + eventColumns + " FROM events"
	if upcomingOnly {
		query += " WHERE event_date >= NOW()"
	}
	query += " ORDER BY event_date ASC"

	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// Update replaces an event's fields. It runs inside a transaction that takes
// the same row lock the booking transaction takes, so an admin overwrite of
// capacity serializes with in-flight bookings. The capacity written here
// replaces the stored value; it is not an adjustment.
func (r *EventRepository) Update(ctx context.Context, id uuid.UUID, req *models.EventUpdateRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing uuid.UUID
	err = tx.QueryRowContext(ctx, "SELECT id FROM events WHERE id = $1 FOR UPDATE", id).Scan(&existing)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to lock event: %w", err)
	}

	media := req.MediaURLs
	if media == nil {
		media = []string{}
	}

	query := `
		UPDATE events
		SET title = $2, description = $3, event_date = $4, venue = $5,
		    capacity = $6, ticket_price_cents = $7, media_urls = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + eventColumns

	row := tx.QueryRowContext(ctx, query,
		id,
		req.Title,
		req.Description,
		req.Date,
		req.Venue,
		req.Capacity,
		models.MinorUnits(req.TicketPrice),
		pq.Array(media),
	)

	event, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit event update: %w", err)
	}

	return event, nil
}

// AppendMediaURL appends an uploaded media URL to the event's ordered list.
func (r *EventRepository) AppendMediaURL(ctx context.Context, id uuid.UUID, url string) (*models.Event, error) {
	query := `
		UPDATE events
		SET media_urls = array_append(media_urls, $2), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + eventColumns

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id, url))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to append media url: %w", err)
	}
	return event, nil
}

// Delete removes an event. Bookings keep their denormalized snapshots, so
// historical records survive the delete.
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return models.ErrEventNotFound
	}
	return nil
}
