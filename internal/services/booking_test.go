package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventbroker/internal/models"
)

func TestBookingService_BookTickets(t *testing.T) {
	store := newMemStore()
	event := store.addEvent("Jazz Night", "Blue Hall", 1, 2000)
	svc := NewBookingService(store, eventRepoAdapter{store})
	ctx := context.Background()

	booking, err := svc.BookTickets(ctx, &models.BookingCreateRequest{
		EventID:   event.ID,
		UserID:    uuid.New(),
		UserName:  "Jane Doe",
		UserEmail: "jane@example.com",
		Quantity:  1,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2000), booking.TotalPriceCents)
	assert.Equal(t, int64(2000), booking.UnitPriceCents)
	assert.Equal(t, models.BookingPending, booking.BookingStatus)
	assert.Equal(t, models.PaymentPending, booking.PaymentStatus)
	assert.Equal(t, "Jazz Night", booking.EventTitle)
	assert.Equal(t, "Blue Hall", booking.EventVenue)
	assert.Equal(t, 0, store.events[event.ID].Capacity)

	// Second booking for the last ticket must fail and leave capacity at 0.
	_, err = svc.BookTickets(ctx, &models.BookingCreateRequest{
		EventID:   event.ID,
		UserID:    uuid.New(),
		UserName:  "John Doe",
		UserEmail: "john@example.com",
		Quantity:  1,
	})
	assert.ErrorIs(t, err, models.ErrInsufficientCapacity)
	assert.Equal(t, 0, store.events[event.ID].Capacity)
}

func TestBookingService_TotalPriceProperty(t *testing.T) {
	store := newMemStore()
	event := store.addEvent("Jazz Night", "Blue Hall", 100, 1250)
	svc := NewBookingService(store, eventRepoAdapter{store})

	for _, quantity := range []int{1, 2, 3, 7} {
		booking, err := svc.BookTickets(context.Background(), &models.BookingCreateRequest{
			EventID:   event.ID,
			UserID:    uuid.New(),
			UserName:  "Jane Doe",
			UserEmail: "jane@example.com",
			Quantity:  quantity,
		})
		require.NoError(t, err)
		assert.Equal(t, booking.UnitPriceCents*int64(quantity), booking.TotalPriceCents)
	}
}

func TestBookingService_Oversell(t *testing.T) {
	store := newMemStore()
	event := store.addEvent("Jazz Night", "Blue Hall", 3, 1000)
	svc := NewBookingService(store, eventRepoAdapter{store})

	_, err := svc.BookTickets(context.Background(), &models.BookingCreateRequest{
		EventID:   event.ID,
		UserID:    uuid.New(),
		UserName:  "Jane Doe",
		UserEmail: "jane@example.com",
		Quantity:  4,
	})
	assert.ErrorIs(t, err, models.ErrInsufficientCapacity)
	assert.Equal(t, 3, store.events[event.ID].Capacity, "failed booking must not change capacity")
	assert.Empty(t, store.bookings, "failed booking must not be recorded")
}

func TestBookingService_UnknownEvent(t *testing.T) {
	store := newMemStore()
	svc := NewBookingService(store, eventRepoAdapter{store})

	_, err := svc.BookTickets(context.Background(), &models.BookingCreateRequest{
		EventID:   uuid.New(),
		UserID:    uuid.New(),
		UserName:  "Jane Doe",
		UserEmail: "jane@example.com",
		Quantity:  1,
	})
	assert.ErrorIs(t, err, models.ErrEventNotFound)
}

func TestBookingService_ConcurrentLastTickets(t *testing.T) {
	const capacity = 4
	const attempts = 16

	store := newMemStore()
	event := store.addEvent("Jazz Night", "Blue Hall", capacity, 1000)
	svc := NewBookingService(store, eventRepoAdapter{store})

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.BookTickets(context.Background(), &models.BookingCreateRequest{
				EventID:   event.ID,
				UserID:    uuid.New(),
				UserName:  "Jane Doe",
				UserEmail: "jane@example.com",
				Quantity:  1,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded, failed := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case err == models.ErrInsufficientCapacity:
			failed++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, capacity, succeeded)
	assert.Equal(t, attempts-capacity, failed)
	assert.Equal(t, 0, store.events[event.ID].Capacity)
}

func TestBookingService_GetBooking_OwnerOnly(t *testing.T) {
	store := newMemStore()
	event := store.addEvent("Jazz Night", "Blue Hall", 10, 1000)
	svc := NewBookingService(store, eventRepoAdapter{store})
	owner := uuid.New()

	booking, err := svc.BookTickets(context.Background(), &models.BookingCreateRequest{
		EventID:   event.ID,
		UserID:    owner,
		UserName:  "Jane Doe",
		UserEmail: "jane@example.com",
		Quantity:  1,
	})
	require.NoError(t, err)

	got, err := svc.GetBooking(context.Background(), booking.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	_, err = svc.GetBooking(context.Background(), booking.ID, uuid.New())
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}
