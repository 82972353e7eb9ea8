package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationService_Verify(t *testing.T) {
	store := newMemStore()
	booking := bookPendingTicket(t, store)
	svc := NewVerificationService(store)

	t.Run("bare booking id", func(t *testing.T) {
		result, err := svc.Verify(context.Background(), booking.ID.String())
		require.NoError(t, err)

		assert.True(t, result.Valid)
		assert.Equal(t, "Jazz Night", result.EventTitle)
		assert.Equal(t, "Jane Doe", result.Attendee)
		assert.Equal(t, 1, result.Quantity)
	})

	t.Run("full QR payload", func(t *testing.T) {
		fresh, err := store.GetByID(context.Background(), booking.ID)
		require.NoError(t, err)

		result, err := svc.Verify(context.Background(), BuildQRPayload(fresh))
		require.NoError(t, err)
		assert.True(t, result.Valid)
	})

	t.Run("spoofed display fields do not leak into the result", func(t *testing.T) {
		payload := "BookingID:" + booking.ID.String() + "\nEvent:Free VIP Upgrade\nName:Impostor"

		result, err := svc.Verify(context.Background(), payload)
		require.NoError(t, err)

		assert.True(t, result.Valid)
		assert.Equal(t, "Jazz Night", result.EventTitle)
		assert.Equal(t, "Jane Doe", result.Attendee)
	})
}

func TestVerificationService_Verify_Invalid(t *testing.T) {
	svc := NewVerificationService(newMemStore())

	tests := []struct {
		name  string
		input string
	}{
		{"unknown booking id", uuid.New().String()},
		{"malformed uuid", "not-a-uuid"},
		{"payload without booking id", "Event:Jazz Night\nName:Jane"},
		{"empty input", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Verify(context.Background(), tt.input)
			require.NoError(t, err, "an invalid ticket is a result, not an error")

			assert.False(t, result.Valid)
			assert.NotEmpty(t, result.Reason)
			assert.Empty(t, result.EventTitle)
		})
	}
}
