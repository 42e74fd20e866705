package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionBooking(t *testing.T) {
	allowed := []struct{ from, to BookingStatus }{
		{BookingStatusPending, BookingStatusConfirmed},
		{BookingStatusPending, BookingStatusCancelled},
		{BookingStatusConfirmed, BookingStatusCompleted},
		{BookingStatusConfirmed, BookingStatusCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransitionBooking(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to BookingStatus }{
		{BookingStatusPending, BookingStatusCompleted},
		{BookingStatusConfirmed, BookingStatusPending},
		{BookingStatusCompleted, BookingStatusCancelled},
		{BookingStatusCompleted, BookingStatusConfirmed},
		{BookingStatusCancelled, BookingStatusConfirmed},
		{BookingStatusCancelled, BookingStatusPending},
		{BookingStatusPending, BookingStatusPending},
	}
	for _, tc := range denied {
		assert.False(t, CanTransitionBooking(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}
