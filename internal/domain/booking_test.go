package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []BookingStatus{StatusPending, StatusConfirmed, StatusRejected, StatusCompleted, StatusCancelled}

func TestNextStatuses(t *testing.T) {
	assert.ElementsMatch(t, []BookingStatus{StatusConfirmed, StatusRejected}, StatusPending.NextStatuses())
	assert.ElementsMatch(t, []BookingStatus{StatusCompleted, StatusCancelled}, StatusConfirmed.NextStatuses())

	for _, s := range []BookingStatus{StatusRejected, StatusCompleted, StatusCancelled} {
		assert.True(t, s.IsTerminal())
		assert.Empty(t, s.NextStatuses(), s)
	}
}

func TestCanTransitionTo(t *testing.T) {
	allowed := map[BookingStatus]map[BookingStatus]bool{
		StatusPending:   {StatusConfirmed: true, StatusRejected: true, StatusCancelled: true},
		StatusConfirmed: {StatusCompleted: true, StatusCancelled: true},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			assert.Equal(t, allowed[from][to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestCanActorSet(t *testing.T) {
	for _, to := range allStatuses {
		assert.True(t, CanActorSet(ActorProvider, to))
	}
	assert.True(t, CanActorSet(ActorUser, StatusCancelled))
	assert.False(t, CanActorSet(ActorUser, StatusConfirmed))
	assert.False(t, CanActorSet(ActorUser, StatusCompleted))
	assert.False(t, CanActorSet(Actor("stranger"), StatusCancelled))
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseBookingStatus("IN_PROGRESS")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBooking_Overlaps(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	b := &Booking{ScheduledAt: at, DurationMinutes: 30}

	assert.True(t, b.Overlaps(at, at.Add(30*time.Minute)))
	assert.True(t, b.Overlaps(at.Add(-15*time.Minute), at.Add(15*time.Minute)))
	assert.False(t, b.Overlaps(at.Add(30*time.Minute), at.Add(60*time.Minute)), "back to back")
	assert.False(t, b.Overlaps(at.Add(-30*time.Minute), at), "ends when booking starts")
}

func TestBooking_IsActiveAndCancellable(t *testing.T) {
	b := &Booking{Status: StatusPending}
	assert.True(t, b.IsActive())
	assert.True(t, b.CanBeCancelled())

	b.Status = StatusRejected
	assert.True(t, b.IsActive(), "rejected bookings keep occupying the slot")
	assert.False(t, b.CanBeCancelled())

	b.Status = StatusCancelled
	assert.False(t, b.IsActive())
}
