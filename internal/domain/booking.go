package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AnushkaaaaS/Neighborly/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusRejected  BookingStatus = "REJECTED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// lifecycleTransitions provider-driven lifecycle. Cancellation is handled
// separately by CanBeCancelled.
var lifecycleTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusRejected},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// ParseBookingStatus parses a status, case-insensitive
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCompleted, StatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: unknown booking status %q", ErrValidation, s)
	}
}

// IsTerminal returns true for REJECTED, COMPLETED and CANCELLED
func (s BookingStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusCompleted || s == StatusCancelled
}

// NextStatuses lifecycle statuses reachable in one provider step
func (s BookingStatus) NextStatuses() []BookingStatus {
	next := lifecycleTransitions[s]
	out := make([]BookingStatus, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo returns true if moving from s to target is allowed.
// A booking can be withdrawn (CANCELLED) while PENDING or CONFIRMED.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	if target == StatusCancelled {
		return s == StatusPending || s == StatusConfirmed
	}
	for _, next := range lifecycleTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Actor who requests a status change
type Actor string

const (
	ActorUser     Actor = "user"
	ActorProvider Actor = "provider"
)

// CanActorSet returns true if the actor may move a booking into target.
// Providers drive the whole lifecycle, users may only cancel.
func CanActorSet(actor Actor, target BookingStatus) bool {
	switch actor {
	case ActorProvider:
		return true
	case ActorUser:
		return target == StatusCancelled
	default:
		return false
	}
}

// Booking represents a reservation of one slot of a service
type Booking struct {
	ID              uuid.UUID
	UserID          string
	ServiceID       uuid.UUID
	ScheduledAt     time.Time
	DurationMinutes int // snapshot of service duration at creation
	Address         string
	Notes           *string
	QuotedPrice     int64 // snapshot of service price at creation, immutable
	Status          BookingStatus
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndsAt returns scheduled end of the booking
func (b *Booking) EndsAt() time.Time {
	return b.ScheduledAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// Overlaps reports whether [start, end) intersects the booking interval
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.ScheduledAt.Before(end) && b.EndsAt().After(start)
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	for _, s := range InactiveStatuses {
		if b.Status == s {
			return false
		}
	}
	return true
}

// CanBeCancelled returns true if the booking can be withdrawn
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// StartTime time of day of the booking in the given location
func (b *Booking) StartTime(loc *time.Location) types.TimeString {
	return types.NewTimeString(b.ScheduledAt.In(loc))
}

// BookingDetails booking with the joined service and user summary used in listings
type BookingDetails struct {
	Booking

	ServiceTitle    string
	ServiceCategory Category
	ProviderID      string
	UserName        *string
	UserEmail       *string
}

// SortOrder order of booking listings by scheduled time
type SortOrder int

const (
	NewestFirst SortOrder = iota
	OldestFirst
)

// CalendarStatuses statuses shown on the provider calendar
var CalendarStatuses = []BookingStatus{StatusConfirmed, StatusCompleted}

// BookingsFilter filter for booking listings. Exactly one of UserID and ProviderID is set.
// Empty Statuses means any status. From and To bound scheduledAt as [From, To).
type BookingsFilter struct {
	UserID     *string
	ProviderID *string
	Statuses   []BookingStatus
	From       *time.Time
	To         *time.Time
	Order      SortOrder
}

// StatusChange requested lifecycle change
type StatusChange struct {
	BookingID uuid.UUID
	ActorID   string
	Target    BookingStatus
	Reason    *string
}
