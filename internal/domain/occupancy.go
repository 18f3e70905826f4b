package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/AnushkaaaaS/Neighborly/pkg/types"
)

// OccupiedSlots start times (in loc) of the bookings that occupy a slot,
// sorted and de-duplicated
func OccupiedSlots(bookings []*Booking, loc *time.Location) []types.TimeString {
	seen := make(map[types.TimeString]struct{}, len(bookings))
	occupied := make([]types.TimeString, 0, len(bookings))

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		t := b.StartTime(loc)
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		occupied = append(occupied, t)
	}

	sort.Slice(occupied, func(i, j int) bool { return occupied[i].IsBefore(occupied[j]) })
	return occupied
}

// FreeSlots returns the slots of all whose interval [start, start+duration)
// on date does not intersect an active booking. date's location is used for
// the slot start times. A booking made under a longer previous duration keeps
// the later slots it still covers.
func FreeSlots(all []types.TimeString, date time.Time, durationMinutes int, bookings []*Booking) []types.TimeString {
	length := time.Duration(durationMinutes) * time.Minute

	free := make([]types.TimeString, 0, len(all))
	for _, slot := range all {
		start, err := slot.OnDate(date)
		if err != nil {
			continue
		}
		if !overlapsAny(bookings, start, start.Add(length)) {
			free = append(free, slot)
		}
	}
	return free
}

func overlapsAny(bookings []*Booking, start, end time.Time) bool {
	for _, b := range bookings {
		if b.IsActive() && b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// ParseDate parses a YYYY-MM-DD date as midnight in loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateFormat, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, s)
	}
	return d, nil
}

// scheduledAtLayouts local layouts accepted when no offset is given
var scheduledAtLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseScheduledAt parses an RFC 3339 timestamp, or a local date-time
// without offset which is then read in loc
func ParseScheduledAt(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range scheduledAtLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid scheduledAt %q", ErrValidation, s)
}

// StartOfDay midnight of t's calendar day in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
