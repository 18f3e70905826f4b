package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/AnushkaaaaS/Neighborly/pkg/types"
)

// ErrOverlappingWindows two time windows of the same day overlap
var ErrOverlappingWindows = fmt.Errorf("%w: overlapping time windows", ErrValidation)

// ErrInvalidWindow window bounds are malformed or reversed
var ErrInvalidWindow = fmt.Errorf("%w: invalid time window", ErrValidation)

// Weekday day of week in its full English name ("Monday")
type Weekday string

const (
	Sunday    Weekday = "Sunday"
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
)

// WeekdayOf returns the weekday of the date
func WeekdayOf(date time.Time) Weekday {
	return Weekday(date.Weekday().String())
}

// IsValid reports whether w is one of the seven weekdays
func (w Weekday) IsValid() bool {
	parsed, err := ParseWeekday(string(w))
	return err == nil && parsed == w
}

// ParseWeekday parses a weekday name, case-insensitive
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(s)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), s) {
			return Weekday(d.String()), nil
		}
	}
	return "", fmt.Errorf("%w: unknown weekday %q", ErrValidation, s)
}

// TimeWindow open time-of-day range, both bounds inclusive for slot starts
type TimeWindow struct {
	From types.TimeString `json:"from"`
	To   types.TimeString `json:"to"`
}

// UnmarshalJSON accepts "HH:MM" and "HH:MM:SS" bounds
func (w *TimeWindow) UnmarshalJSON(data []byte) error {
	var raw struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	from, err := types.NewTimeStringFromString(raw.From)
	if err != nil {
		return fmt.Errorf("%w: from: %v", ErrInvalidWindow, err)
	}
	to, err := types.NewTimeStringFromString(raw.To)
	if err != nil {
		return fmt.Errorf("%w: to: %v", ErrInvalidWindow, err)
	}

	w.From, w.To = from, to
	return nil
}

// Availability weekday -> ordered list of windows
type Availability map[Weekday][]TimeWindow

// Value stores availability as JSONB
func (a Availability) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

// Scan reads availability from JSONB
func (a *Availability) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*a = Availability{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("domain: unsupported availability source type")
	}

	parsed := Availability{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("domain: decode availability: %w", err)
	}
	*a = parsed
	return nil
}

// ValidateWindows checks one day's windows: bounds parse, from <= to,
// and after sorting by start no window ends after the next one starts.
func ValidateWindows(windows []TimeWindow) error {
	sorted := make([]TimeWindow, len(windows))
	copy(sorted, windows)

	for _, w := range sorted {
		if err := w.From.Validate(); err != nil {
			return fmt.Errorf("%w: from %q", ErrInvalidWindow, w.From)
		}
		if err := w.To.Validate(); err != nil {
			return fmt.Errorf("%w: to %q", ErrInvalidWindow, w.To)
		}
		if w.To.IsBefore(w.From) {
			return fmt.Errorf("%w: %s-%s ends before it starts", ErrInvalidWindow, w.From, w.To)
		}
	}

	sortWindows(sorted)

	for i := 0; i+1 < len(sorted); i++ {
		if sorted[i].To.IsAfter(sorted[i+1].From) {
			return fmt.Errorf("%w: %s-%s and %s-%s", ErrOverlappingWindows,
				sorted[i].From, sorted[i].To, sorted[i+1].From, sorted[i+1].To)
		}
	}

	return nil
}

// OffersWeekday returns true if the weekday is in the service's available days
func (s *Service) OffersWeekday(day Weekday) bool {
	for _, d := range s.AvailableDays {
		if d == day {
			return true
		}
	}
	return false
}

// IsDateOffered returns true if the date's weekday is an available day and
// the date is not before the current day. Both are compared in date's location.
func (s *Service) IsDateOffered(date, now time.Time) bool {
	if !s.OffersWeekday(WeekdayOf(date)) {
		return false
	}
	return !IsBeforeDay(date, now)
}

// EnumerateSlots lists slot start times for the date. Each window yields
// from, from+d, ... while the start is not after the window end, so a slot
// starting exactly at the end is included. Result is sorted and unique.
func (s *Service) EnumerateSlots(date time.Time) []types.TimeString {
	slots := make([]types.TimeString, 0)

	day := WeekdayOf(date)
	if !s.OffersWeekday(day) || s.DurationMinutes <= 0 {
		return slots
	}

	windows := make([]TimeWindow, len(s.AvailableTime[day]))
	copy(windows, s.AvailableTime[day])
	sortWindows(windows)

	seen := make(map[types.TimeString]struct{})
	for _, w := range windows {
		for cur := w.From; !cur.IsAfter(w.To); {
			if _, dup := seen[cur]; !dup {
				seen[cur] = struct{}{}
				slots = append(slots, cur)
			}
			next, err := cur.AddMinutes(s.DurationMinutes)
			if err != nil {
				// следующий слот за пределами суток
				break
			}
			cur = next
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].IsBefore(slots[j]) })
	return slots
}

// IsSlotStart returns true if t is one of the enumerated slots for the date
func (s *Service) IsSlotStart(date time.Time, t types.TimeString) bool {
	for _, slot := range s.EnumerateSlots(date) {
		if slot.Equal(t) {
			return true
		}
	}
	return false
}

// IsBeforeDay reports whether date falls on a calendar day before now's day.
// now is converted to date's location first.
func IsBeforeDay(date, now time.Time) bool {
	now = now.In(date.Location())
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	return time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC).Before(time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC))
}

// DayBounds returns [start of day, start of next day) for the date in its location
func DayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}

func sortWindows(windows []TimeWindow) {
	sort.SliceStable(windows, func(i, j int) bool { return windows[i].From.IsBefore(windows[j].From) })
}
