package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeFormat формат хранения времени суток (HH:MM:SS)
const TimeFormat = "15:04:05"

// shortTimeFormat допустимый сокращённый формат на входе (HH:MM)
const shortTimeFormat = "15:04"

const secondsPerDay = 24 * 60 * 60

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("types: invalid time string format")

	// ErrTimeOverflow возвращается, когда результат выходит за пределы суток
	ErrTimeOverflow = errors.New("types: time overflows the day")
)

// TimeString время суток без даты в формате "HH:MM:SS"
// Нулевое значение ("") означает, что время не задано
type TimeString string

// NewTimeString создаёт TimeString из time.Time (дата отбрасывается)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString парсит "HH:MM" или "HH:MM:SS" и нормализует к "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)

	layout := TimeFormat
	if len(s) == len(shortTimeFormat) {
		layout = shortTimeFormat
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return NewTimeString(t), nil
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero проверяет, что время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат "HH:MM:SS"
func (t TimeString) Validate() error {
	if _, err := time.Parse(TimeFormat, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Seconds возвращает количество секунд от начала суток
func (t TimeString) Seconds() (int, error) {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*3600 + parsed.Minute()*60 + parsed.Second(), nil
}

// AddMinutes прибавляет минуты; переход через полночь считается ошибкой
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	seconds, err := t.Seconds()
	if err != nil {
		return "", err
	}

	total := seconds + minutes*60
	if total < 0 || total >= secondsPerDay {
		return "", fmt.Errorf("%w: %s + %dm", ErrTimeOverflow, t, minutes)
	}

	return fromSeconds(total), nil
}

// IsBefore строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.compare(other) < 0
}

// IsAfter строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.compare(other) > 0
}

// Equal совпадает с other
func (t TimeString) Equal(other TimeString) bool {
	return t.compare(other) == 0
}

// OnDate возвращает момент времени на дату date в её часовом поясе
func (t TimeString) OnDate(date time.Time) (time.Time, error) {
	seconds, err := t.Seconds()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location()).Add(time.Duration(seconds) * time.Second), nil
}

// compare сравнивает два значения; некорректные строки сравниваются лексикографически,
// что для нормализованного формата совпадает с хронологическим порядком
func (t TimeString) compare(other TimeString) int {
	a, errA := t.Seconds()
	b, errB := other.Seconds()
	if errA != nil || errB != nil {
		return strings.Compare(string(t), string(other))
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func fromSeconds(total int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60))
}
