package schedule

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimeOfDay = errors.New("invalid time of day")

// TimeOfDay is a wall-clock time within a single day, stored as minutes
// since midnight. Bookings never cross a day boundary, so elapsed time
// between two values is plain subtraction.
type TimeOfDay int

const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour
)

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 24 || minute < 0 || minute >= 60 {
		return 0, ErrInvalidTimeOfDay
	}
	t := TimeOfDay(hour*MinutesPerHour + minute)
	if t > MinutesPerDay {
		return 0, ErrInvalidTimeOfDay
	}
	return t, nil
}

// ParseTimeOfDay accepts the "15:04" wire format used by the HTTP layer.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(t.Hour()*MinutesPerHour + t.Minute()), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / MinutesPerHour }
func (t TimeOfDay) Minute() int { return int(t) % MinutesPerHour }

func (t TimeOfDay) Minutes() int { return int(t) }

func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }
func (t TimeOfDay) After(other TimeOfDay) bool  { return t > other }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Date normalizes a timestamp to its calendar day in UTC. Persisted
// booking dates carry no time component.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts the "2006-01-02" wire format.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
