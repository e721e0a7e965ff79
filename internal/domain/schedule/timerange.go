package schedule

import "errors"

var ErrEmptyTimeRange = errors.New("start time must be before end time")

// TimeRange is a half-open [start, end) interval within one day.
type TimeRange struct {
	start TimeOfDay
	end   TimeOfDay
}

func NewTimeRange(start, end TimeOfDay) (TimeRange, error) {
	if start >= end {
		return TimeRange{}, ErrEmptyTimeRange
	}
	return TimeRange{start: start, end: end}, nil
}

func (r TimeRange) Start() TimeOfDay { return r.start }
func (r TimeRange) End() TimeOfDay   { return r.end }

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints do not overlap: a range ending at 10:00 is compatible with
// one starting at 10:00.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.start < other.end && r.end > other.start
}

// Contains reports whether other lies fully within r, endpoints included.
// Coach availability windows use containment, not overlap.
func (r TimeRange) Contains(other TimeRange) bool {
	return r.start <= other.start && r.end >= other.end
}

// DurationHours is the fractional hour count between start and end,
// computed from time-of-day components only.
func (r TimeRange) DurationHours() float64 {
	return float64(r.end-r.start) / MinutesPerHour
}

func (r TimeRange) String() string {
	return r.start.String() + "-" + r.end.String()
}
