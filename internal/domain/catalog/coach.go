package catalog

import (
	"strings"
	"time"

	"badminton-booking/internal/domain/pricing"
	"badminton-booking/internal/domain/schedule"

	"github.com/google/uuid"
)

type Coach struct {
	id         uuid.UUID
	name       string
	bio        string
	hourlyRate pricing.Money
	isActive   bool
}

func NewCoach(name, bio string, hourlyRate pricing.Money) (*Coach, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if hourlyRate.IsNegative() {
		return nil, ErrInvalidRate
	}
	return &Coach{
		id:         uuid.New(),
		name:       name,
		bio:        bio,
		hourlyRate: hourlyRate,
		isActive:   true,
	}, nil
}

func ReconstructCoach(id uuid.UUID, name, bio string, hourlyRate pricing.Money, isActive bool) *Coach {
	return &Coach{
		id:         id,
		name:       name,
		bio:        bio,
		hourlyRate: hourlyRate,
		isActive:   isActive,
	}
}

func (c *Coach) ID() uuid.UUID             { return c.id }
func (c *Coach) Name() string              { return c.name }
func (c *Coach) Bio() string               { return c.bio }
func (c *Coach) HourlyRate() pricing.Money { return c.hourlyRate }
func (c *Coach) IsActive() bool            { return c.isActive }

// AvailabilityWindow is a dated window during which a coach may be
// booked. Uniqueness is on the exact (coach, date, start, end) tuple;
// overlapping windows for the same coach are legal and evaluated
// disjunctively, never merged.
type AvailabilityWindow struct {
	id      uuid.UUID
	coachID uuid.UUID
	date    time.Time
	window  schedule.TimeRange
}

func NewAvailabilityWindow(coachID uuid.UUID, date time.Time, window schedule.TimeRange) *AvailabilityWindow {
	return &AvailabilityWindow{
		id:      uuid.New(),
		coachID: coachID,
		date:    schedule.Date(date),
		window:  window,
	}
}

func ReconstructAvailabilityWindow(id, coachID uuid.UUID, date time.Time, window schedule.TimeRange) *AvailabilityWindow {
	return &AvailabilityWindow{id: id, coachID: coachID, date: date, window: window}
}

func (w *AvailabilityWindow) ID() uuid.UUID              { return w.id }
func (w *AvailabilityWindow) CoachID() uuid.UUID         { return w.coachID }
func (w *AvailabilityWindow) Date() time.Time            { return w.date }
func (w *AvailabilityWindow) Window() schedule.TimeRange { return w.window }

// Covers reports whether the whole requested range fits inside this
// window, endpoints included.
func (w *AvailabilityWindow) Covers(requested schedule.TimeRange) bool {
	return w.window.Contains(requested)
}
