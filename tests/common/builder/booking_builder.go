//go:build unit || e2e

package builder

import (
	"time"

	dombooking "badminton-booking/internal/domain/booking"
	"badminton-booking/internal/domain/pricing"
	"badminton-booking/internal/domain/schedule"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	UserID       *uuid.UUID
	CustomerName string
	Date         time.Time
	StartHour    int
	EndHour      int
	CourtID      uuid.UUID
	CoachID      *uuid.UUID
	TotalCents   int64
	Equipment    []dombooking.EquipmentLine
}

func NewBookingBuilder() *BookingBuilder {
	userID := uuid.New()
	return &BookingBuilder{
		UserID:       &userID,
		CustomerName: "Mika Tanaka",
		Date:         time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), // Monday
		StartHour:    10,
		EndHour:      11,
		CourtID:      uuid.New(),
		TotalCents:   40000,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) Slot() schedule.TimeRange {
	slot, err := schedule.NewTimeRange(mustTimeOfDay(b.StartHour), mustTimeOfDay(b.EndHour))
	if err != nil {
		panic(err)
	}
	return slot
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	return dombooking.NewBooking(
		b.UserID,
		b.CustomerName,
		b.Date,
		b.Slot(),
		b.CourtID,
		b.CoachID,
		pricing.NewMoney(b.TotalCents),
		b.Equipment,
	)
}

func mustTimeOfDay(hour int) schedule.TimeOfDay {
	tod, err := schedule.NewTimeOfDay(hour, 0)
	if err != nil {
		panic(err)
	}
	return tod
}
