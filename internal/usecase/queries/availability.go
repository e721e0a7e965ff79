package queries

import (
	"context"
	"time"

	"badminton-booking/internal/domain/catalog"
	"badminton-booking/internal/domain/schedule"

	"github.com/google/uuid"
)

type AvailabilityQueries interface {
	// Search renders the full court x one-hour-slot grid for a date.
	// courtType and nameFilter narrow the court set.
	Search(ctx context.Context, date time.Time, courtType *catalog.CourtType, nameFilter string) ([]*AvailabilitySlotView, error)
}

type AvailabilityViewRepo interface {
	ActiveCourts(ctx context.Context, courtType *catalog.CourtType, nameFilter string) ([]*CourtView, error)
	// ConfirmedRanges returns, per court, the booked time ranges on the
	// date. Cancelled bookings are excluded.
	ConfirmedRanges(ctx context.Context, date time.Time) (map[uuid.UUID][]schedule.TimeRange, error)
}

type availabilityQueriesImpl struct {
	repo AvailabilityViewRepo
}

func NewAvailabilityQueries(repo AvailabilityViewRepo) AvailabilityQueries {
	return &availabilityQueriesImpl{repo: repo}
}

func (q *availabilityQueriesImpl) Search(ctx context.Context, date time.Time, courtType *catalog.CourtType, nameFilter string) ([]*AvailabilitySlotView, error) {
	courts, err := q.repo.ActiveCourts(ctx, courtType, nameFilter)
	if err != nil {
		return nil, err
	}

	booked, err := q.repo.ConfirmedRanges(ctx, date)
	if err != nil {
		return nil, err
	}

	day := schedule.Date(date)
	dateStr := day.Format("2006-01-02")
	slots := schedule.DaySlots()

	grid := make([]*AvailabilitySlotView, 0, len(courts)*len(slots))
	for _, court := range courts {
		taken := booked[court.ID]
		for _, slot := range slots {
			grid = append(grid, &AvailabilitySlotView{
				CourtID:   court.ID,
				CourtName: court.Name,
				Date:      dateStr,
				StartTime: slot.Start().String(),
				EndTime:   slot.End().String(),
				Available: !overlapsAny(slot, taken),
			})
		}
	}
	return grid, nil
}

func overlapsAny(slot schedule.TimeRange, taken []schedule.TimeRange) bool {
	for _, r := range taken {
		if slot.Overlaps(r) {
			return true
		}
	}
	return false
}
