package request

import (
	"errors"
	"time"

	"badminton-booking/internal/domain/schedule"

	"github.com/google/uuid"
)

var ErrInvalidEquipmentID = errors.New("invalid equipment id")

type CreateBookingRequest struct {
	CustomerName  string           `json:"customer_name" binding:"required"`
	Date          string           `json:"date" binding:"required"`
	StartTime     string           `json:"start_time" binding:"required"`
	EndTime       string           `json:"end_time" binding:"required"`
	CourtID       uuid.UUID        `json:"court_id" binding:"required"`
	CoachID       *uuid.UUID       `json:"coach_id,omitempty"`
	Equipment     map[string]int32 `json:"equipment,omitempty"`
	AllowWaitlist bool             `json:"allow_waitlist"`
}

// ParseSchedule validates the date and slot strings ("2006-01-02",
// "15:04") into domain values.
func (r CreateBookingRequest) ParseSchedule() (time.Time, schedule.TimeRange, error) {
	date, err := schedule.ParseDate(r.Date)
	if err != nil {
		return time.Time{}, schedule.TimeRange{}, err
	}
	start, err := schedule.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return time.Time{}, schedule.TimeRange{}, err
	}
	end, err := schedule.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return time.Time{}, schedule.TimeRange{}, err
	}
	slot, err := schedule.NewTimeRange(start, end)
	if err != nil {
		return time.Time{}, schedule.TimeRange{}, err
	}
	return date, slot, nil
}

// ParseEquipment converts the JSON equipment map (uuid string keys)
// into the usecase's id-keyed form. Quantities pass through untouched;
// the usecase validates them.
func (r CreateBookingRequest) ParseEquipment() (map[uuid.UUID]int32, error) {
	if len(r.Equipment) == 0 {
		return nil, nil
	}
	equipment := make(map[uuid.UUID]int32, len(r.Equipment))
	for idStr, qty := range r.Equipment {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, ErrInvalidEquipmentID
		}
		equipment[id] = qty
	}
	return equipment, nil
}
