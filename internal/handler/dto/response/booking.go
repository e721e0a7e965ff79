package response

import (
	"time"

	"badminton-booking/internal/usecase/commands"
	"badminton-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// BookingAttemptResponse reports one of three outcomes: a confirmed
// booking, a waitlist entry, or a plain conflict. Conflicts are not
// HTTP errors; the caller reads booking_id/waitlisted/reason.
type BookingAttemptResponse struct {
	BookingID       *uuid.UUID `json:"booking_id"`
	TotalPriceCents int64      `json:"total_price_cents,omitempty"`
	Waitlisted      bool       `json:"waitlisted"`
	WaitlistEntryID *uuid.UUID `json:"waitlist_entry_id,omitempty"`
	Reason          string     `json:"reason,omitempty"`
}

func FromAttemptResult(result *commands.AttemptBookingResult) *BookingAttemptResponse {
	return &BookingAttemptResponse{
		BookingID:       result.BookingID,
		TotalPriceCents: result.TotalPriceCents,
		Waitlisted:      result.Waitlisted,
		WaitlistEntryID: result.WaitlistEntryID,
		Reason:          result.Reason,
	}
}

type BookingListResponse struct {
	ID              uuid.UUID  `json:"id"`
	CourtID         uuid.UUID  `json:"court_id"`
	CourtName       string     `json:"court_name"`
	CoachID         *uuid.UUID `json:"coach_id,omitempty"`
	CoachName       *string    `json:"coach_name,omitempty"`
	Date            string     `json:"date"`
	StartTime       string     `json:"start_time"`
	EndTime         string     `json:"end_time"`
	TotalPriceCents int64      `json:"total_price_cents"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
}

func FromBookingListItems(items []*queries.BookingListItem) ([]*BookingListResponse, error) {
	response := make([]*BookingListResponse, 0, len(items))
	if err := copier.Copy(&response, &items); err != nil {
		return nil, err
	}
	return response, nil
}
