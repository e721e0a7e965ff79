package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type CourtView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	CourtType       string    `json:"court_type"`
	HourlyRateCents int64     `json:"hourly_rate_cents"`
	CreatedAt       time.Time `json:"created_at"`
}

type CoachView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Bio             string    `json:"bio"`
	HourlyRateCents int64     `json:"hourly_rate_cents"`
	CreatedAt       time.Time `json:"created_at"`
}

type EquipmentView struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	TotalQuantity    int32     `json:"total_quantity"`
	RentalPriceCents int64     `json:"rental_price_cents"`
	CreatedAt        time.Time `json:"created_at"`
}

// AvailabilitySlotView is one cell of the court x slot grid.
type AvailabilitySlotView struct {
	CourtID   uuid.UUID `json:"court_id"`
	CourtName string    `json:"court_name"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Available bool      `json:"available"`
}

type AppliedRuleView struct {
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
}

type EquipmentAvailabilityView struct {
	EquipmentID uuid.UUID `json:"equipment_id"`
	Name        string    `json:"name"`
	Requested   int32     `json:"requested"`
	Available   int32     `json:"available"`
}

type QuoteView struct {
	BasePriceCents    int64                       `json:"base_price_cents"`
	CourtFeeCents     int64                       `json:"court_fee_cents"`
	CoachFeeCents     int64                       `json:"coach_fee_cents"`
	EquipmentFeeCents int64                       `json:"equipment_fee_cents"`
	AppliedRules      []AppliedRuleView           `json:"applied_rules"`
	TotalPriceCents   int64                       `json:"total_price_cents"`
	Equipment         []EquipmentAvailabilityView `json:"equipment"`
}

type BookingListItem struct {
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

type BookingView struct {
	ID              uuid.UUID  `json:"id"`
	CourtID         uuid.UUID  `json:"court_id"`
	CourtName       string     `json:"court_name"`
	CoachID         *uuid.UUID `json:"coach_id,omitempty"`
	CoachName       *string    `json:"coach_name,omitempty"`
	CustomerName    string     `json:"customer_name"`
	Date            string     `json:"date"`
	StartTime       string     `json:"start_time"`
	EndTime         string     `json:"end_time"`
	TotalPriceCents int64      `json:"total_price_cents"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
}
