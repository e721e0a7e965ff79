package booking

import (
	"errors"
	"strings"
	"time"

	"badminton-booking/internal/domain/pricing"
	"badminton-booking/internal/domain/schedule"

	"github.com/google/uuid"
)

var (
	ErrEmptyCustomerName = errors.New("customer name must not be empty")
	ErrNegativePrice     = errors.New("total price cannot be negative")
	ErrInvalidQuantity   = errors.New("equipment quantity must be positive")
	ErrDuplicateLine     = errors.New("duplicate equipment line")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// EquipmentLine reserves quantity units of one equipment pool for the
// booking's window. One line per equipment id.
type EquipmentLine struct {
	EquipmentID uuid.UUID
	Quantity    int32
}

// Booking is a confirmed court reservation with an optional coach and
// equipment lines. TotalPrice is fixed at creation; later rate or rule
// changes never reprice an existing booking.
type Booking struct {
	id           uuid.UUID
	userID       *uuid.UUID
	customerName string
	date         time.Time
	slot         schedule.TimeRange
	courtID      uuid.UUID
	coachID      *uuid.UUID
	totalPrice   pricing.Money
	status       Status
	equipment    []EquipmentLine
	createdAt    time.Time
}

// NewBooking builds a confirmed booking. Equipment lines must already
// be filtered to positive quantities; zero-quantity selections are a
// caller concern and dropped upstream.
func NewBooking(
	userID *uuid.UUID,
	customerName string,
	date time.Time,
	slot schedule.TimeRange,
	courtID uuid.UUID,
	coachID *uuid.UUID,
	totalPrice pricing.Money,
	equipment []EquipmentLine,
) (*Booking, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, ErrEmptyCustomerName
	}
	if totalPrice.IsNegative() {
		return nil, ErrNegativePrice
	}

	seen := make(map[uuid.UUID]struct{}, len(equipment))
	for _, line := range equipment {
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if _, dup := seen[line.EquipmentID]; dup {
			return nil, ErrDuplicateLine
		}
		seen[line.EquipmentID] = struct{}{}
	}

	return &Booking{
		id:           uuid.New(),
		userID:       userID,
		customerName: customerName,
		date:         schedule.Date(date),
		slot:         slot,
		courtID:      courtID,
		coachID:      coachID,
		totalPrice:   totalPrice,
		status:       StatusConfirmed,
		equipment:    equipment,
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	userID *uuid.UUID,
	customerName string,
	date time.Time,
	slot schedule.TimeRange,
	courtID uuid.UUID,
	coachID *uuid.UUID,
	totalPrice pricing.Money,
	status Status,
	equipment []EquipmentLine,
	createdAt time.Time,
) *Booking {
	return &Booking{
		id:           id,
		userID:       userID,
		customerName: customerName,
		date:         date,
		slot:         slot,
		courtID:      courtID,
		coachID:      coachID,
		totalPrice:   totalPrice,
		status:       status,
		equipment:    equipment,
		createdAt:    createdAt,
	}
}

func (b *Booking) ID() uuid.UUID                 { return b.id }
func (b *Booking) UserID() *uuid.UUID            { return b.userID }
func (b *Booking) CustomerName() string          { return b.customerName }
func (b *Booking) Date() time.Time               { return b.date }
func (b *Booking) Slot() schedule.TimeRange      { return b.slot }
func (b *Booking) CourtID() uuid.UUID            { return b.courtID }
func (b *Booking) CoachID() *uuid.UUID           { return b.coachID }
func (b *Booking) TotalPrice() pricing.Money     { return b.totalPrice }
func (b *Booking) Status() Status                { return b.status }
func (b *Booking) Equipment() []EquipmentLine    { return b.equipment }
func (b *Booking) CreatedAt() time.Time          { return b.createdAt }
func (b *Booking) IsConfirmed() bool             { return b.status == StatusConfirmed }

// Cancel releases the booking's resources. Cancelled bookings no
// longer count toward overlap or equipment-consumption checks.
func (b *Booking) Cancel() error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	b.status = StatusCancelled
	return nil
}
