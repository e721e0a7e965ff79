package booking

import (
	"strings"
	"time"

	"badminton-booking/internal/domain/schedule"

	"github.com/google/uuid"
)

// WaitlistEntry records an unfulfilled request for a slot, ordered
// FIFO by creation time. The notified flag is a passive marker; no
// delivery happens here.
type WaitlistEntry struct {
	id           uuid.UUID
	date         time.Time
	slot         schedule.TimeRange
	courtID      uuid.UUID
	customerName string
	createdAt    time.Time
	notified     bool
}

func NewWaitlistEntry(date time.Time, slot schedule.TimeRange, courtID uuid.UUID, customerName string) (*WaitlistEntry, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, ErrEmptyCustomerName
	}
	return &WaitlistEntry{
		id:           uuid.New(),
		date:         schedule.Date(date),
		slot:         slot,
		courtID:      courtID,
		customerName: customerName,
	}, nil
}

func ReconstructWaitlistEntry(id uuid.UUID, date time.Time, slot schedule.TimeRange, courtID uuid.UUID, customerName string, createdAt time.Time, notified bool) *WaitlistEntry {
	return &WaitlistEntry{
		id:           id,
		date:         date,
		slot:         slot,
		courtID:      courtID,
		customerName: customerName,
		createdAt:    createdAt,
		notified:     notified,
	}
}

func (w *WaitlistEntry) ID() uuid.UUID            { return w.id }
func (w *WaitlistEntry) Date() time.Time          { return w.date }
func (w *WaitlistEntry) Slot() schedule.TimeRange { return w.slot }
func (w *WaitlistEntry) CourtID() uuid.UUID       { return w.courtID }
func (w *WaitlistEntry) CustomerName() string     { return w.customerName }
func (w *WaitlistEntry) CreatedAt() time.Time     { return w.createdAt }
func (w *WaitlistEntry) Notified() bool           { return w.notified }
