package shared

import (
	"context"
	"time"

	"badminton-booking/internal/domain/account"
	"badminton-booking/internal/domain/booking"
	"badminton-booking/internal/domain/pricing"
	"badminton-booking/internal/domain/schedule"
	"badminton-booking/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Waitlist() WaitlistRepository
	Locks() ResourceLockRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads serves the write side's validation queries. Inside a
// transaction these observe the transaction's locks; outside they are
// plain reads.
type CommandReads interface {
	CourtByID(ctx context.Context, id uuid.UUID) (*CourtSnapshot, error)
	CoachByID(ctx context.Context, id uuid.UUID) (*CoachSnapshot, error)
	EquipmentByID(ctx context.Context, id uuid.UUID) (*EquipmentSnapshot, error)
	// ActiveEquipment lists every active item, name-ordered; the quote
	// reports availability for the whole catalog.
	ActiveEquipment(ctx context.Context) ([]*EquipmentSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)

	HasCourtConflict(ctx context.Context, courtID uuid.UUID, date time.Time, slot schedule.TimeRange) (bool, error)
	HasCoachConflict(ctx context.Context, coachID uuid.UUID, date time.Time, slot schedule.TimeRange) (bool, error)
	CoachWindowCovers(ctx context.Context, coachID uuid.UUID, date time.Time, slot schedule.TimeRange) (bool, error)
	ReservedEquipmentQuantity(ctx context.Context, equipmentID uuid.UUID, date time.Time, slot schedule.TimeRange) (int64, error)
	ActiveRules(ctx context.Context) ([]pricing.Rule, error)
}

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type CourtSnapshot struct {
	ID              uuid.UUID
	Name            string
	CourtType       string
	HourlyRateCents int64
	IsActive        bool
}

type CoachSnapshot struct {
	ID              uuid.UUID
	Name            string
	HourlyRateCents int64
	IsActive        bool
}

type EquipmentSnapshot struct {
	ID               uuid.UUID
	Name             string
	TotalQuantity    int32
	RentalPriceCents int64
	IsActive         bool
}

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	DisplayName  string
	IsActive     bool
}

type BookingSnapshot struct {
	ID           uuid.UUID
	UserID       *uuid.UUID
	CustomerName string
	Date         time.Time
	Slot         schedule.TimeRange
	CourtID      uuid.UUID
	CoachID      *uuid.UUID
	Status       string
}

type BookingRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	// FindByIDForUpdate locks the booking row for the cancel path.
	FindByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*BookingSnapshot, error)
	SetStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status booking.Status) error
}

type WaitlistRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, entry *booking.WaitlistEntry) (uuid.UUID, error)
}

// ResourceLockRepository acquires row locks on catalog rows, pinning
// each contended resource for the rest of the transaction. Lock order
// is fixed by the caller: court, then coach, then equipment by id.
type ResourceLockRepository interface {
	LockCourt(ctx context.Context, dbtx db.DBTX, courtID uuid.UUID) error
	LockCoach(ctx context.Context, dbtx db.DBTX, coachID uuid.UUID) error
	LockEquipment(ctx context.Context, dbtx db.DBTX, equipmentIDs []uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, u *account.User) (uuid.UUID, error)
}
