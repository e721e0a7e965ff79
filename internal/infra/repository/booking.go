package repository

import (
	"context"

	dombooking "badminton-booking/internal/domain/booking"
	"badminton-booking/internal/domain/schedule"
	"badminton-booking/internal/infra"
	"badminton-booking/internal/infra/db"
	"badminton-booking/internal/pkg/pgconv"
	"badminton-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

// Create inserts the booking and its equipment lines. Monetary values
// cross the boundary as cents and land in NUMERIC dollar columns.
func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *dombooking.Booking) (uuid.UUID, error) {
	const insertBooking = `
		INSERT INTO bookings (id, user_id, customer_name, date, start_time, end_time,
		                      court_id, coach_id, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::numeric / 100, $10)
		RETURNING id`

	var id uuid.UUID
	err := dbtx.QueryRow(ctx, insertBooking,
		b.ID(),
		pgconv.UUIDPtrToPgtype(b.UserID()),
		b.CustomerName(),
		pgconv.DateToPgtype(b.Date()),
		pgconv.TimeOfDayToPgtype(b.Slot().Start()),
		pgconv.TimeOfDayToPgtype(b.Slot().End()),
		b.CourtID(),
		pgconv.UUIDPtrToPgtype(b.CoachID()),
		b.TotalPrice().Cents(),
		string(b.Status()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}

	const insertLine = `
		INSERT INTO booking_equipment (booking_id, equipment_id, quantity)
		VALUES ($1, $2, $3)`

	for _, line := range b.Equipment() {
		if _, err := dbtx.Exec(ctx, insertLine, id, line.EquipmentID, line.Quantity); err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to create booking equipment line", err)
		}
	}

	return id, nil
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.BookingSnapshot, error) {
	const query = `
		SELECT id, user_id, customer_name, date, start_time, end_time, court_id, coach_id, status
		FROM bookings
		WHERE id = $1
		FOR UPDATE`

	var snap shared.BookingSnapshot
	var userID, coachID pgtype.UUID
	var date pgtype.Date
	var start, end pgtype.Time
	err := dbtx.QueryRow(ctx, query, id).Scan(&snap.ID, &userID, &snap.CustomerName,
		&date, &start, &end, &snap.CourtID, &coachID, &snap.Status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock booking row", err)
	}
	snap.UserID = pgconv.UUIDPtrFromPgtype(userID)
	snap.CoachID = pgconv.UUIDPtrFromPgtype(coachID)
	snap.Date = pgconv.DateFromPgtype(date)
	slot, serr := schedule.NewTimeRange(pgconv.TimeOfDayFromPgtype(start), pgconv.TimeOfDayFromPgtype(end))
	if serr != nil {
		return nil, infra.WrapRepoErr("invalid booking range in storage", serr)
	}
	snap.Slot = slot
	return &snap, nil
}

func (r *BookingRepository) SetStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status dombooking.Status) error {
	const query = `UPDATE bookings SET status = $2 WHERE id = $1`

	tag, err := dbtx.Exec(ctx, query, id, string(status))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
