package repository

import (
	"context"

	dombooking "badminton-booking/internal/domain/booking"
	"badminton-booking/internal/infra"
	"badminton-booking/internal/infra/db"
	"badminton-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type WaitlistRepository struct{}

func NewWaitlistRepository() *WaitlistRepository {
	return &WaitlistRepository{}
}

func (r *WaitlistRepository) Create(ctx context.Context, dbtx db.DBTX, entry *dombooking.WaitlistEntry) (uuid.UUID, error) {
	const query = `
		INSERT INTO waitlist_entries (id, date, start_time, end_time, court_id, customer_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id uuid.UUID
	err := dbtx.QueryRow(ctx, query,
		entry.ID(),
		pgconv.DateToPgtype(entry.Date()),
		pgconv.TimeOfDayToPgtype(entry.Slot().Start()),
		pgconv.TimeOfDayToPgtype(entry.Slot().End()),
		entry.CourtID(),
		entry.CustomerName(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create waitlist entry", err)
	}
	return id, nil
}
