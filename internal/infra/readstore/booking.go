package readstore

import (
	"context"

	"badminton-booking/internal/infra"
	"badminton-booking/internal/infra/db"
	"badminton-booking/internal/pkg/pgconv"
	"badminton-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (s *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT b.id, b.court_id, c.name, b.coach_id, co.name,
		       b.date, b.start_time, b.end_time,
		       (b.total_price * 100)::bigint, b.status, b.created_at
		FROM bookings b
		JOIN courts c ON c.id = b.court_id
		LEFT JOIN coaches co ON co.id = b.coach_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $2`

	rows, err := s.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var result []*queries.BookingListItem
	for rows.Next() {
		var item queries.BookingListItem
		var coachID pgtype.UUID
		var coachName pgtype.Text
		var date pgtype.Date
		var start, end pgtype.Time
		if err := rows.Scan(&item.ID, &item.CourtID, &item.CourtName, &coachID, &coachName,
			&date, &start, &end, &item.TotalPriceCents, &item.Status, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		item.CoachID = pgconv.UUIDPtrFromPgtype(coachID)
		if coachName.Valid {
			item.CoachName = &coachName.String
		}
		item.Date = pgconv.DateFromPgtype(date).Format("2006-01-02")
		item.StartTime = pgconv.TimeOfDayFromPgtype(start).String()
		item.EndTime = pgconv.TimeOfDayFromPgtype(end).String()
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return result, nil
}

// FindByID filters on the owner so foreign booking ids read as not
// found instead of leaking their existence.
func (s *BookingReadStore) FindByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*queries.BookingView, error) {
	const query = `
		SELECT b.id, b.court_id, c.name, b.coach_id, co.name, b.customer_name,
		       b.date, b.start_time, b.end_time,
		       (b.total_price * 100)::bigint, b.status, b.created_at
		FROM bookings b
		JOIN courts c ON c.id = b.court_id
		LEFT JOIN coaches co ON co.id = b.coach_id
		WHERE b.id = $1 AND b.user_id = $2`

	var view queries.BookingView
	var coachID pgtype.UUID
	var coachName pgtype.Text
	var date pgtype.Date
	var start, end pgtype.Time
	err := s.db.QueryRow(ctx, query, id, userID).Scan(&view.ID, &view.CourtID, &view.CourtName, &coachID, &coachName,
		&view.CustomerName, &date, &start, &end, &view.TotalPriceCents, &view.Status, &view.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	view.CoachID = pgconv.UUIDPtrFromPgtype(coachID)
	if coachName.Valid {
		view.CoachName = &coachName.String
	}
	view.Date = pgconv.DateFromPgtype(date).Format("2006-01-02")
	view.StartTime = pgconv.TimeOfDayFromPgtype(start).String()
	view.EndTime = pgconv.TimeOfDayFromPgtype(end).String()
	return &view, nil
}
