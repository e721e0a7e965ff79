package readstore

import (
	"context"
	"time"

	"badminton-booking/internal/domain/catalog"
	"badminton-booking/internal/domain/schedule"
	"badminton-booking/internal/infra"
	"badminton-booking/internal/infra/db"
	"badminton-booking/internal/pkg/pgconv"
	"badminton-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// AvailabilityReadStore answers the overlap and capacity questions the
// checker and the booking coordinator share. All booking predicates
// are half-open: an existing [s, e) conflicts with [start, end) iff
// s < end AND e > start, so back-to-back slots never collide.
type AvailabilityReadStore struct {
	db db.DBTX
}

func NewAvailabilityReadStore(dbtx db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{db: dbtx}
}

func (s *AvailabilityReadStore) HasCourtConflict(ctx context.Context, courtID uuid.UUID, date time.Time, slot schedule.TimeRange) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE court_id = $1
			  AND date = $2
			  AND status = 'confirmed'
			  AND start_time < $4
			  AND end_time > $3
		)`

	var conflict bool
	err := s.db.QueryRow(ctx, query,
		courtID,
		pgconv.DateToPgtype(date),
		pgconv.TimeOfDayToPgtype(slot.Start()),
		pgconv.TimeOfDayToPgtype(slot.End()),
	).Scan(&conflict)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check court conflict", err)
	}
	return conflict, nil
}

func (s *AvailabilityReadStore) HasCoachConflict(ctx context.Context, coachID uuid.UUID, date time.Time, slot schedule.TimeRange) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE coach_id = $1
			  AND date = $2
			  AND status = 'confirmed'
			  AND start_time < $4
			  AND end_time > $3
		)`

	var conflict bool
	err := s.db.QueryRow(ctx, query,
		coachID,
		pgconv.DateToPgtype(date),
		pgconv.TimeOfDayToPgtype(slot.Start()),
		pgconv.TimeOfDayToPgtype(slot.End()),
	).Scan(&conflict)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check coach conflict", err)
	}
	return conflict, nil
}

// CoachWindowCovers is containment, not overlap: some single window
// must span the whole requested range. Windows are evaluated
// disjunctively and never merged.
func (s *AvailabilityReadStore) CoachWindowCovers(ctx context.Context, coachID uuid.UUID, date time.Time, slot schedule.TimeRange) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM coach_availability
			WHERE coach_id = $1
			  AND date = $2
			  AND start_time <= $3
			  AND end_time >= $4
		)`

	var covered bool
	err := s.db.QueryRow(ctx, query,
		coachID,
		pgconv.DateToPgtype(date),
		pgconv.TimeOfDayToPgtype(slot.Start()),
		pgconv.TimeOfDayToPgtype(slot.End()),
	).Scan(&covered)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check coach window", err)
	}
	return covered, nil
}

func (s *AvailabilityReadStore) ReservedEquipmentQuantity(ctx context.Context, equipmentID uuid.UUID, date time.Time, slot schedule.TimeRange) (int64, error) {
	const query = `
		SELECT COALESCE(SUM(be.quantity), 0)::bigint
		FROM booking_equipment be
		JOIN bookings b ON b.id = be.booking_id
		WHERE be.equipment_id = $1
		  AND b.date = $2
		  AND b.status = 'confirmed'
		  AND b.start_time < $4
		  AND b.end_time > $3`

	var reserved int64
	err := s.db.QueryRow(ctx, query,
		equipmentID,
		pgconv.DateToPgtype(date),
		pgconv.TimeOfDayToPgtype(slot.Start()),
		pgconv.TimeOfDayToPgtype(slot.End()),
	).Scan(&reserved)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sum reserved equipment", err)
	}
	return reserved, nil
}

func (s *AvailabilityReadStore) ActiveCourts(ctx context.Context, courtType *catalog.CourtType, nameFilter string) ([]*queries.CourtView, error) {
	const query = `
		SELECT id, name, court_type, (hourly_rate * 100)::bigint, created_at
		FROM courts
		WHERE is_active
		  AND ($1::text IS NULL OR court_type = $1)
		  AND ($2::text = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY name`

	var typeArg *string
	if courtType != nil {
		t := courtType.String()
		typeArg = &t
	}

	rows, err := s.db.Query(ctx, query, typeArg, nameFilter)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list courts for availability", err)
	}
	defer rows.Close()

	var result []*queries.CourtView
	for rows.Next() {
		var v queries.CourtView
		if err := rows.Scan(&v.ID, &v.Name, &v.CourtType, &v.HourlyRateCents, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan court row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read court rows", err)
	}
	return result, nil
}

func (s *AvailabilityReadStore) ConfirmedRanges(ctx context.Context, date time.Time) (map[uuid.UUID][]schedule.TimeRange, error) {
	const query = `
		SELECT court_id, start_time, end_time
		FROM bookings
		WHERE date = $1 AND status = 'confirmed'`

	rows, err := s.db.Query(ctx, query, pgconv.DateToPgtype(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booked ranges", err)
	}
	defer rows.Close()

	booked := make(map[uuid.UUID][]schedule.TimeRange)
	for rows.Next() {
		var courtID uuid.UUID
		var start, end pgtype.Time
		if err := rows.Scan(&courtID, &start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booked range", err)
		}
		r, rerr := schedule.NewTimeRange(pgconv.TimeOfDayFromPgtype(start), pgconv.TimeOfDayFromPgtype(end))
		if rerr != nil {
			return nil, infra.WrapRepoErr("invalid booked range in storage", rerr)
		}
		booked[courtID] = append(booked[courtID], r)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booked ranges", err)
	}
	return booked, nil
}
