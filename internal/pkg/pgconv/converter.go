package pgconv

import (
	"database/sql"
	"errors"
	"time"

	"badminton-booking/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

func UUIDPtrFromPgtype(pu pgtype.UUID) *uuid.UUID {
	if !pu.Valid {
		return nil
	}
	id := uuid.UUID(pu.Bytes)
	return &id
}

func UUIDPtrToPgtype(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func DateFromPgtype(pd pgtype.Date) time.Time {
	return schedule.Date(pd.Time)
}

func DateToPgtype(t time.Time) pgtype.Date {
	return pgtype.Date{Time: schedule.Date(t), Valid: true}
}

// TIME columns travel as microseconds since midnight.
func TimeOfDayFromPgtype(pt pgtype.Time) schedule.TimeOfDay {
	return schedule.TimeOfDay(pt.Microseconds / int64(time.Minute/time.Microsecond))
}

func TimeOfDayToPgtype(tod schedule.TimeOfDay) pgtype.Time {
	return pgtype.Time{
		Microseconds: int64(tod.Minutes()) * int64(time.Minute/time.Microsecond),
		Valid:        true,
	}
}

// IsNoRows checks if the error is a "no rows" error from either sql or pgx
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
