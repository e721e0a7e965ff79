package queries

import (
	"context"

	"badminton-booking/internal/infra"
	"badminton-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const bookingListLimit = 50

var ErrBookingNotFound = errs.New("booking not found")

type BookingQueries interface {
	// ListByUser returns the user's bookings, most recent first, capped.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
	// GetByID is scoped to the owner; other users' bookings read as
	// not found.
	GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*BookingView, error)
}

type BookingViewRepo interface {
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*BookingListItem, error)
	FindByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*BookingView, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error) {
	return q.repo.FindByUserID(ctx, userID, bookingListLimit)
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, userID, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return view, nil
}
