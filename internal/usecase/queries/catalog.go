package queries

import (
	"context"
)

type CatalogQueries interface {
	ListCourts(ctx context.Context) ([]*CourtView, error)
	ListCoaches(ctx context.Context) ([]*CoachView, error)
	ListEquipment(ctx context.Context) ([]*EquipmentView, error)
}

type CatalogViewRepo interface {
	FindActiveCourts(ctx context.Context) ([]*CourtView, error)
	FindActiveCoaches(ctx context.Context) ([]*CoachView, error)
	FindActiveEquipment(ctx context.Context) ([]*EquipmentView, error)
}

type catalogQueriesImpl struct {
	repo CatalogViewRepo
}

func NewCatalogQueries(repo CatalogViewRepo) CatalogQueries {
	return &catalogQueriesImpl{repo: repo}
}

func (q *catalogQueriesImpl) ListCourts(ctx context.Context) ([]*CourtView, error) {
	return q.repo.FindActiveCourts(ctx)
}

func (q *catalogQueriesImpl) ListCoaches(ctx context.Context) ([]*CoachView, error) {
	return q.repo.FindActiveCoaches(ctx)
}

func (q *catalogQueriesImpl) ListEquipment(ctx context.Context) ([]*EquipmentView, error) {
	return q.repo.FindActiveEquipment(ctx)
}
