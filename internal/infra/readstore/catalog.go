package readstore

import (
	"context"

	"badminton-booking/internal/infra"
	"badminton-booking/internal/infra/db"
	"badminton-booking/internal/pkg/pgconv"
	"badminton-booking/internal/usecase/queries"
	"badminton-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// CatalogReadStore serves catalog rows both as write-side snapshots
// and as read-side views. NUMERIC dollar columns are converted to
// cents in SQL so Go only ever sees int64.
type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

func (s *CatalogReadStore) CourtByID(ctx context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
	const query = `
		SELECT id, name, court_type, (hourly_rate * 100)::bigint, is_active
		FROM courts
		WHERE id = $1`

	var snap shared.CourtSnapshot
	err := s.db.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.Name, &snap.CourtType, &snap.HourlyRateCents, &snap.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("court not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find court by ID", err)
	}
	return &snap, nil
}

func (s *CatalogReadStore) CoachByID(ctx context.Context, id uuid.UUID) (*shared.CoachSnapshot, error) {
	const query = `
		SELECT id, name, (hourly_rate * 100)::bigint, is_active
		FROM coaches
		WHERE id = $1`

	var snap shared.CoachSnapshot
	err := s.db.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.Name, &snap.HourlyRateCents, &snap.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coach not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coach by ID", err)
	}
	return &snap, nil
}

func (s *CatalogReadStore) EquipmentByID(ctx context.Context, id uuid.UUID) (*shared.EquipmentSnapshot, error) {
	const query = `
		SELECT id, name, total_quantity, (rental_price * 100)::bigint, is_active
		FROM equipment
		WHERE id = $1`

	var snap shared.EquipmentSnapshot
	err := s.db.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.Name, &snap.TotalQuantity, &snap.RentalPriceCents, &snap.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("equipment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find equipment by ID", err)
	}
	return &snap, nil
}

func (s *CatalogReadStore) ActiveEquipment(ctx context.Context) ([]*shared.EquipmentSnapshot, error) {
	const query = `
		SELECT id, name, total_quantity, (rental_price * 100)::bigint, is_active
		FROM equipment
		WHERE is_active
		ORDER BY name`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active equipment", err)
	}
	defer rows.Close()

	var result []*shared.EquipmentSnapshot
	for rows.Next() {
		var snap shared.EquipmentSnapshot
		if err := rows.Scan(&snap.ID, &snap.Name, &snap.TotalQuantity, &snap.RentalPriceCents, &snap.IsActive); err != nil {
			return nil, infra.WrapRepoErr("failed to scan equipment row", err)
		}
		result = append(result, &snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read equipment rows", err)
	}
	return result, nil
}

func (s *CatalogReadStore) FindActiveCourts(ctx context.Context) ([]*queries.CourtView, error) {
	const query = `
		SELECT id, name, court_type, (hourly_rate * 100)::bigint, created_at
		FROM courts
		WHERE is_active
		ORDER BY name`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list courts", err)
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

func (s *CatalogReadStore) FindActiveCoaches(ctx context.Context) ([]*queries.CoachView, error) {
	const query = `
		SELECT id, name, bio, (hourly_rate * 100)::bigint, created_at
		FROM coaches
		WHERE is_active
		ORDER BY name`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list coaches", err)
	}
	defer rows.Close()

	var result []*queries.CoachView
	for rows.Next() {
		var v queries.CoachView
		if err := rows.Scan(&v.ID, &v.Name, &v.Bio, &v.HourlyRateCents, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan coach row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read coach rows", err)
	}
	return result, nil
}

func (s *CatalogReadStore) FindActiveEquipment(ctx context.Context) ([]*queries.EquipmentView, error) {
	const query = `
		SELECT id, name, total_quantity, (rental_price * 100)::bigint, created_at
		FROM equipment
		WHERE is_active
		ORDER BY name`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list equipment", err)
	}
	defer rows.Close()

	var result []*queries.EquipmentView
	for rows.Next() {
		var v queries.EquipmentView
		if err := rows.Scan(&v.ID, &v.Name, &v.TotalQuantity, &v.RentalPriceCents, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan equipment row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read equipment rows", err)
	}
	return result, nil
}
