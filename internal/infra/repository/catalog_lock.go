package repository

import (
	"context"

	"badminton-booking/internal/infra"
	"badminton-booking/internal/infra/db"
	"badminton-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// CatalogLockRepository takes FOR UPDATE locks on catalog rows. The
// rows themselves never change during a booking; the lock serializes
// concurrent availability checks on the same resource.
type CatalogLockRepository struct{}

func NewCatalogLockRepository() *CatalogLockRepository {
	return &CatalogLockRepository{}
}

func (r *CatalogLockRepository) LockCourt(ctx context.Context, dbtx db.DBTX, courtID uuid.UUID) error {
	const query = `SELECT id FROM courts WHERE id = $1 FOR UPDATE`

	var id uuid.UUID
	if err := dbtx.QueryRow(ctx, query, courtID).Scan(&id); err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("court not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock court row", err)
	}
	return nil
}

func (r *CatalogLockRepository) LockCoach(ctx context.Context, dbtx db.DBTX, coachID uuid.UUID) error {
	const query = `SELECT id FROM coaches WHERE id = $1 FOR UPDATE`

	var id uuid.UUID
	if err := dbtx.QueryRow(ctx, query, coachID).Scan(&id); err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("coach not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock coach row", err)
	}
	return nil
}

// LockEquipment locks all requested rows in id order inside a single
// statement; callers pass ids already sorted so every transaction
// acquires equipment locks in the same global order.
func (r *CatalogLockRepository) LockEquipment(ctx context.Context, dbtx db.DBTX, equipmentIDs []uuid.UUID) error {
	if len(equipmentIDs) == 0 {
		return nil
	}

	const query = `SELECT id FROM equipment WHERE id = ANY($1::uuid[]) ORDER BY id FOR UPDATE`

	rows, err := dbtx.Query(ctx, query, equipmentIDs)
	if err != nil {
		return infra.WrapRepoErr("failed to lock equipment rows", err)
	}
	defer rows.Close()

	locked := 0
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return infra.WrapRepoErr("failed to scan locked equipment row", err)
		}
		locked++
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to read locked equipment rows", err)
	}
	if locked != len(equipmentIDs) {
		return infra.WrapRepoErr("equipment not found", nil, infra.KindNotFound)
	}
	return nil
}
