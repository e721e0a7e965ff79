package readstore

import (
	"context"

	"badminton-booking/internal/infra"
	"badminton-booking/internal/infra/db"
	"badminton-booking/internal/pkg/pgconv"
	"badminton-booking/internal/usecase/shared"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	const query = `
		SELECT id, email, password_hash, name, is_active
		FROM users
		WHERE email = $1`

	var snap shared.UserSnapshot
	err := s.db.QueryRow(ctx, query, email).Scan(&snap.ID, &snap.Email, &snap.PasswordHash, &snap.DisplayName, &snap.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return &snap, nil
}
