//go:build e2e

package helper

import (
	"testing"
	"time"

	"badminton-booking/internal/pkg/config"
	"badminton-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TokenFor signs an access token for the user with the same secret
// the app under test validates against.
func TokenFor(t *testing.T, cfg config.Config, userID uuid.UUID) string {
	t.Helper()

	duration, err := time.ParseDuration(cfg.JWT.Duration)
	require.NoError(t, err)

	token, err := jwt.NewService(cfg.JWT.Secret, duration).GenerateToken(userID)
	require.NoError(t, err)
	return token
}
