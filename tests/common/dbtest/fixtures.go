//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123"
const testPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func CreateTestUser(t *testing.T, db DBLike, email string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, name, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash, "Test User")
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestCourt(t *testing.T, db DBLike, name, courtType string, hourlyRateCents int64) uuid.UUID {
	t.Helper()

	courtID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO courts (id, name, court_type, hourly_rate) VALUES ($1, $2, $3, $4::numeric / 100) ON CONFLICT (name) DO NOTHING",
		courtID, name, courtType, hourlyRateCents)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM courts WHERE name = $1", name).Scan(&courtID)
	}

	return courtID
}

func CreateTestCoach(t *testing.T, db DBLike, name string, hourlyRateCents int64) uuid.UUID {
	t.Helper()

	coachID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO coaches (id, name, hourly_rate) VALUES ($1, $2, $3::numeric / 100)",
		coachID, name, hourlyRateCents)
	require.NoError(t, err)

	return coachID
}

func CreateCoachWindow(t *testing.T, db DBLike, coachID uuid.UUID, date time.Time, start, end string) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO coach_availability (coach_id, date, start_time, end_time) VALUES ($1, $2, $3::time, $4::time) ON CONFLICT DO NOTHING",
		coachID, date, start, end)
	require.NoError(t, err)
}

func CreateTestEquipment(t *testing.T, db DBLike, name string, totalQuantity int32, rentalPriceCents int64) uuid.UUID {
	t.Helper()

	equipmentID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO equipment (id, name, total_quantity, rental_price) VALUES ($1, $2, $3, $4::numeric / 100) ON CONFLICT (name) DO NOTHING",
		equipmentID, name, totalQuantity, rentalPriceCents)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM equipment WHERE name = $1", name).Scan(&equipmentID)
	}

	return equipmentID
}

func CreateTestPricingRule(t *testing.T, db DBLike, name, ruleType string, pct float64, peakStart, peakEnd *string, priority int32) uuid.UUID {
	t.Helper()

	ruleID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO pricing_rules (id, name, rule_type, percentage_adjustment, peak_start, peak_end, priority) VALUES ($1, $2, $3, $4, $5::time, $6::time, $7)",
		ruleID, name, ruleType, pct, peakStart, peakEnd, priority)
	require.NoError(t, err)

	return ruleID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
