package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"badminton-booking/internal/infra/db"
	"badminton-booking/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seeds the demo catalog: courts, equipment, coaches with availability
// windows for the coming week, and the three standard pricing rules.
// Inserts are idempotent; rerunning the command changes nothing.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seed(ctx, pool); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	slog.Info("seeding complete")
}

func seed(ctx context.Context, pool *pgxpool.Pool) error {
	if err := seedCourts(ctx, pool); err != nil {
		return err
	}
	if err := seedEquipment(ctx, pool); err != nil {
		return err
	}
	if err := seedCoaches(ctx, pool); err != nil {
		return err
	}
	return seedPricingRules(ctx, pool)
}

func seedCourts(ctx context.Context, pool *pgxpool.Pool) error {
	courts := []struct {
		name      string
		courtType string
		rate      string
	}{
		{"Court 1", "indoor", "400.00"},
		{"Court 2", "indoor", "400.00"},
		{"Court 3", "outdoor", "300.00"},
		{"Court 4", "outdoor", "300.00"},
	}

	for _, c := range courts {
		_, err := pool.Exec(ctx, `
			INSERT INTO courts (name, court_type, hourly_rate)
			VALUES ($1, $2, $3::numeric)
			ON CONFLICT (name) DO NOTHING`,
			c.name, c.courtType, c.rate)
		if err != nil {
			return err
		}
	}
	slog.Info("seeded courts", "count", len(courts))
	return nil
}

func seedEquipment(ctx context.Context, pool *pgxpool.Pool) error {
	items := []struct {
		name  string
		total int32
		price string
	}{
		{"Racket", 20, "50.00"},
		{"Shoes", 10, "30.00"},
	}

	for _, item := range items {
		_, err := pool.Exec(ctx, `
			INSERT INTO equipment (name, total_quantity, rental_price)
			VALUES ($1, $2, $3::numeric)
			ON CONFLICT (name) DO NOTHING`,
			item.name, item.total, item.price)
		if err != nil {
			return err
		}
	}
	slog.Info("seeded equipment", "count", len(items))
	return nil
}

func seedCoaches(ctx context.Context, pool *pgxpool.Pool) error {
	coaches := []struct {
		name string
		bio  string
		rate string
	}{
		{"Coach Lin", "Former provincial singles player, focuses on footwork.", "500.00"},
		{"Coach Sato", "Doubles specialist with ten years of club coaching.", "600.00"},
		{"Coach Park", "National-level trainer for competitive players.", "700.00"},
	}

	for _, c := range coaches {
		var coachID string
		err := pool.QueryRow(ctx, `
			WITH existing AS (
				SELECT id FROM coaches WHERE name = $1
			), inserted AS (
				INSERT INTO coaches (name, bio, hourly_rate)
				SELECT $1, $2, $3::numeric
				WHERE NOT EXISTS (SELECT 1 FROM existing)
				RETURNING id
			)
			SELECT id FROM inserted
			UNION ALL
			SELECT id FROM existing`,
			c.name, c.bio, c.rate).Scan(&coachID)
		if err != nil {
			return err
		}

		// One 08:00-20:00 window per day for the coming week
		today := time.Now().UTC().Truncate(24 * time.Hour)
		for day := 0; day < 7; day++ {
			date := today.AddDate(0, 0, day)
			_, err := pool.Exec(ctx, `
				INSERT INTO coach_availability (coach_id, date, start_time, end_time)
				VALUES ($1, $2, '08:00', '20:00')
				ON CONFLICT (coach_id, date, start_time, end_time) DO NOTHING`,
				coachID, date)
			if err != nil {
				return err
			}
		}
	}
	slog.Info("seeded coaches", "count", len(coaches))
	return nil
}

func seedPricingRules(ctx context.Context, pool *pgxpool.Pool) error {
	rules := []struct {
		name     string
		ruleType string
		pct      string
		peak     []string
		priority int32
	}{
		{"Peak hours", "peak_hour", "30.00", []string{"18:00", "21:00"}, 10},
		{"Weekend", "weekend", "20.00", nil, 20},
		{"Indoor premium", "indoor_premium", "15.00", nil, 30},
	}

	for _, r := range rules {
		var peakStart, peakEnd *string
		if r.peak != nil {
			peakStart, peakEnd = &r.peak[0], &r.peak[1]
		}
		_, err := pool.Exec(ctx, `
			INSERT INTO pricing_rules (name, rule_type, percentage_adjustment, peak_start, peak_end, priority)
			SELECT $1, $2, $3::numeric, $4::time, $5::time, $6
			WHERE NOT EXISTS (SELECT 1 FROM pricing_rules WHERE rule_type = $2)`,
			r.name, r.ruleType, r.pct, peakStart, peakEnd, r.priority)
		if err != nil {
			return err
		}
	}
	slog.Info("seeded pricing rules", "count", len(rules))
	return nil
}
