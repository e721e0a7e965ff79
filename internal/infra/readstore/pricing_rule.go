package readstore

import (
	"context"

	"badminton-booking/internal/domain/pricing"
	"badminton-booking/internal/domain/schedule"
	"badminton-booking/internal/infra"
	"badminton-booking/internal/infra/db"
	"badminton-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type PricingRuleReadStore struct {
	db db.DBTX
}

func NewPricingRuleReadStore(dbtx db.DBTX) *PricingRuleReadStore {
	return &PricingRuleReadStore{db: dbtx}
}

// ActiveRules returns active rules already in evaluation order. The
// ORDER BY mirrors pricing.SortRules; the engine re-sorts anyway so
// callers cannot depend on storage ordering.
func (s *PricingRuleReadStore) ActiveRules(ctx context.Context) ([]pricing.Rule, error) {
	const query = `
		SELECT id, name, rule_type, percentage_adjustment::float8,
		       peak_start, peak_end, priority, created_at
		FROM pricing_rules
		WHERE is_active
		ORDER BY priority, created_at, id`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list pricing rules", err)
	}
	defer rows.Close()

	var rules []pricing.Rule
	for rows.Next() {
		var rule pricing.Rule
		var ruleType string
		var peakStart, peakEnd pgtype.Time
		if err := rows.Scan(&rule.ID, &rule.Name, &ruleType, &rule.PercentAdjustment,
			&peakStart, &peakEnd, &rule.Priority, &rule.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan pricing rule", err)
		}
		rule.Type = pricing.RuleType(ruleType)
		rule.IsActive = true

		if peakStart.Valid && peakEnd.Valid {
			window, werr := schedule.NewTimeRange(
				pgconv.TimeOfDayFromPgtype(peakStart),
				pgconv.TimeOfDayFromPgtype(peakEnd),
			)
			if werr != nil {
				return nil, infra.WrapRepoErr("invalid peak window in storage", werr)
			}
			rule.PeakWindow = &window
		}

		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read pricing rules", err)
	}
	return rules, nil
}
