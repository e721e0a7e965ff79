package pricing

import (
	"sort"
	"time"

	"badminton-booking/internal/domain/schedule"

	"github.com/google/uuid"
)

type RuleType string

const (
	RulePeakHour      RuleType = "peak_hour"
	RuleWeekend       RuleType = "weekend"
	RuleIndoorPremium RuleType = "indoor_premium"
)

// Rule is a percentage adjustment applied multiplicatively to the
// running price when its predicate holds. PercentAdjustment of 20
// means +20%, -10 means -10%.
type Rule struct {
	ID                uuid.UUID
	Name              string
	Type              RuleType
	PercentAdjustment float64
	PeakWindow        *schedule.TimeRange
	Priority          int32
	CreatedAt         time.Time
	IsActive          bool
}

// AppliesTo evaluates the rule predicate for a candidate booking.
// A peak_hour rule without peak bounds never applies.
func (r Rule) AppliesTo(date time.Time, slot schedule.TimeRange, indoor bool) bool {
	switch r.Type {
	case RuleWeekend:
		return schedule.IsWeekend(date)
	case RulePeakHour:
		if r.PeakWindow == nil {
			return false
		}
		return slot.Overlaps(*r.PeakWindow)
	case RuleIndoorPremium:
		return indoor
	default:
		return false
	}
}

// SortRules fixes the evaluation order: priority ascending, then
// creation time, then id. Adjustments compound on the running price,
// so the order determines each rule's reported dollar contribution.
func SortRules(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority < rules[j].Priority
		}
		if !rules[i].CreatedAt.Equal(rules[j].CreatedAt) {
			return rules[i].CreatedAt.Before(rules[j].CreatedAt)
		}
		return rules[i].ID.String() < rules[j].ID.String()
	})
}
