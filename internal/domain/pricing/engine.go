package pricing

import (
	"time"

	"badminton-booking/internal/domain/schedule"
)

// QuoteInput carries everything the engine needs to price one booking
// candidate. Equipment fees are flat per-rental charges, not hourly.
type QuoteInput struct {
	Date            time.Time
	Slot            schedule.TimeRange
	CourtHourlyRate Money
	CourtIndoor     bool
	CoachHourlyRate *Money
	EquipmentFee    Money
	Rules           []Rule
}

type AppliedRule struct {
	Name   string
	Amount Money
}

// Quote is the full price computation with its reporting breakdown.
// Total is the only figure the booking path persists; the breakdown
// fields exist for display and must sum consistently with Total.
type Quote struct {
	CourtFee     Money
	CoachFee     Money
	Base         Money // CourtFee + CoachFee
	EquipmentFee Money
	Applied      []AppliedRule
	Total        Money
}

// Compute prices a candidate booking. Base is duration times combined
// hourly rates; the equipment fee joins the running price before rule
// application; each active applicable rule then multiplies the running
// price by (1 + adjustment/100), exactly once, in SortRules order.
// Intermediate math stays in float64 dollars; every reported figure
// rounds to cents independently and Total rounds from the unrounded
// running price, matching the quote and booking paths to the cent.
func Compute(in QuoteInput) Quote {
	hours := in.Slot.DurationHours()

	courtFee := in.CourtHourlyRate.Dollars() * hours
	coachFee := 0.0
	if in.CoachHourlyRate != nil {
		coachFee = in.CoachHourlyRate.Dollars() * hours
	}
	base := courtFee + coachFee

	rules := make([]Rule, 0, len(in.Rules))
	for _, r := range in.Rules {
		if r.IsActive {
			rules = append(rules, r)
		}
	}
	SortRules(rules)

	running := base + in.EquipmentFee.Dollars()
	var applied []AppliedRule
	for _, rule := range rules {
		if !rule.AppliesTo(in.Date, in.Slot, in.CourtIndoor) {
			continue
		}
		adjustment := running * rule.PercentAdjustment / 100.0
		running += adjustment
		applied = append(applied, AppliedRule{
			Name:   rule.Name,
			Amount: NewMoneyFromDollars(adjustment),
		})
	}

	return Quote{
		CourtFee:     NewMoneyFromDollars(courtFee),
		CoachFee:     NewMoneyFromDollars(coachFee),
		Base:         NewMoneyFromDollars(base),
		EquipmentFee: in.EquipmentFee,
		Applied:      applied,
		Total:        NewMoneyFromDollars(running),
	}
}
