package queries

import (
	"bytes"
	"context"
	"sort"
	"time"

	"badminton-booking/internal/domain/catalog"
	"badminton-booking/internal/domain/pricing"
	"badminton-booking/internal/domain/schedule"
	"badminton-booking/internal/infra"
	"badminton-booking/internal/pkg/errs"
	"badminton-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrQuoteCourtNotFound     = errs.New("court not found")
	ErrQuoteCoachNotFound     = errs.New("coach not found")
	ErrQuoteEquipmentNotFound = errs.New("equipment not found")
	ErrQuoteInvalidQuantity   = errs.New("equipment quantity must be positive")
)

type QuoteRequest struct {
	Date      time.Time
	Slot      schedule.TimeRange
	CourtID   uuid.UUID
	CoachID   *uuid.UUID
	Equipment map[uuid.UUID]int32
}

type QuoteQueries interface {
	// Quote prices a candidate booking without reserving anything. The
	// booking command runs the same reads and the same pricing engine,
	// so both paths produce the same total for identical inputs.
	Quote(ctx context.Context, req QuoteRequest) (*QuoteView, error)
}

type quoteQueriesImpl struct {
	reads shared.CommandReads
}

func NewQuoteQueries(reads shared.CommandReads) QuoteQueries {
	return &quoteQueriesImpl{reads: reads}
}

func (q *quoteQueriesImpl) Quote(ctx context.Context, req QuoteRequest) (*QuoteView, error) {
	court, err := q.reads.CourtByID(ctx, req.CourtID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrQuoteCourtNotFound
		}
		return nil, err
	}

	var coachRate *pricing.Money
	if req.CoachID != nil {
		coach, cerr := q.reads.CoachByID(ctx, *req.CoachID)
		if cerr != nil {
			if infra.IsKind(cerr, infra.KindNotFound) {
				return nil, ErrQuoteCoachNotFound
			}
			return nil, cerr
		}
		rate := pricing.NewMoney(coach.HourlyRateCents)
		coachRate = &rate
	}

	items, err := q.reads.ActiveEquipment(ctx)
	if err != nil {
		return nil, err
	}
	itemsByID := make(map[uuid.UUID]*shared.EquipmentSnapshot, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}

	// Only the requested lines are billed.
	equipmentFee := pricing.NewMoney(0)
	for _, id := range sortedEquipmentIDs(req.Equipment) {
		qty := req.Equipment[id]
		if qty < 0 {
			return nil, ErrQuoteInvalidQuantity
		}
		if qty == 0 {
			continue
		}
		item, ok := itemsByID[id]
		if !ok {
			return nil, ErrQuoteEquipmentNotFound
		}
		equipmentFee = equipmentFee.Add(pricing.NewMoney(item.RentalPriceCents).MulQuantity(qty))
	}

	// The availability section covers the whole active catalog, not
	// just the requested items, so a booking form can render every
	// option for the window.
	availability := make([]EquipmentAvailabilityView, 0, len(items))
	for _, item := range items {
		reserved, eerr := q.reads.ReservedEquipmentQuantity(ctx, item.ID, req.Date, req.Slot)
		if eerr != nil {
			return nil, eerr
		}
		availability = append(availability, EquipmentAvailabilityView{
			EquipmentID: item.ID,
			Name:        item.Name,
			Requested:   req.Equipment[item.ID],
			Available:   availableQuantity(item.TotalQuantity, reserved),
		})
	}

	rules, err := q.reads.ActiveRules(ctx)
	if err != nil {
		return nil, err
	}

	quote := pricing.Compute(pricing.QuoteInput{
		Date:            req.Date,
		Slot:            req.Slot,
		CourtHourlyRate: pricing.NewMoney(court.HourlyRateCents),
		CourtIndoor:     court.CourtType == string(catalog.CourtTypeIndoor),
		CoachHourlyRate: coachRate,
		EquipmentFee:    equipmentFee,
		Rules:           rules,
	})

	applied := make([]AppliedRuleView, len(quote.Applied))
	for i, a := range quote.Applied {
		applied[i] = AppliedRuleView{Name: a.Name, AmountCents: a.Amount.Cents()}
	}

	return &QuoteView{
		BasePriceCents:    quote.Base.Cents(),
		CourtFeeCents:     quote.CourtFee.Cents(),
		CoachFeeCents:     quote.CoachFee.Cents(),
		EquipmentFeeCents: quote.EquipmentFee.Cents(),
		AppliedRules:      applied,
		TotalPriceCents:   quote.Total.Cents(),
		Equipment:         availability,
	}, nil
}

func availableQuantity(total int32, reserved int64) int32 {
	remaining := int64(total) - reserved
	if remaining < 0 {
		return 0
	}
	return int32(remaining)
}

func sortedEquipmentIDs(equipment map[uuid.UUID]int32) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(equipment))
	for id := range equipment {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return ids
}
