package commands

import (
	"bytes"
	"context"
	"sort"
	"time"

	dombooking "badminton-booking/internal/domain/booking"
	"badminton-booking/internal/domain/catalog"
	"badminton-booking/internal/domain/pricing"
	"badminton-booking/internal/domain/schedule"
	"badminton-booking/internal/infra"
	"badminton-booking/internal/pkg/clock"
	"badminton-booking/internal/pkg/errs"
	"badminton-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCourtNotFound           = errs.New("court not found")
	ErrCoachNotFound           = errs.New("coach not found")
	ErrEquipmentNotFound       = errs.New("equipment not found")
	ErrInvalidQuantity         = errs.New("equipment quantity must be positive")
	ErrDateInPast              = errs.New("booking date is in the past")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrBookingNotOwned         = errs.New("booking not owned by user")
	ErrBookingAlreadyCancelled = errs.New("booking already cancelled")
)

// Conflict reasons reported when a booking attempt cannot be confirmed.
const (
	ReasonCourtUnavailable     = "court_unavailable"
	ReasonCoachUnavailable     = "coach_unavailable"
	ReasonEquipmentUnavailable = "equipment_unavailable"
)

type AttemptBookingInput struct {
	UserID        *uuid.UUID
	CustomerName  string
	Date          time.Time
	Slot          schedule.TimeRange
	CourtID       uuid.UUID
	CoachID       *uuid.UUID
	Equipment     map[uuid.UUID]int32
	AllowWaitlist bool
}

// AttemptBookingResult carries one of three outcomes: a confirmed
// booking, a waitlist entry, or a plain conflict (Reason set, nothing
// persisted).
type AttemptBookingResult struct {
	BookingID       *uuid.UUID
	TotalPriceCents int64
	Waitlisted      bool
	WaitlistEntryID *uuid.UUID
	Reason          string
}

type BookingCommands interface {
	AttemptBooking(ctx context.Context, input AttemptBookingInput) (*AttemptBookingResult, error)
	CancelBooking(ctx context.Context, userID uuid.UUID, bookingID uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, clk clock.Clock) BookingCommands {
	return &bookingCommandsImpl{uow: uow, clock: clk}
}

// AttemptBooking validates the request, then runs one transaction:
// lock the court, coach and equipment rows in a fixed order, re-check
// availability under those locks, and either insert a confirmed
// booking or fall back to the waitlist. Serialization failures retry
// inside the unit of work and never reach the caller.
func (b *bookingCommandsImpl) AttemptBooking(ctx context.Context, input AttemptBookingInput) (*AttemptBookingResult, error) {
	lines, err := normalizeEquipment(input.Equipment)
	if err != nil {
		return nil, err
	}

	if schedule.Date(input.Date).Before(schedule.Date(b.clock.Now())) {
		return nil, ErrDateInPast
	}

	// Resolve catalog snapshots before taking any lock so unknown ids
	// fail fast without touching contended rows. The authoritative
	// read happens again under the locks.
	if _, _, _, rerr := b.resolveResources(ctx, b.uow.CommandReads(), input.CourtID, input.CoachID, lines); rerr != nil {
		return nil, rerr
	}

	result := &AttemptBookingResult{}
	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// The unit of work re-runs this closure after a retryable
		// rollback; each attempt starts from a clean result.
		*result = AttemptBookingResult{}

		if lerr := b.lockResources(ctx, tx, input.CourtID, input.CoachID, lines); lerr != nil {
			return lerr
		}

		// Re-read rates and quantities under the locks so a
		// concurrent catalog edit cannot price a stale rate in.
		court, coach, equipment, rerr := b.resolveResources(ctx, tx.Reads(), input.CourtID, input.CoachID, lines)
		if rerr != nil {
			return rerr
		}

		reason, cerr := b.checkAvailability(ctx, tx.Reads(), input, equipment, lines)
		if cerr != nil {
			return cerr
		}

		if reason != "" {
			result.Reason = reason
			if !input.AllowWaitlist {
				return nil
			}
			entry, werr := dombooking.NewWaitlistEntry(input.Date, input.Slot, input.CourtID, input.CustomerName)
			if werr != nil {
				return errs.Mark(werr, ErrDomainValidation)
			}
			entryID, werr := tx.Waitlist().Create(ctx, tx.DB(), entry)
			if werr != nil {
				return werr
			}
			result.Waitlisted = true
			result.WaitlistEntryID = &entryID
			return nil
		}

		rules, rerr := tx.Reads().ActiveRules(ctx)
		if rerr != nil {
			return rerr
		}

		total := b.price(input, court, coach, equipment, lines, rules)
		entity, derr := dombooking.NewBooking(
			input.UserID,
			input.CustomerName,
			input.Date,
			input.Slot,
			input.CourtID,
			input.CoachID,
			total,
			lines,
		)
		if derr != nil {
			return errs.Mark(derr, ErrDomainValidation)
		}

		bookingID, berr := tx.Bookings().Create(ctx, tx.DB(), entity)
		if berr != nil {
			return berr
		}
		result.BookingID = &bookingID
		result.TotalPriceCents = total.Cents()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (b *bookingCommandsImpl) CancelBooking(ctx context.Context, userID uuid.UUID, bookingID uuid.UUID) error {
	return b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Bookings().FindByIDForUpdate(ctx, tx.DB(), bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if snap.UserID == nil || *snap.UserID != userID {
			return ErrBookingNotOwned
		}
		if snap.Status == string(dombooking.StatusCancelled) {
			return ErrBookingAlreadyCancelled
		}
		return tx.Bookings().SetStatus(ctx, tx.DB(), bookingID, dombooking.StatusCancelled)
	})
}

// normalizeEquipment drops zero-quantity selections and rejects
// negative ones, returning deterministic id-sorted lines.
func normalizeEquipment(equipment map[uuid.UUID]int32) ([]dombooking.EquipmentLine, error) {
	lines := make([]dombooking.EquipmentLine, 0, len(equipment))
	for id, qty := range equipment {
		if qty < 0 {
			return nil, ErrInvalidQuantity
		}
		if qty == 0 {
			continue
		}
		lines = append(lines, dombooking.EquipmentLine{EquipmentID: id, Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool {
		return bytes.Compare(lines[i].EquipmentID[:], lines[j].EquipmentID[:]) < 0
	})
	return lines, nil
}

func (b *bookingCommandsImpl) resolveResources(
	ctx context.Context,
	reads shared.CommandReads,
	courtID uuid.UUID,
	coachID *uuid.UUID,
	lines []dombooking.EquipmentLine,
) (*shared.CourtSnapshot, *shared.CoachSnapshot, map[uuid.UUID]*shared.EquipmentSnapshot, error) {
	court, err := reads.CourtByID(ctx, courtID)
	if err != nil || !court.IsActive {
		if err == nil || infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, nil, ErrCourtNotFound
		}
		return nil, nil, nil, err
	}

	var coach *shared.CoachSnapshot
	if coachID != nil {
		coach, err = reads.CoachByID(ctx, *coachID)
		if err != nil || !coach.IsActive {
			if err == nil || infra.IsKind(err, infra.KindNotFound) {
				return nil, nil, nil, ErrCoachNotFound
			}
			return nil, nil, nil, err
		}
	}

	equipment := make(map[uuid.UUID]*shared.EquipmentSnapshot, len(lines))
	for _, line := range lines {
		item, eerr := reads.EquipmentByID(ctx, line.EquipmentID)
		if eerr != nil || !item.IsActive {
			if eerr == nil || infra.IsKind(eerr, infra.KindNotFound) {
				return nil, nil, nil, ErrEquipmentNotFound
			}
			return nil, nil, nil, eerr
		}
		equipment[line.EquipmentID] = item
	}

	return court, coach, equipment, nil
}

// lockResources pins every contended row with FOR UPDATE in a fixed
// global order (court, coach, equipment by id) so concurrent attempts
// serialize instead of deadlocking.
func (b *bookingCommandsImpl) lockResources(
	ctx context.Context,
	tx shared.Tx,
	courtID uuid.UUID,
	coachID *uuid.UUID,
	lines []dombooking.EquipmentLine,
) error {
	if err := tx.Locks().LockCourt(ctx, tx.DB(), courtID); err != nil {
		return err
	}
	if coachID != nil {
		if err := tx.Locks().LockCoach(ctx, tx.DB(), *coachID); err != nil {
			return err
		}
	}
	if len(lines) > 0 {
		ids := make([]uuid.UUID, len(lines))
		for i, line := range lines {
			ids[i] = line.EquipmentID
		}
		return tx.Locks().LockEquipment(ctx, tx.DB(), ids)
	}
	return nil
}

func (b *bookingCommandsImpl) checkAvailability(
	ctx context.Context,
	reads shared.CommandReads,
	input AttemptBookingInput,
	equipment map[uuid.UUID]*shared.EquipmentSnapshot,
	lines []dombooking.EquipmentLine,
) (string, error) {
	conflict, err := reads.HasCourtConflict(ctx, input.CourtID, input.Date, input.Slot)
	if err != nil {
		return "", err
	}
	if conflict {
		return ReasonCourtUnavailable, nil
	}

	if input.CoachID != nil {
		covered, cerr := reads.CoachWindowCovers(ctx, *input.CoachID, input.Date, input.Slot)
		if cerr != nil {
			return "", cerr
		}
		if !covered {
			return ReasonCoachUnavailable, nil
		}
		conflict, cerr = reads.HasCoachConflict(ctx, *input.CoachID, input.Date, input.Slot)
		if cerr != nil {
			return "", cerr
		}
		if conflict {
			return ReasonCoachUnavailable, nil
		}
	}

	for _, line := range lines {
		reserved, eerr := reads.ReservedEquipmentQuantity(ctx, line.EquipmentID, input.Date, input.Slot)
		if eerr != nil {
			return "", eerr
		}
		remaining := int64(equipment[line.EquipmentID].TotalQuantity) - reserved
		if remaining < int64(line.Quantity) {
			return ReasonEquipmentUnavailable, nil
		}
	}

	return "", nil
}

func (b *bookingCommandsImpl) price(
	input AttemptBookingInput,
	court *shared.CourtSnapshot,
	coach *shared.CoachSnapshot,
	equipment map[uuid.UUID]*shared.EquipmentSnapshot,
	lines []dombooking.EquipmentLine,
	rules []pricing.Rule,
) pricing.Money {
	var coachRate *pricing.Money
	if coach != nil {
		rate := pricing.NewMoney(coach.HourlyRateCents)
		coachRate = &rate
	}

	equipmentFee := pricing.NewMoney(0)
	for _, line := range lines {
		price := pricing.NewMoney(equipment[line.EquipmentID].RentalPriceCents)
		equipmentFee = equipmentFee.Add(price.MulQuantity(line.Quantity))
	}

	quote := pricing.Compute(pricing.QuoteInput{
		Date:            input.Date,
		Slot:            input.Slot,
		CourtHourlyRate: pricing.NewMoney(court.HourlyRateCents),
		CourtIndoor:     court.CourtType == string(catalog.CourtTypeIndoor),
		CoachHourlyRate: coachRate,
		EquipmentFee:    equipmentFee,
		Rules:           rules,
	})
	return quote.Total
}
