//go:build unit

package commands_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"badminton-booking/internal/domain/account"
	dombooking "badminton-booking/internal/domain/booking"
	"badminton-booking/internal/domain/pricing"
	"badminton-booking/internal/domain/schedule"
	"badminton-booking/internal/infra"
	"badminton-booking/internal/infra/db"
	"badminton-booking/internal/pkg/clock"
	"badminton-booking/internal/usecase/commands"
	"badminton-booking/internal/usecase/queries"
	"badminton-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore backs the unit-of-work ports with in-memory state. Within
// holds one mutex for the whole callback, which serializes concurrent
// transactions the same way row locks do against postgres.
type fakeStore struct {
	mu        sync.Mutex
	courts    map[uuid.UUID]*shared.CourtSnapshot
	coaches   map[uuid.UUID]*shared.CoachSnapshot
	equipment map[uuid.UUID]*shared.EquipmentSnapshot
	windows   map[uuid.UUID][]fakeWindow
	rules     []pricing.Rule
	bookings  map[uuid.UUID]*storedBooking
	waitlist  []*dombooking.WaitlistEntry
}

type fakeWindow struct {
	date time.Time
	slot schedule.TimeRange
}

type storedBooking struct {
	id      uuid.UUID
	userID  *uuid.UUID
	date    time.Time
	slot    schedule.TimeRange
	courtID uuid.UUID
	coachID *uuid.UUID
	lines   []dombooking.EquipmentLine
	total   pricing.Money
	status  dombooking.Status
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		courts:    make(map[uuid.UUID]*shared.CourtSnapshot),
		coaches:   make(map[uuid.UUID]*shared.CoachSnapshot),
		equipment: make(map[uuid.UUID]*shared.EquipmentSnapshot),
		windows:   make(map[uuid.UUID][]fakeWindow),
		bookings:  make(map[uuid.UUID]*storedBooking),
	}
}

type fakeUoW struct {
	store *fakeStore
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *fakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &lockingReads{store: u.store}
}

type storeState struct {
	bookings map[uuid.UUID]*storedBooking
	waitlist []*dombooking.WaitlistEntry
}

func (s *fakeStore) snapshot() storeState {
	bookings := make(map[uuid.UUID]*storedBooking, len(s.bookings))
	for id, b := range s.bookings {
		copied := *b
		bookings[id] = &copied
	}
	return storeState{
		bookings: bookings,
		waitlist: append([]*dombooking.WaitlistEntry(nil), s.waitlist...),
	}
}

func (s *fakeStore) restore(state storeState) {
	s.bookings = state.bookings
	s.waitlist = state.waitlist
}

// retryingUoW runs the closure once, discards its writes, and runs it
// again, the way the postgres unit of work retries after a
// serialization failure rolls the first attempt back.
type retryingUoW struct {
	store   *fakeStore
	between func(store *fakeStore)
}

func (u *retryingUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	saved := u.store.snapshot()
	_ = fn(ctx, &fakeTx{store: u.store})
	u.store.restore(saved)
	if u.between != nil {
		u.between(u.store)
	}
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *retryingUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *retryingUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *retryingUoW) CommandReads() shared.CommandReads {
	return &lockingReads{store: u.store}
}

// mutatingUoW applies a store edit after validation but before the
// transaction closure runs, standing in for a catalog change committed
// by another connection in that window.
type mutatingUoW struct {
	store  *fakeStore
	mutate func(store *fakeStore)
}

func (u *mutatingUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.mutate(u.store)
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *mutatingUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *mutatingUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *mutatingUoW) CommandReads() shared.CommandReads {
	return &lockingReads{store: u.store}
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Bookings() shared.BookingRepository      { return &fakeBookingRepo{store: t.store} }
func (t *fakeTx) Waitlist() shared.WaitlistRepository     { return &fakeWaitlistRepo{store: t.store} }
func (t *fakeTx) Locks() shared.ResourceLockRepository    { return &fakeLockRepo{} }
func (t *fakeTx) Users() shared.UserRepository            { return &fakeUserRepo{} }
func (t *fakeTx) Reads() shared.CommandReads              { return &bareReads{store: t.store} }
func (t *fakeTx) DB() db.DBTX                             { return nil }

// bareReads runs against the store without touching the mutex; it is
// only handed out inside Within, where the mutex is already held.
type bareReads struct {
	store *fakeStore
}

// lockingReads wraps bareReads for callers outside a transaction.
type lockingReads struct {
	store *fakeStore
}

func (r *lockingReads) locked() (*bareReads, func()) {
	r.store.mu.Lock()
	return &bareReads{store: r.store}, r.store.mu.Unlock
}

func (r *bareReads) CourtByID(_ context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
	c, ok := r.store.courts[id]
	if !ok {
		return nil, infra.WrapRepoErr("court not found", nil, infra.KindNotFound)
	}
	return c, nil
}

func (r *bareReads) CoachByID(_ context.Context, id uuid.UUID) (*shared.CoachSnapshot, error) {
	c, ok := r.store.coaches[id]
	if !ok {
		return nil, infra.WrapRepoErr("coach not found", nil, infra.KindNotFound)
	}
	return c, nil
}

func (r *bareReads) EquipmentByID(_ context.Context, id uuid.UUID) (*shared.EquipmentSnapshot, error) {
	e, ok := r.store.equipment[id]
	if !ok {
		return nil, infra.WrapRepoErr("equipment not found", nil, infra.KindNotFound)
	}
	return e, nil
}

func (r *bareReads) UserByEmail(_ context.Context, _ string) (*shared.UserSnapshot, error) {
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

func (r *bareReads) ActiveEquipment(_ context.Context) ([]*shared.EquipmentSnapshot, error) {
	items := make([]*shared.EquipmentSnapshot, 0, len(r.store.equipment))
	for _, e := range r.store.equipment {
		if e.IsActive {
			items = append(items, e)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r *bareReads) HasCourtConflict(_ context.Context, courtID uuid.UUID, date time.Time, slot schedule.TimeRange) (bool, error) {
	for _, b := range r.store.bookings {
		if b.status == dombooking.StatusConfirmed && b.courtID == courtID && b.date.Equal(schedule.Date(date)) && b.slot.Overlaps(slot) {
			return true, nil
		}
	}
	return false, nil
}

func (r *bareReads) HasCoachConflict(_ context.Context, coachID uuid.UUID, date time.Time, slot schedule.TimeRange) (bool, error) {
	for _, b := range r.store.bookings {
		if b.status == dombooking.StatusConfirmed && b.coachID != nil && *b.coachID == coachID && b.date.Equal(schedule.Date(date)) && b.slot.Overlaps(slot) {
			return true, nil
		}
	}
	return false, nil
}

func (r *bareReads) CoachWindowCovers(_ context.Context, coachID uuid.UUID, date time.Time, slot schedule.TimeRange) (bool, error) {
	for _, w := range r.store.windows[coachID] {
		if w.date.Equal(schedule.Date(date)) && w.slot.Contains(slot) {
			return true, nil
		}
	}
	return false, nil
}

func (r *bareReads) ReservedEquipmentQuantity(_ context.Context, equipmentID uuid.UUID, date time.Time, slot schedule.TimeRange) (int64, error) {
	var reserved int64
	for _, b := range r.store.bookings {
		if b.status != dombooking.StatusConfirmed || !b.date.Equal(schedule.Date(date)) || !b.slot.Overlaps(slot) {
			continue
		}
		for _, line := range b.lines {
			if line.EquipmentID == equipmentID {
				reserved += int64(line.Quantity)
			}
		}
	}
	return reserved, nil
}

func (r *bareReads) ActiveRules(_ context.Context) ([]pricing.Rule, error) {
	return r.store.rules, nil
}

func (r *lockingReads) CourtByID(ctx context.Context, id uuid.UUID) (*shared.CourtSnapshot, error) {
	reads, unlock := r.locked()
	defer unlock()
	return reads.CourtByID(ctx, id)
}

func (r *lockingReads) CoachByID(ctx context.Context, id uuid.UUID) (*shared.CoachSnapshot, error) {
	reads, unlock := r.locked()
	defer unlock()
	return reads.CoachByID(ctx, id)
}

func (r *lockingReads) EquipmentByID(ctx context.Context, id uuid.UUID) (*shared.EquipmentSnapshot, error) {
	reads, unlock := r.locked()
	defer unlock()
	return reads.EquipmentByID(ctx, id)
}

func (r *lockingReads) UserByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	reads, unlock := r.locked()
	defer unlock()
	return reads.UserByEmail(ctx, email)
}

func (r *lockingReads) ActiveEquipment(ctx context.Context) ([]*shared.EquipmentSnapshot, error) {
	reads, unlock := r.locked()
	defer unlock()
	return reads.ActiveEquipment(ctx)
}

func (r *lockingReads) HasCourtConflict(ctx context.Context, courtID uuid.UUID, date time.Time, slot schedule.TimeRange) (bool, error) {
	reads, unlock := r.locked()
	defer unlock()
	return reads.HasCourtConflict(ctx, courtID, date, slot)
}

func (r *lockingReads) HasCoachConflict(ctx context.Context, coachID uuid.UUID, date time.Time, slot schedule.TimeRange) (bool, error) {
	reads, unlock := r.locked()
	defer unlock()
	return reads.HasCoachConflict(ctx, coachID, date, slot)
}

func (r *lockingReads) CoachWindowCovers(ctx context.Context, coachID uuid.UUID, date time.Time, slot schedule.TimeRange) (bool, error) {
	reads, unlock := r.locked()
	defer unlock()
	return reads.CoachWindowCovers(ctx, coachID, date, slot)
}

func (r *lockingReads) ReservedEquipmentQuantity(ctx context.Context, equipmentID uuid.UUID, date time.Time, slot schedule.TimeRange) (int64, error) {
	reads, unlock := r.locked()
	defer unlock()
	return reads.ReservedEquipmentQuantity(ctx, equipmentID, date, slot)
}

func (r *lockingReads) ActiveRules(ctx context.Context) ([]pricing.Rule, error) {
	reads, unlock := r.locked()
	defer unlock()
	return reads.ActiveRules(ctx)
}

type fakeBookingRepo struct {
	store *fakeStore
}

func (f *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, b *dombooking.Booking) (uuid.UUID, error) {
	stored := &storedBooking{
		id:      b.ID(),
		userID:  b.UserID(),
		date:    b.Date(),
		slot:    b.Slot(),
		courtID: b.CourtID(),
		coachID: b.CoachID(),
		lines:   b.Equipment(),
		total:   b.TotalPrice(),
		status:  b.Status(),
	}
	f.store.bookings[stored.id] = stored
	return stored.id, nil
}

func (f *fakeBookingRepo) FindByIDForUpdate(_ context.Context, _ db.DBTX, id uuid.UUID) (*shared.BookingSnapshot, error) {
	b, ok := f.store.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return bookingSnapshot(b), nil
}

func (f *fakeBookingRepo) SetStatus(_ context.Context, _ db.DBTX, id uuid.UUID, status dombooking.Status) error {
	b, ok := f.store.bookings[id]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	b.status = status
	return nil
}

func bookingSnapshot(b *storedBooking) *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:      b.id,
		UserID:  b.userID,
		Date:    b.date,
		Slot:    b.slot,
		CourtID: b.courtID,
		CoachID: b.coachID,
		Status:  string(b.status),
	}
}

type fakeWaitlistRepo struct {
	store *fakeStore
}

func (f *fakeWaitlistRepo) Create(_ context.Context, _ db.DBTX, entry *dombooking.WaitlistEntry) (uuid.UUID, error) {
	f.store.waitlist = append(f.store.waitlist, entry)
	return entry.ID(), nil
}

type fakeLockRepo struct{}

func (f *fakeLockRepo) LockCourt(_ context.Context, _ db.DBTX, _ uuid.UUID) error { return nil }
func (f *fakeLockRepo) LockCoach(_ context.Context, _ db.DBTX, _ uuid.UUID) error { return nil }
func (f *fakeLockRepo) LockEquipment(_ context.Context, _ db.DBTX, _ []uuid.UUID) error {
	return nil
}

type fakeUserRepo struct{}

func (f *fakeUserRepo) Create(_ context.Context, _ db.DBTX, _ *account.User) (uuid.UUID, error) {
	return uuid.New(), nil
}

// --- fixtures ---

var (
	bookingDay = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC) // Monday
	weekendDay = time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC) // Saturday
)

type fixture struct {
	store     *fakeStore
	uc        commands.BookingCommands
	uow       *fakeUoW
	courtID   uuid.UUID
	coachID   uuid.UUID
	racketsID uuid.UUID
	userID    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newFakeStore()

	courtID := uuid.New()
	store.courts[courtID] = &shared.CourtSnapshot{
		ID:              courtID,
		Name:            "Court 1",
		CourtType:       "indoor",
		HourlyRateCents: 40000,
		IsActive:        true,
	}

	coachID := uuid.New()
	store.coaches[coachID] = &shared.CoachSnapshot{
		ID:              coachID,
		Name:            "Coach Lin",
		HourlyRateCents: 50000,
		IsActive:        true,
	}
	store.windows[coachID] = []fakeWindow{
		{date: bookingDay, slot: mustRange(t, 8, 20)},
		{date: weekendDay, slot: mustRange(t, 8, 20)},
	}

	racketsID := uuid.New()
	store.equipment[racketsID] = &shared.EquipmentSnapshot{
		ID:               racketsID,
		Name:             "Racket",
		TotalQuantity:    2,
		RentalPriceCents: 5000,
		IsActive:         true,
	}

	store.rules = []pricing.Rule{
		{
			ID:                uuid.New(),
			Name:              "Indoor Premium",
			Type:              pricing.RuleIndoorPremium,
			PercentAdjustment: 15,
			Priority:          30,
			CreatedAt:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			IsActive:          true,
		},
		{
			ID:                uuid.New(),
			Name:              "Weekend Rate",
			Type:              pricing.RuleWeekend,
			PercentAdjustment: 20,
			Priority:          20,
			CreatedAt:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			IsActive:          true,
		},
	}

	uow := &fakeUoW{store: store}
	clk := clock.NewMockClock(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))
	return &fixture{
		store:     store,
		uc:        commands.NewBookingCommands(uow, clk),
		uow:       uow,
		courtID:   courtID,
		coachID:   coachID,
		racketsID: racketsID,
		userID:    uuid.New(),
	}
}

func mustRange(t *testing.T, startHour, endHour int) schedule.TimeRange {
	t.Helper()
	start, err := schedule.NewTimeOfDay(startHour, 0)
	require.NoError(t, err)
	end, err := schedule.NewTimeOfDay(endHour, 0)
	require.NoError(t, err)
	r, err := schedule.NewTimeRange(start, end)
	require.NoError(t, err)
	return r
}

func (f *fixture) input(t *testing.T, startHour, endHour int) commands.AttemptBookingInput {
	t.Helper()
	return commands.AttemptBookingInput{
		UserID:       &f.userID,
		CustomerName: "Mika Tanaka",
		Date:         bookingDay,
		Slot:         mustRange(t, startHour, endHour),
		CourtID:      f.courtID,
	}
}

func TestAttemptBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("confirms a free slot and prices it", func(t *testing.T) {
		f := newFixture(t)

		result, err := f.uc.AttemptBooking(ctx, f.input(t, 10, 11))
		require.NoError(t, err)
		require.NotNil(t, result.BookingID)
		assert.False(t, result.Waitlisted)
		assert.Empty(t, result.Reason)
		// 400 * 1.15 (indoor, weekday)
		assert.Equal(t, int64(46000), result.TotalPriceCents)
	})

	t.Run("weekend total compounds rules", func(t *testing.T) {
		f := newFixture(t)
		input := f.input(t, 10, 11)
		input.Date = weekendDay

		result, err := f.uc.AttemptBooking(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, result.BookingID)
		// 400 * 1.20 * 1.15
		assert.Equal(t, int64(55200), result.TotalPriceCents)
	})

	t.Run("booking command and quote query agree on the total", func(t *testing.T) {
		f := newFixture(t)
		quoter := queries.NewQuoteQueries(f.uow.CommandReads())

		quote, err := quoter.Quote(ctx, queries.QuoteRequest{
			Date:      weekendDay,
			Slot:      mustRange(t, 18, 20),
			CourtID:   f.courtID,
			CoachID:   &f.coachID,
			Equipment: map[uuid.UUID]int32{f.racketsID: 2},
		})
		require.NoError(t, err)

		input := f.input(t, 18, 20)
		input.Date = weekendDay
		input.CoachID = &f.coachID
		input.Equipment = map[uuid.UUID]int32{f.racketsID: 2}

		result, err := f.uc.AttemptBooking(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, result.BookingID)
		assert.Equal(t, quote.TotalPriceCents, result.TotalPriceCents)
	})

	t.Run("conflict without waitlist persists nothing", func(t *testing.T) {
		f := newFixture(t)

		first, err := f.uc.AttemptBooking(ctx, f.input(t, 10, 11))
		require.NoError(t, err)
		require.NotNil(t, first.BookingID)

		second, err := f.uc.AttemptBooking(ctx, f.input(t, 10, 11))
		require.NoError(t, err)
		assert.Nil(t, second.BookingID)
		assert.False(t, second.Waitlisted)
		assert.Equal(t, commands.ReasonCourtUnavailable, second.Reason)
		assert.Len(t, f.store.bookings, 1)
		assert.Empty(t, f.store.waitlist)
	})

	t.Run("adjacent slots do not conflict", func(t *testing.T) {
		f := newFixture(t)

		first, err := f.uc.AttemptBooking(ctx, f.input(t, 10, 11))
		require.NoError(t, err)
		require.NotNil(t, first.BookingID)

		second, err := f.uc.AttemptBooking(ctx, f.input(t, 11, 12))
		require.NoError(t, err)
		require.NotNil(t, second.BookingID)
	})

	t.Run("zero quantity lines are dropped", func(t *testing.T) {
		f := newFixture(t)
		input := f.input(t, 10, 11)
		input.Equipment = map[uuid.UUID]int32{f.racketsID: 0}

		result, err := f.uc.AttemptBooking(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, result.BookingID)
		assert.Equal(t, int64(46000), result.TotalPriceCents)
		assert.Empty(t, f.store.bookings[*result.BookingID].lines)
	})

	t.Run("negative quantity rejected before any lock", func(t *testing.T) {
		f := newFixture(t)
		input := f.input(t, 10, 11)
		input.Equipment = map[uuid.UUID]int32{f.racketsID: -1}

		_, err := f.uc.AttemptBooking(ctx, input)
		require.ErrorIs(t, err, commands.ErrInvalidQuantity)
		assert.Empty(t, f.store.bookings)
	})

	t.Run("unknown court rejected", func(t *testing.T) {
		f := newFixture(t)
		input := f.input(t, 10, 11)
		input.CourtID = uuid.New()

		_, err := f.uc.AttemptBooking(ctx, input)
		require.ErrorIs(t, err, commands.ErrCourtNotFound)
	})

	t.Run("past date rejected", func(t *testing.T) {
		f := newFixture(t)
		input := f.input(t, 10, 11)
		input.Date = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

		_, err := f.uc.AttemptBooking(ctx, input)
		require.ErrorIs(t, err, commands.ErrDateInPast)
	})

	t.Run("coach outside every window goes to waitlist", func(t *testing.T) {
		f := newFixture(t)
		input := f.input(t, 6, 7) // windows start at 08:00
		input.CoachID = &f.coachID
		input.AllowWaitlist = true

		result, err := f.uc.AttemptBooking(ctx, input)
		require.NoError(t, err)
		assert.Nil(t, result.BookingID)
		assert.True(t, result.Waitlisted)
		assert.Equal(t, commands.ReasonCoachUnavailable, result.Reason)
		require.Len(t, f.store.waitlist, 1)
	})

	t.Run("double-booked coach conflicts across courts", func(t *testing.T) {
		f := newFixture(t)

		secondCourt := uuid.New()
		f.store.courts[secondCourt] = &shared.CourtSnapshot{
			ID: secondCourt, Name: "Court 2", CourtType: "outdoor", HourlyRateCents: 30000, IsActive: true,
		}

		input := f.input(t, 10, 11)
		input.CoachID = &f.coachID
		first, err := f.uc.AttemptBooking(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, first.BookingID)

		input2 := f.input(t, 10, 11)
		input2.CourtID = secondCourt
		input2.CoachID = &f.coachID
		second, err := f.uc.AttemptBooking(ctx, input2)
		require.NoError(t, err)
		assert.Nil(t, second.BookingID)
		assert.Equal(t, commands.ReasonCoachUnavailable, second.Reason)
	})

	t.Run("equipment exhaustion falls back to waitlist", func(t *testing.T) {
		f := newFixture(t)

		input := f.input(t, 10, 11)
		input.Equipment = map[uuid.UUID]int32{f.racketsID: 2}
		first, err := f.uc.AttemptBooking(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, first.BookingID)

		secondCourt := uuid.New()
		f.store.courts[secondCourt] = &shared.CourtSnapshot{
			ID: secondCourt, Name: "Court 2", CourtType: "indoor", HourlyRateCents: 40000, IsActive: true,
		}
		input2 := f.input(t, 10, 11)
		input2.CourtID = secondCourt
		input2.Equipment = map[uuid.UUID]int32{f.racketsID: 1}
		input2.AllowWaitlist = true

		second, err := f.uc.AttemptBooking(ctx, input2)
		require.NoError(t, err)
		assert.Nil(t, second.BookingID)
		assert.True(t, second.Waitlisted)
		assert.Equal(t, commands.ReasonEquipmentUnavailable, second.Reason)
	})

	t.Run("concurrent attempts yield one booking and one waitlist entry", func(t *testing.T) {
		f := newFixture(t)

		var wg sync.WaitGroup
		results := make([]*commands.AttemptBookingResult, 2)
		errs := make([]error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				input := f.input(t, 10, 11)
				input.AllowWaitlist = true
				results[i], errs[i] = f.uc.AttemptBooking(ctx, input)
			}(i)
		}
		wg.Wait()

		require.NoError(t, errs[0])
		require.NoError(t, errs[1])

		confirmed := 0
		waitlisted := 0
		for _, r := range results {
			if r.BookingID != nil {
				confirmed++
			}
			if r.Waitlisted {
				waitlisted++
			}
		}
		assert.Equal(t, 1, confirmed)
		assert.Equal(t, 1, waitlisted)
		assert.Len(t, f.store.bookings, 1)
		assert.Len(t, f.store.waitlist, 1)
	})

	t.Run("retried transaction does not leak the rolled-back outcome", func(t *testing.T) {
		f := newFixture(t)

		// Occupy the slot so the first attempt lands on the waitlist,
		// then free it before the retry runs.
		blocker, err := f.uc.AttemptBooking(ctx, f.input(t, 10, 11))
		require.NoError(t, err)
		require.NotNil(t, blocker.BookingID)

		retrying := &retryingUoW{store: f.store, between: func(store *fakeStore) {
			store.bookings[*blocker.BookingID].status = dombooking.StatusCancelled
		}}
		uc := commands.NewBookingCommands(retrying, clock.NewMockClock(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)))

		input := f.input(t, 10, 11)
		input.AllowWaitlist = true
		result, err := uc.AttemptBooking(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, result.BookingID)
		assert.False(t, result.Waitlisted)
		assert.Nil(t, result.WaitlistEntryID)
		assert.Empty(t, result.Reason)
		assert.Empty(t, f.store.waitlist)
	})

	t.Run("prices the rate read under the lock", func(t *testing.T) {
		f := newFixture(t)

		raised := &mutatingUoW{store: f.store, mutate: func(store *fakeStore) {
			store.courts[f.courtID].HourlyRateCents = 60000
		}}
		uc := commands.NewBookingCommands(raised, clock.NewMockClock(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)))

		result, err := uc.AttemptBooking(ctx, f.input(t, 10, 11))
		require.NoError(t, err)
		require.NotNil(t, result.BookingID)
		// 600 * 1.15, not the 400 rate seen during validation
		assert.Equal(t, int64(69000), result.TotalPriceCents)
	})
}

func TestQuoteEquipmentAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("lists every active item whether requested or not", func(t *testing.T) {
		f := newFixture(t)

		shoesID := uuid.New()
		f.store.equipment[shoesID] = &shared.EquipmentSnapshot{
			ID: shoesID, Name: "Shoes", TotalQuantity: 10, RentalPriceCents: 3000, IsActive: true,
		}
		retiredID := uuid.New()
		f.store.equipment[retiredID] = &shared.EquipmentSnapshot{
			ID: retiredID, Name: "Worn Net", TotalQuantity: 4, RentalPriceCents: 1000, IsActive: false,
		}

		quoter := queries.NewQuoteQueries(f.uow.CommandReads())
		quote, err := quoter.Quote(ctx, queries.QuoteRequest{
			Date:      bookingDay,
			Slot:      mustRange(t, 10, 11),
			CourtID:   f.courtID,
			Equipment: map[uuid.UUID]int32{f.racketsID: 1},
		})
		require.NoError(t, err)

		require.Len(t, quote.Equipment, 2)
		byName := make(map[string]queries.EquipmentAvailabilityView, len(quote.Equipment))
		for _, item := range quote.Equipment {
			byName[item.Name] = item
		}
		assert.Equal(t, int32(1), byName["Racket"].Requested)
		assert.Equal(t, int32(2), byName["Racket"].Available)
		assert.Equal(t, int32(0), byName["Shoes"].Requested)
		assert.Equal(t, int32(10), byName["Shoes"].Available)
		// Only the requested line is billed.
		assert.Equal(t, int64(5000), quote.EquipmentFeeCents)
	})

	t.Run("requesting a retired item fails", func(t *testing.T) {
		f := newFixture(t)

		retiredID := uuid.New()
		f.store.equipment[retiredID] = &shared.EquipmentSnapshot{
			ID: retiredID, Name: "Worn Net", TotalQuantity: 4, RentalPriceCents: 1000, IsActive: false,
		}

		quoter := queries.NewQuoteQueries(f.uow.CommandReads())
		_, err := quoter.Quote(ctx, queries.QuoteRequest{
			Date:      bookingDay,
			Slot:      mustRange(t, 10, 11),
			CourtID:   f.courtID,
			Equipment: map[uuid.UUID]int32{retiredID: 1},
		})
		require.ErrorIs(t, err, queries.ErrQuoteEquipmentNotFound)
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels and the slot frees up", func(t *testing.T) {
		f := newFixture(t)

		first, err := f.uc.AttemptBooking(ctx, f.input(t, 10, 11))
		require.NoError(t, err)
		require.NotNil(t, first.BookingID)

		require.NoError(t, f.uc.CancelBooking(ctx, f.userID, *first.BookingID))

		second, err := f.uc.AttemptBooking(ctx, f.input(t, 10, 11))
		require.NoError(t, err)
		require.NotNil(t, second.BookingID)
	})

	t.Run("cancel is idempotent only in error form", func(t *testing.T) {
		f := newFixture(t)

		first, err := f.uc.AttemptBooking(ctx, f.input(t, 10, 11))
		require.NoError(t, err)

		require.NoError(t, f.uc.CancelBooking(ctx, f.userID, *first.BookingID))
		require.ErrorIs(t, f.uc.CancelBooking(ctx, f.userID, *first.BookingID), commands.ErrBookingAlreadyCancelled)
	})

	t.Run("only the owner can cancel", func(t *testing.T) {
		f := newFixture(t)

		first, err := f.uc.AttemptBooking(ctx, f.input(t, 10, 11))
		require.NoError(t, err)

		require.ErrorIs(t, f.uc.CancelBooking(ctx, uuid.New(), *first.BookingID), commands.ErrBookingNotOwned)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)
		require.ErrorIs(t, f.uc.CancelBooking(ctx, f.userID, uuid.New()), commands.ErrBookingNotFound)
	})
}
