//go:build unit

package booking_test

import (
	"testing"
	"time"

	"badminton-booking/internal/domain/booking"
	"badminton-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusConfirmed, actual.Status())
		assert.True(t, actual.IsConfirmed())
		assert.Equal(t, "Mika Tanaka", actual.CustomerName())
		assert.Equal(t, "400.00", actual.TotalPrice().String())
		assert.Zero(t, actual.Date().Hour())
	})

	t.Run("validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty customer name",
				mutate: func(b *builder.BookingBuilder) { b.CustomerName = "" },
				errIs:  booking.ErrEmptyCustomerName,
			},
			{
				name:   "whitespace customer name",
				mutate: func(b *builder.BookingBuilder) { b.CustomerName = "   " },
				errIs:  booking.ErrEmptyCustomerName,
			},
			{
				name:   "negative total",
				mutate: func(b *builder.BookingBuilder) { b.TotalCents = -100 },
				errIs:  booking.ErrNegativePrice,
			},
			{
				name: "zero equipment quantity",
				mutate: func(b *builder.BookingBuilder) {
					b.Equipment = []booking.EquipmentLine{{EquipmentID: uuid.New(), Quantity: 0}}
				},
				errIs: booking.ErrInvalidQuantity,
			},
			{
				name: "duplicate equipment line",
				mutate: func(b *builder.BookingBuilder) {
					id := uuid.New()
					b.Equipment = []booking.EquipmentLine{
						{EquipmentID: id, Quantity: 1},
						{EquipmentID: id, Quantity: 2},
					}
				},
				errIs: booking.ErrDuplicateLine,
			},
			{
				name:   "anonymous walk-in without account",
				mutate: func(b *builder.BookingBuilder) { b.UserID = nil },
			},
			{
				name: "equipment lines accepted",
				mutate: func(b *builder.BookingBuilder) {
					b.Equipment = []booking.EquipmentLine{
						{EquipmentID: uuid.New(), Quantity: 2},
						{EquipmentID: uuid.New(), Quantity: 1},
					}
				},
			},
		})
	})

	t.Run("customer name trimming", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.CustomerName = "  Ren Sato  " }).
			BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "Ren Sato", actual.CustomerName())
	})

	t.Run("cancel is one-way", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, actual.Cancel())
		assert.Equal(t, booking.StatusCancelled, actual.Status())
		assert.False(t, actual.IsConfirmed())

		require.ErrorIs(t, actual.Cancel(), booking.ErrAlreadyCancelled)
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		first, err1 := builder.NewBookingBuilder().BuildDomain()
		second, err2 := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, first.ID(), second.ID())
	})
}

func TestWaitlistEntry(t *testing.T) {
	t.Run("rejects empty customer name", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		_, err := booking.NewWaitlistEntry(b.Date, b.Slot(), b.CourtID, "  ")
		require.ErrorIs(t, err, booking.ErrEmptyCustomerName)
	})

	t.Run("normalizes the date", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		entry, err := booking.NewWaitlistEntry(b.Date.Add(13*time.Hour), b.Slot(), b.CourtID, "Ren Sato")
		require.NoError(t, err)
		assert.Equal(t, b.Date, entry.Date())
		assert.False(t, entry.Notified())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewBookingBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
