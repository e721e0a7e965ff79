//go:build unit

package pricing_test

import (
	"testing"

	"badminton-booking/internal/domain/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	t.Run("from cents rejects negative amounts", func(t *testing.T) {
		_, err := pricing.NewMoneyFromCents(-1)
		require.ErrorIs(t, err, pricing.ErrNegativeMoney)

		m, err := pricing.NewMoneyFromCents(0)
		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("from dollars rounds half away from zero", func(t *testing.T) {
		assert.Equal(t, int64(46000), pricing.NewMoneyFromDollars(460.0).Cents())
		assert.Equal(t, int64(101), pricing.NewMoneyFromDollars(1.005).Cents())
		assert.Equal(t, int64(12), pricing.NewMoneyFromDollars(0.1249).Cents())
		assert.Equal(t, int64(13), pricing.NewMoneyFromDollars(0.125).Cents())
	})

	t.Run("arithmetic", func(t *testing.T) {
		a := pricing.NewMoney(40000)
		b := pricing.NewMoney(6000)
		assert.Equal(t, int64(46000), a.Add(b).Cents())
		assert.Equal(t, int64(18000), b.MulQuantity(3).Cents())
	})

	t.Run("string formatting", func(t *testing.T) {
		assert.Equal(t, "460.00", pricing.NewMoney(46000).String())
		assert.Equal(t, "0.05", pricing.NewMoney(5).String())
		assert.Equal(t, "-12.30", pricing.NewMoney(-1230).String())
	})
}
