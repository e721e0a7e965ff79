package pricing

import (
	"errors"
	"fmt"
	"math"
)

var ErrNegativeMoney = errors.New("money cannot be negative")

// Money is a fixed-point amount with two fractional digits, stored as
// integer cents. All persisted monetary values round through here;
// intermediate pricing math runs on float64 dollars and rounds once at
// the edge.
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{cents: cents}, nil
}

// NewMoneyFromDollars rounds to the nearest cent, half away from zero.
func NewMoneyFromDollars(dollars float64) Money {
	return Money{cents: int64(math.Round(dollars * 100))}
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) Dollars() float64 { return float64(m.cents) / 100.0 }

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) MulQuantity(qty int32) Money {
	return Money{cents: m.cents * int64(qty)}
}

func (m Money) IsNegative() bool { return m.cents < 0 }
func (m Money) IsZero() bool     { return m.cents == 0 }

func (m Money) String() string {
	sign := ""
	cents := m.cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
