package domain

import (
	"fmt"
	"math"
)

// Money is an amount in integer cents. All pricing arithmetic stays in
// cents; floats only appear at the rate-multiplication edge.
type Money struct {
	Cents    int64
	Currency string
}

const DefaultCurrency = "EUR"

// EUR builds an amount in the default currency.
func EUR(cents int64) Money {
	return Money{Cents: cents, Currency: DefaultCurrency}
}

func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents, Currency: m.currencyOr(o)}
}

// MulRate multiplies by a fractional rate, rounding half away from zero.
func (m Money) MulRate(rate float64) Money {
	return Money{Cents: int64(math.Round(float64(m.Cents) * rate)), Currency: m.Currency}
}

func (m Money) IsZero() bool { return m.Cents == 0 }

func (m Money) GTE(o Money) bool { return m.Cents >= o.Cents }

func (m Money) String() string {
	sign := ""
	c := m.Cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	cur := m.Currency
	if cur == "" {
		cur = DefaultCurrency
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, c/100, c%100, cur)
}

func (m Money) currencyOr(o Money) string {
	if m.Currency != "" {
		return m.Currency
	}
	return o.Currency
}
