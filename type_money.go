package coinfolio

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// USD is the only reporting and pricing currency.
const USD = money.USD

// Money represents a USD value. Unlike most money types it keeps every digit:
// coin prices and amounts routinely go below the cent.
type Money struct {
	value decimal.Decimal // as major unit value
}

func M[T float64 | int | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney parses a decimal string such as "1500.25" as USD.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{value: d}, nil
}

// currency returns the USD currency definition.
func currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, USD).Currency()
}

// String returns the value formatted as USD, rounded to the cent (e.g. "$1,234.57").
func (m Money) String() string {
	cur := currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money               { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money        { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money        { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(q Quantity) Money     { return Money{value: m.value.Mul(q.value)} }
func (m Money) Decimal() decimal.Decimal { return m.value }

// StringFixed returns the plain value rounded to places decimals, without currency sign.
func (m Money) StringFixed(places int32) string { return m.value.StringFixed(places) }

// Ratio returns m/n. n must not be zero.
func (m Money) Ratio(n Money) decimal.Decimal { return m.value.Div(n.value) }

// InexactFloat64 is only meant for rendering (e.g. chart slices), never for calculation.
func (m Money) InexactFloat64() float64 { return m.value.InexactFloat64() }
