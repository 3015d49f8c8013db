package coinfolio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a percentage: 50 means 50%.
type Percent struct {
	value decimal.Decimal
}

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

func P[T float64 | int | int64 | decimal.Decimal](value T) Percent {
	return Percent{value: newDecimal(value)}
}

// ParsePercent parses a plain percentage such as "12.5".
func ParsePercent(s string) (Percent, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Percent{}, fmt.Errorf("invalid percentage %q: %w", s, err)
	}
	return Percent{value: d}, nil
}

// percentOf returns ratio expressed as a percentage (0.5 -> 50%).
func percentOf(ratio decimal.Decimal) Percent { return Percent{value: ratio.Mul(hundred)} }

func (p Percent) Equal(q Percent) bool     { return p.value.Equal(q.value) }
func (p Percent) IsZero() bool             { return p.value.IsZero() }
func (p Percent) Decimal() decimal.Decimal { return p.value }

// StringFixed returns the plain percentage rounded to places decimals, without the % sign.
func (p Percent) StringFixed(places int32) string { return p.value.StringFixed(places) }

func (p Percent) String() string {
	return p.value.StringFixed(2) + "%"
}

func (p Percent) SignedString() string {
	res := p.String()
	if res == "0.00%" || res == "-0.00%" {
		return "-"
	}
	if p.value.IsPositive() {
		return "+" + res
	}
	return res
}
