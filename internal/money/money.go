// Package money provides an exact fixed-point monetary value type.
//
// Amounts are stored as an integer number of minor currency units (cents),
// so arithmetic never goes through binary floating point. Parsing and
// formatting of decimal strings is delegated to shopspring/decimal.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// minorUnitExponent is the number of decimal places in a minor unit.
// The service is single-currency with cent-denominated amounts.
const minorUnitExponent = 2

var (
	ErrInvalidAmount = errors.New("invalid monetary amount")
	ErrNoBuckets     = errors.New("cannot allocate across zero buckets")
)

// Money is an amount in minor currency units. The zero value is zero money.
type Money int64

// FromUnits builds a Money from a raw minor-unit count.
func FromUnits(units int64) Money {
	return Money(units)
}

// Parse converts a decimal string such as "10.50" into Money.
// Amounts with more precision than a minor unit are rejected rather than
// rounded, so no caller input is silently altered.
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	shifted := d.Shift(minorUnitExponent)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("%w: %q has sub-cent precision", ErrInvalidAmount, s)
	}
	return Money(shifted.IntPart()), nil
}

// Units returns the raw minor-unit count.
func (m Money) Units() int64 {
	return int64(m)
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return m - other
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool {
	return m > 0
}

// Cmp compares two amounts, returning -1, 0, or 1.
func (m Money) Cmp(other Money) int {
	switch {
	case m < other:
		return -1
	case m > other:
		return 1
	default:
		return 0
	}
}

// Allocate divides the amount into n buckets that sum back to m exactly.
// Every bucket receives the integer quotient and the first `m mod n`
// buckets receive one extra minor unit, so no remainder is ever dropped.
func (m Money) Allocate(n int) ([]Money, error) {
	if n < 1 {
		return nil, ErrNoBuckets
	}
	base := int64(m) / int64(n)
	rem := int64(m) % int64(n)
	if rem < 0 {
		rem += int64(n)
		base--
	}
	buckets := make([]Money, n)
	for i := range buckets {
		buckets[i] = Money(base)
		if int64(i) < rem {
			buckets[i]++
		}
	}
	return buckets, nil
}

// Decimal returns the amount as an exact decimal in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -minorUnitExponent)
}

// String formats the amount in major units, e.g. "10.50".
func (m Money) String() string {
	return m.Decimal().StringFixed(minorUnitExponent)
}

// MarshalJSON encodes the amount as a decimal string in major units.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts either a quoted decimal string or a bare number.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
