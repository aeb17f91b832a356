package money

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when a monetary value cannot be parsed
var ErrInvalidAmount = errors.New("invalid monetary amount")

// Money is a monetary amount stored as integer cents. Keeping arithmetic in
// integer minor units means split allocation and settlement matching are
// exact; decimals only appear at the parsing/formatting boundary.
type Money int64

// FromCents builds a Money from raw integer cents
func FromCents(cents int64) Money {
	return Money(cents)
}

// FromDecimal quantizes an arbitrary-precision decimal to two places,
// rounding any residue away from zero (10.001 becomes 10.01)
func FromDecimal(d decimal.Decimal) Money {
	return Money(d.RoundUp(2).Shift(2).IntPart())
}

// FromString parses and quantizes a decimal string
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromDecimal(d), nil
}

// Cents returns the amount in integer cents
func (m Money) Cents() int64 {
	return int64(m)
}

// Decimal returns the exact two-decimal-place representation
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// Neg returns the amount with its sign flipped
func (m Money) Neg() Money {
	return -m
}

// Abs returns the magnitude of the amount
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// IsPositive reports whether the amount is strictly greater than zero
func (m Money) IsPositive() bool {
	return m > 0
}

// IsZero reports whether the amount is exactly zero
func (m Money) IsZero() bool {
	return m == 0
}

// String formats the amount with exactly two decimal places
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON encodes the amount as a two-decimal JSON number
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number or numeric string and quantizes it
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, data)
	}
	*m = FromDecimal(d)
	return nil
}

// Value implements driver.Valuer so Money can be written to NUMERIC columns
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan implements sql.Scanner for NUMERIC columns
func (m *Money) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = 0
		return nil
	case []byte:
		parsed, err := FromString(string(v))
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case string:
		parsed, err := FromString(v)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case int64:
		*m = FromDecimal(decimal.NewFromInt(v))
		return nil
	case float64:
		*m = FromDecimal(decimal.NewFromFloat(v))
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidAmount, src)
	}
}
