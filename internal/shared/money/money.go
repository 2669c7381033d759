package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when a textual amount is malformed, negative,
// or carries more than two fractional digits.
var ErrInvalidAmount = errors.New("invalid amount")

// Money is a non-negative fixed-point amount with two fractional digits.
// It wraps decimal arithmetic so prices are never handled as binary floats.
type Money struct {
	d decimal.Decimal
}

// Zero returns the zero amount.
func Zero() Money {
	return Money{d: decimal.Zero}
}

// Parse converts text into Money. It rejects anything that is not a
// non-negative decimal representable with at most two fractional digits.
func Parse(text string) (Money, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Money{}, fmt.Errorf("parse %q: %w", text, ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse %q: %w", text, ErrInvalidAmount)
	}
	if d.IsNegative() {
		return Money{}, fmt.Errorf("parse %q: negative: %w", text, ErrInvalidAmount)
	}
	if !d.Equal(d.Round(2)) {
		return Money{}, fmt.Errorf("parse %q: more than two fractional digits: %w", text, ErrInvalidAmount)
	}
	return Money{d: d}, nil
}

// MustParse is Parse for literals that are known to be valid. It panics on
// invalid input and is intended for tests and seed data.
func MustParse(text string) Money {
	m, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return m
}

// Cmp returns -1 if m < o, 0 if equal, +1 if m > o.
func (m Money) Cmp(o Money) int {
	return m.d.Cmp(o.d)
}

// GreaterThan reports whether m is strictly greater than o.
func (m Money) GreaterThan(o Money) bool {
	return m.d.GreaterThan(o.d)
}

// Equal reports whether the two amounts are numerically equal.
func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}

// Add returns the sum of the two amounts.
func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// String renders the amount with exactly two fractional digits.
func (m Money) String() string {
	return m.d.StringFixed(2)
}

// MarshalJSON renders the amount as a quoted fixed-point string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON string or a bare number.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value implements driver.Valuer so Money binds to NUMERIC columns.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan implements sql.Scanner for reading NUMERIC columns.
func (m *Money) Scan(src any) error {
	var d decimal.Decimal
	if err := d.Scan(src); err != nil {
		return fmt.Errorf("scan money: %w", err)
	}
	if d.IsNegative() {
		return fmt.Errorf("scan money: negative value %s: %w", d, ErrInvalidAmount)
	}
	m.d = d
	return nil
}
