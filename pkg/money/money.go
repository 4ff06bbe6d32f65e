// Package money implements fixed-point decimal amounts with exactly two
// fractional digits, stored as integer cents. It exists because order
// totals must never be computed with binary floating point.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAmount is returned when a string does not parse as a
// two-fractional-digit decimal amount.
var ErrInvalidAmount = errors.New("money: invalid amount")

// Amount is a non-negative monetary value, stored as a whole number of
// cents. The zero value is zero dollars.
type Amount struct {
	cents int64
}

// Zero is the zero amount.
var Zero = Amount{}

// FromCents builds an Amount directly from a cent count.
func FromCents(cents int64) Amount {
	return Amount{cents: cents}
}

// Parse reads a decimal string such as "27.50" or "3" into an Amount.
// It rejects more than two fractional digits and negative amounts.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalidAmount
	}
	neg := strings.HasPrefix(s, "-")
	if neg {
		return Zero, fmt.Errorf("%w: negative amount %q", ErrInvalidAmount, s)
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if hasFrac && len(frac) > 2 {
		return Zero, fmt.Errorf("%w: more than two fractional digits in %q", ErrInvalidAmount, s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 63)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	f, err := strconv.ParseInt(frac, 10, 32)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return Amount{cents: w*100 + f}, nil
}

// MustParse is Parse but panics on error; useful for literal test fixtures.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Cents returns the underlying integer cent count.
func (a Amount) Cents() int64 { return a.cents }

// String renders the amount as a two-fractional-digit decimal, e.g. "27.50".
func (a Amount) String() string {
	whole := a.cents / 100
	frac := a.cents % 100
	if frac < 0 {
		frac = -frac
	}
	return fmt.Sprintf("%d.%02d", whole, frac)
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{cents: a.cents + b.cents}
}

// MulQuantity returns a × qty, used to price an order line.
func (a Amount) MulQuantity(qty int) Amount {
	return Amount{cents: a.cents * int64(qty)}
}

// Equal reports whether two amounts are identical.
func (a Amount) Equal(b Amount) bool {
	return a.cents == b.cents
}

// Sum totals a slice of amounts.
func Sum(amounts []Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
