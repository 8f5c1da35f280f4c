// Package money converts between the digit buffer a user types into a
// currency field and the BRL amounts the forms store and display.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/ccbj/ccbj-forms/internal/validate"
)

// Zero is decimal zero
var Zero = decimal.Zero

// Amount is an optional monetary value. The zero Amount means "no input yet",
// which is not the same thing as an explicit R$ 0,00.
type Amount struct {
	Value decimal.Decimal
	Valid bool
}

// ParseAmount reads the digits of raw as cents
func ParseAmount(raw string) Amount {
	digits := validate.Digits(raw)
	if digits == "" {
		return Amount{}
	}
	// digits-only input always parses
	cents := decimal.RequireFromString(digits)
	return Amount{Value: cents.Shift(-2), Valid: true}
}

// AmountFromCanonical reads a stored canonical value such as "123.45"
func AmountFromCanonical(s string) Amount {
	if s == "" {
		return Amount{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}
	}
	return Amount{Value: d, Valid: true}
}

// Canonical renders the amount without grouping or trailing fractional zeros.
// An unset amount renders as "".
func (a Amount) Canonical() string {
	if !a.Valid {
		return ""
	}
	return a.Value.String()
}

// Display formats the amount for the given locale, "" when unset
func (a Amount) Display(l Locale) string {
	if !a.Valid {
		return ""
	}
	return l.Format(a.Value)
}

// FromCents creates a decimal amount from whole cents
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// IsNonNegative returns true if decimal is >= zero
func IsNonNegative(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(Zero)
}

// SplitInstallments divides total into n installments of whole cents.
// The remainder goes to the last installment so the parts always add up.
func SplitInstallments(total decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}

	cents := total.Shift(2).Round(0).IntPart()
	each := cents / int64(n)
	rest := cents - each*int64(n)

	parts := make([]decimal.Decimal, n)
	for i := range parts {
		parts[i] = FromCents(each)
	}
	parts[n-1] = FromCents(each + rest)
	return parts
}
