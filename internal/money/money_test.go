package money_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccbj/ccbj-forms/internal/money"
)

func TestParseAmount(t *testing.T) {
	a := money.ParseAmount("12345")
	require.True(t, a.Valid)
	assert.True(t, a.Value.Equal(decimal.RequireFromString("123.45")))
	assert.Equal(t, "123.45", a.Canonical())

	a = money.ParseAmount("R$ 1.234,56")
	require.True(t, a.Valid)
	assert.True(t, a.Value.Equal(money.FromCents(123456)))
}

func TestParseAmount_BeyondInt64(t *testing.T) {
	digits := strings.Repeat("9", 23)
	a := money.ParseAmount(digits)
	require.True(t, a.Valid)
	assert.Equal(t, strings.Repeat("9", 21)+".99", a.Canonical())
	assert.Equal(t, "999.999.999.999.999.999.999,99", money.FormatForDisplay(digits))
}

func TestParseAmount_EmptyIsNotZero(t *testing.T) {
	empty := money.ParseAmount("")
	assert.False(t, empty.Valid)
	assert.Equal(t, "", empty.Canonical())

	zero := money.ParseAmount("0")
	assert.True(t, zero.Valid)
	assert.Equal(t, "0", zero.Canonical())

	noDigits := money.ParseAmount("R$ ,")
	assert.False(t, noDigits.Valid)
}

func TestAmountFromCanonical(t *testing.T) {
	a := money.AmountFromCanonical("123.4")
	require.True(t, a.Valid)
	assert.True(t, a.Value.Equal(money.FromCents(12340)))

	assert.False(t, money.AmountFromCanonical("").Valid)
	assert.False(t, money.AmountFromCanonical("abc").Valid)
}

func TestFromCents(t *testing.T) {
	assert.True(t, money.FromCents(150).Equal(decimal.RequireFromString("1.5")))
}

func TestSum(t *testing.T) {
	values := []decimal.Decimal{
		money.FromCents(100),
		money.FromCents(250),
		money.FromCents(5),
	}
	assert.True(t, money.Sum(values).Equal(decimal.RequireFromString("3.55")))
	assert.True(t, money.Sum(nil).IsZero())
}

func TestIsNonNegative(t *testing.T) {
	assert.True(t, money.IsNonNegative(decimal.NewFromInt(1)))
	assert.True(t, money.IsNonNegative(money.Zero))
	assert.False(t, money.IsNonNegative(decimal.NewFromInt(-1)))
}

func TestSplitInstallments(t *testing.T) {
	tests := []struct {
		name  string
		total string
		n     int
		want  []string
	}{
		{"even split", "300.00", 3, []string{"100", "100", "100"}},
		{"remainder on last", "100.00", 3, []string{"33.33", "33.33", "33.34"}},
		{"single installment", "1234.56", 1, []string{"1234.56"}},
		{"cents only", "0.05", 2, []string{"0.02", "0.03"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := decimal.RequireFromString(tt.total)
			parts := money.SplitInstallments(total, tt.n)
			require.Len(t, parts, len(tt.want))
			for i, w := range tt.want {
				assert.True(t, parts[i].Equal(decimal.RequireFromString(w)),
					"part %d: got %s, want %s", i, parts[i], w)
			}
			assert.True(t, money.Sum(parts).Equal(total))
		})
	}

	assert.Nil(t, money.SplitInstallments(decimal.NewFromInt(10), 0))
}
