package forms_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccbj/ccbj-forms/pkg/forms"
)

func TestValidators(t *testing.T) {
	assert.True(t, forms.IsValidCPF("529.982.247-25"))
	assert.False(t, forms.IsValidCPF("529.982.247-26"))
	assert.True(t, forms.IsValidCNPJ("38.139.407/0001-77"))
	assert.False(t, forms.IsValidCNPJ("00.000.000/0000-00"))
	assert.True(t, forms.IsValidEmail("a@b.co"))
	assert.False(t, forms.IsValidEmail(""))
	assert.True(t, forms.IsValidDate(""))
	assert.False(t, forms.IsValidDate("31/04/2024"))
	assert.True(t, forms.IsDateRangeConsistent("01/01/2024", ""))
	assert.False(t, forms.IsDateRangeConsistent("02/01/2024", "01/01/2024"))
}

func TestCurrency(t *testing.T) {
	assert.Equal(t, "1.234,56", forms.FormatCurrencyForDisplay("123456"))
	assert.Equal(t, "1234.56", forms.ParseCurrencyFromEdit("1.234,56"))
	assert.Equal(t, "", forms.ParseCurrencyFromEdit(""))
	assert.Equal(t, "123,40", forms.FormatCanonicalCurrency("123.4"))
}

func TestMask(t *testing.T) {
	kind, err := forms.ParseMaskKind("telefone")
	require.NoError(t, err)
	assert.Equal(t, forms.MaskPhone, kind)

	value := ""
	for _, k := range "85999998888" {
		var ok bool
		value, ok = forms.Mask(kind, value, string(k))
		require.True(t, ok)
	}
	assert.Equal(t, "(85) 99999-8888", value)
	assert.Equal(t, "85999998888", forms.Unmask(value))

	_, ok := forms.Mask(kind, value, "1")
	assert.False(t, ok)
}

func TestValidateBolsistas(t *testing.T) {
	input := []forms.Bolsista{
		{Nome: "Ana", CPF: "529.982.247-25", Email: "ana@example.com", Telefone: "85999998888"},
		{Nome: "", CPF: "123", Email: "x", Telefone: ""},
	}

	results, err := forms.ValidateBolsistas(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].Valid)
	assert.False(t, results[1].Valid)
	assert.Equal(t, 1, results[1].Index)
	assert.ElementsMatch(t, []string{"cpf", "email", "nome", "telefone"}, results[1].Errors.Fields())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = forms.ValidateBolsistas(ctx, input)
	assert.ErrorIs(t, err, context.Canceled)
}
