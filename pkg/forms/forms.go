// Package forms is the public API of the CCBJ form validation and
// formatting core.
//
// All functions are pure and safe for concurrent use. Invalid input is
// reported as false or an empty string, never as an error or a panic.
//
// Example usage:
//
//	if !forms.IsValidCPF(input) {
//	    errs["cpf"] = "CPF inválido"
//	}
//	display := forms.FormatCurrencyForDisplay("123456") // "1.234,56"
//	value, ok := forms.Mask(forms.MaskCPF, "123.456.789-0", "9")
package forms

import (
	"github.com/ccbj/ccbj-forms/internal/mask"
	"github.com/ccbj/ccbj-forms/internal/model"
	"github.com/ccbj/ccbj-forms/internal/money"
	"github.com/ccbj/ccbj-forms/internal/validate"
)

// Re-export form records
type (
	Bolsista       = model.Bolsista
	ContratoFilter = model.ContratoFilter
	StatusChange   = model.StatusChange
	FieldErrors    = model.FieldErrors
	MaskKind       = mask.Kind
)

// Re-export mask kinds
const (
	MaskCPF   = mask.KindCPF
	MaskCNPJ  = mask.KindCNPJ
	MaskPhone = mask.KindPhone
	MaskDate  = mask.KindDate
)

// IsValidCPF checks an 11-digit CPF, masked or not
func IsValidCPF(s string) bool { return validate.IsValidCPF(s) }

// IsValidCNPJ checks a 14-digit CNPJ, masked or not
func IsValidCNPJ(s string) bool { return validate.IsValidCNPJ(s) }

// IsValidEmail checks the local@domain.tld shape. Empty is valid.
func IsValidEmail(s string) bool { return validate.IsValidEmail(s) }

// IsValidDate checks a DD/MM/YYYY calendar date. Empty is valid.
func IsValidDate(s string) bool { return validate.IsValidDate(s) }

// IsDateRangeConsistent reports whether start is not after end. A range
// with an empty bound is consistent.
func IsDateRangeConsistent(start, end string) bool {
	return validate.IsDateRangeConsistent(start, end)
}

// FormatCurrencyForDisplay reads the digits of raw as cents and renders
// them as pt-BR currency, e.g. "123456" -> "1.234,56"
func FormatCurrencyForDisplay(raw string) string { return money.FormatForDisplay(raw) }

// ParseCurrencyFromEdit turns an edited currency field into its canonical
// decimal string, e.g. "R$ 1.234,56" -> "1234.56". No digits gives "".
func ParseCurrencyFromEdit(raw string) string { return money.ParseFromEdit(raw) }

// FormatCanonicalCurrency renders a stored canonical value such as "123.4"
func FormatCanonicalCurrency(canonical string) string { return money.FormatCanonical(canonical) }

// Mask applies keystroke to the masked value current. ok is false when
// the keystroke is rejected; current is then returned unchanged.
func Mask(kind MaskKind, current, keystroke string) (value string, ok bool) {
	return mask.Apply(kind, current, keystroke)
}

// ParseMaskKind maps "cpf", "cnpj", "phone"/"telefone" and "date"/"data"
func ParseMaskKind(s string) (MaskKind, error) { return mask.ParseKind(s) }

// Unmask returns the digits of a masked value
func Unmask(masked string) string { return mask.Unmask(masked) }
