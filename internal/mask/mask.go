// Package mask shapes document, phone and date fields as they are typed.
// It only enforces the template; semantic checks belong to package validate.
package mask

import (
	"fmt"
	"strings"

	"github.com/ccbj/ccbj-forms/internal/validate"
)

// Kind identifies a masked field
type Kind int

const (
	KindCPF Kind = iota + 1
	KindCNPJ
	KindPhone
	KindDate
)

// slot marks a digit position in a template
const slot = '9'

func (k Kind) String() string {
	switch k {
	case KindCPF:
		return "cpf"
	case KindCNPJ:
		return "cnpj"
	case KindPhone:
		return "phone"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// ParseKind accepts the English names and the form field names used by the
// registration screens ("telefone", "data").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cpf":
		return KindCPF, nil
	case "cnpj":
		return KindCNPJ, nil
	case "phone", "telefone":
		return KindPhone, nil
	case "date", "data":
		return KindDate, nil
	}
	return 0, fmt.Errorf("unknown mask kind %q", s)
}

// Field pairs a template with the validator for its completed value
type Field struct {
	Kind     Kind
	Template string
	Validate func(string) bool
}

var fields = map[Kind]Field{
	KindCPF:   {Kind: KindCPF, Template: "999.999.999-99", Validate: validate.IsValidCPF},
	KindCNPJ:  {Kind: KindCNPJ, Template: "99.999.999/9999-99", Validate: validate.IsValidCNPJ},
	KindPhone: {Kind: KindPhone, Template: "(99) 99999-9999", Validate: isValidPhone},
	KindDate:  {Kind: KindDate, Template: "99/99/9999", Validate: validate.IsValidDate},
}

// FieldFor returns the field definition for k
func FieldFor(k Kind) (Field, bool) {
	f, ok := fields[k]
	return f, ok
}

// Slots is the number of digits the template holds
func (f Field) Slots() int {
	return strings.Count(f.Template, string(slot))
}

// Apply adds a keystroke (or pasted text) to the current masked value.
// Template literals in the keystroke are ignored; any other non-digit, or a
// keystroke on a full field, is rejected and current is returned unchanged.
func (f Field) Apply(current, keystroke string) (string, bool) {
	digits := validate.Digits(current)
	slots := f.Slots()
	if len(digits) >= slots && keystroke != "" {
		return current, false
	}

	var b strings.Builder
	b.WriteString(digits)
	for _, r := range keystroke {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case f.isLiteral(r):
		default:
			return current, false
		}
	}

	return f.render(b.String()), true
}

// Format masks a whole raw value, dropping digits beyond the template
func (f Field) Format(raw string) string {
	return f.render(validate.Digits(raw))
}

// Backspace removes the last digit of current
func (f Field) Backspace(current string) string {
	digits := validate.Digits(current)
	if digits == "" {
		return ""
	}
	return f.render(digits[:len(digits)-1])
}

// Complete reports whether every digit slot is filled
func (f Field) Complete(current string) bool {
	return len(validate.Digits(current)) == f.Slots()
}

func (f Field) isLiteral(r rune) bool {
	return r != slot && strings.ContainsRune(f.Template, r)
}

// render interleaves digits with the template, writing a literal only when
// a digit follows it
func (f Field) render(digits string) string {
	var b strings.Builder
	i := 0
	for _, t := range f.Template {
		if i >= len(digits) {
			break
		}
		if t == slot {
			b.WriteByte(digits[i])
			i++
			continue
		}
		b.WriteRune(t)
	}
	return b.String()
}

func isValidPhone(s string) bool {
	if s == "" {
		return true
	}
	n := len(validate.Digits(s))
	return n == 10 || n == 11
}

// Apply dispatches to the field for kind. Unknown kinds reject everything.
func Apply(kind Kind, current, keystroke string) (string, bool) {
	f, ok := fields[kind]
	if !ok {
		return current, false
	}
	return f.Apply(current, keystroke)
}

// Format masks raw for kind; unknown kinds return raw unchanged
func Format(kind Kind, raw string) string {
	f, ok := fields[kind]
	if !ok {
		return raw
	}
	return f.Format(raw)
}

// Backspace drops the last digit of a masked value of kind
func Backspace(kind Kind, current string) string {
	f, ok := fields[kind]
	if !ok {
		return current
	}
	return f.Backspace(current)
}

// Unmask returns only the digits, as the backend expects them
func Unmask(masked string) string {
	return validate.Digits(masked)
}
