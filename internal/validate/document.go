// Package validate holds the field validators used by the registration and
// search forms. Every function is total: empty input is accepted, anything
// malformed yields false. The "required" rule lives with the form models.
package validate

const (
	cpfLength  = 11
	cnpjLength = 14
)

// Digits strips every non-digit character
func Digits(s string) string {
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			buf = append(buf, s[i])
		}
	}
	return string(buf)
}

// IsValidCPF checks length, repeated-digit sequences and both check digits
func IsValidCPF(s string) bool {
	if s == "" {
		return true
	}

	cpf := Digits(s)
	if len(cpf) != cpfLength || allSame(cpf) {
		return false
	}

	return cpfCheckDigit(cpf[:9]) == digitAt(cpf, 9) &&
		cpfCheckDigit(cpf[:10]) == digitAt(cpf, 10)
}

// IsValidCNPJ checks length, repeated-digit sequences and both check digits
func IsValidCNPJ(s string) bool {
	if s == "" {
		return true
	}

	cnpj := Digits(s)
	if len(cnpj) != cnpjLength || allSame(cnpj) {
		return false
	}

	return cnpjCheckDigit(cnpj[:12]) == digitAt(cnpj, 12) &&
		cnpjCheckDigit(cnpj[:13]) == digitAt(cnpj, 13)
}

// cpfCheckDigit weights the base from len+1 down to 2
func cpfCheckDigit(base string) int {
	sum := 0
	weight := len(base) + 1
	for i := 0; i < len(base); i++ {
		sum += digitAt(base, i) * weight
		weight--
	}

	r := (sum * 10) % 11
	if r == 10 || r == 11 {
		return 0
	}
	return r
}

// cnpjCheckDigit weights the base 2..9 from the rightmost digit, wrapping at 9
func cnpjCheckDigit(base string) int {
	sum := 0
	weight := 2
	for i := len(base) - 1; i >= 0; i-- {
		sum += digitAt(base, i) * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}

	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

func digitAt(s string, i int) int {
	return int(s[i] - '0')
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
