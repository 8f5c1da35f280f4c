package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

// Locale holds the separators used to display amounts
type Locale struct {
	Tag     language.Tag
	Decimal string
	Group   string
}

var (
	// PtBR is the default display locale: 1.234,56
	PtBR = Locale{Tag: language.BrazilianPortuguese, Decimal: ",", Group: "."}
	// EnUS displays 1,234.56
	EnUS = Locale{Tag: language.AmericanEnglish, Decimal: ".", Group: ","}
)

// first entry is the fallback
var supportedLocales = []Locale{PtBR, EnUS}

var localeMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(supportedLocales))
	for i, l := range supportedLocales {
		tags[i] = l.Tag
	}
	return language.NewMatcher(tags)
}()

// LocaleFor picks the closest supported locale for a BCP 47 tag such as
// "pt-BR" or "en". Unknown or malformed tags fall back to PtBR.
func LocaleFor(tag string) Locale {
	t, err := language.Parse(tag)
	if err != nil {
		return PtBR
	}
	_, idx, conf := localeMatcher.Match(t)
	if conf == language.No {
		return PtBR
	}
	return supportedLocales[idx]
}

// Format renders d with two fraction digits and thousands grouping
func (l Locale) Format(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac, _ := strings.Cut(s, ".")
	return sign + group(intPart, l.Group) + l.Decimal + frac
}

func group(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
