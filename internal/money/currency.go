package money

// Formatter runs the currency field conversions for one display locale
type Formatter struct {
	Locale Locale
}

// NewFormatter creates a formatter for a BCP 47 locale tag
func NewFormatter(tag string) *Formatter {
	return &Formatter{Locale: LocaleFor(tag)}
}

// FormatForDisplay treats the digits of raw as cents and renders them with
// two decimals and grouping. Input without digits renders as "".
func (f *Formatter) FormatForDisplay(raw string) string {
	return ParseAmount(raw).Display(f.Locale)
}

// ParseFromEdit turns the edited display text into the canonical value
// stored for the field: "12345" -> "123.45". No digits yields "", never "0".
func (f *Formatter) ParseFromEdit(raw string) string {
	return ParseAmount(raw).Canonical()
}

// FormatCanonical displays a stored canonical value such as "123.4"
func (f *Formatter) FormatCanonical(canonical string) string {
	return AmountFromCanonical(canonical).Display(f.Locale)
}

var defaultFormatter = &Formatter{Locale: PtBR}

// FormatForDisplay formats raw cents digits in pt-BR
func FormatForDisplay(raw string) string {
	return defaultFormatter.FormatForDisplay(raw)
}

// ParseFromEdit returns the canonical decimal string for an edited value
func ParseFromEdit(raw string) string {
	return defaultFormatter.ParseFromEdit(raw)
}

// FormatCanonical formats a stored canonical value in pt-BR
func FormatCanonical(canonical string) string {
	return defaultFormatter.FormatCanonical(canonical)
}
