package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	// FormLayout is how dates are typed into forms
	FormLayout = "02/01/2006"
	// APILayout is how the backend exchanges dates
	APILayout = "2006-01-02"
)

var datePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// dateParts splits a DD/MM/YYYY string without checking the calendar
func dateParts(s string) (day, month, year int, ok bool) {
	if !datePattern.MatchString(s) {
		return 0, 0, 0, false
	}
	// the pattern guarantees the offsets and that every part is numeric
	day, _ = strconv.Atoi(s[0:2])
	month, _ = strconv.Atoi(s[3:5])
	year, _ = strconv.Atoi(s[6:10])
	return day, month, year, true
}

// IsValidDate accepts DD/MM/YYYY strings naming a real calendar day
func IsValidDate(s string) bool {
	if s == "" {
		return true
	}

	day, month, year, ok := dateParts(s)
	if !ok {
		return false
	}

	// time.Date normalises overflow (31/02 -> 03/03), so compare back
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

// IsDateRangeConsistent reports start <= end. Missing bounds impose nothing.
func IsDateRangeConsistent(start, end string) bool {
	if start == "" || end == "" {
		return true
	}

	from, ok := lenientDate(start)
	if !ok {
		return false
	}
	to, ok := lenientDate(end)
	if !ok {
		return false
	}

	return !from.After(to)
}

// lenientDate builds a calendar date, letting overflow roll forward
func lenientDate(s string) (time.Time, bool) {
	day, month, year, ok := dateParts(s)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// ParseDate parses a strict DD/MM/YYYY date
func ParseDate(s string) (time.Time, error) {
	if s == "" || !IsValidDate(s) {
		return time.Time{}, fmt.Errorf("invalid date %q: expected DD/MM/YYYY", s)
	}
	return time.Parse(FormLayout, s)
}

// DateToAPI converts DD/MM/YYYY to YYYY-MM-DD. Empty stays empty.
func DateToAPI(s string) string {
	if s == "" {
		return ""
	}
	t, err := ParseDate(s)
	if err != nil {
		return ""
	}
	return t.Format(APILayout)
}

// DateFromAPI converts YYYY-MM-DD to DD/MM/YYYY. Empty stays empty.
func DateFromAPI(s string) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse(APILayout, s)
	if err != nil {
		return ""
	}
	return t.Format(FormLayout)
}
