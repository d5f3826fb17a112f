package util

import "time"

// monthTokenLayout is the canonical YYYY-MM month token format
const monthTokenLayout = "2006-01"

// MonthToken returns the YYYY-MM token for the month containing t
func MonthToken(t time.Time) string {
	return t.Format(monthTokenLayout)
}

// ParseMonthToken parses a YYYY-MM token into the first instant of that month
func ParseMonthToken(token string) (time.Time, error) {
	return time.Parse(monthTokenLayout, token)
}

// IsMonthToken reports whether s is a well-formed YYYY-MM token
func IsMonthToken(s string) bool {
	_, err := time.Parse(monthTokenLayout, s)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD calendar date
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// StartOfMonth truncates t to the first instant of its month
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// ShortMonthName returns the three-letter month name for a YYYY-MM token,
// or the token itself if it does not parse
func ShortMonthName(token string) string {
	t, err := ParseMonthToken(token)
	if err != nil {
		return token
	}
	return t.Format("Jan")
}
