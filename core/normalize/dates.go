package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Spreadsheet day 0 is 1899-12-30, which puts the Unix epoch at serial 25569.
const serialEpochDays = 25569

const isoDate = "2006-01-02"

// fallbackLayouts are tried, in order, for date strings that match none of
// the primary source forms.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// NormalizeDate converts a raw cell value to the canonical YYYY-MM-DD form.
// Accepted source forms: DD/MM/YYYY, DD-MM-YYYY, YYYY-MM-DD, a spreadsheet
// date serial, and a handful of common textual layouts. The second return is
// false when the value is not recognizable as a date.
func NormalizeDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	if out, ok := normalizeDayFirst(s); ok {
		return out, true
	}

	if t, err := time.Parse(isoDate, s); err == nil {
		return t.Format(isoDate), true
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return serialToDate(serial), true
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(isoDate), true
		}
	}

	return "", false
}

// normalizeDayFirst handles DD/MM/YYYY and DD-MM-YYYY, zero-padding as needed.
// Four-digit leading segments are left for the ISO path.
func normalizeDayFirst(s string) (string, bool) {
	sep := "/"
	if !strings.Contains(s, sep) {
		sep = "-"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 3 || len(parts[0]) > 2 {
		return "", false
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil || len(parts[2]) != 4 {
		return "", false
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// serialToDate converts a spreadsheet date serial to YYYY-MM-DD.
func serialToDate(serial float64) string {
	secs := int64((serial - serialEpochDays) * 86400)
	return time.Unix(secs, 0).UTC().Format(isoDate)
}
