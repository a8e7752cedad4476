package coerce

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the single wire format for start dates (DD/MM/YYYY).
const DateLayout = "02/01/2006"

// sheetEpoch is the day-zero of the legacy spreadsheet serial date encoding.
var sheetEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var strictDatePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// dayFirst layouts tried, in order, when reading loosely formatted store
// values. Day always takes precedence over month.
var dayFirstLayouts = []string{
	DateLayout,
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"2006-01-02",
	time.RFC3339,
}

// ParseDate parses a strict DD/MM/YYYY literal. Anything else, including
// alternate separators, swapped field order or impossible calendar dates,
// reports false. Future-date rules are enforced by the caller, not here.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if !strictDatePattern.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// FormatDate renders a date as DD/MM/YYYY; the zero time renders empty, which
// is the stored form of "no start date".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// DateFromStore accepts the broader shapes observed in backing stores: the
// strict DD/MM/YYYY literal, generic day-first date strings, numeric serial
// day counts from the 1899-12-30 epoch, native time values, or blank. Used
// only on the read path; writes always emit FormatDate output.
func DateFromStore(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dayFirstLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
			}
		}
		return time.Time{}, false
	case float64:
		return serialDate(int(v))
	case float32:
		return serialDate(int(v))
	case int:
		return serialDate(v)
	case int64:
		return serialDate(int(v))
	default:
		return time.Time{}, false
	}
}

func serialDate(days int) (time.Time, bool) {
	if days <= 0 {
		return time.Time{}, false
	}
	return sheetEpoch.AddDate(0, 0, days), true
}
