package coerce

import (
	"testing"
	"time"
)

func TestParseDateStrict(t *testing.T) {
	got, ok := ParseDate("29/02/2024")
	if !ok {
		t.Fatal("leap day should parse")
	}
	if got != time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseDateRejectsImpossibleDate(t *testing.T) {
	if _, ok := ParseDate("31/02/2024"); ok {
		t.Fatal("31/02 must not parse")
	}
}

func TestParseDateRejectsAlternateShapes(t *testing.T) {
	for _, raw := range []string{"2024/02/29", "29-02-2024", "5/3/2024", "05/03/24", "hoje", ""} {
		if _, ok := ParseDate(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)); got != "05/03/2024" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := FormatDate(time.Time{}); got != "" {
		t.Fatalf("zero time must render empty, got %q", got)
	}
}

func TestDateFromStoreStrictLiteral(t *testing.T) {
	got, ok := DateFromStore("05/03/2024")
	if !ok || got != time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected result %v %v", got, ok)
	}
}

func TestDateFromStoreDayFirstPrecedence(t *testing.T) {
	// 5/3 must read as March 5th, never May 3rd.
	got, ok := DateFromStore("5/3/2024")
	if !ok || got.Month() != time.March || got.Day() != 5 {
		t.Fatalf("day-first parse failed: %v %v", got, ok)
	}
}

func TestDateFromStoreSerialDays(t *testing.T) {
	// Day 2 of the legacy spreadsheet epoch is 1900-01-01.
	got, ok := DateFromStore(float64(2))
	if !ok || got != time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected serial decode %v %v", got, ok)
	}

	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	serial := int(want.Sub(time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)).Hours() / 24)
	got, ok = DateFromStore(serial)
	if !ok || !got.Equal(want) {
		t.Fatalf("serial %d decoded to %v, want %v", serial, got, want)
	}
}

func TestDateFromStoreBlankAndJunk(t *testing.T) {
	for _, raw := range []any{nil, "", "  ", "not a date", false, float64(0), -3} {
		if _, ok := DateFromStore(raw); ok {
			t.Fatalf("expected %v to coerce to no date", raw)
		}
	}
}

func TestDateFromStoreNativeTime(t *testing.T) {
	native := time.Date(2023, time.July, 9, 14, 30, 0, 0, time.Local)
	got, ok := DateFromStore(native)
	if !ok || got != time.Date(2023, time.July, 9, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("native time must truncate to UTC midnight, got %v %v", got, ok)
	}
}
