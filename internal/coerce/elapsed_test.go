package coerce

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestElapsedSinceWholeMonths(t *testing.T) {
	got := ElapsedSince(date(2020, time.January, 15), date(2023, time.March, 10))
	if got != "3 anos e 1 mês" {
		t.Fatalf("unexpected elapsed text %q", got)
	}
}

func TestElapsedSinceDayUnderflowBorrow(t *testing.T) {
	// The 20th has not been reached on March 10th, so one month is borrowed
	// from the 36-month calendar difference.
	got := ElapsedSince(date(2020, time.March, 20), date(2023, time.March, 10))
	if got != "2 anos e 11 meses" {
		t.Fatalf("unexpected elapsed text %q", got)
	}
	// The borrow applies exactly once however far short today's day falls.
	got = ElapsedSince(date(2020, time.January, 20), date(2023, time.March, 10))
	if got != "3 anos e 1 mês" {
		t.Fatalf("unexpected elapsed text %q", got)
	}
}

func TestElapsedSinceSingularPluralAgreement(t *testing.T) {
	cases := []struct {
		start, today time.Time
		want         string
	}{
		{date(2022, time.March, 1), date(2023, time.March, 1), "1 ano e 0 meses"},
		{date(2021, time.February, 1), date(2023, time.March, 1), "2 anos e 1 mês"},
		{date(2023, time.January, 1), date(2023, time.March, 1), "0 anos e 2 meses"},
		{date(2023, time.March, 1), date(2023, time.March, 1), "0 anos e 0 meses"},
	}
	for _, tc := range cases {
		if got := ElapsedSince(tc.start, tc.today); got != tc.want {
			t.Fatalf("ElapsedSince(%v, %v) = %q, want %q", tc.start, tc.today, got, tc.want)
		}
	}
}

func TestElapsedSinceAbsentOrFuture(t *testing.T) {
	today := date(2023, time.March, 10)
	if got := ElapsedSince(time.Time{}, today); got != EmDash {
		t.Fatalf("zero start must render %q, got %q", EmDash, got)
	}
	if got := ElapsedSince(date(2024, time.January, 1), today); got != EmDash {
		t.Fatalf("future start must render %q, got %q", EmDash, got)
	}
}
