package coerce

import (
	"fmt"
	"time"
)

// EmDash is the display placeholder for an absent or not-yet-meaningful date.
const EmDash = "—"

// ElapsedSince renders the whole elapsed time between start and today as
// "<years> e <months>" in Portuguese with singular/plural agreement. A zero
// or future start renders the em-dash placeholder. Months are counted by
// calendar difference with a borrow when today's day-of-month has not yet
// reached the start's day-of-month.
func ElapsedSince(start, today time.Time) string {
	if start.IsZero() || start.After(today) {
		return EmDash
	}

	months := (today.Year()-start.Year())*12 + int(today.Month()) - int(start.Month())
	if today.Day() < start.Day() {
		months--
	}
	if months < 0 {
		return EmDash
	}

	years := months / 12
	rem := months % 12

	yearNoun := "anos"
	if years == 1 {
		yearNoun = "ano"
	}
	monthNoun := "meses"
	if rem == 1 {
		monthNoun = "mês"
	}
	return fmt.Sprintf("%d %s e %d %s", years, yearNoun, rem, monthNoun)
}
