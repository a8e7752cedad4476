// Package view derives read-only projections from the delivery table:
// the filtered person × activity matrix and per-person statements. Every
// projection is pure; rendering the same table twice yields identical output.
package view

import (
	"fmt"
	"strings"
	"time"

	"example.com/deliveries/internal/coerce"
	"example.com/deliveries/internal/domain"
)

// Projection is a filtered matrix view. An empty table and a filter that
// matches nothing are distinct outcomes; callers present them differently.
type Projection struct {
	People     []string
	Activities []string
	Cells      map[string]map[string]bool
	// Started holds the display text of each person's start date (em-dash
	// when absent).
	Started map[string]string

	tableEmpty bool
}

// Empty reports that the underlying table holds no people at all.
func (p Projection) Empty() bool { return p.tableEmpty }

// NoMatches reports that the table has data but the filters excluded all of it.
func (p Projection) NoMatches() bool {
	return !p.tableEmpty && (len(p.People) == 0 || len(p.Activities) == 0)
}

// Complete reports whether the person's row is fully delivered within the
// currently displayed activity set. Complete rows get distinct visual
// treatment in the UI.
func (p Projection) Complete(person string) bool {
	row, ok := p.Cells[person]
	if !ok || len(p.Activities) == 0 {
		return false
	}
	for _, activity := range p.Activities {
		if !row[activity] {
			return false
		}
	}
	return true
}

// Matrix pivots the table and applies optional equality filters on person
// and activity. Empty filter strings mean "all".
func Matrix(table *domain.Table, personFilter, activityFilter string) Projection {
	pivot := table.Pivot()
	out := Projection{
		Cells:      make(map[string]map[string]bool),
		Started:    make(map[string]string),
		tableEmpty: table.Len() == 0,
	}

	personFilter = domain.NormalizeName(personFilter)
	for _, person := range pivot.People {
		if personFilter != "" && person != personFilter {
			continue
		}
		out.People = append(out.People, person)
	}

	activityFilter = strings.TrimSpace(activityFilter)
	for _, activity := range pivot.Activities {
		if activityFilter != "" && activity != activityFilter {
			continue
		}
		out.Activities = append(out.Activities, activity)
	}

	for _, person := range out.People {
		row := make(map[string]bool, len(out.Activities))
		for _, activity := range out.Activities {
			row[activity] = pivot.Cells[person][activity]
		}
		out.Cells[person] = row
		out.Started[person] = StartedText(table, person)
	}
	return out
}

// StartedText renders the person's start date for display, em-dash when absent.
func StartedText(table *domain.Table, person string) string {
	started, ok := table.Started(person)
	if !ok {
		return coerce.EmDash
	}
	return coerce.FormatDate(started)
}

// Statement renders the per-person activity listing: a header with the
// formatted start date and elapsed time, then one line per known activity
// with its delivered marker. Returns domain.ErrPersonNotFound for unknown
// names.
func Statement(table *domain.Table, person string, today time.Time) (string, error) {
	if !table.HasPerson(person) {
		return "", domain.ErrPersonNotFound
	}
	normalized := domain.NormalizeName(person)

	var b strings.Builder
	fmt.Fprintf(&b, "Aprendiz: %s\n", normalized)
	fmt.Fprintf(&b, "Iniciação: %s\n", StartedText(table, normalized))
	if started, ok := table.Started(normalized); ok {
		fmt.Fprintf(&b, "Tempo de iniciado: %s\n", coerce.ElapsedSince(started, today))
	} else {
		fmt.Fprintf(&b, "Tempo de iniciado: %s\n", coerce.EmDash)
	}
	b.WriteString("\n")

	for _, activity := range table.Activities() {
		marker := "✗"
		if table.Delivered(normalized, activity) {
			marker = "✔"
		}
		fmt.Fprintf(&b, "%s %s\n", marker, activity)
	}
	return b.String(), nil
}
