package domain

import (
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"example.com/deliveries/internal/catalog"
	"example.com/deliveries/internal/coerce"
)

// NormalizeName canonicalises a person's display name: trimmed and
// upper-cased, so names differing only by case or surrounding whitespace
// collapse to one person.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

type person struct {
	name      string
	started   time.Time
	delivered map[string]bool
}

// Table is the in-memory delivery table: an ordered set of (person, activity,
// delivered) records plus an optional start date per person. At most one
// record exists per (person, activity) pair. The table is not safe for
// concurrent use; the session controller owns it exclusively.
type Table struct {
	people []*person
	byName map[string]*person

	// activity names observed in the data, in first-appearance order.
	// Extras (non-canonical names) keep this order when displayed after
	// the canonical block.
	observed []string
	seen     map[string]struct{}
}

// Load builds a table from raw store rows. No row is dropped: a missing
// delivered cell defaults to false, a missing or malformed start date to
// none. Rows are grouped by normalised person name; the first non-empty
// start date per person wins.
func Load(rows []Row) *Table {
	t := &Table{
		byName: make(map[string]*person),
		seen:   make(map[string]struct{}),
	}
	for _, row := range rows {
		name := NormalizeName(row.Person)
		p, ok := t.byName[name]
		if !ok {
			p = &person{name: name, delivered: make(map[string]bool)}
			t.people = append(t.people, p)
			t.byName[name] = p
		}

		activity := strings.TrimSpace(row.Activity)
		if activity == "" {
			continue
		}
		t.observe(activity)
		p.delivered[activity] = coerce.Bool(row.Delivered)

		if p.started.IsZero() {
			if started, ok := coerce.DateFromStore(row.Started); ok {
				p.started = started
			}
		}
	}
	return t
}

func (t *Table) observe(activity string) {
	if _, ok := t.seen[activity]; ok {
		return
	}
	t.seen[activity] = struct{}{}
	t.observed = append(t.observed, activity)
}

// Activities returns the display-ordered activity names present in the
// data: canonical activities in catalog order, then extras by first
// appearance. Canonical names nobody has a record for are not listed, so a
// row that delivered everything on display reads as complete.
func (t *Table) Activities() []string {
	return catalog.Order(t.observed)
}

// People returns every person name in pt-BR case-insensitive collation order.
func (t *Table) People() []string {
	names := make([]string, 0, len(t.people))
	for _, p := range t.people {
		names = append(names, p.name)
	}
	collate.New(language.BrazilianPortuguese, collate.IgnoreCase).SortStrings(names)
	return names
}

// Len reports the number of people in the table.
func (t *Table) Len() int { return len(t.people) }

// HasPerson reports whether the normalised name exists.
func (t *Table) HasPerson(name string) bool {
	_, ok := t.byName[NormalizeName(name)]
	return ok
}

// Started returns the person's start date, if any.
func (t *Table) Started(name string) (time.Time, bool) {
	p, ok := t.byName[NormalizeName(name)]
	if !ok || p.started.IsZero() {
		return time.Time{}, false
	}
	return p.started, true
}

// Delivered reports the delivery flag for a (person, activity) pair. A
// missing record reads as not delivered.
func (t *Table) Delivered(name, activity string) bool {
	p, ok := t.byName[NormalizeName(name)]
	if !ok {
		return false
	}
	return p.delivered[activity]
}

// AddPerson inserts a new person seeded with one not-delivered record per
// currently-known activity (canonical plus extras already in the table).
// The start date must already have passed validation; this operation does
// not re-validate it. Returns ErrDuplicatePerson on a normalised-name
// collision, leaving the table untouched.
func (t *Table) AddPerson(name string, started time.Time) error {
	normalized := NormalizeName(name)
	if _, ok := t.byName[normalized]; ok {
		return ErrDuplicatePerson
	}

	known := make([]string, 0, len(catalog.Activities)+len(t.observed))
	known = append(known, catalog.Activities...)
	known = append(known, t.observed...)

	p := &person{name: normalized, started: started, delivered: make(map[string]bool)}
	for _, activity := range catalog.Order(known) {
		t.observe(activity)
		p.delivered[activity] = false
	}
	t.people = append(t.people, p)
	t.byName[normalized] = p
	return nil
}

// RemovePerson deletes the person, all of their delivery records and their
// start date. Returns ErrPersonNotFound when the name is absent; the
// permissive no-op seen in older revisions of this tool was dropped in
// favour of an explicit error.
func (t *Table) RemovePerson(name string) error {
	normalized := NormalizeName(name)
	if _, ok := t.byName[normalized]; !ok {
		return ErrPersonNotFound
	}
	delete(t.byName, normalized)
	for i, p := range t.people {
		if p.name == normalized {
			t.people = append(t.people[:i], t.people[i+1:]...)
			break
		}
	}
	return nil
}

// SetDelivered updates one delivery flag. It reports whether the value
// actually changed so callers can skip redundant write-throughs, and
// returns ErrRecordNotFound when the (person, activity) record is absent.
func (t *Table) SetDelivered(name, activity string, value bool) (bool, error) {
	p, ok := t.byName[NormalizeName(name)]
	if !ok {
		return false, ErrRecordNotFound
	}
	current, ok := p.delivered[activity]
	if !ok {
		return false, ErrRecordNotFound
	}
	if current == value {
		return false, nil
	}
	p.delivered[activity] = value
	return true, nil
}

// Matrix is the pivoted person × activity view of the table.
type Matrix struct {
	People     []string
	Activities []string
	Cells      map[string]map[string]bool
}

// Pivot produces the person × activity delivered grid. Activities follow the
// catalog-then-extras order, people the pt-BR collation order. A person with
// no record for an activity reads as not delivered.
func (t *Table) Pivot() Matrix {
	activities := t.Activities()
	people := t.People()

	cells := make(map[string]map[string]bool, len(people))
	for _, name := range people {
		p := t.byName[name]
		row := make(map[string]bool, len(activities))
		for _, activity := range activities {
			row[activity] = p.delivered[activity]
		}
		cells[name] = row
	}
	return Matrix{People: people, Activities: activities, Cells: cells}
}

// Rows serialises the table back into the raw store schema: one row per
// existing (person, activity) record, delivered as True/False tokens and
// start dates as DD/MM/YYYY literals (empty when absent). People keep their
// insertion order so round-trips are stable.
func (t *Table) Rows() []Row {
	activities := t.Activities()
	rows := make([]Row, 0, len(t.people)*len(activities))
	for _, p := range t.people {
		for _, activity := range activities {
			delivered, ok := p.delivered[activity]
			if !ok {
				continue
			}
			rows = append(rows, Row{
				Person:    p.name,
				Activity:  activity,
				Delivered: coerce.FormatBool(delivered),
				Started:   coerce.FormatDate(p.started),
			})
		}
	}
	return rows
}
