package domain

import "errors"

var (
	// ErrDuplicatePerson is returned when adding a person whose normalised
	// name already exists in the table.
	ErrDuplicatePerson = errors.New("person already exists")
	// ErrPersonNotFound is returned when an edit targets an unknown person.
	ErrPersonNotFound = errors.New("person not found")
	// ErrRecordNotFound is returned when a delivery edit targets a
	// (person, activity) pair with no record.
	ErrRecordNotFound = errors.New("delivery record not found")
)
