// Package events defines the change-feed payloads emitted after successful
// write-throughs.
package events

import "time"

// Event type names carried in the message headers.
const (
	TypePersonAdded    = "roster.person_added"
	TypePersonRemoved  = "roster.person_removed"
	TypeDeliveryMarked = "roster.delivery_marked"
	TypeRosterSeeded   = "roster.seeded"
)

// PersonAdded is emitted when a new person joins the roster.
type PersonAdded struct {
	EventID    string    `json:"event_id"`
	SessionID  string    `json:"session_id"`
	Person     string    `json:"person"`
	Started    string    `json:"started,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PersonRemoved is emitted when a person and all their records are removed.
type PersonRemoved struct {
	EventID    string    `json:"event_id"`
	SessionID  string    `json:"session_id"`
	Person     string    `json:"person"`
	OccurredAt time.Time `json:"occurred_at"`
}

// DeliveryMarked is emitted when a delivery flag actually changes.
type DeliveryMarked struct {
	EventID    string    `json:"event_id"`
	SessionID  string    `json:"session_id"`
	Person     string    `json:"person"`
	Activity   string    `json:"activity"`
	Delivered  bool      `json:"delivered"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RosterSeeded is emitted when an empty store is initialised with the
// default person's schema row set.
type RosterSeeded struct {
	EventID    string    `json:"event_id"`
	SessionID  string    `json:"session_id"`
	Activities int       `json:"activities"`
	OccurredAt time.Time `json:"occurred_at"`
}
