// Package session owns the single mutable copy of the delivery table for
// the lifetime of one interactive session. Every edit command is applied to
// the held table and, when the table actually changed, written through to
// the backing store synchronously. There is no batching and no retry: a
// failed write leaves the in-memory change in place, flags it unsaved, and
// the explicit refresh/save commands double as the retry path.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"example.com/deliveries/internal/catalog"
	"example.com/deliveries/internal/coerce"
	"example.com/deliveries/internal/domain"
	"example.com/deliveries/internal/events"
	"example.com/deliveries/internal/observability"
	"example.com/deliveries/internal/store"
	"example.com/deliveries/internal/view"
)

// State is the controller lifecycle state.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoaded        State = "loaded"
	StateError         State = "error"
)

// Validation failures for user input. No state mutation happens when one of
// these is returned.
var (
	ErrEmptyName     = errors.New("person name is required")
	ErrMalformedDate = errors.New("start date must be DD/MM/YYYY")
	ErrFutureDate    = errors.New("start date cannot be in the future")
	ErrNotLoaded     = errors.New("session not initialised")
)

// Publisher emits change-feed events after successful write-throughs.
type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
}

// Invalidator is implemented by cached stores; Refresh drops the session
// cache before re-reading.
type Invalidator interface {
	Invalidate()
}

// Option configures optional controller behaviour.
type Option func(*Controller)

// WithLogger overrides the logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithPublisher attaches a change-feed publisher.
func WithPublisher(p Publisher) Option {
	return func(c *Controller) { c.publisher = p }
}

// WithClock overrides the time source used for future-date validation and
// elapsed-time rendering.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller drives the session state machine:
// Uninitialized → Loaded ⇄ Error. Error is recoverable by retrying the load.
type Controller struct {
	id        string
	store     store.Store
	publisher Publisher
	logger    *log.Logger
	now       func() time.Time

	mu      sync.Mutex
	state   State
	table   *domain.Table
	unsaved bool
}

// New constructs a Controller over the given store.
func New(st store.Store, opts ...Option) *Controller {
	c := &Controller{
		id:     uuid.NewString(),
		store:  st,
		logger: log.New(log.Writer(), "[session] ", log.LstdFlags),
		now:    time.Now,
		state:  StateUninitialized,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the session identifier used in logs and feed events.
func (c *Controller) ID() string { return c.id }

// State reports the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Unsaved reports whether the in-memory table holds changes that failed to
// persist.
func (c *Controller) Unsaved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unsaved
}

// Init reads the backing store and takes ownership of the table. An empty
// store is seeded with the default person "Aprendiz 1" carrying every
// canonical activity not delivered, written back immediately so the store
// is never left without schema rows.
func (c *Controller) Init(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.store.Read(ctx)
	if err != nil {
		c.state = StateError
		return err
	}
	observability.RecordStoreRead()

	if len(rows) == 0 {
		c.table = domain.Load(seedRows())
		if err := c.persistLocked(ctx); err != nil {
			return err
		}
		c.publish(ctx, events.TypeRosterSeeded, c.id, events.RosterSeeded{
			EventID:    uuid.NewString(),
			SessionID:  c.id,
			Activities: len(catalog.Activities),
			OccurredAt: c.now().UTC(),
		})
		return nil
	}

	c.table = domain.Load(rows)
	c.state = StateLoaded
	return nil
}

// Refresh invalidates the session cache and re-reads the store, replacing
// the held table. On failure the previous table stays in place and the
// controller enters the error state.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if inv, ok := c.store.(Invalidator); ok {
		inv.Invalidate()
	}
	rows, err := c.store.Read(ctx)
	if err != nil {
		c.state = StateError
		return err
	}
	observability.RecordStoreRead()

	c.table = domain.Load(rows)
	c.state = StateLoaded
	c.unsaved = false
	return nil
}

// AddPerson validates the form input, inserts the person and writes through.
// The raw date is the DD/MM/YYYY form field value; empty means no start date
// is recorded.
func (c *Controller) AddPerson(ctx context.Context, name, rawDate string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table == nil {
		return ErrNotLoaded
	}
	if domain.NormalizeName(name) == "" {
		return ErrEmptyName
	}

	var started time.Time
	if rawDate != "" {
		parsed, ok := coerce.ParseDate(rawDate)
		if !ok {
			return ErrMalformedDate
		}
		if parsed.After(c.today()) {
			return ErrFutureDate
		}
		started = parsed
	}

	if err := c.table.AddPerson(name, started); err != nil {
		return err
	}
	if err := c.persistLocked(ctx); err != nil {
		return err
	}

	c.publish(ctx, events.TypePersonAdded, domain.NormalizeName(name), events.PersonAdded{
		EventID:    uuid.NewString(),
		SessionID:  c.id,
		Person:     domain.NormalizeName(name),
		Started:    coerce.FormatDate(started),
		OccurredAt: c.now().UTC(),
	})
	return nil
}

// RemovePerson deletes the person and their records, then writes through.
func (c *Controller) RemovePerson(ctx context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table == nil {
		return ErrNotLoaded
	}
	if err := c.table.RemovePerson(name); err != nil {
		return err
	}
	if err := c.persistLocked(ctx); err != nil {
		return err
	}

	c.publish(ctx, events.TypePersonRemoved, domain.NormalizeName(name), events.PersonRemoved{
		EventID:    uuid.NewString(),
		SessionID:  c.id,
		Person:     domain.NormalizeName(name),
		OccurredAt: c.now().UTC(),
	})
	return nil
}

// SetDelivered toggles one delivery flag. An idempotent call (value already
// set) reports no change and performs no store write.
func (c *Controller) SetDelivered(ctx context.Context, person, activity string, value bool) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table == nil {
		return false, ErrNotLoaded
	}
	changed, err := c.table.SetDelivered(person, activity, value)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}
	if err := c.persistLocked(ctx); err != nil {
		return true, err
	}

	c.publish(ctx, events.TypeDeliveryMarked, domain.NormalizeName(person), events.DeliveryMarked{
		EventID:    uuid.NewString(),
		SessionID:  c.id,
		Person:     domain.NormalizeName(person),
		Activity:   activity,
		Delivered:  value,
		OccurredAt: c.now().UTC(),
	})
	return true, nil
}

// Matrix projects the held table through the view filters.
func (c *Controller) Matrix(personFilter, activityFilter string) (view.Projection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table == nil {
		return view.Projection{}, ErrNotLoaded
	}
	return view.Matrix(c.table, personFilter, activityFilter), nil
}

// Statement renders the per-person activity statement.
func (c *Controller) Statement(person string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table == nil {
		return "", ErrNotLoaded
	}
	return view.Statement(c.table, person, c.today())
}

// persistLocked writes the whole table through to the store. On failure the
// in-memory table keeps the edit, the unsaved flag is raised and the
// controller enters the error state; the caller surfaces the failure.
func (c *Controller) persistLocked(ctx context.Context) error {
	if err := c.store.Write(ctx, c.table.Rows()); err != nil {
		c.state = StateError
		c.unsaved = true
		c.logger.Printf("session %s: write-through failed: %v", c.id, err)
		return err
	}
	c.state = StateLoaded
	c.unsaved = false
	observability.RecordStoreWrite(c.now().UTC())
	return nil
}

func (c *Controller) publish(ctx context.Context, eventType, key string, payload any) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(ctx, eventType, key, payload); err != nil {
		c.logger.Printf("session %s: feed publish %s failed: %v", c.id, eventType, err)
	}
}

func (c *Controller) today() time.Time {
	now := c.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// seedPerson is the roster's initial person name, used only when the store
// starts empty.
const seedPerson = "Aprendiz 1"

// seedRows builds the initial schema row set: one not-delivered record per
// canonical activity for the default person.
func seedRows() []domain.Row {
	rows := make([]domain.Row, 0, len(catalog.Activities))
	for _, activity := range catalog.Activities {
		rows = append(rows, domain.Row{Person: seedPerson, Activity: activity, Delivered: "False"})
	}
	return rows
}
