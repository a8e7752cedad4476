package store

import (
	"context"
	"sync"

	"example.com/deliveries/internal/domain"
)

// Memory is an in-process store used for local development and tests. It
// honours the same replace-on-write contract as the real adapters.
type Memory struct {
	mu   sync.Mutex
	rows []domain.Row

	// FailReads / FailWrites, when set, make the corresponding call return
	// the error wrapped as ErrUnavailable. Tests use this to exercise the
	// unavailable-store paths.
	FailReads  error
	FailWrites error
}

// NewMemory constructs a Memory store seeded with the given rows.
func NewMemory(rows []domain.Row) *Memory {
	return &Memory{rows: copyRows(rows)}
}

// Read returns a copy of the stored rows.
func (m *Memory) Read(ctx context.Context) ([]domain.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads != nil {
		return nil, Unavailable(m.FailReads)
	}
	return copyRows(m.rows), nil
}

// Write replaces the stored rows.
func (m *Memory) Write(ctx context.Context, rows []domain.Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return Unavailable(m.FailWrites)
	}
	m.rows = copyRows(rows)
	return nil
}

// Rows exposes the current contents for test assertions.
func (m *Memory) Rows() []domain.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyRows(m.rows)
}
