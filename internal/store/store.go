// Package store defines the backing-store contract for the delivery table
// and the session read cache. Adapters live in the subpackages (file, sheet,
// postgres); all of them round-trip the same raw row schema and share the
// whole-table-replace write contract: Write always submits the complete
// table, there is no diffing and no per-row update. Two sessions writing to
// one store race, and the last write wins; that limitation is documented,
// not mitigated.
package store

import (
	"context"
	"errors"
	"fmt"

	"example.com/deliveries/internal/domain"
)

// ErrUnavailable wraps any transport, auth or I/O failure raised by a
// backing store. Callers check it with errors.Is and surface the failure to
// the user; nothing here retries.
var ErrUnavailable = errors.New("store unavailable")

// Unavailable tags an underlying transport error with ErrUnavailable.
func Unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// Store reads and writes the delivery table as a whole.
type Store interface {
	Read(ctx context.Context) ([]domain.Row, error)
	Write(ctx context.Context, rows []domain.Row) error
}
