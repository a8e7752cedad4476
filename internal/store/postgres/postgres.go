// Package postgres implements the delivery store on PostgreSQL. It keeps
// the exact replace-on-write contract of the other adapters: every Write is
// one transaction that deletes the whole table and re-inserts every row.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/deliveries/internal/coerce"
	"example.com/deliveries/internal/domain"
	"example.com/deliveries/internal/store"
)

const schema = `CREATE TABLE IF NOT EXISTS deliveries (
    position  integer NOT NULL,
    person    text    NOT NULL,
    activity  text    NOT NULL,
    delivered boolean NOT NULL,
    started   date
)`

// Store provides Postgres-backed persistence for the delivery table.
type Store struct {
	pool *pgxpool.Pool
}

// New constructs a Store on the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the deliveries table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return store.Unavailable(err)
	}
	return nil
}

// Read loads every row in stored order. The position column preserves the
// insertion order the table relies on for extra-activity ordering.
func (s *Store) Read(ctx context.Context) ([]domain.Row, error) {
	const query = `SELECT person, activity, delivered, started FROM deliveries ORDER BY position`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, store.Unavailable(err)
	}
	defer rows.Close()

	var out []domain.Row
	for rows.Next() {
		var (
			person    string
			activity  string
			delivered bool
			started   *time.Time
		)
		if err := rows.Scan(&person, &activity, &delivered, &started); err != nil {
			return nil, store.Unavailable(err)
		}
		row := domain.Row{Person: person, Activity: activity, Delivered: delivered}
		if started != nil {
			row.Started = *started
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Unavailable(err)
	}
	return out, nil
}

// Write replaces the whole table inside a single transaction.
func (s *Store) Write(ctx context.Context, rows []domain.Row) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return store.Unavailable(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM deliveries`); err != nil {
		return store.Unavailable(err)
	}

	const insert = `INSERT INTO deliveries (position, person, activity, delivered, started) VALUES ($1,$2,$3,$4,$5)`
	for i, row := range rows {
		var started *time.Time
		if t, ok := coerce.DateFromStore(row.Started); ok {
			started = &t
		}
		if _, err := tx.Exec(ctx, insert, i, row.Person, row.Activity, coerce.Bool(row.Delivered), started); err != nil {
			return store.Unavailable(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return store.Unavailable(err)
	}
	return nil
}
