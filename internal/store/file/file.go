// Package file implements the delivery store against a local delimited file.
package file

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"example.com/deliveries/internal/domain"
	"example.com/deliveries/internal/store"
)

var header = []string{"Aprendiz", "Atividade", "Entregue", "Data Iniciação"}

// Store reads and writes the table as a CSV file with the header
// `Aprendiz,Atividade,Entregue,Data Iniciação`. Legacy files using the
// `Aluno` column name and files without the date column are accepted on
// read; writes always emit the full four-column form. A missing file reads
// as an empty store.
type Store struct {
	path string
}

// New constructs a file store at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Read loads every data row. Short rows are backfilled: a missing delivered
// cell reads as blank (coerced to false downstream), a missing date column
// as no start date.
func (s *Store) Read(ctx context.Context) ([]domain.Row, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, store.Unavailable(err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, store.Unavailable(err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([]domain.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := domain.Row{}
		if len(record) > 0 {
			row.Person = record[0]
		}
		if len(record) > 1 {
			row.Activity = record[1]
		}
		if len(record) > 2 {
			row.Delivered = record[2]
		}
		if len(record) > 3 {
			row.Started = record[3]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Write replaces the whole file. The write goes to a temp file in the same
// directory first so a failure mid-write cannot truncate the existing table.
func (s *Store) Write(ctx context.Context, rows []domain.Row) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".entregas-*")
	if err != nil {
		return store.Unavailable(err)
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	if err := writer.Write(header); err != nil {
		tmp.Close()
		return store.Unavailable(err)
	}
	for _, row := range rows {
		record := []string{row.Person, row.Activity, cell(row.Delivered), cell(row.Started)}
		if err := writer.Write(record); err != nil {
			tmp.Close()
			return store.Unavailable(err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return store.Unavailable(err)
	}
	if err := tmp.Close(); err != nil {
		return store.Unavailable(err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return store.Unavailable(err)
	}
	return nil
}

func cell(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(v)
	}
}
