// Package sheet implements the delivery store against a remote spreadsheet
// values API.
package sheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"example.com/deliveries/internal/domain"
	"example.com/deliveries/internal/store"
)

var header = []any{"Aprendiz", "Atividade", "Entregue", "Data Iniciação"}

// Config identifies the spreadsheet and how to reach it.
type Config struct {
	BaseURL       string
	SpreadsheetID string
	Range         string
	Token         string
}

// Store talks to the spreadsheet values endpoints. Reads request unformatted
// raw cell values so booleans and serial dates arrive untouched; writes
// clear the range and resubmit the whole table with user-entered
// interpretation so the service coerces True/False tokens and date literals
// into native cells. There is no partial update and no concurrency control.
type Store struct {
	cfg        Config
	httpClient *http.Client
}

// New constructs a sheet store with sane client defaults.
func New(cfg Config) *Store {
	return &Store{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type valueRange struct {
	Range  string  `json:"range,omitempty"`
	Values [][]any `json:"values"`
}

// Read fetches the sheet and maps data rows positionally under the header
// row. An absent or header-only sheet reads as an empty store.
func (s *Store) Read(ctx context.Context) ([]domain.Row, error) {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?valueRenderOption=UNFORMATTED_VALUE",
		s.cfg.BaseURL, s.cfg.SpreadsheetID, url.PathEscape(s.cfg.Range))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, store.Unavailable(err)
	}
	s.authorize(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, store.Unavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, store.Unavailable(fmt.Errorf("sheet read status %d: %s", resp.StatusCode, body))
	}

	var payload valueRange
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, store.Unavailable(err)
	}
	if len(payload.Values) <= 1 {
		return nil, nil
	}

	rows := make([]domain.Row, 0, len(payload.Values)-1)
	for _, record := range payload.Values[1:] {
		row := domain.Row{}
		if len(record) > 0 {
			row.Person = stringCell(record[0])
		}
		if len(record) > 1 {
			row.Activity = stringCell(record[1])
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

// Write clears the range and resubmits header plus every row.
func (s *Store) Write(ctx context.Context, rows []domain.Row) error {
	if err := s.clear(ctx); err != nil {
		return err
	}

	values := make([][]any, 0, len(rows)+1)
	values = append(values, header)
	for _, row := range rows {
		values = append(values, []any{row.Person, row.Activity, row.Delivered, row.Started})
	}

	body, err := json.Marshal(valueRange{Values: values})
	if err != nil {
		return store.Unavailable(err)
	}

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?valueInputOption=USER_ENTERED",
		s.cfg.BaseURL, s.cfg.SpreadsheetID, url.PathEscape(s.cfg.Range))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return store.Unavailable(err)
	}
	req.Header.Set("Content-Type", "application/json")
	s.authorize(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return store.Unavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return store.Unavailable(fmt.Errorf("sheet write status %d: %s", resp.StatusCode, data))
	}
	return nil
}

func (s *Store) clear(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s:clear",
		s.cfg.BaseURL, s.cfg.SpreadsheetID, url.PathEscape(s.cfg.Range))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return store.Unavailable(err)
	}
	s.authorize(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return store.Unavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return store.Unavailable(fmt.Errorf("sheet clear status %d: %s", resp.StatusCode, data))
	}
	return nil
}

func (s *Store) authorize(req *http.Request) {
	if s.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	}
}

func stringCell(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
