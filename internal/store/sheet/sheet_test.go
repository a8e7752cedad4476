package sheet

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/deliveries/internal/domain"
	"example.com/deliveries/internal/store"
)

func newTestStore(handler http.HandlerFunc) (*Store, *httptest.Server) {
	server := httptest.NewServer(handler)
	st := New(Config{
		BaseURL:       server.URL,
		SpreadsheetID: "sheet-1",
		Range:         "Entregas!A:D",
		Token:         "token-1",
	})
	return st, server
}

func TestReadUnformattedValues(t *testing.T) {
	st, server := newTestStore(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Contains(t, r.URL.RawQuery, "valueRenderOption=UNFORMATTED_VALUE")
		require.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		// Unformatted cells: native booleans and serial date numbers.
		payload := map[string]any{
			"values": []any{
				[]any{"Aprendiz", "Atividade", "Entregue", "Data Iniciação"},
				[]any{"JOÃO", "Minha Iniciação", true, 45356},
				[]any{"MARIA", "O Livro da Lei", false, ""},
			},
		}
		_ = json.NewEncoder(w).Encode(payload)
	})
	defer server.Close()

	rows, err := st.Read(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "JOÃO", rows[0].Person)
	require.Equal(t, true, rows[0].Delivered)
	require.Equal(t, float64(45356), rows[0].Started)
}

func TestReadHeaderOnlySheetIsEmpty(t *testing.T) {
	st, server := newTestStore(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"values": []any{
			[]any{"Aprendiz", "Atividade", "Entregue", "Data Iniciação"},
		}})
	})
	defer server.Close()

	rows, err := st.Read(context.Background())
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestWriteClearsThenReplaces(t *testing.T) {
	var calls []string
	var submitted valueRange

	st, server := newTestStore(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, ":clear"):
			require.Equal(t, http.MethodPost, r.Method)
			calls = append(calls, "clear")
		default:
			require.Equal(t, http.MethodPut, r.Method)
			require.Contains(t, r.URL.RawQuery, "valueInputOption=USER_ENTERED")
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(body, &submitted))
			calls = append(calls, "update")
		}
		w.WriteHeader(http.StatusOK)
	})
	defer server.Close()

	err := st.Write(context.Background(), []domain.Row{
		{Person: "JOÃO", Activity: "Minha Iniciação", Delivered: "True", Started: "05/03/2024"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"clear", "update"}, calls)

	require.Len(t, submitted.Values, 2)
	require.Equal(t, []any{"Aprendiz", "Atividade", "Entregue", "Data Iniciação"}, submitted.Values[0])
	require.Equal(t, []any{"JOÃO", "Minha Iniciação", "True", "05/03/2024"}, submitted.Values[1])
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	st, server := newTestStore(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})
	defer server.Close()

	_, err := st.Read(context.Background())
	require.ErrorIs(t, err, store.ErrUnavailable)

	err = st.Write(context.Background(), nil)
	require.ErrorIs(t, err, store.ErrUnavailable)
}
