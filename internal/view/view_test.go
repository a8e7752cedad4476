package view

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/deliveries/internal/coerce"
	"example.com/deliveries/internal/domain"
)

func testTable() *domain.Table {
	return domain.Load([]domain.Row{
		{Person: "João", Activity: "Minha Iniciação", Delivered: "True", Started: "05/03/2024"},
		{Person: "João", Activity: "O Livro da Lei", Delivered: "True"},
		{Person: "Maria", Activity: "Minha Iniciação", Delivered: "False"},
		{Person: "Maria", Activity: "O Livro da Lei", Delivered: "True"},
	})
}

func TestMatrixPersonFilterReturnsOneRow(t *testing.T) {
	projection := Matrix(testTable(), "JOÃO", "")
	require.Equal(t, []string{"JOÃO"}, projection.People)
	require.False(t, projection.Empty())
	require.False(t, projection.NoMatches())
	require.Equal(t, "05/03/2024", projection.Started["JOÃO"])
}

func TestMatrixPersonFilterNormalises(t *testing.T) {
	projection := Matrix(testTable(), "  joão ", "")
	require.Equal(t, []string{"JOÃO"}, projection.People)
}

func TestMatrixActivityFilter(t *testing.T) {
	projection := Matrix(testTable(), "", "O Livro da Lei")
	require.Equal(t, []string{"O Livro da Lei"}, projection.Activities)
	require.True(t, projection.Cells["JOÃO"]["O Livro da Lei"])
}

func TestMatrixNoMatchesDistinctFromEmpty(t *testing.T) {
	noMatches := Matrix(testTable(), "NINGUÉM", "")
	require.True(t, noMatches.NoMatches())
	require.False(t, noMatches.Empty())

	empty := Matrix(domain.Load(nil), "", "")
	require.True(t, empty.Empty())
	require.False(t, empty.NoMatches())
}

func TestMatrixUnfilteredShowsPresentActivities(t *testing.T) {
	// The unfiltered matrix displays the activities present in the data, not
	// the whole catalog, so a person who delivered everything on display
	// reads as complete.
	projection := Matrix(testTable(), "", "")
	require.Equal(t, []string{"Minha Iniciação", "O Livro da Lei"}, projection.Activities)
	require.True(t, projection.Complete("JOÃO"))
}

func TestCompleteRowRule(t *testing.T) {
	// Within the displayed set, João delivered everything; Maria did not.
	projection := Matrix(testTable(), "", "")
	require.True(t, projection.Complete("JOÃO"))
	require.False(t, projection.Complete("MARIA"))

	// Narrowing the displayed activities can make a row complete.
	narrowed := Matrix(testTable(), "", "O Livro da Lei")
	require.True(t, narrowed.Complete("MARIA"))
}

func TestStartedTextAbsent(t *testing.T) {
	require.Equal(t, coerce.EmDash, StartedText(testTable(), "MARIA"))
}

func TestStatementContent(t *testing.T) {
	today := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)

	text, err := Statement(testTable(), "joão", today)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(text, "Aprendiz: JOÃO\n"))
	require.Contains(t, text, "Iniciação: 05/03/2024")
	require.Contains(t, text, "Tempo de iniciado: 1 ano e 1 mês")
	require.Contains(t, text, "✔ Minha Iniciação")
	require.Contains(t, text, "✗ A Pedra Bruta")

	// Idempotent: the same table renders the same statement.
	again, err := Statement(testTable(), "JOÃO", today)
	require.NoError(t, err)
	require.Equal(t, text, again)
}

func TestStatementUnknownPerson(t *testing.T) {
	_, err := Statement(testTable(), "Pedro", time.Now())
	require.ErrorIs(t, err, domain.ErrPersonNotFound)
}
