package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogHasSixteenActivities(t *testing.T) {
	require.Len(t, Activities, 16)
	require.Equal(t, "Minha Iniciação", Activities[0])
	require.Equal(t, "Questionário de Aprendiz", Activities[15])
}

func TestOrderCanonicalFirstThenExtras(t *testing.T) {
	got := Order([]string{"O Livro da Lei", "Minha Iniciação", "Extra X"})
	require.Equal(t, []string{"Minha Iniciação", "O Livro da Lei", "Extra X"}, got)
}

func TestOrderExtrasKeepFirstAppearance(t *testing.T) {
	got := Order([]string{"Zeta", "1ª Instrução", "Alfa", "Zeta", "Minha Iniciação"})
	require.Equal(t, []string{"Minha Iniciação", "1ª Instrução", "Zeta", "Alfa"}, got)
}

func TestOrderDeduplicates(t *testing.T) {
	got := Order([]string{"A Pedra Bruta", "A Pedra Bruta"})
	require.Equal(t, []string{"A Pedra Bruta"}, got)
}

func TestOrderEmptyInput(t *testing.T) {
	require.Empty(t, Order(nil))
}

func TestIsCanonical(t *testing.T) {
	require.True(t, IsCanonical("A Cadeia de União"))
	require.False(t, IsCanonical("Extra X"))
}
