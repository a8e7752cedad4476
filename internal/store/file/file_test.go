package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/deliveries/internal/domain"
)

func TestMissingFileReadsAsEmptyStore(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "entregas.csv"))
	rows, err := st.Read(context.Background())
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := New(filepath.Join(t.TempDir(), "entregas.csv"))

	in := []domain.Row{
		{Person: "JOÃO", Activity: "Minha Iniciação", Delivered: "True", Started: "05/03/2024"},
		{Person: "JOÃO", Activity: "O Livro da Lei", Delivered: "False", Started: "05/03/2024"},
		{Person: "MARIA", Activity: "Minha Iniciação", Delivered: "False", Started: ""},
	}
	require.NoError(t, st.Write(ctx, in))

	out, err := st.Read(ctx)
	require.NoError(t, err)
	require.Len(t, out, 3)
	require.Equal(t, "JOÃO", out[0].Person)
	require.Equal(t, "True", out[0].Delivered)
	require.Equal(t, "05/03/2024", out[0].Started)
	require.Equal(t, "", out[2].Started)
}

func TestWriteReplacesWholeFile(t *testing.T) {
	ctx := context.Background()
	st := New(filepath.Join(t.TempDir(), "entregas.csv"))

	require.NoError(t, st.Write(ctx, []domain.Row{
		{Person: "A", Activity: "Minha Iniciação", Delivered: "True"},
		{Person: "B", Activity: "Minha Iniciação", Delivered: "True"},
	}))
	require.NoError(t, st.Write(ctx, []domain.Row{
		{Person: "C", Activity: "Minha Iniciação", Delivered: "False"},
	}))

	out, err := st.Read(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "C", out[0].Person)
}

func TestReadLegacyThreeColumnFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entregas.csv")
	legacy := "Aluno,Atividade,Entregue\nJOÃO,Minha Iniciação,True\nMARIA,O Livro da Lei,False\n"
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	out, err := New(path).Read(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "JOÃO", out[0].Person)
	require.Equal(t, "True", out[0].Delivered)
	require.Nil(t, out[0].Started)
}

func TestReadHeaderOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entregas.csv")
	require.NoError(t, os.WriteFile(path, []byte("Aprendiz,Atividade,Entregue,Data Iniciação\n"), 0o644))

	out, err := New(path).Read(context.Background())
	require.NoError(t, err)
	require.Empty(t, out)
}
