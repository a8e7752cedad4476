// Package catalog defines the canonical activity list and its display order.
package catalog

// Activities is the fixed ordered list of canonical apprentice activities.
// The order here is the display order; it never changes at runtime.
var Activities = []string{
	"Minha Iniciação",
	"1ª Instrução",
	"2ª Instrução",
	"3ª Instrução",
	"4ª Instrução",
	"5ª Instrução",
	"6ª Instrução",
	"7ª Instrução",
	"O Livro da Lei",
	"A Coluna Booz",
	"O Templo de Salomão",
	"A Pedra Bruta",
	"O Avental de Aprendiz",
	"O Bode na Maçonaria",
	"A Cadeia de União",
	"Questionário de Aprendiz",
}

var canonicalIndex = func() map[string]int {
	idx := make(map[string]int, len(Activities))
	for i, name := range Activities {
		idx[name] = i
	}
	return idx
}()

// IsCanonical reports whether name belongs to the canonical catalog.
func IsCanonical(name string) bool {
	_, ok := canonicalIndex[name]
	return ok
}

// Order arranges the given activity names for display: canonical names first
// in catalog order, then any extra names in order of first appearance. Pure
// and deterministic for a given input order.
func Order(present []string) []string {
	seen := make(map[string]struct{}, len(present))
	canonical := make([]bool, len(Activities))
	extras := make([]string, 0)

	for _, name := range present {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if i, ok := canonicalIndex[name]; ok {
			canonical[i] = true
		} else {
			extras = append(extras, name)
		}
	}

	out := make([]string, 0, len(seen))
	for i, present := range canonical {
		if present {
			out = append(out, Activities[i])
		}
	}
	return append(out, extras...)
}
