package ledger

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// NameKey clave de comparación de nombres de bienes y personas: recorta, normaliza a NFC
// y aplica plegado de mayúsculas Unicode. "  paracetamol " y "Paracetamol" comparten clave.
func NameKey(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return folder.String(norm.NFC.String(s))
}

// SameName compara dos nombres con NameKey.
func SameName(a, b string) bool {
	return NameKey(a) == NameKey(b)
}
