package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold normaliza un texto para búsqueda: minúsculas y sin diacríticos,
// de modo que "Anillo Corazón" y "anillo corazon" sean equivalentes.
// Se usa al escribir (columna search_text) y al consultar.
func Fold(s string) string {
	// el transformer acumula estado interno, se construye por llamada
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return strings.ToLower(strings.TrimSpace(out))
}
