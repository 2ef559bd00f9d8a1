// Package normalize aporta plegado de texto para búsquedas insensibles a
// mayúsculas y acentos (ej. "Café" y "cafe" deben coincidir).
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold devuelve el texto en minúsculas y sin marcas diacríticas.
// Se usa al guardar la columna de búsqueda y al plegar el término buscado,
// de modo que ambos lados comparen igual.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
