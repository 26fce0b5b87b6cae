// Package text normaliza strings para busca sem acentos.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// remove marcas de combinação (acentos) após decomposição NFD.
var stripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize remove acentos e baixa a caixa: "Feijão Carioca" -> "feijao carioca".
// Usado na busca de produtos para que "feijao" encontre "Feijão".
func Normalize(s string) string {
	out, _, err := transform.String(stripper, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
