package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var symbolRunRegex = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Name reduces a free-text name to its comparison form: decompose, strip
// combining marks, collapse every run of non-letter/non-digit characters to a
// single space, trim and lower-case. It is idempotent, so normalized names
// can be re-normalized safely.
//
//	Name("Loja São João - Unidade #1") == "loja sao joao unidade 1"
func Name(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, value)
	if err != nil {
		// Transform only fails on broken UTF-8; fall back to the raw text.
		plain = value
	}

	plain = symbolRunRegex.ReplaceAllString(plain, " ")
	return strings.ToLower(strings.TrimSpace(plain))
}
