package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripper decomposes to NFD, removes every combining mark (all of Unicode
// category Mn, not just the Vietnamese tone marks) and recomposes.
var stripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics removes combining marks from s. Input that fails to
// transform is returned unchanged.
func StripDiacritics(s string) string {
	out, _, err := transform.String(stripper, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize lowercases, strips diacritics and collapses whitespace. Used to
// build the payment transfer reference so it matches bank statement
// descriptions. Idempotent and total over any input.
func Normalize(s string) string {
	s = StripDiacritics(s)
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
