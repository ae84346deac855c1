package usecases

import (
	"strings"
	"unicode"
)

// diacriticFold maps accented letters used by the supported locales onto
// their base form. Kept as an explicit table instead of a full Unicode
// decomposition pass; message text here is chat shorthand, not typography.
var diacriticFold = map[rune]rune{
	'á': 'a', 'à': 'a', 'ä': 'a', 'â': 'a', 'ã': 'a',
	'é': 'e', 'è': 'e', 'ë': 'e', 'ê': 'e',
	'í': 'i', 'ì': 'i', 'ï': 'i', 'î': 'i',
	'ó': 'o', 'ò': 'o', 'ö': 'o', 'ô': 'o', 'õ': 'o',
	'ú': 'u', 'ù': 'u', 'ü': 'u', 'û': 'u',
	'ñ': 'n', 'ç': 'c',
}

// Normalize lowercases, folds diacritics, strips everything that is not a
// letter, digit, or space, and collapses runs of whitespace. Total over any
// input; empty in, empty out.
func Normalize(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	lastSpace := true
	for _, r := range strings.ToLower(text) {
		if folded, ok := diacriticFold[r]; ok {
			r = folded
		}
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				sb.WriteRune(' ')
				lastSpace = true
			}
		}
		// everything else (punctuation, symbols, emoji) is dropped
	}

	return strings.TrimRight(sb.String(), " ")
}

// Tokenize splits normalized text into tokens.
func Tokenize(text string) []string {
	return strings.Fields(Normalize(text))
}

// Stem strips common plural/inflection suffixes so "zapatos" matches
// "zapato" and "dresses" matches "dress". Deliberately tiny; vocabulary
// entries are stemmed the same way before comparison.
func Stem(token string) string {
	n := len(token)
	// -es plurals only after the consonants that take them ("camiones",
	// "dresses"); "shoes" must lose just the "s"
	if n > 4 && strings.HasSuffix(token, "es") {
		switch token[n-3] {
		case 's', 'x', 'z', 'n', 'r', 'l':
			return token[:n-2]
		}
	}
	if n > 3 && strings.HasSuffix(token, "s") {
		return token[:n-1]
	}
	return token
}
