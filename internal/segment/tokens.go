package segment

import (
	"unicode"
	"unicode/utf8"
)

// Tokenize splits text at whitespace boundaries keeping the whitespace.
// The result alternates word, whitespace, word, ... and always starts and
// ends with a (possibly empty) word, so even indices are words. Joining the
// tokens reproduces text exactly.
func Tokenize(text string) []string {
	var tokens []string
	i := 0
	for {
		j := indexFunc(text, i, unicode.IsSpace)
		tokens = append(tokens, text[i:j])
		if j == len(text) {
			return tokens
		}
		k := indexFunc(text, j, func(r rune) bool { return !unicode.IsSpace(r) })
		tokens = append(tokens, text[j:k])
		i = k
	}
}

// indexFunc returns the first byte index >= from whose rune satisfies f, or len(s).
func indexFunc(s string, from int, f func(rune) bool) int {
	for i := from; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if f(r) {
			return i
		}
		i += size
	}
	return len(s)
}
