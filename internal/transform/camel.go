package transform

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CamelCase joins the words of s as camelCase: the first word lowercased,
// every following word with an uppercase first letter and lowercase rest.
//
// Words are separated by whitespace, underscores and hyphens, and also before
// an uppercase letter that follows a non-uppercase rune. The last rule keeps
// already camelCased input stable ("helloWorld" stays "helloWorld") while
// acronyms stay whole ("XMLFile" is one word).
//
// A one-rune word after the first is joined to the word that follows it, so
// "a b c" becomes "aBc" rather than "aBC", which would re-split differently.
func CamelCase(s string) string {
	words := joinSingles(splitWords(s))
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(Lowercase(words[0]))
	for _, w := range words[1:] {
		r, size := utf8.DecodeRuneInString(w)
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(w[0])
		} else {
			b.WriteRune(unicode.ToUpper(r))
		}
		b.WriteString(Lowercase(w[size:]))
	}
	return b.String()
}

// joinSingles prepends every one-rune word (other than the first and last)
// to the word after it.
func joinSingles(words []string) []string {
	if len(words) < 3 {
		return words
	}
	out := make([]string, 0, len(words))
	out = append(out, words[0])
	for i := 1; i < len(words); i++ {
		w := words[i]
		if i < len(words)-1 && utf8.RuneCountInString(w) == 1 {
			words[i+1] = w + words[i+1]
			continue
		}
		out = append(out, w)
	}
	return out
}

func isWordSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

// splitWords splits s into non-empty words at separators and case boundaries.
func splitWords(s string) []string {
	var words []string
	start := -1
	prev := rune(-1)

	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, s[start:end])
		}
		start = -1
	}

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			r = -1
		}

		switch {
		case r >= 0 && isWordSeparator(r):
			flush(i)
		case start < 0:
			start = i
		case r >= 0 && unicode.IsUpper(r) && !unicode.IsUpper(prev):
			flush(i)
			start = i
		}

		prev = r
		i += size
	}
	flush(len(s))
	return words
}
