package transform

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CollapseSpaces turns every whitespace run into a single space and trims both ends.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IsSafe reports whether r belongs to [a-zA-Z0-9._-].
func IsSafe(r rune) bool {
	return r < utf8.RuneSelf && (isASCIIAlnum(byte(r)) || r == '.' || r == '_' || r == '-')
}

// SafeChars deletes every character outside [a-zA-Z0-9._-], or replaces each
// one with a single underscore when replace is set. An invalid UTF-8 byte
// counts as one character.
func SafeChars(s string, replace bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case size == 1 && IsSafe(r):
			b.WriteByte(s[i])
		case replace:
			b.WriteByte('_')
		}
		i += size
	}
	return b.String()
}

// RemoveNonASCII drops every byte >= 0x80, which removes all non-ASCII code
// points and any invalid UTF-8.
func RemoveNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] < utf8.RuneSelf {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Underscore replaces ASCII spaces with underscores.
func Underscore(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}

// Lowercase lowercases every valid rune and keeps invalid bytes as they are.
func Lowercase(s string) string {
	return mapValid(s, unicode.ToLower)
}

// mapValid applies f to each decodable rune of s, copying invalid bytes verbatim.
func mapValid(s string, f func(rune) rune) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(s[i])
		} else {
			b.WriteRune(f(r))
		}
		i += size
	}
	return b.String()
}
