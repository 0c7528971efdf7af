package transform

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// turkishToASCII maps each Turkish-specific letter to its ASCII base letter,
// preserving case.
var turkishToASCII = map[rune]rune{
	'ç': 'c',
	'Ç': 'C',
	'ğ': 'g',
	'Ğ': 'G',
	'ı': 'i',
	'İ': 'I',
	'ö': 'o',
	'Ö': 'O',
	'ş': 's',
	'Ş': 'S',
	'ü': 'u',
	'Ü': 'U',
}

// Asciify replaces Turkish letters with their ASCII counterparts.
//
// Decomposed input (for example "s" followed by U+0327) is composed first so
// it matches the table. If no table letter is found the input is returned
// byte for byte, including any invalid UTF-8.
func Asciify(s string) string {
	src := s
	if !norm.NFC.IsNormalString(s) {
		src = norm.NFC.String(s)
	}

	var b strings.Builder
	b.Grow(len(src))
	replaced := false
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		if a, ok := turkishToASCII[r]; ok {
			b.WriteRune(a)
			replaced = true
		} else {
			b.WriteString(src[i : i+size])
		}
		i += size
	}

	if !replaced {
		return s
	}
	return b.String()
}
