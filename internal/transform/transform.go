package transform

import "strings"

// Options selects which pipeline stages run.
type Options struct {
	Asciify        bool
	CollapseSpaces bool
	Underscore     bool
	CamelCase      bool
	RemoveNonASCII bool
	Lowercase      bool
	SafeCharsOnly  bool
	ReplaceUnsafe  bool // only meaningful with SafeCharsOnly
}

// maxPasses bounds the fixed-point iteration in Transform.
const maxPasses = 8

// Transform maps a base name to its cleaned form. It never fails.
//
// One pass of the pipeline can move the stem/extension boundary: "Rapor  .şablon"
// has no extension until ş becomes s, and the space before the dot is only
// trimmed once ".sablon" is split off. Transform therefore repeats the pass
// until the name stops changing. If that does not happen within maxPasses the
// input is returned unchanged. Either way Transform(Transform(x)) == Transform(x).
func Transform(name string, opts Options) string {
	cur := name
	for i := 0; i < maxPasses; i++ {
		next := pass(cur, opts)
		if next == cur {
			return cur
		}
		cur = next
	}
	return name
}

// pass runs every enabled stage once.
func pass(name string, opts Options) string {
	stem, ext := SplitExt(name)

	if opts.Asciify {
		stem = Asciify(stem)
	}
	if opts.CollapseSpaces {
		stem = CollapseSpaces(stem)
	}
	if opts.SafeCharsOnly {
		stem = SafeChars(stem, opts.ReplaceUnsafe)
	}
	if opts.RemoveNonASCII {
		stem = RemoveNonASCII(stem)
		if opts.CollapseSpaces {
			stem = CollapseSpaces(stem)
		}
	}
	if opts.Underscore {
		stem = Underscore(stem)
	}
	if opts.CamelCase {
		stem = CamelCase(stem)
	}

	if stem == "" {
		return name
	}

	out := stem + ext
	if opts.Lowercase {
		out = Lowercase(out)
	}
	if out == "." || out == ".." {
		return name
	}
	return out
}

// SplitExt splits name into stem and extension, the extension keeping its dot.
//
// The extension is the text after the last dot when it is a non-empty run of
// ASCII letters and digits. A dotfile without a further dot (".bashrc") has no
// extension.
func SplitExt(name string) (stem, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return name, ""
	}
	for j := i + 1; j < len(name); j++ {
		if !isASCIIAlnum(name[j]) {
			return name, ""
		}
	}
	return name[:i], name[i:]
}

func isASCIIAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
