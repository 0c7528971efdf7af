// Package transform implements the filename cleaning pipeline.
//
// Transform is a pure function: it never touches the filesystem and reads no
// global state other than the immutable Turkish lookup table. Callers pass
// every option explicitly through Options.
//
// # Stage order
//
// Enabled stages always run in this order:
//
//  1. Asciify         Turkish letters to ASCII (ç→c, İ→I, ...)
//  2. CollapseSpaces  whitespace runs to one space, trimmed
//  3. SafeChars       keep [a-zA-Z0-9._-], delete or replace the rest
//  4. RemoveNonASCII  drop code points >= 128
//  5. Underscore      space to "_"
//  6. CamelCase       words joined as camelCase
//  7. Lowercase       whole name lowercased
//
// # Extensions
//
// The extension (see SplitExt) is split off before stage 1 and reattached
// after stage 6, so stages 1-6 only see the stem. CamelCase leaves the
// extension verbatim. Lowercase runs on the reassembled name and therefore
// lowercases the extension as well: "Report.PDF" with
// camelCase becomes "report.PDF", with lowercase "report.pdf".
//
// When CollapseSpaces and RemoveNonASCII are both enabled, whitespace exposed
// by removing characters is collapsed again so the output is stable under a
// second pass.
//
// If the stem ends up empty the input is returned unchanged; the pipeline
// never produces ".ext", "." or "..".
//
// A pass can turn text after the last dot into a valid extension ("a .şablon"
// becomes "a .sablon"), which changes the split for the next pass. Transform
// repeats the pass until the name is stable, so running the tool twice never
// renames a file a second time.
//
// # Example
//
//	opts := transform.Options{Asciify: true, CollapseSpaces: true, Underscore: true}
//	transform.Transform("Şarkı   listesi.MP3", opts) // "Sarki_listesi.MP3"
package transform
