// Package rtext provides Unicode-aware text normalization helpers used
// when folding reference and substitution names, going beyond the
// ASCII-only case folding a naive implementation would use.
package rtext

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

var foldCaser = cases.Fold()

// FoldLower lowercases r (including titlecase/uppercase Unicode letters,
// not just ASCII A-Z) and narrows any full-width variant to its
// canonical form first, so e.g. a full-width Latin letter folds the
// same as its ASCII counterpart.
func FoldLower(s string) string {
	return foldCaser.String(width.Narrow.String(s))
}

// DisplayCaser returns a language-tagged title caser, used by callers
// that need to present a normalized name back to a human (e.g. CLI
// diagnostics) rather than use it as a lookup key.
func DisplayCaser(tag language.Tag) cases.Caser {
	return cases.Title(tag)
}
