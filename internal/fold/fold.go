// Package fold provides the canonical string comparison used for matching
// question text against dataset values.
//
// All comparisons in the query pipeline are case-insensitive and must not
// depend on how the input was composed, so every string is reduced to a
// comparison key first: Unicode NFC normalization followed by full case
// folding. Folding (not lowercasing) keeps comparisons stable for scripts
// where case mapping is not a simple per-rune operation.
package fold

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Key returns the comparison key for s: NFC-normalized, case-folded.
// Keys are only meaningful when compared against other keys.
func Key(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// Equal reports whether a and b have the same comparison key.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}

// Contains reports whether the comparison key of s contains the
// comparison key of substr. Every string contains the empty string.
func Contains(s, substr string) bool {
	return strings.Contains(Key(s), Key(substr))
}
