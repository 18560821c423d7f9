// Package matcher normalizes and compares names for screening.
//
// All functions are pure. Similarity is a normalized Levenshtein distance over
// runes, so accented and non-Latin names compare by character rather than byte.
package matcher

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s, strips combining marks, turns punctuation into
// spaces, and collapses runs of whitespace to a single space.
func Normalize(s string) string {
	// transform.Chain is stateful, so a fresh chain is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, folded)
	return strings.Join(strings.Fields(folded), " ")
}

// Similarity returns 1 - distance/maxLen over normalized inputs, in [0, 1].
// Two empty strings are identical.
func Similarity(a, b string) float64 {
	return similarityNormalized(Normalize(a), Normalize(b))
}

func similarityNormalized(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}

// EqualFold reports whether a and b are equal after normalization.
func EqualFold(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// ContainsEither reports whether either normalized string contains the other
// as a substring. Empty inputs never match.
func ContainsEither(a, b string) bool {
	return containsEither(Normalize(a), Normalize(b))
}

func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// ContainsWord reports whether the normalized text contains word as a run of
// whole words. Empty inputs never match.
func ContainsWord(text, word string) bool {
	t, w := Normalize(text), Normalize(word)
	if t == "" || w == "" {
		return false
	}
	return strings.Contains(" "+t+" ", " "+w+" ")
}

// Name is a pre-normalized name for repeated comparisons against many candidates.
type Name struct {
	raw        string
	normalized string
}

// NewName normalizes raw once.
func NewName(raw string) Name {
	return Name{raw: raw, normalized: Normalize(raw)}
}

// String returns the original input.
func (n Name) String() string { return n.raw }

// IsEmpty reports whether the name normalizes to nothing.
func (n Name) IsEmpty() bool { return n.normalized == "" }

// Equal reports exact normalized equality with other.
func (n Name) Equal(other string) bool {
	return n.normalized == Normalize(other)
}

// Contains reports substring containment in either direction.
func (n Name) Contains(other string) bool {
	return containsEither(n.normalized, Normalize(other))
}

// Similarity compares n against other.
func (n Name) Similarity(other string) float64 {
	return similarityNormalized(n.normalized, Normalize(other))
}
