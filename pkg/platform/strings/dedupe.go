// Package strings holds small slice helpers for identifiers read from config
// and list feeds.
package strings

import (
	"strings"
)

// DedupeAndTrim drops empty values and duplicates after trimming. Order is
// preserved.
//
//	DedupeAndTrim([]string{"  Alpha ", "Beta", "Alpha", ""})
//	// []string{"Alpha", "Beta"}
func DedupeAndTrim(values []string) []string {
	return DedupeFunc(values, strings.TrimSpace)
}

// DedupeCodes normalizes country or currency codes: trimmed, upper-cased,
// deduplicated.
//
//	DedupeCodes([]string{" kp", "KP", "ir"})
//	// []string{"KP", "IR"}
func DedupeCodes(values []string) []string {
	return DedupeFunc(values, func(s string) string {
		return strings.ToUpper(strings.TrimSpace(s))
	})
}

// DedupeFunc applies normalize to each value and keeps the first occurrence of
// every non-empty result.
func DedupeFunc(values []string, normalize func(string) string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		n := normalize(v)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		result = append(result, n)
	}
	return result
}
