package strings

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil slice", input: nil, expected: nil},
		{name: "empty slice", input: []string{}, expected: []string{}},
		{
			name:     "aliases keep their case",
			input:    []string{"  Alpha Corp ", "ALPHA CORP", "Alpha Corp"},
			expected: []string{"Alpha Corp", "ALPHA CORP"},
		},
		{
			name:     "drops blanks and repeats",
			input:    []string{"Rex", "", "  ", "Rex", "Max"},
			expected: []string{"Rex", "Max"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestDedupeCodes(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil slice", input: nil, expected: nil},
		{
			name:     "upper-cases and dedupes across case",
			input:    []string{" kp", "KP", "ir ", "Ir", "SY"},
			expected: []string{"KP", "IR", "SY"},
		},
		{
			name:     "blank codes are dropped",
			input:    []string{"", "  ", "mm"},
			expected: []string{"MM"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeCodes(tt.input))
		})
	}
}

func TestDedupeFunc(t *testing.T) {
	got := DedupeFunc([]string{"a-1", "A-1", "b-2"}, strings.ToLower)
	assert.Equal(t, []string{"a-1", "b-2"}, got)
}
