package layout

import (
	"testing"
	"unicode/utf8"
)

func TestFitOneLine(t *testing.T) {
	measure := func(s string) float64 { return float64(utf8.RuneCountInString(s)) }
	tests := []struct {
		text  string
		width float64
		want  string
	}{
		{"abc", 4, "abc"},
		{"  abc  ", 3, "abc"},
		{"abcdef", 4, "abc…"},
		{"ação longa", 5, "ação…"},
		{"", 4, ""},
	}
	for _, tt := range tests {
		if got := fitOneLine(measure, tt.text, tt.width); got != tt.want {
			t.Errorf("fitOneLine(%q, %v) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestFitOneLineWideEllipsis(t *testing.T) {
	// The ellipsis costs three units, so the cut must be measured with it.
	measure := func(s string) float64 {
		n := 0.0
		for _, r := range s {
			if r == '…' {
				n += 3
				continue
			}
			n++
		}
		return n
	}
	tests := []struct {
		text  string
		width float64
		want  string
	}{
		{"abcdef", 4, "a…"},
		{"abcdef", 5, "ab…"},
		{"abcdef", 2, "…"},
	}
	for _, tt := range tests {
		got := fitOneLine(measure, tt.text, tt.width)
		if got != tt.want {
			t.Errorf("fitOneLine(%q, %v) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}
