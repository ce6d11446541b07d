package layout

import "strings"

// Measure returns the width of s in the current font.
type Measure func(s string) float64

// WrapText breaks text into lines no wider than width, packing words
// greedily. Explicit newlines are kept. A word wider than width gets a line
// of its own.
func WrapText(measure Measure, text string, width float64) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if measure(candidate) > width {
				out = append(out, line)
				line = w
				continue
			}
			line = candidate
		}
		out = append(out, line)
	}
	return out
}

// fitOneLine shortens text until it fits width, marking the cut with an
// ellipsis.
func fitOneLine(measure Measure, text string, width float64) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}
	if measure(s) <= width {
		return s
	}
	r := []rune(s)
	for n := len(r) - 1; n > 0; n-- {
		if cut := string(r[:n]) + "…"; measure(cut) <= width {
			return cut
		}
	}
	return "…"
}
