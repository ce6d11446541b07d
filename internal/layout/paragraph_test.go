package layout_test

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porticus-lab/go-proposal-pdf/internal/layout"
)

// oneMM measures every rune, spaces included, as one millimetre.
func oneMM(s string) float64 { return float64(utf8.RuneCountInString(s)) }

func rightEdge(l layout.ParagraphLine) float64 {
	last := l.Words[len(l.Words)-1]
	return last.X + oneMM(last.Text)
}

func TestLayoutParagraphJustifiesAllButLastLine(t *testing.T) {
	lines := layout.LayoutParagraph(oneMM, "aa bb cc dd ee ff", 10, 10, 0)
	require.Len(t, lines, 2)

	first := lines[0]
	assert.Equal(t, "aa bb cc", first.Text())
	assert.True(t, first.Justified)
	assert.False(t, first.Last)
	assert.InDelta(t, 20.0, rightEdge(first), 1e-9, "justified line must end at the column edge")

	last := lines[1]
	assert.Equal(t, "dd ee ff", last.Text())
	assert.False(t, last.Justified)
	assert.True(t, last.Last)
	assert.InDelta(t, 10.0, last.Words[0].X, 1e-9)
	assert.InDelta(t, 18.0, rightEdge(last), 1e-9, "last line keeps natural spacing")
}

func TestLayoutParagraphFirstLineIndent(t *testing.T) {
	lines := layout.LayoutParagraph(oneMM, "aa bb cc dd ee", 10, 10, 2)
	require.Len(t, lines, 2)

	assert.InDelta(t, 12.0, lines[0].Words[0].X, 1e-9)
	assert.Equal(t, "aa bb cc", lines[0].Text())
	assert.InDelta(t, 20.0, rightEdge(lines[0]), 1e-9)
	assert.InDelta(t, 10.0, lines[1].Words[0].X, 1e-9)
}

func TestLayoutParagraphOverlongWord(t *testing.T) {
	lines := layout.LayoutParagraph(oneMM, "abcdefghijkl xy", 0, 5, 0)
	require.Len(t, lines, 2)
	assert.Equal(t, "abcdefghijkl", lines[0].Text())
	assert.False(t, lines[0].Justified, "single-word lines are never stretched")
	assert.Equal(t, "xy", lines[1].Text())
}

func TestLayoutParagraphEmpty(t *testing.T) {
	assert.Empty(t, layout.LayoutParagraph(oneMM, "   \n\t", 0, 100, 0))
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"fits", "aa bb", 10, []string{"aa bb"}},
		{"wraps", "aa bb cc", 5, []string{"aa bb", "cc"}},
		{"keeps newlines", "aa\nbb", 10, []string{"aa", "bb"}},
		{"long word alone", "abcdefgh ij", 4, []string{"abcdefgh", "ij"}},
		{"empty", "", 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, layout.WrapText(oneMM, tt.text, tt.width))
		})
	}
}
