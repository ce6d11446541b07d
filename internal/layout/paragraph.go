package layout

import "strings"

// PlacedWord is one word of a laid-out line at its final x position.
type PlacedWord struct {
	Text string
	X    float64
}

// ParagraphLine is one output line of a paragraph.
type ParagraphLine struct {
	Words []PlacedWord
	// Justified is set when the inter-word gaps were stretched so the line
	// ends exactly at the right edge of the column.
	Justified bool
	// Last marks the final line of the paragraph.
	Last bool
}

// Text joins the words of the line with single spaces.
func (l ParagraphLine) Text() string {
	s := make([]string, len(l.Words))
	for i, w := range l.Words {
		s[i] = w.Text
	}
	return strings.Join(s, " ")
}

// LayoutParagraph wraps text into lines starting at x within maxW and
// justifies every line except the last one and single-word lines. The first
// line is shifted right by indent. Every line holds at least one word.
func LayoutParagraph(measure Measure, text string, x, maxW, indent float64) []ParagraphLine {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	spaceW := measure(" ")

	var lines []ParagraphLine
	first := true
	for i := 0; i < len(words); {
		lineX := x
		avail := maxW
		if first {
			lineX += indent
			avail -= indent
		}

		j := i
		width := 0.0
		for j < len(words) {
			add := measure(words[j])
			if j > i {
				add += spaceW
			}
			if j > i && width+add > avail {
				break
			}
			width += add
			j++
		}

		line := ParagraphLine{Last: j >= len(words)}
		gaps := j - i - 1
		extra := 0.0
		if gaps > 0 && !line.Last {
			extra = (avail - width) / float64(gaps)
			if extra < 0 {
				extra = 0
			}
			line.Justified = true
		}

		cx := lineX
		for k := i; k < j; k++ {
			line.Words = append(line.Words, PlacedWord{Text: words[k], X: cx})
			cx += measure(words[k]) + spaceW + extra
		}
		lines = append(lines, line)

		i = j
		first = false
	}
	return lines
}

// paragraph draws a justified paragraph at the cursor, breaking pages
// between lines, then adds after below it.
func (e *Engine) paragraph(text string, x, maxW, indent, lineH, after float64) {
	for _, line := range LayoutParagraph(e.s.TextWidth, text, x, maxW, indent) {
		e.checkPageBreak(lineH)
		if line.Justified {
			for _, w := range line.Words {
				e.s.Text(w.X, e.cur.Y, w.Text, TextOptions{})
			}
		} else {
			e.s.Text(line.Words[0].X, e.cur.Y, line.Text(), TextOptions{})
		}
		e.cur.Advance(lineH)
	}
	e.cur.Advance(after)
}
