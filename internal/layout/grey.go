package layout

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	upperHeading   = regexp.MustCompile(`^[A-ZÁÉÍÓÚÂÊÔÃÕÇ0-9\s\-]+:\s*$`)
	bulletMarker   = regexp.MustCompile(`^[-•]\s*(.*)$`)
	specialHeading = regexp.MustCompile(`(?i)^condicoes especiais:\s*$`)
	specialLead    = regexp.MustCompile(`(?i)^itens\s+nao\s+inclusos.*contratante:\s*$`)
)

// LineKind classifies one line of a free-text section.
type LineKind int

const (
	LineParagraph LineKind = iota
	LineBullet
	// LineHeading is an upper-case line ending in a colon.
	LineHeading
	// LineLead is the bold "Itens não inclusos ... contratante:" line that
	// opens a bulleted list.
	LineLead
)

// FoldAccents strips combining marks, so "Condições" becomes "Condicoes".
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// ClassifyLine returns the kind of a trimmed line and its text without any
// bullet marker.
func ClassifyLine(line string) (LineKind, string) {
	line = strings.TrimSpace(line)
	if m := bulletMarker.FindStringSubmatch(line); m != nil {
		return LineBullet, m[1]
	}
	if upperHeading.MatchString(line) {
		return LineHeading, line
	}
	if specialLead.MatchString(FoldAccents(line)) {
		return LineLead, line
	}
	return LineParagraph, line
}

// isSpecialConditions reports whether a heading opens the special
// conditions list.
func isSpecialConditions(heading string) bool {
	return specialHeading.MatchString(FoldAccents(strings.TrimSpace(heading)))
}

// greySection draws a title bar followed by lines flowed as headings,
// bullets and justified paragraphs.
func (e *Engine) greySection(title string, lines []string) {
	e.titleBar(title)
	e.flowLines(lines)
	e.cur.Advance(2)
}

// flowLines renders already-normalized lines in the body font. A heading
// starts a bulleted list when it is the special conditions heading and ends
// any list otherwise; the lead line always starts one.
func (e *Engine) flowLines(lines []string) {
	left := e.cfg.MarginX + e.cfg.TextInset
	width := e.contentW - e.cfg.TextInset

	e.s.SetTextColor(e.cfg.Palette.Text)
	e.setFont(Regular, e.cfg.BodySize)

	inList := false
	for _, raw := range lines {
		kind, text := ClassifyLine(raw)
		if text == "" && kind != LineBullet {
			continue
		}
		switch kind {
		case LineBullet:
			inList = true
			e.bullet(text, left, width)
		case LineHeading:
			inList = isSpecialConditions(text)
			e.heading(text, left)
		case LineLead:
			inList = true
			e.heading(text, left)
		default:
			if inList {
				e.bullet(text, left, width)
				continue
			}
			e.paragraph(text, left, width, e.cfg.ParagraphIndent, e.cfg.LineHeight, e.cfg.ParagraphAfter)
		}
	}
}

// heading draws a bold line, first moving to a new page unless the heading
// and the minimum trailing lines fit.
func (e *Engine) heading(text string, x float64) {
	e.ensureSpace(e.cfg.headingBlock())
	e.checkPageBreak(e.cfg.HeadingHeight)
	e.setFont(Bold, e.cfg.BodySize)
	e.s.Text(x, e.cur.Y, text, TextOptions{})
	e.cur.Advance(e.cfg.HeadingHeight)
	e.setFont(Regular, e.cfg.BodySize)
}

// bullet draws a filled dot and an indented justified paragraph.
func (e *Engine) bullet(text string, left, width float64) {
	e.ensureSpace(e.cfg.minTrailing())
	e.s.SetFillColor(e.cfg.Palette.Text)
	e.s.Circle(left+2.2, e.cur.Y+0.5, 0.8, Fill)
	e.paragraph(text, left+e.cfg.BulletIndent, width-e.cfg.BulletIndent, 0, e.cfg.LineHeight, e.cfg.ParagraphAfter)
}
