package pdftext

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// Span is a run of text shown at one position, in page points with the
// origin at the bottom left.
type Span struct {
	X, Y float64
	Size float64
	Text string
}

// Extractor pulls text out of a Document's pages.
type Extractor struct {
	doc *Document
	// LineTolerance is the largest baseline difference, in points, for two
	// spans to count as the same line.
	LineTolerance float64
}

// NewExtractor returns an Extractor for doc.
func NewExtractor(doc *Document) *Extractor {
	return &Extractor{doc: doc, LineTolerance: 2}
}

// ExtractPage returns the text of page i, counted from zero, one line per
// baseline from top to bottom.
func (e *Extractor) ExtractPage(i int) (string, error) {
	spans, err := e.Spans(i)
	if err != nil {
		return "", err
	}
	return e.lines(spans), nil
}

// ExtractAll returns the text of every page.
func (e *Extractor) ExtractAll() ([]string, error) {
	out := make([]string, e.doc.NumPages())
	for i := range out {
		text, err := e.ExtractPage(i)
		if err != nil {
			return nil, err
		}
		out[i] = text
	}
	return out, nil
}

// Spans returns the text spans of page i in drawing order.
func (e *Extractor) Spans(i int) ([]Span, error) {
	if i < 0 || i >= e.doc.NumPages() {
		return nil, fmt.Errorf("%w: %d", ErrPageRange, i)
	}
	content, err := e.doc.contents(i)
	if err != nil {
		return nil, err
	}
	st := &textState{
		doc:       e.doc,
		resources: e.doc.pages[i].resources,
		ctm:       identity,
		tm:        identity,
		lm:        identity,
	}
	if err := st.run(content); err != nil {
		return nil, fmt.Errorf("pdftext: page %d: %w", i+1, err)
	}
	return st.spans, nil
}

func (e *Extractor) lines(spans []Span) string {
	sorted := make([]Span, 0, len(spans))
	for _, s := range spans {
		if strings.TrimSpace(s.Text) != "" {
			sorted = append(sorted, s)
		}
	}
	sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].Y > sorted[b].Y })

	var groups [][]Span
	for _, s := range sorted {
		n := len(groups)
		if n > 0 && groups[n-1][0].Y-s.Y <= e.LineTolerance {
			groups[n-1] = append(groups[n-1], s)
			continue
		}
		groups = append(groups, []Span{s})
	}

	out := make([]string, 0, len(groups))
	for _, g := range groups {
		sort.SliceStable(g, func(a, b int) bool { return g[a].X < g[b].X })
		words := make([]string, len(g))
		for k, s := range g {
			words[k] = strings.TrimSpace(s.Text)
		}
		out = append(out, strings.Join(words, " "))
	}
	return strings.Join(out, "\n")
}

type matrix [6]float64

var identity = matrix{1, 0, 0, 1, 0, 0}

// mul returns m × n.
func (m matrix) mul(n matrix) matrix {
	return matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

func (m matrix) apply(x, y float64) (float64, float64) {
	return x*m[0] + y*m[2] + m[4], x*m[1] + y*m[3] + m[5]
}

type textState struct {
	doc       *Document
	resources Dict

	ctm    matrix
	saved  []matrix
	tm, lm matrix

	font    font
	size    float64
	leading float64
	charSp  float64
	wordSp  float64
	// joined reports that the next shown string continues the last span.
	joined bool

	spans []Span
}

// glyphWidth approximates the advance of one glyph in text space units,
// since the standard fonts carry no width table in the file.
const glyphWidth = 0.5

func (st *textState) run(content []byte) error {
	s := newScanner(content, 0)
	var operands []*Value
	for {
		s.skip()
		if s.eof() {
			return nil
		}
		switch b := s.buf[s.off]; {
		case b == '(' || b == '<' || b == '/' || b == '[' || b == '+' || b == '-' || b == '.' || (b >= '0' && b <= '9'):
			v, err := s.value()
			if err != nil {
				return err
			}
			operands = append(operands, v)
			continue
		}
		op := s.token()
		switch op {
		case "":
			s.off++
			continue
		case "true", "false":
			operands = append(operands, &Value{Kind: Bool, Bool: op == "true"})
			continue
		case "BI":
			if i := bytes.Index(s.buf[s.off:], []byte("EI")); i >= 0 {
				s.off += i + 2
			} else {
				s.off = len(s.buf)
			}
		default:
			st.apply(op, operands)
		}
		operands = operands[:0]
	}
}

func nums(ops []*Value, n int) ([]float64, bool) {
	if len(ops) < n {
		return nil, false
	}
	out := make([]float64, n)
	for i, v := range ops[len(ops)-n:] {
		f, ok := v.Number()
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

func (st *textState) apply(op string, ops []*Value) {
	switch op {
	case "q":
		st.saved = append(st.saved, st.ctm)
	case "Q":
		if n := len(st.saved); n > 0 {
			st.ctm = st.saved[n-1]
			st.saved = st.saved[:n-1]
		}
	case "cm":
		if f, ok := nums(ops, 6); ok {
			st.ctm = matrix{f[0], f[1], f[2], f[3], f[4], f[5]}.mul(st.ctm)
		}
	case "BT":
		st.tm, st.lm = identity, identity
		st.joined = false
	case "Tf":
		if len(ops) >= 2 && ops[0].Kind == Name {
			st.font = st.doc.fontFor(st.resources, ops[0].Name)
			st.size, _ = ops[1].Number()
		}
	case "TL":
		if f, ok := nums(ops, 1); ok {
			st.leading = f[0]
		}
	case "Tc":
		if f, ok := nums(ops, 1); ok {
			st.charSp = f[0]
		}
	case "Tw":
		if f, ok := nums(ops, 1); ok {
			st.wordSp = f[0]
		}
	case "Td":
		if f, ok := nums(ops, 2); ok {
			st.moveLine(f[0], f[1])
		}
	case "TD":
		if f, ok := nums(ops, 2); ok {
			st.leading = -f[1]
			st.moveLine(f[0], f[1])
		}
	case "Tm":
		if f, ok := nums(ops, 6); ok {
			st.lm = matrix{f[0], f[1], f[2], f[3], f[4], f[5]}
			st.tm = st.lm
			st.joined = false
		}
	case "T*":
		st.moveLine(0, -st.leading)
	case "Tj":
		if len(ops) > 0 {
			st.show(ops[len(ops)-1].Bytes)
		}
	case "'":
		st.moveLine(0, -st.leading)
		if len(ops) > 0 {
			st.show(ops[len(ops)-1].Bytes)
		}
	case "\"":
		if len(ops) == 3 {
			st.wordSp, _ = ops[0].Number()
			st.charSp, _ = ops[1].Number()
			st.moveLine(0, -st.leading)
			st.show(ops[2].Bytes)
		}
	case "TJ":
		if len(ops) > 0 && ops[len(ops)-1].Kind == Array {
			st.showArray(ops[len(ops)-1].Array)
		}
	}
}

func (st *textState) moveLine(tx, ty float64) {
	st.lm = matrix{1, 0, 0, 1, tx, ty}.mul(st.lm)
	st.tm = st.lm
	st.joined = false
}

func (st *textState) show(b []byte) {
	if len(b) == 0 {
		return
	}
	text := st.font.text(b)
	m := st.tm.mul(st.ctm)
	x, y := m.apply(0, 0)

	if n := len(st.spans); st.joined && n > 0 {
		st.spans[n-1].Text += text
	} else {
		st.spans = append(st.spans, Span{X: x, Y: y, Size: st.size * m[3], Text: text})
	}
	st.advance(len(b), bytes.Count(b, []byte{' '}))
	st.joined = true
}

func (st *textState) showArray(items []*Value) {
	for _, it := range items {
		switch it.Kind {
		case String:
			st.show(it.Bytes)
		case Int, Real:
			adj, _ := it.Number()
			// Large negative kerning stands in for a space.
			if adj < -250 && len(st.spans) > 0 && st.joined {
				st.spans[len(st.spans)-1].Text += " "
			}
			st.tm = matrix{1, 0, 0, 1, -adj / 1000 * st.size, 0}.mul(st.tm)
		}
	}
}

// advance moves the text matrix past shown glyphs.
func (st *textState) advance(glyphs, spaces int) {
	tx := float64(glyphs)*(glyphWidth*st.size+st.charSp) + float64(spaces)*st.wordSp
	st.tm = matrix{1, 0, 0, 1, tx, 0}.mul(st.tm)
}
