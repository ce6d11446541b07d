// Package layouttest provides a recording [layout.Surface] for tests.
//
// The Recorder keeps every drawing call in order, tagged with the page it
// was drawn on, and measures text with a fixed advance per rune so layout
// results are deterministic across machines.
package layouttest

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/porticus-lab/go-proposal-pdf/internal/layout"
)

// A4 page size in millimetres.
const (
	A4Width  = 210.0
	A4Height = 297.0
)

// ptToMM converts a font size in points to millimetres.
const ptToMM = 25.4 / 72

// Op kinds.
const (
	OpText   = "text"
	OpRect   = "rect"
	OpCircle = "circle"
	OpImage  = "image"
)

// Op is one recorded drawing call.
type Op struct {
	Page  int
	Kind  string
	X, Y  float64
	W, H  float64
	Text  string
	Style layout.FontStyle
	Size  float64
	Draw  layout.DrawStyle
	Opts  layout.TextOptions
	Fill  layout.Color
	Color layout.Color
}

// Recorder is an in-memory layout.Surface.
type Recorder struct {
	W, H float64

	pages   int
	current int
	fill    layout.Color
	draw    layout.Color
	text    layout.Color
	style   layout.FontStyle
	size    float64
	err     error

	Ops []Op
}

// NewRecorder returns an A4 portrait recorder.
func NewRecorder() *Recorder {
	return &Recorder{W: A4Width, H: A4Height, size: 10}
}

// Fail makes every later Err call return err.
func (r *Recorder) Fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Recorder) AddPage() {
	r.pages++
	r.current = r.pages
}

func (r *Recorder) PageCount() int   { return r.pages }
func (r *Recorder) CurrentPage() int { return r.current }

func (r *Recorder) SetPage(n int) {
	if n < 1 || n > r.pages {
		r.Fail(errors.New("layouttest: page out of range"))
		return
	}
	r.current = n
}

func (r *Recorder) PageSize() (float64, float64) { return r.W, r.H }

func (r *Recorder) SetFillColor(c layout.Color) { r.fill = c }
func (r *Recorder) SetDrawColor(c layout.Color) { r.draw = c }
func (r *Recorder) SetTextColor(c layout.Color) { r.text = c }
func (r *Recorder) SetLineWidth(float64)        {}

func (r *Recorder) Rect(x, y, w, h float64, style layout.DrawStyle) {
	r.Ops = append(r.Ops, Op{Page: r.current, Kind: OpRect, X: x, Y: y, W: w, H: h, Draw: style, Fill: r.fill, Color: r.draw})
}

func (r *Recorder) Circle(x, y, rad float64, style layout.DrawStyle) {
	r.Ops = append(r.Ops, Op{Page: r.current, Kind: OpCircle, X: x, Y: y, W: rad, H: rad, Draw: style, Fill: r.fill})
}

func (r *Recorder) SetFont(style layout.FontStyle, size float64) {
	r.style = style
	r.size = size
}

// TextWidth gives every rune half an em.
func (r *Recorder) TextWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * r.size * 0.5 * ptToMM
}

func (r *Recorder) Text(x, y float64, s string, opts layout.TextOptions) {
	r.Ops = append(r.Ops, Op{
		Page: r.current, Kind: OpText, X: x, Y: y, W: r.TextWidth(s),
		Text: s, Style: r.style, Size: r.size, Opts: opts, Color: r.text,
	})
}

func (r *Recorder) Image(img *layout.Image, x, y, w, h float64) {
	name := ""
	if img != nil {
		name = img.Name
	}
	r.Ops = append(r.Ops, Op{Page: r.current, Kind: OpImage, X: x, Y: y, W: w, H: h, Text: name})
}

func (r *Recorder) Err() error { return r.err }

// Texts returns every drawn string in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Find returns the text ops whose text contains sub.
func (r *Recorder) Find(sub string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == OpText && strings.Contains(op.Text, sub) {
			out = append(out, op)
		}
	}
	return out
}

// First returns the first text op containing sub.
func (r *Recorder) First(sub string) (Op, bool) {
	for _, op := range r.Ops {
		if op.Kind == OpText && strings.Contains(op.Text, sub) {
			return op, true
		}
	}
	return Op{}, false
}

// OnPage returns the ops drawn on page n.
func (r *Recorder) OnPage(n int) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Page == n {
			out = append(out, op)
		}
	}
	return out
}

// Count returns how many ops of kind were recorded.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
