package proposalpdf

import "github.com/porticus-lab/go-proposal-pdf/internal/layout"

// PageSize represents paper dimensions in millimetres.
type PageSize struct {
	Width  float64 // Width in millimetres.
	Height float64 // Height in millimetres.
}

// Standard paper sizes.
var (
	A4     = PageSize{Width: 210, Height: 297}
	A5     = PageSize{Width: 148, Height: 210}
	Letter = PageSize{Width: 215.9, Height: 279.4}
	Legal  = PageSize{Width: 215.9, Height: 355.6}
)

// Orientation represents the page orientation.
type Orientation int

const (
	// Portrait is the default vertical orientation.
	Portrait Orientation = iota
	// Landscape rotates the page to horizontal orientation.
	Landscape
)

// PageConfig controls the page geometry of a rendered proposal.
//
// A nil PageConfig or zero-value fields use the defaults of
// [DefaultPageConfig]: A4 portrait, 20 mm side margins, 25 mm bottom margin
// and a running header at most 18 mm tall placed 6 mm from the top edge.
type PageConfig struct {
	// Size specifies the paper size. Defaults to A4.
	Size PageSize

	// Orientation specifies portrait or landscape. Defaults to Portrait.
	Orientation Orientation

	// SideMargin is the left and right margin in millimetres.
	SideMargin float64

	// BottomMargin is the reserved space above the bottom edge. Content
	// never crosses it; the page number sits inside it.
	BottomMargin float64

	// HeaderTop is the distance from the top edge to the header image.
	HeaderTop float64

	// HeaderMaxHeight caps the header image height. The image keeps its
	// aspect ratio within the content width and this height.
	HeaderMaxHeight float64

	// HeaderGap is the space between the header image and the content.
	HeaderGap float64
}

// DefaultPageConfig returns a PageConfig with the proposal defaults.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Size:            A4,
		Orientation:     Portrait,
		SideMargin:      20,
		BottomMargin:    25,
		HeaderTop:       6,
		HeaderMaxHeight: 18,
		HeaderGap:       8,
	}
}

// resolved returns a PageConfig with all zero values replaced by defaults.
func (p *PageConfig) resolved() PageConfig {
	d := DefaultPageConfig()
	if p == nil {
		return d
	}
	r := *p
	if r.Size.Width <= 0 || r.Size.Height <= 0 {
		r.Size = d.Size
	}
	if r.SideMargin <= 0 {
		r.SideMargin = d.SideMargin
	}
	if r.BottomMargin <= 0 {
		r.BottomMargin = d.BottomMargin
	}
	if r.HeaderTop <= 0 {
		r.HeaderTop = d.HeaderTop
	}
	if r.HeaderMaxHeight <= 0 {
		r.HeaderMaxHeight = d.HeaderMaxHeight
	}
	if r.HeaderGap <= 0 {
		r.HeaderGap = d.HeaderGap
	}
	return r
}

// dimensions returns the page width and height in millimetres, accounting
// for orientation.
func (p *PageConfig) dimensions() (width, height float64) {
	r := p.resolved()
	w, h := r.Size.Width, r.Size.Height
	if r.Orientation == Landscape {
		return h, w
	}
	return w, h
}

// layoutConfig applies the page geometry to the base layout measures.
func (p *PageConfig) layoutConfig(base layout.Config) layout.Config {
	r := p.resolved()
	base.MarginX = r.SideMargin
	base.BottomMargin = r.BottomMargin
	base.Header = layout.HeaderConfig{
		Y:         r.HeaderTop,
		MaxHeight: r.HeaderMaxHeight,
		GapAfter:  r.HeaderGap,
	}
	return base
}
