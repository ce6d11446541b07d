package layout

import (
	"fmt"

	"github.com/porticus-lab/go-proposal-pdf/proposal"
)

// FitHeader scales an image of aspect ratio (width / height) to the widest
// size that fits maxW x maxH.
func FitHeader(ratio, maxW, maxH float64) (w, h float64) {
	if ratio <= 0 {
		ratio = 4
	}
	w = maxW
	h = w / ratio
	if h > maxH {
		h = maxH
		w = h * ratio
	}
	return w, h
}

// drawHeaderImage draws the header image centered at the top of the current
// page and records its height. Without an image the height is 0.
func (e *Engine) drawHeaderImage() float64 {
	if e.header == nil {
		e.cur.HeaderHeight = 0
		return 0
	}
	w, h := FitHeader(e.header.Ratio(), e.pageW-2*e.cfg.MarginX, e.cfg.Header.MaxHeight)
	x := (e.pageW - w) / 2
	e.s.Image(e.header, x, e.cfg.Header.Y, w, h)
	e.cur.HeaderHeight = h
	return h
}

// contentStartY is the first usable y below the header of the current page.
func (e *Engine) contentStartY() float64 {
	return e.cfg.Header.Y + e.cur.HeaderHeight + e.cfg.Header.GapAfter
}

// documentTitle draws "PROPOSTA COMERCIAL Nº ..." centered below the header.
func (e *Engine) documentTitle(doc *proposal.Document) {
	number := doc.Metadata.DisplayNumber
	if number == "" {
		number = doc.Metadata.ID
	}
	if number == "" {
		number = "?"
	}
	start := e.contentStartY()
	e.s.SetTextColor(e.cfg.Palette.Text)
	e.setFont(Bold, e.cfg.DocTitleSize)
	e.s.Text(e.pageW/2, start+4, fmt.Sprintf("PROPOSTA COMERCIAL Nº %s", number), TextOptions{Align: AlignCenter})
	e.cur.Y = start + 12
}
