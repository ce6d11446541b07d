package layout

// DecideBreak reports whether a block of height required, starting at y,
// would cross the bottom margin of a page of height pageHeight.
func DecideBreak(y, required, pageHeight, bottomMargin float64) bool {
	return y+required > pageHeight-bottomMargin
}

// Cursor tracks the vertical drawing position on the current page.
type Cursor struct {
	Y            float64
	PageHeight   float64
	BottomMargin float64
	// HeaderHeight is the rendered height of the header image on the
	// current page, 0 when there is none.
	HeaderHeight float64
}

// Remaining returns the usable space left below Y.
func (c *Cursor) Remaining() float64 {
	return c.PageHeight - c.BottomMargin - c.Y
}

// Fits reports whether a block of height h fits below Y.
func (c *Cursor) Fits(h float64) bool {
	return !DecideBreak(c.Y, h, c.PageHeight, c.BottomMargin)
}

// Advance moves the cursor down by h.
func (c *Cursor) Advance(h float64) {
	c.Y += h
}
