package layout

// Color is an RGB color.
type Color struct {
	R, G, B uint8
}

// FontStyle selects the weight or slant of the body font.
type FontStyle string

const (
	Regular FontStyle = ""
	Bold    FontStyle = "B"
	Italic  FontStyle = "I"
)

// Align is the horizontal anchor of a text run relative to its x position.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Baseline is the vertical anchor of a text run relative to its y position.
type Baseline int

const (
	// BaselineAlphabetic places the text baseline at y.
	BaselineAlphabetic Baseline = iota
	// BaselineMiddle centers the text vertically on y.
	BaselineMiddle
)

// TextOptions tune a single Text call.
type TextOptions struct {
	Align    Align
	Baseline Baseline
}

// DrawStyle selects how a shape is painted.
type DrawStyle string

const (
	Fill       DrawStyle = "F"
	Stroke     DrawStyle = "D"
	FillStroke DrawStyle = "FD"
)

// Image is a decoded raster asset ready to be placed on a page.
type Image struct {
	// Name identifies the image inside the document; drawing the same name
	// twice reuses the embedded data.
	Name string
	Data []byte
	// Format is "PNG" or "JPG".
	Format string
	// Width and Height are the pixel dimensions, used for the aspect ratio.
	Width  int
	Height int
}

// Ratio returns width / height, or 4 when the dimensions are unknown.
func (img *Image) Ratio() float64 {
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return 4
	}
	return float64(img.Width) / float64(img.Height)
}

// Surface is the low-level drawing target. Coordinates are in millimetres
// from the top-left corner of the current page; pages are numbered from 1.
//
// Implementations record the first failure and report it from Err; drawing
// calls after a failure are no-ops.
type Surface interface {
	AddPage()
	PageCount() int
	CurrentPage() int
	SetPage(n int)
	PageSize() (w, h float64)

	SetFillColor(c Color)
	SetDrawColor(c Color)
	SetTextColor(c Color)
	SetLineWidth(w float64)
	Rect(x, y, w, h float64, style DrawStyle)
	Circle(x, y, r float64, style DrawStyle)

	SetFont(style FontStyle, size float64)
	// TextWidth measures s in the current font.
	TextWidth(s string) float64
	Text(x, y float64, s string, opts TextOptions)

	Image(img *Image, x, y, w, h float64)

	Err() error
}
