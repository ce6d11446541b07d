package layout

// HeaderConfig places the running header image.
type HeaderConfig struct {
	Y         float64
	MaxHeight float64
	GapAfter  float64
}

// TableConfig sizes the line-item tables.
type TableConfig struct {
	RowHeight      float64
	HeadHeight     float64
	PadX           float64
	PadY           float64
	BodySize       float64
	NameSize       float64
	DescSize       float64
	LineWidth      float64
	SubtotalHeight float64
	SubtotalSize   float64
}

// Palette holds the fill and text colors.
type Palette struct {
	TitleBar    Color
	TableHead   Color
	Grid        Color
	Subtotal    Color
	GrandTotal  Color
	Band        Color
	Description Color
	Text        Color
	HeadText    Color
}

// Config carries every layout measure, in millimetres unless noted.
type Config struct {
	MarginX      float64
	BottomMargin float64
	Header       HeaderConfig

	// MinBottomLines is the fewest body lines allowed to follow a heading
	// at the bottom of a page.
	MinBottomLines int

	SectionTop    float64
	SectionBottom float64
	TitleHeight   float64
	AfterTitle    float64
	TitleSize     float64 // points

	Row       float64
	RowTight  float64
	ValueGap  float64
	ColPadX   float64
	Wrap      float64
	FieldSize float64 // points

	BodySize        float64 // points
	LineHeight      float64
	HeadingHeight   float64
	TextInset       float64
	ParagraphIndent float64
	ParagraphAfter  float64
	BulletIndent    float64

	DocTitleSize float64 // points
	FooterSize   float64 // points

	TotalHeight float64
	TotalSize   float64 // points

	AcceptancePlace string

	Table   TableConfig
	Palette Palette
}

// DefaultConfig returns the A4 proposal layout.
func DefaultConfig() Config {
	return Config{
		MarginX:      20,
		BottomMargin: 25,
		Header:       HeaderConfig{Y: 6, MaxHeight: 18, GapAfter: 8},

		MinBottomLines: 3,

		SectionTop:    2,
		SectionBottom: 4,
		TitleHeight:   8,
		AfterTitle:    4,
		TitleSize:     11,

		Row:       4.6,
		RowTight:  3.8,
		ValueGap:  1.6,
		ColPadX:   5,
		Wrap:      60,
		FieldSize: 10,

		BodySize:        10,
		LineHeight:      5.0,
		HeadingHeight:   5.2,
		TextInset:       6,
		ParagraphIndent: 2.5,
		ParagraphAfter:  1.5,
		BulletIndent:    6,

		DocTitleSize: 18,
		FooterSize:   8,

		TotalHeight: 7.2,
		TotalSize:   12,

		AcceptancePlace: "São Paulo",

		Table: TableConfig{
			RowHeight:      10.2,
			HeadHeight:     8.6,
			PadX:           2,
			PadY:           1.2,
			BodySize:       8,
			NameSize:       9.6,
			DescSize:       8.7,
			LineWidth:      0.1,
			SubtotalHeight: 7.2,
			SubtotalSize:   11,
		},
		Palette: Palette{
			TitleBar:    Color{66, 133, 244},
			TableHead:   Color{10, 42, 102},
			Grid:        Color{200, 200, 200},
			Subtotal:    Color{214, 124, 28},
			GrandTotal:  Color{76, 175, 80},
			Band:        Color{220, 220, 220},
			Description: Color{100, 100, 100},
			Text:        Color{0, 0, 0},
			HeadText:    Color{255, 255, 255},
		},
	}
}

// minTrailing is the space reserved below a heading for following lines.
func (c Config) minTrailing() float64 {
	return float64(c.MinBottomLines) * c.LineHeight
}

// headingBlock is the space a text heading needs together with the minimum
// number of paragraph lines that must follow it on the same page.
func (c Config) headingBlock() float64 {
	return c.HeadingHeight + float64(c.MinBottomLines)*(c.LineHeight+c.ParagraphAfter)
}
