package layout

import (
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/porticus-lab/go-proposal-pdf/proposal"
)

// SectionKind is one of the three line-item groups. Each kind carries its
// own title, banner and column policy.
type SectionKind int

const (
	ServiceItems SectionKind = iota
	Supplies
	Optionals
)

func (k SectionKind) String() string {
	switch k {
	case ServiceItems:
		return "services"
	case Supplies:
		return "supplies"
	case Optionals:
		return "optionals"
	}
	return "unknown"
}

// Title is the section title bar text.
func (k SectionKind) Title() string {
	switch k {
	case Supplies:
		return "Insumos"
	case Optionals:
		return "Opcionais Não Inclusos"
	}
	return "Prestações de Serviço"
}

// SubtotalLabel is the banner label, empty for kinds without a banner.
func (k SectionKind) SubtotalLabel() string {
	switch k {
	case ServiceItems:
		return "SUBTOTAL PRESTAÇÕES DE SERVIÇO"
	case Supplies:
		return "SUBTOTAL INSUMOS"
	}
	return ""
}

// ShowsBanner reports whether the section ends with a subtotal banner.
// Optionals are not part of the price, so they never get one.
func (k SectionKind) ShowsBanner() bool {
	return k.SubtotalLabel() != ""
}

// Mode returns the column layout of the section.
func (k SectionKind) Mode(showPrices bool) PriceMode {
	switch {
	case !showPrices:
		return PricesHidden
	case k == Optionals:
		return UnitPriceOnly
	}
	return FullPrices
}

// PriceMode selects the table columns.
type PriceMode int

const (
	// FullPrices shows Item | Qtd | Valor Unit. | Subtotal.
	FullPrices PriceMode = iota
	// UnitPriceOnly shows Item | Qtd | Valor Unit.
	UnitPriceOnly
	// PricesHidden shows Item | Qtd.
	PricesHidden
)

type column struct {
	Header string
	Ratio  float64
	Align  Align
}

// columns returns the column specs of m, widths as a share of the table.
func (m PriceMode) columns() []column {
	switch m {
	case PricesHidden:
		return []column{
			{"Item", .82, AlignLeft},
			{"Qtd", .18, AlignCenter},
		}
	case UnitPriceOnly:
		return []column{
			{"Item", .62, AlignLeft},
			{"Qtd", .14, AlignCenter},
			{"Valor Unit.", .24, AlignRight},
		}
	}
	return []column{
		{"Item", .5, AlignLeft},
		{"Qtd", .11, AlignCenter},
		{"Valor Unit.", .195, AlignRight},
		{"Subtotal", .195, AlignRight},
	}
}

// Headers returns the column titles of m.
func (m PriceMode) Headers() []string {
	cols := m.columns()
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Header
	}
	return out
}

// SectionReport describes one drawn line-item section.
type SectionReport struct {
	Kind    SectionKind
	Mode    PriceMode
	Columns []string
	Rows    int
	// Subtotal is recomputed from the rows regardless of the price mode.
	// Optionals count only selected rows.
	Subtotal float64
	// Supplied is the aggregate handed in with the document.
	Supplied     float64
	SubtotalText string
	BannerDrawn  bool
	StartPage    int
	EndPage      int
}

// TiesOut reports whether the recomputed subtotal matches the supplied one
// to the cent.
func (r SectionReport) TiesOut() bool {
	return math.Abs(r.Subtotal-r.Supplied) < 0.005
}

// SectionSubtotal sums the effective subtotal of every item.
func SectionSubtotal(items []proposal.LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += proposal.Finite(it.EffectiveSubtotal())
	}
	return sum
}

// Subtotal recomputes the section aggregate the way document totals are
// built: every row, or only the selected ones for optionals.
func (k SectionKind) Subtotal(items []proposal.LineItem) float64 {
	if k != Optionals {
		return SectionSubtotal(items)
	}
	var sum float64
	for _, it := range items {
		if it.Selected {
			sum += proposal.Finite(it.EffectiveSubtotal())
		}
	}
	return sum
}

// itemSection draws title bar, table and subtotal banner for one group.
func (e *Engine) itemSection(kind SectionKind, items []proposal.LineItem, supplied proposal.Amount, showPrices bool) {
	cfg := e.cfg
	tc := cfg.Table
	mode := kind.Mode(showPrices)

	e.checkPageBreak(cfg.SectionTop + cfg.TitleHeight + cfg.AfterTitle + tc.HeadHeight + tc.RowHeight + 4)
	rep := SectionReport{
		Kind:      kind,
		Mode:      mode,
		Columns:   mode.Headers(),
		Supplied:  supplied.Value,
		StartPage: e.s.CurrentPage(),
	}

	e.titleBar(kind.Title())
	e.cur.Y -= math.Max(0, cfg.AfterTitle-1)

	if len(items) == 0 {
		e.s.SetTextColor(cfg.Palette.Text)
		e.setFont(Italic, 10)
		e.s.Text(cfg.MarginX, e.cur.Y, "Nenhum item em "+strings.ToLower(kind.Title()), TextOptions{})
		e.cur.Advance(8)
		rep.EndPage = e.s.CurrentPage()
		e.report.Sections = append(e.report.Sections, rep)
		return
	}

	cols := mode.columns()
	e.tableHead(cols)
	for _, it := range items {
		if !e.cur.Fits(tc.RowHeight) {
			e.newPage()
			e.tableHead(cols)
		}
		e.tableRow(cols, mode, it)
		rep.Rows++
	}
	e.cur.Advance(2)

	rep.Subtotal = kind.Subtotal(items)
	rep.SubtotalText = e.format(rep.Subtotal)
	if kind.ShowsBanner() {
		e.subtotalBanner(kind.SubtotalLabel(), rep.SubtotalText)
		rep.BannerDrawn = true
		if !rep.TiesOut() {
			e.log.Warn("section subtotal does not match supplied total",
				zap.Stringer("section", kind),
				zap.Float64("recomputed", rep.Subtotal),
				zap.Float64("supplied", rep.Supplied))
		}
	} else {
		e.cur.Advance(8)
	}

	rep.EndPage = e.s.CurrentPage()
	e.log.Debug("item section",
		zap.Stringer("section", kind),
		zap.Int("rows", rep.Rows),
		zap.Int("start_page", rep.StartPage),
		zap.Int("end_page", rep.EndPage))
	e.report.Sections = append(e.report.Sections, rep)
}

// tableHead draws the column header row at the cursor.
func (e *Engine) tableHead(cols []column) {
	tc := e.cfg.Table
	x := e.cfg.MarginX
	y := e.cur.Y

	e.s.SetDrawColor(e.cfg.Palette.Grid)
	e.s.SetLineWidth(tc.LineWidth)
	e.s.SetFillColor(e.cfg.Palette.TableHead)
	e.s.SetTextColor(e.cfg.Palette.HeadText)
	e.setFont(Bold, tc.BodySize)
	for _, c := range cols {
		w := e.contentW * c.Ratio
		e.s.Rect(x, y, w, tc.HeadHeight, FillStroke)
		e.s.Text(x+w/2, y+tc.HeadHeight/2, c.Header, TextOptions{Align: AlignCenter, Baseline: BaselineMiddle})
		x += w
	}
	e.s.SetTextColor(e.cfg.Palette.Text)
	e.cur.Advance(tc.HeadHeight)
}

// tableRow draws one item row. The item cell holds a bold name line and a
// grey description line, each cut to one line.
func (e *Engine) tableRow(cols []column, mode PriceMode, it proposal.LineItem) {
	tc := e.cfg.Table
	x := e.cfg.MarginX
	y := e.cur.Y
	h := tc.RowHeight

	cells := []string{"", formatQuantity(it.Qty())}
	if mode != PricesHidden {
		unit := it.UnitPriceFormatted
		if unit == "" {
			unit = e.format(it.UnitPrice)
		}
		cells = append(cells, unit)
	}
	if mode == FullPrices {
		sub := it.SubtotalFormatted
		if sub == "" {
			sub = e.format(it.EffectiveSubtotal())
		}
		cells = append(cells, sub)
	}

	e.s.SetDrawColor(e.cfg.Palette.Grid)
	e.s.SetLineWidth(tc.LineWidth)
	for i, c := range cols {
		w := e.contentW * c.Ratio
		e.s.Rect(x, y, w, h, Stroke)
		if i == 0 {
			e.itemCell(x, y, w, h, it)
		} else {
			e.s.SetTextColor(e.cfg.Palette.Text)
			e.setFont(Regular, tc.BodySize)
			tx := x + tc.PadX
			switch c.Align {
			case AlignCenter:
				tx = x + w/2
			case AlignRight:
				tx = x + w - tc.PadX
			}
			e.s.Text(tx, y+h/2, cells[i], TextOptions{Align: c.Align, Baseline: BaselineMiddle})
		}
		x += w
	}
	e.cur.Advance(h)
}

func (e *Engine) itemCell(x, y, w, h float64, it proposal.LineItem) {
	tc := e.cfg.Table
	maxW := w - 2*tc.PadX

	e.setFont(Bold, tc.NameSize)
	e.s.SetTextColor(e.cfg.Palette.Text)
	e.s.Text(x+tc.PadX, y+tc.PadY+3, fitOneLine(e.s.TextWidth, it.Name(), maxW), TextOptions{})

	if desc := strings.TrimSpace(it.Description); desc != "" {
		e.setFont(Regular, tc.DescSize)
		e.s.SetTextColor(e.cfg.Palette.Description)
		e.s.Text(x+tc.PadX, y+h-tc.PadY+0.2, fitOneLine(e.s.TextWidth, desc, maxW), TextOptions{})
		e.s.SetTextColor(e.cfg.Palette.Text)
	}
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(proposal.Finite(q), 'f', -1, 64)
}
