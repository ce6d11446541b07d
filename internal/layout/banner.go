package layout

import (
	"strings"

	"github.com/porticus-lab/go-proposal-pdf/proposal"
)

// grandTotal draws the green "TOTAL GERAL" banner. The amount is the
// with-optionals total when any optional is selected.
func (e *Engine) grandTotal(doc *proposal.Document) {
	amount := doc.GrandTotal()
	text := amount.Formatted
	if text == "" {
		text = e.format(amount.Value)
	}
	label := "TOTAL GERAL: " + text
	e.report.GrandTotal = text

	h := e.cfg.TotalHeight
	e.checkPageBreak(h + 6)
	y := e.cur.Y + 2
	e.banner(label, y, h, e.cfg.Palette.GrandTotal, e.cfg.TotalSize)
	e.cur.Y = y + h + 4
}

// subtotalBanner draws an orange "<LABEL>: <amount>" banner at the cursor.
func (e *Engine) subtotalBanner(label, amount string) {
	h := e.cfg.Table.SubtotalHeight
	e.checkPageBreak(h)
	y := e.cur.Y
	e.banner(strings.ToUpper(label)+": "+amount, y, h, e.cfg.Palette.Subtotal, e.cfg.Table.SubtotalSize)
	e.cur.Y = y + h + 8
}

// banner fills a full-width bar and right-aligns bold text inside it.
func (e *Engine) banner(text string, y, h float64, fill Color, size float64) {
	x := e.cfg.MarginX
	e.s.SetFillColor(fill)
	e.s.Rect(x, y, e.contentW, h, Fill)
	e.s.SetTextColor(e.cfg.Palette.Text)
	e.setFont(Bold, size)
	e.s.Text(x+e.contentW-8, y+h/2, text, TextOptions{Align: AlignRight, Baseline: BaselineMiddle})
}

// acceptanceBand draws the grey signature band: company on the left, place
// and date on the right.
func (e *Engine) acceptanceBand(company, placeDate string) {
	e.checkPageBreak(14)
	const h = 8
	x := e.cfg.MarginX
	y := e.cur.Y + 6
	w := e.contentW

	e.s.SetFillColor(e.cfg.Palette.Band)
	e.s.Rect(x, y, w, h, Fill)

	company = strings.TrimSpace(company)
	if company == "" {
		company = "-"
	}
	e.s.SetTextColor(e.cfg.Palette.Text)
	e.setFont(Regular, 9)
	e.s.Text(x+4, y+5.5, " "+company, TextOptions{})
	tw := e.s.TextWidth(placeDate)
	e.s.Text(x+w-tw-4, y+5.5, placeDate, TextOptions{})

	e.cur.Y = y + h + 2
}
