package layout

import "strings"

// titleBar draws a filled bar with the upper-cased title. The bar is never
// left alone at the bottom of a page: it needs room for itself, the gap
// below it and the minimum trailing lines.
func (e *Engine) titleBar(title string) {
	cfg := e.cfg
	e.checkPageBreak(cfg.SectionTop + cfg.TitleHeight + cfg.AfterTitle + cfg.minTrailing())
	e.cur.Advance(cfg.SectionTop)

	e.s.SetFillColor(cfg.Palette.TitleBar)
	e.s.Rect(cfg.MarginX, e.cur.Y, e.contentW, cfg.TitleHeight, Fill)

	e.s.SetTextColor(cfg.Palette.Text)
	e.setFont(Bold, cfg.TitleSize)
	e.s.Text(cfg.MarginX+cfg.TextInset, e.cur.Y+cfg.TitleHeight/2, strings.ToUpper(title),
		TextOptions{Baseline: BaselineMiddle})

	e.cur.Advance(cfg.TitleHeight + cfg.AfterTitle)
	e.setFont(Regular, 9)
}
