package layout

import "fmt"

// FooterLabel is the page-numbering text of page i out of n.
func FooterLabel(i, n int) string {
	return fmt.Sprintf("Página %d de %d", i, n)
}

// footerPass stamps "Página i de N" on every page. It runs after all content
// is laid out because N is only known then.
func (e *Engine) footerPass() []string {
	n := e.s.PageCount()
	_, pageH := e.s.PageSize()
	labels := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		e.s.SetPage(i)
		e.s.SetTextColor(e.cfg.Palette.Text)
		e.setFont(Regular, e.cfg.FooterSize)
		label := FooterLabel(i, n)
		e.s.Text(e.pageW-e.cfg.MarginX-20, pageH-10, label, TextOptions{})
		labels = append(labels, label)
	}
	if n > 0 {
		e.s.SetPage(n)
	}
	return labels
}
