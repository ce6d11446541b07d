package layout

import (
	"strings"

	"github.com/porticus-lab/go-proposal-pdf/proposal"
)

const conditionsTitle = "Condições Gerais"

// conditionsSection draws the commercial conditions. Structured conditions
// become a label list followed by the special terms; free content is
// flowed like any other text section.
func (e *Engine) conditionsSection(c proposal.Conditions) {
	if !c.Structured() {
		e.greySection(conditionsTitle, c.Content.Lines())
		return
	}

	e.fieldList(conditionsTitle, []Field{
		{Label: "Forma de Pagamento", Value: c.PaymentTerms},
		{Label: "Validade", Value: c.Validity},
		{Label: "Execução", Value: c.Execution},
		{Label: "Garantia", Value: c.Warranty},
	})

	special := strings.TrimSpace(c.SpecialTerms)
	if special == "" {
		return
	}

	left := e.cfg.MarginX + e.cfg.TextInset
	width := e.contentW - e.cfg.TextInset
	e.heading("Condições Especiais:", left)
	e.setFont(Regular, e.cfg.BodySize)
	for _, line := range strings.Split(special, "\n") {
		kind, text := ClassifyLine(line)
		switch {
		case kind == LineBullet:
			e.bullet(text, left, width)
		case text != "":
			e.paragraph(text, left, width, e.cfg.ParagraphIndent, e.cfg.LineHeight, e.cfg.ParagraphAfter)
		}
	}
	e.cur.Advance(2)
}
