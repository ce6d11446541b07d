package layout

import (
	"math"
	"strings"

	"github.com/porticus-lab/go-proposal-pdf/proposal"
)

// Field is one "Label: value" pair. LineHeight overrides the default row
// pitch when non-zero.
type Field struct {
	Label      string
	Value      string
	LineHeight float64
}

// blank reports whether f has nothing to show. Blank fields take no space.
func (f Field) blank() bool {
	return strings.TrimSpace(f.Value) == ""
}

// FieldRow is a left and a right field drawn on the same line.
type FieldRow struct {
	Left, Right Field
}

func eventRows(ev proposal.Event, tight float64) []FieldRow {
	return []FieldRow{
		{Field{"Evento", ev.Name, tight}, Field{"Local", ev.Location, tight}},
		{Field{Label: "Participantes", Value: ev.ParticipantCount}, Field{Label: "Tipo de evento", Value: ev.Type}},
		{Field{Label: "Data de Início", Value: ev.StartDate}, Field{Label: "Data de Fim", Value: ev.EndDate}},
		{Field{Label: "Horário de Início", Value: ev.StartTime}, Field{Label: "Horário de Fim", Value: ev.EndTime}},
		{Field{Label: "Empresa", Value: ev.ContractingCompany}, Field{Label: "Telefone", Value: ev.Phone}},
		{Field{Label: "Solicitante", Value: ev.RequesterName}, Field{Label: "E-mail", Value: ev.Email}},
	}
}

func supplierRows(p proposal.Party, tight float64) []FieldRow {
	var rep string
	if p.SalesRepresentative != nil {
		rep = p.SalesRepresentative.Name
	}
	return []FieldRow{
		{Field{Label: "Empresa", Value: p.Name}, Field{Label: "Responsável", Value: rep}},
		{Field{"Endereço", p.Address, tight}, Field{"CNPJ", p.TaxID, tight}},
		{Field{Label: "Telefone", Value: p.Phone}, Field{Label: "E-mail", Value: p.Email}},
	}
}

func (e *Engine) eventSection(ev proposal.Event) {
	e.fieldPairs("DADOS DO EVENTO", eventRows(ev, e.cfg.RowTight))
}

func (e *Engine) supplierSection(p proposal.Party) {
	e.fieldPairs("DADOS DO FORNECEDOR", supplierRows(p, e.cfg.RowTight))
}

// fieldPairs draws rows of two fields under a title bar. Each row is as tall
// as its taller side; a row with both sides empty takes no space.
func (e *Engine) fieldPairs(title string, rows []FieldRow) {
	e.titleBar(title)
	e.s.SetTextColor(e.cfg.Palette.Text)
	e.setFont(Regular, e.cfg.FieldSize)

	leftX := e.cfg.MarginX + e.cfg.ColPadX
	rightX := e.cfg.MarginX + e.contentW/2 + e.cfg.ColPadX

	e.cur.Advance(0.8)
	for _, row := range rows {
		lh := e.measureField(row.Left)
		rh := e.measureField(row.Right)
		if lh == 0 && rh == 0 {
			continue
		}
		h := math.Max(math.Max(lh, rh), e.cfg.Row)
		e.checkPageBreak(h)
		e.drawField(leftX, row.Left)
		e.drawField(rightX, row.Right)
		e.cur.Advance(h)
	}
	e.cur.Advance(e.cfg.SectionBottom)
}

// fieldLines wraps the value of f to the width left beside its label in a
// half-width column.
func (e *Engine) fieldLines(f Field) (labelW float64, lines []string) {
	label := f.Label + ":"
	e.setFont(Bold, e.cfg.FieldSize)
	labelW = e.s.TextWidth(label)
	e.setFont(Regular, e.cfg.FieldSize)

	avail := e.contentW/2 - (labelW + e.cfg.ValueGap + e.cfg.ColPadX)
	width := math.Min(e.cfg.Wrap, avail)
	return labelW, WrapText(e.s.TextWidth, f.Value, width)
}

func (e *Engine) fieldPitch(f Field) float64 {
	if f.LineHeight > 0 {
		return f.LineHeight
	}
	return e.cfg.Row
}

func (e *Engine) measureField(f Field) float64 {
	if f.blank() {
		return 0
	}
	_, lines := e.fieldLines(f)
	pitch := e.fieldPitch(f)
	return math.Max(pitch, float64(len(lines))*pitch)
}

func (e *Engine) drawField(x float64, f Field) {
	if f.blank() {
		return
	}
	labelW, lines := e.fieldLines(f)
	pitch := e.fieldPitch(f)

	e.setFont(Bold, e.cfg.FieldSize)
	e.s.Text(x, e.cur.Y, f.Label+":", TextOptions{})
	e.setFont(Regular, e.cfg.FieldSize)
	vx := x + labelW + e.cfg.ValueGap
	for i, l := range lines {
		e.s.Text(vx, e.cur.Y+float64(i)*pitch, l, TextOptions{})
	}
}

// fieldList draws one field per line under a title bar. The block starts on
// a new page unless the title and two lines fit, and each field needs room
// for up to three of its lines.
func (e *Engine) fieldList(title string, fields []Field) {
	lead := e.cfg.LineHeight
	e.ensureSpace(e.cfg.SectionTop + e.cfg.TitleHeight + e.cfg.AfterTitle + 2*lead)
	e.titleBar(title)
	e.s.SetTextColor(e.cfg.Palette.Text)

	x := e.cfg.MarginX + e.cfg.TextInset
	maxW := e.contentW - e.cfg.TextInset

	for _, f := range fields {
		if f.blank() {
			continue
		}
		lh := lead
		if f.LineHeight > 0 {
			lh = f.LineHeight
		}
		e.setFont(Bold, e.cfg.FieldSize)
		label := f.Label + ":"
		labelW := e.s.TextWidth(label)
		avail := math.Max(20, maxW-(labelW+e.cfg.ValueGap))
		e.setFont(Regular, e.cfg.FieldSize)
		lines := WrapText(e.s.TextWidth, f.Value, avail)

		h := math.Max(lh, float64(len(lines))*(lh-1))
		n := math.Min(math.Ceil(h/lh), float64(e.cfg.MinBottomLines))
		e.ensureSpace(n*lh + 2)

		e.setFont(Bold, e.cfg.FieldSize)
		e.s.Text(x, e.cur.Y, label, TextOptions{})
		e.setFont(Regular, e.cfg.FieldSize)
		for i, l := range lines {
			e.s.Text(x+labelW+e.cfg.ValueGap, e.cur.Y+float64(i)*(lh-1), l, TextOptions{})
		}
		e.cur.Advance(h)
	}
	e.cur.Advance(e.cfg.SectionBottom)
}
