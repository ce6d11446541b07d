package layout

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/porticus-lab/go-proposal-pdf/internal/money"
	"github.com/porticus-lab/go-proposal-pdf/proposal"
)

// ErrNoDocument is returned by [Engine.Render] for a nil document.
var ErrNoDocument = errors.New("layout: nil document")

// NumberFormat renders monetary amounts.
type NumberFormat interface {
	Format(v float64) string
}

// Report summarises one finished render.
type Report struct {
	Pages        int
	PageBreaks   int
	Sections     []SectionReport
	GrandTotal   string
	FooterLabels []string
}

// Section returns the report of the first section of kind k.
func (r *Report) Section(k SectionKind) (SectionReport, bool) {
	for _, s := range r.Sections {
		if s.Kind == k {
			return s, true
		}
	}
	return SectionReport{}, false
}

// Engine lays out one document on one Surface.
type Engine struct {
	s       Surface
	cfg     Config
	cur     Cursor
	header  *Image
	numbers NumberFormat
	log     *zap.Logger

	pageW    float64
	contentW float64

	report Report
}

// Option configures an Engine.
type Option func(*Engine)

// WithHeaderImage sets the running header drawn at the top of every page.
// A nil image leaves the header area empty.
func WithHeaderImage(img *Image) Option {
	return func(e *Engine) {
		e.header = img
	}
}

// WithNumberFormat sets the currency format for computed amounts.
// Defaults to BRL.
func WithNumberFormat(f NumberFormat) Option {
	return func(e *Engine) {
		if f != nil {
			e.numbers = f
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New returns an Engine drawing on s.
func New(s Surface, cfg Config, opts ...Option) *Engine {
	e := &Engine{
		s:       s,
		cfg:     cfg,
		numbers: money.BRL(),
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Render lays out doc from the first page to the footer pass. It must be
// called once per Engine.
func (e *Engine) Render(doc *proposal.Document) (*Report, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}

	e.startDocument()
	e.documentTitle(doc)

	if strings.TrimSpace(doc.Event.Name) != "" {
		e.eventSection(doc.Event)
	}

	showPrices := doc.Display.PricesVisible()
	e.itemSection(ServiceItems, doc.Items, doc.Totals.Services, showPrices)
	if len(doc.Supplies) > 0 {
		e.itemSection(Supplies, doc.Supplies, doc.Totals.Supplies, showPrices)
	}
	if len(doc.Optionals) > 0 {
		e.itemSection(Optionals, doc.Optionals, doc.Totals.Optionals, showPrices)
	}

	e.grandTotal(doc)

	if !doc.Texts.Conditions.IsZero() {
		e.conditionsSection(doc.Texts.Conditions)
	}
	if lines := doc.Texts.Policy.Lines(); len(lines) > 0 {
		e.greySection("Política de Contratação", lines)
	}
	if strings.TrimSpace(doc.Supplier.Name) != "" {
		e.supplierSection(doc.Supplier)
	}
	e.acceptanceBand(doc.Supplier.Name,
		fmt.Sprintf("%s, dia %s", e.cfg.AcceptancePlace, doc.Metadata.CreatedDate))

	e.report.FooterLabels = e.footerPass()
	e.report.Pages = e.s.PageCount()

	if err := e.s.Err(); err != nil {
		return nil, fmt.Errorf("layout: drawing surface: %w", err)
	}
	report := e.report
	return &report, nil
}

// startDocument opens the first page.
func (e *Engine) startDocument() {
	e.s.AddPage()
	w, h := e.s.PageSize()
	e.pageW = w
	e.contentW = w - 2*e.cfg.MarginX
	e.cur = Cursor{PageHeight: h, BottomMargin: e.cfg.BottomMargin}
	e.drawHeaderImage()
	e.cur.Y = e.contentStartY()
}

// newPage starts a page, draws the running header and moves the cursor
// below it.
func (e *Engine) newPage() {
	from := e.cur.Y
	e.s.AddPage()
	e.drawHeaderImage()
	e.cur.Y = e.contentStartY()
	e.report.PageBreaks++
	e.log.Debug("page break",
		zap.Int("page", e.s.CurrentPage()),
		zap.Float64("from_y", from),
		zap.Float64("to_y", e.cur.Y))
}

// checkPageBreak starts a new page when required does not fit below the
// cursor and reports whether it did.
func (e *Engine) checkPageBreak(required float64) bool {
	if !DecideBreak(e.cur.Y, required, e.cur.PageHeight, e.cur.BottomMargin) {
		return false
	}
	e.newPage()
	return true
}

// ensureSpace starts a new page when less than need remains.
func (e *Engine) ensureSpace(need float64) {
	if e.cur.Remaining() < need {
		e.newPage()
	}
}

func (e *Engine) setFont(style FontStyle, size float64) {
	e.s.SetFont(style, size)
}

func (e *Engine) format(v float64) string {
	return e.numbers.Format(proposal.Finite(v))
}
