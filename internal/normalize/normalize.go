package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/porticus-lab/go-proposal-pdf/internal/money"
	"github.com/porticus-lab/go-proposal-pdf/proposal"
)

// ErrEmptyRecord is returned by [Normalizer.Normalize] for a nil record.
var ErrEmptyRecord = errors.New("normalize: empty record")

// DefaultPolicy replaces a missing contracting policy.
const DefaultPolicy = `POLÍTICAS PADRÃO:

• Cancelamento: Até 48h antes do evento sem custos
• Alterações: Sujeitas à disponibilidade e custos adicionais
• Pagamento: Conforme condições acordadas
• Responsabilidades: Definidas em contrato específico`

// DefaultConditions replaces missing general conditions.
const DefaultConditions = `CONDIÇÕES GERAIS PADRÃO:

• Prazo de validade da proposta: 30 dias
• Prazo de entrega: Conforme acordado
• Garantia: 12 meses contra defeitos de fabricação
• Condições especiais: A definir conforme necessidade do evento`

// finalStatus marks a proposal that no longer needs a draft watermark.
const finalStatus = "finalizada"

// Normalizer converts records. The zero value is not usable; call New.
type Normalizer struct {
	numbers           money.Format
	log               *zap.Logger
	defaultPolicy     string
	defaultConditions string
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithNumberFormat sets the currency used to parse and format amounts.
func WithNumberFormat(f money.Format) Option {
	return func(n *Normalizer) {
		if f != nil {
			n.numbers = f
		}
	}
}

// WithLogger sets the logger used for recoverable data problems.
func WithLogger(l *zap.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.log = l
		}
	}
}

// WithDefaultTexts overrides the fallback policy and conditions texts.
// Empty arguments keep the built-in texts.
func WithDefaultTexts(policy, conditions string) Option {
	return func(n *Normalizer) {
		if policy != "" {
			n.defaultPolicy = policy
		}
		if conditions != "" {
			n.defaultConditions = conditions
		}
	}
}

// New returns a Normalizer using BRL amounts.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		numbers:           money.BRL(),
		log:               zap.NewNop(),
		defaultPolicy:     DefaultPolicy,
		defaultConditions: DefaultConditions,
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Normalize builds a Document from r.
func (n *Normalizer) Normalize(r Record) (*proposal.Document, error) {
	if r == nil {
		return nil, ErrEmptyRecord
	}

	items := n.lineItems(r, "items")
	supplies := n.lineItems(r, "insumos")
	optionals := n.lineItems(r, "opcionais")

	doc := &proposal.Document{
		Metadata:  n.metadata(r),
		Event:     n.event(r),
		Client:    n.client(r.sub("client")),
		Supplier:  n.supplier(r.sub("supplier"), r.sub("seller")),
		Items:     items,
		Supplies:  supplies,
		Optionals: optionals,
		Totals:    n.totals(items, supplies, optionals),
		Texts: proposal.Texts{
			Policy:     n.policy(r.first("politica")),
			Conditions: n.conditions(r.first("condicoes_gerais")),
		},
		Display: display(r),
	}
	return doc, nil
}

func (n *Normalizer) metadata(r Record) proposal.Metadata {
	id := r.str("id")
	number := r.str("numero")
	if number == "" {
		number = "PROP-" + id
	}
	status := r.str("status")
	if status == "" {
		status = "rascunho"
	}
	return proposal.Metadata{
		ID:            id,
		DisplayNumber: number,
		Status:        status,
		CreatedDate:   n.date(r, "created_at"),
		UpdatedDate:   n.date(r, "updated_at"),
		ValidUntil:    n.date(r, "validade"),
		System:        r.str("sistema", "system"),
	}
}

func (n *Normalizer) event(r Record) proposal.Event {
	return proposal.Event{
		Name:               r.str("title"),
		Type:               r.str("event_type"),
		ParticipantCount:   r.str("participants_count"),
		Location:           r.str("location"),
		City:               r.str("city", "cidade"),
		StartDate:          n.date(r, "start_date"),
		EndDate:            n.date(r, "end_date"),
		StartTime:          r.str("start_time"),
		EndTime:            r.str("end_time"),
		ContractingCompany: r.str("contractor_name"),
		RequesterName:      r.str("requester_name"),
		Phone:              r.str("phone"),
		Email:              r.str("email"),
	}
}

func (n *Normalizer) client(c Record) proposal.Party {
	if c == nil {
		return proposal.Party{Name: "Cliente não informado"}
	}
	name := c.str("company_name", "nome", "name")
	if name == "" {
		name = "Cliente não informado"
	}
	return proposal.Party{
		Name:        name,
		TaxID:       c.str("cnpj", "cpf", "document"),
		ContactName: c.str("contato", "contact"),
		Address:     address(c),
		Phone:       c.str("telefone", "phone"),
		Email:       c.str("email"),
	}
}

func (n *Normalizer) supplier(s, seller Record) proposal.Party {
	p := proposal.Party{SalesRepresentative: salesRep(seller)}
	if s == nil {
		p.Name = "Fornecedor não informado"
		return p
	}
	p.Name = s.str("company_name", "nome", "name")
	if p.Name == "" {
		p.Name = "Fornecedor não informado"
	}
	p.TaxID = s.str("cnpj")
	p.ContactName = s.str("contact_name", "contato", "contact")
	p.Address = address(s)
	p.Phone = s.str("phone", "telefone")
	p.Email = s.str("email")
	return p
}

func salesRep(s Record) *proposal.SalesRep {
	if s == nil {
		return nil
	}
	email := s.str("email")
	name := s.str("full_name", "nome", "name")
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	if name == "" {
		name = "Vendedor"
	}
	role := s.str("position", "cargo", "role")
	if role == "" {
		role = "Vendedor"
	}
	return &proposal.SalesRep{
		Name:  name,
		Email: email,
		Phone: s.str("phone", "telefone"),
		Role:  role,
	}
}

// address joins street, city, state and postal code with ", ".
func address(r Record) string {
	var parts []string
	for _, keys := range [][]string{
		{"endereco", "address"},
		{"cidade", "city"},
		{"estado", "state"},
		{"cep", "zip_code"},
	} {
		if s := r.str(keys...); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func (n *Normalizer) lineItems(r Record, key string) []proposal.LineItem {
	raw, ok := list(r[key])
	if !ok {
		n.log.Warn("discarding unreadable item list", zap.String("key", key))
		return nil
	}
	sortByOrder(raw, n.order)

	out := make([]proposal.LineItem, 0, len(raw))
	for _, it := range raw {
		out = append(out, n.lineItem(it))
	}
	return out
}

func (n *Normalizer) order(r Record) int {
	return int(money.Value(n.numbers, r.first("ordem"), 0))
}

// lineItem reads one item. Quantity defaults to 1 and the subtotal is
// quantity times unit price less the discount percentage.
func (n *Normalizer) lineItem(r Record) proposal.LineItem {
	q := money.Value(n.numbers, r.first("quantidade", "quantity"), 1)
	u := money.Value(n.numbers, r.first("valor_unitario", "price", "unit_price"), 0)
	d := money.Value(n.numbers, r.first("desconto", "discount"), 0)

	unit := r.str("unidade", "unit")
	if unit == "" {
		unit = "un"
	}
	selected, _ := ToBool(r.first("selecionado", "selected"))

	li := proposal.LineItem{
		Order:       n.order(r),
		Code:        r.str("codigo", "code"),
		Description: r.str("descricao", "description", "name"),
		Quantity:    proposal.Float(q),
		Unit:        unit,
		UnitPrice:   u,
		Discount:    d,
		Selected:    selected,
	}
	sub := li.LineSubtotal()
	li.Subtotal = proposal.Float(sub)
	li.UnitPriceFormatted = n.numbers.Format(u)
	li.SubtotalFormatted = n.numbers.Format(sub)
	return li
}

func (n *Normalizer) totals(items, supplies, optionals []proposal.LineItem) proposal.Totals {
	services := sum(items, false)
	supp := sum(supplies, false)
	opt := sum(optionals, true)
	without := services + supp
	with := without + opt
	return proposal.Totals{
		Services:         n.amount(services),
		Supplies:         n.amount(supp),
		Optionals:        n.amount(opt),
		WithoutOptionals: n.amount(without),
		WithOptionals:    n.amount(with),
	}
}

// sum adds effective subtotals, only of selected items when selectedOnly.
func sum(items []proposal.LineItem, selectedOnly bool) float64 {
	var total float64
	for _, it := range items {
		if selectedOnly && !it.Selected {
			continue
		}
		total += proposal.Finite(it.EffectiveSubtotal())
	}
	return total
}

func (n *Normalizer) amount(v float64) proposal.Amount {
	return proposal.Amount{Value: v, Formatted: n.numbers.Format(v)}
}

func display(r Record) proposal.Display {
	d := proposal.Display{ShowWatermark: r.str("status") != finalStatus}
	if v, ok := ToBool(r["exibir_precos"]); ok {
		d.ShowPrices = proposal.Bool(v)
	}
	legacy := func(key string) *bool {
		if v, ok := ToBool(r[key]); ok {
			return proposal.Bool(v)
		}
		return nil
	}
	d.LegacyItemPrices = legacy("incluir_v_un_itens")
	d.LegacySupplyPrices = legacy("incluir_v_un_insumos")
	d.LegacyOptionalPrices = legacy("incluir_v_un_opcionais")
	return d
}

var (
	htmlTag   = regexp.MustCompile(`<[^>]*>`)
	jsonPunct = regexp.MustCompile(`[\[\]"{}]`)
)

// Text cleans free text content. JSON text is decoded first; arrays become
// titled blocks; plain strings lose HTML tags and stray JSON punctuation.
func Text(v any) proposal.Content {
	if s, ok := v.(string); ok {
		if decoded, err := decodeJSON(s); err == nil {
			switch decoded.(type) {
			case []any, map[string]any, string:
				v = decoded
			}
		}
	}

	switch t := v.(type) {
	case nil:
		return proposal.Content{}
	case []any:
		blocks := make([]proposal.Block, 0, len(t))
		for _, e := range t {
			switch el := e.(type) {
			case map[string]any:
				m := Record(el)
				blocks = append(blocks, proposal.Block{
					Title: m.str("titulo", "title"),
					Body:  m.str("conteudo", "content", "texto", "text"),
				})
			case string:
				blocks = append(blocks, proposal.Block{Body: el})
			}
		}
		return proposal.Blocks(blocks...)
	case map[string]any:
		return proposal.NewContent(t)
	case string:
		s := htmlTag.ReplaceAllString(t, "")
		s = jsonPunct.ReplaceAllString(s, "")
		return proposal.Text(strings.TrimSpace(s))
	}
	return proposal.Content{}
}

func decodeJSON(s string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (n *Normalizer) policy(v any) proposal.Content {
	c := Text(v)
	if c.IsZero() {
		return proposal.Text(n.defaultPolicy)
	}
	return c
}

// conditions reads structured conditions when the value is an object with
// known keys, free content otherwise.
func (n *Normalizer) conditions(v any) proposal.Conditions {
	if s, ok := v.(string); ok {
		if decoded, err := decodeJSON(s); err == nil {
			if m, isMap := decoded.(map[string]any); isMap {
				v = m
			}
		}
	}
	if m, ok := v.(map[string]any); ok {
		if c := proposal.ConditionsFrom(m); c.Structured() {
			return c
		}
	}
	c := proposal.Conditions{Content: Text(v)}
	if c.IsZero() {
		c.Content = proposal.Text(n.defaultConditions)
	}
	return c
}

// dateLayouts are tried in order when reading a date.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05-07",
	"2006-01-02",
	"02/01/2006",
}

// date formats r[key] as DD/MM/YYYY. Unreadable values are kept as given.
func (n *Normalizer) date(r Record, key string) string {
	raw := r.str(key)
	if raw == "" {
		return ""
	}
	t, err := ParseDate(raw)
	if err != nil {
		n.log.Warn("keeping unreadable date", zap.String("key", key), zap.String("value", raw))
		return raw
	}
	return t.Format("02/01/2006")
}

// ParseDate reads the date formats found in proposal records. The calendar
// date is kept as written, without time zone conversion.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("normalize: unrecognised date %q", s)
}
