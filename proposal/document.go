package proposal

import "math"

// Document is one commercial proposal ready to be laid out.
type Document struct {
	Metadata  Metadata   `json:"metadata" yaml:"metadata"`
	Event     Event      `json:"event" yaml:"event"`
	Client    Party      `json:"client" yaml:"client"`
	Supplier  Party      `json:"supplier" yaml:"supplier"`
	Items     []LineItem `json:"items" yaml:"items"`
	Supplies  []LineItem `json:"supplies" yaml:"supplies"`
	Optionals []LineItem `json:"optionals" yaml:"optionals"`
	Totals    Totals     `json:"totals" yaml:"totals"`
	Texts     Texts      `json:"texts" yaml:"texts"`
	Display   Display    `json:"display" yaml:"display"`
}

// HasSelectedOptional reports whether any optional item was chosen by the
// client, which switches the grand total to the with-optionals figure.
func (d *Document) HasSelectedOptional() bool {
	for _, o := range d.Optionals {
		if o.Selected {
			return true
		}
	}
	return false
}

// GrandTotal returns the amount shown in the grand-total banner.
func (d *Document) GrandTotal() Amount {
	if d.HasSelectedOptional() {
		return d.Totals.WithOptionals
	}
	return d.Totals.WithoutOptionals
}

// Metadata identifies the proposal.
type Metadata struct {
	ID            string `json:"id" yaml:"id"`
	DisplayNumber string `json:"display_number" yaml:"display_number"`
	Status        string `json:"status" yaml:"status"`
	CreatedDate   string `json:"created_date" yaml:"created_date"`
	UpdatedDate   string `json:"updated_date" yaml:"updated_date"`
	ValidUntil    string `json:"valid_until" yaml:"valid_until"`
	System        string `json:"system,omitempty" yaml:"system,omitempty"`
}

// Event describes the event being quoted. Every field is optional.
type Event struct {
	Name               string `json:"name" yaml:"name"`
	Type               string `json:"type" yaml:"type"`
	ParticipantCount   string `json:"participant_count" yaml:"participant_count"`
	Location           string `json:"location" yaml:"location"`
	City               string `json:"city,omitempty" yaml:"city,omitempty"`
	StartDate          string `json:"start_date" yaml:"start_date"`
	EndDate            string `json:"end_date" yaml:"end_date"`
	StartTime          string `json:"start_time" yaml:"start_time"`
	EndTime            string `json:"end_time" yaml:"end_time"`
	ContractingCompany string `json:"contracting_company" yaml:"contracting_company"`
	RequesterName      string `json:"requester_name" yaml:"requester_name"`
	Phone              string `json:"phone" yaml:"phone"`
	Email              string `json:"email" yaml:"email"`
}

// Party is either the client or the supplier.
type Party struct {
	Name                string    `json:"name" yaml:"name"`
	TaxID               string    `json:"tax_id" yaml:"tax_id"`
	ContactName         string    `json:"contact_name" yaml:"contact_name"`
	Address             string    `json:"address" yaml:"address"`
	Phone               string    `json:"phone" yaml:"phone"`
	Email               string    `json:"email" yaml:"email"`
	SalesRepresentative *SalesRep `json:"sales_representative,omitempty" yaml:"sales_representative,omitempty"`
}

// SalesRep is the supplier-side person responsible for the proposal.
type SalesRep struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Phone string `json:"phone" yaml:"phone"`
	Role  string `json:"role" yaml:"role"`
}

// LineItem is one quoted service, supply or optional.
type LineItem struct {
	Order       int    `json:"order" yaml:"order"`
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
	// Quantity is 1 when absent; see [LineItem.Qty].
	Quantity  *float64 `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Unit      string   `json:"unit" yaml:"unit"`
	UnitPrice float64  `json:"unit_price" yaml:"unit_price"`
	// Discount is a percentage in [0, 100].
	Discount float64 `json:"discount,omitempty" yaml:"discount,omitempty"`
	// Subtotal, when set, is trusted over Quantity*UnitPrice.
	Subtotal           *float64 `json:"subtotal,omitempty" yaml:"subtotal,omitempty"`
	UnitPriceFormatted string   `json:"unit_price_formatted,omitempty" yaml:"unit_price_formatted,omitempty"`
	SubtotalFormatted  string   `json:"subtotal_formatted,omitempty" yaml:"subtotal_formatted,omitempty"`
	Selected           bool     `json:"selected,omitempty" yaml:"selected,omitempty"`
}

// Name is the bold first line of the item cell.
func (li LineItem) Name() string {
	if li.Code != "" {
		return li.Code
	}
	return "-"
}

// Qty returns the quoted quantity, defaulting to 1 when none was given.
func (li LineItem) Qty() float64 {
	if li.Quantity == nil {
		return 1
	}
	return *li.Quantity
}

// LineSubtotal returns quantity * unit price less the discount percentage.
// Non-finite results collapse to 0.
func (li LineItem) LineSubtotal() float64 {
	gross := li.Qty() * li.UnitPrice
	total := gross - gross*li.Discount/100
	return Finite(total)
}

// EffectiveSubtotal returns the explicit subtotal when present, otherwise
// [LineItem.LineSubtotal].
func (li LineItem) EffectiveSubtotal() float64 {
	if li.Subtotal != nil {
		return Finite(*li.Subtotal)
	}
	return li.LineSubtotal()
}

// Finite returns v, or 0 when v is NaN or infinite.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Amount is a monetary value with its display form.
type Amount struct {
	Value     float64 `json:"value" yaml:"value"`
	Formatted string  `json:"formatted" yaml:"formatted"`
}

// Totals are the aggregate amounts computed by the data service.
type Totals struct {
	Services         Amount `json:"services" yaml:"services"`
	Supplies         Amount `json:"supplies" yaml:"supplies"`
	Optionals        Amount `json:"optionals" yaml:"optionals"`
	WithoutOptionals Amount `json:"without_optionals" yaml:"without_optionals"`
	WithOptionals    Amount `json:"with_optionals" yaml:"with_optionals"`
}

// Texts holds the free-text sections.
type Texts struct {
	Policy     Content    `json:"policy" yaml:"policy"`
	Conditions Conditions `json:"conditions" yaml:"conditions"`
}

// Display holds presentation switches.
type Display struct {
	// ShowPrices is the primary switch. When nil the legacy per-category
	// flags decide.
	ShowPrices           *bool `json:"show_prices,omitempty" yaml:"show_prices,omitempty"`
	LegacyItemPrices     *bool `json:"legacy_item_prices,omitempty" yaml:"legacy_item_prices,omitempty"`
	LegacySupplyPrices   *bool `json:"legacy_supply_prices,omitempty" yaml:"legacy_supply_prices,omitempty"`
	LegacyOptionalPrices *bool `json:"legacy_optional_prices,omitempty" yaml:"legacy_optional_prices,omitempty"`
	ShowWatermark        bool  `json:"show_watermark" yaml:"show_watermark"`
}

// PricesVisible resolves the price columns switch: the primary flag wins;
// without it prices are shown unless a legacy flag is explicitly false.
func (d Display) PricesVisible() bool {
	if d.ShowPrices != nil {
		return *d.ShowPrices
	}
	for _, f := range []*bool{d.LegacyItemPrices, d.LegacySupplyPrices, d.LegacyOptionalPrices} {
		if f != nil && !*f {
			return false
		}
	}
	return true
}

// Bool returns a pointer to b, for literal Display values.
func Bool(b bool) *bool { return &b }

// Float returns a pointer to v, for literal LineItem subtotals.
func Float(v float64) *float64 { return &v }
