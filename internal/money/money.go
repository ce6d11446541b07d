// Package money parses and formats currency amounts for one locale.
package money

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format converts between numbers and their locale-formatted currency text.
type Format interface {
	// Format renders v as a currency string, e.g. "R$ 1.234,56".
	Format(v float64) string
	// Parse reads a number from locale-formatted text, returning def when
	// the text holds no finite number.
	Parse(s string, def float64) float64
}

// Currency is a [Format] for a currency symbol and a locale.
type Currency struct {
	Symbol  string
	Decimal byte
	Group   byte

	printer *message.Printer
}

// New returns a Currency printing with the conventions of tag.
func New(symbol string, tag language.Tag, decimal, group byte) *Currency {
	return &Currency{
		Symbol:  symbol,
		Decimal: decimal,
		Group:   group,
		printer: message.NewPrinter(tag),
	}
}

// BRL is the Brazilian real in pt-BR notation.
func BRL() *Currency {
	return New("R$", language.BrazilianPortuguese, ',', '.')
}

// Format implements [Format].
func (c *Currency) Format(v float64) string {
	v = math.Round(finite(v)*100) / 100
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + c.Symbol + " " + c.printer.Sprintf("%.2f", v)
}

// Parse implements [Format]. Currency symbols and spaces are ignored, a
// group separator followed by exactly three digits is dropped, and the
// decimal separator is read as the decimal point.
func (c *Currency) Parse(s string, def float64) float64 {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if (ch >= '0' && ch <= '9') || ch == '-' || ch == c.Decimal || ch == c.Group {
			b.WriteByte(ch)
		}
	}
	kept := b.String()
	if kept == "" {
		return def
	}

	var out strings.Builder
	for i := 0; i < len(kept); i++ {
		ch := kept[i]
		switch {
		case ch == c.Group && c.isThousands(kept, i):
			continue
		case ch == c.Decimal:
			out.WriteByte('.')
		default:
			out.WriteByte(ch)
		}
	}

	n, err := strconv.ParseFloat(out.String(), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return def
	}
	return n
}

// isThousands reports whether the group separator at i is followed by three
// digits and then another separator or the end of s.
func (c *Currency) isThousands(s string, i int) bool {
	for j := i + 1; j <= i+3; j++ {
		if j >= len(s) || s[j] < '0' || s[j] > '9' {
			return false
		}
	}
	next := i + 4
	return next == len(s) || s[next] == c.Decimal || s[next] == c.Group
}

// Value converts a decoded JSON/YAML scalar to a number using f for text.
// Missing, empty or unparseable values yield def.
func Value(f Format, v any, def float64) float64 {
	switch t := v.(type) {
	case nil:
		return def
	case float64:
		return finiteOr(t, def)
	case float32:
		return finiteOr(float64(t), def)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return f.Parse(t.String(), def)
		}
		return finiteOr(n, def)
	case string:
		if strings.TrimSpace(t) == "" {
			return def
		}
		return f.Parse(t, def)
	}
	return def
}

func finite(v float64) float64 {
	return finiteOr(v, 0)
}

func finiteOr(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}
