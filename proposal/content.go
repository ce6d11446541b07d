package proposal

import (
	"encoding/json"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Block is a titled piece of text.
type Block struct {
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}

// Content is free-form text as it arrives from storage. It may hold a plain
// string, a list of strings or titled blocks, or a single titled object.
// [Content.Lines] collapses every shape into an ordered list of lines.
type Content struct {
	value any
}

// Text wraps a plain string.
func Text(s string) Content { return Content{value: s} }

// Blocks wraps a list of titled blocks.
func Blocks(b ...Block) Content { return Content{value: b} }

// NewContent wraps a decoded JSON or YAML value.
func NewContent(v any) Content { return Content{value: v} }

// Value returns the wrapped value.
func (c Content) Value() any { return c.value }

// IsZero reports whether c yields no lines.
func (c Content) IsZero() bool { return len(c.Lines()) == 0 }

// preferredKeys are read, in order, from an object before falling back to
// every string value.
var preferredKeys = []string{"titulo", "title", "heading", "conteudo", "content", "texto", "text", "body"}

// Lines returns the trimmed, non-empty lines of c in reading order.
func (c Content) Lines() []string {
	return linesOf(c.value, true)
}

func linesOf(v any, top bool) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return splitLines(t)
	case Block:
		return append(splitLines(t.Title), splitLines(t.Body)...)
	case []Block:
		var out []string
		for _, b := range t {
			out = append(out, linesOf(b, false)...)
		}
		return out
	case []string:
		var out []string
		for _, s := range t {
			out = append(out, splitLines(s)...)
		}
		return out
	case []any:
		var out []string
		for _, e := range t {
			switch e.(type) {
			case string, map[string]any, Block:
				out = append(out, linesOf(e, false)...)
			}
		}
		return out
	case map[string]any:
		if top {
			var out []string
			for _, k := range preferredKeys {
				if s, ok := t[k].(string); ok && strings.TrimSpace(s) != "" {
					out = append(out, splitLines(s)...)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
		return stringValues(t)
	}
	return nil
}

// stringValues returns the lines of every string value of m, preferred keys
// first and the rest by key name, so output is stable.
func stringValues(m map[string]any) []string {
	seen := make(map[string]bool, len(m))
	var out []string
	for _, k := range preferredKeys {
		if s, ok := m[k].(string); ok {
			out = append(out, splitLines(s)...)
		}
		seen[k] = true
	}
	rest := make([]string, 0, len(m))
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		if s, ok := m[k].(string); ok {
			out = append(out, splitLines(s)...)
		}
	}
	return out
}

func splitLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (c Content) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Content) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	c.value = v
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Content) MarshalYAML() (any, error) {
	return c.value, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Content) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	c.value = v
	return nil
}

// Conditions are the commercial conditions of the proposal. They come either
// structured (the named fields) or as free [Content].
type Conditions struct {
	PaymentTerms string
	Validity     string
	Execution    string
	Warranty     string
	SpecialTerms string
	Content      Content
}

// conditionKeys maps accepted keys, English and Portuguese, to fields.
var conditionKeys = map[string]func(*Conditions) *string{
	"payment_terms":   func(c *Conditions) *string { return &c.PaymentTerms },
	"forma_pagamento": func(c *Conditions) *string { return &c.PaymentTerms },
	"validity":        func(c *Conditions) *string { return &c.Validity },
	"validade":        func(c *Conditions) *string { return &c.Validity },
	"execution":       func(c *Conditions) *string { return &c.Execution },
	"execucao":        func(c *Conditions) *string { return &c.Execution },
	"warranty":        func(c *Conditions) *string { return &c.Warranty },
	"garantia":        func(c *Conditions) *string { return &c.Warranty },
	"special_terms":   func(c *Conditions) *string { return &c.SpecialTerms },
	"especiais":       func(c *Conditions) *string { return &c.SpecialTerms },
}

// Structured reports whether any named condition is set.
func (c Conditions) Structured() bool {
	return c.PaymentTerms != "" || c.Validity != "" || c.Execution != "" ||
		c.Warranty != "" || c.SpecialTerms != ""
}

// IsZero reports whether there is nothing to render.
func (c Conditions) IsZero() bool {
	return !c.Structured() && c.Content.IsZero()
}

// ConditionsFrom builds Conditions from a decoded JSON or YAML value. An
// object carrying at least one recognised key is read as structured; any
// other value becomes free content.
func ConditionsFrom(v any) Conditions {
	var c Conditions
	if m, ok := v.(map[string]any); ok {
		found := false
		for k, field := range conditionKeys {
			if s, ok := m[k].(string); ok {
				*field(&c) = strings.TrimSpace(s)
				found = true
			}
		}
		if found {
			return c
		}
	}
	c.Content = NewContent(v)
	return c
}

func (c Conditions) value() any {
	if !c.Structured() {
		return c.Content.value
	}
	return map[string]any{
		"payment_terms": c.PaymentTerms,
		"validity":      c.Validity,
		"execution":     c.Execution,
		"warranty":      c.Warranty,
		"special_terms": c.SpecialTerms,
	}
}

// MarshalJSON implements json.Marshaler.
func (c Conditions) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.value())
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Conditions) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = ConditionsFrom(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Conditions) MarshalYAML() (any, error) {
	return c.value(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Conditions) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	*c = ConditionsFrom(v)
	return nil
}
