// Package pdftext reads back the PDFs this module produces: it parses the
// object graph, walks the page tree and extracts the text drawn on each
// page.
//
// The reader covers what gofpdf writes: a classic cross-reference table,
// Flate-compressed content streams and simple fonts in WinAnsi or MacRoman
// encoding. Cross-reference streams, object streams and CID fonts are not
// supported.
package pdftext

// Kind identifies the type of a PDF value.
type Kind int

const (
	Null Kind = iota
	Bool
	Int
	Real
	String
	Name
	Array
	Dictionary
	Stream
	Reference
)

// Value is any PDF object.
type Value struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Real  float64
	Bytes []byte // String contents or raw stream data
	Name  string
	Array []*Value
	Dict  Dict
	Ref   Ref
}

// Ref points at an indirect object.
type Ref struct {
	Num, Gen int
}

// Dict is a PDF dictionary keyed by name without the leading slash.
type Dict map[string]*Value

var null = &Value{Kind: Null}

// Number returns the numeric value of v and whether it is a number.
func (v *Value) Number() (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch v.Kind {
	case Int:
		return float64(v.Int), true
	case Real:
		return v.Real, true
	}
	return 0, false
}

// Name returns the name stored under key.
func (d Dict) Name(key string) string {
	if v, ok := d[key]; ok && v.Kind == Name {
		return v.Name
	}
	return ""
}

// Int returns the integer stored under key.
func (d Dict) Int(key string) (int64, bool) {
	v, ok := d[key]
	if !ok {
		return 0, false
	}
	switch v.Kind {
	case Int:
		return v.Int, true
	case Real:
		return int64(v.Real), true
	}
	return 0, false
}

// Names returns the names under key, which may hold one name or an array.
func (d Dict) Names(key string) []string {
	v, ok := d[key]
	if !ok {
		return nil
	}
	if v.Kind == Name {
		return []string{v.Name}
	}
	var out []string
	if v.Kind == Array {
		for _, e := range v.Array {
			if e.Kind == Name {
				out = append(out, e.Name)
			}
		}
	}
	return out
}
