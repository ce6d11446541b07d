// Package normalize turns a raw proposal record, as stored by the proposal
// editor, into a [proposal.Document] ready for layout.
//
// Raw records are loosely typed: numbers may arrive as locale-formatted
// strings, item lists as JSON text, flags as "1" or "off". Every
// accessor here tolerates those shapes and falls back to a default instead
// of failing.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Record is one raw proposal row with its related client, supplier and
// seller objects embedded under "client", "supplier" and "seller".
type Record map[string]any

// ParseJSON decodes a JSON object into a Record. Numbers are kept as
// json.Number so large values keep their precision.
func ParseJSON(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var r Record
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("normalize: decoding record: %w", err)
	}
	return r, nil
}

// first returns the first present, non-empty value among keys.
func (r Record) first(keys ...string) any {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		return v
	}
	return nil
}

// str returns the first non-empty value among keys as text.
func (r Record) str(keys ...string) string {
	return toString(r.first(keys...))
}

// sub returns the embedded object at key, or nil.
func (r Record) sub(key string) Record {
	switch t := r[key].(type) {
	case map[string]any:
		return Record(t)
	case Record:
		return t
	}
	return nil
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// ToBool reads a loosely typed flag. ok is false when v is missing or not
// recognisable, so callers can tell "unset" from "false".
func ToBool(v any) (value, ok bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case float64:
		return t != 0, true
	case int:
		return t != 0, true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return false, false
		}
		return f != 0, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "t", "yes", "y", "on":
			return true, true
		case "false", "0", "f", "no", "n", "off", "":
			return false, true
		}
	}
	return false, false
}

// list reads an array that may also arrive as JSON text. ok is false when
// a text value is not valid JSON.
func list(v any) (items []Record, ok bool) {
	if s, isStr := v.(string); isStr {
		if strings.TrimSpace(s) == "" {
			return nil, true
		}
		var decoded any
		dec := json.NewDecoder(strings.NewReader(s))
		dec.UseNumber()
		if err := dec.Decode(&decoded); err != nil || dec.More() {
			return nil, false
		}
		v = decoded
	}
	arr, isArr := v.([]any)
	if !isArr {
		return nil, v == nil
	}
	for _, e := range arr {
		if m, isMap := e.(map[string]any); isMap {
			items = append(items, Record(m))
		}
	}
	return items, true
}

// sortByOrder orders items by their "ordem" key, keeping input order for
// ties and items without one.
func sortByOrder(items []Record, order func(Record) int) {
	sort.SliceStable(items, func(i, j int) bool {
		return order(items[i]) < order(items[j])
	})
}
