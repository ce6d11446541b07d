package pdftext

import (
	"bytes"
	"errors"
	"strconv"
)

// maxDepth bounds array and dictionary nesting.
const maxDepth = 64

var errTooDeep = errors.New("pdftext: objects nested too deeply")

// scanner reads PDF values from a byte slice.
type scanner struct {
	buf   []byte
	off   int
	depth int
}

func newScanner(buf []byte, off int) *scanner {
	return &scanner{buf: buf, off: off}
}

func (s *scanner) eof() bool { return s.off >= len(s.buf) }

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// skip moves past whitespace and comments.
func (s *scanner) skip() {
	for !s.eof() {
		switch b := s.buf[s.off]; {
		case b == '%':
			for !s.eof() && s.buf[s.off] != '\n' && s.buf[s.off] != '\r' {
				s.off++
			}
		case isSpace(b):
			s.off++
		default:
			return
		}
	}
}

// keyword consumes kw when it is next in the input.
func (s *scanner) keyword(kw string) bool {
	s.skip()
	if !bytes.HasPrefix(s.buf[s.off:], []byte(kw)) {
		return false
	}
	s.off += len(kw)
	return true
}

// token returns the next run of regular characters.
func (s *scanner) token() string {
	s.skip()
	start := s.off
	for !s.eof() && !isSpace(s.buf[s.off]) && !isDelimiter(s.buf[s.off]) {
		s.off++
	}
	return string(s.buf[start:s.off])
}

// value parses the next value. Unknown tokens yield Null.
func (s *scanner) value() (*Value, error) {
	if s.depth > maxDepth {
		return nil, errTooDeep
	}
	s.skip()
	if s.eof() {
		return null, nil
	}
	switch b := s.buf[s.off]; {
	case b == '(':
		return s.literal(), nil
	case b == '<' && s.off+1 < len(s.buf) && s.buf[s.off+1] == '<':
		return s.dict()
	case b == '<':
		return s.hex(), nil
	case b == '/':
		return &Value{Kind: Name, Name: s.name()}, nil
	case b == '[':
		return s.array()
	case b == '+' || b == '-' || b == '.' || (b >= '0' && b <= '9'):
		return s.number(), nil
	}
	switch tok := s.token(); tok {
	case "true", "false":
		return &Value{Kind: Bool, Bool: tok == "true"}, nil
	case "":
		s.off++
	}
	return null, nil
}

var escapes = map[byte]byte{'n': '\n', 'r': '\r', 't': '\t', 'b': '\b', 'f': '\f', '(': '(', ')': ')', '\\': '\\'}

func (s *scanner) literal() *Value {
	s.off++
	var out []byte
	for open := 1; !s.eof(); {
		b := s.buf[s.off]
		s.off++
		switch b {
		case '(':
			open++
		case ')':
			open--
			if open == 0 {
				return &Value{Kind: String, Bytes: out}
			}
		case '\\':
			if s.eof() {
				continue
			}
			e := s.buf[s.off]
			s.off++
			if r, ok := escapes[e]; ok {
				out = append(out, r)
				continue
			}
			if e >= '0' && e <= '7' {
				n := int(e - '0')
				for i := 0; i < 2 && !s.eof() && s.buf[s.off] >= '0' && s.buf[s.off] <= '7'; i++ {
					n = n*8 + int(s.buf[s.off]-'0')
					s.off++
				}
				out = append(out, byte(n))
				continue
			}
			if e == '\r' && !s.eof() && s.buf[s.off] == '\n' {
				s.off++
			}
			if e != '\r' && e != '\n' {
				out = append(out, e)
			}
			continue
		}
		out = append(out, b)
	}
	return &Value{Kind: String, Bytes: out}
}

func unhex(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// decodeHex reads hex digit pairs up to '>' or the end of buf, ignoring
// anything else. An odd final digit is padded with 0.
func decodeHex(buf []byte) (out []byte, n int) {
	var hi byte
	half := false
	for n = 0; n < len(buf) && buf[n] != '>'; n++ {
		d, ok := unhex(buf[n])
		if !ok {
			continue
		}
		if half {
			out = append(out, hi<<4|d)
		} else {
			hi = d
		}
		half = !half
	}
	if half {
		out = append(out, hi<<4)
	}
	return out, n
}

func (s *scanner) hex() *Value {
	s.off++
	out, n := decodeHex(s.buf[s.off:])
	s.off += n
	if !s.eof() {
		s.off++
	}
	return &Value{Kind: String, Bytes: out}
}

// name reads /Name and resolves #xx escapes.
func (s *scanner) name() string {
	s.off++
	start := s.off
	for !s.eof() && !isSpace(s.buf[s.off]) && !isDelimiter(s.buf[s.off]) {
		s.off++
	}
	raw := s.buf[start:s.off]
	if bytes.IndexByte(raw, '#') < 0 {
		return string(raw)
	}
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '#' && i+2 < len(raw) {
			hi, ok1 := unhex(raw[i+1])
			lo, ok2 := unhex(raw[i+2])
			if ok1 && ok2 {
				out = append(out, hi<<4|lo)
				i += 2
				continue
			}
		}
		out = append(out, raw[i])
	}
	return string(out)
}

func (s *scanner) array() (*Value, error) {
	s.off++
	s.depth++
	defer func() { s.depth-- }()

	v := &Value{Kind: Array}
	for {
		s.skip()
		if s.eof() {
			return v, nil
		}
		if s.buf[s.off] == ']' {
			s.off++
			return v, nil
		}
		e, err := s.value()
		if err != nil {
			return nil, err
		}
		v.Array = append(v.Array, e)
	}
}

func (s *scanner) dict() (*Value, error) {
	s.off += 2
	s.depth++
	defer func() { s.depth-- }()

	d := make(Dict)
	for {
		s.skip()
		if s.eof() {
			break
		}
		if s.keyword(">>") {
			break
		}
		if s.buf[s.off] != '/' {
			s.off++
			continue
		}
		key := s.name()
		v, err := s.value()
		if err != nil {
			return nil, err
		}
		d[key] = v
	}

	if !s.keyword("stream") {
		return &Value{Kind: Dictionary, Dict: d}, nil
	}
	if !s.eof() && s.buf[s.off] == '\r' {
		s.off++
	}
	if !s.eof() && s.buf[s.off] == '\n' {
		s.off++
	}
	start := s.off
	var end int
	// An indirect Length falls back to scanning for endstream.
	if n, ok := d.Int("Length"); ok && n >= 0 && start+int(n) <= len(s.buf) {
		end = start + int(n)
	} else if i := bytes.Index(s.buf[start:], []byte("endstream")); i >= 0 {
		end = start + i
	} else {
		end = len(s.buf)
	}
	s.off = end
	s.keyword("endstream")
	return &Value{Kind: Stream, Dict: d, Bytes: s.buf[start:end]}, nil
}

// number reads an integer, a real, or an "N G R" reference.
func (s *scanner) number() *Value {
	tok := s.token()
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return null
		}
		return &Value{Kind: Real, Real: f}
	}

	mark := s.off
	if gen, err := strconv.Atoi(s.token()); err == nil && s.keyword("R") {
		if s.eof() || isSpace(s.buf[s.off]) || isDelimiter(s.buf[s.off]) {
			return &Value{Kind: Reference, Ref: Ref{Num: int(n), Gen: gen}}
		}
	}
	s.off = mark
	return &Value{Kind: Int, Int: n}
}
