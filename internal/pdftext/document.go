package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
)

var (
	// ErrNotPDF is returned when the input lacks a %PDF- header.
	ErrNotPDF = errors.New("pdftext: not a PDF file")
	// ErrXRef is returned when the cross-reference table cannot be read.
	ErrXRef = errors.New("pdftext: cannot read cross-reference table")
	// ErrPageRange is returned for a page index outside the document.
	ErrPageRange = errors.New("pdftext: page out of range")
)

// PageInfo describes the geometry of one page in points.
type PageInfo struct {
	Width    float64
	Height   float64
	Rotation int
}

type page struct {
	dict      Dict
	resources Dict
	info      PageInfo
}

// Document is a parsed PDF.
type Document struct {
	data    []byte
	version string
	offsets map[int]int
	trailer Dict
	cache   map[int]*Value
	pages   []page
}

// Open reads and parses the PDF at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pdftext: open: %w", err)
	}
	return Load(data)
}

// Load parses a PDF held in memory.
func Load(data []byte) (*Document, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, ErrNotPDF
	}
	d := &Document{
		data:    data,
		offsets: make(map[int]int),
		cache:   make(map[int]*Value),
	}
	if end := bytes.IndexAny(data, "\r\n"); end > 5 {
		d.version = string(data[5:end])
	}
	if err := d.readXRef(); err != nil {
		return nil, err
	}
	if err := d.readPages(); err != nil {
		return nil, err
	}
	return d, nil
}

// Version returns the header version, e.g. "1.3".
func (d *Document) Version() string { return d.version }

// NumPages returns the number of pages.
func (d *Document) NumPages() int { return len(d.pages) }

// Pages returns the geometry of every page in document order.
func (d *Document) Pages() []PageInfo {
	out := make([]PageInfo, len(d.pages))
	for i, p := range d.pages {
		out[i] = p.info
	}
	return out
}

// PageInfo returns the geometry of page i, counted from zero.
func (d *Document) PageInfo(i int) (PageInfo, error) {
	if i < 0 || i >= len(d.pages) {
		return PageInfo{}, fmt.Errorf("%w: %d", ErrPageRange, i)
	}
	return d.pages[i].info, nil
}

func (d *Document) readXRef() error {
	i := bytes.LastIndex(d.data, []byte("startxref"))
	if i < 0 {
		return ErrXRef
	}
	s := newScanner(d.data, i+len("startxref"))
	off, err := strconv.Atoi(s.token())
	if err != nil || off < 0 || off >= len(d.data) {
		return ErrXRef
	}

	// Follow /Prev so incremental updates resolve; newer entries win.
	seen := map[int]bool{}
	for off >= 0 && !seen[off] {
		seen[off] = true
		trailer, err := d.readSection(off)
		if err != nil {
			return err
		}
		if d.trailer == nil {
			d.trailer = trailer
		}
		prev, ok := trailer.Int("Prev")
		if !ok {
			break
		}
		off = int(prev)
	}
	return nil
}

func (d *Document) readSection(off int) (Dict, error) {
	s := newScanner(d.data, off)
	if !s.keyword("xref") {
		return nil, fmt.Errorf("%w: cross-reference streams are not supported", ErrXRef)
	}
	for {
		if s.keyword("trailer") {
			v, err := s.value()
			if err != nil {
				return nil, err
			}
			if v.Kind != Dictionary {
				return nil, ErrXRef
			}
			return v.Dict, nil
		}
		first, err1 := strconv.Atoi(s.token())
		count, err2 := strconv.Atoi(s.token())
		if err1 != nil || err2 != nil || count < 0 {
			return nil, ErrXRef
		}
		for n := 0; n < count; n++ {
			at, err1 := strconv.Atoi(s.token())
			_, err2 := strconv.Atoi(s.token())
			kind := s.token()
			if err1 != nil || err2 != nil {
				return nil, ErrXRef
			}
			if _, ok := d.offsets[first+n]; ok || kind != "n" {
				continue
			}
			d.offsets[first+n] = at
		}
	}
}

// object loads indirect object num.
func (d *Document) object(num int) (*Value, error) {
	if v, ok := d.cache[num]; ok {
		return v, nil
	}
	off, ok := d.offsets[num]
	if !ok || off >= len(d.data) {
		return null, nil
	}
	d.cache[num] = null // breaks reference cycles

	s := newScanner(d.data, off)
	s.token()
	s.token()
	if !s.keyword("obj") {
		return nil, fmt.Errorf("pdftext: object %d: missing obj keyword", num)
	}
	v, err := s.value()
	if err != nil {
		return nil, fmt.Errorf("pdftext: object %d: %w", num, err)
	}
	d.cache[num] = v
	return v, nil
}

// resolve follows references until it reaches a direct value.
func (d *Document) resolve(v *Value) (*Value, error) {
	for hops := 0; v != nil && v.Kind == Reference; hops++ {
		if hops > 32 {
			return nil, errors.New("pdftext: reference chain too long")
		}
		var err error
		if v, err = d.object(v.Ref.Num); err != nil {
			return nil, err
		}
	}
	if v == nil {
		return null, nil
	}
	return v, nil
}

func (d *Document) dict(v *Value) Dict {
	r, err := d.resolve(v)
	if err != nil || (r.Kind != Dictionary && r.Kind != Stream) {
		return nil
	}
	return r.Dict
}

// inherited holds the page attributes passed down the page tree.
type inherited struct {
	mediaBox  *Value
	resources *Value
	rotate    *Value
}

func (d *Document) readPages() error {
	root := d.dict(d.trailer["Root"])
	if root == nil {
		return errors.New("pdftext: missing document catalog")
	}
	pages, ok := root["Pages"]
	if !ok {
		return errors.New("pdftext: missing page tree")
	}
	return d.walk(pages, inherited{}, map[int]bool{})
}

func (d *Document) walk(node *Value, inh inherited, seen map[int]bool) error {
	if node.Kind == Reference {
		if seen[node.Ref.Num] {
			return nil
		}
		seen[node.Ref.Num] = true
	}
	n := d.dict(node)
	if n == nil {
		return nil
	}
	if v, ok := n["MediaBox"]; ok {
		inh.mediaBox = v
	}
	if v, ok := n["Resources"]; ok {
		inh.resources = v
	}
	if v, ok := n["Rotate"]; ok {
		inh.rotate = v
	}

	if n.Name("Type") == "Page" || n["Kids"] == nil {
		d.pages = append(d.pages, page{
			dict:      n,
			resources: d.dict(inh.resources),
			info:      d.pageInfo(inh),
		})
		return nil
	}
	kids, err := d.resolve(n["Kids"])
	if err != nil {
		return err
	}
	for _, k := range kids.Array {
		if err := d.walk(k, inh, seen); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) pageInfo(inh inherited) PageInfo {
	// US Letter when no MediaBox is given.
	box := [4]float64{0, 0, 612, 792}
	if mb, err := d.resolve(inh.mediaBox); err == nil && mb.Kind == Array && len(mb.Array) == 4 {
		for i, e := range mb.Array {
			if e, err := d.resolve(e); err == nil {
				if f, ok := e.Number(); ok {
					box[i] = f
				}
			}
		}
	}
	info := PageInfo{Width: box[2] - box[0], Height: box[3] - box[1]}
	if info.Width < 0 {
		info.Width = -info.Width
	}
	if info.Height < 0 {
		info.Height = -info.Height
	}
	if r, err := d.resolve(inh.rotate); err == nil {
		if f, ok := r.Number(); ok {
			info.Rotation = ((int(f) % 360) + 360) % 360
		}
	}
	return info
}

// contents returns the decoded content streams of page i, concatenated.
func (d *Document) contents(i int) ([]byte, error) {
	v, err := d.resolve(d.pages[i].dict["Contents"])
	if err != nil {
		return nil, err
	}
	streams := []*Value{v}
	if v.Kind == Array {
		streams = v.Array
	}
	var out []byte
	for _, s := range streams {
		s, err := d.resolve(s)
		if err != nil {
			return nil, err
		}
		if s.Kind != Stream {
			continue
		}
		data, err := decode(s)
		if err != nil {
			return nil, fmt.Errorf("pdftext: page %d: %w", i+1, err)
		}
		out = append(out, data...)
		out = append(out, '\n')
	}
	return out, nil
}
