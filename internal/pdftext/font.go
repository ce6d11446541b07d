package pdftext

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// font decodes string operands of text-showing operators.
type font struct {
	dec *encoding.Decoder
}

// fontFor maps the resource font dictionary to a decoder. Simple fonts
// without an explicit encoding are read as WinAnsi, which matches the
// standard encoding for printable ASCII.
func (d *Document) fontFor(resources Dict, name string) font {
	enc := charmap.Windows1252
	if fonts := d.dict(resources["Font"]); fonts != nil {
		if f := d.dict(fonts[name]); f != nil {
			switch e, _ := d.resolve(f["Encoding"]); {
			case e == nil:
			case e.Kind == Name && e.Name == "MacRomanEncoding":
				enc = charmap.Macintosh
			case e.Kind == Dictionary && e.Dict.Name("BaseEncoding") == "MacRomanEncoding":
				enc = charmap.Macintosh
			}
		}
	}
	return font{dec: enc.NewDecoder()}
}

func (f font) text(b []byte) string {
	if f.dec == nil {
		return string(b)
	}
	out, err := f.dec.Bytes(b)
	if err != nil {
		return string(b)
	}
	return strings.ToValidUTF8(string(out), "")
}
