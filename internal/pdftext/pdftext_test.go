package pdftext

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

// buildTestPDF creates a minimal PDF with one page per content stream.
// Pages inherit their MediaBox and Resources from the page tree root, the
// way gofpdf writes them. Streams are Flate-compressed when flate is set.
func buildTestPDF(t *testing.T, flate bool, streams ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	offsets := map[int]int{}
	obj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	buf.WriteString("%PDF-1.4\n")
	n := len(streams)
	fontNum := 3 + 2*n

	var kids []string
	for i := range streams {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+2*i))
	}
	obj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	obj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 595.28 841.89] /Resources << /Font << /F1 %d 0 R >> >> >>",
		strings.Join(kids, " "), n, fontNum))

	for i, cs := range streams {
		data := []byte(cs)
		filter := ""
		if flate {
			var z bytes.Buffer
			w := zlib.NewWriter(&z)
			w.Write(data)
			w.Close()
			data = z.Bytes()
			filter = " /Filter /FlateDecode"
		}
		obj(3+2*i, fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Contents %d 0 R >>", 4+2*i))
		offsets[4+2*i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n<< /Length %d%s >>\nstream\n", 4+2*i, len(data), filter)
		buf.Write(data)
		buf.WriteString("\nendstream\nendobj\n")
	}
	obj(fontNum, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", fontNum+1)
	for i := 1; i <= fontNum; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", fontNum+1, xref)
	return buf.Bytes()
}

func mustLoad(t *testing.T, data []byte) *Document {
	t.Helper()
	doc, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return doc
}

func TestExtractSimpleText(t *testing.T) {
	doc := mustLoad(t, buildTestPDF(t, false, "BT /F1 12 Tf 100 700 Td (Hello, World!) Tj ET"))

	text, err := NewExtractor(doc).ExtractPage(0)
	if err != nil {
		t.Fatalf("ExtractPage: %v", err)
	}
	if text != "Hello, World!" {
		t.Errorf("expected %q, got %q", "Hello, World!", text)
	}
}

func TestExtractFlateStream(t *testing.T) {
	doc := mustLoad(t, buildTestPDF(t, true, "BT /F1 9 Tf 500 20 Td (P\\341gina 1 de 1) Tj ET"))

	text, err := NewExtractor(doc).ExtractPage(0)
	if err != nil {
		t.Fatalf("ExtractPage: %v", err)
	}
	if text != "Página 1 de 1" {
		t.Errorf("expected WinAnsi decoded footer, got %q", text)
	}
}

func TestExtractTJOperator(t *testing.T) {
	tests := []struct {
		stream string
		want   string
	}{
		{"BT /F1 14 Tf 50 750 Td [(Go) -100 (PDF)] TJ ET", "GoPDF"},
		{"BT /F1 14 Tf 50 750 Td [(Go) -400 (PDF)] TJ ET", "Go PDF"},
		{"BT /F1 14 Tf 50 750 Td (A) Tj (B) Tj ET", "AB"},
	}
	for _, tt := range tests {
		doc := mustLoad(t, buildTestPDF(t, false, tt.stream))
		text, err := NewExtractor(doc).ExtractPage(0)
		if err != nil {
			t.Fatalf("ExtractPage(%q): %v", tt.stream, err)
		}
		if text != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.stream, tt.want, text)
		}
	}
}

func TestExtractLineOrder(t *testing.T) {
	cs := strings.Join([]string{
		"BT /F1 10 Tf 300 600 Td (right) Tj ET",
		"BT /F1 10 Tf 50 600.5 Td (left) Tj ET",
		"BT /F1 10 Tf 50 700 Td (top) Tj ET",
		"BT /F1 10 Tf 72 500 Td 12 TL (one) Tj T* (two) Tj ET",
	}, "\n")
	doc := mustLoad(t, buildTestPDF(t, false, cs))

	text, err := NewExtractor(doc).ExtractPage(0)
	if err != nil {
		t.Fatalf("ExtractPage: %v", err)
	}
	want := "top\nleft right\none\ntwo"
	if text != want {
		t.Errorf("expected %q, got %q", want, text)
	}
}

func TestSpansApplyMatrices(t *testing.T) {
	cs := "q 1 0 0 1 10 20 cm BT /F1 8 Tf 2 0 0 2 100 200 Tm (x) Tj ET Q BT /F1 8 Tf 5 5 Td (y) Tj ET"
	doc := mustLoad(t, buildTestPDF(t, false, cs))

	spans, err := NewExtractor(doc).Spans(0)
	if err != nil {
		t.Fatalf("Spans: %v", err)
	}
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].X != 110 || spans[0].Y != 220 || spans[0].Size != 16 {
		t.Errorf("unexpected first span %+v", spans[0])
	}
	if spans[1].X != 5 || spans[1].Y != 5 {
		t.Errorf("graphics state not restored, got %+v", spans[1])
	}
}

func TestMultiplePages(t *testing.T) {
	doc := mustLoad(t, buildTestPDF(t, true,
		"BT /F1 12 Tf 100 700 Td (Page one) Tj ET",
		"BT /F1 12 Tf 100 700 Td (Page two) Tj ET",
	))
	if doc.NumPages() != 2 {
		t.Fatalf("expected 2 pages, got %d", doc.NumPages())
	}

	all, err := NewExtractor(doc).ExtractAll()
	if err != nil {
		t.Fatalf("ExtractAll: %v", err)
	}
	if all[0] != "Page one" || all[1] != "Page two" {
		t.Errorf("unexpected pages %q", all)
	}
	if _, err := NewExtractor(doc).ExtractPage(2); !errors.Is(err, ErrPageRange) {
		t.Errorf("expected ErrPageRange, got %v", err)
	}
}

func TestPageInfoInherited(t *testing.T) {
	doc := mustLoad(t, buildTestPDF(t, false, "BT ET"))

	info, err := doc.PageInfo(0)
	if err != nil {
		t.Fatalf("PageInfo: %v", err)
	}
	if info.Width != 595.28 || info.Height != 841.89 || info.Rotation != 0 {
		t.Errorf("unexpected page info %+v", info)
	}
	if doc.Version() != "1.4" {
		t.Errorf("expected version 1.4, got %q", doc.Version())
	}
}

func TestLoadRejects(t *testing.T) {
	if _, err := Load([]byte("hello")); !errors.Is(err, ErrNotPDF) {
		t.Errorf("expected ErrNotPDF, got %v", err)
	}
	if _, err := Load([]byte("%PDF-1.4\nno xref here")); !errors.Is(err, ErrXRef) {
		t.Errorf("expected ErrXRef, got %v", err)
	}
}

func TestReadGofpdfOutput(t *testing.T) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for i := 1; i <= 2; i++ {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "", 9)
		pdf.Text(170, 287, tr(fmt.Sprintf("Página %d de 2", i)))
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("Output: %v", err)
	}

	doc := mustLoad(t, buf.Bytes())
	if doc.NumPages() != 2 {
		t.Fatalf("expected 2 pages, got %d", doc.NumPages())
	}
	info := doc.Pages()[1]
	if info.Width < 595 || info.Width > 596 || info.Height < 841 || info.Height > 842 {
		t.Errorf("expected A4 in points, got %+v", info)
	}

	all, err := NewExtractor(doc).ExtractAll()
	if err != nil {
		t.Fatalf("ExtractAll: %v", err)
	}
	for i, text := range all {
		want := fmt.Sprintf("Página %d de 2", i+1)
		if text != want {
			t.Errorf("page %d: expected %q, got %q", i+1, want, text)
		}
	}
}

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"48656c6c6f>", "Hello"},
		{"48 65 6c 6c 6f>", "Hello"},
		{"4865 6c6c 6f", "Hello"},
		{"7>", "p"},
	}
	for _, tt := range tests {
		got, _ := decodeHex([]byte(tt.input))
		if string(got) != tt.want {
			t.Errorf("decodeHex(%q): expected %q, got %q", tt.input, tt.want, got)
		}
	}
}

func TestRunLength(t *testing.T) {
	// 2 copies the next 3 bytes; 253 repeats the next byte 4 times.
	got := runLength([]byte{2, 'A', 'B', 'C', 253, 'X', 128, 'Z'})
	if string(got) != "ABCXXXX" {
		t.Errorf("expected ABCXXXX, got %q", got)
	}
}

func TestUnsupportedFilter(t *testing.T) {
	v := &Value{Kind: Stream, Dict: Dict{"Filter": {Kind: Name, Name: "DCTDecode"}}}
	if _, err := decode(v); !errors.Is(err, ErrFilter) {
		t.Errorf("expected ErrFilter, got %v", err)
	}
}

func TestScannerValues(t *testing.T) {
	s := newScanner([]byte(`true 42 -3.5 (a\(b\)\101) <48 49> /A#20B [1 2 0 R] << /K /V >> 7 0 R`), 0)

	want := []func(*Value) bool{
		func(v *Value) bool { return v.Kind == Bool && v.Bool },
		func(v *Value) bool { return v.Kind == Int && v.Int == 42 },
		func(v *Value) bool { return v.Kind == Real && v.Real == -3.5 },
		func(v *Value) bool { return v.Kind == String && string(v.Bytes) == "a(b)A" },
		func(v *Value) bool { return v.Kind == String && string(v.Bytes) == "HI" },
		func(v *Value) bool { return v.Kind == Name && v.Name == "A B" },
		func(v *Value) bool {
			return v.Kind == Array && len(v.Array) == 2 && v.Array[0].Int == 1 && v.Array[1].Ref == Ref{Num: 2}
		},
		func(v *Value) bool { return v.Kind == Dictionary && v.Dict.Name("K") == "V" },
		func(v *Value) bool { return v.Kind == Reference && v.Ref.Num == 7 },
	}
	for i, check := range want {
		v, err := s.value()
		if err != nil {
			t.Fatalf("value %d: %v", i, err)
		}
		if !check(v) {
			t.Errorf("value %d: unexpected %+v", i, v)
		}
	}
}
