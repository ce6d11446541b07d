// Package fpdfsurface draws layout output into a PDF with gofpdf.
package fpdfsurface

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/porticus-lab/go-proposal-pdf/internal/layout"
)

// family is the core font used for every text run. Core fonts need no
// embedding and cover cp1252, which holds every Portuguese accent.
const family = "Helvetica"

// middleShift moves a baseline down by this share of the font size so the
// glyphs sit centered on the requested y.
const middleShift = 0.35

// Info is the document metadata written to the PDF trailer.
type Info struct {
	Title   string
	Author  string
	Creator string
}

// Surface is a layout.Surface backed by a gofpdf document.
type Surface struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	images map[string]bool
	size   float64
}

// New returns a Surface with the given page size in millimetres.
func New(width, height float64, info Info) *Surface {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	if info.Title != "" {
		pdf.SetTitle(info.Title, true)
	}
	if info.Author != "" {
		pdf.SetAuthor(info.Author, true)
	}
	if info.Creator != "" {
		pdf.SetCreator(info.Creator, true)
	}

	s := &Surface{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		images: make(map[string]bool),
		size:   10,
	}
	pdf.SetFont(family, "", s.size)
	return s
}

// A4 returns a portrait A4 Surface.
func A4(info Info) *Surface {
	return New(210, 297, info)
}

func (s *Surface) AddPage()         { s.pdf.AddPage() }
func (s *Surface) PageCount() int   { return s.pdf.PageCount() }
func (s *Surface) CurrentPage() int { return s.pdf.PageNo() }

func (s *Surface) SetPage(n int) {
	if n < 1 || n > s.pdf.PageCount() {
		s.pdf.SetError(fmt.Errorf("fpdfsurface: page %d out of range 1..%d", n, s.pdf.PageCount()))
		return
	}
	s.pdf.SetPage(n)
}

func (s *Surface) PageSize() (float64, float64) {
	return s.pdf.GetPageSize()
}

func (s *Surface) SetFillColor(c layout.Color) {
	s.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func (s *Surface) SetDrawColor(c layout.Color) {
	s.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func (s *Surface) SetTextColor(c layout.Color) {
	s.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}

func (s *Surface) SetLineWidth(w float64) { s.pdf.SetLineWidth(w) }

func (s *Surface) Rect(x, y, w, h float64, style layout.DrawStyle) {
	s.pdf.Rect(x, y, w, h, string(style))
}

func (s *Surface) Circle(x, y, r float64, style layout.DrawStyle) {
	s.pdf.Circle(x, y, r, string(style))
}

func (s *Surface) SetFont(style layout.FontStyle, size float64) {
	s.size = size
	s.pdf.SetFont(family, string(style), size)
}

func (s *Surface) TextWidth(text string) float64 {
	return s.pdf.GetStringWidth(s.tr(text))
}

func (s *Surface) Text(x, y float64, text string, opts layout.TextOptions) {
	enc := s.tr(text)
	switch opts.Align {
	case layout.AlignCenter:
		x -= s.pdf.GetStringWidth(enc) / 2
	case layout.AlignRight:
		x -= s.pdf.GetStringWidth(enc)
	}
	if opts.Baseline == layout.BaselineMiddle {
		_, unit := s.pdf.GetFontSize()
		y += unit * middleShift
	}
	s.pdf.Text(x, y, enc)
}

// Image places img, registering its data on first use.
func (s *Surface) Image(img *layout.Image, x, y, w, h float64) {
	if img == nil || len(img.Data) == 0 {
		return
	}
	opts := gofpdf.ImageOptions{ImageType: img.Format}
	if !s.images[img.Name] {
		s.pdf.RegisterImageOptionsReader(img.Name, opts, bytes.NewReader(img.Data))
		if s.pdf.Err() {
			return
		}
		s.images[img.Name] = true
	}
	s.pdf.ImageOptions(img.Name, x, y, w, h, false, opts, 0, "")
}

func (s *Surface) Err() error { return s.pdf.Error() }

// CheckImage reports whether gofpdf can embed img, without touching any
// document in progress.
func CheckImage(img *layout.Image) error {
	if img == nil || len(img.Data) == 0 {
		return errors.New("fpdfsurface: empty image")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.RegisterImageOptionsReader(img.Name, gofpdf.ImageOptions{ImageType: img.Format}, bytes.NewReader(img.Data))
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("fpdfsurface: image %s: %w", img.Name, err)
	}
	return nil
}

// ErrEmpty is returned by Output for a document without pages.
var ErrEmpty = errors.New("fpdfsurface: document has no pages")

// Output writes the finished PDF to w.
func (s *Surface) Output(w io.Writer) error {
	if s.pdf.PageCount() == 0 {
		return ErrEmpty
	}
	if err := s.pdf.Output(w); err != nil {
		return fmt.Errorf("fpdfsurface: writing pdf: %w", err)
	}
	return nil
}

var _ layout.Surface = (*Surface)(nil)
