package fpdfsurface_test

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porticus-lab/go-proposal-pdf/internal/fpdfsurface"
	"github.com/porticus-lab/go-proposal-pdf/internal/layout"
)

func TestSurfaceOutput(t *testing.T) {
	s := fpdfsurface.A4(fpdfsurface.Info{Title: "Proposta", Creator: "test"})
	s.AddPage()
	s.SetFillColor(layout.Color{R: 66, G: 133, B: 244})
	s.Rect(20, 20, 170, 8, layout.Fill)
	s.SetFont(layout.Bold, 11)
	s.Text(26, 24, "PRESTAÇÕES DE SERVIÇO", layout.TextOptions{Baseline: layout.BaselineMiddle})
	s.AddPage()

	assert.Equal(t, 2, s.PageCount())
	assert.Equal(t, 2, s.CurrentPage())
	s.SetPage(1)
	assert.Equal(t, 1, s.CurrentPage())

	w, h := s.PageSize()
	assert.InDelta(t, 210.0, w, 0.01)
	assert.InDelta(t, 297.0, h, 0.01)

	var buf bytes.Buffer
	require.NoError(t, s.Output(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestSurfaceTextWidthGrowsWithSize(t *testing.T) {
	s := fpdfsurface.A4(fpdfsurface.Info{})
	s.AddPage()

	s.SetFont(layout.Regular, 8)
	small := s.TextWidth("Condições")
	s.SetFont(layout.Regular, 16)
	large := s.TextWidth("Condições")

	assert.Positive(t, small)
	assert.InDelta(t, 2*small, large, 1e-6)
}

func TestSurfaceSetPageOutOfRange(t *testing.T) {
	s := fpdfsurface.A4(fpdfsurface.Info{})
	s.AddPage()
	s.SetPage(3)
	assert.Error(t, s.Err())
}

func TestSurfaceOutputWithoutPages(t *testing.T) {
	s := fpdfsurface.A4(fpdfsurface.Info{})
	err := s.Output(&bytes.Buffer{})
	assert.True(t, errors.Is(err, fpdfsurface.ErrEmpty))
}

func TestCheckImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 40, 10))))

	ok := &layout.Image{Name: "logo", Data: buf.Bytes(), Format: "PNG", Width: 40, Height: 10}
	assert.NoError(t, fpdfsurface.CheckImage(ok))

	bad := &layout.Image{Name: "broken", Data: []byte("not an image"), Format: "PNG"}
	assert.Error(t, fpdfsurface.CheckImage(bad))
	assert.Error(t, fpdfsurface.CheckImage(nil))
}
