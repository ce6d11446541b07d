package proposalpdf_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	proposalpdf "github.com/porticus-lab/go-proposal-pdf"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestDecodeAsset(t *testing.T) {
	a, err := proposalpdf.DecodeAsset("logo.png", pngBytes(t, 800, 100))
	require.NoError(t, err)
	assert.Equal(t, "PNG", a.Format)
	assert.Equal(t, 800, a.Width)
	assert.Equal(t, 100, a.Height)

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 30, 20)), nil))
	a, err = proposalpdf.DecodeAsset("logo.jpg", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "JPG", a.Format)
	assert.Equal(t, 30, a.Width)

	_, err = proposalpdf.DecodeAsset("notes.txt", []byte("plain text"))
	assert.ErrorIs(t, err, proposalpdf.ErrAsset)
}

func TestFileAsset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "header.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 40, 10), 0o644))

	a, err := proposalpdf.FileAsset(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "header.png", a.Name)

	_, err = proposalpdf.FileAsset(filepath.Join(t.TempDir(), "missing.png")).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = proposalpdf.FileAsset(path).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestURLAsset(t *testing.T) {
	logo := pngBytes(t, 64, 16)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/logo.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(logo)
	}))
	defer srv.Close()

	a, err := proposalpdf.URLAsset(srv.URL+"/logo.png", srv.Client()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 64, a.Width)
	assert.Equal(t, 16, a.Height)

	_, err = proposalpdf.URLAsset(srv.URL+"/missing.png", nil).Load(context.Background())
	assert.ErrorIs(t, err, proposalpdf.ErrAsset)
}

func TestBytesAsset(t *testing.T) {
	a, err := proposalpdf.BytesAsset("inline", pngBytes(t, 10, 10)).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "inline", a.Name)

	_, err = proposalpdf.BytesAsset("broken", nil).Load(context.Background())
	assert.True(t, errors.Is(err, proposalpdf.ErrAsset))
}
