package proposalpdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/porticus-lab/go-proposal-pdf/internal/layout"
)

// maxAssetSize bounds the bytes read from any asset source.
const maxAssetSize = 8 << 20

// Asset is a decoded raster image.
type Asset struct {
	Name   string
	Data   []byte
	Format string // "PNG", "JPG" or "GIF"
	Width  int    // pixels
	Height int    // pixels
}

// AssetLoader provides the header image for a render. Returning a nil
// Asset and a nil error means the proposal has no header.
type AssetLoader interface {
	Load(ctx context.Context) (*Asset, error)
}

// AssetLoaderFunc adapts a function to [AssetLoader].
type AssetLoaderFunc func(ctx context.Context) (*Asset, error)

// Load implements [AssetLoader].
func (f AssetLoaderFunc) Load(ctx context.Context) (*Asset, error) {
	return f(ctx)
}

// DecodeAsset reads the format and pixel size of an encoded image.
func DecodeAsset(name string, data []byte) (*Asset, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAsset, name, err)
	}
	var kind string
	switch format {
	case "png":
		kind = "PNG"
	case "jpeg":
		kind = "JPG"
	case "gif":
		kind = "GIF"
	default:
		return nil, fmt.Errorf("%w: %s: unsupported format %q", ErrAsset, name, format)
	}
	return &Asset{
		Name:   name,
		Data:   data,
		Format: kind,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// BytesAsset serves an image held in memory.
func BytesAsset(name string, data []byte) AssetLoader {
	return AssetLoaderFunc(func(context.Context) (*Asset, error) {
		return DecodeAsset(name, data)
	})
}

// FileAsset reads the image at path on every render.
func FileAsset(path string) AssetLoader {
	return AssetLoaderFunc(func(ctx context.Context) (*Asset, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("proposalpdf: opening asset: %w", err)
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, maxAssetSize))
		if err != nil {
			return nil, fmt.Errorf("proposalpdf: reading asset: %w", err)
		}
		return DecodeAsset(filepath.Base(path), data)
	})
}

// URLAsset fetches the image at url on every render. A nil client uses
// [http.DefaultClient]. Retries are left to the client's transport.
func URLAsset(url string, client *http.Client) AssetLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return AssetLoaderFunc(func(ctx context.Context) (*Asset, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("proposalpdf: asset request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("proposalpdf: fetching asset: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: %s: status %d", ErrAsset, url, resp.StatusCode)
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize))
		if err != nil {
			return nil, fmt.Errorf("proposalpdf: reading asset: %w", err)
		}
		return DecodeAsset(url, data)
	})
}

func (a *Asset) image() *layout.Image {
	if a == nil || len(a.Data) == 0 {
		return nil
	}
	return &layout.Image{
		Name:   a.Name,
		Data:   a.Data,
		Format: a.Format,
		Width:  a.Width,
		Height: a.Height,
	}
}
