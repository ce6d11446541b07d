package proposalpdf

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/porticus-lab/go-proposal-pdf/internal/fpdfsurface"
	"github.com/porticus-lab/go-proposal-pdf/internal/layout"
	"github.com/porticus-lab/go-proposal-pdf/proposal"
)

// RenderOptions controls what happens to a rendered proposal.
type RenderOptions struct {
	// Preview keeps the result in memory only, for display in a viewer.
	Preview bool

	// Dir is where a non-preview result is saved under its [FileName].
	// An empty Dir keeps the result in memory.
	Dir string
}

// Generator renders proposals to PDF.
//
// A Generator holds only configuration; every call to [Generator.Render]
// builds its own drawing surface and layout engine, so a Generator is safe
// for concurrent use.
type Generator struct {
	cfg generatorConfig
}

// New creates a Generator with the given options.
func New(opts ...Option) *Generator {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Generator{cfg: cfg}
}

// Render lays out doc and encodes it as a PDF. If opts is nil the result
// stays in memory.
//
// Either a complete document is returned or an error wrapping [ErrRender]
// together with its cause; a partially drawn document is never returned.
func (g *Generator) Render(ctx context.Context, doc *proposal.Document, opts *RenderOptions) (*Result, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	if opts == nil {
		opts = &RenderOptions{Preview: true}
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("proposalpdf: %w", err)
	}

	id := uuid.NewString()
	log := g.cfg.log.With(zap.String("render_id", id))
	start := time.Now()

	header := g.loadHeader(ctx, log)

	res, err := g.render(doc, header, log)
	if err != nil {
		log.Error("render failed", zap.Error(err))
		return nil, err
	}
	res.id = id

	if !opts.Preview && opts.Dir != "" {
		path, err := res.Save(opts.Dir)
		if err != nil {
			return nil, err
		}
		log.Info("proposal saved", zap.String("path", path))
	}

	log.Info("proposal rendered",
		zap.String("proposal", doc.Metadata.ID),
		zap.Int("pages", res.pages),
		zap.Int("bytes", res.Len()),
		zap.Bool("preview", opts.Preview),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// render draws doc on a fresh surface. A panic in the engine or in gofpdf
// becomes an error.
func (g *Generator) render(doc *proposal.Document, header *layout.Image, log *zap.Logger) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			if cause, ok := r.(error); ok {
				err = fmt.Errorf("%w: panic: %w", ErrRender, cause)
				return
			}
			err = fmt.Errorf("%w: panic: %v", ErrRender, r)
		}
	}()

	w, h := g.cfg.page.dimensions()
	surface := fpdfsurface.New(w, h, fpdfsurface.Info{
		Title:   documentTitle(doc),
		Author:  doc.Supplier.Name,
		Creator: g.cfg.creator,
	})

	cfg := g.cfg.page.layoutConfig(layout.DefaultConfig())
	cfg.AcceptancePlace = g.cfg.place

	engine := layout.New(surface, cfg,
		layout.WithHeaderImage(header),
		layout.WithNumberFormat(g.cfg.numbers),
		layout.WithLogger(log))

	report, err := engine.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	var buf bytes.Buffer
	if err := surface.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	return &Result{
		data:     buf.Bytes(),
		pages:    report.Pages,
		fileName: FileName(doc),
		labels:   report.FooterLabels,
	}, nil
}

// loadHeader resolves the header asset before any drawing starts. Failures
// degrade to no header.
func (g *Generator) loadHeader(ctx context.Context, log *zap.Logger) *layout.Image {
	if g.cfg.header == nil {
		return nil
	}
	asset, err := g.cfg.header.Load(ctx)
	if err != nil {
		log.Warn("header asset unavailable, rendering without header", zap.Error(err))
		return nil
	}
	img := asset.image()
	if img == nil {
		return nil
	}
	if err := fpdfsurface.CheckImage(img); err != nil {
		log.Warn("header asset cannot be embedded, rendering without header", zap.Error(err))
		return nil
	}
	return img
}

func documentTitle(doc *proposal.Document) string {
	n := doc.Metadata.DisplayNumber
	if n == "" {
		n = doc.Metadata.ID
	}
	if n == "" {
		return "Proposta Comercial"
	}
	return "Proposta Comercial " + n
}
