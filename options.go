package proposalpdf

import (
	"go.uber.org/zap"

	"github.com/porticus-lab/go-proposal-pdf/internal/money"
)

// NumberFormat renders monetary amounts computed during layout, such as
// recomputed section subtotals.
type NumberFormat interface {
	Format(v float64) string
}

// generatorConfig holds internal configuration for a Generator.
type generatorConfig struct {
	log     *zap.Logger
	header  AssetLoader
	page    *PageConfig
	numbers NumberFormat
	place   string
	creator string
}

func defaultConfig() generatorConfig {
	return generatorConfig{
		log:     zap.NewNop(),
		numbers: money.BRL(),
		place:   "São Paulo",
		creator: "go-proposal-pdf",
	}
}

// Option configures a [Generator].
type Option func(*generatorConfig)

// WithLogger sets the logger. Every render logs with a render_id field.
// Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *generatorConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// WithHeaderLoader sets the source of the running header image. A loader
// error or a nil asset renders the proposal without a header.
func WithHeaderLoader(l AssetLoader) Option {
	return func(c *generatorConfig) {
		c.header = l
	}
}

// WithPageConfig sets the page geometry. Zero fields keep their defaults.
func WithPageConfig(p PageConfig) Option {
	return func(c *generatorConfig) {
		c.page = &p
	}
}

// WithNumberFormat sets the currency format. Defaults to Brazilian reais.
func WithNumberFormat(f NumberFormat) Option {
	return func(c *generatorConfig) {
		if f != nil {
			c.numbers = f
		}
	}
}

// WithAcceptancePlace sets the place printed in the acceptance band, as in
// "São Paulo, dia 10/03/2025".
func WithAcceptancePlace(place string) Option {
	return func(c *generatorConfig) {
		if place != "" {
			c.place = place
		}
	}
}

// WithCreator sets the Creator entry of the PDF metadata.
func WithCreator(name string) Option {
	return func(c *generatorConfig) {
		if name != "" {
			c.creator = name
		}
	}
}
