// Package config loads the YAML configuration shared by the proposalpdf
// command and its HTTP server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	proposalpdf "github.com/porticus-lab/go-proposal-pdf"
)

// Config is the application configuration.
type Config struct {
	Page            PageConfig   `yaml:"page"`
	HeaderImage     string       `yaml:"header_image"`
	AcceptancePlace string       `yaml:"acceptance_place"`
	OutputDir       string       `yaml:"output_dir"`
	Texts           TextsConfig  `yaml:"texts"`
	Server          ServerConfig `yaml:"server"`
	Log             LogConfig    `yaml:"log"`
}

// PageConfig mirrors [proposalpdf.PageConfig] with names for the paper
// size and orientation. Zero measures keep the library defaults.
type PageConfig struct {
	Size            string  `yaml:"size"`
	Orientation     string  `yaml:"orientation"`
	SideMargin      float64 `yaml:"side_margin"`
	BottomMargin    float64 `yaml:"bottom_margin"`
	HeaderTop       float64 `yaml:"header_top"`
	HeaderMaxHeight float64 `yaml:"header_max_height"`
	HeaderGap       float64 `yaml:"header_gap"`
}

// TextsConfig overrides the fallback policy and conditions texts used when
// a proposal carries none.
type TextsConfig struct {
	Policy     string `yaml:"policy"`
	Conditions string `yaml:"conditions"`
}

// ServerConfig configures the HTTP render endpoint.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// LogConfig selects the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

var (
	// ErrInvalid is returned by [Config.Validate] for unusable values.
	ErrInvalid = errors.New("config: invalid configuration")
)

var pageSizes = map[string]proposalpdf.PageSize{
	"a4":     proposalpdf.A4,
	"a5":     proposalpdf.A5,
	"letter": proposalpdf.Letter,
	"legal":  proposalpdf.Legal,
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Page: PageConfig{
			Size:        "A4",
			Orientation: "portrait",
		},
		AcceptancePlace: "São Paulo",
		OutputDir:       "./out",
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			MaxBodyBytes: 4 << 20,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a file. Keys missing from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads config from path, or returns the default if path is
// empty or does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: creating directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encoding: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}

// Validate checks the values that cannot fall back to a default.
func (c *Config) Validate() error {
	if _, err := c.Page.Resolve(); err != nil {
		return err
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); c.Log.Level != "" && err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: server.max_body_bytes must not be negative", ErrInvalid)
	}
	return nil
}

// Resolve converts p into the library page configuration.
func (p PageConfig) Resolve() (proposalpdf.PageConfig, error) {
	pc := proposalpdf.PageConfig{
		SideMargin:      p.SideMargin,
		BottomMargin:    p.BottomMargin,
		HeaderTop:       p.HeaderTop,
		HeaderMaxHeight: p.HeaderMaxHeight,
		HeaderGap:       p.HeaderGap,
	}
	if p.Size != "" {
		size, ok := pageSizes[strings.ToLower(p.Size)]
		if !ok {
			return pc, fmt.Errorf("%w: page.size %q", ErrInvalid, p.Size)
		}
		pc.Size = size
	}
	switch strings.ToLower(p.Orientation) {
	case "", "portrait":
		pc.Orientation = proposalpdf.Portrait
	case "landscape":
		pc.Orientation = proposalpdf.Landscape
	default:
		return pc, fmt.Errorf("%w: page.orientation %q", ErrInvalid, p.Orientation)
	}
	return pc, nil
}

// Logger builds the zap logger described by l.
func (l LogConfig) Logger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	}
	if l.Level != "" {
		level, err := zap.ParseAtomicLevel(l.Level)
		if err != nil {
			return nil, fmt.Errorf("%w: log.level %q", ErrInvalid, l.Level)
		}
		zc.Level = level
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("config: building logger: %w", err)
	}
	return logger, nil
}

// HeaderLoader returns the asset loader for HeaderImage: an http(s) URL or
// a file path. It returns nil when no header is configured.
func (c *Config) HeaderLoader() proposalpdf.AssetLoader {
	switch h := c.HeaderImage; {
	case h == "":
		return nil
	case strings.HasPrefix(h, "http://"), strings.HasPrefix(h, "https://"):
		return proposalpdf.URLAsset(h, nil)
	default:
		return proposalpdf.FileAsset(h)
	}
}

// GeneratorOptions translates the configuration into generator options.
func (c *Config) GeneratorOptions(logger *zap.Logger) ([]proposalpdf.Option, error) {
	page, err := c.Page.Resolve()
	if err != nil {
		return nil, err
	}
	opts := []proposalpdf.Option{
		proposalpdf.WithPageConfig(page),
		proposalpdf.WithAcceptancePlace(c.AcceptancePlace),
		proposalpdf.WithLogger(logger),
	}
	if l := c.HeaderLoader(); l != nil {
		opts = append(opts, proposalpdf.WithHeaderLoader(l))
	}
	return opts, nil
}
