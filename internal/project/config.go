package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Output formats accepted in [output].format.
const (
	FormatListing = "listing"
	FormatPretty  = "pretty"
	FormatJSON    = "json"
)

// Color modes accepted in [output].color.
const (
	ColorAuto = "auto"
	ColorOn   = "on"
	ColorOff  = "off"
)

// Config mirrors cminus.toml.
type Config struct {
	Analysis AnalysisConfig `toml:"analysis"`
	Output   OutputConfig   `toml:"output"`
}

type AnalysisConfig struct {
	Prelude      bool `toml:"prelude"`
	TraceSymbols bool `toml:"trace_symbols"`
}

type OutputConfig struct {
	Format         string `toml:"format"`
	Color          string `toml:"color"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Sort           bool   `toml:"sort"`
	Jobs           int    `toml:"jobs"`
}

// Manifest is a loaded config together with where it came from.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// DefaultConfig is what an absent cminus.toml means.
func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{
			Format:         FormatListing,
			Color:          ColorAuto,
			MaxDiagnostics: 100,
		},
	}
}

// LoadManifest finds and loads cminus.toml above startDir.
// ok is false when there is none; the caller then uses DefaultConfig.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	configPath, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   configPath,
		Root:   filepath.Dir(configPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes path over DefaultConfig, so missing keys keep defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0].String())
	}
	if meta.IsDefined("output", "format") {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	}
	if meta.IsDefined("output", "color") {
		cfg.Output.Color = strings.ToLower(strings.TrimSpace(cfg.Output.Color))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values and ranges.
func (c Config) Validate() error {
	switch c.Output.Format {
	case FormatListing, FormatPretty, FormatJSON:
	default:
		return fmt.Errorf("[output].format must be listing, pretty or json, got %q", c.Output.Format)
	}
	switch c.Output.Color {
	case ColorAuto, ColorOn, ColorOff:
	default:
		return fmt.Errorf("[output].color must be auto, on or off, got %q", c.Output.Color)
	}
	if c.Output.MaxDiagnostics < 0 {
		return fmt.Errorf("[output].max_diagnostics must not be negative")
	}
	if c.Output.Jobs < 0 {
		return fmt.Errorf("[output].jobs must not be negative")
	}
	return nil
}
