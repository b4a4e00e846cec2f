package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	gkcolor "github.com/gookit/color"
	"github.com/rusq/osenv/v2"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Render  RenderConfig  `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	Catalog CatalogConfig `yaml:"catalog"`
}

// InputConfig holds configuration for source images
type InputConfig struct {
	SupportedFormats []string `yaml:"supported_formats"`
}

// RenderConfig holds configuration for drawing the output canvas
type RenderConfig struct {
	Filter     string `yaml:"filter"`
	Background string `yaml:"background"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	Format   string `yaml:"format"`
	Quality  int    `yaml:"quality"`
	Lossless bool   `yaml:"lossless"`
	Dir      string `yaml:"dir"`
	Prefix   string `yaml:"prefix"`
}

// CatalogConfig points at an alternative spec catalog. An empty path selects
// the built-in one.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Input: InputConfig{
			SupportedFormats: []string{"jpeg", "png", "gif", "webp", "bmp", "tiff"},
		},
		Render: RenderConfig{
			Filter:     "lanczos",
			Background: "#ffffff",
		},
		Output: OutputConfig{
			Format:  "jpg",
			Quality: 90,
			Dir:     ".",
		},
	}
}

// LoadFromFile loads configuration from a YAML file. Keys missing from the
// file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides values from WEBSAFESPEC_* environment variables
func (c *Config) ApplyEnv() {
	c.Output.Dir = osenv.Value("WEBSAFESPEC_OUTPUT_DIR", c.Output.Dir)
	c.Output.Prefix = osenv.Value("WEBSAFESPEC_PREFIX", c.Output.Prefix)
	c.Output.Format = osenv.Value("WEBSAFESPEC_FORMAT", c.Output.Format)
	c.Output.Quality = osenv.Value("WEBSAFESPEC_QUALITY", c.Output.Quality)
	c.Catalog.Path = osenv.Value("WEBSAFESPEC_CATALOG", c.Catalog.Path)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Input.SupportedFormats) == 0 {
		return fmt.Errorf("input.supported_formats cannot be empty")
	}

	switch strings.ToLower(c.Output.Format) {
	case "jpg", "jpeg", "png", "webp":
	default:
		return fmt.Errorf("output.format must be one of jpg, png, webp")
	}

	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir cannot be empty")
	}

	if strings.ContainsAny(c.Output.Prefix, `/\`) {
		return fmt.Errorf("output.prefix must not contain path separators")
	}

	if _, err := ParseHexColor(c.Render.Background); err != nil {
		return fmt.Errorf("render.background: %w", err)
	}

	return nil
}

// BackgroundColor returns the parsed render background
func (c *Config) BackgroundColor() color.Color {
	col, err := ParseHexColor(c.Render.Background)
	if err != nil {
		return color.White
	}
	return col
}

// ParseHexColor parses #rgb and #rrggbb colours into an opaque colour
func ParseHexColor(s string) (color.NRGBA, error) {
	rgb := gkcolor.HexToRgb(s)
	if len(rgb) != 3 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	return color.NRGBA{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2]), A: 0xff}, nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./websafespec.yaml"
	}
	return filepath.Join(home, ".config", "websafespec", "config.yaml")
}
