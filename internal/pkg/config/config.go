// Package config holds the rendering configuration, from embedded defaults
// optionally overlaid with a user YAML file.
package config

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"go.yaml.in/yaml/v3"
)

//go:embed default_config.yaml
var efs embed.FS

// minRefreshSeconds is the lowest refresh interval the display accepts.
const minRefreshSeconds = 60

// Config holds the configuration for insightviz.
type Config struct {
	Name       string
	Refresh    int
	Canvas     Canvas
	Labels     Labels
	Screenshot Screenshot
	Outputs    Output `mapstructure:"-"`
}

// Canvas is the logical canvas of the target display.
type Canvas struct {
	Width  int
	Height int
}

// Labels bounds the amount of text placed on a screen.
type Labels struct {
	Axis   int // target number of x-axis labels
	Legend int // pie legend entries
	List   int // ranked list rows
	Runes  int // label truncation budget
}

// Screenshot configures the headless Chrome screenshot used for PNG rendering.
type Screenshot struct {
	Height int64
	Width  int64
	Sleep  string
}

// SleepDuration parses the Sleep field as a [time.Duration].
func (s Screenshot) SleepDuration() time.Duration {
	d, err := time.ParseDuration(s.Sleep)
	if d == 0 || err != nil {
		return 0
	}

	return d
}

// Output holds the resolved output file paths.
type Output struct {
	MarkupFile string
	PngFile    string
	IsTemp     bool
}

// EncodeYAML serializes a [Config] to YAML into the provided writer.
//
// Runtime-only fields (Outputs) are excluded from the output.
func (c *Config) EncodeYAML(w io.Writer) error {
	var raw map[string]any

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Squash: true,
		Deep:   true,
		Result: &raw,
	})
	if err != nil {
		return fmt.Errorf("creating mapstructure decoder: %w", err)
	}

	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("decoding config to map: %w", err)
	}

	return yaml.NewEncoder(w).Encode(raw)
}

// Load a configuration file from the local file system, overlaying the
// embedded defaults.
func Load(file string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, fmt.Errorf("loading default config: %w", err)
	}

	fsys := os.DirFS(filepath.Dir(file))
	pth := filepath.Join(".", filepath.Base(file))

	return load(fsys, pth, cfg)
}

// LoadDefaults loads the default configuration from the embedded default_config.yaml.
func LoadDefaults() (*Config, error) {
	return loadDefaults()
}

func loadDefaults() (*Config, error) {
	return load(efs, "default_config.yaml", &Config{})
}

func load(fsys fs.FS, file string, cfg *Config) (*Config, error) {
	content, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, err
	}

	var raw any
	err = yaml.Unmarshal(content, &raw)
	if err != nil {
		return nil, err
	}

	err = mapstructure.Decode(raw, cfg)
	if err != nil {
		return nil, err
	}

	if err = cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Refresh < minRefreshSeconds {
		return fmt.Errorf("invalid refresh: must be at least %ds, got %d", minRefreshSeconds, c.Refresh)
	}

	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("invalid canvas: dimensions must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}

	if c.Labels.Axis < 2 {
		return fmt.Errorf("invalid labels: at least 2 axis labels are needed, got %d", c.Labels.Axis)
	}

	if c.Labels.Legend <= 0 || c.Labels.List <= 0 {
		return fmt.Errorf("invalid labels: legend and list limits must be positive, got %d and %d", c.Labels.Legend, c.Labels.List)
	}

	if c.Labels.Runes <= 1 {
		return fmt.Errorf("invalid labels: the truncation budget must exceed 1 rune, got %d", c.Labels.Runes)
	}

	if c.Screenshot.Width <= 0 || c.Screenshot.Height <= 0 {
		return fmt.Errorf("invalid screenshot: dimensions must be positive, got %dx%d", c.Screenshot.Width, c.Screenshot.Height)
	}

	return nil
}
