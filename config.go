package glyphpack

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/flavioheleno/glyphpack/canvas"
	"github.com/flavioheleno/glyphpack/codec"
)

// Config holds the editor configuration.
type Config struct {
	HistoryDepth    int           `yaml:"history_depth"`
	Spacing         int           `yaml:"spacing"`          // empty columns between placed glyphs
	Label           string        `yaml:"label"`            // offset name used in STATUS output
	StatusInterface string        `yaml:"status_interface"` // status-register array name
	LogLevel        string        `yaml:"log_level"`        // debug | info | warn | error
	Display         DisplayConfig `yaml:"display"`

	Logger *slog.Logger `yaml:"-"`
}

// DisplayConfig configures the optional ST7565 preview panel.
type DisplayConfig struct {
	SPI      string `yaml:"spi"` // SPI port name, empty for the first one
	DC       string `yaml:"dc"`  // Data/Command GPIO name
	RST      string `yaml:"rst"` // optional reset GPIO name
	Contrast int    `yaml:"contrast"`
	Rotated  bool   `yaml:"rotated"`
}

// DefaultConfig returns sane defaults.
func DefaultConfig() *Config {
	return &Config{
		HistoryDepth:    canvas.DefaultHistoryDepth,
		Spacing:         1,
		Label:           codec.DefaultLabel,
		StatusInterface: codec.DefaultInterface,
		LogLevel:        "info",
		Display: DisplayConfig{
			DC:       "GPIO25",
			Contrast: 0x1F,
		},
	}
}

// LoadConfig reads and parses a YAML config file. Returns DefaultConfig merged with the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks that values are sane.
func (c *Config) Validate() error {
	if c.HistoryDepth <= 0 {
		return fmt.Errorf("history_depth must be > 0")
	}
	if c.Spacing < 0 {
		return fmt.Errorf("spacing must be >= 0")
	}
	if !identifier.MatchString(c.StatusInterface) {
		return fmt.Errorf("status_interface %q is not an identifier", c.StatusInterface)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Display.Contrast < 0 || c.Display.Contrast > 0x3F {
		return fmt.Errorf("display.contrast must be between 0 and 63")
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unsupported log_level %q (use debug, info, warn or error)", c.LogLevel)
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.HistoryDepth <= 0 {
		c.HistoryDepth = canvas.DefaultHistoryDepth
	}
	if c.Spacing < 0 {
		c.Spacing = 1
	}
	if c.StatusInterface == "" {
		c.StatusInterface = codec.DefaultInterface
	}
}
