package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Map     MapConfig     `mapstructure:"map"`
	Markers MarkersConfig `mapstructure:"markers"`
	Log     LogConfig     `mapstructure:"log"`
	Output  OutputConfig  `mapstructure:"output"`
}

// MapConfig controls the map view.
type MapConfig struct {
	// Buffer pads the destination bounding box, in destination units, before
	// the initial fit.
	Buffer float64 `mapstructure:"buffer"`
	// Graticule is the target number of grid lines per axis.
	Graticule int `mapstructure:"graticule"`
}

// MarkersConfig sets the glyphs drawn for each marker kind.
type MarkersConfig struct {
	Source string `mapstructure:"source"`
	Dest   string `mapstructure:"dest"`
	Prior  string `mapstructure:"prior"`
}

// LogConfig controls the session log file.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// OutputConfig controls where results are written.
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads configuration from gcpick.yaml (working directory or
// ~/.config/gcpick) and GCPICK_* environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("map.buffer", 0.0002)
	v.SetDefault("map.graticule", 6)
	v.SetDefault("markers.source", "+")
	v.SetDefault("markers.dest", "o")
	v.SetDefault("markers.prior", "x")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "gcpick.log")
	v.SetDefault("output.path", "camera_config.json")

	// Config file (optional)
	v.SetConfigName("gcpick")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "gcpick"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// Environment variables: GCPICK_LOG_LEVEL → log.level
	v.SetEnvPrefix("GCPICK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Map.Buffer < 0 {
		errs = append(errs, fmt.Sprintf("map.buffer must not be negative, got %g", c.Map.Buffer))
	}
	if c.Map.Graticule < 2 || c.Map.Graticule > 24 {
		errs = append(errs, fmt.Sprintf("map.graticule must be 2-24, got %d", c.Map.Graticule))
	}
	for key, glyph := range map[string]string{
		"markers.source": c.Markers.Source,
		"markers.dest":   c.Markers.Dest,
		"markers.prior":  c.Markers.Prior,
	} {
		if utf8.RuneCountInString(glyph) != 1 {
			errs = append(errs, fmt.Sprintf("%s must be a single character, got %q", key, glyph))
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be debug, info, warn, or error, got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be json or text, got %q", c.Log.Format))
	}
	if c.Log.File == "" {
		errs = append(errs, "log.file is required")
	}
	if c.Output.Path == "" {
		errs = append(errs, "output.path is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
