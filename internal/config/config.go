// Package config loads the dashboard settings from viper.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"price-dashboard/internal/domain"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the resolved settings for one run.
type Config struct {
	DataPath        string
	Sheet           string
	Regions         []string
	Commodity       string
	TrendMode       domain.TrendMode
	MaxTrendRegions int
	ShowValues      bool
	OutputDir       string
	LogLevel        slog.Level
	LogFormat       string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data.path", "data.csv")
	v.SetDefault("data.sheet", "")
	v.SetDefault("filter.regions", []string{})
	v.SetDefault("commodity", "")
	v.SetDefault("trend.mode", string(domain.TrendAggregate))
	v.SetDefault("trend.max_regions", 5)
	v.SetDefault("chart.show_values", true)
	v.SetDefault("output.dir", "out")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load reads and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DataPath:        ExpandPath(v.GetString("data.path")),
		Sheet:           v.GetString("data.sheet"),
		Regions:         regionList(v),
		Commodity:       strings.TrimSpace(v.GetString("commodity")),
		TrendMode:       domain.TrendMode(v.GetString("trend.mode")),
		MaxTrendRegions: v.GetInt("trend.max_regions"),
		ShowValues:      v.GetBool("chart.show_values"),
		OutputDir:       ExpandPath(v.GetString("output.dir")),
		LogFormat:       v.GetString("logging.format"),
	}

	if cfg.DataPath == "" {
		return nil, fmt.Errorf("%w: data.path is required", ErrInvalidConfig)
	}
	switch cfg.TrendMode {
	case domain.TrendAggregate, domain.TrendPerRegion:
	default:
		return nil, fmt.Errorf("%w: trend.mode must be %q or %q, got %q",
			ErrInvalidConfig, domain.TrendAggregate, domain.TrendPerRegion, cfg.TrendMode)
	}
	if cfg.MaxTrendRegions <= 0 {
		return nil, fmt.Errorf("%w: trend.max_regions must be positive, got %d", ErrInvalidConfig, cfg.MaxTrendRegions)
	}

	level, err := ParseLevel(v.GetString("logging.level"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	switch cfg.LogFormat {
	case "console", "json":
	default:
		return nil, fmt.Errorf("%w: invalid log format: %s", ErrInvalidConfig, cfg.LogFormat)
	}

	return cfg, nil
}

// ParseLevel maps a level name onto slog.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: invalid log level: %s", ErrInvalidConfig, level)
	}
}

// ExpandPath expands a leading ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~/") || path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return os.ExpandEnv(path)
}

// regionList accepts a YAML list or a comma-separated string. Region names
// contain spaces, so a plain string must not be split on whitespace.
func regionList(v *viper.Viper) []string {
	if s, ok := v.Get("filter.regions").(string); ok {
		return cleanList([]string{s})
	}
	return cleanList(v.GetStringSlice("filter.regions"))
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
