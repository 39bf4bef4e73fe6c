package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-dashboard/internal/domain"
)

func newViper(values map[string]interface{}) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper(nil))

	require.NoError(t, err)
	assert.Equal(t, "data.csv", cfg.DataPath)
	assert.Empty(t, cfg.Regions)
	assert.Equal(t, domain.TrendAggregate, cfg.TrendMode)
	assert.Equal(t, 5, cfg.MaxTrendRegions)
	assert.True(t, cfg.ShowValues)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]interface{}
		check   func(t *testing.T, cfg *Config)
		wantErr bool
	}{
		{
			name: "overrides",
			values: map[string]interface{}{
				"data.path":         "harga.xlsx",
				"data.sheet":        "Harga",
				"filter.regions":    []string{"SAMBAS", " ", "LANDAK"},
				"commodity":         " BERAS ",
				"trend.mode":        "region",
				"trend.max_regions": 3,
				"chart.show_values": false,
				"logging.level":     "debug",
				"logging.format":    "json",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "harga.xlsx", cfg.DataPath)
				assert.Equal(t, "Harga", cfg.Sheet)
				assert.Equal(t, []string{"SAMBAS", "LANDAK"}, cfg.Regions)
				assert.Equal(t, "BERAS", cfg.Commodity)
				assert.Equal(t, domain.TrendPerRegion, cfg.TrendMode)
				assert.Equal(t, 3, cfg.MaxTrendRegions)
				assert.False(t, cfg.ShowValues)
				assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
			},
		},
		{
			name:   "comma separated regions",
			values: map[string]interface{}{"filter.regions": "SAMBAS, KOTA PONTIANAK"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"SAMBAS", "KOTA PONTIANAK"}, cfg.Regions)
			},
		},
		{
			name:    "empty data path",
			values:  map[string]interface{}{"data.path": ""},
			wantErr: true,
		},
		{
			name:    "unknown trend mode",
			values:  map[string]interface{}{"trend.mode": "weekly"},
			wantErr: true,
		},
		{
			name:    "non positive trend cap",
			values:  map[string]interface{}{"trend.max_regions": 0},
			wantErr: true,
		},
		{
			name:    "unknown log level",
			values:  map[string]interface{}{"logging.level": "verbose"},
			wantErr: true,
		},
		{
			name:    "unknown log format",
			values:  map[string]interface{}{"logging.format": "xml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(newViper(tt.values))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data:
  path: kalbar.csv
filter:
  regions: [SAMBAS, LANDAK]
trend:
  mode: region
`), 0o644))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "kalbar.csv", cfg.DataPath)
	assert.Equal(t, []string{"SAMBAS", "LANDAK"}, cfg.Regions)
	assert.Equal(t, domain.TrendPerRegion, cfg.TrendMode)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("PRICEDASH_TEST_DIR", "/srv/data")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, filepath.Join(home, "data.csv"), ExpandPath("~/data.csv"))
	assert.Equal(t, "/srv/data/data.csv", ExpandPath("$PRICEDASH_TEST_DIR/data.csv"))
	assert.Equal(t, "relative.csv", ExpandPath("relative.csv"))
}

func TestSetupLogging(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	SetupLogging(&buf, &Config{LogLevel: slog.LevelWarn, LogFormat: "json"})

	slog.Info("hidden")
	slog.Warn("shown", "region", "SAMBAS")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"region":"SAMBAS"`)
}
