package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assess.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
taxonomy: data/taxonomy.yaml
vendor_dir: data/vendors
formats: [json, md, csv]
max_average_risk: 40
log:
  level: debug
  json: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "data/taxonomy.yaml", cfg.Taxonomy)
	assert.Equal(t, "data/vendors", cfg.VendorDir)
	assert.Equal(t, "out", cfg.OutDir)
	assert.Equal(t, []string{"json", "md", "csv"}, cfg.Formats)
	assert.Equal(t, 40.0, cfg.MaxAverageRisk)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.True(t, cfg.History)
	assert.Equal(t, LogConfig{Level: "debug", JSON: true}, cfg.Log)
}

func TestLoadEmptyPathAndFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "taxonmy: typo.json\n"))
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(writeConfig(t, "formats: {json: true}\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown format", func(c *Config) { c.Formats = []string{"json", "pdf"} }, "Config.Formats[1]"},
		{"risk gate above 100", func(c *Config) { c.MaxAverageRisk = 101 }, "Config.MaxAverageRisk"},
		{"negative risk gate", func(c *Config) { c.MaxAverageRisk = -1 }, "Config.MaxAverageRisk"},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, "Config.Concurrency"},
		{"missing taxonomy", func(c *Config) { c.Taxonomy = "" }, "Config.Taxonomy: required"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "Config.Log.Level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
