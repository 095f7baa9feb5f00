package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHCL = `
schema_version = "1.0"
log_level      = "debug"

engine {
  nft_path = "/usr/sbin/nft"
  handles  = true
  numeric  = true
}

audit {
  enabled        = true
  db_path        = "/var/lib/nftjctl/audit.db"
  retention_days = 30
}

exporter {
  enabled = true
  listen  = ":9633"
}
`

func TestLoadHCL(t *testing.T) {
	cfg, err := LoadHCL([]byte(sampleHCL), "test.hcl")
	require.NoError(t, err)
	cfg.Normalize()

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/usr/sbin/nft", cfg.Engine.NFTPath)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
	assert.True(t, cfg.Exporter.Enabled)
	// Unset interval falls back to the default.
	assert.Equal(t, 15, cfg.Exporter.IntervalSeconds)
}

func TestLoadJSON(t *testing.T) {
	data := []byte(`{
		"log_level": "warn",
		"engine": {"terse": true},
		"exporter": {"enabled": true, "listen": ":9999", "interval_seconds": 60}
	}`)

	cfg, err := LoadJSON(data)
	require.NoError(t, err)
	cfg.Normalize()

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.Engine.Terse)
	assert.Equal(t, ":9999", cfg.Exporter.Listen)
	assert.Equal(t, 60, cfg.Exporter.IntervalSeconds)
}

func TestLoadFileByExtension(t *testing.T) {
	dir := t.TempDir()

	hclPath := filepath.Join(dir, "cfg.hcl")
	require.NoError(t, os.WriteFile(hclPath, []byte(sampleHCL), 0644))

	cfg, err := LoadFile(hclPath)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)

	jsonPath := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"log_level":"error"}`), 0644))

	cfg, err = LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`log_level = "loud"`), 0644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log_level")
}

func TestDefaultEngineOptions(t *testing.T) {
	cfg := Default()
	opts := cfg.EngineOptions()
	assert.True(t, opts.HandleOutput)
	assert.True(t, opts.NumericOutput)
	assert.False(t, opts.StatelessOutput)
}

func TestGenerateHCLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Audit.DBPath = "/tmp/audit.db"

	out := GenerateHCL(cfg)
	parsed, err := LoadHCL(out, "generated.hcl")
	require.NoError(t, err)
	parsed.Normalize()

	assert.Equal(t, cfg.LogLevel, parsed.LogLevel)
	assert.Equal(t, cfg.Audit.DBPath, parsed.Audit.DBPath)
	assert.Equal(t, cfg.Exporter.Listen, parsed.Exporter.Listen)
}
