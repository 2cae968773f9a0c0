package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 10*time.Second, cfg.ScanInterval)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("SCAN_INTERVAL", "5s")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, 5*time.Second, cfg.ScanInterval)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
}

func TestLoadYAMLFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "addr: \":7070\"\nscan_interval: 30s\ncors_origin: \"https://app.example.com\"\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("ADDR", ":7071") // env wins over file

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7071", cfg.Addr)
	assert.Equal(t, 30*time.Second, cfg.ScanInterval)
	assert.Equal(t, "https://app.example.com", cfg.CORSOrigin)
}

func TestLoadMissingConfigFileIsIgnored(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
}

func TestNormalizeFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.Normalize()

	assert.Equal(t, Default().Addr, cfg.Addr)
	assert.Equal(t, Default().ScanInterval, cfg.ScanInterval)
	assert.Equal(t, Default().MaxUploadBytes, cfg.MaxUploadBytes)
}
