// Package config handles runtime configuration for the ChronoFlow server:
// built-in defaults, an optional YAML file, and environment overrides, in
// that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level server configuration.
type Config struct {
	// Addr is the HTTP listen address (e.g. ":8080").
	Addr string

	// DBPath is the SQLite database file path. Parent directories are
	// created on startup.
	DBPath string

	// UploadDir is where uploaded event photos are stored. Files in it
	// are served under /static/uploads/.
	UploadDir string

	// StaticDir is the frontend static asset directory. Empty disables
	// static serving.
	StaticDir string

	// JWTSecret signs session tokens (HS256). Override the default in
	// any real deployment.
	JWTSecret string

	// TokenTTL is the session token lifetime.
	TokenTTL time.Duration

	// ScanInterval is the due-event scanner cadence.
	ScanInterval time.Duration

	// CORSOrigin is the allowed CORS origin ("*" allows any).
	CORSOrigin string

	// MaxUploadBytes caps the accepted photo upload size.
	MaxUploadBytes int64
}

// fileConfig mirrors Config for YAML decoding; durations are Go duration
// strings (e.g. "10s", "24h").
type fileConfig struct {
	Addr           string `yaml:"addr"`
	DBPath         string `yaml:"db_path"`
	UploadDir      string `yaml:"upload_dir"`
	StaticDir      string `yaml:"static_dir"`
	JWTSecret      string `yaml:"jwt_secret"`
	TokenTTL       string `yaml:"token_ttl"`
	ScanInterval   string `yaml:"scan_interval"`
	CORSOrigin     string `yaml:"cors_origin"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// Default returns the development defaults.
func Default() *Config {
	return &Config{
		Addr:           ":8080",
		DBPath:         "./data/chronoflow.db",
		UploadDir:      "./static/uploads",
		StaticDir:      "./static",
		JWTSecret:      "dev-secret-change-me",
		TokenTTL:       24 * time.Hour,
		ScanInterval:   10 * time.Second,
		CORSOrigin:     "*",
		MaxUploadBytes: 16 << 20,
	}
}

// Load builds a Config by applying defaults, then overlaying values from the
// YAML file named by CONFIG_PATH (if set and present) and finally from
// environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.loadEnv()
	cfg.Normalize()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	overlayString(&c.Addr, file.Addr)
	overlayString(&c.DBPath, file.DBPath)
	overlayString(&c.UploadDir, file.UploadDir)
	overlayString(&c.StaticDir, file.StaticDir)
	overlayString(&c.JWTSecret, file.JWTSecret)
	overlayString(&c.CORSOrigin, file.CORSOrigin)
	if file.MaxUploadBytes > 0 {
		c.MaxUploadBytes = file.MaxUploadBytes
	}
	if err := overlayDuration(&c.TokenTTL, file.TokenTTL); err != nil {
		return fmt.Errorf("invalid token_ttl in %s: %w", path, err)
	}
	if err := overlayDuration(&c.ScanInterval, file.ScanInterval); err != nil {
		return fmt.Errorf("invalid scan_interval in %s: %w", path, err)
	}

	return nil
}

func (c *Config) loadEnv() {
	overlayString(&c.Addr, os.Getenv("ADDR"))
	overlayString(&c.DBPath, os.Getenv("DB_PATH"))
	overlayString(&c.UploadDir, os.Getenv("UPLOAD_DIR"))
	overlayString(&c.StaticDir, os.Getenv("STATIC_DIR"))
	overlayString(&c.JWTSecret, os.Getenv("JWT_SECRET"))
	overlayString(&c.CORSOrigin, os.Getenv("CORS_ORIGIN"))
	// Malformed env durations fall back to the current value
	_ = overlayDuration(&c.TokenTTL, os.Getenv("TOKEN_TTL"))
	_ = overlayDuration(&c.ScanInterval, os.Getenv("SCAN_INTERVAL"))
}

// Normalize fills in missing/zero values so that partially-filled configs
// still behave correctly.
func (c *Config) Normalize() {
	d := Default()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.DBPath == "" {
		c.DBPath = d.DBPath
	}
	if c.UploadDir == "" {
		c.UploadDir = d.UploadDir
	}
	if c.JWTSecret == "" {
		c.JWTSecret = d.JWTSecret
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = d.TokenTTL
	}
	if c.ScanInterval <= 0 {
		c.ScanInterval = d.ScanInterval
	}
	if c.CORSOrigin == "" {
		c.CORSOrigin = d.CORSOrigin
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = d.MaxUploadBytes
	}
}

func overlayString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func overlayDuration(dst *time.Duration, value string) error {
	if value == "" {
		return nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	*dst = parsed
	return nil
}
