package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/contentmodel/internal/model"
)

type Config struct {
	Port string `yaml:"port"`

	// Auth
	APIKey string `yaml:"api_key"`

	// Upload limits
	MaxUploadBytes      int64 `yaml:"max_upload_bytes"`
	MaxConcurrentImport int   `yaml:"max_concurrent_import"`

	// Sessions
	SessionTTL  time.Duration `yaml:"session_ttl"`
	MaxSessions int           `yaml:"max_sessions"`

	// PDF
	PDFFallbackPdftotext bool `yaml:"pdf_fallback_pdftotext"`

	// Default segment format of imported documents
	DefaultFontFamily string `yaml:"default_font_family"`
	DefaultFontSize   string `yaml:"default_font_size"`
	DefaultTextColor  string `yaml:"default_text_color"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Port:                 "8090",
		MaxUploadBytes:       52428800, // 50MB
		MaxConcurrentImport:  4,
		SessionTTL:           1 * time.Hour,
		MaxSessions:          1000,
		PDFFallbackPdftotext: true,
	}
}

// Load builds the configuration from defaults, the YAML file named by
// CONFIG_FILE when set, and environment variables, in increasing precedence.
func Load() (Config, error) {
	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}

	cfg.Port = envOr("PORT", cfg.Port)
	cfg.APIKey = envOr("CONTENTMODEL_API_KEY", cfg.APIKey)
	cfg.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.MaxConcurrentImport = envInt("MAX_CONCURRENT_IMPORT", cfg.MaxConcurrentImport)
	cfg.SessionTTL = envDuration("SESSION_TTL", cfg.SessionTTL)
	cfg.MaxSessions = envInt("MAX_SESSIONS", cfg.MaxSessions)
	cfg.PDFFallbackPdftotext = envBool("PDF_FALLBACK_PDFTOTEXT", cfg.PDFFallbackPdftotext)
	cfg.DefaultFontFamily = envOr("DEFAULT_FONT_FAMILY", cfg.DefaultFontFamily)
	cfg.DefaultFontSize = envOr("DEFAULT_FONT_SIZE", cfg.DefaultFontSize)
	cfg.DefaultTextColor = envOr("DEFAULT_TEXT_COLOR", cfg.DefaultTextColor)

	defaults := Defaults()
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if cfg.MaxConcurrentImport <= 0 {
		cfg.MaxConcurrentImport = defaults.MaxConcurrentImport
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaults.SessionTTL
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = defaults.MaxSessions
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("CONTENTMODEL_API_KEY is required")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	return nil
}

// DefaultSegmentFormat is the segment format new documents start with.
func (c Config) DefaultSegmentFormat() model.Format {
	f := model.Format{}
	if c.DefaultFontFamily != "" {
		f[model.KeyFontFamily] = c.DefaultFontFamily
	}
	if c.DefaultFontSize != "" {
		f[model.KeyFontSize] = c.DefaultFontSize
	}
	if c.DefaultTextColor != "" {
		f[model.KeyTextColor] = c.DefaultTextColor
	}
	return f
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
