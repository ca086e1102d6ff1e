package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgallion1/contentmodel/internal/model"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "CONTENTMODEL_API_KEY", "MAX_UPLOAD_BYTES",
		"MAX_CONCURRENT_IMPORT", "SESSION_TTL", "MAX_SESSIONS",
		"PDF_FALLBACK_PDFTOTEXT", "DEFAULT_FONT_FAMILY", "DEFAULT_FONT_SIZE",
		"DEFAULT_TEXT_COLOR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8090" {
		t.Errorf("expected port %q, got %q", "8090", cfg.Port)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("expected 1h session ttl, got %v", cfg.SessionTTL)
	}
	if !cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback enabled by default")
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error without api key")
	}
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("CONTENTMODEL_API_KEY", "secret")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("MAX_SESSIONS", "-3")
	t.Setenv("PDF_FALLBACK_PDFTOTEXT", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected port %q, got %q", "9000", cfg.Port)
	}
	if cfg.SessionTTL != 15*time.Minute {
		t.Errorf("expected 15m, got %v", cfg.SessionTTL)
	}
	if cfg.MaxSessions != 1000 {
		t.Errorf("expected invalid max sessions to fall back to 1000, got %d", cfg.MaxSessions)
	}
	if cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback disabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("port: \"7000\"\napi_key: from-file\nsession_ttl: 30m\ndefault_font_family: Calibri\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "7001" {
		t.Errorf("expected env to win, got %q", cfg.Port)
	}
	if cfg.APIKey != "from-file" {
		t.Errorf("expected api key from file, got %q", cfg.APIKey)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("expected 30m, got %v", cfg.SessionTTL)
	}
	if got := cfg.DefaultSegmentFormat()[model.KeyFontFamily]; got != "Calibri" {
		t.Errorf("expected Calibri, got %q", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
