package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfig_FromPath(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "conf.yaml",
		"browser: /usr/bin/chromium\nsettleMs: 500\njpegQuality: 75\ntimeout: 45s\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Browser != "/usr/bin/chromium" {
		t.Errorf("Browser = %q", cfg.Browser)
	}
	if cfg.SettleMs != 500 {
		t.Errorf("SettleMs = %d, want 500", cfg.SettleMs)
	}
	if cfg.JPEGQuality != 75 {
		t.Errorf("JPEGQuality = %d, want 75", cfg.JPEGQuality)
	}
	if got := cfg.NavTimeout(); got != 45*time.Second {
		t.Errorf("NavTimeout() = %v, want 45s", got)
	}
}

func TestLoadConfig_EmptyName(t *testing.T) {
	if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
		t.Errorf("LoadConfig error = %v, want ErrEmptyConfigName", err)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfig_UnknownField(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "conf.yaml", "browserBin: typo\n")
	if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
		t.Errorf("LoadConfig error = %v, want ErrConfigParse", err)
	}
}

func TestLoadConfig_InvalidTimeout(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "conf.yaml", "timeout: soon\n")
	if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("LoadConfig error = %v, want ErrInvalidValue", err)
	}
}

func TestValidate_NegativeSettle(t *testing.T) {
	cfg := &Config{SettleMs: -1}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Validate error = %v, want ErrInvalidValue", err)
	}
}

func TestNavTimeout_Unset(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.NavTimeout(); got != 0 {
		t.Errorf("NavTimeout() = %v, want 0 for unset", got)
	}
}
