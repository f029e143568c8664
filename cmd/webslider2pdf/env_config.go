package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	Browser     string // WEBSLIDER_BROWSER_BIN: browser executable path
	SettleMs    int    // WEBSLIDER_SETTLE_MS: settle delay (-1 = unset)
	JPEGQuality int    // WEBSLIDER_JPEG_QUALITY: encoder quality
	Timeout     string // WEBSLIDER_TIMEOUT: navigation timeout
	ConfigPath  string // WEBSLIDER_CONFIG: config file path
}

// knownEnvVars lists valid WEBSLIDER_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"WEBSLIDER_BROWSER_BIN":  true,
	"WEBSLIDER_SETTLE_MS":    true,
	"WEBSLIDER_JPEG_QUALITY": true,
	"WEBSLIDER_TIMEOUT":      true,
	"WEBSLIDER_CONFIG":       true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable numeric values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		Browser:    os.Getenv("WEBSLIDER_BROWSER_BIN"),
		SettleMs:   -1,
		Timeout:    os.Getenv("WEBSLIDER_TIMEOUT"),
		ConfigPath: os.Getenv("WEBSLIDER_CONFIG"),
	}

	if settle := os.Getenv("WEBSLIDER_SETTLE_MS"); settle != "" {
		if ms, err := strconv.Atoi(settle); err == nil && ms >= 0 {
			cfg.SettleMs = ms
		}
	}

	if quality := os.Getenv("WEBSLIDER_JPEG_QUALITY"); quality != "" {
		if q, err := strconv.Atoi(quality); err == nil && q > 0 {
			cfg.JPEGQuality = q
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized WEBSLIDER_* variables.
// Helps catch typos like WEBSLIDER_BROWSER instead of WEBSLIDER_BROWSER_BIN.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "WEBSLIDER_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}
