package webslider2pdf

import (
	"log/slog"
	"time"
)

// Defaults applied when no option overrides them.
const (
	DefaultSettleDelay = 250 * time.Millisecond
	DefaultJPEGQuality = 90
	DefaultNavTimeout  = 30 * time.Second
)

// CanvasSize is the slide canvas in pixels, used both as the browser
// viewport and the captured image dimensions.
type CanvasSize struct {
	Width  int
	Height int
}

// Input names the archive to convert and where the PDF goes.
type Input struct {
	ArchivePath string // .webslider archive (required)
	OutputPath  string // destination PDF (required)
}

// Result reports what a conversion produced.
type Result struct {
	Pages              int        // pages in the output PDF
	Canvas             CanvasSize // resolved canvas size
	CanvasFromManifest bool       // false when the 1280x720 default applied
	Skipped            []string   // slide ids skipped as unreachable
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	browserBin  string
	settleDelay time.Duration
	jpegQuality int
	navTimeout  time.Duration
}

// WithBrowserBin sets an explicit browser executable, bypassing
// auto-discovery.
func WithBrowserBin(path string) Option {
	return func(c *Converter) {
		c.cfg.browserBin = path
	}
}

// WithSettleDelay sets the pause between page load and capture.
// Panics if d < 0 (programmer error, similar to time.NewTicker).
func WithSettleDelay(d time.Duration) Option {
	if d < 0 {
		panic("webslider2pdf: WithSettleDelay duration must not be negative")
	}
	return func(c *Converter) {
		c.cfg.settleDelay = d
	}
}

// WithJPEGQuality sets the screenshot encoder quality. The value is
// handed to the browser's encoder as-is, without clamping.
func WithJPEGQuality(q int) Option {
	return func(c *Converter) {
		c.cfg.jpegQuality = q
	}
}

// WithNavigationTimeout bounds each slide's navigation and load wait.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithNavigationTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("webslider2pdf: WithNavigationTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.navTimeout = d
	}
}

// WithLogger replaces the default stderr logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}
