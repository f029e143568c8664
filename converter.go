package webslider2pdf

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/alnah/go-webslider2pdf/internal/archive"
	"github.com/alnah/go-webslider2pdf/internal/browser"
	"github.com/alnah/go-webslider2pdf/internal/compose"
	"github.com/alnah/go-webslider2pdf/internal/hints"
	"github.com/alnah/go-webslider2pdf/internal/manifest"
	"github.com/alnah/go-webslider2pdf/internal/server"
	"github.com/alnah/go-webslider2pdf/internal/slides"
)

// capturesDir is where screenshots land inside the working directory.
const capturesDir = "captures"

// shutdownGrace bounds the HTTP listener shutdown during cleanup.
const shutdownGrace = 3 * time.Second

// slideRenderer abstracts the browser-driven capture loop to enable
// testing without a browser.
type slideRenderer interface {
	Start() error
	RenderAll(ctx context.Context, baseURL string, ids []string, width, height int, outDir string) ([]browser.Capture, []string, error)
	Close() error
}

// deckServer abstracts the staged-directory HTTP server.
type deckServer interface {
	URL() string
	Shutdown(ctx context.Context) error
}

// Compile-time interface implementation checks.
var (
	_ slideRenderer = (*browser.Renderer)(nil)
	_ deckServer    = (*server.Server)(nil)
)

// Converter orchestrates the archive-to-PDF pipeline. Create with
// NewConverter and call Convert once per archive; each run owns its own
// working directory, HTTP listener, and browser process.
type Converter struct {
	cfg    converterConfig
	logger *slog.Logger

	// Seams replaced by tests.
	extract     func(src, dst string) error
	resolveSize func(stagedDir string) manifest.Resolution
	enumerate   func(stagedDir string) []string
	discover    func(override, goos string) (string, []string, error)
	startServer func(root string) (deckServer, error)
	newRenderer func(cfg browser.Config) slideRenderer
	composePDF  func(pages []compose.Page, outputPath string) error
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithBrowserBin, WithSettleDelay).
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg: converterConfig{
			settleDelay: DefaultSettleDelay,
			jpegQuality: DefaultJPEGQuality,
			navTimeout:  DefaultNavTimeout,
		},
		extract:     archive.Extract,
		resolveSize: manifest.Resolve,
		enumerate:   slides.Enumerate,
		discover:    browser.Discover,
		startServer: func(root string) (deckServer, error) { return server.Start(root) },
		composePDF:  compose.Write,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	if c.newRenderer == nil {
		c.newRenderer = func(cfg browser.Config) slideRenderer { return browser.NewRenderer(cfg) }
	}

	return c
}

// Convert runs the full pipeline: stage the archive, resolve the canvas,
// enumerate slides, capture each one, and compose the PDF. The context
// is checked between stages and between slides.
//
// The browser process, the HTTP listener, and the working directory are
// released on every exit path, in that order; working-directory removal
// is best-effort and only logged on failure.
func (c *Converter) Convert(ctx context.Context, input Input) (*Result, error) {
	if input.ArchivePath == "" {
		return nil, fmt.Errorf("%w: archive path is required", ErrArchiveNotFound)
	}
	if input.OutputPath == "" {
		return nil, fmt.Errorf("%w: output path is required", ErrWriteOutput)
	}

	// Stage 1: extract the archive into a fresh working directory.
	workDir, err := os.MkdirTemp("", "webslider2pdf-*")
	if err != nil {
		return nil, fmt.Errorf("creating working directory: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			c.logger.Warn("could not remove working directory", "dir", workDir, "error", rmErr)
		}
	}()

	if err := c.extract(input.ArchivePath, workDir); err != nil {
		return nil, err
	}
	c.logger.Debug("archive staged", "archive", input.ArchivePath, "dir", workDir)

	// Stage 2: canvas size, defaulting silently on any manifest problem.
	res := c.resolveSize(workDir)
	canvas := CanvasSize{Width: res.Size.Width, Height: res.Size.Height}
	c.logger.Debug("canvas resolved", "width", canvas.Width, "height", canvas.Height, "source", res.Source)

	// Stage 3: ordered slide list.
	ids := c.enumerate(workDir)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSlides, input.ArchivePath)
	}
	c.logger.Debug("slides enumerated", "count", len(ids))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: serve the staged tree and capture each slide.
	bin, probed, err := c.discover(c.cfg.browserBin, runtime.GOOS)
	if err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForBrowserNotFound(probed))
	}
	c.logger.Debug("browser discovered", "bin", bin)

	captures, skipped, err := c.renderSlides(ctx, workDir, bin, ids, canvas)
	if err != nil {
		return nil, err
	}
	if len(captures) == 0 {
		return nil, fmt.Errorf("%w: all %d slides failed", ErrNoRenderableSlides, len(ids))
	}

	// Stage 5: one full-bleed page per capture.
	pages := make([]compose.Page, len(captures))
	for i, shot := range captures {
		pages[i] = compose.Page{ImagePath: shot.ImagePath, WidthPx: shot.Width, HeightPx: shot.Height}
	}
	if err := c.composePDF(pages, input.OutputPath); err != nil {
		return nil, err
	}
	c.logger.Debug("document written", "output", input.OutputPath, "pages", len(pages))

	return &Result{
		Pages:              len(pages),
		Canvas:             canvas,
		CanvasFromManifest: res.Source == manifest.SourceManifest,
		Skipped:            skipped,
	}, nil
}

// renderSlides owns the HTTP listener and browser for one run, tearing
// both down before returning: browser first, then the listener.
func (c *Converter) renderSlides(ctx context.Context, workDir, bin string, ids []string, canvas CanvasSize) (captures []browser.Capture, skipped []string, err error) {
	srv, err := c.startServer(workDir)
	if err != nil {
		return nil, nil, fmt.Errorf("starting slide server: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if sdErr := srv.Shutdown(shutdownCtx); sdErr != nil {
			c.logger.Warn("slide server shutdown failed", "error", sdErr)
		}
	}()

	r := c.newRenderer(browser.Config{
		Bin:         bin,
		SettleDelay: c.cfg.settleDelay,
		JPEGQuality: c.cfg.jpegQuality,
		NavTimeout:  c.cfg.navTimeout,
		Logger:      c.logger,
	})
	if err := r.Start(); err != nil {
		return nil, nil, err
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil {
			c.logger.Warn("browser close failed", "error", closeErr)
		}
	}()

	return r.RenderAll(ctx, srv.URL(), ids, canvas.Width, canvas.Height, filepath.Join(workDir, capturesDir))
}
