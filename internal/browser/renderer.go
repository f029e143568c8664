package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-webslider2pdf/internal/hints"
	"github.com/alnah/go-webslider2pdf/internal/process"
)

// Sentinel errors for renderer operations.
var (
	ErrConnect    = errors.New("failed to launch browser")
	ErrPageCreate = errors.New("failed to create browser page")
)

// probeTimeout bounds each slide-URL existence check.
const probeTimeout = 5 * time.Second

// Config holds renderer settings, resolved once by the caller.
type Config struct {
	Bin         string        // browser executable (required)
	SettleDelay time.Duration // pause after load before capture
	JPEGQuality int           // 1-100, passed to the encoder as-is
	NavTimeout  time.Duration // per-slide navigation bound
	Logger      *slog.Logger
}

// Capture is one successfully rendered slide.
type Capture struct {
	ID        string
	ImagePath string
	Width     int
	Height    int
}

// Renderer drives a single headless browser page through the slide list.
type Renderer struct {
	cfg      Config
	logger   *slog.Logger
	client   *http.Client
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	pid      int
}

// NewRenderer creates a Renderer; Start must be called before RenderAll.
func NewRenderer(cfg Config) *Renderer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		cfg:    cfg,
		logger: logger,
		client: &http.Client{
			Timeout: probeTimeout,
			// Only a direct success marks a slide document as present;
			// following a redirect could land on a page that is not the
			// slide (a canonicalization or listing endpoint).
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Start launches the browser, connects, and opens the single page used
// for every capture.
func (r *Renderer) Start() error {
	l := launcher.New().Bin(r.cfg.Bin).Headless(true)

	// The Chrome sandbox cannot run in most containers and CI runners.
	if os.Getenv("CI") == "true" || hints.IsInContainer() {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v%s", ErrConnect, err, hints.ForBrowserConnect())
	}
	r.launcher = l
	r.pid = l.PID()

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.forceStop()
		return fmt.Errorf("%w: %v%s", ErrConnect, err, hints.ForBrowserConnect())
	}
	r.browser = browser

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		r.forceStop()
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	r.page = page

	return nil
}

// Close tears the browser down on every exit path: graceful close first,
// then a force kill of the whole process group for anything wedged.
func (r *Renderer) Close() error {
	var err error
	if r.page != nil {
		_ = r.page.Close()
		r.page = nil
	}
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.forceStop()
	return err
}

// forceStop kills the launched browser process tree and removes its
// temporary profile directory.
func (r *Renderer) forceStop() {
	if r.launcher == nil {
		return
	}
	if r.pid > 0 {
		process.KillProcessGroup(r.pid)
	}
	r.launcher.Kill()
	r.launcher.Cleanup()
	r.launcher = nil
}

// RenderAll captures one JPEG per slide, in order, on the single page.
//
// Per-slide failures — no candidate URL answers, navigation errors, and
// navigation timeouts alike — skip that slide with a warning and
// continue with the rest. Only caller cancellation aborts the loop.
// Returns the captures, the skipped slide ids, and a fatal error if any.
func (r *Renderer) RenderAll(ctx context.Context, baseURL string, ids []string, width, height int, outDir string) ([]Capture, []string, error) {
	if err := r.page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, nil, fmt.Errorf("setting viewport: %w", err)
	}

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return nil, nil, fmt.Errorf("creating captures directory: %w", err)
	}

	var captures []Capture
	var skipped []string

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		slideURL, ok := r.resolveSlideURL(baseURL, id)
		if !ok {
			r.logger.Warn("slide URL unresolved, skipping", "slide", id)
			skipped = append(skipped, id)
			continue
		}

		data, err := r.capture(ctx, slideURL, width, height)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			r.logger.Warn("slide capture failed, skipping", "slide", id, "url", slideURL, "error", err)
			skipped = append(skipped, id)
			continue
		}

		imagePath := filepath.Join(outDir, "slide-"+id+".jpg")
		if err := os.WriteFile(imagePath, data, 0o640); err != nil {
			return nil, nil, fmt.Errorf("writing capture for slide %s: %w", id, err)
		}

		r.logger.Debug("slide captured", "slide", id, "url", slideURL, "bytes", len(data))
		captures = append(captures, Capture{ID: id, ImagePath: imagePath, Width: width, Height: height})
	}

	return captures, skipped, nil
}

// candidateURLPaths returns the probe order for a slide id.
func candidateURLPaths(id string) []string {
	return []string{
		"/slides/" + id + "/index.html",
		"/slides/" + id,
		"/" + id + "/index.html",
		"/" + id,
		"/slides/" + id + ".html",
	}
}

// resolveSlideURL probes the candidate paths against the local server
// and returns the first that answers with a success status.
func (r *Renderer) resolveSlideURL(baseURL, id string) (string, bool) {
	for _, p := range candidateURLPaths(id) {
		u := baseURL + p
		resp, err := r.client.Get(u)
		if err != nil {
			continue
		}
		_ = resp.Body.Close()
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return u, true
		}
	}
	return "", false
}

// capture navigates to the slide, waits for load bounded by NavTimeout,
// pauses for the settle delay, and grabs a clipped JPEG screenshot.
func (r *Renderer) capture(ctx context.Context, slideURL string, width, height int) ([]byte, error) {
	if err := r.page.Navigate(slideURL); err != nil {
		return nil, fmt.Errorf("navigating: %w", err)
	}
	if err := r.page.Timeout(r.cfg.NavTimeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("waiting for load: %w", err)
	}

	// Fixed pause for in-page animations; not an animation detector.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(r.cfg.SettleDelay):
	}

	quality := r.cfg.JPEGQuality
	data, err := r.page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: &quality,
		Clip: &proto.PageViewport{
			X:      0,
			Y:      0,
			Width:  float64(width),
			Height: float64(height),
			Scale:  1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("capturing screenshot: %w", err)
	}
	return data, nil
}
