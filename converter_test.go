package webslider2pdf

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/alnah/go-webslider2pdf/internal/browser"
	"github.com/alnah/go-webslider2pdf/internal/compose"
	"github.com/alnah/go-webslider2pdf/internal/manifest"
)

// fakeRenderer fabricates captures without a browser. It writes real
// JPEG files so downstream composition can run for real.
type fakeRenderer struct {
	startErr  error
	renderErr error
	skip      map[string]bool
	closed    bool
	events    *[]string
}

func (f *fakeRenderer) Start() error { return f.startErr }

func (f *fakeRenderer) RenderAll(ctx context.Context, baseURL string, ids []string, width, height int, outDir string) ([]browser.Capture, []string, error) {
	if f.renderErr != nil {
		return nil, nil, f.renderErr
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return nil, nil, err
	}

	var captures []browser.Capture
	var skipped []string
	for _, id := range ids {
		if f.skip[id] {
			skipped = append(skipped, id)
			continue
		}
		path := filepath.Join(outDir, "slide-"+id+".jpg")
		if err := writeTestJPEG(path, width, height); err != nil {
			return nil, nil, err
		}
		captures = append(captures, browser.Capture{ID: id, ImagePath: path, Width: width, Height: height})
	}
	return captures, skipped, nil
}

func (f *fakeRenderer) Close() error {
	f.closed = true
	if f.events != nil {
		*f.events = append(*f.events, "renderer closed")
	}
	return nil
}

// fakeServer records shutdown for teardown-order assertions.
type fakeServer struct {
	events *[]string
}

func (f *fakeServer) URL() string { return "http://127.0.0.1:0" }

func (f *fakeServer) Shutdown(ctx context.Context) error {
	if f.events != nil {
		*f.events = append(*f.events, "server shutdown")
	}
	return nil
}

func writeTestJPEG(path string, w, h int) error {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// writeDeck builds a .webslider archive with numbered slides and an
// optional manifest.
func writeDeck(t *testing.T, path string, slideCount int, manifestJSON string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating archive: %v", err)
	}
	defer f.Close()

	tw := tar.NewWriter(f)
	add := func(name, content string) {
		hdr := &tar.Header{Name: name, Mode: 0o644, Size: int64(len(content)), Typeflag: tar.TypeReg}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("tar header: %v", err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatalf("tar write: %v", err)
		}
	}

	if manifestJSON != "" {
		add("manifest.json", manifestJSON)
	}
	for i := 0; i < slideCount; i++ {
		add(fmt.Sprintf("slides/%d/index.html", i), fmt.Sprintf("<html><body>slide %d</body></html>", i))
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("closing tar: %v", err)
	}
}

// newTestConverter wires a Converter whose browser stages are faked but
// whose archive, manifest, enumeration, and composition stages are real.
func newTestConverter(t *testing.T, r *fakeRenderer, events *[]string, opts ...Option) *Converter {
	t.Helper()
	c := NewConverter(opts...)
	c.discover = func(override, goos string) (string, []string, error) {
		return "/fake/browser", nil, nil
	}
	c.startServer = func(root string) (deckServer, error) {
		return &fakeServer{events: events}, nil
	}
	c.newRenderer = func(cfg browser.Config) slideRenderer {
		r.events = events
		return r
	}
	return c
}

func TestConvert_OnePagePerSlide(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "deck.webslider")
	writeDeck(t, archivePath, 3, "")
	outputPath := filepath.Join(dir, "deck.pdf")

	conv := newTestConverter(t, &fakeRenderer{}, nil)
	result, err := conv.Convert(context.Background(), Input{ArchivePath: archivePath, OutputPath: outputPath})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if result.Pages != 3 {
		t.Errorf("Pages = %d, want 3", result.Pages)
	}
	if result.CanvasFromManifest {
		t.Error("CanvasFromManifest = true without a manifest")
	}
	want := CanvasSize{Width: manifest.DefaultWidth, Height: manifest.DefaultHeight}
	if result.Canvas != want {
		t.Errorf("Canvas = %+v, want %+v", result.Canvas, want)
	}

	count, err := api.PageCountFile(outputPath)
	if err != nil {
		t.Fatalf("PageCountFile: %v", err)
	}
	if count != 3 {
		t.Errorf("output page count = %d, want 3", count)
	}
}

func TestConvert_ManifestCanvas(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "deck.webslider")
	writeDeck(t, archivePath, 1, `{"slideSize":{"width":320,"height":180}}`)

	conv := newTestConverter(t, &fakeRenderer{}, nil)
	result, err := conv.Convert(context.Background(), Input{
		ArchivePath: archivePath,
		OutputPath:  filepath.Join(dir, "deck.pdf"),
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if !result.CanvasFromManifest {
		t.Error("CanvasFromManifest = false with a valid manifest")
	}
	if result.Canvas != (CanvasSize{Width: 320, Height: 180}) {
		t.Errorf("Canvas = %+v, want 320x180", result.Canvas)
	}
}

func TestConvert_EmptyPaths(t *testing.T) {
	conv := newTestConverter(t, &fakeRenderer{}, nil)

	// Each missing path reports the sentinel of its own pipeline side.
	_, err := conv.Convert(context.Background(), Input{OutputPath: "out.pdf"})
	if !errors.Is(err, ErrArchiveNotFound) {
		t.Errorf("empty archive path error = %v, want ErrArchiveNotFound", err)
	}

	_, err = conv.Convert(context.Background(), Input{ArchivePath: "deck.webslider"})
	if !errors.Is(err, ErrWriteOutput) {
		t.Errorf("empty output path error = %v, want ErrWriteOutput", err)
	}
	if errors.Is(err, ErrArchiveNotFound) {
		t.Errorf("empty output path error = %v, must not be ErrArchiveNotFound", err)
	}
}

func TestConvert_MissingArchive(t *testing.T) {
	conv := newTestConverter(t, &fakeRenderer{}, nil)
	_, err := conv.Convert(context.Background(), Input{
		ArchivePath: filepath.Join(t.TempDir(), "absent.webslider"),
		OutputPath:  filepath.Join(t.TempDir(), "out.pdf"),
	})
	if !errors.Is(err, ErrArchiveNotFound) {
		t.Errorf("Convert error = %v, want ErrArchiveNotFound", err)
	}
}

func TestConvert_NoSlides(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "deck.webslider")
	writeDeck(t, archivePath, 0, `{"slideSize":{"width":640,"height":480}}`)

	conv := newTestConverter(t, &fakeRenderer{}, nil)
	_, err := conv.Convert(context.Background(), Input{
		ArchivePath: archivePath,
		OutputPath:  filepath.Join(dir, "deck.pdf"),
	})
	if !errors.Is(err, ErrNoSlides) {
		t.Errorf("Convert error = %v, want ErrNoSlides", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "deck.pdf")); !os.IsNotExist(statErr) {
		t.Error("output file written despite fatal error")
	}
}

func TestConvert_BrowserNotFound(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "deck.webslider")
	writeDeck(t, archivePath, 1, "")

	conv := newTestConverter(t, &fakeRenderer{}, nil)
	conv.discover = func(override, goos string) (string, []string, error) {
		return "", []string{"/usr/bin/google-chrome"}, ErrBrowserNotFound
	}

	_, err := conv.Convert(context.Background(), Input{
		ArchivePath: archivePath,
		OutputPath:  filepath.Join(dir, "deck.pdf"),
	})
	if !errors.Is(err, ErrBrowserNotFound) {
		t.Errorf("Convert error = %v, want ErrBrowserNotFound", err)
	}
}

func TestConvert_AllSlidesSkipped(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "deck.webslider")
	writeDeck(t, archivePath, 2, "")

	r := &fakeRenderer{skip: map[string]bool{"0": true, "1": true}}
	conv := newTestConverter(t, r, nil)
	_, err := conv.Convert(context.Background(), Input{
		ArchivePath: archivePath,
		OutputPath:  filepath.Join(dir, "deck.pdf"),
	})
	if !errors.Is(err, ErrNoRenderableSlides) {
		t.Errorf("Convert error = %v, want ErrNoRenderableSlides", err)
	}
}

func TestConvert_SkippedSlidesReported(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "deck.webslider")
	writeDeck(t, archivePath, 3, "")

	r := &fakeRenderer{skip: map[string]bool{"1": true}}
	conv := newTestConverter(t, r, nil)
	result, err := conv.Convert(context.Background(), Input{
		ArchivePath: archivePath,
		OutputPath:  filepath.Join(dir, "deck.pdf"),
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if result.Pages != 2 {
		t.Errorf("Pages = %d, want 2 (skipped slides are omitted, not padded)", result.Pages)
	}
	if !reflect.DeepEqual(result.Skipped, []string{"1"}) {
		t.Errorf("Skipped = %v, want [1]", result.Skipped)
	}
}

func TestConvert_TeardownOrder(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "deck.webslider")
	writeDeck(t, archivePath, 1, "")

	var events []string
	r := &fakeRenderer{}
	conv := newTestConverter(t, r, &events)
	if _, err := conv.Convert(context.Background(), Input{
		ArchivePath: archivePath,
		OutputPath:  filepath.Join(dir, "deck.pdf"),
	}); err != nil {
		t.Fatalf("Convert: %v", err)
	}

	want := []string{"renderer closed", "server shutdown"}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("teardown order = %v, want %v", events, want)
	}
}

func TestConvert_TeardownOnRenderFailure(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "deck.webslider")
	writeDeck(t, archivePath, 1, "")

	var events []string
	r := &fakeRenderer{renderErr: errors.New("browser crashed")}
	conv := newTestConverter(t, r, &events)
	if _, err := conv.Convert(context.Background(), Input{
		ArchivePath: archivePath,
		OutputPath:  filepath.Join(dir, "deck.pdf"),
	}); err == nil {
		t.Fatal("Convert succeeded despite render failure")
	}

	want := []string{"renderer closed", "server shutdown"}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("teardown order = %v, want %v", events, want)
	}
}

func TestConvert_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "deck.webslider")
	writeDeck(t, archivePath, 1, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conv := newTestConverter(t, &fakeRenderer{}, nil)
	_, err := conv.Convert(ctx, Input{
		ArchivePath: archivePath,
		OutputPath:  filepath.Join(dir, "deck.pdf"),
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert error = %v, want context.Canceled", err)
	}
}

func TestConvert_ComposeFailurePropagates(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "deck.webslider")
	writeDeck(t, archivePath, 1, "")

	conv := newTestConverter(t, &fakeRenderer{}, nil)
	conv.composePDF = func(pages []compose.Page, outputPath string) error {
		return fmt.Errorf("%w: disk full", ErrWriteOutput)
	}

	_, err := conv.Convert(context.Background(), Input{
		ArchivePath: archivePath,
		OutputPath:  filepath.Join(dir, "deck.pdf"),
	})
	if !errors.Is(err, ErrWriteOutput) {
		t.Errorf("Convert error = %v, want ErrWriteOutput", err)
	}
}
