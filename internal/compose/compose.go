// Package compose builds the output PDF from captured slide images.
package compose

import (
	"errors"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/alnah/go-webslider2pdf/internal/fileutil"
)

// Sentinel errors for composition failures.
var (
	ErrImageRead   = errors.New("failed to read slide image")
	ErrWriteOutput = errors.New("failed to write output PDF")
)

// pointsPerPixel converts CSS pixels to PDF points at the fixed 96 DPI
// assumption: points = pixels * 72 / 96.
const pointsPerPixel = 72.0 / 96.0

// Page is one slide image destined for one PDF page.
type Page struct {
	ImagePath string
	WidthPx   int
	HeightPx  int
}

// Points returns the pixel dimension converted to PDF points.
func Points(pixels int) float64 {
	return float64(pixels) * pointsPerPixel
}

// Write builds a PDF with one full-bleed page per entry, in order, and
// writes it to outputPath, creating the containing directory if absent.
// After writing, the produced file's page count is verified against the
// input length.
func Write(pages []Page, outputPath string) error {
	if len(pages) == 0 {
		return fmt.Errorf("%w: no pages to compose", ErrWriteOutput)
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: Points(pages[0].WidthPx), Ht: Points(pages[0].HeightPx)},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	for i, p := range pages {
		img, err := os.Open(p.ImagePath) // #nosec G304 -- capture paths are produced by this pipeline
		if err != nil {
			return fmt.Errorf("%w: %v", ErrImageRead, err)
		}

		w := Points(p.WidthPx)
		h := Points(p.HeightPx)
		doc.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})

		opts := gofpdf.ImageOptions{ImageType: "JPG", ReadDpi: false}
		name := fmt.Sprintf("slide-%d", i)
		doc.RegisterImageOptionsReader(name, opts, img)
		// Full bleed: origin (0,0), image spans the whole page.
		doc.ImageOptions(name, 0, 0, w, h, false, opts, 0, "")
		_ = img.Close()

		if err := doc.Error(); err != nil {
			return fmt.Errorf("%w: %v", ErrImageRead, err)
		}
	}

	if err := fileutil.EnsureDir(outputPath); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if err := doc.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	return verify(outputPath, len(pages))
}

// verify cross-checks the written document's page count.
func verify(outputPath string, want int) error {
	got, err := api.PageCountFile(outputPath)
	if err != nil {
		return fmt.Errorf("%w: verifying output: %v", ErrWriteOutput, err)
	}
	if got != want {
		return fmt.Errorf("%w: produced %d pages, expected %d", ErrWriteOutput, got, want)
	}
	return nil
}
