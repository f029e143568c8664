package webslider2pdf

import (
	"errors"

	"github.com/alnah/go-webslider2pdf/internal/archive"
	"github.com/alnah/go-webslider2pdf/internal/browser"
	"github.com/alnah/go-webslider2pdf/internal/compose"
)

// Sentinel errors for library operations. Errors originating in the
// pipeline stages are re-exported here so callers match with errors.Is
// without importing internal packages.
var (
	ErrArchiveNotFound = archive.ErrNotFound
	ErrExtraction      = archive.ErrExtraction
	ErrBrowserNotFound = browser.ErrNotFound
	ErrBrowserConnect  = browser.ErrConnect
	ErrPageCreate      = browser.ErrPageCreate
	ErrImageRead       = compose.ErrImageRead
	ErrWriteOutput     = compose.ErrWriteOutput

	ErrNoSlides           = errors.New("no slides found in archive")
	ErrNoRenderableSlides = errors.New("no slides could be rendered")
)
