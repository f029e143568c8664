// Package webslider2pdf converts packaged slide-deck archives to PDF
// using headless Chrome.
//
// A .webslider archive is a tar (optionally gzipped) holding an optional
// manifest.json and a slides/ directory of self-contained HTML slides.
// The converter stages the archive in a temporary directory, serves it
// over a loopback HTTP endpoint, screenshots each slide in a real
// browser at the manifest's canvas size, and embeds the captures as
// full-bleed PDF pages, one per slide, in slide order.
//
// # Quick Start
//
//	conv := webslider2pdf.NewConverter()
//	result, err := conv.Convert(ctx, webslider2pdf.Input{
//	    ArchivePath: "deck.webslider",
//	    OutputPath:  "deck.pdf",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Pages, "pages")
//
// # Pipeline
//
// The conversion is strictly sequential:
//
//  1. Archive extraction into an ephemeral working directory
//  2. Manifest resolution (canvas size, default 1280x720)
//  3. Slide enumeration (numeric folders, or index.html fallback)
//  4. Per-slide browser capture over a local HTTP server (go-rod)
//  5. PDF composition at 96 DPI (pixels x 72/96 points per page)
//
// Slides whose URL cannot be resolved, or whose navigation times out,
// are skipped with a warning; the run fails only when nothing renders.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv := webslider2pdf.NewConverter(
//	    webslider2pdf.WithBrowserBin("/usr/bin/chromium"),
//	    webslider2pdf.WithSettleDelay(500*time.Millisecond),
//	    webslider2pdf.WithJPEGQuality(80),
//	)
//
// # Browser Requirements
//
// Rendering requires an installed Chromium-based browser. Discovery
// probes well-known install locations per platform; set a browser
// binary explicitly (WithBrowserBin, or WEBSLIDER_BROWSER_BIN in the
// CLI) to bypass discovery.
package webslider2pdf
