package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: webslider2pdf [flags] <input-archive> <output-pdf>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a .webslider slide archive to a PDF document.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input-archive    Path to the .webslider archive (tar, optionally gzipped)")
	fmt.Fprintln(w, "  output-pdf       Path for the generated PDF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Capture:")
	fmt.Fprintln(w, "  -b, --browser <path>    Browser executable (default: auto-discover)")
	fmt.Fprintln(w, "      --settle <ms>       Pause after page load before capture")
	fmt.Fprintln(w, "      --quality <n>       JPEG quality (1-100)")
	fmt.Fprintln(w, "  -t, --timeout <d>       Per-slide navigation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>     Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet             Only show errors")
	fmt.Fprintln(w, "  -v, --verbose           Show per-stage detail")
	fmt.Fprintln(w, "      --version           Show version and exit")
}
