// Package browser locates a usable browser executable and drives it to
// capture one screenshot per slide.
package browser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-webslider2pdf/internal/fileutil"
)

// ErrNotFound means discovery exhausted every candidate path.
var ErrNotFound = errors.New("no browser executable found")

// candidatePaths lists well-known browser install locations per GOOS,
// in preference order. Kept as data rather than branching logic so new
// entries are a one-line change.
var candidatePaths = map[string][]string{
	"linux": {
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/microsoft-edge",
		"/usr/bin/brave-browser",
		"/usr/local/bin/chrome",
		"/snap/bin/chromium",
		"/opt/google/chrome/chrome",
		"/var/lib/flatpak/exports/bin/org.chromium.Chromium",
	},
	"darwin": {
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
		"/Applications/Brave Browser.app/Contents/MacOS/Brave Browser",
	},
	"windows": {
		`C:\Program Files\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files\Chromium\Application\chrome.exe`,
		`C:\Program Files (x86)\Microsoft\Edge\Application\msedge.exe`,
		`C:\Program Files\BraveSoftware\Brave-Browser\Application\brave.exe`,
	},
}

// windowsLocalAppDataPaths are resolved against LOCALAPPDATA at runtime.
var windowsLocalAppDataPaths = []string{
	`Google\Chrome\Application\chrome.exe`,
	`Chromium\Application\chrome.exe`,
}

// Discover resolves the browser executable to launch. An explicit
// override wins unconditionally; otherwise the first existing candidate
// for goos is used. On failure it returns ErrNotFound along with the
// list of probed paths so the caller can surface them.
func Discover(override, goos string) (path string, probed []string, err error) {
	if override != "" {
		if fileutil.FileExists(override) {
			return override, nil, nil
		}
		return "", []string{override}, fmt.Errorf("%w: override %q does not exist", ErrNotFound, override)
	}

	candidates := append([]string(nil), candidatePaths[goos]...)
	if goos == "windows" {
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			for _, rel := range windowsLocalAppDataPaths {
				candidates = append(candidates, filepath.Join(localAppData, rel))
			}
		}
	}

	for _, c := range candidates {
		if fileutil.FileExists(c) {
			return c, candidates, nil
		}
	}
	return "", candidates, ErrNotFound
}
