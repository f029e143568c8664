// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-webslider2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserNotFound returns hints for exhausted browser discovery.
// Lists the probed locations so the operator can see what was tried.
func ForBrowserNotFound(probed []string) string {
	hints := []string{
		"install Chrome, Chromium, Edge or Brave",
		"or set WEBSLIDER_BROWSER_BIN to your browser executable",
	}
	if len(probed) > 0 {
		hints = append(hints, "probed: "+strings.Join(probed, ", "))
	}
	return formatHints(hints)
}

// ForBrowserConnect returns hints for browser launch/connect errors.
// Detects CI/Docker environments where the Chrome sandbox cannot run.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if inCI || IsInContainer() {
		hints = append(hints, "the Chrome sandbox usually cannot run in Docker/CI; run as non-root or pass a browser launched with --no-sandbox")
	}
	if os.Getenv("WEBSLIDER_BROWSER_BIN") == "" {
		hints = append(hints, "set WEBSLIDER_BROWSER_BIN to pick a specific browser")
	}

	return formatHints(hints)
}

// formatHints joins hints with consistent "\n  hint: " prefixes.
// Returns empty string for no hints.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	var b strings.Builder
	for _, h := range hints {
		b.WriteString("\n  hint: ")
		b.WriteString(h)
	}
	return b.String()
}
