package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// settleSentinel detects if --settle was explicitly set.
// Since 0 is a valid delay, we use a negative sentinel.
const settleSentinel = -1

// cliFlags holds all flags for the command.
type cliFlags struct {
	browser  string
	settleMs int
	quality  int
	timeout  string
	config   string
	quiet    bool
	verbose  bool
	version  bool
}

// parseFlags parses command-line flags and returns positional args.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("webslider2pdf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &cliFlags{}

	fs.StringVarP(&f.browser, "browser", "b", "", "browser executable path (default: auto-discover)")
	fs.IntVar(&f.settleMs, "settle", settleSentinel, "pause after page load before capture, in milliseconds")
	fs.IntVar(&f.quality, "quality", 0, "JPEG quality (1-100)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-slide navigation timeout (e.g., 30s, 2m)")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-stage detail")
	fs.BoolVar(&f.version, "version", false, "show version and exit")

	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
