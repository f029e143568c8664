package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	webslider2pdf "github.com/alnah/go-webslider2pdf"
	"github.com/alnah/go-webslider2pdf/internal/config"
)

// errUsage marks invocation errors that should exit with ExitUsage.
var errUsage = errors.New("invalid usage")

// settings holds fully resolved conversion settings.
// Precedence: CLI flags > env vars > config file > library defaults.
type settings struct {
	browser  string        // empty = auto-discover
	settleMs int           // -1 = library default
	quality  int           // 0 = library default
	timeout  time.Duration // 0 = library default
}

// run executes the CLI with the given arguments and returns an error
// mapped to an exit code by exitCodeFor.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags, positionals, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if flags.version {
		fmt.Fprintf(stdout, "webslider2pdf %s\n", Version)
		return nil
	}

	warnUnknownEnvVars(stderr)

	if len(positionals) != 2 {
		printUsage(stderr)
		return fmt.Errorf("%w: expected <input-archive> and <output-pdf>, got %d argument(s)", errUsage, len(positionals))
	}

	s, err := resolveSettings(flags)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, flags.quiet, flags.verbose)
	conv := webslider2pdf.NewConverter(optionsFrom(s, logger)...)

	result, err := conv.Convert(ctx, webslider2pdf.Input{
		ArchivePath: positionals[0],
		OutputPath:  positionals[1],
	})
	if err != nil {
		return err
	}

	if len(result.Skipped) > 0 {
		fmt.Fprintf(stderr, "warning: %d slide(s) skipped: %s\n",
			len(result.Skipped), strings.Join(result.Skipped, ", "))
	}
	if !flags.quiet {
		fmt.Fprintf(stdout, "Created %s (%d pages, %dx%d)\n",
			positionals[1], result.Pages, result.Canvas.Width, result.Canvas.Height)
	}

	return nil
}

// resolveSettings merges the configuration layers into final settings.
func resolveSettings(flags *cliFlags) (*settings, error) {
	env := loadEnvConfig()

	cfg := config.DefaultConfig()
	configName := flags.config
	if configName == "" {
		configName = env.ConfigPath
	}
	if configName != "" {
		loaded, err := config.LoadConfig(configName)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	s := &settings{settleMs: -1}

	// Config file layer. Zero values mean unset.
	s.browser = cfg.Browser
	if cfg.SettleMs > 0 {
		s.settleMs = cfg.SettleMs
	}
	if cfg.JPEGQuality > 0 {
		s.quality = cfg.JPEGQuality
	}
	if d := cfg.NavTimeout(); d > 0 {
		s.timeout = d
	}

	// Env layer.
	if env.Browser != "" {
		s.browser = env.Browser
	}
	if env.SettleMs >= 0 {
		s.settleMs = env.SettleMs
	}
	if env.JPEGQuality > 0 {
		s.quality = env.JPEGQuality
	}
	if env.Timeout != "" {
		d, err := time.ParseDuration(env.Timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: WEBSLIDER_TIMEOUT %q", config.ErrInvalidValue, env.Timeout)
		}
		s.timeout = d
	}

	// Flag layer wins.
	if flags.browser != "" {
		s.browser = flags.browser
	}
	if flags.settleMs != settleSentinel {
		if flags.settleMs < 0 {
			return nil, fmt.Errorf("%w: --settle must not be negative", config.ErrInvalidValue)
		}
		s.settleMs = flags.settleMs
	}
	if flags.quality != 0 {
		if flags.quality < 0 {
			return nil, fmt.Errorf("%w: --quality must be positive", config.ErrInvalidValue)
		}
		s.quality = flags.quality
	}
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: --timeout %q", config.ErrInvalidValue, flags.timeout)
		}
		s.timeout = d
	}

	return s, nil
}

// optionsFrom translates resolved settings into converter options.
func optionsFrom(s *settings, logger *slog.Logger) []webslider2pdf.Option {
	opts := []webslider2pdf.Option{webslider2pdf.WithLogger(logger)}
	if s.browser != "" {
		opts = append(opts, webslider2pdf.WithBrowserBin(s.browser))
	}
	if s.settleMs >= 0 {
		opts = append(opts, webslider2pdf.WithSettleDelay(time.Duration(s.settleMs)*time.Millisecond))
	}
	if s.quality > 0 {
		opts = append(opts, webslider2pdf.WithJPEGQuality(s.quality))
	}
	if s.timeout > 0 {
		opts = append(opts, webslider2pdf.WithNavigationTimeout(s.timeout))
	}
	return opts
}

// newLogger builds the run logger: quiet shows errors only, verbose
// shows per-stage detail, the default shows warnings.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
