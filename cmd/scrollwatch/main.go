// Package main is the entry point for the scrollwatch pager.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scrollwatch/internal/config"
	"github.com/dshills/scrollwatch/internal/logging"
	"github.com/dshills/scrollwatch/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the command line settings.
type options struct {
	ConfigPath string
	LogPath    string
	LogLevel   string
	ThrottleMS int
	File       string
}

// apply layers the command line overrides onto cfg and validates it.
func (o options) apply(cfg *config.Config) error {
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.ThrottleMS > 0 {
		cfg.Scroll.ThrottleMS = o.ThrottleMS
	}
	return cfg.Validate()
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if err := opts.apply(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := openLog(opts.LogPath, cfg.LogLevel())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()

	content, err := readContent(opts.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read %s: %v\n", opts.File, err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()
	screen.EnableMouse()

	app, err := term.NewApp(screen, content, cfg, term.WithLogger(logger))
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer app.Close()

	if opts.ConfigPath != "" {
		w, err := config.NewWatcher(opts.ConfigPath, func(next *config.Config, err error) {
			if err == nil {
				err = opts.apply(next)
			}
			if err != nil {
				logger.Warn("config reload ignored: %v", err)
				return
			}
			app.Post(func() { app.ApplyConfig(next) })
		}, config.WithDebounce(200*time.Millisecond), config.WithWatcherLogger(logger))
		if err != nil {
			logger.Warn("config live reload disabled: %v", err)
		} else {
			defer w.Close()
		}
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		if _, ok := <-signals; ok {
			app.Quit()
		}
	}()

	if err := app.Run(); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func openLog(path string, level logging.Level) (*logging.Logger, func(), error) {
	if path == "" {
		return logging.Discard(), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.Output = f
	return logging.New(cfg), func() { _ = f.Close() }, nil
}

func readContent(path string) (*term.Content, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return term.LoadContent(r)
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", defaultConfigPath(), "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", defaultConfigPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogPath, "log", "", "Write logs to this file")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	flag.IntVar(&opts.ThrottleMS, "throttle", 0, "Scroll coalescing window in milliseconds; overrides the config file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scrollwatch - terminal pager that reports derived scroll events\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scrollwatch [options] <file|->\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  j/k, arrows       scroll (shift for larger steps)\n")
		fmt.Fprintf(os.Stderr, "  space/b, PgDn/PgUp page down/up\n")
		fmt.Fprintf(os.Stderr, "  g/Home, G/End     top, bottom\n")
		fmt.Fprintf(os.Stderr, "  n/N               next/previous heading\n")
		fmt.Fprintf(os.Stderr, "  q/Esc             quit\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("scrollwatch %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.LogLevel != "" && !logging.ValidLevel(opts.LogLevel) {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	opts.File = flag.Arg(0)

	return opts
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "scrollwatch", "config.toml")
}
