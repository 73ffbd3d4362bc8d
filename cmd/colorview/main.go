package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fwojciec/colorhl"
	"github.com/fwojciec/colorhl/bubbletea"
	"github.com/fwojciec/colorhl/chroma"
	"github.com/fwojciec/colorhl/clipboard"
	"github.com/fwojciec/colorhl/debounce"
	"github.com/fwojciec/colorhl/fs"
	"github.com/fwojciec/colorhl/lipgloss"
	"github.com/fwojciec/colorhl/search"
	"github.com/fwojciec/colorhl/yaml"
	"github.com/spf13/pflag"
)

// ErrNoInput is returned when neither a file nor piped input is given.
var ErrNoInput = errors.New("no input: pipe a file or provide a path")

// App encapsulates the application logic for testing.
type App struct {
	Stdin    io.Reader // Read the document from stdin (if Path is empty)
	Path     string    // Read the document from a file (takes precedence over Stdin)
	Settings colorhl.Settings
	Filter   *chroma.Filter
	// NewViewer builds the viewer for the settings the document gets.
	NewViewer func(colorhl.Settings) colorhl.Viewer
}

// Run reads the document and displays it.
func (a *App) Run(ctx context.Context) error {
	doc, err := a.document()
	if err != nil {
		return err
	}
	return a.NewViewer(a.settingsFor(doc.Path)).View(ctx, doc)
}

func (a *App) document() (colorhl.Document, error) {
	if a.Path != "" {
		data, err := os.ReadFile(a.Path)
		if err != nil {
			return colorhl.Document{}, err
		}
		return colorhl.Document{Path: a.Path, Text: string(data)}, nil
	}
	if a.Stdin == nil {
		return colorhl.Document{}, ErrNoInput
	}
	data, err := io.ReadAll(a.Stdin)
	if err != nil {
		return colorhl.Document{}, fmt.Errorf("reading stdin: %w", err)
	}
	return colorhl.Document{Text: string(data)}, nil
}

// settingsFor disables every trigger for files outside the language
// allowlist, so they display as plain text.
func (a *App) settingsFor(path string) colorhl.Settings {
	s := a.Settings
	if a.Filter != nil && !a.Filter.Allowed(path) {
		s.Content.Enabled = false
		s.Selection.Enabled = false
		s.Hover.Enabled = false
	}
	return s
}

// Config is what the viewer starts with.
type Config struct {
	Settings colorhl.Settings
	Searcher *search.Searcher
	Notice   string // Set when the configuration was rejected
}

// LoadConfig reads settings and compiles their grammar. A rejected
// configuration is logged and replaced by the defaults with every trigger
// disabled, so the document still displays. Other errors are returned.
func LoadConfig(path string, explicit bool, logger *slog.Logger) (Config, error) {
	settings, err := loadSettings(path, explicit)
	if err == nil {
		var searcher *search.Searcher
		if searcher, err = search.Compile(settings.Grammar); err == nil {
			return Config{Settings: settings, Searcher: searcher}, nil
		}
	}

	var cfgErr *colorhl.ConfigError
	if !errors.As(err, &cfgErr) {
		return Config{}, err
	}
	logger.Warn("highlighting disabled", "setting", cfgErr.Path, "error", err)

	settings = yaml.Defaults()
	settings.Content.Enabled = false
	settings.Selection.Enabled = false
	settings.Hover.Enabled = false
	searcher, err := search.Compile(settings.Grammar)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Settings: settings,
		Searcher: searcher,
		Notice:   "highlighting disabled: " + cfgErr.Error(),
	}, nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("colorview", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", fs.DefaultConfigPath(), "Settings file (YAML)")
	themeName := flags.StringP("theme", "t", "dark", "Color theme: dark or light")
	logPath := flags.String("log", "", "Write debug logs to this file")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: colorview [flags] [file]\n       cat file | colorview [flags]")
		flags.PrintDefaults()
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	cfg, err := LoadConfig(*configPath, flags.Changed("config"), logger)
	if err != nil {
		return err
	}
	settings := cfg.Settings

	theme := lipgloss.ThemeByName(*themeName)
	detector := chroma.NewDetector()
	tokenizer, err := chroma.NewTokenizer(chroma.StyleFromPalette(theme.Palette()))
	if err != nil {
		return err
	}

	scheduler := debounce.New(settings.Debounce, debounce.WithLogger(logger))
	defer scheduler.Close()

	opts := []bubbletea.ModelOption{
		bubbletea.WithTheme(theme),
		bubbletea.WithLanguageDetector(detector),
		bubbletea.WithTokenizer(tokenizer),
		bubbletea.WithScheduler(scheduler),
		bubbletea.WithLogger(logger),
	}
	if cfg.Notice != "" {
		opts = append(opts, bubbletea.WithStatus(cfg.Notice))
	}
	if clip, err := clipboard.Detect(); err == nil {
		opts = append(opts, bubbletea.WithClipboard(clip))
	} else {
		logger.Debug("clipboard disabled", "error", err)
	}

	app := &App{
		Settings: settings,
		Filter:   chroma.NewFilter(detector, settings.Languages),
		NewViewer: func(s colorhl.Settings) colorhl.Viewer {
			return bubbletea.NewViewer(cfg.Searcher, append(opts, bubbletea.WithSettings(s))...)
		},
	}

	switch args := flags.Args(); {
	case len(args) > 0:
		app.Path = args[0]
	default:
		// Only read stdin when it is a pipe
		stat, err := os.Stdin.Stat()
		if err != nil {
			return fmt.Errorf("error checking stdin: %w", err)
		}
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			return ErrNoInput
		}
		app.Stdin = os.Stdin
	}

	return app.Run(ctx)
}

// loadSettings reads an explicitly requested file strictly, and the
// default location only if it exists.
func loadSettings(path string, explicit bool) (colorhl.Settings, error) {
	if explicit {
		return yaml.LoadFile(path)
	}
	return yaml.LoadOptional(path)
}
