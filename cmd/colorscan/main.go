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
	"github.com/fwojciec/colorhl/chroma"
	"github.com/fwojciec/colorhl/fs"
	"github.com/fwojciec/colorhl/git"
	"github.com/fwojciec/colorhl/gitdiff"
	"github.com/fwojciec/colorhl/jsonl"
	"github.com/fwojciec/colorhl/search"
	"github.com/fwojciec/colorhl/yaml"
	"github.com/spf13/pflag"
)

// ErrNoInput is returned when there is nothing to scan.
var ErrNoInput = errors.New("no input: give files, --diff, --rev or --commits")

// Request selects what to scan. Every selected source is scanned, in the
// order of the fields.
type Request struct {
	Paths    []string
	DiffPath string // "-" reads the diff from stdin
	Repo     string
	Rev      string
	Commits  int
}

func (r Request) empty() bool {
	return len(r.Paths) == 0 && r.DiffPath == "" && r.Rev == "" && r.Commits <= 0
}

// App encapsulates the application logic for testing.
type App struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Scanner *Scanner
	Icons   *fs.IconStore       // Attaches gutter icons when set
	Saver   colorhl.RecordSaver // Used when OutPath is set
	OutPath string
	// Loader reads BaselinePath. When set, literals already recorded there
	// are left out.
	Loader       colorhl.RecordLoader
	BaselinePath string
}

// Run scans the requested sources and writes one JSON record per literal.
func (a *App) Run(ctx context.Context, req Request) error {
	if req.empty() {
		return ErrNoInput
	}

	var records []colorhl.Record
	if len(req.Paths) > 0 {
		found, err := a.Scanner.ScanFiles(ctx, req.Paths)
		if err != nil {
			return err
		}
		records = append(records, found...)
	}
	if req.DiffPath != "" {
		found, err := a.scanDiff(req.DiffPath)
		if err != nil {
			return err
		}
		records = append(records, found...)
	}
	if req.Rev != "" {
		found, err := a.Scanner.ScanCommit(ctx, req.Repo, req.Rev)
		if err != nil {
			return err
		}
		records = append(records, found...)
	}
	if req.Commits > 0 {
		found, err := a.Scanner.ScanHistory(ctx, req.Repo, req.Commits)
		if err != nil {
			return err
		}
		records = append(records, found...)
	}

	if a.BaselinePath != "" {
		baseline, err := a.Loader.Load(a.BaselinePath)
		if err != nil {
			return fmt.Errorf("reading baseline: %w", err)
		}
		records = newSince(records, baseline)
	}

	if a.Icons != nil {
		if err := a.attachIcons(ctx, records); err != nil {
			return err
		}
	}
	return a.write(records)
}

func (a *App) scanDiff(path string) ([]colorhl.Record, error) {
	if path == "-" {
		return a.Scanner.ScanDiff(a.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return a.Scanner.ScanDiff(f)
}

// attachIcons queues an icon per color, writes them, then resolves each
// record's icon.
func (a *App) attachIcons(ctx context.Context, records []colorhl.Record) error {
	for _, r := range records {
		a.Icons.Icon(r.Color)
	}
	if err := a.Icons.Flush(ctx); err != nil {
		return fmt.Errorf("writing icons: %w", err)
	}
	for i := range records {
		records[i].Icon = a.Icons.Icon(records[i].Color)
	}
	return nil
}

func (a *App) write(records []colorhl.Record) error {
	if a.OutPath != "" {
		return a.Saver.Save(a.OutPath, records...)
	}
	w := jsonl.NewWriter(a.Stdout)
	for _, r := range records {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("colorscan", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", fs.DefaultConfigPath(), "Settings file (YAML)")
	diffPath := flags.String("diff", "", "Scan the lines a unified diff adds (- for stdin)")
	repo := flags.String("repo", ".", "Repository for --rev and --commits")
	rev := flags.String("rev", "", "Scan the lines a commit adds")
	commits := flags.Int("commits", 0, "Scan the lines the latest N commits add")
	icons := flags.Bool("icons", false, "Generate gutter icons and record their paths")
	iconDir := flags.String("icon-dir", fs.DefaultIconDir(), "Directory for gutter icons")
	iconShape := flags.String("icon-shape", string(colorhl.GutterCircle), "Icon shape: circle, square or fill")
	out := flags.StringP("output", "o", "", "Append records to this file instead of stdout")
	baseline := flags.String("baseline", "", "Only report literals missing from this earlier output")
	workers := flags.IntP("jobs", "j", DefaultWorkers, "Files or commits scanned in parallel")
	dumpConfig := flags.Bool("dump-config", false, "Print the effective settings as YAML and exit")
	verbose := flags.BoolP("verbose", "v", false, "Log skipped files and icon failures to stderr")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: colorscan [flags] [file...]")
		flags.PrintDefaults()
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}

	settings, err := loadSettings(*configPath, flags.Changed("config"))
	if err != nil {
		return err
	}
	if *dumpConfig {
		return yaml.Write(os.Stdout, settings)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	searcher, err := search.Compile(settings.Grammar)
	if err != nil {
		return err
	}

	app := &App{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Scanner: &Scanner{
			Searcher: searcher,
			Filter:   chroma.NewFilter(chroma.NewDetector(), settings.Languages),
			Git:      git.NewRunner(),
			Parser:   gitdiff.NewParser(),
			Logger:   logger,
			Workers:  *workers,
		},
		Saver:        jsonl.NewSaver(),
		OutPath:      *out,
		Loader:       jsonl.NewLoader(),
		BaselinePath: *baseline,
	}
	if *icons {
		shape := colorhl.GutterStyle(*iconShape)
		if !shape.Valid() {
			return fmt.Errorf("unsupported icon shape %q", *iconShape)
		}
		app.Icons = fs.NewIconStore(*iconDir, fs.WithIconShape(shape), fs.WithIconLogger(logger))
	}

	return app.Run(ctx, Request{
		Paths:    flags.Args(),
		DiffPath: *diffPath,
		Repo:     *repo,
		Rev:      *rev,
		Commits:  *commits,
	})
}

// loadSettings reads an explicitly requested file strictly, and the
// default location only if it exists.
func loadSettings(path string, explicit bool) (colorhl.Settings, error) {
	if explicit {
		return yaml.LoadFile(path)
	}
	return yaml.LoadOptional(path)
}
