package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/sadopc/linkscan/internal/config"
	"github.com/sadopc/linkscan/internal/ops"
	"github.com/sadopc/linkscan/internal/ui"
	"github.com/sadopc/linkscan/internal/util"
	"github.com/sadopc/linkscan/internal/walker"
	"golang.org/x/term"
)

var (
	version = "dev"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: user config dir)")
	exportPath := flag.String("export", "", "Export scan report to JSON file (headless mode, use '-' for stdout)")
	importPath := flag.String("import", "", "Import and view a report from JSON file")
	jsonOut := flag.Bool("json", false, "Shorthand for --export - (report JSON on stdout)")
	followSymlinks := flag.Bool("follow-symlinks", true, "Follow symbolic links into directories")
	showHidden := flag.Bool("hidden", true, "Include hidden files and directories")
	noHidden := flag.Bool("no-hidden", false, "Skip hidden files and directories")
	_ = noHidden // flag presence is checked via flag.Visit below
	noHardlinks := flag.Bool("no-hardlinks", false, "Disable hardlink group detection")
	exclude := flag.String("exclude", "", "Comma-separated glob patterns to exclude (e.g. '**/node_modules,*.bak')")
	maxDepth := flag.Int("max-depth", 0, "Maximum directory depth to descend (0 = unlimited)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	showVersion := flag.Bool("version", false, "Show version")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "linkscan - Symlink loop and hardlink detector\n\n")
		fmt.Fprintf(os.Stderr, "Usage: linkscan [options] [path]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  linkscan .                        Scan current directory\n")
		fmt.Fprintf(os.Stderr, "  linkscan --export report.json /srv\n")
		fmt.Fprintf(os.Stderr, "  linkscan --json / | jq .report.cycles\n")
		fmt.Fprintf(os.Stderr, "  linkscan --import report.json     View an exported report\n")
		fmt.Fprintf(os.Stderr, "  linkscan --exclude '**/.git' .    Skip .git directories\n")
	}

	flag.Parse()

	// Detect conflicting --hidden / --no-hidden flags
	hiddenSet, noHiddenSet := false, false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "hidden" {
			hiddenSet = true
		}
		if f.Name == "no-hidden" {
			noHiddenSet = true
		}
	})
	if hiddenSet && noHiddenSet {
		fmt.Fprintf(os.Stderr, "Error: --hidden and --no-hidden cannot be used together\n")
		os.Exit(1)
	}

	if *showVersion {
		fmt.Printf("linkscan %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		if *exportPath != "" && *exportPath != "-" {
			fmt.Fprintf(os.Stderr, "Error: --json and --export cannot be used together\n")
			os.Exit(1)
		}
		*exportPath = "-"
	}

	level := cfg.Logging.Level
	if *logLevel != "" {
		level = *logLevel
	}
	log, err := newLogger(level, *exportPath == "-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Import mode
	if *importPath != "" {
		if flag.NArg() > 0 {
			fmt.Fprintf(os.Stderr, "Error: --import cannot be used with a scan path\n")
			os.Exit(1)
		}

		if *exportPath != "" {
			// Re-export an imported report
			imp, err := ops.ImportJSON(*importPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
				os.Exit(1)
			}
			if err := ops.ExportJSON(imp.Report, *exportPath, version); err != nil {
				fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
				os.Exit(1)
			}
			if *exportPath != "-" {
				fmt.Printf("Exported to %s\n", *exportPath)
			}
			os.Exit(0)
		}

		app := ui.NewAppFromImport(*importPath, log)
		app.Version = version
		runTUI(app)
		return
	}

	// Build walk options: config file first, then flags on top
	opts := walker.Options{
		FollowSymlinks:  cfg.Scan.FollowSymlinks,
		ShowHidden:      cfg.Scan.ShowHidden,
		DetectHardlinks: cfg.Scan.DetectHardlinks,
		ExcludePatterns: cfg.Scan.Exclude,
		MaxDepth:        cfg.Scan.MaxDepth,
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "follow-symlinks":
			opts.FollowSymlinks = *followSymlinks
		case "hidden":
			opts.ShowHidden = *showHidden
		case "no-hidden":
			opts.ShowHidden = false
		case "no-hardlinks":
			opts.DetectHardlinks = !*noHardlinks
		case "max-depth":
			opts.MaxDepth = *maxDepth
		}
	})
	if *exclude != "" {
		opts.ExcludePatterns = append(opts.ExcludePatterns, splitComma(*exclude)...)
	}
	if opts.MaxDepth < 0 {
		fmt.Fprintf(os.Stderr, "Error: --max-depth must be >= 0\n")
		os.Exit(1)
	}

	scanPath := "."
	if flag.NArg() > 0 {
		if flag.NArg() > 1 {
			fmt.Fprintf(os.Stderr, "Error: too many positional arguments\n")
			os.Exit(1)
		}
		scanPath = flag.Arg(0)
	}

	absPath, err := filepath.Abs(scanPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: %s is not a directory\n", absPath)
		os.Exit(1)
	}

	// Headless mode: explicit export, or stdout is not a terminal
	if *exportPath != "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := runHeadless(absPath, opts, *exportPath, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Interactive TUI mode
	app := ui.NewApp(absPath, opts, log)
	app.Version = version
	runTUI(app)
}

func runTUI(app *ui.App) {
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := app.FatalError(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runHeadless walks the tree without the TUI, printing progress to stderr.
// With an export path the report goes to that file (or stdout for "-");
// without one a human-readable summary is printed instead.
func runHeadless(absPath string, opts walker.Options, exportPath string, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	progressCh := make(chan walker.Progress, 10)

	var progressWg sync.WaitGroup
	progressWg.Add(1)
	go func() {
		defer progressWg.Done()
		for p := range progressCh {
			fmt.Fprintf(os.Stderr, "\rScanning %s: %d dirs, %d files, %d symlinks, %d loops...",
				absPath, p.DirsScanned, p.FilesScanned, p.SymlinksSeen, p.CyclesFound)
		}
		fmt.Fprintln(os.Stderr)
	}()

	w := walker.New(log)
	report, err := w.Walk(ctx, absPath, opts, progressCh)
	close(progressCh)
	progressWg.Wait()
	if err != nil {
		return err
	}

	if exportPath != "" {
		if err := ops.ExportJSON(report, exportPath, version); err != nil {
			return fmt.Errorf("export error: %w", err)
		}
		if exportPath != "-" {
			fmt.Printf("Exported to %s\n", exportPath)
		}
		return nil
	}

	fmt.Printf("Scanned %s in %s: %d dirs, %d files, %d symlinks\n",
		report.Root, util.FormatDuration(report.Stats.Duration),
		report.Stats.DirsScanned, report.Stats.FilesScanned, report.Stats.SymlinksSeen)

	if len(report.Cycles) == 0 {
		fmt.Println("No symlink loops found.")
	} else {
		fmt.Printf("%d symlink loop(s):\n", len(report.Cycles))
		for _, c := range report.Cycles {
			fmt.Printf("  %s -> %s (depth %d)\n", c.Link, c.Ancestor, c.Depth)
		}
	}

	if opts.DetectHardlinks {
		if len(report.Groups) == 0 {
			fmt.Println("No hardlink groups found.")
		} else {
			fmt.Printf("%d hardlink group(s):\n", len(report.Groups))
			for _, g := range report.Groups {
				fmt.Printf("  %dx %s (%s)\n", len(g.Paths), g.Paths[0], util.FormatSize(g.Size))
			}
		}
	}

	return nil
}

// newLogger builds the process logger. Logs go to stderr so stdout stays
// clean for --export -; quiet drops everything below warn regardless of
// level so piped JSON is not interleaved with console noise.
func newLogger(level string, quiet bool) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	switch level {
	case "", "info":
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log level %q", level)
	}
	if quiet && lvl < zerolog.WarnLevel {
		lvl = zerolog.WarnLevel
	}

	out := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

func splitComma(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
