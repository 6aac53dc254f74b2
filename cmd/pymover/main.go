package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"pymover/internal/config"
)

var (
	configPath = flag.String("config", "./pymover.toml", "Path to config file")
	repoRoot   = flag.String("repo-root", "", "Repository root (defaults to current working directory)")
	exclude    = flag.String("exclude", "", "Comma-separated paths excluded from a rewrite-imports pass")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func usage() {
	fmt.Fprintf(os.Stderr, `pymover v%s - move Python files or folders and update import statements

Usage:
  pymover [flags] move-file SRC DST
  pymover [flags] move-folder SRC DST
  pymover [flags] rewrite-imports OLD_MODULE NEW_MODULE
  pymover [flags] journal

Flags:
`, VERSION)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("pymover v%s\n", VERSION)
		os.Exit(0)
	}

	// Setup logging; summaries go to stdout, logs to stderr.
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	app, err := NewApp(cfg, *repoRoot)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}

	switch args[0] {
	case "move-file":
		err = requireArgs(args, 3, "move-file SRC DST", func() error {
			return app.MoveFile(args[1], args[2])
		})
	case "move-folder":
		err = requireArgs(args, 3, "move-folder SRC DST", func() error {
			return app.MoveFolder(args[1], args[2])
		})
	case "rewrite-imports":
		err = requireArgs(args, 3, "rewrite-imports OLD_MODULE NEW_MODULE", func() error {
			return app.RewriteImports(args[1], args[2], splitExcludes(*exclude))
		})
	case "journal":
		err = app.ShowJournal()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func requireArgs(args []string, n int, form string, run func() error) error {
	if len(args) != n {
		return fmt.Errorf("usage: pymover %s", form)
	}
	return run()
}
