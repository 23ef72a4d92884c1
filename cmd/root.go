// Package cmd wires up the CLI flags and hands the invocation mode to
// the adapter.
package cmd

import (
	"context"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"hem/config"
	"hem/internal/adapter"
	"hem/internal/hem"
	"hem/internal/less"
	"hem/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X hem/cmd.version=2.0.0"
var version = "0.1.0" //nolint:gochecknoglobals

// Execute parses args (without the program name) and runs the mode
// named by the first positional argument.
func Execute(ctx context.Context, args []string) error {
	cfg := config.Default()
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("hem", flag.ContinueOnError)

	// ── project ──────────────────────────────────────────────────
	fs.StringVar(&cfg.SlugPath, "slug", cfg.SlugPath, "Slug manifest (default: slug.json|slug.yml in the working dir)")
	fs.StringVar(&cfg.PublicDir, "public", cfg.PublicDir, "Output directory (overrides the manifest)")

	// ── server ───────────────────────────────────────────────────
	fs.StringVar(&cfg.Host, "host", cfg.Host, "Dev server bind address")
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Dev server port")
	fs.DurationVar(&cfg.ShutdownGrace, "shutdown-grace", cfg.ShutdownGrace, "Wait for in-flight requests on shutdown")

	// ── compilers / watch ────────────────────────────────────────
	fs.StringVar(&cfg.Lessc, "lessc", cfg.Lessc, "LESS compiler executable")
	fs.DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "Quiet period before a watch rebuild")

	// ── output ───────────────────────────────────────────────────
	var verbose int
	fs.CountVarP(&verbose, "verbose", "v", "Increase verbosity (repeatable)")
	var quiet bool
	fs.BoolVarP(&quiet, "quiet", "q", false, "Only print errors")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("hem %s\n", version)
		return nil
	}
	if verbose > 0 {
		cfg.Verbose = config.DefaultVerbosity + verbose
	}
	if quiet {
		cfg.Verbose = 0
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	// ── build components ─────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbose)

	orch, err := hem.New(cfg, logger)
	if err != nil {
		return err
	}
	plugin := less.New(cfg.Lessc)

	// The mode is not checked here; an empty or unknown one is
	// passed through and rejected by the orchestrator.
	mode := adapter.ModeFromArgs(fs.Args())
	return adapter.Run(ctx, mode, adapter.DefaultTable(), plugin, orch)
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `hem – asset build orchestrator v%s

Usage:
  hem [options] server      Serve the app, compiling packages on request
  hem [options] build       Write minified packages into the public dir
  hem [options] watch       Build, then rebuild whenever a source changes

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  hem server -p 8080                          Dev server on :8080
  hem build --public dist                     Production build into dist/
  HEM_LESSC=./node_modules/.bin/lessc hem build
`)
}
