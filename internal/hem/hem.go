// Package hem is the build orchestrator: it owns the compiler registry,
// turns a slug manifest into a CSS and a JS package, and runs one of
// three modes (build, server, watch) on top of that.
package hem

import (
	"context"
	"os"
	"sort"

	"hem/config"
	"hem/internal/compiler"
	herrors "hem/internal/errors"
	"hem/internal/metrics"
	"hem/util"
)

// Mode is one operational mode of the orchestrator.
type Mode func(h *Hem, ctx context.Context) error

// Modes maps invocation names to their implementation.
var Modes = map[string]Mode{ //nolint:gochecknoglobals
	"build":  (*Hem).build,
	"server": (*Hem).serve,
	"watch":  (*Hem).watch,
}

// Hem holds everything one invocation needs.  Nothing in it is shared
// across instances.
type Hem struct {
	Config    *config.Config
	Manifest  *Manifest
	Compilers *compiler.Registry
	Logger    *util.Logger
	Metrics   *metrics.Collector

	cache *assetCache
}

// New loads the slug manifest named by cfg (or found in the working
// directory) and returns an orchestrator with the built-in compilers.
func New(cfg *config.Config, logger *util.Logger) (*Hem, error) {
	path := cfg.SlugPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		if path, err = FindManifest(wd); err != nil {
			return nil, err
		}
	}

	m, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}
	if cfg.PublicDir != "" {
		m.Public = cfg.PublicDir
	}
	logger.Verbose("loaded manifest %s", path)

	return NewWithManifest(cfg, m, logger), nil
}

// NewWithManifest builds an orchestrator around an already-loaded
// manifest.
func NewWithManifest(cfg *config.Config, m *Manifest, logger *util.Logger) *Hem {
	return &Hem{
		Config:    cfg,
		Manifest:  m,
		Compilers: compiler.NewRegistry(),
		Logger:    logger,
		Metrics:   metrics.New(),
		cache:     newAssetCache(),
	}
}

// Register installs c in the compiler registry under name.
func (h *Hem) Register(name string, c compiler.Compiler) {
	h.Logger.Debug("registered compiler %q", name)
	h.Compilers.Register(name, c)
}

// Exec runs the named mode.
func (h *Hem) Exec(ctx context.Context, mode string) error {
	run, ok := Modes[mode]
	if !ok {
		return herrors.UnknownMode(mode, ModeNames())
	}
	h.Logger.Verbose("mode %s, compilers %v", mode, h.Compilers.Names())
	return run(h, ctx)
}

// ModeNames returns the accepted mode names, sorted.
func ModeNames() []string {
	names := make([]string, 0, len(Modes))
	for n := range Modes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
