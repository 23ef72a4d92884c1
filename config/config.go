// Package config defines the runtime configuration for hem: where the
// slug manifest lives, where the dev server listens and which lessc
// binary compiles stylesheets.
package config

import (
	"time"

	herrors "hem/internal/errors"
)

// Config holds every tuneable for a single hem invocation.
type Config struct {
	// ── Project ──────────────────────────────────────────────────────
	SlugPath  string // manifest file; empty → search the working dir
	PublicDir string // overrides the manifest's "public" when set

	// ── Dev server ───────────────────────────────────────────────────
	Host          string
	Port          int
	ShutdownGrace time.Duration

	// ── Compilers / watch ────────────────────────────────────────────
	Lessc    string        // lessc executable
	Debounce time.Duration // quiet period before a watch rebuild

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
}

// Default returns a Config populated from defaults.go.
func Default() *Config {
	return &Config{
		Host:          DefaultHost,
		Port:          DefaultPort,
		ShutdownGrace: DefaultShutdownGrace,
		Lessc:         DefaultLessc,
		Debounce:      DefaultDebounce,
		Verbose:       DefaultVerbosity,
	}
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
// The invocation mode is deliberately not checked here; the
// orchestrator decides what it accepts.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return &herrors.ConfigError{
			Field:   "port",
			Value:   c.Port,
			Message: "out of range 1-65535",
			Hint:    "hem serves on 9294 by default; pick a free port with -p",
		}
	}
	if c.Lessc == "" {
		return &herrors.ConfigError{
			Field:   "lessc",
			Message: "must not be empty",
			Hint:    "install less (npm i -g less) or point --lessc at the binary",
		}
	}
	if c.Debounce < 0 {
		return &herrors.ConfigError{
			Field:   "debounce",
			Value:   c.Debounce,
			Message: "must not be negative",
		}
	}
	if c.ShutdownGrace < 0 {
		return &herrors.ConfigError{
			Field:   "shutdown-grace",
			Value:   c.ShutdownGrace,
			Message: "must not be negative",
		}
	}
	return nil
}
