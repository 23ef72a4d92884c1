package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"time"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the HEM_ prefix.  Durations accept Go
// syntax ("250ms", "2s").

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty,
// well-formed env vars override the existing value.  This should be
// called BEFORE CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("HEM_HOST"); v != "" {
		cfg.Host = v
	}
	if v := envInt("HEM_PORT"); v > 0 {
		cfg.Port = v
	}
	if v := os.Getenv("HEM_SLUG"); v != "" {
		cfg.SlugPath = v
	}
	if v := os.Getenv("HEM_PUBLIC"); v != "" {
		cfg.PublicDir = v
	}
	if v := os.Getenv("HEM_LESSC"); v != "" {
		cfg.Lessc = v
	}
	if v, ok := envDuration("HEM_DEBOUNCE"); ok {
		cfg.Debounce = v
	}
	if v, ok := envDuration("HEM_SHUTDOWN_GRACE"); ok {
		cfg.ShutdownGrace = v
	}
	if v, ok := envIntSet("HEM_VERBOSE"); ok {
		cfg.Verbose = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	n, _ := envIntSet(key)
	return n
}

func envIntSet(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envDuration(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}
