package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultHost is the dev server bind address.
	DefaultHost = "127.0.0.1"

	// DefaultPort is the dev server port.
	DefaultPort = 9294

	// DefaultLessc is the LESS compiler looked up on PATH.
	DefaultLessc = "lessc"

	// DefaultDebounce is how long the watcher waits for a burst of
	// file events to settle before rebuilding.
	DefaultDebounce = 100 * time.Millisecond

	// DefaultShutdownGrace is how long the dev server waits for
	// in-flight requests on shutdown.
	DefaultShutdownGrace = 5 * time.Second

	// DefaultVerbosity prints [INF] and above.
	DefaultVerbosity = 1
)

// ManifestNames are the slug manifest file names searched, in order,
// when no --slug is given.
var ManifestNames = []string{"slug.json", "slug.yml", "slug.yaml"} //nolint:gochecknoglobals
