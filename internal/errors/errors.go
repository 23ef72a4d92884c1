// Package errors provides domain-specific error types for hem.
//
// These types carry structured context (source file, compiler, tool
// output) that helps callers decide how to report a failure and gives
// better diagnostics than plain string wrapping.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrUnknownMode = errors.New("unknown mode")
	ErrNoCompiler  = errors.New("no compiler registered")
	ErrNoManifest  = errors.New("no slug manifest found")
	ErrNoEntry     = errors.New("stylesheet entry not found")

	ErrInvalidManifest = errors.New("invalid slug manifest")
)

// ── Structured error types ───────────────────────────────────────────

// CompileError represents a failure while compiling a single source file.
type CompileError struct {
	Compiler string // registry slot: "less", "css", "js"
	Path     string // source file
	Output   string // diagnostic output of the external tool, if any
	Err      error  // underlying error
}

func (e *CompileError) Error() string {
	s := fmt.Sprintf("compile %s (%s): %v", e.Path, e.Compiler, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		s += "\n" + out
	}
	return s
}

func (e *CompileError) Unwrap() error { return e.Err }

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ── Constructors ─────────────────────────────────────────────────────

// WrapCompile creates a CompileError.
func WrapCompile(compiler, path string, err error) *CompileError {
	return &CompileError{Compiler: compiler, Path: path, Err: err}
}

// UnknownMode wraps ErrUnknownMode with the offending mode and the
// modes that would have been accepted.
func UnknownMode(mode string, known []string) error {
	if mode == "" {
		return fmt.Errorf("%w: none given (want one of %s)", ErrUnknownMode, strings.Join(known, ", "))
	}
	return fmt.Errorf("%w %q (want one of %s)", ErrUnknownMode, mode, strings.Join(known, ", "))
}

// ── Classification helpers ───────────────────────────────────────────

// IsCompile reports whether err is, or wraps, a CompileError.
func IsCompile(err error) bool {
	var ce *CompileError
	return errors.As(err, &ce)
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use hem/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }

// Join is [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }
