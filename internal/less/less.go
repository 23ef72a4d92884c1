// Package less is hem's LESS-to-CSS plugin.  Compilation is delegated
// to the external lessc binary; the plugin owns only the options that
// shape its invocation.
package less

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"sync"

	"hem/internal/compiler"
	herrors "hem/internal/errors"
)

// DefaultBinary is the lessc executable looked up on PATH.
const DefaultBinary = "lessc"

// Options tune the generated CSS.
type Options struct {
	Compress bool // minify the output
}

// Plugin holds the active Options and hands out a compiler bound to
// them.  It is the explicit replacement for a process-wide options
// object: each Plugin is independent.
type Plugin struct {
	mu     sync.RWMutex
	opts   Options
	binary string
}

// New returns a Plugin that runs binary (DefaultBinary when empty).
func New(binary string) *Plugin {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Plugin{binary: binary}
}

// SetOptions replaces the active options.  A nil opts resets to the
// zero Options, which is what an unrecognised mode ends up passing.
func (p *Plugin) SetOptions(opts *Options) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if opts == nil {
		p.opts = Options{}
		return
	}
	p.opts = *opts
}

// Options returns a copy of the active options.
func (p *Plugin) Options() Options {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.opts
}

// Compiler returns the compiler to register under the "less" slot.
// It reads the plugin's options at compile time, so options set after
// registration still apply.
func (p *Plugin) Compiler() compiler.Compiler {
	return &lessCompiler{plugin: p}
}

type lessCompiler struct {
	plugin *Plugin
}

func (c *lessCompiler) Kind() compiler.Kind { return compiler.KindCSS }

// Compile runs lessc on path and returns the CSS it writes to stdout.
// Imports resolve relative to the file's directory.
func (c *lessCompiler) Compile(ctx context.Context, path string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.plugin.binary, c.args(path)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		ce := herrors.WrapCompile("less", path, err)
		ce.Output = stderr.String()
		return nil, ce
	}
	return stdout.Bytes(), nil
}

func (c *lessCompiler) args(path string) []string {
	args := []string{"--no-color", "--include-path=" + filepath.Dir(path)}
	if c.plugin.Options().Compress {
		args = append(args, "-x")
	}
	return append(args, path)
}
