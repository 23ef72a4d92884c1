package compiler

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	herrors "hem/internal/errors"
)

// Registry maps extension slots to compilers.  It is safe for
// concurrent use; the dev server reads it from request goroutines.
type Registry struct {
	mu    sync.RWMutex
	slots map[string]Compiler
}

// NewRegistry returns a registry preloaded with the pass-through
// "css" and "js" compilers.
func NewRegistry() *Registry {
	r := &Registry{slots: make(map[string]Compiler)}
	r.Register("css", Static{Slot: "css", Out: KindCSS})
	r.Register("js", Static{Slot: "js", Out: KindJS})
	return r
}

// Register installs c under name, replacing any previous compiler in
// that slot.  A leading dot is ignored so ".less" and "less" are the
// same slot.
func (r *Registry) Register(name string, c Compiler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[normalize(name)] = c
}

// Lookup returns the compiler registered under name.
func (r *Registry) Lookup(name string) (Compiler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.slots[normalize(name)]
	return c, ok
}

// Names returns the registered slot names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.slots))
	for n := range r.slots {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Handles reports whether some compiler of kind k is registered for
// path's extension.
func (r *Registry) Handles(path string, k Kind) bool {
	c, ok := r.Lookup(filepath.Ext(path))
	return ok && c.Kind() == k
}

// CompileFile compiles path with the compiler registered for its
// extension.
func (r *Registry) CompileFile(ctx context.Context, path string) ([]byte, error) {
	ext := filepath.Ext(path)
	c, ok := r.Lookup(ext)
	if !ok {
		return nil, fmt.Errorf("%w for %q (%s)", herrors.ErrNoCompiler, ext, path)
	}
	return c.Compile(ctx, path)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, "."))
}
