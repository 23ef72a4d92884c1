// Package compiler defines the contract between hem's asset pipeline and
// the per-extension compilers plugged into it, plus the registry that
// maps extension slots ("less", "css", "js") to compilers.
package compiler

import (
	"context"
	"fmt"
	"os"

	herrors "hem/internal/errors"
)

// Kind is the type of code a compiler emits.
type Kind int

const (
	KindCSS Kind = iota
	KindJS
)

func (k Kind) String() string {
	switch k {
	case KindCSS:
		return "css"
	case KindJS:
		return "js"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Compiler turns one source file into CSS or JavaScript.
type Compiler interface {
	Compile(ctx context.Context, path string) ([]byte, error)
	Kind() Kind
}

// Static passes a file through untouched.  It backs the built-in
// "css" and "js" slots.
type Static struct {
	Slot string
	Out  Kind
}

// Compile reads path and returns its contents.
func (s Static) Compile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, herrors.WrapCompile(s.Slot, path, err)
	}
	return data, nil
}

// Kind reports the code type this compiler emits.
func (s Static) Kind() Kind { return s.Out }
