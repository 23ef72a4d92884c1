// Package adapter selects compiler options from the invocation mode,
// wires the LESS plugin into the orchestrator's compiler registry and
// hands control to the orchestrator.
//
// Both mutation points are explicit: the plugin and the orchestrator
// are passed in, nothing is reached through package globals.
package adapter

import (
	"context"

	"hem/internal/compiler"
	"hem/internal/less"
)

// Slot is the registry name the style compiler is installed under.
const Slot = "less"

// Plugin is a configurable style compiler.
type Plugin interface {
	SetOptions(opts *less.Options)
	Compiler() compiler.Compiler
}

// Orchestrator owns the compiler registry and the build/serve loop.
type Orchestrator interface {
	Register(name string, c compiler.Compiler)
	Exec(ctx context.Context, mode string) error
}

// Table maps an invocation mode to the plugin options for it.
type Table map[string]*less.Options

// DefaultTable is the stock profile set: the dev server emits readable
// CSS, production builds minify.
func DefaultTable() Table {
	return Table{
		"server": {Compress: false},
		"build":  {Compress: true},
	}
}

// Lookup returns the options for mode, or nil when the mode has no
// profile.  A missing profile is not an error here.
func (t Table) Lookup(mode string) *less.Options {
	return t[mode]
}

// ModeFromArgs returns the invocation mode from the arguments that
// follow the program name (argv[1:] once flags are parsed out), so the
// mode is argv[1].  A missing mode is the empty string.
func ModeFromArgs(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// Run configures plugin for mode, registers its compiler under Slot and
// delegates to orch.Exec exactly once.  Whatever Exec returns is passed
// back unchanged; Run adds no errors of its own.
func Run(ctx context.Context, mode string, table Table, plugin Plugin, orch Orchestrator) error {
	plugin.SetOptions(table.Lookup(mode))
	orch.Register(Slot, plugin.Compiler())
	return orch.Exec(ctx, mode)
}
