package transform

import "github.com/hawkynt/il2cs/target"

// Result bundles everything one Compile call produces: the Target AST
// root, every diagnostic raised along the way, and a Fatal flag that
// makes "no Target AST on fatal" (§7) a type-level guarantee rather
// than a convention callers have to remember.
type Result struct {
	Root        *target.CompilationUnit
	Diagnostics []Diagnostic
	Fatal       bool
	// FatalError carries the recovered panic value's message when Fatal
	// is set.
	FatalError string
}
