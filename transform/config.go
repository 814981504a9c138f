// Package transform implements the Node Transformers, Renaming &
// Keyword Escape, Diagnostics, and the Compile entry point (spec
// §4.7, §6, §7): the single pass that walks an IL AST and produces a
// Target AST plus a diagnostics list.
package transform

import (
	"github.com/hawkynt/il2cs/framework"
	"github.com/hawkynt/il2cs/signature"
)

// Config is the recognized set of compilation options (§6).
type Config struct {
	// Namespace wraps the emitted compilation unit.
	Namespace string
	// ClassName names an outer class for free-floating declarations.
	// il.Program holds only classes, and Compile does not read this
	// field.
	ClassName string
	// FrameworkTypes overrides/extends the Framework Knowledge Base;
	// merged over built-ins, built-ins always win on names they define
	// (framework.MergeClasses).
	FrameworkTypes map[string]framework.Class
	// OpcodesTypes supplies return/parameter types for framework helper
	// methods beyond the built-in OpCodes table (framework.MergeOpcodes).
	OpcodesTypes map[string]framework.Signature
	// DebugIndexOf is the indexOf-tracing option. No transformer reads
	// it: the ArrayIndexOf lowering emits no trace diagnostics whether
	// it is set or not.
	DebugIndexOf bool
}

// knowledgeBase builds the merged Framework Knowledge Base for one
// compilation from this Config (SPEC_FULL §4 item 2).
func (c Config) knowledgeBase() *framework.KnowledgeBase {
	return framework.New(c.FrameworkTypes, c.OpcodesTypes)
}

// newSignatureRegistry is split out only so Compile's top-level shape
// reads as one function per phase of §2's data flow.
func newSignatureRegistry() *signature.Registry {
	return signature.New()
}
