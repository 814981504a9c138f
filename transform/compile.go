package transform

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/hawkynt/il2cs/framework"
	"github.com/hawkynt/il2cs/il"
	"github.com/hawkynt/il2cs/signature"
	"github.com/hawkynt/il2cs/target"
)

var defaultUsings = []string{
	"System",
	"System.Collections.Generic",
	"System.Linq",
	"System.Text",
}

// Compile runs the full IL-to-Target pass (§2): pre-register every
// method's declared signature across the whole program, then transform
// each class's fields, properties, constructors, and methods in turn.
// A panic anywhere in the pass (the Signature Registry's phase-order
// panics, or methodCtx.fatal's log.WithFields(...).Panic, the teacher's
// convention) is recovered here and reported as Result.Fatal instead
// of propagating to the caller.
func Compile(program *il.Program, cfg Config) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{"panic": r}).Error("transform.Compile recovered a fatal error")
			result = Result{Fatal: true, FatalError: fmt.Sprint(r)}
		}
	}()

	kb := cfg.knowledgeBase()
	sig := newSignatureRegistry()
	diags := &diagnosticSink{}

	preRegisterProgram(program, sig)

	var classes []*target.ClassDecl
	for _, cls := range program.Classes {
		classes = append(classes, buildClassTree(cls, cfg, kb, sig, diags))
	}

	root := &target.CompilationUnit{
		Usings: append([]string(nil), defaultUsings...),
		Namespace: &target.NamespaceDecl{
			Name:  cfg.Namespace,
			Types: classes,
		},
	}
	return Result{Root: root, Diagnostics: diags.items}
}

// preRegisterProgram implements Signature Registry phase 1 (§4.4) over
// every class in the program, including nested ones, before any body
// is transformed, so a method that calls another method declared later
// in source order still resolves during phase-1 lookups.
func preRegisterProgram(program *il.Program, sig *signature.Registry) {
	var walk func(cls *il.Class)
	walk = func(cls *il.Class) {
		preRegisterClass(cls, sig)
		for _, nested := range cls.Nested {
			walk(nested)
		}
	}
	for _, cls := range program.Classes {
		walk(cls)
	}
}

// buildClassTree transforms one class and recurses into its nested
// classes, marking each class refined in the Signature Registry once
// its own methods have all been through phase 2 (§4.4, "MarkClassRefined").
func buildClassTree(cls *il.Class, cfg Config, kb *framework.KnowledgeBase, sig *signature.Registry, diags *diagnosticSink) *target.ClassDecl {
	cd := buildClass(cls, cfg, kb, sig, diags)
	sig.MarkClassRefined(cls.Name)
	for _, nested := range cls.Nested {
		cd.Nested = append(cd.Nested, buildClassTree(nested, cfg, kb, sig, diags))
	}
	return cd
}
