package transform

import (
	"fmt"

	"github.com/hawkynt/il2cs/framework"
	"github.com/hawkynt/il2cs/il"
	"github.com/hawkynt/il2cs/infer"
	"github.com/hawkynt/il2cs/preanalyze"
	"github.com/hawkynt/il2cs/scope"
	"github.com/hawkynt/il2cs/signature"
	"github.com/hawkynt/il2cs/target"
	"github.com/hawkynt/il2cs/types"
)

// paramTypesFromHints builds a method's raw (pre-refinement) parameter
// types for the Signature Registry's phase-1 view (§4.4): each
// parameter's declared type hint, or infer.NameHeuristic on the
// parameter name when it has none.
func paramTypesFromHints(params []*il.Param) []types.Type {
	out := make([]types.Type, 0, len(params))
	for _, p := range params {
		t := elementHintFromName(p.TypeHint)
		if !hasHint(t) {
			t = infer.NameHeuristic(p.Name)
		}
		out = append(out, t)
	}
	return out
}

func returnHintOrDynamic(hint string) types.Type {
	if t := elementHintFromName(hint); hasHint(t) {
		return t
	}
	return types.DynamicT
}

// preRegisterClass runs phase 1 of the Signature Registry for one
// class: every method gets a signature built from declared type hints
// (parameters without one fall back to the name heuristic), before any
// body is walked.
func preRegisterClass(cls *il.Class, sig *signature.Registry) {
	for _, m := range cls.Methods {
		sig.PreRegister(cls.Name, m.Name, framework.Signature{
			ParamTypes: paramTypesFromHints(m.Params),
			ReturnType: returnHintOrDynamic(m.ReturnHint),
			IsOverride: m.IsOverride,
		})
	}
}

// classFieldTypes resolves every field's Target type: explicit
// TypeHint first, then the Inferer over a literal/array initializer,
// then a scan of constructor "this.x = ..." assignments, finally the
// crypto-context name heuristic (§4.5's last resort applied at class
// scope too).
func classFieldTypes(cls *il.Class, kb *framework.KnowledgeBase) map[string]types.Type {
	out := make(map[string]types.Type, len(cls.Fields))
	unresolved := make([]*il.Field, 0)
	for _, f := range cls.Fields {
		if t := elementHintFromName(f.TypeHint); hasHint(t) {
			out[f.Name] = t
			continue
		}
		if f.Init != nil {
			tmpInf := infer.New(scope.New(nil), signature.New(), kb, cls.Name, nil)
			out[f.Name] = tmpInf.Infer(f.Init)
			continue
		}
		unresolved = append(unresolved, f)
	}
	for _, f := range unresolved {
		if t, ok := scanConstructorFieldType(cls, f.Name, kb); ok {
			out[f.Name] = t
			continue
		}
		out[f.Name] = infer.NameHeuristic(f.Name)
	}
	return out
}

// scanConstructorFieldType looks for a "this.<name> = <expr>" statement
// directly in a constructor body and infers the field's type from the
// assigned expression, with constructor parameters seeded into scope
// by their own declared hints.
func scanConstructorFieldType(cls *il.Class, name string, kb *framework.KnowledgeBase) (types.Type, bool) {
	for _, ctor := range cls.Constructors {
		s := scope.New(nil)
		for _, p := range ctor.Params {
			t := elementHintFromName(p.TypeHint)
			if !hasHint(t) {
				t = infer.NameHeuristic(p.Name)
			}
			s.Declare(p.Name, t)
		}
		tmpInf := infer.New(s, signature.New(), kb, cls.Name, nil)
		if t, ok := findFieldAssign(ctor.Body, name, tmpInf); ok {
			return t, true
		}
	}
	return types.Type{}, false
}

func findFieldAssign(b *il.Block, name string, inf *infer.Inferer) (types.Type, bool) {
	for _, st := range b.Stmts {
		switch n := st.(type) {
		case *il.ExprStmt:
			if asn, ok := n.X.(*il.Assignment); ok {
				if tp, ok := asn.Target.(*il.ThisPropertyAccess); ok && tp.Property == name {
					return inf.Infer(asn.Value), true
				}
			}
		case *il.If:
			if t, ok := findFieldAssign(n.Then, name, inf); ok {
				return t, true
			}
		}
	}
	return types.Type{}, false
}

// resolvedMemberNames assigns every field, property, and method its
// PascalCase Target name, appending a numeric suffix and recording a
// RenamedForCollision diagnostic when two distinct source names would
// otherwise collide (§4, "Renaming & Keyword Escape").
func resolvedMemberNames(cls *il.Class, diags *diagnosticSink) map[string]string {
	taken := make(map[string]bool)
	out := make(map[string]string)
	assign := func(kind, src string) {
		candidate := ToPascalCase(src)
		if !taken[candidate] {
			taken[candidate] = true
			out[src] = candidate
			return
		}
		for n := 2; ; n++ {
			next := fmt.Sprintf("%s%d", candidate, n)
			if !taken[next] {
				taken[next] = true
				out[src] = next
				diags.warn(DiagRenamedForCollision, cls.Name, fmt.Sprintf("%s %q renamed to %q to avoid colliding with an existing member", kind, src, next))
				return
			}
		}
	}
	for _, m := range cls.Methods {
		assign("method", m.Name)
	}
	for _, f := range cls.Fields {
		assign("field", f.Name)
	}
	for _, p := range cls.Properties {
		assign("property", p.Name)
	}
	return out
}

func buildClass(cls *il.Class, cfg Config, kb *framework.KnowledgeBase, sig *signature.Registry, diags *diagnosticSink) *target.ClassDecl {
	fieldTypes := classFieldTypes(cls, kb)
	names := resolvedMemberNames(cls, diags)

	cd := &target.ClassDecl{
		Name:        cls.Name,
		TypeParams:  cls.TypeParams,
		BaseClass:   cls.Extends,
		Interfaces:  cls.Implements,
		IsInterface: cls.IsInterface,
	}

	for _, f := range cls.Fields {
		fd := &target.FieldDecl{
			Name:     names[f.Name],
			Type:     fieldTypes[f.Name],
			IsStatic: f.IsStatic,
		}
		if f.Init != nil {
			mc := newMethodCtx(cfg, kb, sig, cls.Name, "<field:"+f.Name+">", fieldTypes, diags, names)
			fd.Init = mc.expr(f.Init)
		}
		cd.Fields = append(cd.Fields, fd)
	}

	for _, p := range cls.Properties {
		cd.Properties = append(cd.Properties, &target.PropertyDecl{
			Name:      names[p.Name],
			Type:      fieldTypes[p.Name],
			HasGetter: p.Getter != nil,
			HasSetter: p.Setter != nil,
		})
	}

	for _, ctor := range cls.Constructors {
		cd.Constructors = append(cd.Constructors, buildConstructor(cls, ctor, cfg, kb, sig, fieldTypes, diags, names))
	}

	for _, m := range cls.Methods {
		cd.Methods = append(cd.Methods, buildMethod(cls, m, cfg, kb, sig, fieldTypes, diags, names))
	}

	return cd
}

func newMethodCtx(cfg Config, kb *framework.KnowledgeBase, sig *signature.Registry, className, methodName string, fieldTypes map[string]types.Type, diags *diagnosticSink, names map[string]string) *methodCtx {
	s := scope.New(fieldTypes)
	return &methodCtx{
		cfg:              cfg,
		kb:               kb,
		sig:              sig,
		scope:            s,
		inf:              infer.New(s, sig, kb, className, fieldTypes),
		className:        className,
		methodName:       methodName,
		diags:            diags,
		memberNames:      names,
	}
}

// declareParams seeds the method-scope frame with every parameter
// under its raw IL name (required by preanalyze.Run's Retype/Lookup
// calls, which address bindings by that same raw name) using its
// pre-refinement type guess.
func declareParams(ctx *methodCtx, params []*il.Param) {
	for _, p := range params {
		t := elementHintFromName(p.TypeHint)
		if !hasHint(t) {
			t = infer.NameHeuristic(p.Name)
		}
		DeclareLocal(ctx.scope, p.Name, t)
	}
}

// paramsFromScope reads back each parameter's Target name and type
// after preanalyze.Run has had a chance to retype it.
func paramsFromScope(ctx *methodCtx, params []*il.Param) []target.Param {
	out := make([]target.Param, 0, len(params))
	for _, p := range params {
		name, _ := ctx.scope.LookupRenamed(p.Name)
		t, _ := ctx.scope.Lookup(p.Name)
		out = append(out, target.Param{Name: name, Type: t, IsParams: p.IsRest})
	}
	return out
}

func paramTypesFromScope(ctx *methodCtx, params []*il.Param) []types.Type {
	out := make([]types.Type, len(params))
	for i, p := range params {
		out[i], _ = ctx.scope.Lookup(p.Name)
	}
	return out
}

func buildConstructor(cls *il.Class, ctor *il.Constructor, cfg Config, kb *framework.KnowledgeBase, sig *signature.Registry, fieldTypes map[string]types.Type, diags *diagnosticSink, names map[string]string) *target.ConstructorDecl {
	ctx := newMethodCtx(cfg, kb, sig, cls.Name, "<constructor>", fieldTypes, diags, names)
	declareParams(ctx, ctor.Params)
	preanalyze.Run(ctx.scope, ctx.inf, ctor.Params, types.VoidT, ctor.Body)
	params := paramsFromScope(ctx, ctor.Params)
	return &target.ConstructorDecl{Params: params, Body: ctx.block(ctor.Body)}
}

func buildMethod(cls *il.Class, m *il.Method, cfg Config, kb *framework.KnowledgeBase, sig *signature.Registry, fieldTypes map[string]types.Type, diags *diagnosticSink, names map[string]string) *target.MethodDecl {
	ctx := newMethodCtx(cfg, kb, sig, cls.Name, m.Name, fieldTypes, diags, names)
	declareParams(ctx, m.Params)

	declaredReturn := returnHintOrDynamic(m.ReturnHint)
	refinement := preanalyze.Run(ctx.scope, ctx.inf, m.Params, declaredReturn, m.Body)

	returnType := declaredReturn
	if refinement.HasRefinedReturn {
		returnType = refinement.RefinedReturnType
	}
	sig.Refine(cls.Name, m.Name, framework.Signature{
		ParamTypes: paramTypesFromScope(ctx, m.Params),
		ReturnType: returnType,
		IsOverride: m.IsOverride,
	})

	params := paramsFromScope(ctx, m.Params)
	body := ctx.block(m.Body)
	return &target.MethodDecl{
		Name:       names[m.Name],
		TypeParams: m.TypeParams,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		IsStatic:   m.IsStatic,
		IsOverride: m.IsOverride,
	}
}
