// Package preanalyze implements the Backwards / Body Pre-Analyzer
// (spec §4.6): a pass over a method body, run before transformation,
// that upgrades the scope frame (and, for return types, the signature
// registry) with types only a body-wide view can establish.
//
// Grounded on the teacher's two-phase class-scope construction
// (symbol.ClassScope first collects every field/method signature, then
// a second walk resolves bodies against it); this package runs the
// equivalent second look-ahead pass at the method-body level instead
// of the class level.
package preanalyze

import (
	"strings"

	"github.com/hawkynt/il2cs/infer"
	"github.com/hawkynt/il2cs/il"
	"github.com/hawkynt/il2cs/scope"
	"github.com/hawkynt/il2cs/types"
)

// Result carries the refined return type discovered by rule (b), so
// callers can feed it back into the Signature Registry's phase 2
// (§4.4, "Refine").
type Result struct {
	// RefinedReturnType is set when a `return local` site let the
	// analyzer upgrade a previously placeholder return type estimate.
	RefinedReturnType types.Type
	HasRefinedReturn  bool
}

// analyzer accumulates cross-statement observations about parameters
// before committing any retyping, since rules (e)-(g) need the whole
// body's usage pattern, not just the first site seen.
type analyzer struct {
	scope *scope.Stack
	inf   *infer.Inferer

	paramNames map[string]bool

	arrayUse        map[string]bool
	bitwise32Scalar map[string]bool
	bitwise32Elem   map[string]bool
	indexedBy       map[string]string // paramName -> containerName, from container[param]
	stringIndexed   map[string]bool   // containerName, from container["literal"]

	jagged map[string]bool
}

// Run executes the full pass over body for one method/constructor,
// given its already-scope-declared parameters, and returns the
// refined return type if rule (b) found one.
func Run(s *scope.Stack, inf *infer.Inferer, params []*il.Param, knownReturnType types.Type, body *il.Block) Result {
	a := &analyzer{
		scope:           s,
		inf:             inf,
		paramNames:      make(map[string]bool, len(params)),
		arrayUse:        make(map[string]bool),
		bitwise32Scalar: make(map[string]bool),
		bitwise32Elem:   make(map[string]bool),
		indexedBy:       make(map[string]string),
		stringIndexed:   make(map[string]bool),
		jagged:          make(map[string]bool),
	}
	for _, p := range params {
		a.paramNames[p.Name] = true
	}

	result := Result{}
	if body != nil {
		for _, stmt := range body.Stmts {
			a.walkStmt(stmt, knownReturnType, &result)
		}
	}

	a.applyParamClassification()
	for name := range a.jagged {
		s.MarkJagged(name)
	}
	return result
}

func isPlaceholderReturn(t types.Type) bool {
	return t.Kind() == types.KindDynamic || t.Kind() == types.KindVar ||
		(t.IsPrimitive() && t.Name() == "byte")
}

func (a *analyzer) walkStmt(stmt il.Stmt, returnType types.Type, result *Result) {
	switch n := stmt.(type) {
	case *il.Block:
		for _, s := range n.Stmts {
			a.walkStmt(s, returnType, result)
		}
	case *il.VarDecl:
		a.observeDecl(n.Name, n.Init)
		a.walkExpr(n.Init)
	case *il.DestructuringDecl:
		a.walkExpr(n.Source)
	case *il.ExprStmt:
		a.walkExpr(n.X)
		a.observeAssignment(n.X)
	case *il.If:
		a.walkExpr(n.Cond)
		a.walkStmt(n.Then, returnType, result)
		if n.Else != nil {
			a.walkStmt(n.Else, returnType, result)
		}
	case *il.For:
		if n.Init != nil {
			a.walkStmt(n.Init, returnType, result)
		}
		if n.Cond != nil {
			a.walkExpr(n.Cond)
		}
		if n.Post != nil {
			a.walkStmt(n.Post, returnType, result)
		}
		a.walkStmt(n.Body, returnType, result)
	case *il.ForOf:
		a.walkExpr(n.Iterable)
		a.walkStmt(n.Body, returnType, result)
	case *il.ForIn:
		a.walkExpr(n.Object)
		a.walkStmt(n.Body, returnType, result)
	case *il.While:
		a.walkExpr(n.Cond)
		a.walkStmt(n.Body, returnType, result)
	case *il.DoWhile:
		a.walkExpr(n.Cond)
		a.walkStmt(n.Body, returnType, result)
	case *il.Switch:
		a.walkExpr(n.Disc)
		for _, c := range n.Cases {
			for _, s := range c.Body {
				a.walkStmt(s, returnType, result)
			}
		}
	case *il.Throw:
		a.walkExpr(n.Arg)
	case *il.Try:
		a.walkStmt(n.Body, returnType, result)
		for _, c := range n.Catches {
			a.walkStmt(c.Body, returnType, result)
		}
		if n.Finally != nil {
			a.walkStmt(n.Finally, returnType, result)
		}
	case *il.Return:
		if n.Arg != nil {
			a.walkExpr(n.Arg)
			a.observeReturn(n.Arg, returnType, result)
		}
	}
}

// observeDecl implements rule (a) (backwards parameter propagation)
// and rule (c) (cast-assignment hints) for `var local = init`.
func (a *analyzer) observeDecl(name string, init il.Expr) {
	if init == nil {
		return
	}
	if ident, ok := init.(*il.Identifier); ok {
		if t, ok := a.scope.Lookup(ident.Name); ok && a.paramNames[ident.Name] {
			a.scope.Retype(name, t)
			return
		}
	}
	if intr, ok := init.(*il.Intrinsic); ok && intr.Op == il.OpCast {
		a.scope.Retype(name, infer.PrimitiveForBits(intr.Bits, intr.Signed))
	}
}

// observeAssignment implements rules (a), (c), and (d) for
// `target = value` expression statements.
func (a *analyzer) observeAssignment(x il.Expr) {
	asg, ok := x.(*il.Assignment)
	if !ok || asg.Op != "=" {
		return
	}
	if target, ok := asg.Target.(*il.Identifier); ok {
		a.observeDecl(target.Name, asg.Value)
		return
	}

	member, ok := asg.Target.(*il.Member)
	if !ok || !member.Computed {
		return
	}
	// v[i] = ArrayCreation | ArrayLiteral marks v jagged (rule d).
	baseName, ok := identifierName(member.Object)
	if !ok {
		return
	}
	switch asg.Value.(type) {
	case *il.ArrayLiteral:
		a.jagged[baseName] = true
	case *il.Intrinsic:
		if intr := asg.Value.(*il.Intrinsic); intr.Op == il.OpArrayCreation {
			a.jagged[baseName] = true
		}
	}
}

// observeReturn implements rule (b): `return local` with a known
// return type upgrades local's scope type and, the first time it's
// seen, offers a refined return type back to the caller for methods
// whose pre-registered return type was only a placeholder.
func (a *analyzer) observeReturn(arg il.Expr, returnType types.Type, result *Result) {
	ident, ok := arg.(*il.Identifier)
	if !ok {
		return
	}
	if returnType.Kind() != types.KindVoid && !isPlaceholderReturn(returnType) {
		a.scope.Retype(ident.Name, returnType)
		return
	}
	if !result.HasRefinedReturn {
		if t, ok := a.scope.Lookup(ident.Name); ok {
			result.RefinedReturnType = t
			result.HasRefinedReturn = true
		}
	}
}

// walkExpr records parameter-usage observations for rules (d)-(g);
// array literals/intrinsics recurse into their operands so nested
// param usage (inside a loop body's arithmetic, say) is still seen.
func (a *analyzer) walkExpr(e il.Expr) {
	switch n := e.(type) {
	case nil:
		return
	case *il.Member:
		a.walkExpr(n.Object)
		a.walkExpr(n.Property)
		if n.Computed {
			a.observeIndexing(n)
		} else if baseName, ok := identifierName(n.Object); ok && a.paramNames[baseName] {
			if ident, ok := n.Property.(*il.Identifier); ok && ident.Name == "length" {
				a.arrayUse[baseName] = true
			}
		}
		// v[i][j] read/write also marks v jagged (rule d).
		if n.Computed {
			if inner, ok := n.Object.(*il.Member); ok && inner.Computed {
				if baseName, ok := identifierName(inner.Object); ok {
					a.jagged[baseName] = true
				}
			}
		}
	case *il.Binary:
		a.walkExpr(n.Left)
		a.walkExpr(n.Right)
		a.observeBitwise(n.Op, n.Left)
		a.observeBitwise(n.Op, n.Right)
	case *il.Logical:
		a.walkExpr(n.Left)
		a.walkExpr(n.Right)
	case *il.Unary:
		a.walkExpr(n.Operand)
	case *il.Update:
		a.walkExpr(n.Operand)
	case *il.Assignment:
		a.walkExpr(n.Target)
		a.walkExpr(n.Value)
	case *il.Conditional:
		a.walkExpr(n.Test)
		a.walkExpr(n.Consequent)
		a.walkExpr(n.Alternate)
	case *il.Sequence:
		for _, sub := range n.Exprs {
			a.walkExpr(sub)
		}
	case *il.Spread:
		if baseName, ok := identifierName(n.Arg); ok && a.paramNames[baseName] {
			a.arrayUse[baseName] = true
		}
		a.walkExpr(n.Arg)
	case *il.ArrayLiteral:
		for _, sub := range n.Elements {
			a.walkExpr(sub)
		}
	case *il.Call:
		a.walkExpr(n.Callee)
		for _, arg := range n.Args {
			a.walkExpr(arg)
		}
	case *il.ThisMethodCall:
		for _, arg := range n.Args {
			a.walkExpr(arg)
		}
	case *il.New:
		for _, arg := range n.Args {
			a.walkExpr(arg)
		}
	case *il.Intrinsic:
		for _, arg := range n.Args {
			a.walkExpr(arg)
			if n.Op == il.OpArrayIndexOf || n.Op == il.OpArrayIncludes || n.Op == il.OpArraySlice {
				if baseName, ok := identifierName(arg); ok && a.paramNames[baseName] {
					a.arrayUse[baseName] = true
				}
			}
		}
	}
}

// observeIndexing implements the container/index-name bookkeeping
// shared by rules (e) and (f): container[index].
func (a *analyzer) observeIndexing(n *il.Member) {
	containerName, ok := identifierName(n.Object)
	if !ok {
		return
	}
	switch prop := n.Property.(type) {
	case *il.Identifier:
		if a.paramNames[prop.Name] {
			a.indexedBy[prop.Name] = containerName
		}
		if a.paramNames[containerName] {
			a.arrayUse[containerName] = true
		}
	case *il.Literal:
		if prop.LitKind == il.LiteralString {
			a.stringIndexed[containerName] = true
		}
	}
}

// observeBitwise implements rule (g) (scalar-32 detection) and the
// element-type half of rule (e): a 32-bit bitwise operator applied
// directly to a parameter marks it scalar uint32; applied to a
// container-indexed read of a parameter marks that parameter's element
// type uint32.
func (a *analyzer) observeBitwise(op string, operand il.Expr) {
	if !is32BitBitwiseOp(op) {
		return
	}
	if baseName, ok := identifierName(operand); ok && a.paramNames[baseName] {
		a.bitwise32Scalar[baseName] = true
		return
	}
	if member, ok := operand.(*il.Member); ok && member.Computed {
		if baseName, ok := identifierName(member.Object); ok && a.paramNames[baseName] {
			a.bitwise32Elem[baseName] = true
			a.arrayUse[baseName] = true
		}
	}
}

func is32BitBitwiseOp(op string) bool {
	switch op {
	case "&", "|", "^", "<<", ">>", ">>>":
		return true
	}
	return false
}

func identifierName(e il.Expr) (string, bool) {
	if ident, ok := e.(*il.Identifier); ok {
		return ident.Name, true
	}
	return "", false
}

// applyParamClassification commits rules (e), (f), and (g) once the
// whole body has been observed.
func (a *analyzer) applyParamClassification() {
	for name := range a.arrayUse {
		elem := types.Byte
		if res := infer.NameHeuristic(name); res.Kind() == types.KindArray {
			elem = res.Elem()
		}
		if a.bitwise32Elem[name] {
			elem = types.UInt32
		}
		a.scope.Retype(name, types.Array(elem, false))
	}

	for param, container := range a.indexedBy {
		if a.arrayUse[param] {
			continue // the parameter is itself an array, not an index.
		}
		if a.stringIndexed[container] {
			a.scope.Retype(param, types.StringT)
			continue
		}
		if a.arrayUse[container] || looksArrayLike(container) {
			a.scope.Retype(param, types.Int32)
		}
	}

	for name := range a.bitwise32Scalar {
		if a.arrayUse[name] {
			continue
		}
		a.scope.Retype(name, types.UInt32)
	}
}

func looksArrayLike(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, "s") || strings.Contains(lower, "array") || strings.Contains(lower, "table")
}
