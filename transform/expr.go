package transform

import (
	"fmt"

	"github.com/hawkynt/il2cs/il"
	"github.com/hawkynt/il2cs/infer"
	"github.com/hawkynt/il2cs/target"
	"github.com/hawkynt/il2cs/types"
)

// unhandledExpr is the sentinel every unrecognized expression node
// becomes: a typed identifier that keeps the surrounding tree well
// formed while making the gap visible in emitted source (§7, "never a
// silent drop").
func (c *methodCtx) unhandledExpr(nodeKind string, t types.Type) target.Expr {
	c.warn(DiagUnhandledNode, nodeKind, fmt.Sprintf("no transformer for %s", nodeKind))
	return target.NewRaw(fmt.Sprintf("/* unhandled:%s */", nodeKind), t)
}

// noHint is the sentinel "no declared type" value threaded through
// call sites that optionally supply an element-type override; it is
// deliberately types.Type{}, the invalid zero value types.Type's own
// doc comment sets aside for exactly this purpose.
var noHint = types.Type{}

func hasHint(t types.Type) bool {
	return !(t.Kind() == types.KindPrimitive && t.Name() == "")
}

// expr dispatches one IL expression to its Node Transformer. It never
// returns nil: every branch either produces a Target expression or
// falls through to unhandledExpr.
func (c *methodCtx) expr(e il.Expr) target.Expr {
	switch n := e.(type) {
	case *il.Literal:
		return c.literal(n)
	case *il.Identifier:
		return c.identifier(n)
	case *il.This:
		return target.NewIdent("this", types.Generic(c.className))
	case *il.Super:
		return target.NewIdent("base", types.Generic(c.className))
	case *il.Member:
		return c.member(n)
	case *il.ThisPropertyAccess:
		return c.thisPropertyAccess(n)
	case *il.ThisMethodCall:
		return c.thisMethodCall(n)
	case *il.ParentConstructorCall:
		fun := target.NewIdent("base", types.VoidT)
		return target.NewCall(fun, c.exprList(n.Args), types.VoidT)
	case *il.ParentMethodCall:
		return c.parentMethodCall(n)
	case *il.Call:
		return c.call(n)
	case *il.New:
		return c.new_(n)
	case *il.Binary:
		return c.binary(n)
	case *il.Logical:
		return c.logical(n)
	case *il.Unary:
		return c.unary(n)
	case *il.Update:
		return c.update(n)
	case *il.Assignment:
		return c.assignment(n)
	case *il.Conditional:
		return c.conditional(n)
	case *il.Sequence:
		return c.sequence(n)
	case *il.Template:
		return c.template(n)
	case *il.Spread:
		// A bare Spread in expression position (not unrolled by a call or
		// array-literal site) has nothing sensible to lower to.
		return c.unhandledExpr("Spread", c.inf.Infer(n.Arg))
	case *il.ArrayLiteral:
		return c.arrayLiteral(n, noHint)
	case *il.ObjectLiteral:
		return c.objectLiteral(n, "")
	case *il.ArrowFunction:
		return c.arrowFunction(n)
	case *il.Intrinsic:
		return c.intrinsic(n)
	default:
		return c.unhandledExpr(string(e.Kind()), types.DynamicT)
	}
}

func (c *methodCtx) literal(n *il.Literal) target.Expr {
	t := c.inf.Infer(n)
	switch n.LitKind {
	case il.LiteralBool:
		return target.NewLiteral(n.Raw, t)
	case il.LiteralNull:
		return target.NewLiteral("null", t)
	case il.LiteralString:
		return target.NewLiteral(n.Raw, t)
	case il.LiteralFloat:
		return target.NewLiteral(n.Raw+"d", t)
	case il.LiteralBigInt:
		return target.NewLiteral(n.Raw, t)
	default: // LiteralInt
		return target.NewLiteral(literalSuffix(n.Raw, t), t)
	}
}

// literalSuffix appends the C# integer-literal suffix matching t. The
// literal transformer passes the Inferer's type, which is always int or
// long for an integer literal, so e.g. "0x80000000" reads "0x80000000L".
func literalSuffix(raw string, t types.Type) string {
	if !t.IsPrimitive() {
		return raw
	}
	switch {
	case t.Width() == 64 && t.Signed():
		return raw + "L"
	case t.Width() == 64 && !t.Signed():
		return raw + "UL"
	case !t.Signed() && t.Width() >= 32:
		return raw + "u"
	default:
		return raw
	}
}

func (c *methodCtx) identifier(n *il.Identifier) target.Expr {
	if renamed, ok := c.scope.LookupRenamed(n.Name); ok {
		t, _ := c.scope.Lookup(n.Name)
		return target.NewIdent(renamed, t)
	}
	// Constructor field or otherwise-unscoped name: fall back to the
	// Inferer's view, which consults class field types too.
	t := c.inf.Infer(n)
	c.warn(DiagUnresolvedIdentifier, "Identifier", fmt.Sprintf("identifier %q not found in scope", n.Name))
	return target.NewIdent(n.Name, t)
}

func (c *methodCtx) member(n *il.Member) target.Expr {
	t := c.inf.Infer(n)
	x := c.expr(n.Object)
	if !n.Computed {
		name, _ := n.Property.(*il.Identifier)
		sel := ""
		if name != nil {
			sel = name.Name
		}
		switch sel {
		case "length":
			return target.NewMember(x, "Length", t)
		default:
			return target.NewMember(x, ToPascalCase(sel), t)
		}
	}
	return target.NewIndex(x, c.expr(n.Property), t)
}

// thisPropertyAccess resolves through class.go's per-class member-name
// table so a field renamed to avoid a collision with a method of the
// same PascalCase spelling (§4, "Renaming & Keyword Escape") is read
// back under its actual emitted name.
func (c *methodCtx) thisPropertyAccess(n *il.ThisPropertyAccess) target.Expr {
	this := target.NewIdent("this", types.Generic(c.className))
	t := c.inf.Infer(n)
	return target.NewMember(this, c.resolvedMemberName(n.Property), t)
}

func (c *methodCtx) thisMethodCall(n *il.ThisMethodCall) target.Expr {
	t := c.inf.Infer(n)
	this := target.NewIdent("this", types.Generic(c.className))
	fun := target.NewMember(this, c.resolvedMemberName(n.Method), t)
	return target.NewCall(fun, c.exprList(n.Args), t)
}

func (c *methodCtx) resolvedMemberName(srcName string) string {
	if resolved, ok := c.memberNames[srcName]; ok {
		return resolved
	}
	return ToPascalCase(srcName)
}

func (c *methodCtx) parentMethodCall(n *il.ParentMethodCall) target.Expr {
	t := c.inf.Infer(n)
	base := target.NewIdent("base", types.Generic(c.className))
	fun := target.NewMember(base, ToPascalCase(n.Method), t)
	return target.NewCall(fun, c.exprList(n.Args), t)
}

func (c *methodCtx) call(n *il.Call) target.Expr {
	t := c.inf.Infer(n)
	return target.NewCall(c.expr(n.Callee), c.exprList(n.Args), t)
}

var typedArrayCtorElem = map[string]types.Type{
	"Uint8Array": types.Byte, "Int8Array": types.SByte,
	"Uint16Array": types.UInt16, "Int16Array": types.Int16,
	"Uint32Array": types.UInt32, "Int32Array": types.Int32,
	"Float32Array": types.Float32, "Float64Array": types.Float64,
}

func (c *methodCtx) new_(n *il.New) target.Expr {
	t := c.inf.Infer(n)
	if elem, ok := typedArrayCtorElem[n.Type]; ok && len(n.Args) == 1 {
		return target.NewArrayCreation(types.Array(elem, false), []target.Expr{c.expr(n.Args[0])}, nil)
	}
	if n.Type == "ArrayBuffer" && len(n.Args) == 1 {
		return target.NewArrayCreation(types.Array(types.Byte, false), []target.Expr{c.expr(n.Args[0])}, nil)
	}
	return target.NewObjectCreation(t, c.exprList(n.Args))
}

func (c *methodCtx) binary(n *il.Binary) target.Expr {
	leftT, rightT := c.inf.Infer(n.Left), c.inf.Infer(n.Right)
	left, right := c.expr(n.Left), c.expr(n.Right)

	op := csharpBinaryOp(n.Op)
	resultT := c.inf.Infer(n)

	switch n.Op {
	case ">>>":
		// JS's unsigned right shift has no C# equivalent operator; widen
		// the left operand to uint first so ">>" shifts in zero bits.
		if !types.Equal(leftT, types.UInt32) {
			left = target.NewCast(left, types.UInt32)
		}
		if isZeroLiteral(n.Right) {
			// "x >>> 0" is JS's to-uint32 coercion idiom; the shift itself
			// is a no-op once the cast above is in place.
			return left
		}
		return target.NewBinary(">>", left, right, resultT)
	case "==", "!=":
		// IL comparisons are always reference-free value comparisons in
		// this IR; "===" already lowers to "==" upstream.
	}

	if leftT.IsPrimitive() && rightT.IsPrimitive() && !types.Equal(leftT, rightT) && isArithmeticOp(n.Op) {
		if needsNarrowAt(leftT, resultT) {
			left = target.NewCast(left, resultT)
		}
		if needsNarrowAt(rightT, resultT) {
			right = target.NewCast(right, resultT)
		}
	}
	return target.NewBinary(op, left, right, resultT)
}

func isZeroLiteral(e il.Expr) bool {
	lit, ok := e.(*il.Literal)
	return ok && lit.LitKind == il.LiteralInt && lit.Raw == "0"
}

func isArithmeticOp(op string) bool {
	switch op {
	case "+", "-", "*", "/", "%", "&", "|", "^", "<<", ">>":
		return true
	}
	return false
}

func csharpBinaryOp(op string) string {
	if op == "===" {
		return "=="
	}
	if op == "!==" {
		return "!="
	}
	return op
}

func (c *methodCtx) logical(n *il.Logical) target.Expr {
	left, right := c.expr(n.Left), c.expr(n.Right)
	t := c.inf.Infer(n)
	if n.Op == "||" && !isBoolType(c.inf.Infer(n.Left)) {
		// "a || b" over non-bool operands is JS's default-value idiom; C#'s
		// equivalent is the null-coalescing operator.
		return target.NewBinary("??", left, right, t)
	}
	return target.NewBinary(n.Op, left, right, t)
}

func isBoolType(t types.Type) bool {
	return t.IsPrimitive() && t.Name() == "bool"
}

func (c *methodCtx) unary(n *il.Unary) target.Expr {
	t := c.inf.Infer(n)
	switch n.Op {
	case "typeof":
		c.warn(DiagCryptoFallback, "Unary", "typeof expression lowered to GetType().Name")
		x := c.expr(n.Operand)
		return target.NewMember(target.NewCall(target.NewMember(x, "GetType", types.DynamicT), nil, types.DynamicT), "Name", types.StringT)
	case "!":
		return target.NewUnary("!", c.truthy(n.Operand), false, types.Bool)
	default:
		return target.NewUnary(n.Op, c.expr(n.Operand), false, t)
	}
}

// truthy applies §4.7's type-directed truthiness rewrite: a bool
// operand passes through, a numeric operand becomes "x != 0", a
// string/array/reference operand becomes "x != null".
func (c *methodCtx) truthy(e il.Expr) target.Expr {
	t := c.inf.Infer(e)
	x := c.expr(e)
	if isBoolType(t) {
		return x
	}
	if t.IsPrimitive() {
		return target.NewBinary("!=", x, target.NewLiteral(types.DefaultLiteralText(t), t), types.Bool)
	}
	return target.NewBinary("!=", x, target.NewLiteral("null", t), types.Bool)
}

func (c *methodCtx) update(n *il.Update) target.Expr {
	t := c.inf.Infer(n)
	return target.NewUnary(n.Op, c.expr(n.Operand), !n.Prefix, t)
}

func (c *methodCtx) assignment(n *il.Assignment) target.Expr {
	lhs := c.expr(n.Target)
	rhs := c.expr(n.Value)
	lhsT := lhs.Type()

	if n.Op == "=" {
		if needsNarrowAt(rhs.Type(), lhsT) {
			rhs = target.NewCast(rhs, lhsT)
		}
		return target.NewAssign("=", lhs, rhs)
	}

	// Compound assignment: JS widens to a common numeric type before the
	// operation, which a raw "lhs op= rhs" in C# would silently skip when
	// the widened result no longer fits lhs's declared width (§4.7,
	// "compound-assignment widening"). Expand it and re-narrow explicitly.
	binOp := n.Op[:len(n.Op)-1]
	widened := types.Widen(lhsT, rhs.Type())
	left := target.Expr(lhs)
	right := rhs
	if needsNarrowAt(lhsT, widened) {
		left = target.NewCast(lhs, widened)
	}
	if needsNarrowAt(rhs.Type(), widened) {
		right = target.NewCast(rhs, widened)
	}
	combined := target.NewBinary(csharpBinaryOp(binOp), left, right, widened)
	var value target.Expr = combined
	if needsNarrowAt(widened, lhsT) {
		value = target.NewCast(combined, lhsT)
	}
	return target.NewAssign("=", lhs, value)
}

func (c *methodCtx) conditional(n *il.Conditional) target.Expr {
	t := c.inf.Infer(n)
	// "Array.isArray(x) ? x : [x]" is JS's coerce-to-array idiom; IL
	// lowers the isArray test to an Intrinsic so it's visible here too.
	if isArr, ok := n.Test.(*il.Intrinsic); ok && isArr.Op == il.OpIsArrayCheck {
		c.warn(DiagCryptoFallback, "Conditional", "Array.isArray ternary lowered to a direct value (array-ness is static in the Target type system)")
		return c.expr(n.Consequent)
	}
	return target.NewConditional(c.truthy(n.Test), c.expr(n.Consequent), c.expr(n.Alternate), t)
}

func (c *methodCtx) sequence(n *il.Sequence) target.Expr {
	if len(n.Exprs) == 0 {
		return c.unhandledExpr("Sequence", types.VoidT)
	}
	if len(n.Exprs) > 1 {
		c.warn(DiagCryptoFallback, "Sequence", "comma expression has no C# equivalent; side effects before the final operand were dropped")
	}
	return c.expr(n.Exprs[len(n.Exprs)-1])
}

func (c *methodCtx) template(n *il.Template) target.Expr {
	var exprs []target.Expr
	for _, e := range n.Exprs {
		exprs = append(exprs, c.expr(e))
	}
	return target.NewInterpolatedString(n.Parts, exprs)
}

// arrayLiteral lowers a literal array value. elemHint, when valid,
// overrides the Inferer's own element-type guess (used when the
// surrounding declaration already pins the element type).
func (c *methodCtx) arrayLiteral(n *il.ArrayLiteral, elemHint types.Type) target.Expr {
	t := c.inf.Infer(n)
	if hasHint(elemHint) {
		t = types.Array(elemHint, t.Jagged())
	}
	elemT := t.Elem()
	elements := make([]target.Expr, 0, len(n.Elements))
	for _, e := range n.Elements {
		if lit, ok := e.(*il.ObjectLiteral); ok {
			elements = append(elements, c.objectLiteral(lit, elemT.Name()))
			continue
		}
		el := c.expr(e)
		if needsNarrowAt(el.Type(), elemT) {
			el = target.NewCast(el, elemT)
		}
		elements = append(elements, el)
	}
	return target.NewArrayCreation(t, nil, elements)
}

// objectLiteral rewrites a crypto-framework record literal to its
// constructor call (§4.7, "Crypto framework objects"): field order
// follows framework.ConstructorOrder so positional arguments land
// correctly. recordType "" (no hint available) falls back to an
// anonymous object.
func (c *methodCtx) objectLiteral(n *il.ObjectLiteral, recordType string) target.Expr {
	order, ok := c.kb.ConstructorOrder(recordType)
	if !ok {
		names := make([]string, 0, len(n.Properties))
		values := make([]target.Expr, 0, len(n.Properties))
		for _, p := range n.Properties {
			names = append(names, ToPascalCase(p.Key))
			values = append(values, c.expr(p.Value))
		}
		return target.NewAnonymousObject(names, values)
	}
	byKey := make(map[string]il.Expr, len(n.Properties))
	for _, p := range n.Properties {
		byKey[p.Key] = p.Value
	}
	args := make([]target.Expr, 0, len(order))
	for _, field := range order {
		v, found := byKey[field]
		if !found {
			c.warn(DiagCryptoFallback, "ObjectLiteral", fmt.Sprintf("%s literal missing field %q, emitting default", recordType, field))
			args = append(args, target.NewLiteral("default", types.DynamicT))
			continue
		}
		args = append(args, c.expr(v))
	}
	return target.NewObjectCreation(types.Generic(recordType), args)
}

func (c *methodCtx) arrowFunction(n *il.ArrowFunction) target.Expr {
	params := make([]target.Param, 0, len(n.Params))
	c.scope.Push()
	defer c.scope.Pop()
	for _, p := range n.Params {
		t := elementHintFromName(p.TypeHint)
		if !hasHint(t) {
			t = infer.NameHeuristic(p.Name)
		}
		name, _ := DeclareLocal(c.scope, p.Name, t)
		params = append(params, target.Param{Name: name, Type: t})
	}
	if n.ExprBody {
		body := c.expr(n.Body.(il.Expr))
		return target.NewLambda(params, body, types.DynamicT)
	}
	body := c.block(n.Body.(*il.Block))
	return target.NewLambda(params, body, types.DynamicT)
}

func (c *methodCtx) exprList(args []il.Expr) []target.Expr {
	out := make([]target.Expr, 0, len(args))
	for _, a := range args {
		if sp, ok := a.(*il.Spread); ok {
			c.warn(DiagCryptoFallback, "Spread", "spread argument passed through unexpanded")
			out = append(out, c.expr(sp.Arg))
			continue
		}
		out = append(out, c.expr(a))
	}
	return out
}
