// Package infer implements the Type Inferer (spec §4.5): a pure
// function from an IL expression to a Target type, using literal
// rules, the 4.1 promotion table, registered variables/methods, name
// heuristics, and the crypto-context defaults the upstream corpus
// biases toward (SPEC_FULL §0).
//
// Grounded on the teacher's expression.go, whose ParseExpr is itself a
// giant switch inferring a Go type as it builds each expression node;
// this package keeps that shape (one case per IL node kind) but
// separates inference from tree construction, since here the two are
// different ASTs (il.Expr in, types.Type out) rather than one tree
// annotated in place.
package infer

import (
	"math"
	"strconv"
	"strings"

	"github.com/hawkynt/il2cs/framework"
	"github.com/hawkynt/il2cs/il"
	"github.com/hawkynt/il2cs/scope"
	"github.com/hawkynt/il2cs/signature"
	"github.com/hawkynt/il2cs/types"
)

// Inferer is the pure-function context: the scope stack (for
// Identifier lookups), the signature registry (for call/override
// return types), the framework knowledge base (for inherited property
// and OpCodes types), and the enclosing class's name and field table
// (for this.X resolution).
type Inferer struct {
	Scope      *scope.Stack
	Signatures *signature.Registry
	Framework  *framework.KnowledgeBase
	ClassName  string
	FieldTypes map[string]types.Type
}

// New builds an Inferer for one method body.
func New(s *scope.Stack, sig *signature.Registry, kb *framework.KnowledgeBase, className string, fieldTypes map[string]types.Type) *Inferer {
	return &Inferer{Scope: s, Signatures: sig, Framework: kb, ClassName: className, FieldTypes: fieldTypes}
}

// Infer returns e's Target type. It never mutates the scope, registry,
// or knowledge base (§5: "referentially transparent given the same IL
// and configuration").
func (inf *Inferer) Infer(e il.Expr) types.Type {
	switch n := e.(type) {
	case *il.Literal:
		return inf.inferLiteral(n)
	case *il.Identifier:
		if t, ok := inf.Scope.Lookup(n.Name); ok {
			return t
		}
		return NameHeuristic(n.Name)
	case *il.This:
		return types.Generic(inf.ClassName)
	case *il.Super:
		return types.DynamicT
	case *il.Member:
		return inf.inferMember(n)
	case *il.ThisPropertyAccess:
		if t, ok := inf.FieldTypes[n.Property]; ok {
			return t
		}
		if prop, ok := inf.Framework.LookupProperty(inf.ClassName, n.Property); ok {
			return prop.Type
		}
		return types.DynamicT
	case *il.ThisMethodCall:
		if sig, ok := inf.Signatures.Lookup(inf.ClassName, n.Method); ok {
			return sig.ReturnType
		}
		return types.DynamicT
	case *il.ParentConstructorCall:
		return types.VoidT
	case *il.ParentMethodCall:
		return inf.inferParentMethodCall(n)
	case *il.Call:
		return inf.inferCall(n)
	case *il.New:
		return inf.inferNew(n)
	case *il.Binary:
		return inf.inferBinary(n)
	case *il.Logical:
		return inf.inferLogical(n)
	case *il.Unary:
		return inf.inferUnary(n)
	case *il.Update:
		return inf.Infer(n.Operand)
	case *il.Assignment:
		return inf.Infer(n.Target)
	case *il.Conditional:
		return inf.widenOrEqual(inf.Infer(n.Consequent), inf.Infer(n.Alternate))
	case *il.Sequence:
		if len(n.Exprs) == 0 {
			return types.VoidT
		}
		return inf.Infer(n.Exprs[len(n.Exprs)-1])
	case *il.Template:
		return types.StringT
	case *il.Spread:
		return inf.Infer(n.Arg)
	case *il.ArrayLiteral:
		return inf.inferArrayLiteral(n)
	case *il.ObjectLiteral:
		return types.DynamicT
	case *il.ArrowFunction:
		return types.DynamicT
	case *il.Intrinsic:
		return inf.inferIntrinsic(n)
	}
	return types.DynamicT
}

func (inf *Inferer) inferLiteral(n *il.Literal) types.Type {
	switch n.LitKind {
	case il.LiteralBool:
		return types.Bool
	case il.LiteralString:
		return types.StringT
	case il.LiteralNull:
		return types.DynamicT
	case il.LiteralFloat:
		return types.Float64
	case il.LiteralInt, il.LiteralBigInt:
		return smallestSignedForLiteral(n.Raw)
	}
	return types.DynamicT
}

// smallestSignedForLiteral implements §4.5's "integer -> smallest
// signed of {32, 64} that fits (... ties broken by 32-bit)".
func smallestSignedForLiteral(raw string) types.Type {
	if v, err := strconv.ParseInt(raw, 0, 64); err == nil {
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return types.Int32
		}
		return types.Int64
	}
	if u, err := strconv.ParseUint(raw, 0, 64); err == nil {
		if u <= math.MaxInt32 {
			return types.Int32
		}
		return types.Int64
	}
	return types.Int64
}

func (inf *Inferer) inferMember(n *il.Member) types.Type {
	objType := inf.Infer(n.Object)
	if !n.Computed {
		if ident, ok := n.Property.(*il.Identifier); ok {
			if ident.Name == "length" {
				return types.Int32
			}
			if objType.Kind() == types.KindTuple {
				for _, te := range objType.TupleElements() {
					if strings.EqualFold(te.Name, ident.Name) {
						return te.Type
					}
				}
			}
			// Crypto-context default: ".left"/".right" on an
			// otherwise-unresolved object is the encrypt-result shape used
			// throughout the upstream corpus (SPEC_FULL §0).
			if strings.EqualFold(ident.Name, "left") || strings.EqualFold(ident.Name, "right") {
				return types.UInt32
			}
		}
		return types.DynamicT
	}
	switch objType.Kind() {
	case types.KindArray:
		return objType.Elem()
	case types.KindPrimitive:
		if objType.Name() == "string" {
			return types.Char
		}
	}
	return types.DynamicT
}

func (inf *Inferer) inferParentMethodCall(n *il.ParentMethodCall) types.Type {
	cls, ok := inf.Framework.Class(inf.ClassName)
	if !ok || cls.Extends == "" {
		return types.DynamicT
	}
	if sig, ok := inf.Signatures.Lookup(cls.Extends, n.Method); ok {
		return sig.ReturnType
	}
	if sig, ok := inf.Framework.LookupMethod(cls.Extends, n.Method); ok {
		return sig.ReturnType
	}
	return types.DynamicT
}

func (inf *Inferer) inferCall(n *il.Call) types.Type {
	m, ok := n.Callee.(*il.Member)
	if !ok || m.Computed {
		return types.DynamicT
	}
	obj, ok := m.Object.(*il.Identifier)
	if !ok {
		return types.DynamicT
	}
	sel, ok := m.Property.(*il.Identifier)
	if !ok {
		return types.DynamicT
	}
	switch obj.Name {
	case "OpCodes":
		if sig, ok := inf.Framework.LookupOpCode(sel.Name); ok {
			return sig.ReturnType
		}
	case "Array":
		if sel.Name == "isArray" {
			return types.Bool
		}
		if sel.Name == "from" {
			return types.Array(types.DynamicT, false)
		}
	case "String":
		if strings.HasPrefix(sel.Name, "fromCharCode") {
			return types.StringT
		}
	case "Math":
		return inf.inferMathCall(sel.Name, n.Args)
	case "Object":
		switch sel.Name {
		case "keys":
			return types.Array(types.StringT, false)
		case "freeze", "create":
			return types.DynamicT
		}
	}
	return types.DynamicT
}

func (inf *Inferer) inferMathCall(name string, args []il.Expr) types.Type {
	switch name {
	case "sin", "cos", "tan", "random", "sqrt", "log", "exp", "atan2":
		return types.Float64
	}
	if len(args) == 0 {
		return types.Float64
	}
	// "Math methods per type of first argument" (§4.5).
	result := inf.Infer(args[0])
	for _, a := range args[1:] {
		result = inf.widenOrEqual(result, inf.Infer(a))
	}
	return result
}

var typedArrayElem = map[string]types.Type{
	"Uint8Array":         types.Byte,
	"Int8Array":          types.SByte,
	"Uint16Array":        types.UInt16,
	"Int16Array":         types.Int16,
	"Uint32Array":        types.UInt32,
	"Int32Array":         types.Int32,
	"Float32Array":       types.Float32,
	"Float64Array":       types.Float64,
	"Uint8ClampedArray":  types.Byte,
}

func (inf *Inferer) inferNew(n *il.New) types.Type {
	if elem, ok := typedArrayElem[n.Type]; ok {
		return types.Array(elem, false)
	}
	switch n.Type {
	case "ArrayBuffer":
		return types.Array(types.Byte, false)
	case "DataView":
		return types.DynamicT
	case "Map":
		return types.Generic("Dictionary", types.DynamicT, types.DynamicT)
	case "Set":
		return types.Generic("HashSet", types.DynamicT)
	case "Error", "TypeError", "RangeError", "SyntaxError", "ReferenceError":
		return types.Generic(ExceptionClassName(n.Type))
	}
	return types.Generic(n.Type)
}

func ExceptionClassName(jsName string) string {
	switch jsName {
	case "TypeError":
		return "ArgumentException"
	case "RangeError":
		return "ArgumentOutOfRangeException"
	case "SyntaxError":
		return "FormatException"
	case "ReferenceError":
		return "NullReferenceException"
	default:
		return "Exception"
	}
}

func (inf *Inferer) inferBinary(n *il.Binary) types.Type {
	// ">>> 0" is the JS forced-coercion-to-uint32 idiom (§4.1); it is
	// always typed uint32 regardless of the left operand's type.
	if n.Op == ">>>" {
		return types.UInt32
	}
	left, right := inf.Infer(n.Left), inf.Infer(n.Right)
	switch n.Op {
	case "==", "!=", "===", "!==", "<", "<=", ">", ">=":
		return types.Bool
	case "<<", ">>":
		return canonicalShiftResult(left)
	case "+":
		if left.Kind() == types.KindPrimitive && left.Name() == "string" ||
			right.Kind() == types.KindPrimitive && right.Name() == "string" {
			return types.StringT
		}
	}
	return types.Widen(left, right)
}

func canonicalShiftResult(left types.Type) types.Type {
	if left.IsPrimitive() && left.IsIntegral() && left.Width() < 32 {
		return types.Int32
	}
	return left
}

func (inf *Inferer) inferLogical(n *il.Logical) types.Type {
	left, right := inf.Infer(n.Left), inf.Infer(n.Right)
	if isBool(left) && isBool(right) {
		return types.Bool
	}
	// "|| on non-bool reference types -> widened element type (emitted
	// later as null-coalescing)" (§4.5).
	return inf.widenOrEqual(left, right)
}

func isBool(t types.Type) bool {
	return t.Kind() == types.KindPrimitive && t.Name() == "bool"
}

func (inf *Inferer) inferUnary(n *il.Unary) types.Type {
	switch n.Op {
	case "!":
		return types.Bool
	case "typeof":
		return types.StringT
	case "-", "+", "~":
		t := inf.Infer(n.Operand)
		if t.IsPrimitive() && t.IsIntegral() && t.Width() < 32 {
			return types.Int32
		}
		return t
	}
	return inf.Infer(n.Operand)
}

func (inf *Inferer) inferArrayLiteral(n *il.ArrayLiteral) types.Type {
	if len(n.Elements) == 0 {
		// "Empty array literal ... in crypto context with no hint,
		// defaults to byte" (§8, Boundary cases).
		return types.Array(types.Byte, false)
	}
	elem := inf.Infer(n.Elements[0])
	for _, e := range n.Elements[1:] {
		elem = inf.widenOrEqual(elem, inf.Infer(e))
	}
	return types.Array(elem, false)
}

// widenOrEqual returns a directly when a and b are structurally equal
// (avoiding Widen's reference-type fallback to Dynamic for e.g. two
// branches that both produce the same class type), and falls back to
// types.Widen otherwise.
func (inf *Inferer) widenOrEqual(a, b types.Type) types.Type {
	if types.Equal(a, b) {
		return a
	}
	return types.Widen(a, b)
}

var unsignedOfWidth = map[int]types.Type{
	8:  types.Byte,
	16: types.UInt16,
	32: types.UInt32,
	64: types.UInt64,
}

func PrimitiveForBits(bits int, signed bool) types.Type {
	switch {
	case bits <= 8:
		if signed {
			return types.SByte
		}
		return types.Byte
	case bits <= 16:
		if signed {
			return types.Int16
		}
		return types.UInt16
	case bits <= 32:
		if signed {
			return types.Int32
		}
		return types.UInt32
	default:
		if signed {
			return types.Int64
		}
		return types.UInt64
	}
}

// inferIntrinsic types every IL-lowered primitive (§3, §4.7). Most
// rules here mirror a single bullet of §4.7; where §4.7 only specifies
// the emitted Target code and not its type, the type follows directly
// from the emitted expression's shape (e.g. ArrayIndexOf always emits
// an int-returning call).
func (inf *Inferer) inferIntrinsic(n *il.Intrinsic) types.Type {
	switch n.Op {
	case il.OpRotateLeft, il.OpRotateRight:
		if t, ok := unsignedOfWidth[n.Bits]; ok {
			return t
		}
		return types.UInt32
	case il.OpPackBytes:
		if t, ok := unsignedOfWidth[n.Bits]; ok {
			return t
		}
		return types.UInt32
	case il.OpUnpackBytes:
		return types.Array(types.Byte, false)
	case il.OpCast, il.OpBigIntCast:
		return PrimitiveForBits(n.Bits, n.Signed)

	case il.OpArrayLength:
		return types.Int32
	case il.OpArrayIndexOf, il.OpArrayFindIndex:
		return types.Int32
	case il.OpArrayIncludes, il.OpArrayEvery, il.OpArraySome, il.OpArrayXor:
		return types.Bool
	case il.OpArrayJoin:
		return types.StringT
	case il.OpArrayAppend, il.OpArrayConcat, il.OpArraySlice, il.OpArrayFilter,
		il.OpArrayReverse, il.OpArraySort, il.OpArraySplice, il.OpArrayFrom:
		if len(n.Args) > 0 {
			return inf.Infer(n.Args[0])
		}
		return types.Array(elementHint(n), false)
	case il.OpArrayFill, il.OpArrayClear, il.OpArrayForEach, il.OpTypedArraySet, il.OpDataViewWrite, il.OpDebugOutput:
		return types.VoidT
	case il.OpArrayMap, il.OpArrayReduce, il.OpArrayFind:
		return types.DynamicT
	case il.OpArrayPop, il.OpArrayShift:
		if len(n.Args) > 0 {
			elemOf := inf.Infer(n.Args[0])
			if elemOf.Kind() == types.KindArray {
				return elemOf.Elem()
			}
		}
		return types.DynamicT
	case il.OpArrayCreation:
		return types.Array(elementHint(n), false)

	case il.OpTypedArrayCreation:
		return types.Array(PrimitiveForBits(n.Bits, n.Signed), false)
	case il.OpTypedArraySubarray:
		if len(n.Args) > 0 {
			return inf.Infer(n.Args[0])
		}
		return types.Array(types.Byte, false)
	case il.OpByteBufferView:
		return types.Array(types.Byte, false)

	case il.OpHexEncode, il.OpBytesToString, il.OpCharAt, il.OpSubstring,
		il.OpStringReplace, il.OpStringFromCharCodes, il.OpStringInterpolation:
		return types.StringT
	case il.OpHexDecode, il.OpStringToBytes:
		return types.Array(types.Byte, false)
	case il.OpCharCodeAt, il.OpStringCompare:
		return types.Int32
	case il.OpStringSplit:
		return types.Array(types.StringT, false)

	case il.OpMapCreation:
		return types.Generic("Dictionary", types.DynamicT, types.DynamicT)
	case il.OpMapGet:
		return types.DynamicT
	case il.OpMapSet:
		return types.VoidT
	case il.OpMapHas, il.OpMapDelete:
		return types.Bool
	case il.OpSetCreation:
		return types.Generic("HashSet", types.DynamicT)

	case il.OpObjectKeys:
		return types.Array(types.StringT, false)
	case il.OpObjectValues, il.OpObjectEntries:
		return types.Array(types.DynamicT, false)
	case il.OpObjectCreate, il.OpObjectFreeze:
		return types.DynamicT

	case il.OpFloor, il.OpCeil, il.OpAbs, il.OpRound, il.OpTrunc, il.OpSign:
		if len(n.Args) > 0 {
			return inf.Infer(n.Args[0])
		}
		return types.Float64
	case il.OpMin, il.OpMax, il.OpPow:
		if len(n.Args) == 0 {
			return types.Float64
		}
		result := inf.Infer(n.Args[0])
		for _, a := range n.Args[1:] {
			result = inf.widenOrEqual(result, inf.Infer(a))
		}
		return result
	case il.OpSin, il.OpCos, il.OpMathConstant, il.OpNumberConstant, il.OpRandom:
		return types.Float64
	case il.OpClz32, il.OpImul:
		return types.Int32

	case il.OpIsArrayCheck, il.OpIsFinite, il.OpIsNaN, il.OpIsInteger, il.OpInstanceOfCheck:
		return types.Bool

	case il.OpDataViewRead:
		return PrimitiveForBits(n.Bits, n.Signed)
	case il.OpErrorCreation:
		return types.Generic(ExceptionClassName(n.Name))
	case il.OpTypeOfExpression:
		return types.StringT
	case il.OpDestructuringAssignment:
		return types.VarT
	case il.OpCodesCall:
		if sig, ok := inf.Framework.LookupOpCode(n.Name); ok {
			return sig.ReturnType
		}
		return types.DynamicT
	}
	return types.DynamicT
}

// elementHint parses an ArrayCreation/ArrayFrom node's declared element
// type, falling back to the crypto-context default (GLOSSARY).
func elementHint(n *il.Intrinsic) types.Type {
	switch strings.ToLower(n.ElementTypeHint) {
	case "byte":
		return types.Byte
	case "sbyte":
		return types.SByte
	case "short":
		return types.Int16
	case "ushort":
		return types.UInt16
	case "int":
		return types.Int32
	case "uint":
		return types.UInt32
	case "long":
		return types.Int64
	case "ulong":
		return types.UInt64
	case "float":
		return types.Float32
	case "double":
		return types.Float64
	case "string":
		return types.StringT
	case "bool":
		return types.Bool
	case "char":
		return types.Char
	default:
		return types.UInt32
	}
}

// NameHeuristic implements §4.5's final fallback rule, applied only
// when no stronger signal (scope, signature, framework table) resolved
// a type.
func NameHeuristic(name string) types.Type {
	lower := strings.ToLower(name)

	for _, scalar := range []string{"i", "j", "n", "index", "position", "length", "count", "size"} {
		if lower == scalar {
			return types.Int32
		}
	}
	for _, suffix := range []string{"sbox", "pbox"} {
		if strings.Contains(lower, suffix) {
			return types.Array(types.UInt32, false)
		}
	}
	if strings.HasSuffix(lower, "_init") {
		return types.Array(types.UInt32, false)
	}
	for _, needle := range []string{
		"key", "data", "input", "output", "block", "bytes", "buffer",
		"counter", "nonce", "iv", "tag", "digest", "ciphertext", "plaintext",
	} {
		if strings.Contains(lower, needle) {
			return types.Array(types.Byte, false)
		}
	}
	// Crypto-context default (GLOSSARY): unsigned 32-bit when nothing
	// else signals a type. This also covers the ambiguous single-letter
	// names noted as an open question in spec.md §9 (see DESIGN.md).
	return types.UInt32
}
