package transform

import (
	"fmt"

	"github.com/hawkynt/il2cs/il"
	"github.com/hawkynt/il2cs/infer"
	"github.com/hawkynt/il2cs/target"
	"github.com/hawkynt/il2cs/types"
)

// opCodesCall builds a call to the generated OpCodes helper class,
// looking up its signature in the Framework Knowledge Base so the call
// expression carries the right return type even when the method is a
// user-supplied override (SPEC_FULL, "OpCodes").
func (c *methodCtx) opCodesCall(name string, args []target.Expr, fallback types.Type) target.Expr {
	rt := fallback
	if sig, ok := c.kb.LookupOpCode(name); ok {
		rt = sig.ReturnType
	} else {
		c.warn(DiagUnknownOpCode, "Intrinsic", fmt.Sprintf("OpCodes.%s has no known signature, assuming %s", name, fallback.String()))
	}
	fun := target.NewMember(target.NewIdent("OpCodes", types.DynamicT), name, rt)
	return target.NewCall(fun, args, rt)
}

// rotateArgs casts the rotated value to the unsigned primitive matching
// n.Bits (§4.7, "RotateLeft/Right") so the emitted call reads
// "OpCodes.RotL32((uint)v, 7)" rather than relying on an implicit
// conversion C# doesn't perform.
func (c *methodCtx) rotateArgs(n *il.Intrinsic, args []target.Expr) []target.Expr {
	out := make([]target.Expr, len(args))
	out[0] = target.NewCast(args[0], infer.PrimitiveForBits(n.Bits, false))
	copy(out[1:], args[1:])
	return out
}

// packBytesArgs builds PackBytes's argument list directly from the IL
// args instead of going through exprList, so a spread argument expands
// to n.Bits/8 indexed byte accesses instead of being passed through
// unexpanded, and every byte argument is cast to byte (§4.7, "PackBytes").
func (c *methodCtx) packBytesArgs(n *il.Intrinsic) []target.Expr {
	count := n.Bits / 8
	out := make([]target.Expr, 0, len(n.Args))
	for _, a := range n.Args {
		if sp, ok := a.(*il.Spread); ok {
			arr := c.expr(sp.Arg)
			for i := 0; i < count; i++ {
				idx := target.NewIndex(arr, target.NewLiteral(fmt.Sprintf("%d", i), types.Int32), types.Byte)
				out = append(out, target.NewCast(idx, types.Byte))
			}
			continue
		}
		out = append(out, target.NewCast(c.expr(a), types.Byte))
	}
	return out
}

// sliceArrayCall emits a call to the SliceArray runtime helper (§4.7,
// "Array slice"): the helper itself resolves negative indices and a
// missing end bound, so the transform only has to supply a default end
// of a.Length when the IL omitted it.
func (c *methodCtx) sliceArrayCall(args []target.Expr, t types.Type) target.Expr {
	arr := args[0]
	end := target.Expr(target.NewMember(arr, "Length", types.Int32))
	if len(args) >= 3 {
		end = args[2]
	}
	start := target.Expr(target.NewLiteral("0", types.Int32))
	if len(args) >= 2 {
		start = args[1]
	}
	fun := target.NewIdent("SliceArray", types.DynamicT)
	return target.NewCall(fun, []target.Expr{arr, start, end}, t)
}

// arrayAppendAssign lowers "a.push(x)"/"a.push(...b)" to the statement
// form §4.7 and §8 require: "a = a.Append(x).ToArray()" or, for a
// spread argument, "a = a.Concat(b).ToArray()". C# arrays have no Add
// method, so this can never be an in-place expression rewrite.
func (c *methodCtx) arrayAppendAssign(n *il.Intrinsic) target.Stmt {
	arr := c.expr(n.Args[0])
	elemT := arr.Type().Elem()
	chain := arr
	for _, a := range n.Args[1:] {
		if sp, ok := a.(*il.Spread); ok {
			val := c.expr(sp.Arg)
			fun := target.NewMember(chain, "Concat", arr.Type())
			chain = target.NewCall(fun, []target.Expr{val}, arr.Type())
			continue
		}
		val := c.expr(a)
		if needsNarrowAt(val.Type(), elemT) {
			val = target.NewCast(val, elemT)
		}
		fun := target.NewMember(chain, "Append", arr.Type())
		chain = target.NewCall(fun, []target.Expr{val}, arr.Type())
	}
	toArray := target.NewCall(target.NewMember(chain, "ToArray", arr.Type()), nil, arr.Type())
	return &target.ExprStmt{X: target.NewAssign("=", arr, toArray)}
}

// intrinsic dispatches one IL-lowered primitive (§4.7). Ops not listed
// here fall through to the generic unhandled-node diagnostic: adding a
// transformer for a new Op is always a visible addition to this switch.
func (c *methodCtx) intrinsic(n *il.Intrinsic) target.Expr {
	t := c.inf.Infer(n)
	args := c.exprList(n.Args)

	switch n.Op {
	case il.OpRotateLeft:
		return c.opCodesCall(fmt.Sprintf("RotL%d", n.Bits), c.rotateArgs(n, args), t)
	case il.OpRotateRight:
		return c.opCodesCall(fmt.Sprintf("RotR%d", n.Bits), c.rotateArgs(n, args), t)
	case il.OpPackBytes:
		return c.opCodesCall(fmt.Sprintf("Pack%d%s", n.Bits, n.Endian), c.packBytesArgs(n), t)
	case il.OpUnpackBytes:
		return c.opCodesCall(fmt.Sprintf("Unpack%d%s", n.Bits, n.Endian), args, t)
	case il.OpCast, il.OpBigIntCast:
		if len(args) != 1 {
			return c.unhandledExpr("Intrinsic:Cast", t)
		}
		return target.NewCast(args[0], t)

	case il.OpArrayLength:
		return target.NewMember(args[0], "Length", types.Int32)
	case il.OpArrayAppend:
		// The real rewrite is statement-level (§4.7, "Array push"): stmt.go
		// intercepts the enclosing ExprStmt before intrinsic() is reached.
		// Reaching this case means push occurred outside statement position,
		// which has no expression-level C# array equivalent.
		c.warn(DiagCryptoFallback, "Intrinsic", "Array.push used outside statement position has no expression-level equivalent")
		return c.unhandledExpr("Intrinsic:ArrayAppend", t)
	case il.OpArraySlice, il.OpTypedArraySubarray:
		return c.sliceArrayCall(args, t)
	case il.OpArrayFill:
		return c.opCodesCall("ArrayFill", args, types.VoidT)
	case il.OpArrayXor:
		return c.opCodesCall("ArrayXor", args, t)
	case il.OpArrayClear:
		fun := target.NewMember(target.NewIdent("Array", types.DynamicT), "Clear", types.VoidT)
		full := []target.Expr{args[0], target.NewLiteral("0", types.Int32), target.NewMember(args[0], "Length", types.Int32)}
		return target.NewCall(fun, full, types.VoidT)
	case il.OpArrayIndexOf:
		fun := target.NewMember(target.NewIdent("Array", types.DynamicT), "IndexOf", types.Int32)
		return target.NewCall(fun, args, types.Int32)
	case il.OpArrayIncludes:
		fun := target.NewMember(args[0], "Contains", types.Bool)
		return target.NewCall(fun, args[1:], types.Bool)
	case il.OpArrayConcat:
		fun := target.NewMember(target.NewIdent("Enumerable", types.DynamicT), "Concat", t)
		return target.NewCall(fun, args, t)
	case il.OpArrayJoin:
		fun := target.NewMember(target.NewIdent("string", types.DynamicT), "Join", types.StringT)
		joinArgs := append([]target.Expr{args[1]}, args[0])
		return target.NewCall(fun, joinArgs, types.StringT)
	case il.OpArrayReverse:
		fun := target.NewMember(target.NewIdent("Enumerable", types.DynamicT), "Reverse", t)
		return target.NewCall(fun, args, t)
	case il.OpArrayPop:
		c.warn(DiagCryptoFallback, "Intrinsic", "Array.pop has no direct fixed-array equivalent; emitted as a diagnostic placeholder")
		return c.unhandledExpr("Intrinsic:ArrayPop", t)
	case il.OpArrayCreation, il.OpTypedArrayCreation:
		elem := elementHintFromIntrinsic(n)
		return target.NewArrayCreation(types.Array(elem, false), args, nil)

	case il.OpHexEncode:
		fun := target.NewMember(target.NewIdent("Convert", types.DynamicT), "ToHexString", types.StringT)
		return target.NewCall(fun, args, types.StringT)
	case il.OpHexDecode:
		fun := target.NewMember(target.NewIdent("Convert", types.DynamicT), "FromHexString", types.Array(types.Byte, false))
		return target.NewCall(fun, args, types.Array(types.Byte, false))
	case il.OpStringToBytes:
		fun := target.NewMember(target.NewMember(target.NewIdent("Encoding", types.DynamicT), "UTF8", types.DynamicT), "GetBytes", types.Array(types.Byte, false))
		return target.NewCall(fun, args, types.Array(types.Byte, false))
	case il.OpBytesToString:
		fun := target.NewMember(target.NewMember(target.NewIdent("Encoding", types.DynamicT), "UTF8", types.DynamicT), "GetString", types.StringT)
		return target.NewCall(fun, args, types.StringT)
	case il.OpCharCodeAt:
		return target.NewCast(target.NewIndex(args[0], args[1], types.Char), types.Int32)
	case il.OpCharAt:
		return target.NewIndex(args[0], args[1], types.Char)
	case il.OpSubstring:
		fun := target.NewMember(args[0], "Substring", types.StringT)
		return target.NewCall(fun, args[1:], types.StringT)
	case il.OpStringReplace:
		fun := target.NewMember(args[0], "Replace", types.StringT)
		return target.NewCall(fun, args[1:], types.StringT)
	case il.OpStringSplit:
		fun := target.NewMember(args[0], "Split", types.Array(types.StringT, false))
		return target.NewCall(fun, args[1:], types.Array(types.StringT, false))
	case il.OpStringCompare:
		fun := target.NewMember(target.NewIdent("string", types.DynamicT), "CompareOrdinal", types.Int32)
		return target.NewCall(fun, args, types.Int32)
	case il.OpStringFromCharCodes:
		fun := target.NewMember(target.NewIdent("string", types.DynamicT), "Concat", types.StringT)
		return target.NewCall(fun, args, types.StringT)

	case il.OpFloor, il.OpCeil, il.OpAbs, il.OpRound, il.OpTrunc, il.OpSign, il.OpSin, il.OpCos, il.OpPow:
		fun := target.NewMember(target.NewIdent("Math", types.DynamicT), ToPascalCase(string(n.Op)), t)
		return target.NewCall(fun, args, t)
	case il.OpMin, il.OpMax:
		fun := target.NewMember(target.NewIdent("Math", types.DynamicT), ToPascalCase(string(n.Op)), t)
		return target.NewCall(fun, args, t)
	case il.OpClz32:
		return c.opCodesCall("Clz32", args, types.Int32)
	case il.OpImul:
		return target.NewCast(target.NewBinary("*", args[0], args[1], types.Int64), types.Int32)

	case il.OpIsArrayCheck:
		return target.NewBinary("is", args[0], target.NewIdent("Array", types.DynamicT), types.Bool)
	case il.OpIsFinite:
		fun := target.NewMember(target.NewIdent("double", types.DynamicT), "IsFinite", types.Bool)
		return target.NewCall(fun, args, types.Bool)
	case il.OpIsNaN:
		fun := target.NewMember(target.NewIdent("double", types.DynamicT), "IsNaN", types.Bool)
		return target.NewCall(fun, args, types.Bool)

	case il.OpErrorCreation:
		return target.NewObjectCreation(types.Generic(n.Name), args)
	case il.OpInstanceOfCheck:
		return target.NewBinary("is", args[0], target.NewIdent(n.Name, types.DynamicT), types.Bool)
	case il.OpTypeOfExpression:
		return target.NewMember(target.NewCall(target.NewMember(args[0], "GetType", types.DynamicT), nil, types.DynamicT), "Name", types.StringT)

	case il.OpObjectKeys:
		fun := target.NewMember(args[0], "Keys", t)
		return fun
	case il.OpObjectValues:
		fun := target.NewMember(args[0], "Values", t)
		return fun

	case il.OpCodesCall:
		return c.opCodesCall(n.Name, args, t)

	default:
		return c.unhandledExpr("Intrinsic:"+string(n.Op), t)
	}
}

func elementHintFromIntrinsic(n *il.Intrinsic) types.Type {
	if n.ElementTypeHint == "" {
		return types.UInt32
	}
	switch n.ElementTypeHint {
	case "byte", "uint8":
		return types.Byte
	case "sbyte", "int8":
		return types.SByte
	case "ushort", "uint16":
		return types.UInt16
	case "short", "int16":
		return types.Int16
	case "uint", "uint32":
		return types.UInt32
	case "int", "int32":
		return types.Int32
	case "ulong", "uint64":
		return types.UInt64
	case "long", "int64":
		return types.Int64
	case "float":
		return types.Float32
	case "double":
		return types.Float64
	default:
		return types.UInt32
	}
}
