package il

// Op enumerates every IL-lowered primitive operation (§3, "IL-lowered
// primitives"). It is itself the closed sum type backing Intrinsic:
// Node Transformers switch over Op (see transform/intrinsic.go), and any
// Op without its own case there, whether listed here or not, falls
// through to an "unhandled node" diagnostic rather than a silent no-op
// (DESIGN NOTES, "Untyped tagged trees").
type Op string

const (
	OpRotateLeft  Op = "RotateLeft"
	OpRotateRight Op = "RotateRight"
	OpPackBytes   Op = "PackBytes"
	OpUnpackBytes Op = "UnpackBytes"
	OpCast        Op = "Cast"
	OpBigIntCast  Op = "BigIntCast"

	OpArrayLength    Op = "ArrayLength"
	OpArrayAppend    Op = "ArrayAppend"
	OpArraySlice     Op = "ArraySlice"
	OpArrayFill      Op = "ArrayFill"
	OpArrayXor       Op = "ArrayXor"
	OpArrayClear     Op = "ArrayClear"
	OpArrayIndexOf   Op = "ArrayIndexOf"
	OpArrayIncludes  Op = "ArrayIncludes"
	OpArrayConcat    Op = "ArrayConcat"
	OpArrayJoin      Op = "ArrayJoin"
	OpArrayReverse   Op = "ArrayReverse"
	OpArrayReduce    Op = "ArrayReduce"
	OpArrayMap       Op = "ArrayMap"
	OpArrayFilter    Op = "ArrayFilter"
	OpArrayForEach   Op = "ArrayForEach"
	OpArrayFind      Op = "ArrayFind"
	OpArrayFindIndex Op = "ArrayFindIndex"
	OpArrayEvery     Op = "ArrayEvery"
	OpArraySome      Op = "ArraySome"
	OpArraySort      Op = "ArraySort"
	OpArrayPop       Op = "ArrayPop"
	OpArrayShift     Op = "ArrayShift"
	OpArrayCreation  Op = "ArrayCreation"
	OpArraySplice    Op = "ArraySplice"

	OpTypedArrayCreation Op = "TypedArrayCreation"
	OpTypedArraySet      Op = "TypedArraySet"
	OpTypedArraySubarray Op = "TypedArraySubarray"
	OpByteBufferView     Op = "ByteBufferView"

	OpHexEncode      Op = "HexEncode"
	OpHexDecode      Op = "HexDecode"
	OpStringToBytes  Op = "StringToBytes"
	OpBytesToString  Op = "BytesToString"
	OpCharCodeAt     Op = "CharCodeAt"
	OpCharAt         Op = "CharAt"
	OpSubstring      Op = "Substring"
	OpStringReplace  Op = "StringReplace"
	OpStringSplit    Op = "StringSplit"
	OpStringCompare  Op = "StringCompare"
	OpStringFromCharCodes Op = "StringFromCharCodes"
	OpStringInterpolation Op = "StringInterpolation"

	OpMapCreation Op = "MapCreation"
	OpMapGet      Op = "MapGet"
	OpMapSet      Op = "MapSet"
	OpMapHas      Op = "MapHas"
	OpMapDelete   Op = "MapDelete"
	OpSetCreation Op = "SetCreation"

	OpObjectKeys    Op = "ObjectKeys"
	OpObjectValues  Op = "ObjectValues"
	OpObjectEntries Op = "ObjectEntries"
	OpObjectCreate  Op = "ObjectCreate"
	OpObjectFreeze  Op = "ObjectFreeze"

	OpFloor         Op = "Floor"
	OpCeil          Op = "Ceil"
	OpAbs           Op = "Abs"
	OpMin           Op = "Min"
	OpMax           Op = "Max"
	OpPow           Op = "Pow"
	OpRound         Op = "Round"
	OpTrunc         Op = "Trunc"
	OpSign          Op = "Sign"
	OpSin           Op = "Sin"
	OpCos           Op = "Cos"
	OpMathConstant  Op = "MathConstant"
	OpNumberConstant Op = "NumberConstant"
	OpRandom        Op = "Random"
	OpClz32         Op = "Clz32"
	OpImul          Op = "Imul"

	OpIsArrayCheck Op = "IsArrayCheck"
	OpIsFinite     Op = "IsFinite"
	OpIsNaN        Op = "IsNaN"
	OpIsInteger    Op = "IsInteger"
	OpArrayFrom    Op = "ArrayFrom"

	OpDataViewRead  Op = "DataViewRead"
	OpDataViewWrite Op = "DataViewWrite"
	OpDebugOutput   Op = "DebugOutput"
	OpErrorCreation Op = "ErrorCreation"
	OpInstanceOfCheck Op = "InstanceOfCheck"
	OpTypeOfExpression Op = "TypeOfExpression"

	OpDestructuringAssignment Op = "DestructuringAssignment"

	// OpCodesCall is the generic escape hatch for framework helper calls
	// that don't warrant their own Op (GLOSSARY, "OpCodes").
	OpCodesCall Op = "OpCodesCall"
)

// Intrinsic is the single node shape shared by every IL-lowered
// primitive. Rather than one Go struct per Op (which would mean ~60
// structurally identical types: an operation tag, an argument list, and
// a handful of operation-specific scalars), every primitive is
// represented uniformly and dispatched on Op - the same way a small
// instruction-set IR typically represents its opcode table. Closedness
// is preserved at the Op level: see the comment on Op.
type Intrinsic struct {
	exprBase
	Op   Op
	Args []Expr

	// Bits is the bit width for RotateLeft/Right, PackBytes/UnpackBytes,
	// Cast, and the typed-array family. Zero means "unspecified".
	Bits int
	// Signed distinguishes signed/unsigned for Cast and TypedArrayCreation.
	Signed bool
	// Endian is "LE" or "BE" for PackBytes/UnpackBytes/DataView ops.
	Endian string
	// Name carries an operation-specific identifier: the method name for
	// OpCodesCall, the constant name for MathConstant/NumberConstant, the
	// framework record type for object-literal rewriting, etc.
	Name string
	// ElementTypeHint is the declared element type for ArrayCreation and
	// TypedArrayCreation, when known from the surrounding declaration.
	ElementTypeHint string
}

func (*Intrinsic) Kind() Kind { return KindIntrinsic }
