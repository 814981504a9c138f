// Package types implements the Type Registry (spec §4.1): the closed
// Target-type sum type plus the numeric-promotion, narrowing, and
// default-value rules the transformer needs to emit a correctly typed
// C# AST.
package types

import "fmt"

// Kind tags the closed Type sum type (§3, "Target type").
type Kind int

const (
	KindPrimitive Kind = iota
	KindArray
	KindTuple
	KindGeneric
	KindNullable
	KindDynamic
	KindVoid
	KindVar
)

// TupleElement is one named, typed slot of a Tuple type.
type TupleElement struct {
	Name string
	Type Type
}

// Type is the closed Target-type sum type. Exactly one of the payload
// fields is meaningful, selected by Kind; the zero Type (Kind ==
// KindPrimitive with an empty Name) is never constructed by this
// package's helpers and should not be treated as a valid value.
type Type struct {
	kind Kind

	// Primitive payload.
	name     string
	width    int
	signed   bool
	isFloat  bool

	// Array payload.
	elem   *Type
	jagged bool

	// Tuple payload.
	tupleElems []TupleElement

	// Generic payload.
	genArgs []Type
}

func (t Type) Kind() Kind { return t.kind }

// Primitive constructs an integer or float primitive type. width is in
// bits (8/16/32/64); signed is ignored for floats.
func Primitive(name string, width int, signed, isFloat bool) Type {
	return Type{kind: KindPrimitive, name: name, width: width, signed: signed, isFloat: isFloat}
}

var (
	Bool    = Type{kind: KindPrimitive, name: "bool", width: 1}
	Char    = Type{kind: KindPrimitive, name: "char", width: 16, signed: false}
	StringT = Type{kind: KindPrimitive, name: "string", width: 0}
	SByte   = Primitive("sbyte", 8, true, false)
	Byte    = Primitive("byte", 8, false, false)
	Int16   = Primitive("short", 16, true, false)
	UInt16  = Primitive("ushort", 16, false, false)
	Int32   = Primitive("int", 32, true, false)
	UInt32  = Primitive("uint", 32, false, false)
	Int64   = Primitive("long", 64, true, false)
	UInt64  = Primitive("ulong", 64, false, false)
	Float32 = Primitive("float", 32, false, true)
	Float64 = Primitive("double", 64, false, true)
)

// Array constructs an array type. jagged marks an array-of-arrays ("T[][]")
// as opposed to a flat "T[]".
func Array(elem Type, jagged bool) Type {
	e := elem
	return Type{kind: KindArray, elem: &e, jagged: jagged}
}

// Elem returns the element type of an Array type.
func (t Type) Elem() Type {
	if t.kind != KindArray || t.elem == nil {
		panic("types: Elem called on non-array type")
	}
	return *t.elem
}

// Jagged reports whether an Array type is an array-of-arrays.
func (t Type) Jagged() bool { return t.kind == KindArray && t.jagged }

// Tuple constructs a tuple type from named, typed elements.
func Tuple(elems ...TupleElement) Type {
	return Type{kind: KindTuple, tupleElems: elems}
}

// TupleElements returns the elements of a Tuple type.
func (t Type) TupleElements() []TupleElement {
	if t.kind != KindTuple {
		panic("types: TupleElements called on non-tuple type")
	}
	return t.tupleElems
}

// Generic constructs a named generic instantiation, e.g. List<T>.
func Generic(name string, args ...Type) Type {
	return Type{kind: KindGeneric, name: name, genArgs: args}
}

// GenericArgs returns the type arguments of a Generic type.
func (t Type) GenericArgs() []Type {
	if t.kind != KindGeneric {
		panic("types: GenericArgs called on non-generic type")
	}
	return t.genArgs
}

// Nullable wraps inner as a nullable reference or value type.
func Nullable(inner Type) Type {
	i := inner
	return Type{kind: KindNullable, elem: &i}
}

// Inner returns the wrapped type of a Nullable type.
func (t Type) Inner() Type {
	if t.kind != KindNullable || t.elem == nil {
		panic("types: Inner called on non-nullable type")
	}
	return *t.elem
}

var (
	DynamicT = Type{kind: KindDynamic}
	VoidT    = Type{kind: KindVoid}
	VarT     = Type{kind: KindVar}
)

// Name returns a primitive or generic type's declared name.
func (t Type) Name() string { return t.name }

// IsPrimitive reports whether t is a Primitive.
func (t Type) IsPrimitive() bool { return t.kind == KindPrimitive }

// IsIntegral reports whether t is a non-float Primitive.
func (t Type) IsIntegral() bool { return t.kind == KindPrimitive && !t.isFloat && t.name != "bool" && t.name != "char" }

// IsFloat reports whether t is a floating-point Primitive.
func (t Type) IsFloat() bool { return t.kind == KindPrimitive && t.isFloat }

// Width returns the bit width of a Primitive type, or 0 if not primitive.
func (t Type) Width() int { return t.width }

// Signed reports the signedness of a Primitive type.
func (t Type) Signed() bool { return t.signed }

// Equal reports deep structural equality, used for override-signature
// matching (§6, Stability contracts) and the CS0136 uniqueness checks.
func Equal(a, b Type) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindPrimitive:
		return a.name == b.name && a.width == b.width && a.signed == b.signed && a.isFloat == b.isFloat
	case KindArray:
		return a.jagged == b.jagged && Equal(*a.elem, *b.elem)
	case KindTuple:
		if len(a.tupleElems) != len(b.tupleElems) {
			return false
		}
		for i := range a.tupleElems {
			if a.tupleElems[i].Name != b.tupleElems[i].Name || !Equal(a.tupleElems[i].Type, b.tupleElems[i].Type) {
				return false
			}
		}
		return true
	case KindGeneric:
		if a.name != b.name || len(a.genArgs) != len(b.genArgs) {
			return false
		}
		for i := range a.genArgs {
			if !Equal(a.genArgs[i], b.genArgs[i]) {
				return false
			}
		}
		return true
	case KindNullable:
		return Equal(*a.elem, *b.elem)
	default: // Dynamic, Void, Var
		return true
	}
}

// String renders a Type the way it would appear in emitted C# source,
// used for diagnostics and test assertions.
func (t Type) String() string {
	switch t.kind {
	case KindPrimitive:
		return t.name
	case KindArray:
		if t.jagged {
			return t.elem.String() + "[][]"
		}
		return t.elem.String() + "[]"
	case KindTuple:
		s := "("
		for i, e := range t.tupleElems {
			if i > 0 {
				s += ", "
			}
			s += fmt.Sprintf("%s %s", e.Type.String(), e.Name)
		}
		return s + ")"
	case KindGeneric:
		s := t.name + "<"
		for i, a := range t.genArgs {
			if i > 0 {
				s += ", "
			}
			s += a.String()
		}
		return s + ">"
	case KindNullable:
		return t.elem.String() + "?"
	case KindDynamic:
		return "dynamic"
	case KindVoid:
		return "void"
	case KindVar:
		return "var"
	}
	return "<invalid>"
}
