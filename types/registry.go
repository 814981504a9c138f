package types

// canonicalInt promotes any integral type narrower than 32 bits to the
// target's canonical 32-bit signed representation, per §4.1: "Small
// integer types (8/16-bit signed or unsigned) promote to the target's
// canonical 32-bit signed for arithmetic/bitwise/shift."
func canonicalInt(t Type) Type {
	if t.IsIntegral() && t.width < 32 {
		return Int32
	}
	return t
}

// Widen computes the result type of a binary arithmetic or bitwise
// expression over a and b, applying the numeric-promotion table in
// §4.1. Widen is commutative: Widen(a, b) == Widen(b, a) (§8).
func Widen(a, b Type) Type {
	if a.kind == KindDynamic || b.kind == KindDynamic {
		return DynamicT
	}
	if a.kind == KindPrimitive && a.name == "string" || b.kind == KindPrimitive && b.name == "string" {
		// "String + anything -> string" (§4.1).
		return StringT
	}
	if a.kind == KindPrimitive && a.name == "bool" && b.kind == KindPrimitive && b.name == "bool" {
		return Bool
	}

	pa, pb := canonicalInt(a), canonicalInt(b)

	if pa.IsFloat() || pb.IsFloat() {
		if pa.width >= 64 || pb.width >= 64 {
			return Float64
		}
		return Float32
	}

	if !pa.IsIntegral() || !pb.IsIntegral() {
		// Non-numeric operands (reference types, tuples, ...) have no
		// promotion rule; the caller is expected to have special-cased
		// these (e.g. string concatenation, logical OR on references).
		return DynamicT
	}

	if pa.width == pb.width {
		if pa.signed == pb.signed {
			return widthSignedType(pa.width, pa.signed)
		}
		// "Mixed same-width signed+unsigned promotes to the next-wider
		// signed (e.g. uint ⊕ int -> long)."
		next := pa.width * 2
		if next > 64 {
			next = 64
		}
		return widthSignedType(next, true)
	}

	if pa.width > pb.width {
		return widthSignedType(pa.width, pa.signed)
	}
	return widthSignedType(pb.width, pb.signed)
}

func widthSignedType(width int, signed bool) Type {
	switch {
	case width <= 8:
		if signed {
			return SByte
		}
		return Byte
	case width <= 16:
		if signed {
			return Int16
		}
		return UInt16
	case width <= 32:
		if signed {
			return Int32
		}
		return UInt32
	default:
		if signed {
			return Int64
		}
		return UInt64
	}
}

// NeedsNarrow reports whether converting a value of type from into type
// to requires an explicit narrowing cast in emitted C#: §4.1's
// narrowing table is exactly "every int-family source whose width
// exceeds the destination, plus every signed/unsigned pair of equal
// width"; every other integral/float conversion is implicit.
func NeedsNarrow(from, to Type) bool {
	if from.kind != KindPrimitive || to.kind != KindPrimitive {
		return false
	}
	if from.name == "bool" || to.name == "bool" || from.name == "string" || to.name == "string" {
		return false
	}
	if from.width > to.width {
		return true
	}
	if from.width == to.width && from.signed != to.signed {
		return true
	}
	return false
}

// NeedsCastAtCall applies the same rule as NeedsNarrow to an argument
// being passed across a call boundary (§4.1's registry surface
// distinguishes the two call sites; the underlying rule is identical).
func NeedsCastAtCall(from, to Type) bool {
	return NeedsNarrow(from, to)
}

// DefaultLiteralText returns the C# literal text for the zero value of
// t, used by the transformer to build target.Literal nodes without
// types depending on the target package (which itself depends on types
// for type-tagged nodes).
func DefaultLiteralText(t Type) string {
	switch t.kind {
	case KindPrimitive:
		switch t.name {
		case "bool":
			return "false"
		case "string":
			return "null"
		case "char":
			return "'\\0'"
		}
		if t.IsFloat() {
			if t.width >= 64 {
				return "0.0"
			}
			return "0.0f"
		}
		switch {
		case t.width == 64 && !t.signed:
			return "0ul"
		case t.width == 64:
			return "0l"
		case !t.signed:
			return "0u"
		default:
			return "0"
		}
	case KindArray, KindGeneric, KindNullable, KindDynamic:
		return "null"
	case KindTuple:
		return "default"
	default:
		return "default"
	}
}
