package types

import "testing"

func TestWidenCommutative(t *testing.T) {
	pairs := []struct{ a, b Type }{
		{Int32, UInt32},
		{Byte, Byte},
		{Int64, UInt32},
		{Float32, Int32},
		{StringT, Int32},
	}
	for _, p := range pairs {
		ab := Widen(p.a, p.b)
		ba := Widen(p.b, p.a)
		if !Equal(ab, ba) {
			t.Errorf("Widen(%v, %v) = %v, Widen(%v, %v) = %v, want equal", p.a, p.b, ab, p.b, p.a, ba)
		}
	}
}

func TestWidenSmallIntsPromoteToInt32(t *testing.T) {
	got := Widen(Byte, Byte)
	if !Equal(got, Int32) {
		t.Errorf("Widen(Byte, Byte) = %v, want int", got)
	}
}

func TestWidenMixedSignSameWidthPromotesNextWiderSigned(t *testing.T) {
	got := Widen(UInt32, Int32)
	if !Equal(got, Int64) {
		t.Errorf("Widen(uint, int) = %v, want long", got)
	}
}

func TestWidenStringAbsorbs(t *testing.T) {
	got := Widen(StringT, Int32)
	if !Equal(got, StringT) {
		t.Errorf("Widen(string, int) = %v, want string", got)
	}
}

func TestNeedsNarrowWidthExceedsDestination(t *testing.T) {
	if !NeedsNarrow(Int64, Int32) {
		t.Error("expected narrowing from long to int")
	}
	if NeedsNarrow(Int32, Int64) {
		t.Error("did not expect narrowing from int to long")
	}
}

func TestNeedsNarrowEqualWidthSignMismatch(t *testing.T) {
	if !NeedsNarrow(Int32, UInt32) {
		t.Error("expected narrowing between equal-width signed/unsigned")
	}
	if !NeedsNarrow(UInt32, Int32) {
		t.Error("expected narrowing in either direction")
	}
}

func TestNeedsNarrowImplicitWidening(t *testing.T) {
	if NeedsNarrow(UInt16, UInt32) {
		t.Error("unsigned -> wider unsigned should be implicit")
	}
	if NeedsNarrow(Int16, Int64) {
		t.Error("signed -> wider signed should be implicit")
	}
}

func TestDefaultLiteralText(t *testing.T) {
	cases := []struct {
		t    Type
		want string
	}{
		{Bool, "false"},
		{Int32, "0"},
		{UInt32, "0u"},
		{Int64, "0l"},
		{UInt64, "0ul"},
		{Float64, "0.0"},
		{Array(Byte, false), "null"},
	}
	for _, c := range cases {
		if got := DefaultLiteralText(c.t); got != c.want {
			t.Errorf("DefaultLiteralText(%v) = %q, want %q", c.t, got, c.want)
		}
	}
}

func TestEqualArrayJaggedness(t *testing.T) {
	flat := Array(UInt32, false)
	jagged := Array(UInt32, true)
	if Equal(flat, jagged) {
		t.Error("flat and jagged arrays of the same element type must not be equal")
	}
}
