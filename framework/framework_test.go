package framework

import (
	"testing"

	"github.com/hawkynt/il2cs/types"
)

func TestLookupMethodWalksExtends(t *testing.T) {
	classes := map[string]Class{
		"Base": {Methods: map[string]Signature{"Foo": {ReturnType: types.Int32, IsOverride: true}}},
		"Derived": {
			Extends: "Base",
			Methods: map[string]Signature{"Bar": {ReturnType: types.StringT}},
		},
	}
	kb := New(classes, nil)

	sig, ok := kb.LookupMethod("Derived", "Foo")
	if !ok || !types.Equal(sig.ReturnType, types.Int32) {
		t.Fatalf("expected inherited Foo to resolve to int, got %v, %v", sig, ok)
	}

	if _, ok := kb.LookupMethod("Derived", "Missing"); ok {
		t.Fatalf("expected Missing to be absent")
	}
}

func TestMergeClassesBuiltinWins(t *testing.T) {
	builtin := map[string]Class{"TestCase": {Properties: map[string]Property{"Input": {Type: types.Array(types.Byte, false)}}}}
	overrides := map[string]Class{
		"TestCase":  {Properties: map[string]Property{"Input": {Type: types.StringT}}},
		"LinkItem2": {Properties: map[string]Property{"Title": {Type: types.StringT}}},
	}
	merged := MergeClasses(builtin, overrides)

	if got := merged["TestCase"].Properties["Input"].Type; !types.Equal(got, types.Array(types.Byte, false)) {
		t.Fatalf("expected builtin TestCase.Input to win, got %v", got)
	}
	if _, ok := merged["LinkItem2"]; !ok {
		t.Fatalf("expected override-only class to be added")
	}
}

func TestLookupOpCode(t *testing.T) {
	kb := New(nil, nil)
	sig, ok := kb.LookupOpCode("RotL32")
	if !ok || !types.Equal(sig.ReturnType, types.UInt32) {
		t.Fatalf("expected RotL32 to return uint, got %v, %v", sig, ok)
	}
}

func TestConstructorOrder(t *testing.T) {
	kb := New(nil, nil)
	order, ok := kb.ConstructorOrder("TestCase")
	if !ok || len(order) != 3 || order[0] != "Input" {
		t.Fatalf("unexpected TestCase constructor order: %v, %v", order, ok)
	}
}

func TestOpcodeOverrideAddsWithoutRemovingBuiltins(t *testing.T) {
	kb := New(nil, map[string]Signature{"CustomHelper": {ReturnType: types.Int32}})
	if _, ok := kb.LookupOpCode("RotL32"); !ok {
		t.Fatalf("builtin RotL32 should still resolve")
	}
	if _, ok := kb.LookupOpCode("CustomHelper"); !ok {
		t.Fatalf("override CustomHelper should resolve")
	}
}
