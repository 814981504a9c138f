package scope

import "testing"

import "github.com/hawkynt/il2cs/types"

func TestDeclareAndLookup(t *testing.T) {
	s := New(nil)
	name := s.Declare("i", types.Int32)
	if name != "i" {
		t.Fatalf("expected no rename on first declare, got %q", name)
	}
	got, ok := s.Lookup("i")
	if !ok || !types.Equal(got, types.Int32) {
		t.Fatalf("Lookup(i) = %v, %v", got, ok)
	}
}

func TestBlockExitRestoresShadowedBinding(t *testing.T) {
	s := New(nil)
	s.Declare("x", types.Int32)

	s.Push()
	s.Declare("x", types.StringT)
	inner, _ := s.Lookup("x")
	if !types.Equal(inner, types.StringT) {
		t.Fatalf("inner scope shadow failed, got %v", inner)
	}
	s.Pop()

	outer, _ := s.Lookup("x")
	if !types.Equal(outer, types.Int32) {
		t.Fatalf("expected outer binding restored after Pop, got %v", outer)
	}
}

func TestCollisionSetSurvivesBlockExit(t *testing.T) {
	s := New(nil)
	s.Push()
	s.Declare("tmp", types.Int32)
	s.Pop()

	s.Push()
	renamed := s.Declare("tmp", types.Int32)
	if renamed == "tmp" {
		t.Fatalf("expected method-scope collision set to force a rename, got %q", renamed)
	}
	s.Pop()
}

func TestDeclareRenameIsStableAcrossLookups(t *testing.T) {
	s := New(nil)
	s.Declare("n", types.Int32)
	first := s.Declare("n", types.Int32) // simulate a second block reusing "n"
	second, ok := s.LookupRenamed("n")
	if !ok || second != first {
		t.Fatalf("rename not stable: first=%q second=%q", first, second)
	}
}

func TestClassFieldFallback(t *testing.T) {
	s := New(map[string]types.Type{"counter": types.Int64})
	got, ok := s.Lookup("counter")
	if !ok || !types.Equal(got, types.Int64) {
		t.Fatalf("expected class field fallback, got %v, %v", got, ok)
	}
}

func TestArrayBufferAndJaggedMarkers(t *testing.T) {
	s := New(nil)
	s.Declare("buf", types.Array(types.Byte, false))
	s.MarkArrayBuffer("buf")
	if !s.IsArrayBuffer("buf") {
		t.Fatalf("expected buf marked as array buffer")
	}

	s.Declare("grid", types.Array(types.Array(types.Int32, false), true))
	s.MarkJagged("grid")
	if !s.IsJagged("grid") {
		t.Fatalf("expected grid marked as jagged")
	}
}

func TestRenameToAvoidCollision(t *testing.T) {
	s := New(nil)
	first := s.RenameToAvoidCollision("loop")
	second := s.RenameToAvoidCollision("loop")
	if first == second {
		t.Fatalf("expected distinct reserved names, got %q twice", first)
	}
}
