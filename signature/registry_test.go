package signature

import (
	"testing"

	"github.com/hawkynt/il2cs/framework"
	"github.com/hawkynt/il2cs/types"
)

func TestPreRegisterThenLookup(t *testing.T) {
	r := New()
	r.PreRegister("Cipher", "Encrypt", framework.Signature{ReturnType: types.Byte})

	sig, ok := r.Lookup("Cipher", "Encrypt")
	if !ok || !types.Equal(sig.ReturnType, types.Byte) {
		t.Fatalf("expected pre-registered signature, got %v, %v", sig, ok)
	}
}

func TestRefineUpdatesInPlace(t *testing.T) {
	r := New()
	r.PreRegister("Cipher", "Encrypt", framework.Signature{ReturnType: types.Byte})
	r.Refine("Cipher", "Encrypt", framework.Signature{ReturnType: types.Array(types.Byte, false)})
	r.MarkClassRefined("Cipher")

	sig, _ := r.Lookup("Cipher", "Encrypt")
	if !types.Equal(sig.ReturnType, types.Array(types.Byte, false)) {
		t.Fatalf("expected refined return type, got %v", sig.ReturnType)
	}
}

func TestRefineWithoutPreRegisterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic refining an unregistered method")
		}
	}()
	r := New()
	r.Refine("Cipher", "Ghost", framework.Signature{ReturnType: types.Int32})
}

func TestPreRegisterAfterRefinedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic pre-registering into a refined class")
		}
	}()
	r := New()
	r.PreRegister("Cipher", "A", framework.Signature{ReturnType: types.Int32})
	r.MarkClassRefined("Cipher")
	r.PreRegister("Cipher", "B", framework.Signature{ReturnType: types.Int32})
}

func TestNeedsRefinement(t *testing.T) {
	cases := []struct {
		sig  framework.Signature
		want bool
	}{
		{framework.Signature{ReturnType: types.Byte}, true},
		{framework.Signature{ReturnType: types.DynamicT}, true},
		{framework.Signature{ReturnType: types.Int32}, false},
		{framework.Signature{ReturnType: types.Array(types.Byte, false)}, false},
	}
	for _, c := range cases {
		if got := NeedsRefinement(c.sig); got != c.want {
			t.Errorf("NeedsRefinement(%v) = %v, want %v", c.sig.ReturnType, got, c.want)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	r := New()
	r.PreRegister("Cipher", "Encrypt", framework.Signature{ReturnType: types.Byte})
	snap := r.Snapshot()
	snap[Key{"Cipher", "Encrypt"}] = framework.Signature{ReturnType: types.Int64}

	sig, _ := r.Lookup("Cipher", "Encrypt")
	if !types.Equal(sig.ReturnType, types.Byte) {
		t.Fatalf("mutating snapshot leaked into registry: %v", sig.ReturnType)
	}
}

func TestKeysSorted(t *testing.T) {
	r := New()
	r.PreRegister("B", "Z", framework.Signature{})
	r.PreRegister("A", "M", framework.Signature{})
	keys := r.Keys()
	if len(keys) != 2 || keys[0].String() != "A.M" {
		t.Fatalf("expected sorted keys, got %v", keys)
	}
}
