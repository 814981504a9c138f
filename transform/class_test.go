package transform

import (
	"testing"

	"github.com/hawkynt/il2cs/framework"
	"github.com/hawkynt/il2cs/il"
	"github.com/hawkynt/il2cs/signature"
	"github.com/hawkynt/il2cs/types"
)

func TestResolvedMemberNamesAssignsCollisionSuffix(t *testing.T) {
	cls := &il.Class{
		Name:    "Cipher",
		Methods: []*il.Method{{Name: "state"}},
		Fields:  []*il.Field{{Name: "state"}},
	}
	diags := &diagnosticSink{}
	names := resolvedMemberNames(cls, diags)
	if names["state"] != "State" {
		t.Errorf("method %q kept plain PascalCase, got %q", "state", names["state"])
	}
	if len(diags.items) != 1 || diags.items[0].Kind != DiagRenamedForCollision {
		t.Fatalf("expected a RenamedForCollision diagnostic for the field, got %v", diags.items)
	}
}

func TestClassFieldTypesFromTypeHint(t *testing.T) {
	cls := &il.Class{
		Name:   "Cipher",
		Fields: []*il.Field{{Name: "rounds", TypeHint: "number"}},
	}
	kb := framework.New(nil, nil)
	got := classFieldTypes(cls, kb)
	if !types.Equal(got["rounds"], types.UInt32) {
		t.Errorf("rounds = %v, want uint32 from the declared hint", got["rounds"])
	}
}

func TestClassFieldTypesFromConstructorAssignment(t *testing.T) {
	cls := &il.Class{
		Name:   "Cipher",
		Fields: []*il.Field{{Name: "key"}},
		Constructors: []*il.Constructor{{
			Params: []*il.Param{{Name: "key", TypeHint: "Uint8Array"}},
			Body: &il.Block{Stmts: []il.Stmt{
				&il.ExprStmt{X: &il.Assignment{
					Op:     "=",
					Target: &il.ThisPropertyAccess{Property: "key"},
					Value:  &il.Identifier{Name: "key"},
				}},
			}},
		}},
	}
	kb := framework.New(nil, nil)
	got := classFieldTypes(cls, kb)
	if !types.Equal(got["key"], types.Array(types.Byte, false)) {
		t.Errorf("key = %v, want byte[] scanned from the constructor assignment", got["key"])
	}
}

func TestPreRegisterClassBuildsSignatureFromHints(t *testing.T) {
	cls := &il.Class{
		Name: "Cipher",
		Methods: []*il.Method{{
			Name:       "encrypt",
			Params:     []*il.Param{{Name: "data", TypeHint: "Uint8Array"}},
			ReturnHint: "Uint8Array",
		}},
	}
	sig := signature.New()
	preRegisterClass(cls, sig)
	got, ok := sig.Lookup("Cipher", "encrypt")
	if !ok {
		t.Fatalf("expected encrypt to be pre-registered")
	}
	if !types.Equal(got.ReturnType, types.Array(types.Byte, false)) {
		t.Errorf("ReturnType = %v, want byte[]", got.ReturnType)
	}
}

func TestBuildMethodDeclaresParamsBeforeRefinement(t *testing.T) {
	cls := &il.Class{Name: "Cipher"}
	m := &il.Method{
		Name:   "xorInto",
		Params: []*il.Param{{Name: "buf", TypeHint: "Uint8Array"}},
		Body:   &il.Block{},
	}
	kb := framework.New(nil, nil)
	sig := signature.New()
	sig.PreRegister("Cipher", "xorInto", framework.Signature{})
	diags := &diagnosticSink{}
	md := buildMethod(cls, m, Config{}, kb, sig, nil, diags, map[string]string{"xorInto": "XorInto"})
	if md.Name != "XorInto" {
		t.Errorf("Name = %q, want XorInto", md.Name)
	}
	if len(md.Params) != 1 || !types.Equal(md.Params[0].Type, types.Array(types.Byte, false)) {
		t.Fatalf("expected buf param to keep its byte[] type, got %#v", md.Params)
	}
}
