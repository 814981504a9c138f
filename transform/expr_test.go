package transform

import (
	"testing"

	"github.com/hawkynt/il2cs/framework"
	"github.com/hawkynt/il2cs/il"
	"github.com/hawkynt/il2cs/infer"
	"github.com/hawkynt/il2cs/scope"
	"github.com/hawkynt/il2cs/signature"
	"github.com/hawkynt/il2cs/target"
	"github.com/hawkynt/il2cs/types"
)

func newTestCtx(fieldTypes map[string]types.Type, names map[string]string) *methodCtx {
	s := scope.New(fieldTypes)
	kb := framework.New(nil, nil)
	sig := signature.New()
	return &methodCtx{
		kb:          kb,
		sig:         sig,
		scope:       s,
		inf:         infer.New(s, sig, kb, "Cipher", fieldTypes),
		className:   "Cipher",
		methodName:  "test",
		diags:       &diagnosticSink{},
		memberNames: names,
	}
}

func TestIdentifierResolvesFromScope(t *testing.T) {
	c := newTestCtx(nil, nil)
	c.scope.Declare("key", types.Array(types.Byte, false))

	got := c.expr(&il.Identifier{Name: "key"})
	id, ok := got.(*target.Ident)
	if !ok {
		t.Fatalf("expected *target.Ident, got %T", got)
	}
	if id.Name != "key" {
		t.Errorf("Name = %q, want key", id.Name)
	}
	if len(c.diags.items) != 0 {
		t.Errorf("expected no diagnostics, got %v", c.diags.items)
	}
}

func TestIdentifierUnresolvedReportsDiagnostic(t *testing.T) {
	c := newTestCtx(map[string]types.Type{"rounds": types.UInt32}, nil)
	c.expr(&il.Identifier{Name: "rounds"})
	if len(c.diags.items) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(c.diags.items))
	}
	if c.diags.items[0].Kind != DiagUnresolvedIdentifier {
		t.Errorf("Kind = %v, want DiagUnresolvedIdentifier", c.diags.items[0].Kind)
	}
}

func TestTruthyOnNumericBecomesNotEqualZero(t *testing.T) {
	c := newTestCtx(nil, nil)
	c.scope.Declare("n", types.UInt32)
	got := c.truthy(&il.Identifier{Name: "n"})
	bin, ok := got.(*target.Binary)
	if !ok {
		t.Fatalf("expected *target.Binary, got %T", got)
	}
	if bin.Op != "!=" {
		t.Errorf("Op = %q, want !=", bin.Op)
	}
}

func TestTruthyOnBoolPassesThrough(t *testing.T) {
	c := newTestCtx(nil, nil)
	c.scope.Declare("ok", types.Bool)
	got := c.truthy(&il.Identifier{Name: "ok"})
	if _, ok := got.(*target.Ident); !ok {
		t.Fatalf("expected bool truthy to pass through unchanged, got %T", got)
	}
}

func TestArrayIsArrayTernaryCollapses(t *testing.T) {
	c := newTestCtx(nil, nil)
	c.scope.Declare("x", types.Array(types.Byte, false))
	n := &il.Conditional{
		Test:       &il.Intrinsic{Op: il.OpIsArrayCheck, Args: []il.Expr{&il.Identifier{Name: "x"}}},
		Consequent: &il.Identifier{Name: "x"},
		Alternate:  &il.ArrayLiteral{Elements: []il.Expr{&il.Identifier{Name: "x"}}},
	}
	got := c.conditional(n)
	if _, ok := got.(*target.Ident); !ok {
		t.Fatalf("expected ternary to collapse to the consequent, got %T", got)
	}
	found := false
	for _, d := range c.diags.items {
		if d.Kind == DiagCryptoFallback {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a CryptoFallback diagnostic")
	}
}

func TestCompoundAssignmentWidensAndNarrows(t *testing.T) {
	c := newTestCtx(nil, nil)
	c.scope.Declare("b", types.Byte)
	n := &il.Assignment{
		Op:     "+=",
		Target: &il.Identifier{Name: "b"},
		Value:  &il.Literal{LitKind: il.LiteralInt, Raw: "1"},
	}
	got := c.assignment(n)
	asn, ok := got.(*target.Assign)
	if !ok {
		t.Fatalf("expected *target.Assign, got %T", got)
	}
	if _, ok := asn.Rhs.(*target.Cast); !ok {
		t.Fatalf("expected the recombined value to be narrowed back with a cast, got %T", asn.Rhs)
	}
}

func TestThisPropertyAccessUsesResolvedMemberName(t *testing.T) {
	c := newTestCtx(map[string]types.Type{"state": types.Array(types.Byte, false)}, map[string]string{"state": "State2"})
	got := c.expr(&il.ThisPropertyAccess{Property: "state"})
	mem, ok := got.(*target.Member)
	if !ok {
		t.Fatalf("expected *target.Member, got %T", got)
	}
	if mem.Sel != "State2" {
		t.Errorf("Sel = %q, want State2", mem.Sel)
	}
}

func TestUnhandledNodeNeverReturnsNil(t *testing.T) {
	c := newTestCtx(nil, nil)
	got := c.expr(&il.Spread{Arg: &il.Literal{LitKind: il.LiteralInt, Raw: "1"}})
	if got == nil {
		t.Fatalf("expr must never return nil")
	}
	if len(c.diags.items) != 1 || c.diags.items[0].Kind != DiagUnhandledNode {
		t.Errorf("expected a single UnhandledNode diagnostic, got %v", c.diags.items)
	}
}
