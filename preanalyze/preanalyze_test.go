package preanalyze

import (
	"testing"

	"github.com/hawkynt/il2cs/framework"
	"github.com/hawkynt/il2cs/il"
	"github.com/hawkynt/il2cs/infer"
	"github.com/hawkynt/il2cs/scope"
	"github.com/hawkynt/il2cs/types"
)

func newInferer(s *scope.Stack) *infer.Inferer {
	return infer.New(s, nil, framework.New(nil, nil), "Cipher", nil)
}

func TestBackwardsParameterPropagation(t *testing.T) {
	s := scope.New(nil)
	s.Declare("key", types.Array(types.Byte, false))
	s.Declare("local", types.DynamicT)

	body := &il.Block{Stmts: []il.Stmt{
		&il.VarDecl{Name: "local", Init: &il.Identifier{Name: "key"}},
	}}
	params := []*il.Param{{Name: "key"}}

	Run(s, newInferer(s), params, types.DynamicT, body)

	got, _ := s.Lookup("local")
	if !types.Equal(got, types.Array(types.Byte, false)) {
		t.Fatalf("expected local to inherit key's type, got %v", got)
	}
}

func TestReturnSitePropagation(t *testing.T) {
	s := scope.New(nil)
	s.Declare("result", types.DynamicT)
	body := &il.Block{Stmts: []il.Stmt{
		&il.Return{Arg: &il.Identifier{Name: "result"}},
	}}

	Run(s, newInferer(s), nil, types.Array(types.Byte, false), body)

	got, _ := s.Lookup("result")
	if !types.Equal(got, types.Array(types.Byte, false)) {
		t.Fatalf("expected result retyped to return type, got %v", got)
	}
}

func TestCastAssignmentHint(t *testing.T) {
	s := scope.New(nil)
	s.Declare("v", types.DynamicT)
	body := &il.Block{Stmts: []il.Stmt{
		&il.VarDecl{Name: "v", Init: &il.Intrinsic{Op: il.OpCast, Bits: 32, Signed: false}},
	}}

	Run(s, newInferer(s), nil, types.VoidT, body)

	got, _ := s.Lookup("v")
	if !types.Equal(got, types.UInt32) {
		t.Fatalf("expected v retyped to uint from cast hint, got %v", got)
	}
}

func Test2DArrayDetectionMarksJagged(t *testing.T) {
	s := scope.New(nil)
	s.Declare("grid", types.DynamicT)
	body := &il.Block{Stmts: []il.Stmt{
		&il.ExprStmt{X: &il.Assignment{
			Op: "=",
			Target: &il.Member{Object: &il.Identifier{Name: "grid"}, Property: &il.Identifier{Name: "i"}, Computed: true},
			Value:  &il.Intrinsic{Op: il.OpArrayCreation, ElementTypeHint: "uint"},
		}},
	}}

	Run(s, newInferer(s), nil, types.VoidT, body)

	if !s.IsJagged("grid") {
		t.Fatalf("expected grid marked jagged")
	}
}

func TestScalar32Detection(t *testing.T) {
	s := scope.New(nil)
	s.Declare("x", types.DynamicT)
	params := []*il.Param{{Name: "x"}}
	body := &il.Block{Stmts: []il.Stmt{
		&il.ExprStmt{X: &il.Binary{Op: "&", Left: &il.Identifier{Name: "x"}, Right: &il.Literal{LitKind: il.LiteralInt, Raw: "255"}}},
	}}

	Run(s, newInferer(s), params, types.VoidT, body)

	got, _ := s.Lookup("x")
	if !types.Equal(got, types.UInt32) {
		t.Fatalf("expected x retyped to uint from bitwise scalar use, got %v", got)
	}
}

func TestParameterAsArrayWithBitwiseElement(t *testing.T) {
	s := scope.New(nil)
	s.Declare("buf", types.DynamicT)
	params := []*il.Param{{Name: "buf"}}
	body := &il.Block{Stmts: []il.Stmt{
		&il.ExprStmt{X: &il.Binary{
			Op:   "&",
			Left: &il.Member{Object: &il.Identifier{Name: "buf"}, Property: &il.Identifier{Name: "i"}, Computed: true},
			Right: &il.Literal{LitKind: il.LiteralInt, Raw: "255"},
		}},
	}}

	Run(s, newInferer(s), params, types.VoidT, body)

	got, _ := s.Lookup("buf")
	if !types.Equal(got, types.Array(types.UInt32, false)) {
		t.Fatalf("expected buf retyped to uint[] from bitwise element use, got %v", got)
	}
}

func TestParameterAsStringKey(t *testing.T) {
	s := scope.New(nil)
	s.Declare("lookup", types.DynamicT)
	s.Declare("name", types.DynamicT)
	params := []*il.Param{{Name: "name"}}
	body := &il.Block{Stmts: []il.Stmt{
		&il.ExprStmt{X: &il.Member{Object: &il.Identifier{Name: "lookup"}, Property: &il.Literal{LitKind: il.LiteralString, Raw: "\"a\""}, Computed: true}},
		&il.ExprStmt{X: &il.Member{Object: &il.Identifier{Name: "lookup"}, Property: &il.Identifier{Name: "name"}, Computed: true}},
	}}

	Run(s, newInferer(s), params, types.VoidT, body)

	got, _ := s.Lookup("name")
	if !types.Equal(got, types.StringT) {
		t.Fatalf("expected name retyped to string (dictionary key), got %v", got)
	}
}
