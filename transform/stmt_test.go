package transform

import (
	"testing"

	"github.com/hawkynt/il2cs/il"
	"github.com/hawkynt/il2cs/target"
	"github.com/hawkynt/il2cs/types"
)

func TestVarDeclInfersFromInit(t *testing.T) {
	c := newTestCtx(nil, nil)
	stmts := c.varDecl(&il.VarDecl{Name: "total", Init: &il.Literal{LitKind: il.LiteralInt, Raw: "0"}})
	if len(stmts) != 1 {
		t.Fatalf("expected one statement, got %d", len(stmts))
	}
	vd, ok := stmts[0].(*target.VarDeclStmt)
	if !ok {
		t.Fatalf("expected *target.VarDeclStmt, got %T", stmts[0])
	}
	if vd.Name != "total" {
		t.Errorf("Name = %q, want total", vd.Name)
	}
}

func TestVarDeclCollisionRenames(t *testing.T) {
	c := newTestCtx(nil, nil)
	c.scope.Push()
	c.scope.Declare("tmp", types.Int32)
	c.scope.Pop()
	c.scope.Push()
	stmts := c.varDecl(&il.VarDecl{Name: "tmp", Init: &il.Literal{LitKind: il.LiteralInt, Raw: "1"}})
	vd := stmts[0].(*target.VarDeclStmt)
	if vd.Name == "tmp" {
		t.Fatalf("expected a renamed local to avoid the CS0136 collision, got %q", vd.Name)
	}
	found := false
	for _, d := range c.diags.items {
		if d.Kind == DiagRenamedForCollision {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a RenamedForCollision diagnostic")
	}
}

func TestForOfLowersToForEach(t *testing.T) {
	c := newTestCtx(nil, nil)
	c.scope.Declare("items", types.Array(types.Byte, false))
	n := &il.ForOf{
		VarName:  "b",
		Iterable: &il.Identifier{Name: "items"},
		Body:     &il.Block{},
	}
	got := c.forOf(n)
	if !types.Equal(got.VarType, types.Byte) {
		t.Errorf("VarType = %v, want byte (array element type)", got.VarType)
	}
}

func TestForInLowersToForEachOverKeys(t *testing.T) {
	c := newTestCtx(nil, nil)
	c.scope.Declare("obj", types.DynamicT)
	n := &il.ForIn{VarName: "k", Object: &il.Identifier{Name: "obj"}, Body: &il.Block{}}
	got := c.forIn(n)
	mem, ok := got.Iter.(*target.Member)
	if !ok || mem.Sel != "Keys" {
		t.Fatalf("expected iteration over obj.Keys, got %#v", got.Iter)
	}
}

func TestTryStmtMapsCatchExceptionType(t *testing.T) {
	c := newTestCtx(nil, nil)
	n := &il.Try{
		Body: &il.Block{},
		Catches: []*il.Catch{
			{Param: "e", ExceptionType: "RangeError", Body: &il.Block{}},
		},
	}
	got := c.tryStmt(n)
	if len(got.Catches) != 1 {
		t.Fatalf("expected one catch clause, got %d", len(got.Catches))
	}
	if got.Catches[0].ExceptionType == "" {
		t.Errorf("expected a non-empty mapped exception type")
	}
}

func TestEmptyStatementLowersToEmptyStmt(t *testing.T) {
	c := newTestCtx(nil, nil)
	stmts := c.stmt(&il.Empty{})
	if len(stmts) != 1 {
		t.Fatalf("expected exactly one statement for Empty, got %d", len(stmts))
	}
	if _, ok := stmts[0].(*target.EmptyStmt); !ok {
		t.Fatalf("expected *target.EmptyStmt, got %T", stmts[0])
	}
}

func TestVarDeclUpgradesToJaggedWhenMarked(t *testing.T) {
	c := newTestCtx(nil, nil)
	c.scope.MarkJagged("grid")
	stmts := c.varDecl(&il.VarDecl{Name: "grid", TypeHint: "Uint8Array"})
	vd := stmts[0].(*target.VarDeclStmt)
	if vd.Type.Kind() != types.KindArray || !vd.Type.Jagged() {
		t.Fatalf("expected a jagged array type, got %#v", vd.Type)
	}
}

func TestVarDeclStaysFlatWhenNotMarkedJagged(t *testing.T) {
	c := newTestCtx(nil, nil)
	stmts := c.varDecl(&il.VarDecl{Name: "buf", TypeHint: "Uint8Array"})
	vd := stmts[0].(*target.VarDeclStmt)
	if vd.Type.Jagged() {
		t.Fatalf("expected a flat array type, got %#v", vd.Type)
	}
}

func TestArrayAppendStatementDispatchesBeforeExpr(t *testing.T) {
	c := newTestCtx(nil, nil)
	c.scope.Declare("a", types.Array(types.Int32, false))
	stmt := &il.ExprStmt{X: &il.Intrinsic{Op: il.OpArrayAppend, Args: []il.Expr{
		&il.Identifier{Name: "a"},
		&il.Literal{LitKind: il.LiteralInt, Raw: "1"},
	}}}
	out := c.stmt(stmt)
	es := out[0].(*target.ExprStmt)
	if _, ok := es.X.(*target.Assign); !ok {
		t.Fatalf("expected an assignment, got %T", es.X)
	}
}

func TestBlockPushesAndPopsScope(t *testing.T) {
	c := newTestCtx(nil, nil)
	b := &il.Block{Stmts: []il.Stmt{
		&il.VarDecl{Name: "local", Init: &il.Literal{LitKind: il.LiteralInt, Raw: "1"}},
	}}
	c.block(b)
	if _, ok := c.scope.Lookup("local"); ok {
		t.Errorf("expected block-local declaration not to leak past the block")
	}
}
