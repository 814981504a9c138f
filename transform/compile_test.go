package transform

import (
	"testing"

	"github.com/hawkynt/il2cs/il"
)

func TestCompileSimpleProgram(t *testing.T) {
	program := &il.Program{
		Classes: []*il.Class{{
			Name:   "Adder",
			Fields: []*il.Field{{Name: "total", TypeHint: "number"}},
			Methods: []*il.Method{{
				Name:       "add",
				Params:     []*il.Param{{Name: "amount", TypeHint: "number"}},
				ReturnHint: "number",
				Body: &il.Block{Stmts: []il.Stmt{
					&il.Return{Arg: &il.Binary{
						Op:    "+",
						Left:  &il.ThisPropertyAccess{Property: "total"},
						Right: &il.Identifier{Name: "amount"},
					}},
				}},
			}},
		}},
	}

	result := Compile(program, Config{Namespace: "Generated"})
	if result.Fatal {
		t.Fatalf("unexpected fatal error: %s", result.FatalError)
	}
	if result.Root == nil {
		t.Fatalf("expected a non-nil Target AST root")
	}
	if len(result.Root.Namespace.Types) != 1 {
		t.Fatalf("expected one emitted class, got %d", len(result.Root.Namespace.Types))
	}
	cls := result.Root.Namespace.Types[0]
	if cls.Name != "Adder" {
		t.Errorf("Name = %q, want Adder", cls.Name)
	}
	if len(cls.Methods) != 1 || cls.Methods[0].Name != "Add" {
		t.Fatalf("expected one method renamed to Add, got %#v", cls.Methods)
	}
}

func TestCompileUnresolvedThisMethodCallIsNotFatal(t *testing.T) {
	program := &il.Program{
		Classes: []*il.Class{{
			Name: "Broken",
			Methods: []*il.Method{{
				Name: "run",
				Body: &il.Block{Stmts: []il.Stmt{
					&il.ExprStmt{X: &il.ThisMethodCall{Method: "missing"}},
				}},
			}},
		}},
	}
	// ThisMethodCall infers its type via the Signature Registry/Inferer
	// chain; with no declared hints anywhere this should still complete
	// (falling back to dynamic) rather than panic, so Compile is expected
	// to succeed here too. This test documents that expectation.
	result := Compile(program, Config{})
	if result.Fatal {
		t.Fatalf("unexpected fatal error: %s", result.FatalError)
	}
}
