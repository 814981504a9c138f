package transform

import (
	"testing"

	"github.com/hawkynt/il2cs/scope"
	"github.com/hawkynt/il2cs/types"
)

func TestToPascalCase(t *testing.T) {
	cases := map[string]string{
		"blockSize":   "BlockSize",
		"block_size":  "BlockSize",
		"Result":      "Result",
		"isInverse":   "IsInverse",
		"rotateLeft32": "RotateLeft32",
	}
	for in, want := range cases {
		if got := ToPascalCase(in); got != want {
			t.Errorf("ToPascalCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToCamelCase(t *testing.T) {
	if got := ToCamelCase("BlockSize"); got != "blockSize" {
		t.Errorf("ToCamelCase(BlockSize) = %q, want blockSize", got)
	}
}

func TestEscapeKeyword(t *testing.T) {
	if got := EscapeKeyword("params"); got != "@params" {
		t.Errorf("EscapeKeyword(params) = %q, want @params", got)
	}
	if got := EscapeKeyword("counter"); got != "counter" {
		t.Errorf("EscapeKeyword(counter) = %q, want counter unchanged", got)
	}
}

func TestDeclareLocalReportsCollision(t *testing.T) {
	s := scope.New(nil)
	s.Push()
	s.Declare("tmp", types.Int32)
	s.Pop()

	s.Push()
	_, renamed := DeclareLocal(s, "tmp", types.Int32)
	if !renamed {
		t.Fatalf("expected collision rename to be reported")
	}
}
