package transform

import (
	"fmt"

	"github.com/hawkynt/il2cs/il"
	"github.com/hawkynt/il2cs/infer"
	"github.com/hawkynt/il2cs/target"
	"github.com/hawkynt/il2cs/types"
)

// block transforms a lexical body, pushing and popping a scope frame
// around it so block-local declarations don't leak (§4.2, I1).
func (c *methodCtx) block(b *il.Block) *target.BlockStmt {
	c.scope.Push()
	defer c.scope.Pop()
	var list []target.Stmt
	for _, s := range b.Stmts {
		list = append(list, c.stmt(s)...)
	}
	return &target.BlockStmt{List: list}
}

// stmt dispatches one IL statement. Most statements lower to exactly
// one Target statement; DestructuringDecl expands to several.
func (c *methodCtx) stmt(s il.Stmt) []target.Stmt {
	switch n := s.(type) {
	case *il.Block:
		return []target.Stmt{c.block(n)}
	case *il.VarDecl:
		return c.varDecl(n)
	case *il.DestructuringDecl:
		return c.destructuringDecl(n)
	case *il.ExprStmt:
		if it, ok := n.X.(*il.Intrinsic); ok && it.Op == il.OpArrayAppend {
			return []target.Stmt{c.arrayAppendAssign(it)}
		}
		return []target.Stmt{&target.ExprStmt{X: c.expr(n.X)}}
	case *il.If:
		return []target.Stmt{c.ifStmt(n)}
	case *il.For:
		return []target.Stmt{c.forStmt(n)}
	case *il.ForOf:
		return []target.Stmt{c.forOf(n)}
	case *il.ForIn:
		return []target.Stmt{c.forIn(n)}
	case *il.While:
		return []target.Stmt{&target.WhileStmt{Cond: c.truthy(n.Cond), Body: c.block(n.Body)}}
	case *il.DoWhile:
		return []target.Stmt{&target.DoWhileStmt{Cond: c.truthy(n.Cond), Body: c.block(n.Body)}}
	case *il.Switch:
		return []target.Stmt{c.switchStmt(n)}
	case *il.Break:
		if n.Label != "" {
			c.warn(DiagUnhandledNode, "Break", "labeled break has no Target representation, emitting an unlabeled break")
		}
		return []target.Stmt{&target.BreakStmt{}}
	case *il.Continue:
		if n.Label != "" {
			c.warn(DiagUnhandledNode, "Continue", "labeled continue has no Target representation, emitting an unlabeled continue")
		}
		return []target.Stmt{&target.ContinueStmt{}}
	case *il.Throw:
		return []target.Stmt{&target.ThrowStmt{Arg: c.expr(n.Arg)}}
	case *il.Try:
		return []target.Stmt{c.tryStmt(n)}
	case *il.Return:
		return []target.Stmt{c.returnStmt(n)}
	case *il.Empty:
		return []target.Stmt{&target.EmptyStmt{}}
	default:
		c.warn(DiagUnhandledNode, string(s.Kind()), fmt.Sprintf("no transformer for statement %s", s.Kind()))
		return []target.Stmt{&target.CommentStmt{Text: fmt.Sprintf("unhandled: %s", s.Kind())}}
	}
}

func (c *methodCtx) varDecl(n *il.VarDecl) []target.Stmt {
	var init target.Expr
	var t types.Type
	if n.Init != nil {
		if lit, ok := n.Init.(*il.ArrayLiteral); ok {
			hint := noHint
			if n.TypeHint != "" {
				hint = elementHintFromName(n.TypeHint)
			}
			init = c.arrayLiteral(lit, hint)
		} else {
			init = c.expr(n.Init)
		}
		t = init.Type()
	} else if hint := elementHintFromName(n.TypeHint); hasHint(hint) {
		t = hint
	} else {
		t = infer.NameHeuristic(n.Name)
	}
	if t.Kind() == types.KindArray && c.scope.IsJagged(n.Name) {
		// The Body Pre-Analyzer saw "n[i] = new Array(...)" or "n[i][j]"
		// somewhere in this body (§4.6(d)): n is a ragged array of arrays,
		// not a flat array, regardless of how its own initializer looks.
		t = types.Array(t.Elem(), true)
	}
	name, renamed := DeclareLocal(c.scope, n.Name, t)
	if renamed {
		c.warn(DiagRenamedForCollision, "VarDecl", fmt.Sprintf("%q renamed to %q to avoid a CS0136 collision", n.Name, name))
	}
	if init != nil && needsNarrowAt(init.Type(), t) {
		init = target.NewCast(init, t)
	}
	return []target.Stmt{&target.VarDeclStmt{Name: name, Type: t, Init: init}}
}

// elementHintFromName resolves a declared type-hint string (as carried
// by il.VarDecl/il.Param.TypeHint) to a Target type. An empty hint
// returns noHint, leaving the fallback to the caller; an unrecognized
// hint string is passed to infer.NameHeuristic (§4.5).
func elementHintFromName(hint string) types.Type {
	if hint == "" {
		return noHint
	}
	switch hint {
	case "number":
		return types.UInt32
	case "string":
		return types.StringT
	case "boolean":
		return types.Bool
	case "Uint8Array", "byte[]":
		return types.Array(types.Byte, false)
	default:
		return infer.NameHeuristic(hint)
	}
}

func (c *methodCtx) destructuringDecl(n *il.DestructuringDecl) []target.Stmt {
	src := c.expr(n.Source)
	tmp := c.scope.RenameToAvoidCollision("destructured")
	out := []target.Stmt{&target.VarDeclStmt{Name: tmp, Type: src.Type(), Init: src}}
	tmpRef := target.NewIdent(tmp, src.Type())
	for i, name := range n.Names {
		var elemT types.Type
		var accessor target.Expr
		if n.Keys != nil {
			key := n.Keys[i]
			elemT = types.DynamicT
			if src.Type().Kind() == types.KindTuple {
				for _, te := range src.Type().TupleElements() {
					if te.Name == key {
						elemT = te.Type
					}
				}
			}
			accessor = target.NewMember(tmpRef, ToPascalCase(key), elemT)
		} else {
			elemT = types.DynamicT
			switch src.Type().Kind() {
			case types.KindArray:
				elemT = src.Type().Elem()
			case types.KindTuple:
				elems := src.Type().TupleElements()
				if i < len(elems) {
					elemT = elems[i].Type
				}
			}
			accessor = target.NewIndex(tmpRef, target.NewLiteral(fmt.Sprintf("%d", i), types.Int32), elemT)
		}
		localName, renamed := DeclareLocal(c.scope, name, elemT)
		if renamed {
			c.warn(DiagRenamedForCollision, "DestructuringDecl", fmt.Sprintf("%q renamed to %q to avoid a CS0136 collision", name, localName))
		}
		out = append(out, &target.VarDeclStmt{Name: localName, Type: elemT, Init: accessor})
	}
	return out
}

func (c *methodCtx) ifStmt(n *il.If) *target.IfStmt {
	var elseStmt target.Stmt
	if n.Else != nil {
		elseStmts := c.stmt(n.Else)
		if len(elseStmts) == 1 {
			elseStmt = elseStmts[0]
		} else {
			elseStmt = &target.BlockStmt{List: elseStmts}
		}
	}
	return &target.IfStmt{Cond: c.truthy(n.Cond), Then: c.block(n.Then), Else: elseStmt}
}

func (c *methodCtx) forStmt(n *il.For) *target.ForStmt {
	c.scope.Push()
	defer c.scope.Pop()
	var init, post target.Stmt
	if n.Init != nil {
		if s := c.stmt(n.Init); len(s) > 0 {
			init = s[0]
		}
	}
	if n.Post != nil {
		if s := c.stmt(n.Post); len(s) > 0 {
			post = s[0]
		}
	}
	var cond target.Expr
	if n.Cond != nil {
		cond = c.truthy(n.Cond)
	}
	return &target.ForStmt{Init: init, Cond: cond, Post: post, Body: c.block(n.Body)}
}

// forOf lowers "for (const x of xs)" to a C# foreach (§4.7,
// "For-of/for-in lowering").
func (c *methodCtx) forOf(n *il.ForOf) *target.ForEachStmt {
	iter := c.expr(n.Iterable)
	elemT := elementHintFromName(n.TypeHint)
	if !hasHint(elemT) {
		if iter.Type().Kind() == types.KindArray {
			elemT = iter.Type().Elem()
		} else {
			elemT = types.DynamicT
		}
	}
	c.scope.Push()
	defer c.scope.Pop()
	name, _ := DeclareLocal(c.scope, n.VarName, elemT)
	return &target.ForEachStmt{VarName: name, VarType: elemT, Iter: iter, Body: c.block(n.Body)}
}

// forIn lowers "for (const k in obj)" to a foreach over Keys, since the
// Target type system models JS objects as Dictionary-shaped values
// (§4.7).
func (c *methodCtx) forIn(n *il.ForIn) *target.ForEachStmt {
	obj := c.expr(n.Object)
	keysT := types.Array(types.StringT, false)
	iter := target.NewMember(obj, "Keys", keysT)
	c.scope.Push()
	defer c.scope.Pop()
	name, _ := DeclareLocal(c.scope, n.VarName, types.StringT)
	return &target.ForEachStmt{VarName: name, VarType: types.StringT, Iter: iter, Body: c.block(n.Body)}
}

func (c *methodCtx) switchStmt(n *il.Switch) *target.SwitchStmt {
	disc := c.expr(n.Disc)
	out := &target.SwitchStmt{Disc: disc}
	for _, cs := range n.Cases {
		tc := &target.SwitchCase{Default: cs.Default}
		for _, t := range cs.Tests {
			tc.Tests = append(tc.Tests, c.expr(t))
		}
		c.scope.Push()
		for _, s := range cs.Body {
			tc.Body = append(tc.Body, c.stmt(s)...)
		}
		c.scope.Pop()
		out.Cases = append(out.Cases, tc)
	}
	return out
}

func (c *methodCtx) tryStmt(n *il.Try) *target.TryStmt {
	out := &target.TryStmt{Body: c.block(n.Body)}
	for _, cc := range n.Catches {
		c.scope.Push()
		param, _ := DeclareLocal(c.scope, cc.Param, types.Generic(infer.ExceptionClassName(cc.ExceptionType)))
		out.Catches = append(out.Catches, &target.CatchClause{
			ExceptionType: infer.ExceptionClassName(cc.ExceptionType),
			Param:         param,
			Body:          c.block(cc.Body),
		})
		c.scope.Pop()
	}
	if n.Finally != nil {
		out.Finally = c.block(n.Finally)
	}
	return out
}

func (c *methodCtx) returnStmt(n *il.Return) *target.ReturnStmt {
	if n.Arg == nil {
		return &target.ReturnStmt{}
	}
	arg := c.expr(n.Arg)
	return &target.ReturnStmt{Arg: arg}
}
