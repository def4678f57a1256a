package front

import (
	"context"

	"tlog.app/go/tlog"

	"github.com/slowlang/calc/compiler/ast"
	"github.com/slowlang/calc/compiler/ir"
)

// Lower translates the program into c, appending to its code
// in evaluation order. It can't fail on a parsed program.
func Lower(ctx context.Context, c *ir.Context, p *ast.Program) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "front: lower program", "stmts", len(p.Stmts))
	defer tr.Finish()

	for _, s := range p.Stmts {
		LowerStmt(ctx, c, s)
	}

	if tr.If("dump_ir") {
		for id, x := range c.Exprs {
			tr.Printw("expr", "id", id, "typ", tlog.NextAsType, x, "val", x)
		}
	}

	tr.Printw("lowered", "values", len(c.Exprs), "code", len(c.Code))
}

func LowerStmt(ctx context.Context, c *ir.Context, s ast.Stmt) {
	switch s := s.(type) {
	case ast.ExprStmt:
		x := LowerExpr(ctx, c, s.X)

		c.Store(x, c.Mem())
	case ast.PrintStmt:
		x := LowerExpr(ctx, c, s.X)

		c.PrintInt(x)
	default:
		panic(s)
	}
}

// LowerExpr returns the handle holding the value of x.
// Left operands are lowered completely before right ones.
func LowerExpr(ctx context.Context, c *ir.Context, x ast.Expr) (id ir.Expr) {
	switch x := x.(type) {
	case ast.Mem:
		id = c.Load(c.Mem())
	case ast.Int:
		id = c.Const(x.Value)
	case ast.Paren:
		return LowerExpr(ctx, c, x.X)
	case ast.Prefix:
		y := LowerExpr(ctx, c, x.X)

		switch x.Op {
		case ast.Plus:
			return y
		case ast.Minus:
			zero := c.Const(0)

			id = c.BinOp(ir.Sub, zero, y)
		default:
			panic(x.Op)
		}
	case ast.Infix:
		l := LowerExpr(ctx, c, x.Left)
		r := LowerExpr(ctx, c, x.Right)

		id = c.BinOp(binOp(x.Op), l, r)
	default:
		panic(x)
	}

	tlog.V("lower").Printw("lowered expr", "typ", tlog.NextAsType, x, "pos", x.Span().Pos, "id", id)

	return id
}

func binOp(op ast.InfixOp) ir.Op {
	switch op {
	case ast.Add:
		return ir.Add
	case ast.Sub:
		return ir.Sub
	case ast.Mul:
		return ir.Mul
	case ast.Div:
		return ir.Div
	default:
		panic(op)
	}
}
