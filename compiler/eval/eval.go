package eval

import (
	"context"
	"fmt"
	"io"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/calc/compiler/ast"
)

type (
	// Env is the state of a running program: the mem cell and print output.
	Env struct {
		Mem int64

		Out     io.Writer
		Printed []int64
	}
)

var ErrDivisionByZero = errors.New("division by zero")

func New(out io.Writer) *Env {
	return &Env{Out: out}
}

// Run interprets the program statement by statement.
func (e *Env) Run(ctx context.Context, p *ast.Program) (err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "eval: run", "stmts", len(p.Stmts))
	defer tr.Finish("mem", &e.Mem, "err", &err)

	for i, s := range p.Stmts {
		err = e.Stmt(ctx, s)
		if err != nil {
			return errors.Wrap(err, "stmt %d", i)
		}
	}

	return nil
}

func (e *Env) Stmt(ctx context.Context, s ast.Stmt) error {
	switch s := s.(type) {
	case ast.ExprStmt:
		v, err := e.Expr(ctx, s.X)
		if err != nil {
			return err
		}

		e.Mem = v
	case ast.PrintStmt:
		v, err := e.Expr(ctx, s.X)
		if err != nil {
			return err
		}

		e.Printed = append(e.Printed, v)

		if e.Out != nil {
			_, err = fmt.Fprintf(e.Out, "%d\n", v)
			if err != nil {
				return errors.Wrap(err, "print")
			}
		}
	default:
		panic(s)
	}

	return nil
}

// Expr evaluates x left to right with wrapping 64-bit arithmetic.
func (e *Env) Expr(ctx context.Context, x ast.Expr) (v int64, err error) {
	switch x := x.(type) {
	case ast.Mem:
		return e.Mem, nil
	case ast.Int:
		return x.Value, nil
	case ast.Paren:
		return e.Expr(ctx, x.X)
	case ast.Prefix:
		v, err = e.Expr(ctx, x.X)
		if err != nil {
			return 0, err
		}

		switch x.Op {
		case ast.Plus:
			return v, nil
		case ast.Minus:
			return -v, nil
		default:
			panic(x.Op)
		}
	case ast.Infix:
		l, err := e.Expr(ctx, x.Left)
		if err != nil {
			return 0, err
		}

		r, err := e.Expr(ctx, x.Right)
		if err != nil {
			return 0, err
		}

		return Apply(x.Op, l, r, x.Span().Pos)
	default:
		panic(x)
	}
}

// Apply computes l op r. Division truncates toward zero.
func Apply(op ast.InfixOp, l, r int64, pos int) (int64, error) {
	switch op {
	case ast.Add:
		return l + r, nil
	case ast.Sub:
		return l - r, nil
	case ast.Mul:
		return l * r, nil
	case ast.Div:
		if r == 0 {
			return 0, errors.Wrap(ErrDivisionByZero, "at offset %d", pos)
		}

		return l / r, nil
	default:
		panic(op)
	}
}
