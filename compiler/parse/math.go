package parse

import (
	"context"

	"tlog.app/go/errors"

	"github.com/slowlang/calc/compiler/ast"
)

type (
	// LeftToRight parses Arg (Op Arg)* folding to the left.
	LeftToRight struct {
		Op  Parser
		Arg Parser
	}

	BinOper interface {
		BinOp(l, r ast.Expr) (ast.Expr, error)
	}

	// Op parses an infix operator symbol.
	Op ast.InfixOp
)

func (p LeftToRight) Parse(ctx context.Context, b []byte, st int) (_ any, i int, err error) {
	y, i, err := p.Arg.Parse(ctx, b, st)
	if err != nil {
		return nil, i, errors.Wrap(err, "first arg")
	}

	x, ok := y.(ast.Expr)
	if !ok {
		return nil, i, errors.New("Expr expected, got %T", y)
	}

	for i < len(b) {
		var op any
		opst := i
		op, i, err = p.Op.Parse(ctx, b, i)
		if i == opst {
			err = nil
			break
		}
		if err != nil {
			return nil, i, errors.Wrap(err, "op")
		}

		c, ok := op.(BinOper)
		if !ok {
			return nil, i, errors.New("BinOper expected, got %T", op)
		}

		var r any
		r, i, err = p.Arg.Parse(ctx, b, i)
		if err != nil {
			return nil, i, errors.Wrap(err, "arg")
		}

		x, err = c.BinOp(x, r.(ast.Expr))
		if err != nil {
			return nil, i, errors.Wrap(err, "%v", c)
		}
	}

	return x, i, nil
}

func (p Op) Parse(ctx context.Context, b []byte, st int) (x any, i int, err error) {
	_, i, err = Const(p.String()).Parse(ctx, b, st)
	if err != nil {
		return nil, st, err
	}

	return p, i, nil
}

func (p Op) BinOp(l, r ast.Expr) (ast.Expr, error) {
	return ast.Infix{
		Base: ast.Base{
			Pos: l.Span().Pos,
			End: r.Span().End,
		},
		Op:    ast.InfixOp(p),
		Left:  l,
		Right: r,
	}, nil
}

func (p Op) String() string { return ast.InfixOp(p).String() }
