package parse

import (
	"context"

	"tlog.app/go/errors"

	"github.com/slowlang/calc/compiler/ast"
)

type (
	// Expr is the whole expression grammar: sums of products of unaries.
	Expr struct{}

	Term struct{}

	Unary struct{}

	Primary struct{}

	Mem struct{}

	Paren struct{}
)

func (p Expr) Parse(ctx context.Context, b []byte, st int) (x any, i int, err error) {
	r := LeftToRight{
		Op:  Tok(AnyOf{Op(ast.Add), Op(ast.Sub)}),
		Arg: Term{},
	}

	return r.Parse(ctx, b, st)
}

func (p Term) Parse(ctx context.Context, b []byte, st int) (x any, i int, err error) {
	r := LeftToRight{
		Op:  Tok(AnyOf{Op(ast.Mul), Op(ast.Div)}),
		Arg: Unary{},
	}

	return r.Parse(ctx, b, st)
}

func (p Unary) Parse(ctx context.Context, b []byte, st int) (_ any, i int, err error) {
	vst := SpaceAll.Skip(b, st)

	if vst == len(b) || b[vst] != '+' && b[vst] != '-' {
		return Primary{}.Parse(ctx, b, st)
	}

	op := ast.Plus
	if b[vst] == '-' {
		op = ast.Minus
	}

	y, i, err := p.Parse(ctx, b, vst+1)
	if err != nil {
		return nil, i, errors.Wrap(err, "%v operand", op)
	}

	x := y.(ast.Expr)

	return ast.Prefix{
		Base: ast.Base{
			Pos: vst,
			End: x.Span().End,
		},
		Op: op,
		X:  x,
	}, i, nil
}

func (p Primary) Parse(ctx context.Context, b []byte, st int) (x any, i int, err error) {
	r := AnyOf{
		Tok(Mem{}),
		Tok(Int{}),
		Paren{},
	}

	return r.Parse(ctx, b, st)
}

func (p Mem) Parse(ctx context.Context, b []byte, st int) (x any, i int, err error) {
	_, i, err = Keyword("mem").Parse(ctx, b, st)
	if err != nil {
		return nil, st, err
	}

	return ast.Mem{
		Base: ast.Base{
			Pos: st,
			End: i,
		},
	}, i, nil
}

func (p Paren) Parse(ctx context.Context, b []byte, st int) (x any, i int, err error) {
	r := AllOf{
		Tok(Const("(")),
		Expr{},
		Tok(Const(")")),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return nil, i, err
	}

	xt := x.([]any)

	return ast.Paren{
		Base: ast.Base{
			Pos: SpaceAll.Skip(b, st),
			End: i,
		},
		X: xt[1].(ast.Expr),
	}, i, nil
}
