package parse

import (
	"context"

	"tlog.app/go/errors"

	"github.com/slowlang/calc/compiler/ast"
)

type (
	Program struct{}

	Stmt struct{}

	PrintStmt struct{}

	ExprStmt struct{}
)

func (p Program) Parse(ctx context.Context, b []byte, st int) (x any, i int, err error) {
	prog := &ast.Program{
		Base: ast.Base{
			Pos: SpaceAll.Skip(b, st),
		},
	}

	prog.Stmts, i, err = stmts(ctx, b, st, false)
	if err != nil {
		return nil, i, err
	}

	prog.End = i

	return prog, i, nil
}

// stmts parses statements and brace-wrapped blocks of them.
func stmts(ctx context.Context, b []byte, st int, block bool) (l []ast.Stmt, i int, err error) {
	i = st

	for {
		j := SpaceAll.Skip(b, i)

		if j == len(b) {
			if block {
				return nil, j, errors.New(`"}" expected`)
			}

			return l, i, nil
		}

		switch b[j] {
		case '}':
			if !block {
				return l, i, nil
			}

			return l, j + 1, nil
		case '{':
			var sub []ast.Stmt

			sub, i, err = stmts(ctx, b, j+1, true)
			if err != nil {
				return nil, i, errors.Wrap(err, "block")
			}

			l = append(l, sub...)

			continue
		}

		var s any

		s, i, err = Stmt{}.Parse(ctx, b, i)
		if err != nil {
			return nil, i, errors.Wrap(err, "stmt %d", len(l))
		}

		l = append(l, s.(ast.Stmt))
	}
}

func (p Stmt) Parse(ctx context.Context, b []byte, st int) (x any, i int, err error) {
	r := AnyOf{
		PrintStmt{},
		ExprStmt{},
	}

	return r.Parse(ctx, b, st)
}

func (p PrintStmt) Parse(ctx context.Context, b []byte, st int) (x any, i int, err error) {
	r := AllOf{
		Tok(Keyword("print")),
		Expr{},
		Tok(Const(";")),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return nil, i, err
	}

	xt := x.([]any)

	return ast.PrintStmt{
		Base: ast.Base{
			Pos: SpaceAll.Skip(b, st),
			End: i,
		},
		X: xt[1].(ast.Expr),
	}, i, nil
}

func (p ExprStmt) Parse(ctx context.Context, b []byte, st int) (x any, i int, err error) {
	r := AllOf{
		Expr{},
		Tok(Const(";")),
	}

	x, i, err = r.Parse(ctx, b, st)
	if err != nil {
		return nil, i, err
	}

	xt := x.([]any)

	return ast.ExprStmt{
		Base: ast.Base{
			Pos: SpaceAll.Skip(b, st),
			End: i,
		},
		X: xt[0].(ast.Expr),
	}, i, nil
}
