package format

import (
	"context"
	"strconv"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/slowlang/calc/compiler/ast"
)

// Format appends canonical source text of x to b.
func Format(ctx context.Context, b []byte, x any) ([]byte, error) {
	switch x := x.(type) {
	case *ast.Program:
		return formatProgram(ctx, b, x)
	case ast.Stmt:
		return formatStmt(ctx, b, x)
	case ast.Expr:
		return formatExpr(ctx, b, x, 0)
	default:
		return nil, errors.New("unsupported type: %T", x)
	}
}

func formatProgram(ctx context.Context, b []byte, x *ast.Program) (_ []byte, err error) {
	for i, s := range x.Stmts {
		b, err = formatStmt(ctx, b, s)
		if err != nil {
			return nil, errors.Wrap(err, "stmt %d", i)
		}
	}

	return b, nil
}

func formatStmt(ctx context.Context, b []byte, x ast.Stmt) (_ []byte, err error) {
	switch s := x.(type) {
	case ast.ExprStmt:
		b, err = formatExpr(ctx, b, s.X, 0)
		if err != nil {
			return nil, errors.Wrap(err, "expr")
		}
	case ast.PrintStmt:
		b = append(b, "print "...)

		b, err = formatExpr(ctx, b, s.X, 0)
		if err != nil {
			return nil, errors.Wrap(err, "expr")
		}
	default:
		return nil, errors.New("unsupported stmt: %T", x)
	}

	b = append(b, ";\n"...)

	return b, nil
}

// formatExpr wraps x into parentheses if it binds weaker than prec.
func formatExpr(ctx context.Context, b []byte, x ast.Expr, prec int) (_ []byte, err error) {
	switch x := x.(type) {
	case ast.Mem:
		b = append(b, "mem"...)
	case ast.Int:
		b = strconv.AppendInt(b, x.Value, 10)
	case ast.Paren:
		b = append(b, '(')

		b, err = formatExpr(ctx, b, x.X, 0)
		if err != nil {
			return nil, errors.Wrap(err, "paren")
		}

		b = append(b, ')')
	case ast.Prefix:
		b = append(b, x.Op.String()...)

		b, err = formatExpr(ctx, b, x.X, 3)
		if err != nil {
			return nil, errors.Wrap(err, "operand")
		}
	case ast.Infix:
		p := x.Op.Precedence()

		if p < prec {
			b = append(b, '(')
		}

		b, err = formatExpr(ctx, b, x.Left, p)
		if err != nil {
			return nil, errors.Wrap(err, "left")
		}

		b = hfmt.Appendf(b, " %v ", x.Op)

		b, err = formatExpr(ctx, b, x.Right, p+1)
		if err != nil {
			return nil, errors.Wrap(err, "right")
		}

		if p < prec {
			b = append(b, ')')
		}
	default:
		return nil, errors.New("unsupported expr: %T", x)
	}

	return b, nil
}
