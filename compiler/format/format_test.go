package format

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/calc/compiler/ast"
	"github.com/slowlang/calc/compiler/parse"
)

func TestFormatParsed(t *testing.T) {
	ctx := context.Background()

	p, err := parse.Parse(ctx, []byte("{3+4*2;print(mem);  -7/ 2 ;1-(2-3);}"))
	require.NoError(t, err)

	b, err := Format(ctx, nil, p)
	require.NoError(t, err)

	assert.Equal(t, "3 + 4 * 2;\nprint (mem);\n-7 / 2;\n1 - (2 - 3);\n", string(b))
}

func TestFormatPrecedence(t *testing.T) {
	ctx := context.Background()

	one, two, three := ast.Int{Value: 1}, ast.Int{Value: 2}, ast.Int{Value: 3}

	for _, tc := range []struct {
		x    ast.Expr
		want string
	}{
		{ast.Infix{Op: ast.Mul, Left: ast.Infix{Op: ast.Add, Left: one, Right: two}, Right: three}, "(1 + 2) * 3"},
		{ast.Infix{Op: ast.Sub, Left: one, Right: ast.Infix{Op: ast.Sub, Left: two, Right: three}}, "1 - (2 - 3)"},
		{ast.Infix{Op: ast.Sub, Left: ast.Infix{Op: ast.Sub, Left: one, Right: two}, Right: three}, "1 - 2 - 3"},
		{ast.Prefix{Op: ast.Minus, X: ast.Infix{Op: ast.Add, Left: one, Right: ast.Mem{}}}, "-(1 + mem)"},
		{ast.Prefix{Op: ast.Plus, X: ast.Prefix{Op: ast.Minus, X: three}}, "+-3"},
	} {
		b, err := Format(ctx, nil, tc.x)
		require.NoError(t, err)

		assert.Equal(t, tc.want, string(b))
	}
}

func TestFormatStmt(t *testing.T) {
	b, err := Format(context.Background(), []byte("x: "), ast.PrintStmt{X: ast.Mem{}})
	require.NoError(t, err)

	assert.Equal(t, "x: print mem;\n", string(b))
}

func TestFormatUnsupported(t *testing.T) {
	_, err := Format(context.Background(), nil, 5)
	assert.Error(t, err)
}
