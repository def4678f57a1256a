package parse

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/calc/compiler/ast"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want string
	}{
		{"3+4*2;print mem;", "(+ 3 (* 4 2)); print mem"},
		{"(3+4)*2;", "(* (paren (+ 3 4)) 2)"},
		{"1-2-3;", "(- (- 1 2) 3)"},
		{"8/4/2;", "(/ (/ 8 4) 2)"},
		{"1-2*3+4;", "(+ (- 1 (* 2 3)) 4)"},
		{"-+5;", "(- (+ 5))"},
		{"--mem;", "(- (- mem))"},
		{"((5));", "(paren (paren 5))"},
		{"-7/2;", "(/ (- 7) 2)"},
		{"2*-3;", "(* 2 (- 3))"},
		{"print(1);", "print (paren 1)"},
		{"print -1;", "print (- 1)"},
		{"  mem \n *\tmem ;  ", "(* mem mem)"},
		{"{ 1; print mem; }", "1; print mem"},
		{"{1;}{2;}", "1; 2"},
		{"1; # comment\nprint mem; # more", "1; print mem"},
		{"", ""},
		{"9223372036854775807;", "9223372036854775807"},
	} {
		tc := tc

		t.Run(tc.src, func(t *testing.T) {
			p, err := Parse(context.Background(), []byte(tc.src))
			require.NoError(t, err)

			assert.Equal(t, tc.want, sprog(p))
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		"1",
		"1+;",
		"print;",
		"print mem",
		"(1;",
		"1);",
		"mem3;",
		"12ab;",
		"99999999999999999999;",
		"-9223372036854775808;", // literal is unsigned, minus is an operator
		"{ 1;",
		"1; }",
		"x;",
	} {
		src := src

		t.Run(src, func(t *testing.T) {
			_, err := Parse(context.Background(), []byte(src))
			require.Error(t, err)

			var perr Error
			require.ErrorAs(t, err, &perr)
		})
	}
}

func TestErrorPosition(t *testing.T) {
	s := New()
	s.AddFile("a.calc", []byte("1;\n"))
	s.AddFile("b.calc", []byte("print 1;\n2+;"))

	_, err := s.Parse(context.Background())
	require.Error(t, err)

	var perr Error
	require.ErrorAs(t, err, &perr)

	assert.Equal(t, "b.calc", perr.File)
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, 3, perr.Col)
	assert.True(t, strings.HasPrefix(perr.Error(), "b.calc:2:3: "), "%v", perr)
}

func TestPartialRead(t *testing.T) {
	_, err := Parse(context.Background(), []byte("1; }"))

	var pr PartialReadError
	require.ErrorAs(t, err, &pr)
	assert.Equal(t, 3, pr.End)
}

func TestPositions(t *testing.T) {
	p, err := Parse(context.Background(), []byte("print 12 + mem;"))
	require.NoError(t, err)
	require.Len(t, p.Stmts, 1)

	s := p.Stmts[0].(ast.PrintStmt)
	assert.Equal(t, ast.Base{Pos: 0, End: 15}, s.Base)

	x := s.X.(ast.Infix)
	assert.Equal(t, ast.Base{Pos: 6, End: 14}, x.Base)
	assert.Equal(t, ast.Base{Pos: 6, End: 8}, x.Left.Span())
	assert.Equal(t, ast.Base{Pos: 11, End: 14}, x.Right.Span())
}

func sprog(p *ast.Program) string {
	var l []string

	for _, s := range p.Stmts {
		switch s := s.(type) {
		case ast.ExprStmt:
			l = append(l, sexpr(s.X))
		case ast.PrintStmt:
			l = append(l, "print "+sexpr(s.X))
		}
	}

	return strings.Join(l, "; ")
}

func sexpr(x ast.Expr) string {
	switch x := x.(type) {
	case ast.Mem:
		return "mem"
	case ast.Int:
		return fmt.Sprintf("%d", x.Value)
	case ast.Paren:
		return "(paren " + sexpr(x.X) + ")"
	case ast.Prefix:
		return fmt.Sprintf("(%v %s)", x.Op, sexpr(x.X))
	case ast.Infix:
		return fmt.Sprintf("(%v %s %s)", x.Op, sexpr(x.Left), sexpr(x.Right))
	}

	return fmt.Sprintf("<%T>", x)
}
