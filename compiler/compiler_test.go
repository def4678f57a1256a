package compiler

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/calc/compiler/back"
	"github.com/slowlang/calc/compiler/sim"
)

var programs = []string{
	"3+4*2;print mem;",
	"(3+4)*2;print mem;",
	"10/3;print mem;",
	"-7/2;print mem;",
	"1+1;2+2;print mem;",
	"5; mem*mem - mem; print mem/-3; mem - (mem + 1) * mem;",
	"{ 2; print -mem; print +mem; mem*mem*mem*mem; }",
	"100; mem / 7 / 2; print mem; print (mem - 10) * -(mem);",
	"",
	"print 0;",
}

func TestCompile(t *testing.T) {
	obj, err := Compile(context.Background(), "a.calc", []byte("1+2;print mem;"))
	require.NoError(t, err)

	assert.Equal(t, back.Runtime+`
@mem = global i64 0

define void @main() {
  %1 = add i64 1, 2
  store i64 %1, i64* @mem
  %2 = load i64, i64* @mem
  call void @print(i64 %2)
  ret void
}
`, string(obj))
}

func TestCompileDeterministic(t *testing.T) {
	for _, src := range programs {
		a, err := Compile(context.Background(), "a.calc", []byte(src))
		require.NoError(t, err)

		b, err := Compile(context.Background(), "a.calc", []byte(src))
		require.NoError(t, err)

		assert.Equal(t, a, b)
	}
}

func TestCheck(t *testing.T) {
	for _, src := range programs {
		src := src

		t.Run(src, func(t *testing.T) {
			require.NoError(t, Check(context.Background(), "a.calc", []byte(src)))
		})
	}
}

func TestCheckDivisionByZero(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, Check(ctx, "a.calc", []byte("1; mem/(mem-1);")))
	require.NoError(t, Check(ctx, "a.calc", []byte("7; print 3; print mem; 1/0; print 4;")))
}

func TestMinInt(t *testing.T) {
	ctx := context.Background()
	src := []byte("-9223372036854775807-1; print mem;")

	env, err := Eval(ctx, "a.calc", src, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(math.MinInt64), env.Mem)
	assert.Equal(t, []int64{math.MinInt64}, env.Printed)

	require.NoError(t, Check(ctx, "a.calc", src))
}

func TestCompileSources(t *testing.T) {
	ctx := context.Background()

	obj, err := CompileSources(ctx,
		Source{Name: "a.calc", Text: []byte("1;")},
		Source{Name: "b.calc", Text: []byte("mem+2; print mem;")},
	)
	require.NoError(t, err)

	assert.Equal(t, 1, bytes.Count(obj, []byte("@.str =")))
	assert.Equal(t, 1, bytes.Count(obj, []byte("define void @main()")))

	res, err := sim.Run(ctx, "ab.ll", obj)
	require.NoError(t, err)

	assert.Equal(t, []int64{3}, res.Printed)
	assert.Equal(t, int64(3), res.Globals["mem"])

	_, err = CompileSources(ctx,
		Source{Name: "a.calc", Text: []byte("1;")},
		Source{Name: "b.calc", Text: []byte("2+;")},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b.calc:1:")

	_, err = CompileSources(ctx)
	assert.Error(t, err)
}

func TestCompileFile(t *testing.T) {
	ctx := context.Background()
	name := filepath.Join(t.TempDir(), "a.calc")

	err := os.WriteFile(name, []byte("1+2;print mem;"), 0o644)
	require.NoError(t, err)

	obj, err := CompileFile(ctx, name)
	require.NoError(t, err)

	exp, err := Compile(ctx, name, []byte("1+2;print mem;"))
	require.NoError(t, err)

	assert.Equal(t, string(exp), string(obj))

	err = os.WriteFile(name, []byte("\n1+;"), 0o644)
	require.NoError(t, err)

	_, err = CompileFile(ctx, name)
	require.Error(t, err)
	assert.Contains(t, err.Error(), name+":2:")
}

func TestFormat(t *testing.T) {
	ctx := context.Background()

	b, err := Format(ctx, "a.calc", []byte("print(1+2)*3;"))
	require.NoError(t, err)

	assert.Equal(t, "print (1 + 2) * 3;\n", string(b))

	_, err = Format(ctx, "a.calc", []byte("1+;"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.calc:1:")
}

func TestFinalMemory(t *testing.T) {
	ctx := context.Background()

	for _, src := range []string{"3+4*2;", "1+1;2+2;", "-7/2;", "5; mem*mem - 3*mem;"} {
		env, err := Eval(ctx, "a.calc", []byte(src), nil)
		require.NoError(t, err)

		obj, err := Compile(ctx, "a.calc", []byte(src))
		require.NoError(t, err)

		res, err := sim.Run(ctx, "a.ll", obj)
		require.NoError(t, err)

		assert.Equal(t, env.Mem, res.Globals["mem"], "%s", src)
		assert.Empty(t, res.Printed)
	}
}

func TestEval(t *testing.T) {
	var out bytes.Buffer

	env, err := Eval(context.Background(), "a.calc", []byte("3+4*2;print mem;(3+4)*2;print mem;"), &out)
	require.NoError(t, err)

	assert.Equal(t, "11\n14\n", out.String())
	assert.Equal(t, int64(14), env.Mem)
}

func TestErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Compile(ctx, "a.calc", []byte("1+;"))
	assert.Error(t, err)

	_, err = Eval(ctx, "a.calc", []byte("print 1/0;"), nil)
	assert.Error(t, err)

	_, err = CompileFile(ctx, "does/not/exist.calc")
	assert.Error(t, err)
}

func TestMismatchError(t *testing.T) {
	err := MismatchError{What: "mem", Eval: int64(1), Sim: int64(2)}

	assert.Equal(t, "mem mismatch: eval 1, compiled 2", err.Error())
}
