package back

import (
	"context"
	"strconv"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/slowlang/calc/compiler/ir"
)

// Runtime is the fixed prelude of every program.
// It defines print(i64) on top of libc printf.
const Runtime = `@.str = private unnamed_addr constant [6 x i8] c"%lld\0A\00", align 1

declare i32 @printf(i8*, ...)

define void @print(i64 %x) {
entry:
  %fmt = getelementptr inbounds [6 x i8], [6 x i8]* @.str, i64 0, i64 0
  %r = call i32 (i8*, ...) @printf(i8* %fmt, i64 %x)
  ret void
}
`

// Emit appends the LLVM text of the program held by c to b.
// c becomes read only.
func Emit(ctx context.Context, b []byte, c *ir.Context) []byte {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "back: emit", "values", len(c.Exprs), "code", len(c.Code))
	defer tr.Finish()

	c.Freeze()

	if err := c.Verify(); err != nil {
		panic(ir.DefectError{
			Msg: "verify: " + err.Error(),
			PC:  loc.Caller(0),
		})
	}

	st := len(b)

	b = append(b, Runtime...)
	b = append(b, '\n')

	for _, id := range c.Globals {
		g := c.Get(id).(ir.Global)

		b = hfmt.Appendf(b, "@%s = global %v 0\n", g.Name, scalar(g.Type))
	}

	b = append(b, "\ndefine void @main() {\n"...)

	for i, id := range c.Code {
		x := c.Get(id).(ir.Instr)

		if tr.If("dump_code") {
			tr.Printw("code", "i", i, "id", id, "typ", tlog.NextAsType, x, "val", x)
		}

		b = append(b, "  "...)
		b = emitInstr(b, c, x)
		b = append(b, '\n')
	}

	b = append(b, "  ret void\n}\n"...)

	tr.Printw("emitted", "size", len(b)-st)

	return b
}

func emitInstr(b []byte, c *ir.Context, x ir.Instr) []byte {
	switch x := x.(type) {
	case ir.Load:
		src := c.Get(x.Src)

		return hfmt.Appendf(b, "%s = load %v, %v* %s", x.Name, ir.Int, scalar(ir.TypeOf(src)), operand(c, x.Src))
	case ir.Store:
		dst := c.Get(x.Dst)

		return hfmt.Appendf(b, "store %v %s, %v* %s", ir.Int, operand(c, x.Src), scalar(ir.TypeOf(dst)), operand(c, x.Dst))
	case ir.Alloca:
		return hfmt.Appendf(b, "%s = alloca %v", x.Name, scalar(x.Type))
	case ir.BinOp:
		return hfmt.Appendf(b, "%s = %v %v %s, %s", x.Name, x.Op, ir.Int, operand(c, x.L), operand(c, x.R))
	case ir.PrintInt:
		return hfmt.Appendf(b, "call void @print(%v %s)", ir.Int, operand(c, x.X))
	default:
		panic(x)
	}
}

// operand renders the handle as it appears in an instruction argument.
func operand(c *ir.Context, id ir.Expr) string {
	switch x := c.Get(id).(type) {
	case ir.Global:
		return "@" + x.Name
	case ir.Const:
		return strconv.FormatInt(int64(x), 10)
	case ir.Load, ir.Alloca, ir.BinOp:
		return ir.NameOf(x)
	default:
		panic(x)
	}
}

func scalar(t ir.Type) ir.Type {
	if t != ir.Int {
		panic(t)
	}

	return t
}
