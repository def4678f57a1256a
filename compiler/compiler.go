package compiler

import (
	"context"
	"fmt"
	"io"
	"slices"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/calc/compiler/ast"
	"github.com/slowlang/calc/compiler/back"
	"github.com/slowlang/calc/compiler/eval"
	"github.com/slowlang/calc/compiler/format"
	"github.com/slowlang/calc/compiler/front"
	"github.com/slowlang/calc/compiler/ir"
	"github.com/slowlang/calc/compiler/parse"
	"github.com/slowlang/calc/compiler/sim"
)

type (
	// Source is a named program text.
	Source struct {
		Name string
		Text []byte
	}

	// MismatchError is returned by Check when the evaluator
	// and the compiled program disagree.
	MismatchError struct {
		What string
		Eval any
		Sim  any
	}
)

func CompileFile(ctx context.Context, name string) (obj []byte, err error) {
	p, err := parse.ParseFile(ctx, name)
	if err != nil {
		return nil, errors.Wrap(err, "parse file")
	}

	tlog.SpanFromContext(ctx).Printw("parsed file", "stmts", len(p.Stmts), "name", name)

	return emit(ctx, p), nil
}

// Compile translates program text into LLVM text.
func Compile(ctx context.Context, name string, text []byte) (obj []byte, err error) {
	return CompileSources(ctx, Source{Name: name, Text: text})
}

// CompileSources translates all the sources as a single program,
// statements running in the order of srcs.
func CompileSources(ctx context.Context, srcs ...Source) (obj []byte, err error) {
	if len(srcs) == 0 {
		return nil, errors.New("no sources")
	}

	s := parse.New()

	for _, src := range srcs {
		s.AddFile(src.Name, src.Text)
	}

	p, err := s.Parse(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "parse text")
	}

	return emit(ctx, p), nil
}

// Format parses text and prints it in canonical form.
func Format(ctx context.Context, name string, text []byte) ([]byte, error) {
	p, err := parseText(ctx, name, text)
	if err != nil {
		return nil, err
	}

	return format.Format(ctx, nil, p)
}

// Lower parses text and lowers it into a new IR Context.
func Lower(ctx context.Context, name string, text []byte) (c *ir.Context, err error) {
	p, err := parseText(ctx, name, text)
	if err != nil {
		return nil, err
	}

	c = ir.New()

	front.Lower(ctx, c, p)

	return c, nil
}

// Eval interprets program text printing to w.
func Eval(ctx context.Context, name string, text []byte, w io.Writer) (env *eval.Env, err error) {
	p, err := parseText(ctx, name, text)
	if err != nil {
		return nil, err
	}

	env = eval.New(w)

	err = env.Run(ctx, p)
	if err != nil {
		return env, errors.Wrap(err, "eval")
	}

	return env, nil
}

// Check runs the program through the evaluator and through compilation
// and execution of the emitted code and compares the outcomes.
func Check(ctx context.Context, name string, text []byte) (err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "check", "name", name)
	defer tr.Finish("err", &err)

	p, err := parseText(ctx, name, text)
	if err != nil {
		return err
	}

	env := eval.New(nil)
	everr := env.Run(ctx, p)

	obj := emit(ctx, p)

	res, simerr := sim.Run(ctx, name, obj)

	switch {
	case errors.Is(everr, eval.ErrDivisionByZero) && errors.Is(simerr, sim.ErrDivisionByZero):
		// both stopped at the same statement, compare what was done before it
	case everr != nil:
		return errors.Wrap(everr, "eval")
	case simerr != nil:
		return errors.Wrap(simerr, "run compiled")
	}

	if !slices.Equal(env.Printed, res.Printed) {
		return MismatchError{What: "printed", Eval: env.Printed, Sim: res.Printed}
	}

	if m := res.Globals[ir.MemName]; m != env.Mem {
		return MismatchError{What: "mem", Eval: env.Mem, Sim: m}
	}

	return nil
}

func emit(ctx context.Context, p *ast.Program) []byte {
	c := ir.New()

	front.Lower(ctx, c, p)

	return back.Emit(ctx, nil, c)
}

func parseText(ctx context.Context, name string, text []byte) (*ast.Program, error) {
	s := parse.New()

	s.AddFile(name, text)

	p, err := s.Parse(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "parse text")
	}

	return p, nil
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("%s mismatch: eval %v, compiled %v", e.What, e.Eval, e.Sim)
}
