package sim

import (
	"context"

	"github.com/llir/llvm/asm"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

type (
	// Result is the observable outcome of running @main.
	Result struct {
		Globals map[string]int64
		Printed []int64
	}

	machine struct {
		cells map[value.Value]int64 // globals and stack slots
		regs  map[value.Value]int64

		printed []int64
	}
)

var ErrDivisionByZero = errors.New("division by zero")

// Run parses the LLVM text and executes its main function.
func Run(ctx context.Context, name string, text []byte) (*Result, error) {
	m, err := asm.ParseString(name, string(text))
	if err != nil {
		return nil, errors.Wrap(err, "parse llvm")
	}

	return RunModule(ctx, m)
}

// RunModule executes @main of mod.
// If an instruction fails, the partial Result is returned along with the error.
func RunModule(ctx context.Context, mod *ir.Module) (res *Result, err error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "sim: run module", "globals", len(mod.Globals), "funcs", len(mod.Funcs))
	defer tr.Finish("err", &err)

	m := &machine{
		cells: make(map[value.Value]int64),
		regs:  make(map[value.Value]int64),
	}

	res = &Result{
		Globals: make(map[string]int64),
	}

	var ints []*ir.Global

	for _, g := range mod.Globals {
		if _, ok := g.ContentType.(*types.IntType); !ok {
			continue
		}

		var v int64

		switch init := g.Init.(type) {
		case nil:
		case *constant.Int:
			v = init.X.Int64()
		default:
			return nil, errors.New("global %v: unsupported initializer %v", g.Ident(), init)
		}

		m.cells[g] = v
		ints = append(ints, g)
	}

	var main *ir.Func

	for _, f := range mod.Funcs {
		if f.Name() == "main" {
			main = f
		}
	}

	if main == nil {
		return nil, errors.New("no main function")
	}

	if len(main.Blocks) != 1 {
		return nil, errors.New("main: %d blocks, want 1", len(main.Blocks))
	}

	blk := main.Blocks[0]

	for i, x := range blk.Insts {
		err = m.exec(x)
		if err != nil {
			// state observed up to the failed instruction
			m.collect(res, ints)

			return res, errors.Wrap(err, "inst %d: %v", i, x.LLString())
		}

		tr.V("sim_step").Printw("step", "i", i, "inst", x.LLString())
	}

	if _, ok := blk.Term.(*ir.TermRet); !ok {
		return nil, errors.New("main: unsupported terminator %v", blk.Term.LLString())
	}

	m.collect(res, ints)

	return res, nil
}

func (m *machine) collect(res *Result, ints []*ir.Global) {
	for _, g := range ints {
		res.Globals[g.Name()] = m.cells[g]
	}

	res.Printed = m.printed
}

func (m *machine) exec(x ir.Instruction) (err error) {
	switch x := x.(type) {
	case *ir.InstAlloca:
		if _, ok := x.ElemType.(*types.IntType); !ok {
			return errors.New("unsupported alloca type: %v", x.ElemType)
		}

		m.cells[x] = 0
	case *ir.InstLoad:
		v, ok := m.cells[x.Src]
		if !ok {
			return errors.New("load from unknown location %v", x.Src.Ident())
		}

		m.regs[x] = v
	case *ir.InstStore:
		if _, ok := m.cells[x.Dst]; !ok {
			return errors.New("store to unknown location %v", x.Dst.Ident())
		}

		v, err := m.value(x.Src)
		if err != nil {
			return err
		}

		m.cells[x.Dst] = v
	case *ir.InstAdd:
		return m.binary(x, x.X, x.Y, func(l, r int64) (int64, error) { return l + r, nil })
	case *ir.InstSub:
		return m.binary(x, x.X, x.Y, func(l, r int64) (int64, error) { return l - r, nil })
	case *ir.InstMul:
		return m.binary(x, x.X, x.Y, func(l, r int64) (int64, error) { return l * r, nil })
	case *ir.InstSDiv:
		return m.binary(x, x.X, x.Y, func(l, r int64) (int64, error) {
			if r == 0 {
				return 0, ErrDivisionByZero
			}

			return l / r, nil
		})
	case *ir.InstCall:
		f, ok := x.Callee.(*ir.Func)
		if !ok || f.Name() != "print" || len(x.Args) != 1 {
			return errors.New("unsupported call: %v", x.LLString())
		}

		v, err := m.value(x.Args[0])
		if err != nil {
			return err
		}

		m.printed = append(m.printed, v)
	default:
		return errors.New("unsupported instruction: %T", x)
	}

	return nil
}

func (m *machine) binary(x value.Value, l, r value.Value, f func(l, r int64) (int64, error)) error {
	lv, err := m.value(l)
	if err != nil {
		return errors.Wrap(err, "left")
	}

	rv, err := m.value(r)
	if err != nil {
		return errors.Wrap(err, "right")
	}

	v, err := f(lv, rv)
	if err != nil {
		return err
	}

	m.regs[x] = v

	return nil
}

func (m *machine) value(v value.Value) (int64, error) {
	if c, ok := v.(*constant.Int); ok {
		return c.X.Int64(), nil
	}

	x, ok := m.regs[v]
	if !ok {
		return 0, errors.New("undefined value %v", v.Ident())
	}

	return x, nil
}
