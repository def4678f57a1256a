package ir

import (
	"tlog.app/go/tlog/tlwire"
)

type (
	// Expr is a handle of a Value in a Context arena.
	Expr int

	Type int
	Op   int

	Value interface {
		value()
	}

	Instr interface {
		Value
		In() []Expr
	}

	Global struct {
		Name string
		Type Type
	}

	Const int64

	Load struct {
		Name string
		Src  Expr
	}

	Store struct {
		Src Expr
		Dst Expr
	}

	// Alloca is never produced by lowering.
	Alloca struct {
		Name string
		Type Type
	}

	BinOp struct {
		Name string
		Op   Op
		L, R Expr
	}

	PrintInt struct {
		X Expr
	}
)

const (
	Void Type = iota
	Int
)

const (
	Add Op = iota
	Sub
	Mul
	Div
)

const (
	Nil Expr = -1
)

func (Global) value()   {}
func (Const) value()    {}
func (Load) value()     {}
func (Store) value()    {}
func (Alloca) value()   {}
func (BinOp) value()    {}
func (PrintInt) value() {}

func (x Load) In() []Expr     { return []Expr{x.Src} }
func (x Store) In() []Expr    { return []Expr{x.Src, x.Dst} }
func (x Alloca) In() []Expr   { return nil }
func (x BinOp) In() []Expr    { return []Expr{x.L, x.R} }
func (x PrintInt) In() []Expr { return []Expr{x.X} }

// NameOf returns the symbolic name of v.
// Constants and instructions without a result have no name.
func NameOf(v Value) string {
	switch v := v.(type) {
	case Global:
		return v.Name
	case Const:
		return ""
	case Load:
		return v.Name
	case Store:
		return ""
	case Alloca:
		return v.Name
	case BinOp:
		return v.Name
	case PrintInt:
		return ""
	default:
		panic(v)
	}
}

func TypeOf(v Value) Type {
	switch v := v.(type) {
	case Global:
		return v.Type
	case Const, Load, BinOp:
		return Int
	case Alloca:
		return v.Type
	case Store, PrintInt:
		return Void
	default:
		panic(v)
	}
}

// HasResult reports whether v can be used as an operand.
func HasResult(v Value) bool {
	switch v.(type) {
	case Global, Const, Load, Alloca, BinOp:
		return true
	case Store, PrintInt:
		return false
	default:
		panic(v)
	}
}

func (t Type) String() string {
	switch t {
	case Void:
		return "void"
	case Int:
		return "i64"
	default:
		panic(int(t))
	}
}

func (op Op) String() string {
	switch op {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "sdiv"
	default:
		panic(int(op))
	}
}

func (op Op) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	return e.AppendString(b, op.String())
}
