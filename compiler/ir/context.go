package ir

import (
	"fmt"

	"tlog.app/go/loc"
)

type (
	// Context owns the IR of one compilation unit.
	// It is not safe for concurrent use.
	Context struct {
		Exprs   []Value
		Code    []Expr
		Globals []Expr

		globals map[string]Expr
		next    int

		sealed bool // no more globals
		frozen bool // read only
	}

	// DefectError is raised by panic when an IR invariant is broken.
	DefectError struct {
		Msg string
		PC  loc.PC
	}
)

// MemName is the name of the single persistent memory cell.
const MemName = "mem"

// New creates a Context with the mem global registered.
func New() *Context {
	c := &Context{
		globals: make(map[string]Expr),
		next:    1,
	}

	c.CreateGlobal(MemName)

	return c
}

func (c *Context) CreateGlobal(name string) Expr {
	c.writable()

	if c.sealed {
		defect("global %q created after lowering started", name)
	}

	if _, ok := c.globals[name]; ok {
		defect("global %q created twice", name)
	}

	id := c.alloc(Global{Name: name, Type: Int})

	c.globals[name] = id
	c.Globals = append(c.Globals, id)

	return id
}

// Global returns the handle of the global registered under name.
func (c *Context) Global(name string) Expr {
	id, ok := c.globals[name]
	if !ok {
		defect("no such global: %q", name)
	}

	return id
}

func (c *Context) Mem() Expr { return c.Global(MemName) }

// Alloc appends v to the arena and returns its handle.
func (c *Context) Alloc(v Value) Expr {
	c.writable()

	if _, ok := v.(Global); ok {
		defect("globals must be created with CreateGlobal")
	}

	for _, in := range operands(v) {
		c.operand(in, c.id())
	}

	c.sealed = true

	return c.alloc(v)
}

// NextName returns a fresh result name.
func (c *Context) NextName() string {
	c.writable()

	name := fmt.Sprintf("%%%d", c.next)
	c.next++

	return name
}

// Record appends the instruction id to the program code.
func (c *Context) Record(id Expr) {
	c.writable()

	x, ok := c.Get(id).(Instr)
	if !ok {
		defect("record non-instruction %d (%T)", id, c.Exprs[id])
	}

	if l := len(c.Code); l != 0 && c.Code[l-1] >= id {
		defect("record %d out of order: last recorded %d", id, c.Code[l-1])
	}

	for _, in := range x.In() {
		c.operand(in, id)
	}

	c.Code = append(c.Code, id)
}

// Get returns the value behind the handle.
func (c *Context) Get(id Expr) Value {
	if id < 0 || int(id) >= len(c.Exprs) {
		defect("dangling handle %d (arena size %d)", id, len(c.Exprs))
	}

	return c.Exprs[id]
}

// Freeze makes the Context read only.
func (c *Context) Freeze() { c.frozen = true }

func (c *Context) Frozen() bool { return c.frozen }

func (c *Context) id() Expr {
	return Expr(len(c.Exprs))
}

func (c *Context) alloc(v Value) Expr {
	id := c.id()
	c.Exprs = append(c.Exprs, v)

	return id
}

func (c *Context) writable() {
	if c.frozen {
		defect("modification of frozen context")
	}
}

func (c *Context) operand(in, user Expr) {
	if in >= user {
		defect("forward reference: %d uses %d", user, in)
	}

	v := c.Get(in)

	if !HasResult(v) {
		defect("%d uses %d (%T) which has no result", user, in, v)
	}
}

func operands(v Value) []Expr {
	if x, ok := v.(Instr); ok {
		return x.In()
	}

	return nil
}

func defect(format string, args ...any) {
	panic(DefectError{
		Msg: fmt.Sprintf(format, args...),
		PC:  loc.Caller(2),
	})
}

func (e DefectError) Error() string {
	return fmt.Sprintf("ir defect: %s (at %v)", e.Msg, e.PC)
}
