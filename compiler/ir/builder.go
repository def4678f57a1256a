package ir

// Const allocates a new constant. Constants are never shared.
func (c *Context) Const(v int64) Expr {
	return c.Alloc(Const(v))
}

func (c *Context) Load(g Expr) Expr {
	c.global(g)

	return c.emit(Load{
		Name: c.NextName(),
		Src:  g,
	})
}

func (c *Context) Store(x, g Expr) Expr {
	c.global(g)

	return c.emit(Store{
		Src: x,
		Dst: g,
	})
}

func (c *Context) Alloca(t Type) Expr {
	return c.emit(Alloca{
		Name: c.NextName(),
		Type: t,
	})
}

func (c *Context) BinOp(op Op, l, r Expr) Expr {
	return c.emit(BinOp{
		Name: c.NextName(),
		Op:   op,
		L:    l,
		R:    r,
	})
}

func (c *Context) PrintInt(x Expr) Expr {
	return c.emit(PrintInt{
		X: x,
	})
}

func (c *Context) emit(x Instr) Expr {
	id := c.Alloc(x)
	c.Record(id)

	return id
}

func (c *Context) global(g Expr) {
	if _, ok := c.Get(g).(Global); !ok {
		defect("%d is not a global: %T", g, c.Exprs[g])
	}
}
