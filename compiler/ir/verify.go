package ir

import (
	"tlog.app/go/errors"
)

// Verify checks the whole Context against the IR invariants.
func (c *Context) Verify() error {
	names := map[string]Expr{}

	if len(c.Globals) != len(c.globals) {
		return errors.New("global registry: %d ordered, %d named", len(c.Globals), len(c.globals))
	}

	for _, id := range c.Globals {
		if id < 0 || int(id) >= len(c.Exprs) {
			return errors.New("global %d: dangling", id)
		}

		g, ok := c.Exprs[id].(Global)
		if !ok {
			return errors.New("global %d: %T is not a global", id, c.Exprs[id])
		}

		if c.globals[g.Name] != id {
			return errors.New("global %q: registered as %d, found at %d", g.Name, c.globals[g.Name], id)
		}

		names["@"+g.Name] = id
	}

	last := Nil

	for i, id := range c.Code {
		if id <= last {
			return errors.New("code %d: %d recorded after %d", i, id, last)
		}

		last = id

		if int(id) >= len(c.Exprs) {
			return errors.New("code %d: dangling handle %d", i, id)
		}

		x, ok := c.Exprs[id].(Instr)
		if !ok {
			return errors.New("code %d: %d (%T) is not an instruction", i, id, c.Exprs[id])
		}

		for _, in := range x.In() {
			if in < 0 || in >= id {
				return errors.New("code %d: %d refers to %d", i, id, in)
			}

			if !HasResult(c.Exprs[in]) {
				return errors.New("code %d: %d uses %d (%T) which has no result", i, id, in, c.Exprs[in])
			}
		}

		name := NameOf(x)
		if name == "" {
			continue
		}

		if prev, ok := names[name]; ok {
			return errors.New("code %d: name %v of %d already used by %d", i, name, id, prev)
		}

		names[name] = id
	}

	return nil
}
