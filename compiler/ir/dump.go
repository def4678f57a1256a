package ir

import (
	"fmt"
	"strings"
)

// Dump appends a listing of the arena to b.
// Recorded instructions are marked with their position in Code.
func (c *Context) Dump(b []byte) []byte {
	pos := make(map[Expr]int, len(c.Code))

	for i, id := range c.Code {
		pos[id] = i
	}

	for id, x := range c.Exprs {
		kind := strings.ToLower(strings.TrimPrefix(fmt.Sprintf("%T", x), "ir."))

		mark := "     "
		if i, ok := pos[Expr(id)]; ok {
			mark = fmt.Sprintf("[%3d]", i)
		}

		b = fmt.Appendf(b, "%4d %s %-8s %+v\n", id, mark, kind, x)
	}

	return b
}
