package parse

import (
	"context"
	"strconv"

	"tlog.app/go/errors"

	"github.com/slowlang/calc/compiler/ast"
)

type (
	Int struct{}
)

func (p Int) Parse(ctx context.Context, b []byte, st int) (x any, i int, err error) {
	i = st

	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}

	if i == st {
		return nil, st, errors.New("Int expected")
	}

	if i < len(b) && isIdent(b[i]) {
		return nil, i, errors.New("bad digit %q in number", b[i])
	}

	v, err := strconv.ParseInt(string(b[st:i]), 10, 64)
	if err != nil {
		return nil, i, errors.Wrap(err, "parse Int value")
	}

	return ast.Int{
		Base: ast.Base{
			Pos: st,
			End: i,
		},
		Value: v,
	}, i, nil
}
