package parse

import (
	"bytes"
	"context"
	"fmt"

	"tlog.app/go/errors"
)

type (
	Const []byte

	// Keyword is Const which must not be followed by an identifier char.
	Keyword []byte
)

func (p Const) Parse(ctx context.Context, b []byte, st int) (x any, i int, err error) {
	if bytes.HasPrefix(b[st:], p) {
		return Const(b[st : st+len(p)]), st + len(p), nil
	}

	return nil, st, errors.New("%q expected", []byte(p))
}

func (p Const) String() string { return fmt.Sprintf("%q", []byte(p)) }

func (p Keyword) Parse(ctx context.Context, b []byte, st int) (x any, i int, err error) {
	if !bytes.HasPrefix(b[st:], p) {
		return nil, st, errors.New("%s expected", []byte(p))
	}

	i = st + len(p)

	if i < len(b) && isIdent(b[i]) {
		return nil, st, errors.New("%s expected", []byte(p))
	}

	return Keyword(b[st:i]), i, nil
}

func (p Keyword) String() string { return string(p) }

func isIdent(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
