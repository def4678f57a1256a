package parse

import (
	"context"

	"tlog.app/go/errors"
)

type (
	Spaces uint64

	Spacer struct {
		Spaces Spaces
		Of     Parser
	}
)

// SpaceAll also skips '#' comments up to the end of line.
var SpaceAll = NewSpaces(' ', '\t', '\r', '\n', '#')

func NewSpaces(skip ...byte) (ss Spaces) {
	for _, q := range skip {
		if q >= 64 {
			panic("too high char code")
		}

		ss |= 1 << q
	}

	return
}

func (s Spaces) Skip(b []byte, st int) (i int) {
	i = st

	for i < len(b) && b[i] < 64 && s&(1<<b[i]) != 0 {
		if b[i] == '#' {
			for i < len(b) && b[i] != '\n' {
				i++
			}

			continue
		}

		i++
	}

	return
}

func Spaced(p Parser, ss Spaces) Spacer {
	return Spacer{
		Spaces: ss,
		Of:     p,
	}
}

// Tok is a token surrounded by any whitespace.
func Tok(p Parser) Spacer {
	return Spaced(p, SpaceAll)
}

func (p Spacer) Parse(ctx context.Context, b []byte, st int) (x any, i int, err error) {
	vst := p.Spaces.Skip(b, st)

	x, i, err = p.Of.Parse(ctx, b, vst)
	if err != nil {
		if i == vst {
			i = st
		}

		err = errors.Wrap(err, "%v", name(p.Of))
	}

	return
}
