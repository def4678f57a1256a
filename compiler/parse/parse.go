package parse

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/calc/compiler/ast"
)

type (
	State struct {
		b []byte // all files concatenated

		Grammar Parser

		files []file
	}

	file struct {
		base int
		size int
		name string
	}

	Parser interface {
		Parse(ctx context.Context, b []byte, st int) (x any, i int, err error)
	}

	// Error is a syntax error located in the source.
	Error struct {
		File string
		Pos  int
		Line int
		Col  int

		Err error
	}

	PartialReadError struct {
		End int
	}
)

func ParseFile(ctx context.Context, name string) (*ast.Program, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	s := New()

	s.AddFile(name, data)

	return s.Parse(ctx)
}

func Parse(ctx context.Context, text []byte) (x *ast.Program, err error) {
	s := New()

	s.AddFile("", text)

	return s.Parse(ctx)
}

func New() *State {
	return &State{
		Grammar: Program{},
	}
}

func (s *State) Parse(ctx context.Context) (p *ast.Program, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "parse", "files", len(s.files), "size", len(s.b))
	defer tr.Finish("err", &err)

	x, i, err := s.Grammar.Parse(ctx, s.b, 0)
	if err != nil {
		return nil, s.errorAt(i, errors.Wrap(err, "parse as grammar"))
	}

	i = SpaceAll.Skip(s.b, i)

	if i != len(s.b) {
		return nil, s.errorAt(i, PartialReadError{End: i})
	}

	p, ok := x.(*ast.Program)
	if !ok {
		return nil, errors.New("grammar returned %T, want *ast.Program", x)
	}

	tr.V("parse_dump").Printw("program", "stmts", len(p.Stmts))

	return p, nil
}

func (s *State) AddFile(name string, text []byte) {
	f := file{
		name: name,
		base: len(s.b),
		size: len(text),
	}

	s.b = append(s.b, text...)

	// keep files apart so a token never spans two of them
	if len(text) != 0 && text[len(text)-1] != '\n' {
		s.b = append(s.b, '\n')
		f.size++
	}

	s.files = append(s.files, f)
}

func (s *State) errorAt(pos int, err error) Error {
	e := Error{
		Pos: pos,
		Err: err,
	}

	base := 0

	for j, f := range s.files {
		if pos >= f.base && (pos < f.base+f.size || j == len(s.files)-1) {
			e.File = f.name
			base = f.base

			break
		}
	}

	text := s.b[base:pos]

	e.Line = 1 + bytes.Count(text, []byte{'\n'})
	e.Col = 1 + len(text) - (bytes.LastIndexByte(text, '\n') + 1)

	return e
}

func (e Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %v", e.File, e.Line, e.Col, e.Err)
	}

	return fmt.Sprintf("%d:%d: %v", e.Line, e.Col, e.Err)
}

func (e Error) Unwrap() error { return e.Err }

func (e PartialReadError) Error() string {
	return fmt.Sprintf("unexpected text at offset %d", e.End)
}
