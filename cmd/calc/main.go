package main

import (
	"context"
	"fmt"
	"os"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/calc/compiler"
)

const version = "calc 0.1.0"

func main() {
	evalCmd := &cli.Command{
		Name:        "eval",
		Description: "interpret programs",
		Action:      evalAct,
		Args:        cli.Args{},
		Flags:       flags(),
	}

	compileCmd := &cli.Command{
		Name:        "compile",
		Description: "compile programs into llvm text",
		Action:      compileAct,
		Args:        cli.Args{},
		Flags: append(flags(),
			cli.NewFlag("out,o", "", "output file, stdout if empty"),
		),
	}

	irCmd := &cli.Command{
		Name:        "ir",
		Description: "dump intermediate representation",
		Action:      irAct,
		Args:        cli.Args{},
		Flags:       flags(),
	}

	checkCmd := &cli.Command{
		Name:        "check",
		Description: "compare interpreter and compiled program results",
		Action:      checkAct,
		Args:        cli.Args{},
		Flags:       flags(),
	}

	fmtCmd := &cli.Command{
		Name:        "fmt",
		Description: "print programs in canonical form",
		Action:      fmtAct,
		Args:        cli.Args{},
		Flags:       flags(),
	}

	app := &cli.Command{
		Name:        "calc",
		Description: "calc is a compiler of mem calculator programs",
		Action:      rootAct,
		Args:        cli.Args{},
		Flags: append(flags(),
			cli.NewFlag("version,v", false, "print version"),
		),
		Commands: []*cli.Command{
			evalCmd,
			compileCmd,
			irCmd,
			checkCmd,
			fmtCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func flags() []*cli.Flag {
	return []*cli.Flag{
		cli.NewFlag("expr,e", "", "program text"),
		cli.NewFlag("verbose", "", "tlog verbosity topics"),
		cli.HelpFlag,
	}
}

func rootAct(c *cli.Command) error {
	if c.Bool("version") {
		fmt.Println(version)

		return nil
	}

	return evalAct(c)
}

func evalAct(c *cli.Command) error {
	ctx, srcs, err := setup(c)
	if err != nil {
		return err
	}

	for _, s := range srcs {
		_, err = compiler.Eval(ctx, s.Name, s.Text, os.Stdout)
		if err != nil {
			return errors.Wrap(err, "eval %v", s.Name)
		}
	}

	return nil
}

func compileAct(c *cli.Command) (err error) {
	ctx, srcs, err := setup(c)
	if err != nil {
		return err
	}

	// all the sources make up one program
	out, err := compiler.CompileSources(ctx, srcs...)
	if err != nil {
		return errors.Wrap(err, "compile")
	}

	if name := c.String("out"); name != "" {
		err = os.WriteFile(name, out, 0o644)
		if err != nil {
			return errors.Wrap(err, "write output")
		}

		return nil
	}

	fmt.Printf("%s", out)

	return nil
}

func irAct(c *cli.Command) error {
	ctx, srcs, err := setup(c)
	if err != nil {
		return err
	}

	for _, s := range srcs {
		x, err := compiler.Lower(ctx, s.Name, s.Text)
		if err != nil {
			return errors.Wrap(err, "lower %v", s.Name)
		}

		fmt.Printf("%s", x.Dump(nil))
	}

	return nil
}

func checkAct(c *cli.Command) error {
	ctx, srcs, err := setup(c)
	if err != nil {
		return err
	}

	for _, s := range srcs {
		err = compiler.Check(ctx, s.Name, s.Text)
		if err != nil {
			return errors.Wrap(err, "check %v", s.Name)
		}

		fmt.Printf("%s: ok\n", s.Name)
	}

	return nil
}

func fmtAct(c *cli.Command) error {
	ctx, srcs, err := setup(c)
	if err != nil {
		return err
	}

	for _, s := range srcs {
		b, err := compiler.Format(ctx, s.Name, s.Text)
		if err != nil {
			return errors.Wrap(err, "format %v", s.Name)
		}

		fmt.Printf("%s", b)
	}

	return nil
}

func setup(c *cli.Command) (ctx context.Context, srcs []compiler.Source, err error) {
	if v := c.String("verbose"); v != "" {
		tlog.SetVerbosity(v)
	}

	ctx = context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	if e := c.String("expr"); e != "" {
		srcs = append(srcs, compiler.Source{Name: "-e", Text: []byte(e)})
	}

	for _, a := range c.Args {
		text, err := os.ReadFile(a)
		if err != nil {
			return nil, nil, errors.Wrap(err, "read %v", a)
		}

		srcs = append(srcs, compiler.Source{Name: a, Text: text})
	}

	if len(srcs) == 0 {
		return nil, nil, errors.New("no program: pass --expr or files")
	}

	return ctx, srcs, nil
}
