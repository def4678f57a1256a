/*
Package compiler translates calc programs.

Process of compilation

	Program Text ->
		parse ->
	Abstract Syntax Tree (ast) ->
		front (lower) ->
	Intermediate Representation (ir) ->
		back (emit) ->
	LLVM Text

The evaluator (eval) runs the syntax tree directly.
The simulator (sim) runs emitted LLVM text. Check compares them.
*/
package compiler
