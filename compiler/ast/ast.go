package ast

type (
	Node interface {
		Span() Base
	}

	Stmt interface {
		Node
		stmtNode()
	}

	Expr interface {
		Node
		exprNode()
	}

	Base struct {
		Pos int
		End int
	}

	Program struct {
		Base `tlog:",embed"`

		Stmts []Stmt
	}

	// ExprStmt evaluates X and stores the result into mem.
	ExprStmt struct {
		Base `tlog:",embed"`

		X Expr
	}

	PrintStmt struct {
		Base `tlog:",embed"`

		X Expr
	}

	Mem struct {
		Base `tlog:",embed"`
	}

	Int struct {
		Base `tlog:",embed"`

		Value int64
	}

	Paren struct {
		Base `tlog:",embed"`

		X Expr
	}

	Prefix struct {
		Base `tlog:",embed"`

		Op PrefixOp
		X  Expr
	}

	Infix struct {
		Base `tlog:",embed"`

		Op    InfixOp
		Left  Expr
		Right Expr
	}

	PrefixOp int
	InfixOp  int
)

const (
	Plus PrefixOp = iota
	Minus
)

const (
	Add InfixOp = iota
	Sub
	Mul
	Div
)

func (b Base) Span() Base { return b }

func (ExprStmt) stmtNode()  {}
func (PrintStmt) stmtNode() {}

func (Mem) exprNode()    {}
func (Int) exprNode()    {}
func (Paren) exprNode()  {}
func (Prefix) exprNode() {}
func (Infix) exprNode()  {}

func (op PrefixOp) String() string {
	switch op {
	case Plus:
		return "+"
	case Minus:
		return "-"
	default:
		panic(int(op))
	}
}

func (op InfixOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		panic(int(op))
	}
}

// Precedence returns binding power of the operator. Higher binds tighter.
func (op InfixOp) Precedence() int {
	switch op {
	case Add, Sub:
		return 1
	case Mul, Div:
		return 2
	default:
		panic(int(op))
	}
}
