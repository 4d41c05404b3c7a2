package astio

// Node is the interchange form of one syntax tree node as written by the
// parser. Kind selects which of the remaining fields are meaningful:
//
//	program  externs, funcs
//	extern   name
//	func     name, param (var, optional), body
//	call     name, arg (optional)
//	return   expr (optional)
//	block    stmts
//	while    cond, body
//	if       cond, then, else (optional)
//	asgn     lhs, rhs
//	decl     name
//	var      name
//	cnst     value
//	rexpr    op, lhs, rhs
//	bexpr    op, lhs, rhs
//	uexpr    op, expr
type Node struct {
	Kind string `json:"kind" yaml:"kind" msgpack:"kind"`
	Line uint32 `json:"line,omitempty" yaml:"line,omitempty" msgpack:"line,omitempty"`
	Col  uint32 `json:"col,omitempty" yaml:"col,omitempty" msgpack:"col,omitempty"`

	Name  string `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Op    string `json:"op,omitempty" yaml:"op,omitempty" msgpack:"op,omitempty"`
	Value *int64 `json:"value,omitempty" yaml:"value,omitempty" msgpack:"value,omitempty"`

	Externs []*Node `json:"externs,omitempty" yaml:"externs,omitempty" msgpack:"externs,omitempty"`
	Funcs   []*Node `json:"funcs,omitempty" yaml:"funcs,omitempty" msgpack:"funcs,omitempty"`
	Stmts   []*Node `json:"stmts,omitempty" yaml:"stmts,omitempty" msgpack:"stmts,omitempty"`

	Param *Node `json:"param,omitempty" yaml:"param,omitempty" msgpack:"param,omitempty"`
	Body  *Node `json:"body,omitempty" yaml:"body,omitempty" msgpack:"body,omitempty"`
	Arg   *Node `json:"arg,omitempty" yaml:"arg,omitempty" msgpack:"arg,omitempty"`
	Expr  *Node `json:"expr,omitempty" yaml:"expr,omitempty" msgpack:"expr,omitempty"`
	Cond  *Node `json:"cond,omitempty" yaml:"cond,omitempty" msgpack:"cond,omitempty"`
	Then  *Node `json:"then,omitempty" yaml:"then,omitempty" msgpack:"then,omitempty"`
	Else  *Node `json:"else,omitempty" yaml:"else,omitempty" msgpack:"else,omitempty"`
	LHS   *Node `json:"lhs,omitempty" yaml:"lhs,omitempty" msgpack:"lhs,omitempty"`
	RHS   *Node `json:"rhs,omitempty" yaml:"rhs,omitempty" msgpack:"rhs,omitempty"`
}

const (
	KindProgram = "program"
	KindExtern  = "extern"
	KindFunc    = "func"
	KindCall    = "call"
	KindReturn  = "return"
	KindBlock   = "block"
	KindWhile   = "while"
	KindIf      = "if"
	KindAssign  = "asgn"
	KindDecl    = "decl"
	KindVar     = "var"
	KindConst   = "cnst"
	KindRExpr   = "rexpr"
	KindBExpr   = "bexpr"
	KindUExpr   = "uexpr"
)
