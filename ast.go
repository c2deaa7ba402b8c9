// ast.go — the dumblang abstract syntax tree.
//
// The AST is a closed union: every node kind is a concrete struct satisfying
// the sealed Node interface, so evaluator and transpiler dispatch with an
// exhaustive type switch. Nodes are immutable once the parser returns; both
// consumers only ever read them. Each node records the 1-based source line of
// its first token for runtime diagnostics.
package dumblang

// Node is implemented by every AST node kind in this package.
type Node interface {
	node()
}

// Program is the root node: the ordered list of function definitions.
type Program struct {
	Functions []*Function
}

// Function is a named function with at most one parameter.
type Function struct {
	Name     string
	Param    string // valid only when HasParam
	HasParam bool
	Body     *Block
	Line     int
}

// Block is a brace-delimited statement sequence.
type Block struct {
	Statements []Node
}

// Identifier is a variable reference.
type Identifier struct {
	Name string
	Line int
}

// NumberLiteral is a numeric constant; all dumblang numbers are float64.
type NumberLiteral struct {
	Value float64
	Line  int
}

// StringLiteral is a string constant (already unquoted by the scanner).
type StringLiteral struct {
	Value string
	Line  int
}

// ArrayLiteral is a one-dimensional array constructor.
type ArrayLiteral struct {
	Elements []Node
	Line     int
}

// BinaryExpr applies a binary operator. The assignment operator "=" is an
// ordinary BinaryExpr as far as the parser is concerned; the evaluator gives
// it special treatment by inspecting the shape of Left.
type BinaryExpr struct {
	Op    string
	Left  Node
	Right Node
	Line  int
}

// CallExpr invokes a builtin or user function with an optional argument.
type CallExpr struct {
	Name string
	Arg  Node // nil when called without an argument
	Line int
}

// IndexExpr reads an array (or string) element; as the left side of an
// assignment it designates an element write instead.
type IndexExpr struct {
	Array Node // an *Identifier as produced by the grammar
	Index Node
	Line  int
}

// WhileStmt re-runs Body while Cond is truthy, sharing the enclosing frame.
type WhileStmt struct {
	Cond Node
	Body *Block
	Line int
}

// IfStmt evaluates Cond once and runs exactly one of its two blocks.
// The else block is mandatory in the grammar.
type IfStmt struct {
	Cond Node
	Then *Block
	Else *Block
	Line int
}

// ReturnStmt terminates the enclosing function activation immediately.
// A nil Value means "return no value".
type ReturnStmt struct {
	Value Node
	Line  int
}

func (*Program) node()       {}
func (*Function) node()      {}
func (*Block) node()         {}
func (*Identifier) node()    {}
func (*NumberLiteral) node() {}
func (*StringLiteral) node() {}
func (*ArrayLiteral) node()  {}
func (*BinaryExpr) node()    {}
func (*CallExpr) node()      {}
func (*IndexExpr) node()     {}
func (*WhileStmt) node()     {}
func (*IfStmt) node()        {}
func (*ReturnStmt) node()    {}
