// Package ast defines the COOL abstract syntax tree produced by the parser
// and consumed by the semantic analyser and code generator. Nodes are
// immutable as parsed; the analyser attaches resolved-type annotations
// directly onto the Expr variants rather than via a side table, mirroring
// how field assignments on a node record analysis results in place.
package ast

import "fmt"

// Pos is a source location, carried on every node for diagnostics and for
// the line-preserving comments the emitter writes into the assembly.
type Pos struct {
	File string
	Line int
	Col  int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// Node is the base interface implemented by every AST node.
type Node interface {
	Position() Pos
}

// Program is the root of the tree: the concatenation of every source file
// given to the compiler (spec.md has no separate-compilation-unit model).
type Program struct {
	Classes []*Class
}

// Class is a single `class Name [inherits Parent] { ... };` declaration as
// parsed. Resolution (parent pointers, ids, layout) is attached by later
// phases onto the analysis-time class.Class, not here; this struct stays a
// faithful record of the source text.
type Class struct {
	Name       string
	ParentName string // "" means no explicit parent was written (defaults to Object)
	HasParent  bool
	Features   []Feature
	Pos        Pos
}

func (c *Class) Position() Pos { return c.Pos }

// Feature is either a Field or a Method, in declaration order within a class.
type Feature interface {
	Node
	featureNode()
}

// Field is `name : Type [<- init]`.
type Field struct {
	Name string
	Type string
	Init Expr // nil if omitted
	Pos  Pos
}

func (f *Field) Position() Pos { return f.Pos }
func (f *Field) featureNode()  {}

// Formal is a single method parameter `name : Type`.
type Formal struct {
	Name string
	Type string
	Pos  Pos
}

// Method is `name(formals) : ReturnType { body }`.
type Method struct {
	Name       string
	Formals    []Formal
	ReturnType string
	Body       Expr
	Pos        Pos
}

func (m *Method) Position() Pos { return m.Pos }
func (m *Method) featureNode()  {}

// Expr is the tagged-variant expression node. Every concrete kind below
// embeds Pos and carries, once analysis has run, a ResolvedType pointer
// (interface{} here to avoid an import cycle with package class; the
// checker stores a *class.Class and readers type-assert it).
type Expr interface {
	Node
	exprNode()
	// Resolved returns the type attached by the checker, or nil if this
	// node has not been analysed yet.
	Resolved() interface{}
	// SetResolved attaches the checker's result.
	SetResolved(t interface{})
}

// exprBase is embedded by every concrete Expr to provide the
// Resolved/SetResolved/Position plumbing once.
type exprBase struct {
	Pos Pos
	typ interface{}
}

func (b *exprBase) Position() Pos          { return b.Pos }
func (b *exprBase) exprNode()              {}
func (b *exprBase) Resolved() interface{}  { return b.typ }
func (b *exprBase) SetResolved(t interface{}) { b.typ = t }

// Assign is `name <- expr`.
type Assign struct {
	exprBase
	Name  string
	Value Expr
}

// Invoke is `[Receiver[@StaticType].]name(args)`. Receiver is nil in the
// source when the call is implicitly on self; the checker fills in an
// explicit Var("self") node in that case (spec.md §4.2 "Invoke").
type Invoke struct {
	exprBase
	Receiver   Expr   // nil if implicit self-dispatch
	StaticType string // "" unless written as expr@T.name(...)
	Name       string
	Args       []Expr

	// DispatchType is filled in by the checker: the static type used to
	// resolve the method (either the explicit @T or the receiver's type).
	DispatchType interface{}
}

// If is `if pred then thenExpr else elseExpr fi`.
type If struct {
	exprBase
	Pred Expr
	Then Expr
	Else Expr
}

// While is `while pred loop body pool`.
type While struct {
	exprBase
	Pred Expr
	Body Expr
}

// Block is `{ e1; e2; ...; en; }`.
type Block struct {
	exprBase
	Exprs []Expr
}

// Let is `let name:Type [<- init] in body`. Multi-binding `let` as written
// in COOL source desugars to nested Let nodes during parsing, one per
// binding, so this node only ever carries a single name.
type Let struct {
	exprBase
	Name string
	Type string
	Init Expr // nil if omitted; checker substitutes a default literal
	Body Expr
}

// CaseBranch is one `name : Type => expr` arm of a `case` expression.
type CaseBranch struct {
	Name string
	Type string
	Expr Expr
	Pos  Pos

	// ResolvedType is the branch's declared type, attached after checking.
	ResolvedType interface{}
}

// Case is `case scrutinee of branch1; ...; branchN; esac`.
type Case struct {
	exprBase
	Scrutinee Expr
	Branches  []CaseBranch
}

// New is `new T`.
type New struct {
	exprBase
	TypeName string
}

// IsVoid is `isvoid expr`.
type IsVoid struct {
	exprBase
	Expr Expr
}

// BinOp kinds for arithmetic and relational operators.
type BinOpKind int

const (
	Add BinOpKind = iota
	Sub
	Mul
	Div
	LessThan
	LessOrEqual
	Equal
)

func (k BinOpKind) String() string {
	switch k {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case LessThan:
		return "<"
	case LessOrEqual:
		return "<="
	case Equal:
		return "="
	default:
		return "?"
	}
}

// BinOp is any of `+ - * / < <= =`.
type BinOp struct {
	exprBase
	Op    BinOpKind
	Left  Expr
	Right Expr
}

// Neg is unary `~expr` (integer negation).
type Neg struct {
	exprBase
	Expr Expr
}

// Not is `not expr` (boolean negation).
type Not struct {
	exprBase
	Expr Expr
}

// Var is an identifier reference, including the special name "self".
type Var struct {
	exprBase
	Name string
}

// IntConst is an integer literal.
type IntConst struct {
	exprBase
	Value int64
}

// StrConst is a string literal, unescaped.
type StrConst struct {
	exprBase
	Value string
}

// BoolConst is `true` or `false`.
type BoolConst struct {
	exprBase
	Value bool
}

// Void is the null placeholder expression: the checker substitutes it as
// the default of a let binding with no init whose type is not Int, Bool or
// String, and the parser puts it where an expression could not be parsed.
// A field with no initializer keeps a nil Init instead.
type Void struct {
	exprBase
}

// The constructors below build synthetic literal/placeholder nodes at a
// given position. Analysis uses them to rewrite an omitted Let or field
// initializer into a default-value node (spec.md §3, §8).

func NewStrConst(pos Pos, v string) *StrConst   { return &StrConst{exprBase: exprBase{Pos: pos}, Value: v} }
func NewIntConst(pos Pos, v int64) *IntConst    { return &IntConst{exprBase: exprBase{Pos: pos}, Value: v} }
func NewBoolConst(pos Pos, v bool) *BoolConst   { return &BoolConst{exprBase: exprBase{Pos: pos}, Value: v} }
func NewVoid(pos Pos) *Void                     { return &Void{exprBase: exprBase{Pos: pos}} }
func NewVar(pos Pos, name string) *Var          { return &Var{exprBase: exprBase{Pos: pos}, Name: name} }

// NewAssign builds a synthetic `name <- value` node.
func NewAssign(pos Pos, name string, value Expr) *Assign {
	return &Assign{exprBase: exprBase{Pos: pos}, Name: name, Value: value}
}

// NewBlock builds a synthetic `{ e1; ...; en; }` node.
func NewBlock(pos Pos, exprs []Expr) *Block {
	return &Block{exprBase: exprBase{Pos: pos}, Exprs: exprs}
}

// NewInvoke builds a synthetic self-dispatch `name(args)` node with no
// explicit receiver or static type; the checker fills Receiver in with an
// explicit self Var the same way it does for a parsed implicit dispatch.
func NewInvoke(pos Pos, name string, args []Expr) *Invoke {
	return &Invoke{exprBase: exprBase{Pos: pos}, Name: name, Args: args}
}

// NewInvokeAt builds a full Invoke node as parsed: an explicit (possibly
// nil, for implicit self-dispatch) receiver and an optional static-cast
// type written as `recv@T.name(...)`.
func NewInvokeAt(pos Pos, recv Expr, staticType, name string, args []Expr) *Invoke {
	return &Invoke{exprBase: exprBase{Pos: pos}, Receiver: recv, StaticType: staticType, Name: name, Args: args}
}

// NewBinOp builds a `+ - * / < <= =` node.
func NewBinOp(pos Pos, op BinOpKind, left, right Expr) *BinOp {
	return &BinOp{exprBase: exprBase{Pos: pos}, Op: op, Left: left, Right: right}
}

// NewIf builds an `if pred then t else e fi` node.
func NewIf(pos Pos, pred, then, els Expr) *If {
	return &If{exprBase: exprBase{Pos: pos}, Pred: pred, Then: then, Else: els}
}

// NewWhile builds a `while pred loop body pool` node.
func NewWhile(pos Pos, pred, body Expr) *While {
	return &While{exprBase: exprBase{Pos: pos}, Pred: pred, Body: body}
}

// NewLet builds a single-binding `let name:Type [<- init] in body` node.
func NewLet(pos Pos, name, typ string, init, body Expr) *Let {
	return &Let{exprBase: exprBase{Pos: pos}, Name: name, Type: typ, Init: init, Body: body}
}

// NewCase builds a `case scrutinee of ... esac` node.
func NewCase(pos Pos, scrutinee Expr, branches []CaseBranch) *Case {
	return &Case{exprBase: exprBase{Pos: pos}, Scrutinee: scrutinee, Branches: branches}
}

// NewNew builds a `new T` node.
func NewNew(pos Pos, typeName string) *New {
	return &New{exprBase: exprBase{Pos: pos}, TypeName: typeName}
}

// NewIsVoid builds an `isvoid expr` node.
func NewIsVoid(pos Pos, e Expr) *IsVoid {
	return &IsVoid{exprBase: exprBase{Pos: pos}, Expr: e}
}

// NewNeg builds a unary `~expr` node.
func NewNeg(pos Pos, e Expr) *Neg {
	return &Neg{exprBase: exprBase{Pos: pos}, Expr: e}
}

// NewNot builds a `not expr` node.
func NewNot(pos Pos, e Expr) *Not {
	return &Not{exprBase: exprBase{Pos: pos}, Expr: e}
}
