package check

import (
	"fmt"

	"github.com/coolc-lang/coolc/internal/ast"
	"github.com/coolc-lang/coolc/internal/class"
	cerrors "github.com/coolc-lang/coolc/internal/errors"
)

// Checker walks every method body and field initializer under a lexical
// scope stack, assigning each expression node a class pointer or the
// error sentinel (spec.md §4.2).
type Checker struct {
	table *class.Table
	diags *cerrors.Collector
	scope *Scope[*class.Class]
	self  *class.Class // the class currently being analysed
}

// CheckProgram type-checks every user class's field initializers and
// method bodies. Built-in classes carry no source bodies and are skipped.
func CheckProgram(t *class.Table, c *cerrors.Collector) {
	for _, cls := range t.Classes() {
		if cls.Builtin {
			continue
		}
		chk := &Checker{table: t, diags: c, scope: NewScope[*class.Class](), self: cls}
		chk.checkClass(cls)
	}
}

func (ch *Checker) checkClass(cls *class.Class) {
	ch.scope.Enter()
	defer ch.scope.Exit()
	ch.pushFieldScope(cls)

	// Field initializers, in declaration order.
	for _, feat := range cls.Features {
		f, ok := feat.(*ast.Field)
		if !ok || f.Init == nil {
			continue
		}
		initType := ch.checkExpr(f.Init)
		declType := ch.resolve(f.Type, f.Pos)
		if !Conforms(declType, initType) {
			pos := f.Init.Position()
			ch.diags.Add(cerrors.New(cerrors.PhaseTyping, cerrors.TYP003, &pos,
				fmt.Sprintf("field %s initializer has type %s, which does not conform to declared type %s",
					f.Name, typeName(initType), f.Type), nil))
		}
	}

	// Method bodies, in declaration order.
	for _, feat := range cls.Features {
		m, ok := feat.(*ast.Method)
		if !ok || m.Body == nil {
			continue
		}
		ch.checkMethod(cls, m)
	}
}

// pushFieldScope pushes one frame per ancestor (Object first, cls last)
// each populated with that class's own fields, so a field lookup always
// finds the most-derived binding first (spec.md §4.2 "push a scope
// populated with all fields... parent's scope first, deepest last").
func (ch *Checker) pushFieldScope(cls *class.Class) {
	chain := cls.Ancestors()
	for i := len(chain) - 1; i >= 0; i-- {
		ancestor := chain[i]
		ch.scope.Enter()
		for name, f := range ancestor.OwnFields {
			ch.scope.Bind(name, ch.resolve(f.Type, f.Pos))
		}
	}
}

func (ch *Checker) checkMethod(cls *class.Class, m *ast.Method) {
	ch.scope.Enter()
	defer ch.scope.Exit()
	for _, formal := range m.Formals {
		ch.scope.Bind(formal.Name, ch.resolve(formal.Type, formal.Pos))
	}

	bodyType := ch.checkExpr(m.Body)
	retType := ch.resolve(m.ReturnType, m.Pos)
	if !Conforms(retType, bodyType) {
		pos := m.Body.Position()
		ch.diags.Add(cerrors.New(cerrors.PhaseTyping, cerrors.TYP003, &pos,
			fmt.Sprintf("method %s.%s body has type %s, which does not conform to declared return type %s",
				cls.Name, m.Name, typeName(bodyType), m.ReturnType), nil))
	}
}

// resolve looks up a type name, returning the error sentinel and a
// diagnostic if it is unknown. SELF_TYPE resolves to the class currently
// under analysis.
func (ch *Checker) resolve(name string, pos ast.Pos) *class.Class {
	if name == class.SelfType {
		return ch.self
	}
	if c := ch.table.Lookup(name); c != nil {
		return c
	}
	ch.diags.Add(cerrors.New(cerrors.PhaseTyping, cerrors.TYP002, &pos,
		fmt.Sprintf("unknown type %s", name), nil))
	return class.ErrorType()
}

// defaultLiteral builds the default-value node for an omitted Let/field
// initializer: empty string for String, 0 for Int, false for Bool, and a
// Void (null) placeholder for everything else (spec.md §3, §8 "A Let with
// omitted initializer binds a default").
func defaultLiteral(typeName string, pos ast.Pos) ast.Expr {
	switch typeName {
	case class.String:
		return ast.NewStrConst(pos, "")
	case class.Int:
		return ast.NewIntConst(pos, 0)
	case class.Bool:
		return ast.NewBoolConst(pos, false)
	default:
		return ast.NewVoid(pos)
	}
}

func typeName(c *class.Class) string {
	if class.IsError(c) {
		return "<error>"
	}
	return c.Name
}

// checkExpr dispatches on node kind and returns the resolved class,
// stashing the result on the node via SetResolved (spec.md §4.2 "Per-node
// contract").
func (ch *Checker) checkExpr(e ast.Expr) *class.Class {
	var result *class.Class
	switch n := e.(type) {
	case *ast.Var:
		result = ch.checkVar(n)
	case *ast.Assign:
		result = ch.checkAssign(n)
	case *ast.IntConst:
		result = ch.table.Lookup(class.Int)
	case *ast.StrConst:
		result = ch.table.Lookup(class.String)
	case *ast.BoolConst:
		result = ch.table.Lookup(class.Bool)
	case *ast.Void:
		result = ch.table.Lookup(class.Object)
	case *ast.New:
		result = ch.checkNew(n)
	case *ast.IsVoid:
		ch.checkExpr(n.Expr)
		result = ch.table.Lookup(class.Bool)
	case *ast.BinOp:
		result = ch.checkBinOp(n)
	case *ast.Neg:
		result = ch.checkNeg(n)
	case *ast.Not:
		result = ch.checkNot(n)
	case *ast.If:
		result = ch.checkIf(n)
	case *ast.While:
		ch.checkWhile(n)
		result = ch.table.Lookup(class.Object)
	case *ast.Block:
		result = ch.checkBlock(n)
	case *ast.Let:
		result = ch.checkLet(n)
	case *ast.Case:
		result = ch.checkCase(n)
	case *ast.Invoke:
		result = ch.checkInvoke(n)
	default:
		result = class.ErrorType()
	}
	e.SetResolved(result)
	return result
}

func (ch *Checker) checkVar(n *ast.Var) *class.Class {
	if n.Name == class.SelfVar {
		return ch.self
	}
	if t, ok := ch.scope.Find(n.Name); ok {
		return t
	}
	pos := n.Pos
	ch.diags.Add(cerrors.New(cerrors.PhaseTyping, cerrors.TYP001, &pos,
		fmt.Sprintf("undefined variable %s", n.Name), nil))
	return class.ErrorType()
}

func (ch *Checker) checkAssign(n *ast.Assign) *class.Class {
	rhsType := ch.checkExpr(n.Value)
	declType, ok := ch.scope.Find(n.Name)
	if !ok {
		if n.Name == class.SelfVar {
			pos := n.Pos
			ch.diags.Add(cerrors.New(cerrors.PhaseTyping, cerrors.TYP003, &pos,
				"cannot assign to self", nil))
			return class.ErrorType()
		}
		pos := n.Pos
		ch.diags.Add(cerrors.New(cerrors.PhaseTyping, cerrors.TYP001, &pos,
			fmt.Sprintf("undefined variable %s", n.Name), nil))
		return class.ErrorType()
	}
	if !Conforms(declType, rhsType) {
		pos := n.Value.Position()
		ch.diags.Add(cerrors.New(cerrors.PhaseTyping, cerrors.TYP003, &pos,
			fmt.Sprintf("cannot assign %s to %s of declared type %s",
				typeName(rhsType), n.Name, typeName(declType)), nil))
	}
	return rhsType
}

func (ch *Checker) checkNew(n *ast.New) *class.Class {
	// spec.md §4.2: "T must resolve... SELF_TYPE is not accepted in New in
	// this spec: treat it as any other name lookup."
	c := ch.table.Lookup(n.TypeName)
	if c == nil {
		pos := n.Pos
		ch.diags.Add(cerrors.New(cerrors.PhaseTyping, cerrors.TYP002, &pos,
			fmt.Sprintf("unknown type %s in new expression", n.TypeName), nil))
		return class.ErrorType()
	}
	return c
}

func (ch *Checker) requireOperand(e ast.Expr, want string) {
	got := ch.checkExpr(e)
	wantClass := ch.table.Lookup(want)
	if !class.IsError(got) && got != wantClass {
		pos := e.Position()
		ch.diags.Add(cerrors.New(cerrors.PhaseTyping, cerrors.TYP003, &pos,
			fmt.Sprintf("expected %s, got %s", want, typeName(got)), nil))
	}
}

func (ch *Checker) checkBinOp(n *ast.BinOp) *class.Class {
	// spec.md §4.2: arithmetic and the three relations (< <= =) all
	// require Int operands in this design.
	ch.requireOperand(n.Left, class.Int)
	ch.requireOperand(n.Right, class.Int)
	switch n.Op {
	case ast.LessThan, ast.LessOrEqual, ast.Equal:
		return ch.table.Lookup(class.Bool)
	default:
		return ch.table.Lookup(class.Int)
	}
}

func (ch *Checker) checkNeg(n *ast.Neg) *class.Class {
	ch.requireOperand(n.Expr, class.Int)
	return ch.table.Lookup(class.Int)
}

func (ch *Checker) checkNot(n *ast.Not) *class.Class {
	ch.requireOperand(n.Expr, class.Bool)
	return ch.table.Lookup(class.Bool)
}

func (ch *Checker) checkIf(n *ast.If) *class.Class {
	ch.requireOperand(n.Pred, class.Bool)
	thenType := ch.checkExpr(n.Then)
	elseType := ch.checkExpr(n.Else)
	return LUB(thenType, elseType)
}

func (ch *Checker) checkWhile(n *ast.While) {
	ch.requireOperand(n.Pred, class.Bool)
	ch.checkExpr(n.Body)
}

func (ch *Checker) checkBlock(n *ast.Block) *class.Class {
	var last *class.Class = ch.table.Lookup(class.Object)
	for _, e := range n.Exprs {
		last = ch.checkExpr(e)
	}
	return last
}

func (ch *Checker) checkLet(n *ast.Let) *class.Class {
	declType := ch.resolve(n.Type, n.Pos)
	hadInit := n.Init != nil
	if !hadInit {
		// spec.md §3 "Expression node": a Let with an omitted initializer
		// gets a rewritten default literal attached by analysis. The
		// synthesized default is never itself a conformance error (spec.md
		// §8 scenario 4: `let x:A in x` with x uninitialized must compile,
		// failing only at runtime on access) so it skips the check below.
		n.Init = defaultLiteral(n.Type, n.Pos)
	}
	initType := ch.checkExpr(n.Init)
	if hadInit && !Conforms(declType, initType) {
		pos := n.Init.Position()
		ch.diags.Add(cerrors.New(cerrors.PhaseTyping, cerrors.TYP003, &pos,
			fmt.Sprintf("let binding %s initializer has type %s, which does not conform to declared type %s",
				n.Name, typeName(initType), n.Type), nil))
	}
	ch.scope.Enter()
	ch.scope.Bind(n.Name, declType)
	bodyType := ch.checkExpr(n.Body)
	ch.scope.Exit()
	return bodyType
}

func (ch *Checker) checkCase(n *ast.Case) *class.Class {
	scrutType := ch.checkExpr(n.Scrutinee)
	var branchTypes []*class.Class
	for i := range n.Branches {
		br := &n.Branches[i]
		branchClass := ch.resolve(br.Type, br.Pos)
		br.ResolvedType = branchClass
		// spec.md §4.2 "Case": Ti must be comparable with the scrutinee
		// type by conformance in either direction.
		if !Conforms(scrutType, branchClass) && !Conforms(branchClass, scrutType) {
			pos := br.Pos
			ch.diags.Add(cerrors.New(cerrors.PhaseTyping, cerrors.TYP003, &pos,
				fmt.Sprintf("case branch type %s is not comparable with scrutinee type %s",
					br.Type, typeName(scrutType)), nil))
		}
		ch.scope.Enter()
		ch.scope.Bind(br.Name, branchClass)
		branchTypes = append(branchTypes, ch.checkExpr(br.Expr))
		ch.scope.Exit()
	}
	if len(branchTypes) == 0 {
		return class.ErrorType()
	}
	return LUBAll(branchTypes)
}

func (ch *Checker) checkInvoke(n *ast.Invoke) *class.Class {
	var receiver ast.Expr
	if n.Receiver != nil {
		receiver = n.Receiver
	} else {
		receiver = ast.NewVar(n.Pos, class.SelfVar)
		n.Receiver = receiver
	}
	receiverType := ch.checkExpr(receiver)

	dispatchType := receiverType
	if n.StaticType != "" {
		staticClass := ch.table.Lookup(n.StaticType)
		if staticClass == nil {
			pos := n.Pos
			ch.diags.Add(cerrors.New(cerrors.PhaseTyping, cerrors.TYP002, &pos,
				fmt.Sprintf("unknown static dispatch type %s", n.StaticType), nil))
			n.DispatchType = class.ErrorType()
			return class.ErrorType()
		}
		if !staticClass.IsAncestorOf(receiverType) && !class.IsError(receiverType) {
			pos := n.Pos
			ch.diags.Add(cerrors.New(cerrors.PhaseTyping, cerrors.TYP007, &pos,
				fmt.Sprintf("%s is not an ancestor of %s", n.StaticType, typeName(receiverType)), nil))
		}
		dispatchType = staticClass
	}
	n.DispatchType = dispatchType

	method, _ := dispatchType.ResolveMethod(n.Name)
	if method == nil {
		pos := n.Pos
		ch.diags.Add(cerrors.New(cerrors.PhaseTyping, cerrors.TYP006, &pos,
			fmt.Sprintf("undefined method %s on %s", n.Name, typeName(dispatchType)), nil))
		for _, a := range n.Args {
			ch.checkExpr(a)
		}
		return class.ErrorType()
	}

	if len(n.Args) != len(method.Formals) {
		pos := n.Pos
		ch.diags.Add(cerrors.New(cerrors.PhaseTyping, cerrors.TYP004, &pos,
			fmt.Sprintf("method %s expects %d argument(s), got %d", n.Name, len(method.Formals), len(n.Args)), nil))
	}
	for i, a := range n.Args {
		argType := ch.checkExpr(a)
		if i >= len(method.Formals) {
			continue
		}
		formalType := ch.resolve(method.Formals[i].Type, method.Formals[i].Pos)
		if !Conforms(formalType, argType) {
			pos := a.Position()
			ch.diags.Add(cerrors.New(cerrors.PhaseTyping, cerrors.TYP005, &pos,
				fmt.Sprintf("argument %d to %s has type %s, which does not conform to formal type %s",
					i+1, n.Name, typeName(argType), method.Formals[i].Type), nil))
		}
	}

	if method.ReturnType == class.SelfType {
		return ch.self
	}
	return ch.resolve(method.ReturnType, n.Pos)
}
