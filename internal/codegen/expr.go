package codegen

import (
	"github.com/coolc-lang/coolc/internal/ast"
	"github.com/coolc-lang/coolc/internal/class"
)

// emitExpr writes the instruction sequence for e, leaving its value in
// %rax (spec.md §4.5 "the body's code generator writes to %rax").
func (e *Emitter) emitExpr(ctx *methodCtx, node ast.Expr) {
	switch n := node.(type) {
	case *ast.Var:
		e.emitVar(ctx, n)
	case *ast.IntConst:
		e.writeLine("  lea int_constant_%d(%%rip), %%rax", e.pool.Int(n.Value))
	case *ast.StrConst:
		e.writeLine("  lea string_constant_%d(%%rip), %%rax", e.pool.String(n.Value))
	case *ast.BoolConst:
		e.emitBoolLiteral(n.Value)
	case *ast.Void:
		e.writeLine("  mov $0, %%rax")
	case *ast.Assign:
		e.emitAssign(ctx, n)
	case *ast.New:
		e.emitNew(ctx, n)
	case *ast.IsVoid:
		e.emitIsVoid(ctx, n)
	case *ast.BinOp:
		e.emitBinOp(ctx, n)
	case *ast.Neg:
		e.emitNeg(ctx, n)
	case *ast.Not:
		e.emitNot(ctx, n)
	case *ast.If:
		e.emitIf(ctx, n)
	case *ast.While:
		e.emitWhile(ctx, n)
	case *ast.Block:
		e.emitBlock(ctx, n)
	case *ast.Let:
		e.emitLet(ctx, n)
	case *ast.Case:
		e.emitCase(ctx, n)
	case *ast.Invoke:
		e.emitInvoke(ctx, n)
	default:
		e.writeLine("  # unhandled expression kind %T", n)
		e.writeLine("  mov $0, %%rax")
	}
}

func (e *Emitter) emitVar(ctx *methodCtx, n *ast.Var) {
	if n.Name == class.SelfVar {
		e.writeLine("  mov %%rbx, %%rax")
		return
	}
	loc, ok := ctx.scope.Find(n.Name)
	if !ok {
		// Unreachable for a type-checked program: every Var was resolved
		// against the same scope shape during analysis.
		e.writeLine("  mov $0, %%rax")
		return
	}
	e.writeLine("  mov %s, %%rax", loc)
}

func (e *Emitter) emitBoolLiteral(v bool) {
	if v {
		e.writeLine("  lea bool_constant_true(%%rip), %%rax")
	} else {
		e.writeLine("  lea bool_constant_false(%%rip), %%rax")
	}
}

func (e *Emitter) emitAssign(ctx *methodCtx, n *ast.Assign) {
	e.emitExpr(ctx, n.Value)
	loc, ok := ctx.scope.Find(n.Name)
	if !ok {
		return
	}
	e.writeLine("  mov %%rax, %s", loc)
}

// emitNew implements spec.md §4.5 "New T calls T_method_table[copy_slot]
// with %rbx = T_prototype, then T_method_table[__init_slot] on the
// result." %rbx (the enclosing self) is saved and restored around it.
func (e *Emitter) emitNew(ctx *methodCtx, n *ast.New) {
	t := e.table.Lookup(n.TypeName)
	object := e.table.Lookup(class.Object)
	copySlot := object.MethodSlot["copy"]
	initSlot := object.MethodSlot[class.InitMethod]

	e.writeLine("  push %%rbx")
	e.writeLine("  lea %s_prototype(%%rip), %%rbx", t.Name)
	e.writeLine("  call *%s_method_table+%d(%%rip)", t.Name, copySlot*8)
	e.writeLine("  mov %%rax, %%rbx")
	e.writeLine("  call *%s_method_table+%d(%%rip)", t.Name, initSlot*8)
	e.writeLine("  pop %%rbx")
}

func (e *Emitter) emitIsVoid(ctx *methodCtx, n *ast.IsVoid) {
	e.emitExpr(ctx, n.Expr)
	trueLabel := e.newLabel("isvoid_true")
	endLabel := e.newLabel("isvoid_end")
	e.writeLine("  cmp $0, %%rax")
	e.writeLine("  je %s", trueLabel)
	e.writeLine("  lea bool_constant_false(%%rip), %%rax")
	e.writeLine("  jmp %s", endLabel)
	e.writeLine("%s:", trueLabel)
	e.writeLine("  lea bool_constant_true(%%rip), %%rax")
	e.writeLine("%s:", endLabel)
}

// unboxedBinary evaluates right then left (spec.md §4.5 "evaluates RHS,
// pushes it, evaluates LHS, pops into %rcx"), leaving the left operand's
// boxed Int payload in %rdx and the right operand's in %rcx.
func (e *Emitter) unboxedBinary(ctx *methodCtx, left, right ast.Expr) {
	e.emitExpr(ctx, right)
	e.writeLine("  push %%rax")
	e.emitExpr(ctx, left)
	e.writeLine("  pop %%rcx")
	e.writeLine("  mov %d(%%rax), %%rdx", FirstFieldOffset) // left payload
	e.writeLine("  mov %d(%%rcx), %%rcx", FirstFieldOffset) // right payload
}

// callIntNew boxes the int64 value in %rdi as a fresh Int, saving and
// restoring %rbx around the helper call (spec.md §4.5 "Int.__new__").
func (e *Emitter) callIntNew() {
	e.writeLine("  push %%rbx")
	e.writeLine("  call Int.__new__")
	e.writeLine("  pop %%rbx")
}

func (e *Emitter) emitBinOp(ctx *methodCtx, n *ast.BinOp) {
	switch n.Op {
	case ast.Add, ast.Sub, ast.Mul, ast.Div:
		e.unboxedBinary(ctx, n.Left, n.Right)
		switch n.Op {
		case ast.Add:
			e.writeLine("  add %%rcx, %%rdx")
		case ast.Sub:
			e.writeLine("  sub %%rcx, %%rdx")
		case ast.Mul:
			e.writeLine("  imul %%rcx, %%rdx")
		case ast.Div:
			// Division by zero traps on the host CPU (spec.md §8
			// "documented behavior"); no explicit check is inserted.
			e.writeLine("  mov %%rdx, %%rax")
			e.writeLine("  cqto")
			e.writeLine("  idiv %%rcx")
			e.writeLine("  mov %%rax, %%rdx")
		}
		e.writeLine("  mov %%rdx, %%rdi")
		e.callIntNew()
	case ast.LessThan, ast.LessOrEqual, ast.Equal:
		e.unboxedBinary(ctx, n.Left, n.Right)
		e.writeLine("  cmp %%rcx, %%rdx")
		trueLabel := e.newLabel("cmp_true")
		endLabel := e.newLabel("cmp_end")
		switch n.Op {
		case ast.LessThan:
			e.writeLine("  jl %s", trueLabel)
		case ast.LessOrEqual:
			e.writeLine("  jle %s", trueLabel)
		case ast.Equal:
			e.writeLine("  je %s", trueLabel)
		}
		e.writeLine("  lea bool_constant_false(%%rip), %%rax")
		e.writeLine("  jmp %s", endLabel)
		e.writeLine("%s:", trueLabel)
		e.writeLine("  lea bool_constant_true(%%rip), %%rax")
		e.writeLine("%s:", endLabel)
	}
}

func (e *Emitter) emitNeg(ctx *methodCtx, n *ast.Neg) {
	e.emitExpr(ctx, n.Expr)
	e.writeLine("  mov %d(%%rax), %%rdi", FirstFieldOffset)
	e.writeLine("  neg %%rdi")
	e.callIntNew()
}

func (e *Emitter) emitNot(ctx *methodCtx, n *ast.Not) {
	e.emitExpr(ctx, n.Expr)
	e.writeLine("  mov %d(%%rax), %%rax", FirstFieldOffset)
	e.writeLine("  cmp $0, %%rax")
	trueLabel := e.newLabel("not_true")
	endLabel := e.newLabel("not_end")
	e.writeLine("  je %s", trueLabel)
	e.writeLine("  lea bool_constant_false(%%rip), %%rax")
	e.writeLine("  jmp %s", endLabel)
	e.writeLine("%s:", trueLabel)
	e.writeLine("  lea bool_constant_true(%%rip), %%rax")
	e.writeLine("%s:", endLabel)
}

func (e *Emitter) boolPayloadTrue(ctx *methodCtx, pred ast.Expr) {
	e.emitExpr(ctx, pred)
	e.writeLine("  mov %d(%%rax), %%rax", FirstFieldOffset)
	e.writeLine("  cmp $0, %%rax")
}

func (e *Emitter) emitIf(ctx *methodCtx, n *ast.If) {
	e.boolPayloadTrue(ctx, n.Pred)
	elseLabel := e.newLabel("if_else")
	endLabel := e.newLabel("if_end")
	e.writeLine("  je %s", elseLabel)
	e.emitExpr(ctx, n.Then)
	e.writeLine("  jmp %s", endLabel)
	e.writeLine("%s:", elseLabel)
	e.emitExpr(ctx, n.Else)
	e.writeLine("%s:", endLabel)
}

func (e *Emitter) emitWhile(ctx *methodCtx, n *ast.While) {
	loopLabel := e.newLabel("while_loop")
	endLabel := e.newLabel("while_end")
	e.writeLine("%s:", loopLabel)
	e.boolPayloadTrue(ctx, n.Pred)
	e.writeLine("  je %s", endLabel)
	e.emitExpr(ctx, n.Body)
	e.writeLine("  jmp %s", loopLabel)
	e.writeLine("%s:", endLabel)
	// spec.md §9: "the runtime 'value of a while loop' is null — the
	// emitter must leave %rax = 0."
	e.writeLine("  mov $0, %%rax")
}

func (e *Emitter) emitBlock(ctx *methodCtx, n *ast.Block) {
	for _, sub := range n.Exprs {
		e.emitExpr(ctx, sub)
	}
}

func (e *Emitter) emitLet(ctx *methodCtx, n *ast.Let) {
	// n.Init is never nil here: the checker rewrites an omitted
	// initializer into a default literal (spec.md §3, §8).
	e.emitExpr(ctx, n.Init)
	loc := e.pushTemp(ctx)
	e.writeLine("  mov %%rax, %s", loc)
	ctx.scope.Enter()
	ctx.scope.Bind(n.Name, loc)
	e.emitExpr(ctx, n.Body)
	ctx.scope.Exit()
	e.popTemp(ctx)
}

// emitCase implements spec.md §4.5 "Case checks the scrutinee is
// non-void..., then for each branch compares the object's class-id slot
// against the branch's class id; on match, binds the variable and
// evaluates the branch; if no branch matches, jumps to _case_no_match."
// Branches are tried in source order with no most-specific selection
// (spec.md §9, an acknowledged departure from canonical COOL).
func (e *Emitter) emitCase(ctx *methodCtx, n *ast.Case) {
	e.emitExpr(ctx, n.Scrutinee)
	e.writeLine("  cmp $0, %%rax")
	e.writeLine("  je _case_on_void")

	loc := e.pushTemp(ctx)
	e.writeLine("  mov %%rax, %s", loc)

	endLabel := e.newLabel("case_end")
	for i := range n.Branches {
		br := &n.Branches[i]
		branchClass, _ := br.ResolvedType.(*class.Class)
		nextLabel := e.newLabel("case_next")

		e.writeLine("  mov %s, %%rax", loc)
		e.writeLine("  mov 16(%%rax), %%rax")
		e.writeLine("  cmp $%d, %%rax", branchClass.Id)
		e.writeLine("  jne %s", nextLabel)

		e.writeLine("  mov %s, %%rax", loc)
		branchLoc := e.pushTemp(ctx)
		e.writeLine("  mov %%rax, %s", branchLoc)
		ctx.scope.Enter()
		ctx.scope.Bind(br.Name, branchLoc)
		e.emitExpr(ctx, br.Expr)
		ctx.scope.Exit()
		e.popTemp(ctx)

		e.writeLine("  jmp %s", endLabel)
		e.writeLine("%s:", nextLabel)
	}
	e.writeLine("  jmp _case_no_match")
	e.writeLine("%s:", endLabel)
	e.popTemp(ctx)
}

// emitInvoke implements spec.md §4.5 "Invoke pushes %rbx, pushes
// arguments right-to-left, evaluates receiver, null-checks it, loads the
// method table (dynamically... or statically...), and calls; on return,
// pops arguments and restores %rbx."
func (e *Emitter) emitInvoke(ctx *methodCtx, n *ast.Invoke) {
	e.writeLine("  push %%rbx")
	for i := len(n.Args) - 1; i >= 0; i-- {
		e.emitExpr(ctx, n.Args[i])
		e.writeLine("  push %%rax")
	}
	e.emitExpr(ctx, n.Receiver)
	e.writeLine("  cmp $0, %%rax")
	e.writeLine("  je _invoke_on_void")
	e.writeLine("  mov %%rax, %%rbx")

	if n.StaticType != "" {
		dispatch := e.table.Lookup(n.StaticType)
		slot := dispatch.MethodSlot[n.Name]
		e.writeLine("  call *%s_method_table+%d(%%rip)", dispatch.Name, slot*8)
	} else {
		dispatch, _ := n.DispatchType.(*class.Class)
		slot := dispatch.MethodSlot[n.Name]
		e.writeLine("  mov 32(%%rbx), %%rax")
		e.writeLine("  call *%d(%%rax)", slot*8)
	}

	if len(n.Args) > 0 {
		e.writeLine("  add $%d, %%rsp", 8*len(n.Args))
	}
	e.writeLine("  pop %%rbx")
}
