package codegen

import (
	"fmt"

	"github.com/coolc-lang/coolc/internal/ast"
	"github.com/coolc-lang/coolc/internal/check"
	"github.com/coolc-lang/coolc/internal/class"
)

// emitUserClass writes every own method body declared on cls, using the
// System-V prologue/epilogue and scope bindings spec.md §4.5 "User
// methods" describes: fields at `40+8*index(%rbx)`, formals (in
// declaration order) at `16+8*i(%rbp)`.
func (e *Emitter) emitUserClass(cls *class.Class) {
	for _, feature := range cls.Features {
		m, ok := feature.(*ast.Method)
		if !ok {
			continue
		}
		e.emitMethod(cls, m)
	}
	// The synthesized __init__ (internal/layout) is stored on cls.Init,
	// not appended to cls.Features, so it is emitted separately here.
	if cls.Init != nil {
		e.emitMethod(cls, cls.Init)
	}
}

func (e *Emitter) emitMethod(cls *class.Class, m *ast.Method) {
	e.writeLine("%s.%s:", cls.Name, m.Name)
	e.writeLine("  push %%rbp")
	e.writeLine("  mov %%rsp, %%rbp")
	// spec.md §4.5: every frame realigns to 16 bytes so any libc call it
	// reaches (directly, or through a built-in dispatch) starts aligned.
	e.writeLine("  andq $-16, %%rsp")

	scope := check.NewScope[string]()
	scope.Enter()
	for _, name := range cls.FieldOrder {
		scope.Bind(name, fmt.Sprintf("%d(%%rbx)", FirstFieldOffset+8*cls.FieldOffset[name]))
	}
	for i, f := range m.Formals {
		scope.Bind(f.Name, fmt.Sprintf("%d(%%rbp)", 16+8*i))
	}

	ctx := &methodCtx{scope: scope}
	e.emitExpr(ctx, m.Body)

	e.writeLine("  mov %%rbp, %%rsp")
	e.writeLine("  pop %%rbp")
	e.writeLine("  ret")
	e.out.WriteByte('\n')
}
