package codegen

import (
	"fmt"

	"github.com/coolc-lang/coolc/internal/check"
)

// methodCtx is the per-method emission state: the scope stack (reused
// generically from internal/check, bound to storage-location strings
// instead of class pointers — spec.md §3 "Scope stack... Generic over the
// value type") and the shadow offset_rbp counter for stack-resident
// locals.
type methodCtx struct {
	scope     *check.Scope[string]
	offsetRBP int
}

// pushTemp reserves one stack word for a Let/Case-branch local, advances
// offset_rbp, and returns its %rbp-relative storage location (spec.md
// §4.5 "a shadow counter offset_rbp tracks words pushed since the method
// prologue; when adding a local name to the scope, its storage is
// '-8*offset_rbp(%rbp)'").
func (e *Emitter) pushTemp(ctx *methodCtx) string {
	e.writeLine("  sub $8, %%rsp")
	ctx.offsetRBP++
	return fmt.Sprintf("-%d(%%rbp)", 8*ctx.offsetRBP)
}

// popTemp releases the most recently reserved stack word.
func (e *Emitter) popTemp(ctx *methodCtx) {
	e.writeLine("  add $8, %%rsp")
	ctx.offsetRBP--
}
