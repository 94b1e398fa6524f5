// Package codegen implements spec.md §4.5, the emitter: object layout,
// prototypes, method tables, per-expression x86-64 System-V emission, and
// the hand-written built-in runtime. Output is GNU `as` syntax for
// x86-64 Linux, PIC disabled (spec.md §6).
package codegen

import (
	"fmt"
	"strings"

	"github.com/coolc-lang/coolc/internal/class"
	"github.com/coolc-lang/coolc/internal/constpool"
)

// HeaderSlots is the fixed 5-quadword object header of spec.md §4.5:
// size, GC word, class id, class-name pointer, method-table pointer.
const HeaderSlots = 5

// FirstFieldOffset is the byte offset of the first declared field (or, for
// String/Int/Bool, the boxed payload) — 40, five 8-byte header slots in.
const FirstFieldOffset = HeaderSlots * 8

// Emitter holds the state shared across every emission section: the
// class table (already laid out by internal/layout), the constant pool
// (grows monotonically as method bodies and built-ins are emitted), and a
// program-wide monotonic label counter for fresh if/while/case labels
// (spec.md §4.5 "fresh labels come from a monotonic counter").
type Emitter struct {
	table   *class.Table
	pool    *constpool.Pool
	labelN  int
	out     strings.Builder
}

// New creates an Emitter over an already-laid-out class table.
func New(t *class.Table) *Emitter {
	return &Emitter{table: t, pool: constpool.New()}
}

// Emit produces the complete assembly listing in the section order of
// spec.md §4.5: prototypes, method tables, user methods, built-in
// runtime, then constants (emitted last because the constant pool keeps
// growing while user methods and built-ins are emitted, but the
// assembler resolves every label regardless of definition order).
func Emit(t *class.Table, mainClassName string) (string, error) {
	e := New(t)

	e.writePrologue()
	e.emitPrototypes()
	e.emitMethodTables()
	for _, cls := range t.Classes() {
		if cls.Builtin {
			continue
		}
		e.emitUserClass(cls)
	}
	e.emitBuiltinRuntime(mainClassName)
	e.emitConstants()

	return e.out.String(), nil
}

func (e *Emitter) writePrologue() {
	e.out.WriteString(".text\n")
}

// newLabel returns a fresh, program-unique label suffix.
func (e *Emitter) newLabel(prefix string) string {
	e.labelN++
	return fmt.Sprintf(".L%s%d", prefix, e.labelN)
}

func (e *Emitter) writeLine(format string, args ...any) {
	e.out.WriteString(fmt.Sprintf(format, args...))
	e.out.WriteByte('\n')
}
