package codegen

import "strings"

// emitConstants writes the constant pool's backing storage plus the two
// fixed booleans and the fatal-error message strings (spec.md §4.5
// "Constants"). It runs last because every earlier section may still
// register new pool entries (e.g. String.__new__'s callers indirectly
// grow it through user code, and string_constant_0 is referenced by
// String.substr's empty-string fast path).
func (e *Emitter) emitConstants() {
	e.writeLine(".data")
	e.writeLine(".balign 8")

	e.writeLine("bool_constant_false:")
	e.emitBoolHeader()
	e.writeLine("  .quad 0")
	e.out.WriteByte('\n')

	e.writeLine("bool_constant_true:")
	e.emitBoolHeader()
	e.writeLine("  .quad 1")
	e.out.WriteByte('\n')

	for i, s := range e.pool.Strings() {
		e.emitStringConstant(i, s)
	}
	for i, v := range e.pool.Ints() {
		e.emitIntConstant(i, v)
	}

	e.writeLine("int_format:")
	e.writeLine("  .string \"%%ld\"")
	e.out.WriteByte('\n')

	e.writeLine("invoke_on_void_msg:")
	e.writeLine("  .string \"fatal error: invoke on void\\n\"")
	e.out.WriteByte('\n')

	e.writeLine("case_on_void_msg:")
	e.writeLine("  .string \"fatal error: case on void\\n\"")
	e.out.WriteByte('\n')

	e.writeLine("case_no_match_msg:")
	e.writeLine("  .string \"fatal error: case no match\\n\"")
	e.out.WriteByte('\n')

	e.writeLine("oom_msg:")
	e.writeLine("  .string \"fatal error: out of memory\"")
	e.out.WriteByte('\n')
}

// emitBoolHeader writes the 5-quad object header shared by both boolean
// constants: size (6 quads = 48 bytes), GC word, class id, class-name
// pointer, method table. Booleans are never reallocated so their size
// field is a fixed constant rather than a label difference.
func (e *Emitter) emitBoolHeader() {
	boolClass := e.table.Lookup("Bool")
	nameOrd := e.pool.String(boolClass.Name)
	e.writeLine("  .quad 48")
	e.writeLine("  .quad 0")
	e.writeLine("  .quad %d", boolClass.Id)
	e.writeLine("  .quad string_constant_%d", nameOrd)
	e.writeLine("  .quad Bool_method_table")
}

func (e *Emitter) emitStringConstant(ord int, value string) {
	stringClass := e.table.Lookup("String")
	nameOrd := e.pool.String(stringClass.Name)

	e.writeLine("string_constant_%d:", ord)
	e.writeLine("  .quad 48")
	e.writeLine("  .quad 0")
	e.writeLine("  .quad %d", stringClass.Id)
	e.writeLine("  .quad string_constant_%d", nameOrd)
	e.writeLine("  .quad String_method_table")
	e.writeLine("  .quad string_data_%d", ord)
	e.out.WriteByte('\n')

	e.writeLine("string_data_%d:", ord)
	e.writeLine("  .string \"%s\"", escapeAssemblyString(value))
	e.out.WriteByte('\n')
}

func (e *Emitter) emitIntConstant(ord int, value int64) {
	intClass := e.table.Lookup("Int")
	nameOrd := e.pool.String(intClass.Name)

	e.writeLine("int_constant_%d:", ord)
	e.writeLine("  .quad 48")
	e.writeLine("  .quad 0")
	e.writeLine("  .quad %d", intClass.Id)
	e.writeLine("  .quad string_constant_%d", nameOrd)
	e.writeLine("  .quad Int_method_table")
	e.writeLine("  .quad %d", value)
	e.out.WriteByte('\n')
}

// escapeAssemblyString escapes the characters spec.md §4.5 calls out for
// `.string`: the backslash itself (so the emitted escapes are read back
// literally), then `"`, newline, tab, form-feed, and backspace.
func escapeAssemblyString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\f':
			b.WriteString(`\f`)
		case '\b':
			b.WriteString(`\b`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
