package codegen

import "github.com/coolc-lang/coolc/internal/class"

// emitPrototypes writes the header-plus-default-fields block for every
// class, followed by prototype_table (spec.md §4.5 "Prototypes").
func (e *Emitter) emitPrototypes() {
	for _, cls := range e.table.Classes() {
		e.emitPrototype(cls)
	}
	e.emitPrototypeTable()
}

func (e *Emitter) emitPrototype(cls *class.Class) {
	nameOrd := e.pool.String(cls.Name)
	start := cls.Name + "_prototype"
	end := start + "_end"

	e.writeLine(".balign 8")
	e.writeLine("%s:", start)
	e.writeLine("  .quad %s - %s", end, start) // object size in bytes (testable property 3)
	e.writeLine("  .quad 0")                    // GC word, reserved (spec.md §1, §5)
	e.writeLine("  .quad %d", cls.Id)
	e.writeLine("  .quad string_constant_%d", nameOrd)
	e.writeLine("  .quad %s_method_table", cls.Name)

	for _, name := range cls.FieldOrder {
		e.writeLine("  .quad %s", e.defaultFieldValue(cls.FieldOffset, name, cls))
	}

	switch cls.Name {
	case class.String:
		e.writeLine("  .quad string_data_%d", e.pool.String(""))
	case class.Int:
		e.writeLine("  .quad 0")
	case class.Bool:
		e.writeLine("  .quad 0")
	}

	e.writeLine("%s:", end)
	e.out.WriteByte('\n')
}

// defaultFieldValue resolves a field's default prototype value from its
// declared type: the empty-string constant for String, the int-0 constant
// for Int, bool_constant_false for Bool, and a null pointer (0) for
// everything else (spec.md §4.5, §8 "boundary cases").
func (e *Emitter) defaultFieldValue(_ map[string]int, fieldName string, cls *class.Class) string {
	_, owner := cls.ResolveField(fieldName)
	f := owner.OwnFields[fieldName]
	switch f.Type {
	case class.String:
		return "string_constant_0"
	case class.Int:
		return "int_constant_0"
	case class.Bool:
		return "bool_constant_false"
	default:
		return "0"
	}
}

func (e *Emitter) emitPrototypeTable() {
	e.writeLine(".balign 8")
	e.writeLine("prototype_table:")
	e.writeLine("  .quad 0") // entry 0 is zero padding; ids start at 1
	for _, cls := range e.table.Classes() {
		e.writeLine("  .quad %s_prototype", cls.Name)
	}
	e.out.WriteByte('\n')
}
