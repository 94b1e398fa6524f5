package codegen

// emitMethodTables writes each class's flat array of code-label pointers
// indexed by method slot (spec.md §4.5 "Method tables"). Slot N holds the
// label `<defining class>.<method name>`, taking the defining class from
// the layout arranger's MethodOwner resolver map.
func (e *Emitter) emitMethodTables() {
	for _, cls := range e.table.Classes() {
		e.writeLine(".balign 8")
		e.writeLine("%s_method_table:", cls.Name)
		for _, name := range cls.MethodOrder {
			owner := cls.MethodOwner[name]
			e.writeLine("  .quad %s.%s", owner, name)
		}
		e.out.WriteByte('\n')
	}
}
