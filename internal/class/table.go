package class

import "github.com/coolc-lang/coolc/internal/ast"

// Table is the class table of spec.md §3: populated once by the hierarchy
// and feature builder, then mutated only by the layout arranger.
type Table struct {
	byName map[string]*Class
	// order is registration order: built-ins first (Object, String, Int,
	// Bool, IO), then user classes in declaration order. The layout
	// arranger assigns ids by walking this order.
	order []string
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{byName: map[string]*Class{}}
}

// Register adds c to the table under c.Name. Callers are responsible for
// rejecting duplicates before calling Register (the hierarchy builder does
// this so it can attach a proper diagnostic).
func (t *Table) Register(c *Class) {
	t.byName[c.Name] = c
	t.order = append(t.order, c.Name)
}

// Lookup returns the class named name, or nil if it is not registered.
func (t *Table) Lookup(name string) *Class {
	return t.byName[name]
}

// Has reports whether name is registered.
func (t *Table) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Order returns class names in registration order (built-ins first).
func (t *Table) Order() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Classes returns every registered class in registration order.
func (t *Table) Classes() []*Class {
	out := make([]*Class, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.byName[name])
	}
	return out
}

// RegisterBuiltins registers Object, String, Int, Bool, IO in that fixed
// order with their method stubs (spec.md §3 "built-ins occupy the low ids
// in the order Object, String, Int, Bool, IO"; §6 built-in contracts).
// Bodies are left nil: these methods are hand-written in the emitter
// (spec.md §4.5 "Built-in runtime"), not synthesized from an AST body.
func (t *Table) RegisterBuiltins() {
	object := New(Object, "", true)
	stub(object, "abort", nil, Object)
	stub(object, "type_name", nil, String)
	stub(object, "copy", nil, SelfType)
	stub(object, InitMethod, nil, SelfType)
	t.Register(object)

	str := New(String, Object, true)
	stub(str, "length", nil, Int)
	stub(str, "concat", []ast.Formal{{Name: "other", Type: String}}, String)
	stub(str, "substr", []ast.Formal{{Name: "begin", Type: Int}, {Name: "end", Type: Int}}, String)
	stub(str, "to_int", nil, Int)
	t.Register(str)

	intClass := New(Int, Object, true)
	stub(intClass, "to_string", nil, String)
	t.Register(intClass)

	boolClass := New(Bool, Object, true)
	t.Register(boolClass)

	io := New(IO, Object, true)
	stub(io, "in_string", nil, String)
	stub(io, "out_string", []ast.Formal{{Name: "x", Type: String}}, SelfType)
	t.Register(io)
}

// stub registers a body-less method signature directly into cls.OwnMethods,
// bypassing the feature collector (built-ins have no source text to parse).
func stub(cls *Class, name string, formals []ast.Formal, ret string) {
	cls.OwnMethods[name] = &ast.Method{
		Name:       name,
		Formals:    formals,
		ReturnType: ret,
		Body:       nil,
	}
	cls.Features = append(cls.Features, cls.OwnMethods[name])
}
