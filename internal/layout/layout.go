// Package layout implements spec.md §4.3, the layout arranger: class id
// assignment, per-class field offsets, method dispatch slots, and the
// synthesized per-class __init__ initializer.
package layout

import (
	"github.com/coolc-lang/coolc/internal/ast"
	"github.com/coolc-lang/coolc/internal/class"
)

// builtinOrder is the fixed low-id ordering spec.md §3 and §4.3 require.
var builtinOrder = []string{class.Object, class.String, class.Int, class.Bool, class.IO}

// Arrange assigns class ids, computes ordered field lists and method
// dispatch slots, and synthesizes each user class's __init__. It must run
// after the hierarchy and feature builder and the type checker have both
// succeeded (spec.md §2 step 5).
func Arrange(t *class.Table) {
	assignIds(t)

	visited := map[string]bool{}
	var visit func(cls *class.Class)
	visit = func(cls *class.Class) {
		if visited[cls.Name] {
			return
		}
		visited[cls.Name] = true
		inheritLayout(cls)
		appendOwnFeatures(cls)
		if !cls.Builtin {
			synthesizeInit(cls)
		}
		for _, child := range cls.Children {
			visit(child)
		}
	}
	visit(t.Lookup(class.Object))
}

// assignIds walks built-ins (fixed order) then user classes in declaration
// order, starting ids at 1 (spec.md §4.3 "Assign class ids in the order
// Object, String, Int, Bool, IO, <user classes in declaration order>").
func assignIds(t *class.Table) {
	id := 1
	for _, name := range builtinOrder {
		t.Lookup(name).Id = id
		id++
	}
	for _, name := range t.Order() {
		cls := t.Lookup(name)
		if cls.Id != 0 {
			continue // already assigned above as a built-in
		}
		cls.Id = id
		id++
	}
}

// inheritLayout copies the parent's ordered field list, field offsets, and
// method slot/owner tables into cls as a starting point. Object (no
// parent) starts from empty tables.
func inheritLayout(cls *class.Class) {
	if cls.Parent == nil {
		cls.FieldOffset = map[string]int{}
		cls.MethodSlot = map[string]int{}
		cls.MethodOwner = map[string]string{}
		return
	}
	p := cls.Parent
	cls.FieldOrder = append([]string{}, p.FieldOrder...)
	cls.FieldOffset = cloneIntMap(p.FieldOffset)
	cls.MethodOrder = append([]string{}, p.MethodOrder...)
	cls.MethodSlot = cloneIntMap(p.MethodSlot)
	cls.MethodOwner = cloneStrMap(p.MethodOwner)
}

// appendOwnFeatures appends cls's own fields at new offsets and its own
// methods at new slots, or — for an overriding method name — keeps the
// inherited slot and updates the owner to cls (spec.md §4.3).
func appendOwnFeatures(cls *class.Class) {
	for _, feat := range cls.Features {
		switch f := feat.(type) {
		case *ast.Field:
			cls.FieldOffset[f.Name] = len(cls.FieldOrder)
			cls.FieldOrder = append(cls.FieldOrder, f.Name)
		case *ast.Method:
			assignSlot(cls, f.Name)
		}
	}
}

// assignSlot gives name a new slot if this is the first class in the
// chain to define it, or keeps the inherited slot and updates the owner
// to cls if it overrides an ancestor's method.
func assignSlot(cls *class.Class, name string) {
	if _, ok := cls.MethodSlot[name]; ok {
		cls.MethodOwner[name] = cls.Name
		return
	}
	cls.MethodSlot[name] = len(cls.MethodOrder)
	cls.MethodOrder = append(cls.MethodOrder, name)
	cls.MethodOwner[name] = cls.Name
}

// synthesizeInit builds cls.__init__: a self-then-parent initialization
// chain. The body is (a) a static-dispatch call to the parent's __init__
// through self, (b) an Assign for each own field with an initializer, in
// declaration order, (c) a trailing self Var (spec.md §4.3). Object's
// __init__ is hand-written identity in the emitter and is never
// synthesized here (cls.Builtin guards the call site in Arrange).
//
// The parent call is written as static dispatch (self@Parent.__init__())
// rather than plain self-dispatch: ordinary dynamic self-dispatch would
// re-resolve to the most-derived __init__ (this class's own, since it
// shares the inherited slot) and recurse forever. Spec.md §4.3 says only
// "a self-dispatch call to the parent's __init__"; reading it as static
// dispatch is the only reading that terminates, so that is the decision
// recorded here and in DESIGN.md.
func synthesizeInit(cls *class.Class) {
	pos := classPos(cls)

	var body []ast.Expr
	if cls.Parent != nil {
		call := ast.NewInvoke(pos, class.InitMethod, nil)
		call.Receiver = ast.NewVar(pos, class.SelfVar)
		call.StaticType = cls.Parent.Name
		call.DispatchType = cls.Parent
		body = append(body, call)
	}
	for _, feat := range cls.Features {
		f, ok := feat.(*ast.Field)
		if !ok || f.Init == nil {
			continue
		}
		body = append(body, ast.NewAssign(f.Pos, f.Name, f.Init))
	}
	body = append(body, ast.NewVar(pos, class.SelfVar))

	method := &ast.Method{
		Name:       class.InitMethod,
		ReturnType: class.SelfType,
		Body:       ast.NewBlock(pos, body),
		Pos:        pos,
	}
	cls.OwnMethods[class.InitMethod] = method
	cls.Init = method
	assignSlot(cls, class.InitMethod)
}

// classPos returns a representative position for synthesized nodes: the
// first feature's, or the zero Pos for a class with none.
func classPos(cls *class.Class) ast.Pos {
	if len(cls.Features) > 0 {
		return cls.Features[0].Position()
	}
	return ast.Pos{}
}

func cloneIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneStrMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
