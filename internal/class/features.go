package class

import (
	"fmt"

	"github.com/coolc-lang/coolc/internal/ast"
	cerrors "github.com/coolc-lang/coolc/internal/errors"
)

// CollectFeatures partitions every class's declared features into
// OwnFields/OwnMethods, validates referenced types, and checks override
// signature compatibility against ancestors (spec.md §4.1 "Feature
// Builder"). Built-in classes are skipped: their stubs were registered
// directly by RegisterBuiltins.
func CollectFeatures(t *Table, c *cerrors.Collector) {
	for _, cls := range t.Classes() {
		if cls.Builtin {
			continue
		}
		collectOne(t, cls, c)
	}
	checkEntryPoint(t, c)
}

func collectOne(t *Table, cls *Class, c *cerrors.Collector) {
	for _, feat := range cls.Features {
		switch f := feat.(type) {
		case *ast.Field:
			if _, dup := cls.OwnFields[f.Name]; dup {
				pos := f.Pos
				c.Add(cerrors.New(cerrors.PhaseFeatures, cerrors.FEA001, &pos,
					fmt.Sprintf("field %s is declared more than once in class %s", f.Name, cls.Name), nil))
				continue
			}
			if !resolvesType(t, f.Type, false) {
				pos := f.Pos
				c.Add(cerrors.New(cerrors.PhaseFeatures, cerrors.FEA002, &pos,
					fmt.Sprintf("field %s has unknown type %s", f.Name, f.Type), nil))
			}
			cls.OwnFields[f.Name] = f

		case *ast.Method:
			if _, dup := cls.OwnMethods[f.Name]; dup {
				pos := f.Pos
				c.Add(cerrors.New(cerrors.PhaseFeatures, cerrors.FEA001, &pos,
					fmt.Sprintf("method %s is declared more than once in class %s", f.Name, cls.Name), nil))
				continue
			}
			for _, formal := range f.Formals {
				if !resolvesType(t, formal.Type, false) {
					pos := formal.Pos
					c.Add(cerrors.New(cerrors.PhaseFeatures, cerrors.FEA002, &pos,
						fmt.Sprintf("formal %s of method %s has unknown type %s", formal.Name, f.Name, formal.Type), nil))
				}
			}
			if !resolvesType(t, f.ReturnType, true) {
				pos := f.Pos
				c.Add(cerrors.New(cerrors.PhaseFeatures, cerrors.FEA002, &pos,
					fmt.Sprintf("method %s has unknown return type %s", f.Name, f.ReturnType), nil))
			}
			cls.OwnMethods[f.Name] = f

			if ancestorMethod, owner := ancestorLookup(cls, f.Name); ancestorMethod != nil {
				if !signaturesMatch(ancestorMethod, f) {
					pos := f.Pos
					c.Add(cerrors.New(cerrors.PhaseFeatures, cerrors.FEA003, &pos,
						fmt.Sprintf("method %s overrides %s.%s with an incompatible signature",
							f.Name, owner.Name, f.Name), nil))
				}
			}
		}
	}
}

// ancestorLookup finds name in a proper ancestor of cls (not cls itself).
func ancestorLookup(cls *Class, name string) (*ast.Method, *Class) {
	for cur := cls.Parent; cur != nil; cur = cur.Parent {
		if m, ok := cur.OwnMethods[name]; ok {
			return m, cur
		}
	}
	return nil, nil
}

// signaturesMatch requires identical formal count, formal types in order,
// and return type (spec.md §4.1 "override must match the parent signature").
func signaturesMatch(a, b *ast.Method) bool {
	if len(a.Formals) != len(b.Formals) {
		return false
	}
	for i := range a.Formals {
		if a.Formals[i].Type != b.Formals[i].Type {
			return false
		}
	}
	return a.ReturnType == b.ReturnType
}

// resolvesType reports whether name is a known class, or (if allowSelf) the
// literal token SELF_TYPE.
func resolvesType(t *Table, name string, allowSelf bool) bool {
	if allowSelf && name == SelfType {
		return true
	}
	return t.Has(name)
}

// checkEntryPoint requires Main.main with zero formals and return type Int
// (spec.md §3 invariant, §7 "Entry").
func checkEntryPoint(t *Table, c *cerrors.Collector) {
	main := t.Lookup(Main)
	if main == nil {
		c.Add(cerrors.New(cerrors.PhaseEntry, cerrors.ENT001, nil,
			"no class named Main was declared", nil))
		return
	}
	m, ok := main.OwnMethods["main"]
	if !ok {
		c.Add(cerrors.New(cerrors.PhaseEntry, cerrors.ENT002, nil,
			"class Main does not define method main", nil))
		return
	}
	if len(m.Formals) != 0 || m.ReturnType != Int {
		pos := m.Pos
		c.Add(cerrors.New(cerrors.PhaseEntry, cerrors.ENT003, &pos,
			"Main.main must take no formals and return Int", nil))
	}
}
