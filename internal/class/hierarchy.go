package class

import (
	"fmt"

	cerrors "github.com/coolc-lang/coolc/internal/errors"

	"github.com/coolc-lang/coolc/internal/ast"
)

// illegalParents are the classes spec.md §3 forbids inheriting from.
var illegalParents = map[string]bool{
	String: true,
	Int:    true,
	Bool:   true,
}

// BuildHierarchy registers built-ins, then every user class from prog,
// resolves parent pointers, and builds child lists. Diagnostics are
// recorded into c; classes that fail registration are discarded rather
// than left half-built, so later phases never see them (spec.md §4.1).
func BuildHierarchy(prog *ast.Program, c *cerrors.Collector) *Table {
	t := NewTable()
	t.RegisterBuiltins()

	seen := map[string]bool{Object: true, String: true, Int: true, Bool: true, IO: true}

	for _, uc := range prog.Classes {
		pos := uc.Pos
		if uc.Name == SelfType {
			c.Add(cerrors.New(cerrors.PhaseHierarchy, cerrors.HIE002, &pos,
				"class may not be named SELF_TYPE", nil))
			continue
		}
		if seen[uc.Name] {
			c.Add(cerrors.New(cerrors.PhaseHierarchy, cerrors.HIE001, &pos,
				fmt.Sprintf("class %s is declared more than once", uc.Name), nil))
			continue
		}

		parentName := uc.ParentName
		if !uc.HasParent {
			parentName = Object
		}
		if illegalParents[parentName] {
			c.Add(cerrors.New(cerrors.PhaseHierarchy, cerrors.HIE004, &pos,
				fmt.Sprintf("class %s may not inherit from %s", uc.Name, parentName), nil))
			continue
		}

		cls := New(uc.Name, parentName, false)
		cls.Features = uc.Features
		seen[uc.Name] = true
		t.Register(cls)
	}

	// Resolve parent pointers and reject undefined parents. Object's
	// Parent stays nil (spec.md §3 invariant "Object is the root and has
	// no parent").
	for _, cls := range t.Classes() {
		if cls.Name == Object {
			continue
		}
		parent := t.Lookup(cls.ParentName)
		if parent == nil {
			pos := ast.Pos{}
			if len(cls.Features) > 0 {
				pos = cls.Features[0].Position()
			}
			c.Add(cerrors.New(cerrors.PhaseHierarchy, cerrors.HIE003, &pos,
				fmt.Sprintf("class %s inherits from undefined class %s", cls.Name, cls.ParentName), nil))
			continue
		}
		cls.Parent = parent
	}

	checkAcyclic(t, c)

	for _, cls := range t.Classes() {
		if cls.Parent != nil {
			cls.Parent.Children = append(cls.Parent.Children, cls)
		}
	}

	return t
}

// checkAcyclic verifies the parent graph is a tree (spec.md §9 "no cycle
// detection on parent declarations" is flagged as a bug in the original;
// this implementation fixes it with an explicit post-insertion check, as
// spec.md §7 "Hierarchy" and §9 direct).
func checkAcyclic(t *Table, c *cerrors.Collector) {
	state := map[string]int{} // 0=unvisited, 1=in-progress, 2=done
	var visit func(cls *Class) bool
	visit = func(cls *Class) bool {
		if state[cls.Name] == 2 {
			return true
		}
		if state[cls.Name] == 1 {
			c.Add(cerrors.New(cerrors.PhaseHierarchy, cerrors.HIE005, nil,
				fmt.Sprintf("cycle detected in inheritance chain at class %s", cls.Name), nil))
			return false
		}
		state[cls.Name] = 1
		if cls.Parent != nil {
			if !visit(cls.Parent) {
				cls.Parent = nil // break the cycle so later phases terminate
				state[cls.Name] = 2
				return false
			}
		}
		state[cls.Name] = 2
		return true
	}
	for _, cls := range t.Classes() {
		visit(cls)
	}
}
