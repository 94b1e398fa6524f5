// Package class implements the COOL class table: the hierarchy and
// feature builder of spec.md §4.1, plus the Class/Table data model of
// spec.md §3. Layout (ids, field offsets, method slots) is filled in later
// by internal/layout, but lives on these same structs so downstream phases
// never need a second lookup table.
package class

import "github.com/coolc-lang/coolc/internal/ast"

// Reserved names spec.md calls out explicitly.
const (
	Object = "Object"
	String = "String"
	Int    = "Int"
	Bool   = "Bool"
	IO     = "IO"
	Main   = "Main"

	SelfType = "SELF_TYPE"
	SelfVar  = "self"

	InitMethod = "__init__"
)

// Class is a named COOL type, assembled incrementally across phases:
// hierarchy (Parent/Children), features (OwnFields/OwnMethods/Init), and
// layout (Id/FieldOrder/FieldOffset/MethodOrder/MethodSlot/MethodOwner).
type Class struct {
	Name       string
	ParentName string // as written in source; "" for Object
	Parent     *Class // resolved by the hierarchy builder; nil for Object
	Children   []*Class

	// Builtin marks one of Object/String/Int/Bool/IO: these have
	// hand-written runtime methods instead of synthesized bodies.
	Builtin bool

	// Features, in declaration order, as parsed (own features only).
	Features []ast.Feature

	// OwnFields/OwnMethods partition Features by kind (spec.md §4.1).
	OwnFields  map[string]*ast.Field
	OwnMethods map[string]*ast.Method

	// Init is this class's synthesized __init__ method (spec.md §4.3).
	// Filled in by internal/layout after typing succeeds.
	Init *ast.Method

	// --- layout, filled in by internal/layout ---

	Id int // ≥1; 0 is reserved/unused

	FieldOrder  []string       // parent's fields (in order) + own, in order
	FieldOffset map[string]int // field name -> zero-based index into FieldOrder

	MethodOrder []string       // parent's slots (in order) + new slots for own methods
	MethodSlot  map[string]int // method name -> slot index
	MethodOwner map[string]string // method name -> most-derived defining class name
}

// New creates an empty Class ready for the feature collector to populate.
func New(name, parentName string, builtin bool) *Class {
	return &Class{
		Name:       name,
		ParentName: parentName,
		Builtin:    builtin,
		OwnFields:  map[string]*ast.Field{},
		OwnMethods: map[string]*ast.Method{},
	}
}

// Ancestors returns this class followed by every proper ancestor, ending at
// Object. Object's own Ancestors is just [Object].
func (c *Class) Ancestors() []*Class {
	var chain []*Class
	for cur := c; cur != nil; cur = cur.Parent {
		chain = append(chain, cur)
	}
	return chain
}

// IsAncestorOf reports whether c is on the parent chain of other (inclusive
// of other itself) — i.e. other conforms to c.
func (c *Class) IsAncestorOf(other *Class) bool {
	for cur := other; cur != nil; cur = cur.Parent {
		if cur == c {
			return true
		}
	}
	return false
}

// ResolveMethod walks the class chain from c upward looking for name,
// returning the *ast.Method and the defining class, or (nil, nil) if not
// found anywhere in the chain.
func (c *Class) ResolveMethod(name string) (*ast.Method, *Class) {
	for cur := c; cur != nil; cur = cur.Parent {
		if m, ok := cur.OwnMethods[name]; ok {
			return m, cur
		}
	}
	return nil, nil
}

// ResolveField walks the class chain from c upward looking for a field
// named name, returning the *ast.Field and the declaring class.
func (c *Class) ResolveField(name string) (*ast.Field, *Class) {
	for cur := c; cur != nil; cur = cur.Parent {
		if f, ok := cur.OwnFields[name]; ok {
			return f, cur
		}
	}
	return nil, nil
}

// errorSentinel is the singleton poison marker of spec.md §3 "Error
// sentinel": a distinguished Class value used purely to mark an
// already-diagnosed subtree so its parent does not cascade further errors.
var errorSentinel = &Class{Name: "<error>"}

// ErrorType returns the error sentinel.
func ErrorType() *Class { return errorSentinel }

// IsError reports whether c is the error sentinel.
func IsError(c *Class) bool { return c == errorSentinel }
