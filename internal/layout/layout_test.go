package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolc-lang/coolc/internal/ast"
	"github.com/coolc-lang/coolc/internal/check"
	"github.com/coolc-lang/coolc/internal/class"
	cerrors "github.com/coolc-lang/coolc/internal/errors"
)

func compile(t *testing.T, prog *ast.Program) *class.Table {
	t.Helper()
	c := cerrors.NewCollector(cerrors.PhaseHierarchy)
	tbl := class.BuildHierarchy(prog, c)
	class.CollectFeatures(tbl, c)
	check.CheckProgram(tbl, c)
	for _, r := range c.Reports() {
		if r.Phase != cerrors.PhaseEntry {
			t.Fatalf("unexpected diagnostic in fixture program: %s: %s", r.Code, r.Message)
		}
	}
	Arrange(tbl)
	return tbl
}

func TestBuiltinIdsAreFixedAndLow(t *testing.T) {
	pos := ast.Pos{File: "t.cl", Line: 1}
	main := &ast.Class{Name: "Main", Features: []ast.Feature{
		&ast.Method{Name: "main", ReturnType: class.Int, Body: ast.NewIntConst(pos, 0), Pos: pos},
	}, Pos: pos}
	tbl := compile(t, &ast.Program{Classes: []*ast.Class{main}})
	assert.Equal(t, 1, tbl.Lookup(class.Object).Id)
	assert.Equal(t, 2, tbl.Lookup(class.String).Id)
	assert.Equal(t, 3, tbl.Lookup(class.Int).Id)
	assert.Equal(t, 4, tbl.Lookup(class.Bool).Id)
	assert.Equal(t, 5, tbl.Lookup(class.IO).Id)
}

func TestOverrideKeepsParentSlot(t *testing.T) {
	pos := ast.Pos{File: "t.cl", Line: 1}
	a := &ast.Class{Name: "A", Features: []ast.Feature{
		&ast.Method{Name: "m", ReturnType: class.Int, Body: ast.NewIntConst(pos, 1), Pos: pos},
	}, Pos: pos}
	b := &ast.Class{Name: "B", ParentName: "A", HasParent: true, Features: []ast.Feature{
		&ast.Method{Name: "m", ReturnType: class.Int, Body: ast.NewIntConst(pos, 2), Pos: pos},
	}, Pos: pos}
	tbl := compile(t, &ast.Program{Classes: []*ast.Class{a, b}})

	clsA := tbl.Lookup("A")
	clsB := tbl.Lookup("B")
	require.Contains(t, clsA.MethodSlot, "m")
	assert.Equal(t, clsA.MethodSlot["m"], clsB.MethodSlot["m"], "invariant: slot(child,name) == slot(parent,name)")
	assert.Equal(t, "B", clsB.MethodOwner["m"], "B's override makes B the most-derived definer")
	assert.Equal(t, "A", clsA.MethodOwner["m"])
}

func TestFieldOffsetsExtendParent(t *testing.T) {
	pos := ast.Pos{File: "t.cl", Line: 1}
	a := &ast.Class{Name: "A", Features: []ast.Feature{
		&ast.Field{Name: "x", Type: class.Int, Pos: pos},
	}, Pos: pos}
	b := &ast.Class{Name: "B", ParentName: "A", HasParent: true, Features: []ast.Feature{
		&ast.Field{Name: "y", Type: class.Int, Pos: pos},
	}, Pos: pos}
	tbl := compile(t, &ast.Program{Classes: []*ast.Class{a, b}})

	clsB := tbl.Lookup("B")
	assert.Equal(t, []string{"x", "y"}, clsB.FieldOrder)
	assert.Equal(t, 0, clsB.FieldOffset["x"])
	assert.Equal(t, 1, clsB.FieldOffset["y"])
}

func TestInitChainsToParentViaStaticDispatch(t *testing.T) {
	pos := ast.Pos{File: "t.cl", Line: 1}
	a := &ast.Class{Name: "A", Features: []ast.Feature{
		&ast.Field{Name: "x", Type: class.Int, Init: ast.NewIntConst(pos, 7), Pos: pos},
	}, Pos: pos}
	tbl := compile(t, &ast.Program{Classes: []*ast.Class{a}})
	clsA := tbl.Lookup("A")
	require.NotNil(t, clsA.Init)

	block, ok := clsA.Init.Body.(*ast.Block)
	require.True(t, ok)
	require.Len(t, block.Exprs, 3) // parent init call, field assign, trailing self

	call, ok := block.Exprs[0].(*ast.Invoke)
	require.True(t, ok)
	assert.Equal(t, class.Object, call.StaticType)
	assert.Equal(t, class.InitMethod, call.Name)

	assign, ok := block.Exprs[1].(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Name)

	_, ok = block.Exprs[2].(*ast.Var)
	require.True(t, ok)
}
