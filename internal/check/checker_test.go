package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolc-lang/coolc/internal/ast"
	"github.com/coolc-lang/coolc/internal/class"
	cerrors "github.com/coolc-lang/coolc/internal/errors"
)

func pos() ast.Pos { return ast.Pos{File: "t.cl", Line: 1, Col: 1} }

// buildAndCheck runs the hierarchy builder, feature collector, and type
// checker over prog, returning the table and the diagnostics collected
// across all three phases (mirroring how the pipeline sequences them).
func buildAndCheck(t *testing.T, prog *ast.Program) (*class.Table, *cerrors.Collector) {
	t.Helper()
	c := cerrors.NewCollector(cerrors.PhaseHierarchy)
	tbl := class.BuildHierarchy(prog, c)
	class.CollectFeatures(tbl, c)
	CheckProgram(tbl, c)
	return tbl, c
}

func mainClassWithBody(body ast.Expr) *ast.Class {
	return &ast.Class{
		Name: "Main",
		Features: []ast.Feature{
			&ast.Method{Name: "main", ReturnType: class.Int, Body: body, Pos: pos()},
		},
		Pos: pos(),
	}
}

func TestArithmeticTypesAsInt(t *testing.T) {
	body := &ast.BinOp{
		Op:    ast.Add,
		Left:  ast.NewIntConst(pos(), 2),
		Right: ast.NewIntConst(pos(), 3),
	}
	prog := &ast.Program{Classes: []*ast.Class{mainClassWithBody(body)}}
	_, c := buildAndCheck(t, prog)
	require.Equal(t, 0, c.Count())
	resolved := body.Resolved().(*class.Class)
	assert.Equal(t, class.Int, resolved.Name)
}

func TestUndefinedVariableDiagnosed(t *testing.T) {
	body := ast.NewVar(pos(), "nope")
	prog := &ast.Program{Classes: []*ast.Class{
		{Name: "Main", Features: []ast.Feature{
			&ast.Method{Name: "main", ReturnType: class.Int, Body: body, Pos: pos()},
		}, Pos: pos()},
	}}
	_, c := buildAndCheck(t, prog)
	require.Equal(t, 1, c.Count())
	assert.Equal(t, cerrors.TYP001, c.Reports()[0].Code)
}

func TestIfResultIsLUBOfBranches(t *testing.T) {
	a := &ast.Class{Name: "A", Pos: pos()}
	b := &ast.Class{Name: "B", ParentName: "A", HasParent: true, Pos: pos()}
	ifExpr := &ast.If{
		Pred: ast.NewBoolConst(pos(), true),
		Then: &ast.New{TypeName: "A"},
		Else: &ast.New{TypeName: "B"},
	}
	// Main.main must return Int, so the If sits in a block that ends in 0.
	body := ast.NewBlock(pos(), []ast.Expr{ifExpr, ast.NewIntConst(pos(), 0)})
	prog := &ast.Program{Classes: []*ast.Class{a, b, mainClassWithBody(body)}}

	_, c := buildAndCheck(t, prog)
	require.Equal(t, 0, c.Count())
	resolved := ifExpr.Resolved().(*class.Class)
	assert.Equal(t, "A", resolved.Name)
}

func TestLetWithoutInitGetsDefaultLiteral(t *testing.T) {
	letExpr := &ast.Let{Name: "x", Type: class.Int, Body: ast.NewVar(pos(), "x")}
	prog := &ast.Program{Classes: []*ast.Class{mainClassWithBody(letExpr)}}
	_, c := buildAndCheck(t, prog)
	require.Equal(t, 0, c.Count())
	require.NotNil(t, letExpr.Init)
	lit, ok := letExpr.Init.(*ast.IntConst)
	require.True(t, ok, "expected synthesized IntConst default")
	assert.Equal(t, int64(0), lit.Value)
}

func TestLetWithoutInitOnClassTypeGetsVoidAndStillTypechecks(t *testing.T) {
	// spec.md §8 scenario 4 ("Case on void"): `let x:A in x` with x
	// uninitialized must compile cleanly; the synthesized Void default
	// must not be held to A's conformance rules.
	a := &ast.Class{Name: "A", Pos: pos()}
	letExpr := &ast.Let{Name: "x", Type: "A", Body: ast.NewVar(pos(), "x")}
	// Main.main must return Int, so the Let sits in a block that ends in 0.
	body := ast.NewBlock(pos(), []ast.Expr{letExpr, ast.NewIntConst(pos(), 0)})
	prog := &ast.Program{Classes: []*ast.Class{a, mainClassWithBody(body)}}

	_, c := buildAndCheck(t, prog)
	require.Equal(t, 0, c.Count(), "unexpected diagnostics: %+v", c.Reports())
	require.NotNil(t, letExpr.Init)
	_, ok := letExpr.Init.(*ast.Void)
	assert.True(t, ok, "expected synthesized Void default for a non-primitive Let type")
}

func TestCaseBranchTypeMustBeComparableWithScrutinee(t *testing.T) {
	a := &ast.Class{Name: "A", Pos: pos()}
	unrelated := &ast.Class{Name: "U", Pos: pos()}
	caseExpr := &ast.Case{
		Scrutinee: &ast.New{TypeName: "A"},
		Branches: []ast.CaseBranch{
			{Name: "y", Type: "U", Expr: ast.NewIntConst(pos(), 0), Pos: pos()},
		},
	}
	prog := &ast.Program{Classes: []*ast.Class{a, unrelated, mainClassWithBody(caseExpr)}}
	_, c := buildAndCheck(t, prog)

	found := false
	for _, r := range c.Reports() {
		if r.Code == cerrors.TYP003 {
			found = true
		}
	}
	assert.True(t, found, "expected a TYP003 diagnostic for an incomparable case branch type")
}

func TestCaseBranchTypeConformingEitherDirectionIsAccepted(t *testing.T) {
	a := &ast.Class{Name: "A", Pos: pos()}
	b := &ast.Class{Name: "B", ParentName: "A", HasParent: true, Pos: pos()}
	caseExpr := &ast.Case{
		Scrutinee: &ast.New{TypeName: "A"},
		Branches: []ast.CaseBranch{
			{Name: "y", Type: "B", Expr: ast.NewIntConst(pos(), 0), Pos: pos()},
		},
	}
	prog := &ast.Program{Classes: []*ast.Class{a, b, mainClassWithBody(caseExpr)}}
	_, c := buildAndCheck(t, prog)
	require.Equal(t, 0, c.Count(), "unexpected diagnostics: %+v", c.Reports())
}

func TestStaticDispatchRequiresAncestor(t *testing.T) {
	a := &ast.Class{Name: "A", Features: []ast.Feature{
		&ast.Method{Name: "m", ReturnType: class.Int, Body: ast.NewIntConst(pos(), 1), Pos: pos()},
	}, Pos: pos()}
	unrelated := &ast.Class{Name: "U", Pos: pos()}
	invoke := &ast.Invoke{Receiver: &ast.New{TypeName: "A"}, StaticType: "U", Name: "m"}
	prog := &ast.Program{Classes: []*ast.Class{a, unrelated, mainClassWithBody(invoke)}}
	_, c := buildAndCheck(t, prog)
	found := false
	for _, r := range c.Reports() {
		if r.Code == cerrors.TYP007 {
			found = true
		}
	}
	assert.True(t, found, "expected a TYP007 diagnostic for a non-ancestor static dispatch type")
}

func TestOverrideSignatureMismatchDiagnosed(t *testing.T) {
	a := &ast.Class{Name: "A", Features: []ast.Feature{
		&ast.Method{Name: "m", ReturnType: class.Int, Body: ast.NewIntConst(pos(), 1), Pos: pos()},
	}, Pos: pos()}
	b := &ast.Class{Name: "B", ParentName: "A", HasParent: true, Features: []ast.Feature{
		&ast.Method{Name: "m", ReturnType: class.Object, Body: ast.NewVoid(pos()), Pos: pos()},
	}, Pos: pos()}
	prog := &ast.Program{Classes: []*ast.Class{a, b, mainClassWithBody(ast.NewIntConst(pos(), 0))}}
	_, c := buildAndCheck(t, prog)
	found := false
	for _, r := range c.Reports() {
		if r.Code == cerrors.FEA003 {
			found = true
		}
	}
	assert.True(t, found, "expected a FEA003 diagnostic for the incompatible override")
}
