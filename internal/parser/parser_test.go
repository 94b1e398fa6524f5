package parser

import (
	"testing"

	"github.com/coolc-lang/coolc/internal/ast"
	"github.com/coolc-lang/coolc/internal/lexer"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src, "test.cl"))
	prog := &ast.Program{}
	p.ParseProgram(prog)
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return prog
}

func TestParseMinimalClass(t *testing.T) {
	prog := parse(t, `class Main { main() : Object { 0 }; };`)
	if len(prog.Classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(prog.Classes))
	}
	cls := prog.Classes[0]
	if cls.Name != "Main" {
		t.Fatalf("expected class Main, got %s", cls.Name)
	}
	if cls.HasParent {
		t.Fatalf("expected no explicit parent")
	}
	if len(cls.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(cls.Features))
	}
	m, ok := cls.Features[0].(*ast.Method)
	if !ok {
		t.Fatalf("expected *ast.Method, got %T", cls.Features[0])
	}
	if m.Name != "main" || m.ReturnType != "Object" {
		t.Fatalf("unexpected method: %+v", m)
	}
	if _, ok := m.Body.(*ast.IntConst); !ok {
		t.Fatalf("expected IntConst body, got %T", m.Body)
	}
}

func TestParseInheritsAndField(t *testing.T) {
	prog := parse(t, `class Counter inherits IO {
  count : Int <- 0;
};`)
	cls := prog.Classes[0]
	if !cls.HasParent || cls.ParentName != "IO" {
		t.Fatalf("expected parent IO, got %+v", cls)
	}
	f, ok := cls.Features[0].(*ast.Field)
	if !ok {
		t.Fatalf("expected *ast.Field, got %T", cls.Features[0])
	}
	if f.Name != "count" || f.Type != "Int" {
		t.Fatalf("unexpected field: %+v", f)
	}
	if _, ok := f.Init.(*ast.IntConst); !ok {
		t.Fatalf("expected IntConst init, got %T", f.Init)
	}
}

func TestParseFieldWithoutInit(t *testing.T) {
	prog := parse(t, `class A { x : Int; };`)
	f := prog.Classes[0].Features[0].(*ast.Field)
	if f.Init != nil {
		t.Fatalf("expected nil Init, got %v", f.Init)
	}
}

func TestParseDispatchAndStaticDispatch(t *testing.T) {
	prog := parse(t, `class A {
  m() : Object {
    {
      self.foo();
      self@B.bar(1, 2);
      baz(3);
    }
  };
};`)
	body := prog.Classes[0].Features[0].(*ast.Method).Body.(*ast.Block)
	if len(body.Exprs) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(body.Exprs))
	}

	foo := body.Exprs[0].(*ast.Invoke)
	if foo.Name != "foo" || foo.StaticType != "" || foo.Receiver == nil {
		t.Fatalf("unexpected dispatch: %+v", foo)
	}

	bar := body.Exprs[1].(*ast.Invoke)
	if bar.Name != "bar" || bar.StaticType != "B" || len(bar.Args) != 2 {
		t.Fatalf("unexpected static dispatch: %+v", bar)
	}

	baz := body.Exprs[2].(*ast.Invoke)
	if baz.Name != "baz" || baz.Receiver != nil || len(baz.Args) != 1 {
		t.Fatalf("unexpected implicit dispatch: %+v", baz)
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3)
	prog := parse(t, `class A { m() : Int { 1 + 2 * 3 }; };`)
	body := prog.Classes[0].Features[0].(*ast.Method).Body.(*ast.BinOp)
	if body.Op != ast.Add {
		t.Fatalf("expected top-level Add, got %v", body.Op)
	}
	right := body.Right.(*ast.BinOp)
	if right.Op != ast.Mul {
		t.Fatalf("expected nested Mul, got %v", right.Op)
	}
}

func TestParseIfWhileLet(t *testing.T) {
	prog := parse(t, `class A {
  m() : Int {
    let x : Int <- 1 in
      if x <= 0 then 0 else while x <= 10 loop x <- x + 1 pool fi
  };
};`)
	m := prog.Classes[0].Features[0].(*ast.Method)
	let := m.Body.(*ast.Let)
	if let.Name != "x" || let.Type != "Int" {
		t.Fatalf("unexpected let: %+v", let)
	}
	ifExpr := let.Body.(*ast.If)
	if _, ok := ifExpr.Else.(*ast.While); !ok {
		t.Fatalf("expected While in else branch, got %T", ifExpr.Else)
	}
}

func TestParseCase(t *testing.T) {
	prog := parse(t, `class A {
  m() : Object {
    case self.get() of
      x : Int => x;
      s : String => 0;
    esac
  };
};`)
	m := prog.Classes[0].Features[0].(*ast.Method)
	c := m.Body.(*ast.Case)
	if len(c.Branches) != 2 {
		t.Fatalf("expected 2 branches, got %d", len(c.Branches))
	}
	if c.Branches[0].Name != "x" || c.Branches[0].Type != "Int" {
		t.Fatalf("unexpected branch 0: %+v", c.Branches[0])
	}
	if c.Branches[1].Name != "s" || c.Branches[1].Type != "String" {
		t.Fatalf("unexpected branch 1: %+v", c.Branches[1])
	}
}

func TestParseMultiLet(t *testing.T) {
	// let a:Int <- 1, b:Int <- 2 in a + b  desugars to nested Let nodes.
	prog := parse(t, `class A { m() : Int { let a : Int <- 1, b : Int <- 2 in a + b }; };`)
	m := prog.Classes[0].Features[0].(*ast.Method)
	outer := m.Body.(*ast.Let)
	if outer.Name != "a" {
		t.Fatalf("expected outer binding a, got %s", outer.Name)
	}
	inner, ok := outer.Body.(*ast.Let)
	if !ok {
		t.Fatalf("expected nested Let, got %T", outer.Body)
	}
	if inner.Name != "b" {
		t.Fatalf("expected inner binding b, got %s", inner.Name)
	}
}

func TestParseNewIsvoidNotNeg(t *testing.T) {
	prog := parse(t, `class A {
  m() : Object {
    {
      new B;
      isvoid self;
      not true;
      ~1;
    }
  };
};`)
	body := prog.Classes[0].Features[0].(*ast.Method).Body.(*ast.Block)
	if n, ok := body.Exprs[0].(*ast.New); !ok || n.TypeName != "B" {
		t.Fatalf("unexpected new: %+v", body.Exprs[0])
	}
	if _, ok := body.Exprs[1].(*ast.IsVoid); !ok {
		t.Fatalf("expected IsVoid, got %T", body.Exprs[1])
	}
	if _, ok := body.Exprs[2].(*ast.Not); !ok {
		t.Fatalf("expected Not, got %T", body.Exprs[2])
	}
	if _, ok := body.Exprs[3].(*ast.Neg); !ok {
		t.Fatalf("expected Neg, got %T", body.Exprs[3])
	}
}

func TestParseSyntaxErrorRecovery(t *testing.T) {
	src := `class A { m() Object { 0 }; };
class B { n() : Int { 1 }; };`
	p := New(lexer.New(src, "test.cl"))
	prog := &ast.Program{}
	p.ParseProgram(prog)

	if len(p.Errors()) == 0 {
		t.Fatalf("expected at least one syntax error for missing ':'")
	}
	var sawB bool
	for _, c := range prog.Classes {
		if c.Name == "B" {
			sawB = true
		}
	}
	if !sawB {
		t.Fatalf("expected parser to recover and still find class B, classes: %+v", prog.Classes)
	}
}
