package codegen_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/coolc-lang/coolc/internal/check"
	"github.com/coolc-lang/coolc/internal/class"
	"github.com/coolc-lang/coolc/internal/codegen"
	cerrors "github.com/coolc-lang/coolc/internal/errors"
	"github.com/coolc-lang/coolc/internal/layout"
	"github.com/coolc-lang/coolc/internal/lexer"
	"github.com/coolc-lang/coolc/internal/parser"
	"github.com/coolc-lang/coolc/internal/ast"
)

// compile runs every phase up to emission over src and fails the test on
// any diagnostic, returning the laid-out table and emitted assembly.
func compile(t *testing.T, src string) (*class.Table, string) {
	t.Helper()

	prog := &ast.Program{}
	p := parser.New(lexer.New(src, "golden.cl"))
	p.ParseProgram(prog)
	require.Empty(t, p.Errors(), "unexpected parse errors")

	hier := cerrors.NewCollector(cerrors.PhaseHierarchy)
	table := class.BuildHierarchy(prog, hier)
	require.Zero(t, hier.Count(), "unexpected hierarchy errors: %+v", hier.Reports())

	feat := cerrors.NewCollector(cerrors.PhaseFeatures)
	class.CollectFeatures(table, feat)
	require.Zero(t, feat.Count(), "unexpected feature errors: %+v", feat.Reports())

	typ := cerrors.NewCollector(cerrors.PhaseTyping)
	check.CheckProgram(table, typ)
	require.Zero(t, typ.Count(), "unexpected typing errors: %+v", typ.Reports())

	layout.Arrange(table)

	asm, err := codegen.Emit(table, class.Main)
	require.NoError(t, err)
	return table, asm
}

const minimalMain = `class Main { main() : Int { 0 }; };`

func TestEmitIsDeterministic(t *testing.T) {
	_, first := compile(t, minimalMain)
	_, second := compile(t, minimalMain)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("two compiles of the same source produced different assembly (-first +second):\n%s", diff)
	}
}

func TestEmitContainsFixedSections(t *testing.T) {
	_, asm := compile(t, minimalMain)

	for _, want := range []string{
		".text",
		".data",
		"Object_prototype:",
		"String_prototype:",
		"Int_prototype:",
		"Bool_prototype:",
		"IO_prototype:",
		"Main_prototype:",
		"Object_method_table:",
		"Main_method_table:",
		"Main.main:",
		"bool_constant_false:",
		"bool_constant_true:",
		"invoke_on_void_msg:",
		"case_on_void_msg:",
		"case_no_match_msg:",
		"oom_msg:",
	} {
		if !strings.Contains(asm, want) {
			t.Errorf("expected assembly to contain %q, got:\n%s", want, asm)
		}
	}
}

func TestEmitInheritedMethodSharesOwnerLabel(t *testing.T) {
	_, asm := compile(t, `
class Greeter inherits IO {
  greet() : SELF_TYPE { out_string("hi\n") };
};
class Main inherits Greeter {
  main() : Int {
    {
      self.greet();
      0;
    }
  };
};`)
	if !strings.Contains(asm, "Greeter.greet:") {
		t.Fatalf("expected a Greeter.greet label for the defining class, got:\n%s", asm)
	}
	if !strings.Contains(asm, ".quad Greeter.greet") {
		t.Fatalf("expected Main's method table to point at the inherited owner, got:\n%s", asm)
	}
}

func TestEmitStaticDispatchUsesStaticTypeTable(t *testing.T) {
	table, asm := compile(t, `
class A { f() : Int { 1 }; };
class B inherits A { f() : Int { 2 }; };
class Main {
  m(b : B) : Int { b@A.f() };
  main() : Int { 0 };
};`)
	// The call goes through f's slot in A's table, not B's.
	want := fmt.Sprintf("call *A_method_table+%d(%%rip)", table.Lookup("A").MethodSlot["f"]*8)
	if !strings.Contains(asm, want) {
		t.Fatalf("expected static dispatch %q, got:\n%s", want, asm)
	}
}

func TestEmitStringAndIntConstantsPool(t *testing.T) {
	_, asm := compile(t, `
class Main {
  main() : Int {
    {
      "hello";
      "hello";
      42;
      42;
      0;
    }
  };
};`)
	// Deduplication: "hello" and 42 should each appear exactly once as a
	// pooled constant, regardless of how many times the source repeats them.
	if got := strings.Count(asm, `.string "hello"`); got != 1 {
		t.Fatalf("expected exactly 1 pooled \"hello\" constant, got %d in:\n%s", got, asm)
	}
	if got := strings.Count(asm, ".quad 42\n"); got != 1 {
		t.Fatalf("expected exactly 1 pooled 42 constant, got %d in:\n%s", got, asm)
	}
}
