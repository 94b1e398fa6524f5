// Package pipeline wires the phases of spec.md §2/§7 together: source
// validation, lexing and parsing, hierarchy construction, feature
// collection, type checking, layout, and code generation. Each phase
// accumulates diagnostics into its own *errors.Collector; the driver
// checks Count() after the phase and aborts with a single aggregate
// Report rather than letting a broken tree reach the next phase
// (spec.md §7, grounded on the teacher's internal/pipeline.Run shape,
// which runs its own fixed phase sequence and folds per-phase results
// into one Result).
package pipeline

import (
	"github.com/coolc-lang/coolc/internal/ast"
	"github.com/coolc-lang/coolc/internal/check"
	"github.com/coolc-lang/coolc/internal/class"
	"github.com/coolc-lang/coolc/internal/codegen"
	cerrors "github.com/coolc-lang/coolc/internal/errors"
	"github.com/coolc-lang/coolc/internal/layout"
	"github.com/coolc-lang/coolc/internal/lexer"
	"github.com/coolc-lang/coolc/internal/parser"
	"github.com/coolc-lang/coolc/internal/source"
)

// Source is one input file, already read (and, for real files, BOM
// stripped and UTF-8 validated) off disk.
type Source struct {
	Code     string
	Filename string
}

// Result carries every artifact a run produced, or the diagnostics that
// stopped it. Assembly is empty whenever Errors is non-empty.
type Result struct {
	Program  *ast.Program
	Table    *class.Table
	Assembly string
	Errors   []*cerrors.Report
}

// Ok reports whether the run reached code generation without error.
func (r Result) Ok() bool { return len(r.Errors) == 0 }

// LoadSources reads and validates every path in paths, in order,
// surfacing the first unreadable or non-UTF-8 file as a single Report
// (source validation has no notion of "accumulate and continue": a file
// the driver cannot even read leaves nothing for later phases to work
// with, unlike a lexical or syntax error in a file that did load).
func LoadSources(paths []string) ([]Source, *cerrors.Report) {
	srcs := make([]Source, 0, len(paths))
	for _, p := range paths {
		code, err := source.Load(p)
		if err != nil {
			if rep, ok := cerrors.AsReport(err); ok {
				return nil, rep
			}
			return nil, cerrors.New(cerrors.PhaseSource, cerrors.SRC002, nil, err.Error(), map[string]any{"path": p})
		}
		srcs = append(srcs, Source{Code: code, Filename: p})
	}
	return srcs, nil
}

// Run executes every phase up to and including code generation. It never
// panics on malformed input: every failure mode ends up as a Report in
// Result.Errors.
func Run(sources []Source) Result {
	prog, parseErrs := parseAll(sources)
	if len(parseErrs) > 0 {
		return Result{Program: prog, Errors: parseErrs}
	}

	hier := cerrors.NewCollector(cerrors.PhaseHierarchy)
	table := class.BuildHierarchy(prog, hier)
	if hier.Count() > 0 {
		return Result{Program: prog, Errors: []*cerrors.Report{hier.Aggregate()}}
	}

	feat := cerrors.NewCollector(cerrors.PhaseFeatures)
	class.CollectFeatures(table, feat)
	if feat.Count() > 0 {
		return Result{Program: prog, Table: table, Errors: []*cerrors.Report{feat.Aggregate()}}
	}

	typ := cerrors.NewCollector(cerrors.PhaseTyping)
	check.CheckProgram(table, typ)
	if typ.Count() > 0 {
		return Result{Program: prog, Table: table, Errors: []*cerrors.Report{typ.Aggregate()}}
	}

	layout.Arrange(table)

	asm, err := codegen.Emit(table, class.Main)
	if err != nil {
		if rep, ok := cerrors.AsReport(err); ok {
			return Result{Program: prog, Table: table, Errors: []*cerrors.Report{rep}}
		}
		return Result{Program: prog, Table: table, Errors: []*cerrors.Report{
			cerrors.New(cerrors.PhaseEmit, cerrors.EMT001, nil, err.Error(), nil),
		}}
	}

	return Result{Program: prog, Table: table, Assembly: asm}
}

// parseAll lexes and parses every source into one merged ast.Program
// (spec.md has no separate-compilation-unit model: every class from
// every file lives in one hierarchy). Parser diagnostics from every file
// are folded into a single PhaseParse collector before aggregation, so a
// syntax error in file two doesn't hide one already found in file one.
func parseAll(sources []Source) (*ast.Program, []*cerrors.Report) {
	prog := &ast.Program{}
	parseC := cerrors.NewCollector(cerrors.PhaseParse)

	for _, s := range sources {
		l := lexer.New(s.Code, s.Filename)
		p := parser.New(l)
		p.ParseProgram(prog)
		for _, e := range p.Errors() {
			parseC.Add(e)
		}
	}

	if parseC.Count() > 0 {
		return prog, []*cerrors.Report{parseC.Aggregate()}
	}
	return prog, nil
}
