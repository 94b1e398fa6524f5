// Package errors provides centralized structured diagnostics for coolc.
// Every phase of the pipeline reports failures as a *Report rather than a
// bare error, so the driver can aggregate, count, and (optionally) emit
// them as JSON for tooling.
package errors

// Error code constants, organized by compiler phase. Codes are stable
// identifiers; message text may change across versions but codes do not.
const (
	// ============================================================================
	// Hierarchy errors (HIE###) — spec.md §4.1, §7 "Hierarchy"
	// ============================================================================

	// HIE001 indicates a class name was declared more than once.
	HIE001 = "HIE001"

	// HIE002 indicates a class was named SELF_TYPE, which is reserved.
	HIE002 = "HIE002"

	// HIE003 indicates a class's parent name does not resolve to any
	// registered class.
	HIE003 = "HIE003"

	// HIE004 indicates a class declared String, Int, or Bool as its parent;
	// those classes may not be inherited from.
	HIE004 = "HIE004"

	// HIE005 indicates a cycle was found in the parent chain.
	HIE005 = "HIE005"

	// ============================================================================
	// Feature errors (FEA###) — spec.md §4.1 "Feature Builder"
	// ============================================================================

	// FEA001 indicates a method or field name was declared twice in one class.
	FEA001 = "FEA001"

	// FEA002 indicates a formal, field, or return type name does not resolve.
	FEA002 = "FEA002"

	// FEA003 indicates an overriding method's signature does not exactly
	// match an inherited method of the same name.
	FEA003 = "FEA003"

	// ============================================================================
	// Typing errors (TYP###) — spec.md §4.2 "Type Checker"
	// ============================================================================

	// TYP001 indicates a reference to an undeclared identifier.
	TYP001 = "TYP001"

	// TYP002 indicates a type name used in an expression does not resolve.
	TYP002 = "TYP002"

	// TYP003 indicates a general conformance failure: right does not
	// conform to left.
	TYP003 = "TYP003"

	// TYP004 indicates an invoke supplied the wrong number of arguments.
	TYP004 = "TYP004"

	// TYP005 indicates an invoke argument's type does not conform to the
	// corresponding formal type.
	TYP005 = "TYP005"

	// TYP006 indicates a dispatch to an undefined method name.
	TYP006 = "TYP006"

	// TYP007 indicates a static-dispatch type was not an ancestor of the
	// receiver's static type.
	TYP007 = "TYP007"

	// ============================================================================
	// Syntax errors (PAR###) — lexing/parsing, spec.md's "external
	// collaborator" phase; kept structured here so the driver can
	// aggregate these diagnostics the same way as every other phase.
	// ============================================================================

	// PAR001 indicates a lexical error (bad token, unterminated string or
	// comment).
	PAR001 = "PAR001"

	// PAR002 indicates a syntax error: the token stream didn't match the
	// grammar at the parser's current position.
	PAR002 = "PAR002"

	// ============================================================================
	// Source errors (SRC###) — pre-lexing source validation
	// ============================================================================

	// SRC001 indicates a source file is not well-formed UTF-8.
	SRC001 = "SRC001"

	// SRC002 indicates a source file could not be read from disk.
	SRC002 = "SRC002"

	// ============================================================================
	// Entry-point errors (ENT###) — spec.md §4.1, §7 "Entry"
	// ============================================================================

	// ENT001 indicates no class named Main was declared.
	ENT001 = "ENT001"

	// ENT002 indicates Main does not define a method named main.
	ENT002 = "ENT002"

	// ENT003 indicates Main.main has the wrong formal count or return type.
	ENT003 = "ENT003"

	// ============================================================================
	// Emitter-internal errors (EMT###) — should never surface from a
	// program that passed the type checker; present for defense in depth.
	// ============================================================================

	// EMT001 indicates the emitter was asked to lay out a class the layout
	// arranger never visited.
	EMT001 = "EMT001"

	// ============================================================================
	// Aggregate errors (AGG###) — raised by the pipeline driver once a
	// phase's diagnostic count is non-zero.
	// ============================================================================

	// AGG001 wraps every diagnostic collected during one phase.
	AGG001 = "AGG001"
)

// Phase name constants, used in Report.Phase.
const (
	PhaseParse     = "parse"
	PhaseSource    = "source"
	PhaseHierarchy = "hierarchy"
	PhaseFeatures  = "features"
	PhaseTyping    = "typecheck"
	PhaseEntry     = "entry"
	PhaseLayout    = "layout"
	PhaseEmit      = "emit"
)
