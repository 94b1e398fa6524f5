package main

import (
	"fmt"
	"os"

	cerrors "github.com/coolc-lang/coolc/internal/errors"
	"github.com/coolc-lang/coolc/internal/pipeline"
)

// cmdCheck runs the full pipeline, emission included, in memory but never
// writes anything to disk: its only output is the pass/fail verdict and,
// on failure, diagnostics.
func cmdCheck(args []string, jsonErrors bool) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: coolc check SRC_FILE...")
		os.Exit(1)
	}

	srcs, rep := pipeline.LoadSources(args)
	if rep != nil {
		printDiagnostics([]*cerrors.Report{rep}, jsonErrors)
		os.Exit(1)
	}

	res := pipeline.Run(srcs)
	if !res.Ok() {
		printDiagnostics(res.Errors, jsonErrors)
		os.Exit(1)
	}

	fmt.Printf("%s no errors found\n", green("✓"))
}
