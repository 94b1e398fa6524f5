package main

import (
	"fmt"
	"os"

	cerrors "github.com/coolc-lang/coolc/internal/errors"
)

// printDiagnostics renders the pipeline's final aggregate Report (spec.md
// §7: one AGG001 per failed phase) either as colorized text or, with
// -json-errors, as machine-readable JSON via Report.ToJSON.
func printDiagnostics(reports []*cerrors.Report, jsonErrors bool) {
	for _, rep := range reports {
		if jsonErrors {
			js, err := rep.ToJSON(false)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: failed to marshal diagnostic: %v\n", red("Error"), err)
				continue
			}
			fmt.Println(js)
			continue
		}

		fmt.Fprintf(os.Stderr, "%s [%s/%s]: %s\n", red("Error"), rep.Phase, rep.Code, rep.Message)
		if diags, ok := rep.Data["diagnostics"].([]*cerrors.Report); ok {
			for _, d := range diags {
				if d.Pos != nil {
					fmt.Fprintf(os.Stderr, "  %s %s: %s\n", yellow(d.Pos.String()), d.Code, d.Message)
				} else {
					fmt.Fprintf(os.Stderr, "  %s: %s\n", d.Code, d.Message)
				}
			}
		}
	}
}
