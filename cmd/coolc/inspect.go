package main

import (
	"fmt"
	"os"

	"github.com/coolc-lang/coolc/internal/inspect"
)

// cmdInspect opens a read-only liner browser over a previously emitted
// assembly listing (spec.md AMBIENT STACK: "lets a user browse the
// compiled artifact's class table, method-slot table, and constant pool
// by name").
func cmdInspect(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: coolc inspect EXE_FILE.s")
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", red("Error"), args[0], err)
		os.Exit(1)
	}

	artifact := inspect.Parse(string(data))
	inspect.Browse(artifact, os.Stdin, os.Stdout)
}
