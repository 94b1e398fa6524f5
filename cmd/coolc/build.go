package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/coolc-lang/coolc/internal/config"
	cerrors "github.com/coolc-lang/coolc/internal/errors"
	"github.com/coolc-lang/coolc/internal/pipeline"
)

// compile runs the full pipeline over srcPaths and, on success, writes
// the emitted assembly to outputDir/<exeName>.s. It returns the path to
// that file, or exits the process on any phase failure.
func compile(srcPaths []string, outputDir, exeName string, jsonErrors bool) string {
	srcs, rep := pipeline.LoadSources(srcPaths)
	if rep != nil {
		printDiagnostics([]*cerrors.Report{rep}, jsonErrors)
		os.Exit(1)
	}

	res := pipeline.Run(srcs)
	if !res.Ok() {
		printDiagnostics(res.Errors, jsonErrors)
		os.Exit(1)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot create output directory %s: %v\n", red("Error"), outputDir, err)
		os.Exit(1)
	}
	asmPath := filepath.Join(outputDir, exeName+".s")
	if err := os.WriteFile(asmPath, []byte(res.Assembly), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot write %s: %v\n", red("Error"), asmPath, err)
		os.Exit(1)
	}
	return asmPath
}

func cmdEmit(args []string, cfg *config.Config, jsonErrors bool) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: coolc emit EXE_FILE SRC_FILE...")
		os.Exit(1)
	}
	asmPath := compile(args[1:], cfg.OutputDir, args[0], jsonErrors)
	fmt.Printf("%s wrote %s\n", green("✓"), asmPath)
}

func cmdBuild(args []string, cfg *config.Config, jsonErrors bool) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: coolc build EXE_FILE SRC_FILE...")
		os.Exit(1)
	}
	exeName := args[0]
	asmPath := compile(args[1:], cfg.OutputDir, exeName, jsonErrors)
	exePath := filepath.Join(cfg.OutputDir, exeName)

	gccArgs := append(append([]string{}, cfg.GccFlags...), asmPath, "-o", exePath)
	cmd := exec.Command(cfg.Assembler, gccArgs...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s %v failed: %v\n", red("Error"), cfg.Assembler, gccArgs, err)
		os.Exit(1)
	}
	fmt.Printf("%s built %s\n", green("✓"), exePath)
}
