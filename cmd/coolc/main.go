// Command coolc is the whole-program COOL compiler driver: it lexes and
// parses every source file, runs the hierarchy/feature/type-check/layout
// phases, emits x86-64 assembly, and — unless told not to — assembles
// and links it with gcc. Grounded on the teacher's cmd/ailang/main.go:
// a flag-based CLI, a package-level color palette, and a switch over
// flag.Arg(0) subcommands.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/coolc-lang/coolc/internal/config"
)

var (
	// Version info, set by -ldflags during a release build.
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		helpFlag    = flag.Bool("help", false, "Show help")
		jsonErrors  = flag.Bool("json-errors", false, "Emit the final diagnostic as JSON instead of colorized text")
		configPath  = flag.String("config", "coolc.yaml", "Path to the project configuration file")
	)
	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}
	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	switch cmd := flag.Arg(0); cmd {
	case "build":
		cmdBuild(flag.Args()[1:], cfg, *jsonErrors)
	case "emit":
		cmdEmit(flag.Args()[1:], cfg, *jsonErrors)
	case "check":
		cmdCheck(flag.Args()[1:], *jsonErrors)
	case "inspect":
		cmdInspect(flag.Args()[1:])
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), cmd)
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("coolc %s\n", bold(Version))
	if Commit != "unknown" {
		fmt.Printf("Commit: %s\n", Commit)
	}
	if BuildTime != "unknown" {
		fmt.Printf("Built:  %s\n", BuildTime)
	}
	fmt.Println("\nA whole-program ahead-of-time COOL compiler")
}

func printHelp() {
	fmt.Println(bold("coolc - a whole-program COOL compiler"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  coolc <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s EXE SRC...      Compile, assemble and link SRC... into EXE\n", cyan("build"))
	fmt.Printf("  %s EXE SRC...       Compile SRC... to EXE.s only, skip gcc\n", cyan("emit"))
	fmt.Printf("  %s SRC...          Report compile errors without writing any file\n", cyan("check"))
	fmt.Printf("  %s ASM.s        Browse a compiled artifact's class/method/constant tables\n", cyan("inspect"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -version        Print version information")
	fmt.Println("  -help           Show this help message")
	fmt.Println("  -json-errors    Emit the final diagnostic as JSON")
	fmt.Println("  -config PATH    Project configuration file (default coolc.yaml)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s\n", cyan("coolc build hello hello.cl"))
	fmt.Printf("  %s\n", cyan("coolc check src/*.cl"))
	fmt.Printf("  %s\n", cyan("coolc inspect hello.s"))
}
