package inspect

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"
)

// Browse runs an interactive, read-only liner session over a, in the
// style of the teacher's internal/repl.REPL.Start: a liner.NewLiner
// prompt loop with command completion and history, but no expression
// evaluator behind it — every command here only renders a field of a.
func Browse(a *Artifact, in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	line.SetCompleter(func(s string) (c []string) {
		for _, cmd := range []string{"classes", "methods ", "string ", "int ", "help", "quit"} {
			if strings.HasPrefix(cmd, s) {
				c = append(c, cmd)
			}
		}
		return
	})

	fmt.Fprintln(out, "coolc inspect — read-only artifact browser. Type help for commands, quit to exit.")
	for {
		input, err := line.Prompt("inspect> ")
		if err == io.EOF {
			fmt.Fprintln(out, "Goodbye!")
			return
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if input == "quit" || input == ":quit" {
			return
		}
		runCommand(a, input, out)
	}
}

func runCommand(a *Artifact, input string, out io.Writer) {
	fields := strings.Fields(input)
	switch fields[0] {
	case "help":
		fmt.Fprintln(out, "  classes            list every class and its id")
		fmt.Fprintln(out, "  methods <Class>    list a class's method-table slots")
		fmt.Fprintln(out, "  string <n>         show string_constant_<n>")
		fmt.Fprintln(out, "  int <n>            show int_constant_<n>")
		fmt.Fprintln(out, "  quit               exit")

	case "classes":
		fmt.Fprint(out, a.FormatClasses())

	case "methods":
		if len(fields) < 2 {
			fmt.Fprintln(out, "usage: methods <Class>")
			return
		}
		out1, ok := a.FormatMethods(fields[1])
		if !ok {
			fmt.Fprintf(out, "no method table for class %q\n", fields[1])
			return
		}
		fmt.Fprint(out, out1)

	case "string":
		if len(fields) < 2 {
			fmt.Fprintln(out, "usage: string <n>")
			return
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Fprintf(out, "not a number: %s\n", fields[1])
			return
		}
		s, ok := a.Strings[n]
		if !ok {
			fmt.Fprintf(out, "no string_constant_%d\n", n)
			return
		}
		fmt.Fprintf(out, "%q\n", s)

	case "int":
		if len(fields) < 2 {
			fmt.Fprintln(out, "usage: int <n>")
			return
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Fprintf(out, "not a number: %s\n", fields[1])
			return
		}
		v, ok := a.Ints[n]
		if !ok {
			fmt.Fprintf(out, "no int_constant_%d\n", n)
			return
		}
		fmt.Fprintln(out, v)

	default:
		fmt.Fprintf(out, "unknown command %q, type help for a list\n", fields[0])
	}
}
