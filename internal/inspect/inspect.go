// Package inspect reads the .s text produced by internal/codegen back
// into a browsable index: the class table, each class's method-table
// slots, and the constant pool. It is read-only — there is no assembler
// here, only enough pattern recognition over the emitter's own label
// conventions (spec.md §4.5) to answer "what class has id 3" or "what
// does String's slot 2 dispatch to" without re-running the compiler.
package inspect

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ClassInfo is one class's entry in the prototype table.
type ClassInfo struct {
	Name string
	ID   int
}

// MethodSlot is one entry in a class's method table: the slot's defining
// class and method name, in table order.
type MethodSlot struct {
	Owner string
	Name  string
}

// Artifact is everything Parse could recover from an assembly listing.
type Artifact struct {
	Classes      []ClassInfo
	MethodTables map[string][]MethodSlot // class name -> slots
	Strings      map[int]string
	Ints         map[int]int64
}

var (
	protoHeader = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)_prototype:$`)
	quad        = regexp.MustCompile(`^\s*\.quad\s+(.+)$`)
	methodTable = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)_method_table:$`)
	methodEntry = regexp.MustCompile(`^\s*\.quad\s+([A-Za-z_][A-Za-z0-9_]*)\.([A-Za-z_][A-Za-z0-9_]*)$`)
	stringData  = regexp.MustCompile(`^string_data_(\d+):$`)
	stringLit   = regexp.MustCompile(`^\s*\.string\s+"(.*)"$`)
	intConst    = regexp.MustCompile(`^int_constant_(\d+):$`)
)

// Parse scans an emitted assembly listing and builds an Artifact. It
// never errors on well-formed output from internal/codegen; malformed or
// hand-edited input simply yields a sparser Artifact, since this is a
// best-effort debugging aid rather than a real assembler front end.
func Parse(asm string) *Artifact {
	a := &Artifact{
		MethodTables: map[string][]MethodSlot{},
		Strings:      map[int]string{},
		Ints:         map[int]int64{},
	}

	lines := strings.Split(asm, "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")

		if m := protoHeader.FindStringSubmatch(line); m != nil {
			if id, ok := classIDFromPrototype(lines, i+1); ok {
				a.Classes = append(a.Classes, ClassInfo{Name: m[1], ID: id})
			}
			continue
		}

		if m := methodTable.FindStringSubmatch(line); m != nil {
			cls := m[1]
			for j := i + 1; j < len(lines) && strings.TrimSpace(lines[j]) != ""; j++ {
				if e := methodEntry.FindStringSubmatch(lines[j]); e != nil {
					a.MethodTables[cls] = append(a.MethodTables[cls], MethodSlot{Owner: e[1], Name: e[2]})
				}
			}
			continue
		}

		if m := stringData.FindStringSubmatch(line); m != nil && i+1 < len(lines) {
			if s := stringLit.FindStringSubmatch(lines[i+1]); s != nil {
				ord, _ := strconv.Atoi(m[1])
				a.Strings[ord] = unescapeAssemblyString(s[1])
			}
			continue
		}

		if m := intConst.FindStringSubmatch(line); m != nil {
			ord, _ := strconv.Atoi(m[1])
			if v, ok := lastQuadValue(lines, i+1); ok {
				iv, err := strconv.ParseInt(v, 10, 64)
				if err == nil {
					a.Ints[ord] = iv
				}
			}
		}
	}

	sort.Slice(a.Classes, func(i, j int) bool { return a.Classes[i].ID < a.Classes[j].ID })
	return a
}

// classIDFromPrototype reads the third .quad after a _prototype: label
// (size, GC word, class id — spec.md §4.5's fixed header order).
func classIDFromPrototype(lines []string, from int) (int, bool) {
	found := 0
	for j := from; j < len(lines) && j < from+5; j++ {
		m := quad.FindStringSubmatch(strings.TrimSpace(lines[j]))
		if m == nil {
			continue
		}
		found++
		if found == 3 {
			id, err := strconv.Atoi(strings.TrimSpace(m[1]))
			if err != nil {
				return 0, false
			}
			return id, true
		}
	}
	return 0, false
}

// lastQuadValue returns the operand of the last consecutive .quad line
// starting at from — the boxed payload, which is always the final quad
// in an Int constant's fixed 6-quad header block (size, GC word, class
// id, name pointer, method table, value).
func lastQuadValue(lines []string, from int) (string, bool) {
	last, found := "", false
	for j := from; j < len(lines); j++ {
		trimmed := strings.TrimSpace(lines[j])
		if trimmed == "" {
			break
		}
		m := quad.FindStringSubmatch(trimmed)
		if m == nil {
			break
		}
		last, found = strings.TrimSpace(m[1]), true
	}
	return last, found
}

func unescapeAssemblyString(s string) string {
	r := strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\"`, `"`, `\\`, `\`)
	return r.Replace(s)
}

// Lookup finds a class by name.
func (a *Artifact) Lookup(name string) (ClassInfo, bool) {
	for _, c := range a.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return ClassInfo{}, false
}

// FormatClasses renders the class table as one line per class, ordered
// by id (spec.md §3 "built-ins occupy the low ids").
func (a *Artifact) FormatClasses() string {
	var b strings.Builder
	for _, c := range a.Classes {
		fmt.Fprintf(&b, "%3d  %s\n", c.ID, c.Name)
	}
	return b.String()
}

// FormatMethods renders one class's method table, slot by slot.
func (a *Artifact) FormatMethods(cls string) (string, bool) {
	slots, ok := a.MethodTables[cls]
	if !ok {
		return "", false
	}
	var b strings.Builder
	for i, s := range slots {
		fmt.Fprintf(&b, "%3d  %s.%s\n", i, s.Owner, s.Name)
	}
	return b.String(), true
}
