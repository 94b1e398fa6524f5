package check

import "github.com/coolc-lang/coolc/internal/class"

// Conforms reports whether right conforms to left: there is a chain of
// parent pointers from right reaching left (spec.md §4.2 "Conformance").
// Either argument being the error sentinel makes this trivially true so a
// single bad subexpression does not cascade further diagnostics.
func Conforms(left, right *class.Class) bool {
	if class.IsError(left) || class.IsError(right) {
		return true
	}
	return left.IsAncestorOf(right)
}

// LUB computes the least upper bound of a and b in the inheritance tree:
// the first class on b's ancestor chain (b itself first, Object last) that
// is also on a's chain, i.e. their deepest common ancestor (spec.md §4.4).
// Object is on both chains, so a result is always found.
func LUB(a, b *class.Class) *class.Class {
	if class.IsError(a) {
		return b
	}
	if class.IsError(b) {
		return a
	}
	if a == b {
		return a
	}

	chainA := a.Ancestors()
	chainB := b.Ancestors()
	setA := make(map[*class.Class]bool, len(chainA))
	for _, c := range chainA {
		setA[c] = true
	}
	for _, c := range chainB {
		if setA[c] {
			return c
		}
	}
	// Unreachable for a well-formed hierarchy: every chain ends at Object.
	return chainA[len(chainA)-1]
}

// LUBAll folds LUB over a non-empty list of classes.
func LUBAll(classes []*class.Class) *class.Class {
	result := classes[0]
	for _, c := range classes[1:] {
		result = LUB(result, c)
	}
	return result
}
