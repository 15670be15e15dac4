package pos

import "strings"

// NounTags are the noun variants the provider distinguishes by number and
// gender. They are mutually interchangeable.
var NounTags = []string{"n.", "nm.", "nf.", "nn.", "nmf.", "npl.", "nmpl.", "nfpl.", "nnpl."}

// Default is the equivalence used by the one-to-one detector.
var Default = New(NounTags)

// Equivalence groups atomic tags into classes of interchangeable tags.
type Equivalence struct {
	classes map[string][]int
}

// New creates an Equivalence from the given classes. A tag may appear in
// more than one class.
func New(classes ...[]string) *Equivalence {
	e := &Equivalence{classes: make(map[string][]int)}
	for i, class := range classes {
		for _, tag := range class {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			e.classes[tag] = append(e.classes[tag], i)
		}
	}
	return e
}

// Equivalent reports whether tags a and b are interchangeable using the
// Default classes.
func Equivalent(a, b string) bool {
	return Default.Equivalent(a, b)
}

// Equivalent reports whether every atomic tag of a is compatible with
// every atomic tag of b. Empty tags are never equivalent to anything.
// Identical tags are always equivalent.
func (e *Equivalence) Equivalent(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}

	left, right := atoms(a), atoms(b)
	if len(left) == 0 || len(right) == 0 {
		return false
	}
	for _, x := range left {
		for _, y := range right {
			if !e.compatible(x, y) {
				return false
			}
		}
	}
	return true
}

func (e *Equivalence) compatible(x, y string) bool {
	if x == y {
		return true
	}
	for _, cx := range e.classes[x] {
		for _, cy := range e.classes[y] {
			if cx == cy {
				return true
			}
		}
	}
	return false
}

// atoms splits a disjunction into its trimmed, non-empty parts.
func atoms(tag string) []string {
	parts := strings.Split(tag, "/")
	result := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
