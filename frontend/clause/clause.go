// Package clause implements formulas in conjunctive normal form over narrowing
// predicates: a Formula is a conjunction of Clauses, and a Clause is a disjunction of
// (path, Possibility) pairs, grouped by path.
package clause

import (
	"github.com/cottand/narrow/frontend/assertion"
	"github.com/hashicorp/go-set/v3"
	"maps"
	"slices"
	"strings"
)

type entry struct {
	path          string
	possibilities []assertion.Possibility
}

// Clause holds, for each path, the possibilities any one of which may hold.
// Paths are kept sorted, possibilities in insertion order without duplicates,
// and a path is never present with no possibilities.
//
// Clauses are values: every operation returns a new Clause.
type Clause struct {
	entries []entry
}

// New builds a Clause from a path -> possibilities mapping. Paths with no
// possibilities are dropped.
func New(possibilities map[string][]assertion.Possibility) Clause {
	c := Clause{}
	for _, path := range slices.Sorted(maps.Keys(possibilities)) {
		c = c.With(path, possibilities[path]...)
	}
	return c
}

// Of is a Clause over a single path
func Of(path string, ps ...assertion.Possibility) Clause {
	return Clause{}.With(path, ps...)
}

// With returns c with ps added to the possibilities of path
func (c Clause) With(path string, ps ...assertion.Possibility) Clause {
	if len(ps) == 0 {
		return c
	}
	entries := make([]entry, 0, len(c.entries)+1)
	i, found := slices.BinarySearchFunc(c.entries, path, func(e entry, path string) int {
		return strings.Compare(e.path, path)
	})
	entries = append(entries, c.entries[:i]...)
	if found {
		merged := slices.Clone(c.entries[i].possibilities)
		for _, p := range ps {
			if !slices.Contains(merged, p) {
				merged = append(merged, p)
			}
		}
		entries = append(entries, entry{path: path, possibilities: merged})
		entries = append(entries, c.entries[i+1:]...)
	} else {
		var fresh []assertion.Possibility
		for _, p := range ps {
			if !slices.Contains(fresh, p) {
				fresh = append(fresh, p)
			}
		}
		entries = append(entries, entry{path: path, possibilities: fresh})
		entries = append(entries, c.entries[i:]...)
	}
	return Clause{entries: entries}
}

// without returns c without p on path, and whether p was there
func (c Clause) without(path string, p assertion.Possibility) (Clause, bool) {
	ps := c.Possibilities(path)
	if !slices.Contains(ps, p) {
		return c, false
	}
	remaining := slices.DeleteFunc(slices.Clone(ps), func(other assertion.Possibility) bool {
		return other == p
	})
	entries := make([]entry, 0, len(c.entries))
	for _, e := range c.entries {
		switch {
		case e.path != path:
			entries = append(entries, e)
		case len(remaining) > 0:
			entries = append(entries, entry{path: path, possibilities: remaining})
		}
	}
	return Clause{entries: entries}, true
}

// Paths returns the paths c mentions, sorted
func (c Clause) Paths() []string {
	paths := make([]string, len(c.entries))
	for i, e := range c.entries {
		paths[i] = e.path
	}
	return paths
}

// Possibilities returns the possibilities of path, or nil if c does not mention it
func (c Clause) Possibilities(path string) []assertion.Possibility {
	for _, e := range c.entries {
		if e.path == path {
			return e.possibilities
		}
	}
	return nil
}

// IsEmpty is true for the clause with no possibilities, which can never be satisfied
func (c Clause) IsEmpty() bool { return len(c.entries) == 0 }

// Unit returns the only (path, possibility) pair of c, if c has exactly one
func (c Clause) Unit() (path string, p assertion.Possibility, ok bool) {
	if len(c.entries) != 1 || len(c.entries[0].possibilities) != 1 {
		return "", assertion.Possibility{}, false
	}
	return c.entries[0].path, c.entries[0].possibilities[0], true
}

// Contains reports whether, for every path of other, c has that path with a
// superset of other's possibilities. A clause that contains another is implied
// by it, and therefore redundant next to it in a Formula.
func (c Clause) Contains(other Clause) bool {
	for _, e := range other.entries {
		mine := c.Possibilities(e.path)
		if mine == nil || !set.From(mine).ContainsSlice(e.possibilities) {
			return false
		}
	}
	return true
}

// Equal is true when c and other have the same paths with the same possibilities,
// regardless of possibility order
func (c Clause) Equal(other Clause) bool {
	return c.Contains(other) && other.Contains(c)
}

// negations returns the singleton clauses whose conjunction is the negation of c
func (c Clause) negations() []Clause {
	var negated []Clause
	for _, e := range c.entries {
		for _, p := range e.possibilities {
			negated = append(negated, Of(e.path, p.Negate()))
		}
	}
	return negated
}

// String renders c as ($a:int || $a:string || $b:!empty)
func (c Clause) String() string {
	var parts []string
	for _, e := range c.entries {
		for _, p := range e.possibilities {
			parts = append(parts, e.path+":"+p.String())
		}
	}
	return "(" + strings.Join(parts, " || ") + ")"
}

// Key identifies c up to possibility order
func (c Clause) Key() string {
	sb := &strings.Builder{}
	for _, e := range c.entries {
		tokens := make([]string, len(e.possibilities))
		for i, p := range e.possibilities {
			tokens[i] = p.String()
		}
		slices.Sort(tokens)
		sb.WriteString(e.path)
		sb.WriteString(":")
		sb.WriteString(strings.Join(tokens, ","))
		sb.WriteString(";")
	}
	return sb.String()
}
