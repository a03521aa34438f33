package clause

import (
	"github.com/cottand/narrow/frontend/assertion"
	"github.com/cottand/narrow/internal/log"
	"github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"
	"slices"
	"strings"
)

var logger = log.DefaultLogger.With("section", "clause")

// Formula is a conjunction of Clauses. The empty Formula is trivially true.
type Formula []Clause

// And is the conjunction of f and other
func (f Formula) And(other Formula) Formula {
	return append(slices.Clip(f), other...)
}

// Or is the disjunction of f and other, distributed back into a Formula:
// one clause per pair of clauses from each side
func (f Formula) Or(other Formula) Formula {
	if len(f) == 0 || len(other) == 0 {
		return nil
	}
	result := make(Formula, 0, len(f)*len(other))
	for _, left := range f {
		for _, right := range other {
			merged := left
			for _, e := range right.entries {
				merged = merged.With(e.path, e.possibilities...)
			}
			result = append(result, merged)
		}
	}
	return result
}

func (f Formula) String() string {
	parts := make([]string, len(f))
	for i, c := range f {
		parts[i] = c.String()
	}
	return strings.Join(parts, " && ")
}

// Unsatisfiable is the formula that never holds: a single empty clause
func Unsatisfiable() Formula {
	return Formula{Clause{}}
}

// IsUnsatisfiable reports whether f holds an empty clause, which no assignment satisfies
func (f Formula) IsUnsatisfiable() bool {
	return slices.ContainsFunc(f, Clause.IsEmpty)
}

// Equal compares f and other clause by clause, in order
func (f Formula) Equal(other Formula) bool {
	return slices.EqualFunc(f, other, Clause.Equal)
}

// Negate returns the formula equivalent to the negation of f.
//
// Each clause negates to a conjunction of singleton clauses. Distributing the
// outer disjunction gives one clause per way of picking one singleton from every
// input clause, with picks on the same path merged into one entry.
// Clauses are generated with the first input clause varying slowest.
func Negate(f Formula) Formula {
	if len(f) == 0 {
		// not true: no formula describes it, and callers only negate what they observed
		return nil
	}
	result := Formula{Clause{}}
	for _, c := range f {
		if c.IsEmpty() {
			// c is unsatisfiable, so its negation holds and so does the disjunction
			return nil
		}
		picks := c.negations()
		next := make(Formula, 0, len(result)*len(picks))
		for _, partial := range result {
			for _, pick := range picks {
				path, p, _ := pick.Unit()
				next = append(next, partial.With(path, p))
			}
		}
		result = next
	}
	logger.Debug("negate", "formula", f.String(), "negated", result.String())
	return result
}

// Simplify returns a formula equivalent to f, in f's order, with
//   - duplicate clauses removed
//   - unit clauses {x: p} resolved against the other clauses, which lose !p on x
//   - clauses implied by another clause (see Clause.Contains) removed
//
// A clause emptied by resolution can never hold, and neither can f: Simplify
// then returns Unsatisfiable. Simplify is idempotent.
func Simplify(f Formula) Formula {
	if f.IsUnsatisfiable() {
		return Unsatisfiable()
	}
	clauses := dedupe(f)
	for changed := true; changed; {
		changed = false
		for i := range clauses {
			path, p, ok := clauses[i].Unit()
			if !ok {
				continue
			}
			opposite := p.Negate()
			for j := range clauses {
				if i == j {
					continue
				}
				if reduced, removed := clauses[j].without(path, opposite); removed {
					clauses[j] = reduced
					changed = true
				}
			}
		}
		if clauses.IsUnsatisfiable() {
			logger.Debug("simplify", "formula", f.String(), "simplified", "unsatisfiable")
			return Unsatisfiable()
		}
		clauses = dedupe(clauses)
	}

	simplified := make(Formula, 0, len(clauses))
	for i, c := range clauses {
		redundant := false
		for j, other := range clauses {
			if i != j && c.Contains(other) {
				redundant = true
				break
			}
		}
		if !redundant {
			simplified = append(simplified, c)
		}
	}
	logger.Debug("simplify", "formula", f.String(), "simplified", simplified.String())
	return simplified
}

// dedupe drops every clause equal to an earlier one
func dedupe(f Formula) Formula {
	seen := set.New[string](len(f))
	result := make(Formula, 0, len(f))
	for _, c := range f {
		if !seen.Insert(c.Key()) {
			continue
		}
		result = append(result, c)
	}
	return result
}

// Truth is what a Formula establishes about one path: every group holds, and
// within a group at least one Possibility holds
type Truth struct {
	Path   string
	Groups [][]assertion.Possibility
}

// Truths extracts the per-path facts f guarantees, sorted by path.
//
// Only clauses over a single path say something definite about it. A
// single-possibility clause is one group on its own. A clause with several
// possibilities is kept as a group only if all of them are positive, since a
// disjunction of negative facts narrows nothing useful.
func Truths(f Formula) []Truth {
	byPath := map[string]*Truth{}
	var order []string
	for _, c := range f {
		if len(c.entries) != 1 {
			continue
		}
		e := c.entries[0]
		if len(e.possibilities) > 1 && slices.ContainsFunc(e.possibilities, assertion.Possibility.IsNegative) {
			continue
		}
		truth, ok := byPath[e.path]
		if !ok {
			truth = &Truth{Path: e.path}
			byPath[e.path] = truth
			order = append(order, e.path)
		}
		truth.Groups = append(truth.Groups, slices.Clone(e.possibilities))
	}

	slices.Sort(order)
	truths := make([]Truth, len(order))
	for i, path := range order {
		truths[i] = *byPath[path]
	}
	return truths
}

// ParseFormula reads the form produced by Formula.String, eg
// ($a:int || $b:!empty) && ($c:null). Parentheses around a clause are optional.
func ParseFormula(text string) (Formula, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	var f Formula
	for _, clauseText := range strings.Split(text, "&&") {
		c, err := ParseClause(clauseText)
		if err != nil {
			return nil, err
		}
		f = append(f, c)
	}
	return f, nil
}

// ParseClause reads one clause of the form ($a:int || $b:!empty)
func ParseClause(text string) (Clause, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(strings.TrimPrefix(text, "("), ")")
	c := Clause{}
	for _, term := range strings.Split(text, "||") {
		term = strings.TrimSpace(term)
		i := strings.LastIndex(term, ":")
		if i <= 0 {
			return Clause{}, errors.Errorf("clause term '%s' is not of the form path:assertion", term)
		}
		path := strings.TrimSpace(term[:i])
		p, ok := assertion.ParsePossibility(term[i+1:])
		if !ok {
			return Clause{}, errors.Errorf("unknown assertion '%s' for %s", term[i+1:], path)
		}
		c = c.With(path, p)
	}
	return c, nil
}
