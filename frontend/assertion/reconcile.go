// Package assertion narrows a Union given one predicate term observed on a branch.
package assertion

import (
	"github.com/cottand/narrow/frontend/checkerr"
	"github.com/cottand/narrow/frontend/types"
	"github.com/cottand/narrow/internal/log"
)

var logger = log.DefaultLogger.With("section", "reconcile")

type row func(p Possibility, existing types.Union, h types.Hierarchy) (types.Union, error)

// table has one row per Kind, so Reconcile is total
var table = map[Kind]row{
	KindNotNull:    reconcileNotNull,
	KindNull:       reconcileNull,
	KindNotEmpty:   reconcileNotEmpty,
	KindEmpty:      reconcileEmpty,
	KindNumeric:    unchanged,
	KindNotNumeric: unchanged,
	KindIsType:     reconcileIsType,
	KindNotType:    reconcileNotType,
}

// Reconcile returns the refinement of existing valid where p holds.
//
// A p that statically excludes every member of existing fails with
// checkerr.NewTypeDoesNotContainType, or with checkerr.NewFailedTypeResolution
// when a negative instance check removes the last member.
// mixed is never narrowed by negative facts.
// h is consulted to accept `instanceof Sub` on a variable of a parent type; it may be nil.
func Reconcile(p Possibility, existing types.Union, h types.Hierarchy) (types.Union, error) {
	r, ok := table[p.Kind]
	if !ok {
		return existing, nil
	}
	if h == nil {
		h = types.NoHierarchy{}
	}
	narrowed, err := r(p, existing, h)
	if err != nil {
		logger.Debug("reconcile: contradiction", "assertion", p.String(), "existing", existing.String(), "error", err)
		return types.Union{}, err
	}
	logger.Debug("reconcile", "assertion", p.String(), "existing", existing.String(), "narrowed", narrowed.String())
	return narrowed, nil
}

// ReconcileAny narrows existing to where at least one of ps holds: the union of
// every row that does not fail. If every row fails, the first failure is returned.
func ReconcileAny(ps []Possibility, existing types.Union, h types.Hierarchy) (types.Union, error) {
	var firstErr error
	var narrowed []types.Union
	for _, p := range ps {
		u, err := Reconcile(p, existing, h)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		narrowed = append(narrowed, u)
	}
	combined, ok := types.Combine(narrowed...)
	if !ok {
		if firstErr == nil {
			return existing, nil
		}
		return types.Union{}, firstErr
	}
	return combined, nil
}

func doesNotContain(p Possibility, existing types.Union) error {
	return checkerr.New(checkerr.NewTypeDoesNotContainType{
		Assertion: p.String(),
		Existing:  existing.String(),
	})
}

func unchanged(_ Possibility, existing types.Union, _ types.Hierarchy) (types.Union, error) {
	return existing, nil
}

func reconcileNotNull(p Possibility, existing types.Union, _ types.Hierarchy) (types.Union, error) {
	if existing.IsMixed() {
		return existing, nil
	}
	narrowed, ok := existing.Without("null")
	if !ok {
		return types.Union{}, doesNotContain(p, existing)
	}
	return narrowed, nil
}

func reconcileNull(Possibility, types.Union, types.Hierarchy) (types.Union, error) {
	return types.NullType(), nil
}

func reconcileNotEmpty(p Possibility, existing types.Union, _ types.Hierarchy) (types.Union, error) {
	if existing.IsMixed() {
		return existing, nil
	}
	narrowed, ok := existing.Without("null", "false")
	if !ok {
		return types.Union{}, doesNotContain(p, existing)
	}
	return narrowed, nil
}

// reconcileEmpty keeps the falsy members: bool becomes false, null and false stay.
// Objects and arrays are dropped; with nothing falsy left the value can only be null.
func reconcileEmpty(_ Possibility, existing types.Union, _ types.Hierarchy) (types.Union, error) {
	if existing.IsMixed() {
		return existing, nil
	}
	var falsy []types.Atomic
	for a := range existing.All() {
		switch a := a.(type) {
		case types.Null, types.False:
			falsy = append(falsy, a)
		case types.Scalar:
			if a.Kind == types.Bool {
				falsy = append(falsy, types.False{})
			}
		}
	}
	if narrowed, ok := types.UnionOf(falsy...); ok {
		return narrowed, nil
	}
	return types.NullType(), nil
}

// reconcileIsType narrows to the members named p.TypeName if there are any.
// Otherwise it keeps the members that are subtypes of the asserted type, and failing
// that it assumes the asserted type when it is a subtype of existing (instanceof Child
// on a Parent). mixed becomes the asserted type.
func reconcileIsType(p Possibility, existing types.Union, h types.Hierarchy) (types.Union, error) {
	if named, ok := existing.Filter(func(a types.Atomic) bool {
		return a.Name() == p.TypeName
	}); ok {
		return named, nil
	}
	asserted := types.NewUnion(types.AtomicFromName(p.TypeName))
	if existing.IsMixed() {
		return asserted, nil
	}
	if narrowed, ok := existing.Filter(func(a types.Atomic) bool {
		return types.IsContainedBy(types.NewUnion(a), asserted, h)
	}); ok {
		return narrowed, nil
	}
	if types.IsContainedBy(asserted, existing, h) {
		return asserted, nil
	}
	return types.Union{}, doesNotContain(p, existing)
}

// reconcileNotType removes the member named p.TypeName. Subclasses of it are kept:
// `!($a instanceof B)` says nothing about a declared parent A.
func reconcileNotType(p Possibility, existing types.Union, _ types.Hierarchy) (types.Union, error) {
	if existing.IsMixed() {
		return existing, nil
	}
	narrowed, ok := existing.Without(p.TypeName)
	if !ok {
		return types.Union{}, checkerr.New(checkerr.NewFailedTypeResolution{
			Assertion: p.String(),
			Existing:  existing.String(),
		})
	}
	return narrowed, nil
}
