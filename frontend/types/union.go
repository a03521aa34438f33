package types

import (
	"cmp"
	"github.com/hashicorp/go-set/v3"
	"iter"
	"slices"
	"strings"
)

// Union is a non-empty set of Atomics, "one of these".
//
// Members are kept in a TreeSet ordered by compareAtomics, so that rendering
// is deterministic: null, classes by name, array, object, bool, int, float,
// string, numeric, true, false, mixed.
//
// A Union is never mutated once built; operations return new Unions.
// The zero Union is invalid and only used as a "not set" marker.
type Union struct {
	atomics *set.TreeSet[Atomic]
}

var compareAtomics set.CompareFunc[Atomic] = func(a, b Atomic) int {
	if c := cmp.Compare(a.rank(), b.rank()); c != 0 {
		return c
	}
	return strings.Compare(a.String(), b.String())
}

// NewUnion builds a Union of atomics, deduplicated by structural identity.
// A Union containing mixed is just mixed.
//
// It panics when atomics is empty: emptiness is never a valid type, callers
// that can end up without members should use UnionOf.
func NewUnion(atomics ...Atomic) Union {
	u, ok := UnionOf(atomics...)
	if !ok {
		panic("types: empty union")
	}
	return u
}

// UnionOf is NewUnion but returns ok=false instead of panicking when atomics is empty
func UnionOf(atomics ...Atomic) (Union, bool) {
	if len(atomics) == 0 {
		return Union{}, false
	}
	if slices.ContainsFunc(atomics, isMixed) {
		return Union{atomics: set.TreeSetFrom[Atomic]([]Atomic{Mixed{}}, compareAtomics)}, true
	}
	return Union{atomics: set.TreeSetFrom[Atomic](atomics, compareAtomics)}, true
}

func isMixed(a Atomic) bool {
	_, ok := a.(Mixed)
	return ok
}

func MixedType() Union { return NewUnion(Mixed{}) }
func NullType() Union  { return NewUnion(Null{}) }

// IsZero is true for the zero Union, which has no members
func (u Union) IsZero() bool {
	return u.atomics == nil || u.atomics.Empty()
}

// Atomics returns the members of u in render order
func (u Union) Atomics() []Atomic {
	if u.atomics == nil {
		return nil
	}
	return u.atomics.Slice()
}

// All iterates over the members of u in render order
func (u Union) All() iter.Seq[Atomic] {
	if u.atomics == nil {
		return func(func(Atomic) bool) {}
	}
	return u.atomics.Items()
}

func (u Union) Len() int {
	if u.atomics == nil {
		return 0
	}
	return u.atomics.Size()
}

func (u Union) String() string {
	if u.IsZero() {
		return "<empty>"
	}
	parts := make([]string, 0, u.Len())
	for a := range u.All() {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, "|")
}

func (u Union) Hash() uint64 { return hashString(u.String()) }

// Equal reports whether u and other have the same members
func (u Union) Equal(other Union) bool {
	return u.String() == other.String()
}

// IsMixed is true iff u is exactly {mixed}
func (u Union) IsMixed() bool {
	return u.Len() == 1 && isMixed(u.atomics.Min())
}

// Contains reports whether a is a member of u (structurally, not by subtyping)
func (u Union) Contains(a Atomic) bool {
	return u.atomics != nil && u.atomics.Contains(a)
}

// Has reports whether u has a member named name
func (u Union) Has(name string) bool {
	_, ok := u.Get(name)
	return ok
}

// Get returns the first member of u named name
func (u Union) Get(name string) (Atomic, bool) {
	for a := range u.All() {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// Filter returns the members of u for which keep is true.
// ok is false when nothing is kept.
func (u Union) Filter(keep func(Atomic) bool) (Union, bool) {
	var kept []Atomic
	for a := range u.All() {
		if keep(a) {
			kept = append(kept, a)
		}
	}
	return UnionOf(kept...)
}

// Without removes every member whose name is one of names.
// ok is false when that leaves no members.
func (u Union) Without(names ...string) (Union, bool) {
	return u.Filter(func(a Atomic) bool {
		return !slices.Contains(names, a.Name())
	})
}

// With returns u with atomics added
func (u Union) With(atomics ...Atomic) Union {
	return NewUnion(append(u.Atomics(), atomics...)...)
}

// Combine is the set union of the given Unions, skipping zero ones.
// ok is false when every Union was zero.
func Combine(unions ...Union) (Union, bool) {
	var all []Atomic
	for _, u := range unions {
		all = append(all, u.Atomics()...)
	}
	return UnionOf(all...)
}
