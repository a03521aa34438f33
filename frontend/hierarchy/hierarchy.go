// Package hierarchy implements the class-hierarchy oracle consulted by type containment checks.
package hierarchy

import (
	"github.com/cottand/narrow/frontend/types"
	"github.com/cottand/narrow/util"
	"github.com/hashicorp/go-set/v3"
	"maps"
	"slices"
)

var _ types.Hierarchy = (*Static)(nil)
var _ types.PropertyTypes = (*Static)(nil)

// Class is what the oracle knows about one declared class
type Class struct {
	Name       string
	Extends    string
	Implements []string
	// Properties are the declared property types, by property name
	Properties map[string]types.Union
}

func (c Class) parents() []string {
	if c.Extends == "" {
		return c.Implements
	}
	return append([]string{c.Extends}, c.Implements...)
}

// Static is a Hierarchy over a fixed set of declared classes.
//
// It is not safe for concurrent use: lookups mark the classes they are
// walking so that cyclic declarations (A extends B, B extends A) terminate.
type Static struct {
	classes map[string]Class

	// visiting holds the classes whose ancestry is currently being walked
	visiting util.MSet[string]
}

func New(classes ...Class) *Static {
	h := &Static{
		classes:  make(map[string]Class, len(classes)),
		visiting: util.NewEmptySet[string](),
	}
	for _, c := range classes {
		h.Add(c)
	}
	return h
}

// Add declares c, replacing any previous class of the same name
func (h *Static) Add(c Class) {
	if c.Properties == nil {
		c.Properties = make(map[string]types.Union)
	}
	h.classes[c.Name] = c
}

// Merge returns a new Static with the classes of h and other,
// other winning on conflicting names. Either may be nil.
func (h *Static) Merge(other *Static) *Static {
	merged := New()
	for _, src := range []*Static{h, other} {
		if src == nil {
			continue
		}
		for _, name := range src.Names() {
			merged.Add(src.classes[name])
		}
	}
	return merged
}

// Names returns the declared class names, sorted
func (h *Static) Names() []string {
	return slices.Sorted(maps.Keys(h.classes))
}

func (h *Static) Class(name string) (Class, bool) {
	c, ok := h.classes[name]
	return c, ok
}

// Reset forgets any in-progress walk. It is called before each top-level
// analysis so that a previous aborted run cannot poison lookups.
func (h *Static) Reset() {
	h.visiting = util.NewEmptySet[string]()
}

// IsSubtypeOf reports whether sub is super or extends/implements it transitively
func (h *Static) IsSubtypeOf(sub, super string) bool {
	if sub == super {
		return true
	}
	if h.visiting.Contains(sub) {
		return false
	}
	class, ok := h.classes[sub]
	if !ok {
		return false
	}
	h.visiting.Add(sub)
	defer h.visiting.Remove(sub)

	for _, parent := range class.parents() {
		if h.IsSubtypeOf(parent, super) {
			return true
		}
	}
	return false
}

// lineage lists the ancestors of name nearest first
func (h *Static) lineage(name string) []string {
	seen := set.From([]string{name})
	var order []string
	pending := []string{name}
	for len(pending) > 0 {
		current := pending[0]
		pending = pending[1:]
		class, ok := h.classes[current]
		if !ok {
			continue
		}
		for _, parent := range class.parents() {
			if seen.Insert(parent) {
				order = append(order, parent)
				pending = append(pending, parent)
			}
		}
	}
	return order
}

// PropertyType returns the declared type of class->prop, looking through
// ancestors, nearest first, for inherited properties
func (h *Static) PropertyType(class, prop string) (types.Union, bool) {
	for _, owner := range append([]string{class}, h.lineage(class)...) {
		if t, ok := h.classes[owner].Properties[prop]; ok {
			return t, true
		}
	}
	return types.Union{}, false
}
