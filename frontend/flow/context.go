package flow

import (
	"github.com/benbjohnson/immutable"
	"github.com/cottand/narrow/frontend/types"
	"github.com/cottand/narrow/util"
	"iter"
	"slices"
	"strings"
)

// Context maps each tracked path to its current Union at one program point.
//
// Contexts are backed by persistent maps, so Clone is O(1) and a clone never
// observes writes made to the original, or the other way around.
type Context struct {
	vars *immutable.SortedMap[string, types.Union]
	// assigned holds the paths that some merged branch assigned or narrowed
	// but that not every branch knows about
	assigned immutable.Set[string]
}

// NewContext returns a Context seeded with the given path types
func NewContext(seed map[string]types.Union) *Context {
	ctx := &Context{
		vars:     immutable.NewSortedMap[string, types.Union](nil),
		assigned: immutable.NewSet[string](nil),
	}
	for path, u := range seed {
		ctx.Set(path, u)
	}
	return ctx
}

func (c *Context) Clone() *Context {
	clone := *c
	return &clone
}

func (c *Context) Get(path string) (types.Union, bool) {
	return c.vars.Get(path)
}

// Set records the narrowed type of path
func (c *Context) Set(path string, u types.Union) {
	c.vars = c.vars.Set(path, u)
}

// Assign records that path now holds a value of type u. Anything known about
// properties of the previous value is forgotten.
func (c *Context) Assign(path string, u types.Union) {
	prefix := path + "->"
	for p := range c.All() {
		if strings.HasPrefix(p, prefix) {
			c.vars = c.vars.Delete(p)
		}
	}
	c.Set(path, u)
}

// All iterates over the tracked paths in order
func (c *Context) All() iter.Seq2[string, types.Union] {
	return func(yield func(string, types.Union) bool) {
		itr := c.vars.Iterator()
		for !itr.Done() {
			path, u, _ := itr.Next()
			if !yield(path, u) {
				return
			}
		}
	}
}

// Keys iterates over the tracked paths in order
func (c *Context) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for path := range c.All() {
			if !yield(path) {
				return
			}
		}
	}
}

// Paths returns the tracked paths, sorted
func (c *Context) Paths() []string {
	return slices.Collect(c.Keys())
}

// PossiblyAssigned returns, sorted, the paths that were dropped when merging
// branches that did not all know them
func (c *Context) PossiblyAssigned() []string {
	paths := c.assigned.Items()
	slices.Sort(paths)
	return paths
}

func (c *Context) IsPossiblyAssigned(path string) bool {
	return c.assigned.Has(path)
}

func (c *Context) String() string {
	sb := &strings.Builder{}
	sb.WriteString("{")
	first := true
	for path, u := range c.All() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(path)
		sb.WriteString(": ")
		sb.WriteString(u.String())
	}
	sb.WriteString("}")
	return sb.String()
}

// Merge joins the Contexts of the branches that fall through to the same point.
//
// A path known in every branch gets the union of its types. A path missing
// from some branch is dropped and recorded as possibly assigned.
// A single Context is returned as is.
func Merge(branches ...*Context) *Context {
	switch len(branches) {
	case 0:
		return NewContext(nil)
	case 1:
		return branches[0]
	}

	assigned := util.NewEmptySet[string]()
	var paths []iter.Seq[string]
	for _, branch := range branches {
		assigned.Add(branch.assigned.Items()...)
		paths = append(paths, branch.Keys())
	}

	merged := &Context{vars: immutable.NewSortedMap[string, types.Union](nil)}
	for path := range util.SetFromSeq(util.ConcatIter(paths...), 0).Items() {
		var all []types.Union
		for _, branch := range branches {
			if u, ok := branch.Get(path); ok {
				all = append(all, u)
			}
		}
		if len(all) < len(branches) {
			assigned.Add(path)
			continue
		}
		combined, _ := types.Combine(all...)
		merged.Set(path, combined)
	}
	merged.assigned = assigned.Immutable(nil)
	return merged
}
