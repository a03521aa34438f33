package types

// Hierarchy answers subtyping questions about named classes.
// It is the only way this package learns about user declared classes.
type Hierarchy interface {
	// IsSubtypeOf reports whether class sub extends or implements super,
	// directly or transitively. A class is not its own strict subtype, but
	// implementations may return true for equal names.
	IsSubtypeOf(sub, super string) bool
}

// PropertyTypes is implemented by hierarchies that also know the declared
// types of class properties
type PropertyTypes interface {
	PropertyType(class, prop string) (Union, bool)
}

// NoHierarchy knows no class relations: only equal names are related
type NoHierarchy struct{}

func (NoHierarchy) IsSubtypeOf(sub, super string) bool { return sub == super }
