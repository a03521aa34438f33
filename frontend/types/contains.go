package types

// IsContainedBy reports whether every atomic of a is covered by some atomic of b,
// ie whether a is a subtype of b. h may be nil, in which case classes are only
// related to themselves.
func IsContainedBy(a, b Union, h Hierarchy) bool {
	if h == nil {
		h = NoHierarchy{}
	}
	for inner := range a.All() {
		covered := false
		for outer := range b.All() {
			if covers(outer, inner, h) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}

// covers reports whether container accepts every value of contained
func covers(container, contained Atomic, h Hierarchy) bool {
	if _, ok := container.(Mixed); ok {
		return true
	}
	if Equal(container, contained) {
		return true
	}

	switch outer := container.(type) {
	case Scalar:
		if outer.Kind != Bool {
			return false
		}
		switch contained.(type) {
		case True, False:
			return true
		}
		return false
	case Numeric:
		inner, ok := contained.(Scalar)
		return ok && (inner.Kind == Int || inner.Kind == Float)
	case Object:
		_, ok := contained.(NamedClass)
		return ok
	case NamedClass:
		inner, ok := contained.(NamedClass)
		if !ok {
			return false
		}
		if inner.ClassName != outer.ClassName {
			return h.IsSubtypeOf(inner.ClassName, outer.ClassName)
		}
		// raw classes accept and are accepted by any parameterisation
		if len(outer.Params) == 0 || len(inner.Params) == 0 {
			return true
		}
		if len(outer.Params) != len(inner.Params) {
			return false
		}
		for i := range outer.Params {
			if !IsContainedBy(inner.Params[i], outer.Params[i], h) {
				return false
			}
		}
		return true
	case ArrayLike:
		inner, ok := contained.(ArrayLike)
		if !ok {
			return false
		}
		if outer.IsBare() {
			return true
		}
		if outer.Key != nil {
			if inner.Key == nil || !IsContainedBy(*inner.Key, *outer.Key, h) {
				return false
			}
		}
		return IsContainedBy(inner.Value, outer.Value, h)
	default:
		return false
	}
}
