package types

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Atomic is one non-union type: a class, a scalar kind, an array,
// or one of the literal markers true, false, null, mixed, object and numeric.
//
// Atomics are values; two atomics are the same type iff their canonical
// rendering is equal.
type Atomic interface {
	fmt.Stringer
	// Name is what IsType and NotType assertions are matched against,
	// eg "MyObject", "string" or "array"
	Name() string
	Hash() uint64

	// rank orders kinds of atomics when a Union is rendered
	rank() int
	isAtomic()
}

var (
	_ Atomic = NamedClass{}
	_ Atomic = Scalar{}
	_ Atomic = ArrayLike{}
	_ Atomic = True{}
	_ Atomic = False{}
	_ Atomic = Null{}
	_ Atomic = Mixed{}
	_ Atomic = Object{}
	_ Atomic = Numeric{}
)

// render order, see compareAtomics
const (
	rankNull = iota
	rankNamed
	rankArray
	rankObject
	rankBool
	rankInt
	rankFloat
	rankString
	rankNumeric
	rankTrue
	rankFalse
	rankMixed
)

// Equal can be used to compare Atomic instances for structural equality.
func Equal(this, other Atomic) bool {
	return this.rank() == other.rank() && this.String() == other.String()
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// NamedClass is a class or interface, optionally with fully resolved generic parameters
type NamedClass struct {
	ClassName string
	Params    []Union
}

func (t NamedClass) Name() string { return t.ClassName }
func (t NamedClass) Hash() uint64 { return hashString(t.String()) }
func (t NamedClass) rank() int    { return rankNamed }
func (t NamedClass) isAtomic()    {}
func (t NamedClass) String() string {
	if len(t.Params) == 0 {
		return t.ClassName
	}
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	return t.ClassName + "<" + strings.Join(params, ",") + ">"
}

type ScalarKind int

const (
	Bool ScalarKind = iota
	Int
	Float
	String
)

func (k ScalarKind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	default:
		panic(fmt.Sprintf("unknown scalar kind %d", int(k)))
	}
}

type Scalar struct {
	Kind ScalarKind
}

func (t Scalar) Name() string   { return t.Kind.String() }
func (t Scalar) String() string { return t.Kind.String() }
func (t Scalar) Hash() uint64   { return hashString(t.String()) }
func (t Scalar) rank() int      { return rankBool + int(t.Kind) }
func (t Scalar) isAtomic()      {}

// ArrayLike is array<Key,Value>. A nil Key means the key type is unconstrained;
// the bare `array` keyword is ArrayLike with no key and a mixed Value.
type ArrayLike struct {
	Key   *Union
	Value Union
}

func (t ArrayLike) Name() string { return "array" }
func (t ArrayLike) Hash() uint64 { return hashString(t.String()) }
func (t ArrayLike) rank() int    { return rankArray }
func (t ArrayLike) isAtomic()    {}

// IsBare is true for `array`, which accepts any other array
func (t ArrayLike) IsBare() bool {
	return t.Key == nil && (t.Value.IsZero() || t.Value.IsMixed())
}

func (t ArrayLike) String() string {
	switch {
	case t.IsBare():
		return "array"
	case t.Key == nil:
		return "array<" + t.Value.String() + ">"
	default:
		return "array<" + t.Key.String() + "," + t.Value.String() + ">"
	}
}

type True struct{}

func (True) Name() string   { return "true" }
func (True) String() string { return "true" }
func (True) Hash() uint64   { return hashString("true") }
func (True) rank() int      { return rankTrue }
func (True) isAtomic()      {}

type False struct{}

func (False) Name() string   { return "false" }
func (False) String() string { return "false" }
func (False) Hash() uint64   { return hashString("false") }
func (False) rank() int      { return rankFalse }
func (False) isAtomic()      {}

type Null struct{}

func (Null) Name() string   { return "null" }
func (Null) String() string { return "null" }
func (Null) Hash() uint64   { return hashString("null") }
func (Null) rank() int      { return rankNull }
func (Null) isAtomic()      {}

// Mixed is the unknown type. It absorbs every other member of a Union.
type Mixed struct{}

func (Mixed) Name() string   { return "mixed" }
func (Mixed) String() string { return "mixed" }
func (Mixed) Hash() uint64   { return hashString("mixed") }
func (Mixed) rank() int      { return rankMixed }
func (Mixed) isAtomic()      {}

// Object is any instance of any class
type Object struct{}

func (Object) Name() string   { return "object" }
func (Object) String() string { return "object" }
func (Object) Hash() uint64   { return hashString("object") }
func (Object) rank() int      { return rankObject }
func (Object) isAtomic()      {}

// Numeric is an int, a float or a numeric string
type Numeric struct{}

func (Numeric) Name() string   { return "numeric" }
func (Numeric) String() string { return "numeric" }
func (Numeric) Hash() uint64   { return hashString("numeric") }
func (Numeric) rank() int      { return rankNumeric }
func (Numeric) isAtomic()      {}

// keywords maps the reserved type names to their atomic
var keywords = map[string]Atomic{
	"mixed":   Mixed{},
	"null":    Null{},
	"true":    True{},
	"false":   False{},
	"bool":    Scalar{Kind: Bool},
	"int":     Scalar{Kind: Int},
	"float":   Scalar{Kind: Float},
	"string":  Scalar{Kind: String},
	"array":   ArrayLike{Value: MixedType()},
	"object":  Object{},
	"numeric": Numeric{},
}

// AtomicFromName returns the atomic a bare name denotes: a keyword type,
// or otherwise a NamedClass without generic parameters
func AtomicFromName(name string) Atomic {
	if kw, ok := keywords[name]; ok {
		return kw
	}
	return NamedClass{ClassName: name}
}

// IsKeyword reports whether name is one of the reserved type names
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}
