package assertion

import (
	"strings"
	"unicode"
)

type Kind int

const (
	KindEmpty Kind = iota
	KindNotEmpty
	KindNull
	KindNotNull
	KindNumeric
	KindNotNumeric
	KindIsType
	KindNotType
)

// Possibility is one narrowing predicate term, such as "is not null" or
// "is an instance of Foo". TypeName is only set for KindIsType and KindNotType.
//
// Possibilities are comparable values.
type Possibility struct {
	Kind     Kind
	TypeName string
}

var (
	Empty      = Possibility{Kind: KindEmpty}
	NotEmpty   = Possibility{Kind: KindNotEmpty}
	Null       = Possibility{Kind: KindNull}
	NotNull    = Possibility{Kind: KindNotNull}
	Numeric    = Possibility{Kind: KindNumeric}
	NotNumeric = Possibility{Kind: KindNotNumeric}
)

func IsType(name string) Possibility  { return Possibility{Kind: KindIsType, TypeName: name} }
func NotType(name string) Possibility { return Possibility{Kind: KindNotType, TypeName: name} }

// String renders the assertion token: empty, !empty, null, !null,
// numeric, !numeric, <Name> or !<Name>
func (p Possibility) String() string {
	switch p.Kind {
	case KindEmpty:
		return "empty"
	case KindNotEmpty:
		return "!empty"
	case KindNull:
		return "null"
	case KindNotNull:
		return "!null"
	case KindNumeric:
		return "numeric"
	case KindNotNumeric:
		return "!numeric"
	case KindIsType:
		return p.TypeName
	case KindNotType:
		return "!" + p.TypeName
	default:
		return "?"
	}
}

// IsNegative is true for the "!" tokens
func (p Possibility) IsNegative() bool {
	switch p.Kind {
	case KindNotEmpty, KindNotNull, KindNotNumeric, KindNotType:
		return true
	default:
		return false
	}
}

// Negate returns the complementary predicate
func (p Possibility) Negate() Possibility {
	switch p.Kind {
	case KindEmpty:
		return NotEmpty
	case KindNotEmpty:
		return Empty
	case KindNull:
		return NotNull
	case KindNotNull:
		return Null
	case KindNumeric:
		return NotNumeric
	case KindNotNumeric:
		return Numeric
	case KindIsType:
		return NotType(p.TypeName)
	case KindNotType:
		return IsType(p.TypeName)
	default:
		return p
	}
}

// ParsePossibility reads an assertion token. ok is false for text that is not
// a token, which callers treat as "nothing is known".
func ParsePossibility(token string) (p Possibility, ok bool) {
	token = strings.TrimSpace(token)
	negated := strings.HasPrefix(token, "!")
	name := strings.TrimPrefix(token, "!")
	if !isTypeName(name) {
		return Possibility{}, false
	}

	switch name {
	case "empty":
		p = Empty
	case "null":
		p = Null
	case "numeric":
		p = Numeric
	default:
		p = IsType(name)
	}
	if negated {
		p = p.Negate()
	}
	return p, true
}

func isTypeName(name string) bool {
	if name == "" || unicode.IsDigit([]rune(name)[0]) {
		return false
	}
	for _, r := range name {
		if r != '_' && r != '\\' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
