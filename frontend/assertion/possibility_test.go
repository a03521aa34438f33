package assertion

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestParsePossibility(t *testing.T) {
	testCases := map[string]Possibility{
		"empty":     Empty,
		"!empty":    NotEmpty,
		"null":      Null,
		"!null":     NotNull,
		"numeric":   Numeric,
		"!numeric":  NotNumeric,
		"MyObject":  IsType("MyObject"),
		"!MyObject": NotType("MyObject"),
		"string":    IsType("string"),
		"Foo\\Bar":  IsType("Foo\\Bar"),
		" !int ":    NotType("int"),
	}
	for token, expected := range testCases {
		t.Run(token, func(t *testing.T) {
			actual, ok := ParsePossibility(token)
			assert.True(t, ok)
			assert.Equal(t, expected, actual)
		})
	}

	for _, token := range []string{"", "!", "!!null", "array<int>", "1abc", "a|b"} {
		_, ok := ParsePossibility(token)
		assert.False(t, ok, "expected %q not to be a token", token)
	}
}

func TestPossibilityNegation(t *testing.T) {
	for _, p := range []Possibility{Empty, NotEmpty, Null, NotNull, Numeric, NotNumeric, IsType("A"), NotType("A")} {
		t.Run(p.String(), func(t *testing.T) {
			assert.Equal(t, p, p.Negate().Negate())
			assert.NotEqual(t, p.IsNegative(), p.Negate().IsNegative())

			parsed, ok := ParsePossibility(p.String())
			assert.True(t, ok)
			assert.Equal(t, p, parsed)
		})
	}
}
