package flow

import (
	"github.com/cottand/narrow/frontend/types"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestCloneIsIndependent(t *testing.T) {
	original := NewContext(map[string]types.Union{"$a": types.MustParse("A|null")})
	clone := original.Clone()

	clone.Set("$a", types.MustParse("A"))
	clone.Set("$b", types.MustParse("int"))
	original.Set("$c", types.MustParse("string"))

	assert.Equal(t, "{$a: null|A, $c: string}", original.String())
	assert.Equal(t, "{$a: A, $b: int}", clone.String())
}

func TestAssignForgetsProperties(t *testing.T) {
	ctx := NewContext(map[string]types.Union{
		"$a":         types.MustParse("A"),
		"$a->foo":    types.MustParse("B"),
		"$a->foo->x": types.MustParse("int"),
		"$ab":        types.MustParse("int"),
	})

	ctx.Assign("$a", types.MustParse("A|null"))
	assert.Equal(t, []string{"$a", "$ab"}, ctx.Paths())

	ctx.Set("$a->foo", types.MustParse("B"))
	ctx.Set("$a", types.MustParse("A"))
	assert.Equal(t, []string{"$a", "$a->foo", "$ab"}, ctx.Paths())
}

func TestMerge(t *testing.T) {
	first := NewContext(map[string]types.Union{"$a": types.MustParse("A"), "$x": types.MustParse("int")})
	second := NewContext(map[string]types.Union{"$a": types.MustParse("null"), "$y": types.MustParse("int")})
	third := NewContext(map[string]types.Union{"$a": types.MustParse("B|A"), "$x": types.MustParse("string")})

	merged := Merge(first, second, third)
	assert.Equal(t, "{$a: null|A|B}", merged.String())
	assert.Equal(t, []string{"$x", "$y"}, merged.PossiblyAssigned())

	assert.Same(t, first, Merge(first))
	assert.Empty(t, Merge().Paths())
}

func TestMergeKeepsPossiblyAssigned(t *testing.T) {
	inner := Merge(
		NewContext(map[string]types.Union{"$x": types.MustParse("int")}),
		NewContext(nil),
	)
	outer := Merge(inner, NewContext(nil))
	assert.True(t, outer.IsPossiblyAssigned("$x"))
}
