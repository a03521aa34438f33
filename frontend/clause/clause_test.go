package clause

import (
	"github.com/cottand/narrow/frontend/assertion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func mustClause(t *testing.T, text string) Clause {
	t.Helper()
	c, err := ParseClause(text)
	require.NoError(t, err)
	return c
}

func TestNewDropsEmptyPathsAndDuplicates(t *testing.T) {
	c := New(map[string][]assertion.Possibility{
		"$b": {assertion.NotEmpty, assertion.NotEmpty},
		"$a": {assertion.IsType("int"), assertion.IsType("string")},
		"$c": {},
	})
	assert.Equal(t, []string{"$a", "$b"}, c.Paths())
	assert.Equal(t, "($a:int || $a:string || $b:!empty)", c.String())

	c = c.With("$a", assertion.IsType("int"), assertion.Null)
	assert.Equal(t, []assertion.Possibility{assertion.IsType("int"), assertion.IsType("string"), assertion.Null}, c.Possibilities("$a"))
	assert.Nil(t, c.Possibilities("$c"))
}

func TestUnit(t *testing.T) {
	path, p, ok := mustClause(t, "($a->b:!null)").Unit()
	require.True(t, ok)
	assert.Equal(t, "$a->b", path)
	assert.Equal(t, assertion.NotNull, p)

	_, _, ok = mustClause(t, "($a:null || $a:int)").Unit()
	assert.False(t, ok)
	_, _, ok = mustClause(t, "($a:null || $b:null)").Unit()
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	testCases := []struct {
		container string
		contained string
		expected  bool
	}{
		{"($a:int || $b:!empty)", "($a:int)", true},
		{"($a:int || $a:string || $b:!empty)", "($a:string || $a:int)", true},
		{"($a:int)", "($a:int || $b:!empty)", false},
		{"($a:int || $b:!empty)", "($a:string)", false},
		{"($a:int || $b:!empty)", "($c:int)", false},
		{"($a:int || $b:!empty)", "($a:int || $b:!empty)", true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.container+" contains "+testCase.contained, func(t *testing.T) {
			actual := mustClause(t, testCase.container).Contains(mustClause(t, testCase.contained))
			assert.Equal(t, testCase.expected, actual)
		})
	}
}

func TestContainsIsReflexiveAndTransitive(t *testing.T) {
	chain := []Clause{
		mustClause(t, "($a:int)"),
		mustClause(t, "($a:int || $b:null)"),
		mustClause(t, "($a:int || $a:string || $b:null)"),
		mustClause(t, "($a:int || $a:string || $b:null || $c:!empty)"),
	}
	for i, c := range chain {
		assert.True(t, c.Contains(c))
		for _, smaller := range chain[:i] {
			assert.True(t, c.Contains(smaller), "%s should contain %s", c, smaller)
			assert.False(t, smaller.Contains(c), "%s should not contain %s", smaller, c)
		}
	}
}

func TestKeyIgnoresPossibilityOrder(t *testing.T) {
	a := mustClause(t, "($a:int || $a:string || $b:null)")
	b := mustClause(t, "($b:null || $a:string || $a:int)")
	assert.Equal(t, a.Key(), b.Key())
	assert.True(t, a.Equal(b))
	assert.NotEqual(t, a.Key(), mustClause(t, "($a:int || $b:null)").Key())
}

func TestParseClauseErrors(t *testing.T) {
	for _, text := range []string{"($a)", "(:int)", "($a:1int)", "($a:int || $b:)"} {
		_, err := ParseClause(text)
		assert.Error(t, err, text)
	}
}
