package hierarchy

import (
	"github.com/cottand/narrow/frontend/ast"
	"github.com/cottand/narrow/frontend/checkerr"
	"github.com/cottand/narrow/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestIsSubtypeOf(t *testing.T) {
	h := New(
		Class{Name: "A"},
		Class{Name: "B", Extends: "A"},
		Class{Name: "C", Extends: "B", Implements: []string{"Countable"}},
		Class{Name: "Countable"},
	)

	testCases := []struct {
		sub, super string
		expected   bool
	}{
		{"A", "A", true},
		{"B", "A", true},
		{"C", "A", true},
		{"C", "Countable", true},
		{"A", "B", false},
		{"B", "Countable", false},
		{"Unknown", "A", false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.sub+" <: "+testCase.super, func(t *testing.T) {
			assert.Equal(t, testCase.expected, h.IsSubtypeOf(testCase.sub, testCase.super))
		})
	}
}

func TestIsSubtypeOfTerminatesOnCycles(t *testing.T) {
	h := New(
		Class{Name: "A", Extends: "B"},
		Class{Name: "B", Extends: "A"},
	)
	assert.True(t, h.IsSubtypeOf("A", "B"))
	assert.False(t, h.IsSubtypeOf("A", "C"))
	assert.Equal(t, []string{"B"}, h.lineage("A"))

	h.Reset()
	assert.True(t, h.IsSubtypeOf("B", "A"))
}

func TestPropertyTypeIsInherited(t *testing.T) {
	h := New(
		Class{Name: "Base", Properties: map[string]types.Union{"foo": types.MustParse("string|B")}},
		Class{Name: "Child", Extends: "Base", Properties: map[string]types.Union{"bar": types.MustParse("int")}},
		Class{Name: "GrandChild", Extends: "Child", Properties: map[string]types.Union{"foo": types.MustParse("B")}},
	)

	foo, ok := h.PropertyType("Child", "foo")
	require.True(t, ok)
	assert.Equal(t, "B|string", foo.String())

	foo, ok = h.PropertyType("GrandChild", "foo")
	require.True(t, ok)
	assert.Equal(t, "B", foo.String())

	_, ok = h.PropertyType("Base", "bar")
	assert.False(t, ok)
}

func TestLoadYAML(t *testing.T) {
	doc := `
classes:
  A:
    properties:
      foo: string|B
  B: {}
  C:
    extends: B
    implements: [Countable]
`
	h, err := LoadYAML(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, h.Names())
	assert.True(t, h.IsSubtypeOf("C", "B"))
	assert.True(t, h.IsSubtypeOf("C", "Countable"))

	foo, ok := h.PropertyType("A", "foo")
	require.True(t, ok)
	assert.Equal(t, "B|string", foo.String())
}

func TestLoadYAMLMalformedProperty(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("classes:\n  A:\n    properties:\n      foo: 'array<'\n"))
	require.Error(t, err)
	assert.Equal(t, checkerr.MalformedType, checkerr.CodeOf(err))
	assert.Contains(t, err.Error(), "A->foo")
}

func TestFromFile(t *testing.T) {
	file := &ast.File{
		Classes: []*ast.ClassDecl{
			{Name: "B"},
			{Name: "C", Extends: "B"},
			{Name: "A", Properties: []ast.PropertyDecl{{Name: "foo", Type: "B"}}},
		},
	}
	h, err := FromFile(file)
	require.NoError(t, err)
	assert.True(t, h.IsSubtypeOf("C", "B"))
	foo, ok := h.PropertyType("A", "foo")
	require.True(t, ok)
	assert.Equal(t, "B", foo.String())

	bad := &ast.File{Classes: []*ast.ClassDecl{{
		Range:      ast.Range{PosStart: 10, PosEnd: 20},
		Name:       "A",
		Properties: []ast.PropertyDecl{{Name: "foo", Type: "|"}},
	}}}
	_, err = FromFile(bad)
	require.Error(t, err)
	var asCheck checkerr.CheckError
	require.ErrorAs(t, err, &asCheck)
	assert.Equal(t, checkerr.MalformedType, asCheck.Code())
	assert.EqualValues(t, 10, asCheck.Pos())
}

func TestMerge(t *testing.T) {
	first := New(Class{Name: "A"}, Class{Name: "B", Extends: "A"})
	second := New(Class{Name: "B"})
	merged := first.Merge(second)
	assert.False(t, merged.IsSubtypeOf("B", "A"))
	assert.True(t, first.IsSubtypeOf("B", "A"))

	var nilHierarchy *Static
	assert.Equal(t, []string{"B"}, nilHierarchy.Merge(second).Names())
}
