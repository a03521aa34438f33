package check

import (
	"github.com/cottand/narrow/frontend/ast"
	"github.com/cottand/narrow/frontend/checkerr"
	"github.com/cottand/narrow/frontend/hierarchy"
	"github.com/cottand/narrow/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func v(name string) *ast.Var { return &ast.Var{Name: name} }

func null() *ast.Literal { return &ast.Literal{Kind: ast.LitNull, Syntax: "null"} }

func assign(target, value ast.Expr) *ast.Assign { return &ast.Assign{Target: target, Value: value} }

func instanceOfElse(x ast.Expr, class string, otherwise ...ast.Stmt) *ast.If {
	return &ast.If{
		Cond: &ast.InstanceOf{X: x, Class: class},
		Then: &ast.Block{},
		Else: &ast.Block{Stmts: otherwise},
	}
}

func TestCheckFileUsesDeclaredClasses(t *testing.T) {
	file := &ast.File{
		Name: "somefile.php",
		Classes: []*ast.ClassDecl{
			{Name: "B"},
			{Name: "C", Extends: "B"},
			{Name: "A", Properties: []ast.PropertyDecl{{Name: "foo", Type: "B"}}},
		},
		Stmts: []ast.Stmt{
			assign(v("$out"), null()),
			instanceOfElse(&ast.PropertyFetch{Object: v("$a"), Prop: "foo"}, "C",
				assign(v("$out"), &ast.PropertyFetch{Object: v("$a"), Prop: "foo"}),
			),
		},
	}

	result, err := CheckFile(file, Options{Context: map[string]types.Union{"$a": types.MustParse("A")}})
	require.NoError(t, err)
	out, ok := result.TypeOf("$out")
	require.True(t, ok)
	assert.Equal(t, "null|B", out.String())
	assert.Equal(t, "somefile.php", result.File)
}

func TestCheckFileMergesGivenHierarchy(t *testing.T) {
	given, err := hierarchy.LoadYAML(strings.NewReader("classes:\n  A: {}\n  B: {extends: A}\n"))
	require.NoError(t, err)

	file := &ast.File{
		Name: "somefile.php",
		Stmts: []ast.Stmt{
			assign(v("$out"), null()),
			instanceOfElse(v("$a"), "B", assign(v("$out"), v("$a"))),
		},
	}

	result, err := CheckFile(file, Options{
		Hierarchy: given,
		Context:   map[string]types.Union{"$a": types.MustParse("A")},
	})
	require.NoError(t, err)
	out, _ := result.TypeOf("$out")
	assert.Equal(t, "null|A", out.String())
}

func TestCheckFileMalformedPropertyType(t *testing.T) {
	file := &ast.File{
		Name:    "somefile.php",
		Classes: []*ast.ClassDecl{{Name: "A", Properties: []ast.PropertyDecl{{Name: "foo", Type: "string|"}}}},
	}
	_, err := CheckFile(file, Options{})
	assert.Equal(t, checkerr.MalformedType, checkerr.CodeOf(err))
}

func TestCheckFilesIsolatesFailures(t *testing.T) {
	failing := &ast.File{
		Name:    "failing.php",
		Classes: []*ast.ClassDecl{{Name: "A"}},
		Stmts: []ast.Stmt{
			assign(v("$a"), &ast.New{Class: "A"}),
			&ast.If{Cond: &ast.InstanceOf{X: v("$a"), Class: "A"}, Then: &ast.Block{}},
		},
	}
	passing := &ast.File{
		Name:  "passing.php",
		Stmts: []ast.Stmt{assign(v("$b"), null())},
	}

	results, errs := CheckFiles([]*ast.File{failing, passing}, Options{})
	require.Len(t, results, 2)
	require.Len(t, errs.Errors(), 1)
	assert.Equal(t, checkerr.FailedTypeResolution, errs.Errors()[0].Code())

	assert.Equal(t, "failing.php", results[0].File)
	assert.Equal(t, checkerr.FailedTypeResolution, results[0].Err.Code())
	_, ok := results[0].TypeOf("$a")
	assert.False(t, ok)

	assert.Nil(t, results[1].Err)
	b, ok := results[1].TypeOf("$b")
	require.True(t, ok)
	assert.Equal(t, "null", b.String())
}

func TestCheckFilesDoesNotLeakClassesBetweenFiles(t *testing.T) {
	declaring := &ast.File{
		Name:    "declaring.php",
		Classes: []*ast.ClassDecl{{Name: "A"}, {Name: "B", Extends: "A"}},
	}
	using := &ast.File{
		Name:  "using.php",
		Stmts: []ast.Stmt{instanceOfElse(v("$a"), "B")},
	}

	_, errs := CheckFiles([]*ast.File{declaring, using}, Options{Context: map[string]types.Union{"$a": types.MustParse("A")}})
	require.True(t, errs.HasError())
	assert.Equal(t, checkerr.TypeDoesNotContainType, errs.Errors()[0].Code())
}
