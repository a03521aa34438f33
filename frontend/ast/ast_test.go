package ast

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestPathOf(t *testing.T) {
	testCases := []struct {
		expr     Expr
		expected string
		ok       bool
	}{
		{&Var{Name: "$a"}, "$a", true},
		{&PropertyFetch{Object: &Var{Name: "$a"}, Prop: "foo"}, "$a->foo", true},
		{&PropertyFetch{Object: &PropertyFetch{Object: &Var{Name: "$a"}, Prop: "foo"}, Prop: "bar"}, "$a->foo->bar", true},
		{&PropertyFetch{Object: &Call{Func: "f"}, Prop: "foo"}, "", false},
		{&Var{}, "", false},
		{&Literal{Kind: LitNull, Syntax: "null"}, "", false},
	}

	for _, testCase := range testCases {
		t.Run(ExprString(testCase.expr), func(t *testing.T) {
			path, ok := PathOf(testCase.expr)
			assert.Equal(t, testCase.ok, ok)
			assert.Equal(t, testCase.expected, path)
		})
	}
}

func TestSplitPath(t *testing.T) {
	object, prop, ok := SplitPath("$a->foo->bar")
	assert.True(t, ok)
	assert.Equal(t, "$a->foo", object)
	assert.Equal(t, "bar", prop)

	_, _, ok = SplitPath("$a")
	assert.False(t, ok)
}

func TestExits(t *testing.T) {
	ret := &Return{}
	assign := &Assign{Target: &Var{Name: "$a"}, Value: &Literal{Kind: LitInt, Syntax: "1"}}

	testCases := []struct {
		name     string
		stmt     Stmt
		expected bool
	}{
		{"return", ret, true},
		{"throw", &Throw{X: &New{Class: "E"}}, true},
		{"block ending in break", &Block{Stmts: []Stmt{assign, &Break{}}}, true},
		{"block ending in assignment", &Block{Stmts: []Stmt{ret, assign}}, false},
		{"empty block", &Block{}, false},
		{"nil block", (*Block)(nil), false},
		{"if without else", &If{Cond: &Var{Name: "$a"}, Then: &Block{Stmts: []Stmt{ret}}}, false},
		{"if where every arm exits", &If{
			Cond:    &Var{Name: "$a"},
			Then:    &Block{Stmts: []Stmt{ret}},
			ElseIfs: []*ElseIf{{Cond: &Var{Name: "$b"}, Body: &Block{Stmts: []Stmt{&Continue{}}}}},
			Else:    &Block{Stmts: []Stmt{&Throw{}}},
		}, true},
		{"if with an elseif falling through", &If{
			Cond:    &Var{Name: "$a"},
			Then:    &Block{Stmts: []Stmt{ret}},
			ElseIfs: []*ElseIf{{Cond: &Var{Name: "$b"}, Body: &Block{}}},
			Else:    &Block{Stmts: []Stmt{ret}},
		}, false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, Exits(testCase.stmt))
		})
	}
}

func TestHashIsStructural(t *testing.T) {
	a := &InstanceOf{X: &Var{Name: "$a"}, Class: "A"}
	sameA := &InstanceOf{X: &Var{Name: "$a"}, Class: "A"}
	b := &InstanceOf{X: &Var{Name: "$b"}, Class: "A"}
	moved := &InstanceOf{Range: Range{PosStart: 4, PosEnd: 9}, X: &Var{Name: "$a"}, Class: "A"}

	assert.Equal(t, a.Hash(), sameA.Hash())
	assert.NotEqual(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), moved.Hash())
	assert.NotEqual(t,
		(&BinaryExpr{Left: &Var{Name: "$a"}, Operator: OpIdentical, Right: &Literal{Kind: LitNull}}).Hash(),
		(&BinaryExpr{Left: &Var{Name: "$a"}, Operator: OpNotIdentical, Right: &Literal{Kind: LitNull}}).Hash(),
	)
}

func TestExprString(t *testing.T) {
	expr := &Not{X: &BinaryExpr{
		Left:     &InstanceOf{X: &PropertyFetch{Object: &Var{Name: "$a"}, Prop: "foo"}, Class: "C"},
		Operator: OpOr,
		Right:    &Call{Func: "is_string", Args: []Expr{&Var{Name: "$b"}}},
	}}
	assert.Equal(t, "!($a->foo instanceof C || is_string($b))", ExprString(expr))

	ternary := &Ternary{Cond: &Var{Name: "$c"}, Then: &New{Class: "A"}, Else: &Literal{Kind: LitNull, Syntax: "null"}}
	assert.Equal(t, "$c ? new A() : null", ExprString(ternary))
}
