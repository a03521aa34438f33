package flow

import (
	"github.com/cottand/narrow/frontend/assertion"
	"github.com/cottand/narrow/frontend/ast"
	"github.com/cottand/narrow/frontend/clause"
)

// typeCheckFunctions maps the single-argument type checking builtins to
// what they assert about their argument
var typeCheckFunctions = map[string]assertion.Possibility{
	"is_string":  assertion.IsType("string"),
	"is_int":     assertion.IsType("int"),
	"is_integer": assertion.IsType("int"),
	"is_long":    assertion.IsType("int"),
	"is_float":   assertion.IsType("float"),
	"is_double":  assertion.IsType("float"),
	"is_bool":    assertion.IsType("bool"),
	"is_array":   assertion.IsType("array"),
	"is_object":  assertion.IsType("object"),
	"is_numeric": assertion.Numeric,
	"is_null":    assertion.Null,
	"empty":      assertion.Empty,
	"isset":      assertion.NotNull,
}

// extracted is the formula a condition establishes when it holds.
// When exact is false the formula is only implied by the condition, so
// its negation says nothing about the condition not holding.
type extracted struct {
	formula clause.Formula
	exact   bool
}

type formulaKey struct {
	hash uint64
	r    ast.Range
}

// Formula returns what cond guarantees when it holds
func (c *Checker) Formula(cond ast.Expr) clause.Formula {
	return c.formulaOf(cond).formula
}

func (c *Checker) formulaOf(cond ast.Expr) extracted {
	key := formulaKey{hash: cond.Hash(), r: ast.RangeOf(cond)}
	if cached, ok := c.formulas[key]; ok {
		return cached
	}
	e := c.extract(cond)
	c.formulas[key] = e
	c.logger.Debug("formula", "cond", cond, "formula", e.formula.String(), "exact", e.exact)
	return e
}

// negatedFormulaOf returns what is known when cond does not hold
func (c *Checker) negatedFormulaOf(cond ast.Expr) extracted {
	e := c.formulaOf(cond)
	if !e.exact || len(e.formula) == 0 {
		return extracted{}
	}
	return extracted{formula: clause.Negate(e.formula), exact: true}
}

func (c *Checker) extract(cond ast.Expr) extracted {
	if path, ok := ast.PathOf(cond); ok {
		return unit(path, assertion.NotEmpty)
	}

	switch e := cond.(type) {
	case *ast.Not:
		return c.negatedFormulaOf(e.X)

	case *ast.InstanceOf:
		if path, ok := ast.PathOf(e.X); ok && e.Class != "" {
			return unit(path, assertion.IsType(e.Class))
		}

	case *ast.Call:
		p, known := typeCheckFunctions[e.Func]
		if !known || len(e.Args) != 1 {
			break
		}
		if path, ok := ast.PathOf(e.Args[0]); ok {
			return unit(path, p)
		}

	case *ast.BinaryExpr:
		switch e.Operator {
		case ast.OpAnd:
			left, right := c.formulaOf(e.Left), c.formulaOf(e.Right)
			return extracted{
				formula: left.formula.And(right.formula),
				exact:   left.exact && right.exact,
			}
		case ast.OpOr:
			left, right := c.formulaOf(e.Left), c.formulaOf(e.Right)
			return extracted{
				formula: left.formula.Or(right.formula),
				exact:   left.exact && right.exact,
			}
		case ast.OpIdentical, ast.OpNotIdentical, ast.OpEqual, ast.OpNotEqual:
			return comparison(e)
		}
	}
	return extracted{}
}

// comparison handles a path compared against null, true or false
func comparison(e *ast.BinaryExpr) extracted {
	path, ok := ast.PathOf(e.Left)
	lit, isLit := e.Right.(*ast.Literal)
	if !ok || !isLit {
		path, ok = ast.PathOf(e.Right)
		lit, isLit = e.Left.(*ast.Literal)
	}
	if !ok || !isLit {
		return extracted{}
	}

	strict := e.Operator == ast.OpIdentical || e.Operator == ast.OpNotIdentical
	negated := e.Operator == ast.OpNotIdentical || e.Operator == ast.OpNotEqual

	var p assertion.Possibility
	switch {
	case lit.Kind == ast.LitNull:
		p = assertion.Null
	case lit.Kind == ast.LitTrue && strict:
		p = assertion.IsType("true")
	case lit.Kind == ast.LitFalse && strict:
		p = assertion.IsType("false")
	default:
		return extracted{}
	}
	if negated {
		p = p.Negate()
	}
	return unit(path, p)
}

func unit(path string, p assertion.Possibility) extracted {
	return extracted{formula: clause.Formula{clause.Of(path, p)}, exact: true}
}
