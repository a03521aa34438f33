package flow

import (
	"github.com/cottand/narrow/frontend/ast"
	"go/token"
)

func v(name string) *ast.Var { return &ast.Var{Name: name} }

func prop(object ast.Expr, name string) *ast.PropertyFetch {
	return &ast.PropertyFetch{Object: object, Prop: name}
}

func instanceOf(x ast.Expr, class string) *ast.InstanceOf {
	return &ast.InstanceOf{X: x, Class: class}
}

func call(name string, args ...ast.Expr) *ast.Call { return &ast.Call{Func: name, Args: args} }

func not(x ast.Expr) *ast.Not { return &ast.Not{X: x} }

func binary(left ast.Expr, op ast.BinaryOp, right ast.Expr) *ast.BinaryExpr {
	return &ast.BinaryExpr{Left: left, Operator: op, Right: right}
}

var literalSyntax = map[ast.LitKind]string{
	ast.LitNull:   "null",
	ast.LitTrue:   "true",
	ast.LitFalse:  "false",
	ast.LitInt:    "1",
	ast.LitFloat:  "1.5",
	ast.LitString: `"s"`,
	ast.LitArray:  "[]",
}

func lit(kind ast.LitKind) *ast.Literal {
	return &ast.Literal{Kind: kind, Syntax: literalSyntax[kind]}
}

func newObject(class string) *ast.New { return &ast.New{Class: class} }

func assign(target, value ast.Expr) *ast.Assign { return &ast.Assign{Target: target, Value: value} }

func block(stmts ...ast.Stmt) *ast.Block { return &ast.Block{Stmts: stmts} }

func ifElse(cond ast.Expr, then, otherwise *ast.Block, elseIfs ...*ast.ElseIf) *ast.If {
	return &ast.If{Cond: cond, Then: then, ElseIfs: elseIfs, Else: otherwise}
}

func elseIf(cond ast.Expr, body *ast.Block) *ast.ElseIf { return &ast.ElseIf{Cond: cond, Body: body} }

func at(start, end int) ast.Range {
	return ast.Range{PosStart: token.Pos(start), PosEnd: token.Pos(end)}
}
