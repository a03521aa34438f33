package ast

import (
	"fmt"
	"strings"
)

// ExprString renders expr in source-like syntax, for logs and error messages
func ExprString(expr Expr) string {
	sb := &strings.Builder{}
	writeExpr(sb, expr)
	return sb.String()
}

func writeExpr(sb *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *Var:
		sb.WriteString(e.Name)
	case *PropertyFetch:
		writeExpr(sb, e.Object)
		sb.WriteString("->")
		sb.WriteString(e.Prop)
	case *InstanceOf:
		writeExpr(sb, e.X)
		sb.WriteString(" instanceof ")
		sb.WriteString(e.Class)
	case *Call:
		sb.WriteString(e.Func)
		writeArgs(sb, e.Args)
	case *BinaryExpr:
		sb.WriteString("(")
		writeExpr(sb, e.Left)
		sb.WriteString(" " + e.Operator.String() + " ")
		writeExpr(sb, e.Right)
		sb.WriteString(")")
	case *Not:
		sb.WriteString("!")
		writeExpr(sb, e.X)
	case *Literal:
		sb.WriteString(e.Syntax)
	case *New:
		sb.WriteString("new ")
		sb.WriteString(e.Class)
		writeArgs(sb, e.Args)
	case *Ternary:
		writeExpr(sb, e.Cond)
		sb.WriteString(" ? ")
		writeExpr(sb, e.Then)
		sb.WriteString(" : ")
		writeExpr(sb, e.Else)
	default:
		sb.WriteString(fmt.Sprintf("<%T>", expr))
	}
}

func writeArgs(sb *strings.Builder, args []Expr) {
	sb.WriteString("(")
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeExpr(sb, arg)
	}
	sb.WriteString(")")
}
