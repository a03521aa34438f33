package ast

import (
	"strconv"
	"strings"
)

// All expression types implement the Expr interface

var (
	_ Expr = (*Var)(nil)
	_ Expr = (*PropertyFetch)(nil)
	_ Expr = (*InstanceOf)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*Not)(nil)
	_ Expr = (*Literal)(nil)
	_ Expr = (*New)(nil)
	_ Expr = (*Ternary)(nil)
)

// Var is a variable reference. Name includes the sigil, eg "$a".
type Var struct {
	Range
	Name string
}

func (e *Var) exprNode() {}

func (e *Var) Hash() uint64 {
	return newNodeHasher("Var", e.Range).str(e.Name).sum()
}

// PropertyFetch is Object->Prop
type PropertyFetch struct {
	Range
	Object Expr
	Prop   string
}

func (e *PropertyFetch) exprNode() {}

func (e *PropertyFetch) Hash() uint64 {
	return newNodeHasher("PropertyFetch", e.Range).node(e.Object).str(e.Prop).sum()
}

// InstanceOf is X instanceof Class
type InstanceOf struct {
	Range
	X     Expr
	Class string
}

func (e *InstanceOf) exprNode() {}

func (e *InstanceOf) Hash() uint64 {
	return newNodeHasher("InstanceOf", e.Range).node(e.X).str(e.Class).sum()
}

// Call is a call to a named function, eg is_string($a)
type Call struct {
	Range
	Func string
	Args []Expr
}

func (e *Call) exprNode() {}

func (e *Call) Hash() uint64 {
	h := newNodeHasher("Call", e.Range).str(e.Func)
	for _, arg := range e.Args {
		h.node(arg)
	}
	return h.sum()
}

type BinaryOp int

const (
	OpAnd BinaryOp = iota
	OpOr
	OpIdentical    // ===
	OpNotIdentical // !==
	OpEqual        // ==
	OpNotEqual     // !=
	OpGreater
	OpLess
)

func (op BinaryOp) String() string {
	switch op {
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpIdentical:
		return "==="
	case OpNotIdentical:
		return "!=="
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	case OpGreater:
		return ">"
	case OpLess:
		return "<"
	default:
		return "?"
	}
}

// BinaryExpr represents a binary operation (a && b, a === null, etc.).
type BinaryExpr struct {
	Range
	Left     Expr
	Operator BinaryOp
	Right    Expr
}

func (e *BinaryExpr) exprNode() {}

func (e *BinaryExpr) Hash() uint64 {
	return newNodeHasher("BinaryExpr", e.Range).str(e.Operator.String()).node(e.Left).node(e.Right).sum()
}

// Not is boolean negation !X
type Not struct {
	Range
	X Expr
}

func (e *Not) exprNode() {}

func (e *Not) Hash() uint64 {
	return newNodeHasher("Not", e.Range).node(e.X).sum()
}

type LitKind int

const (
	LitNull LitKind = iota
	LitTrue
	LitFalse
	LitInt
	LitFloat
	LitString
	LitArray
)

// Literal represents a literal value. Syntax is kept for printing only.
type Literal struct {
	Range
	Kind   LitKind
	Syntax string
}

func (e *Literal) exprNode() {}

func (e *Literal) Hash() uint64 {
	return newNodeHasher("Literal", e.Range).str(e.Syntax).str(strconv.Itoa(int(e.Kind))).sum()
}

// New is object construction, new Class()
type New struct {
	Range
	Class string
	Args  []Expr
}

func (e *New) exprNode() {}

func (e *New) Hash() uint64 {
	h := newNodeHasher("New", e.Range).str(e.Class)
	for _, arg := range e.Args {
		h.node(arg)
	}
	return h.sum()
}

// Ternary is Cond ? Then : Else
type Ternary struct {
	Range
	Cond, Then, Else Expr
}

func (e *Ternary) exprNode() {}

func (e *Ternary) Hash() uint64 {
	return newNodeHasher("Ternary", e.Range).node(e.Cond).node(e.Then).node(e.Else).sum()
}

// PathOf returns the key under which narrowed types of expr are tracked,
// eg "$a" or "$a->foo->bar". ok is false for expressions that do not denote
// a stable storage location.
func PathOf(expr Expr) (path string, ok bool) {
	switch e := expr.(type) {
	case *Var:
		return e.Name, e.Name != ""
	case *PropertyFetch:
		objectPath, ok := PathOf(e.Object)
		if !ok || e.Prop == "" {
			return "", false
		}
		return objectPath + "->" + e.Prop, true
	default:
		return "", false
	}
}

// SplitPath is the inverse of PathOf for property paths: "$a->foo->bar"
// gives "$a->foo" and "bar". ok is false for plain variables.
func SplitPath(path string) (object, prop string, ok bool) {
	i := strings.LastIndex(path, "->")
	if i < 0 {
		return "", "", false
	}
	return path[:i], path[i+2:], true
}
