package ast

// All statement types implement the Stmt interface

var (
	_ Stmt = (*Block)(nil)
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*Assign)(nil)
	_ Stmt = (*If)(nil)
	_ Stmt = (*Return)(nil)
	_ Stmt = (*Throw)(nil)
	_ Stmt = (*Break)(nil)
	_ Stmt = (*Continue)(nil)
)

// Block represents a block of statements enclosed in braces.
type Block struct {
	Range
	Stmts []Stmt
}

func (s *Block) stmtNode() {}

func (s *Block) Hash() uint64 {
	h := newNodeHasher("Block", s.Range)
	for _, stmt := range s.Stmts {
		h.node(stmt)
	}
	return h.sum()
}

// ExprStmt represents an expression used as a statement.
type ExprStmt struct {
	Range
	X Expr
}

func (s *ExprStmt) stmtNode() {}

func (s *ExprStmt) Hash() uint64 {
	return newNodeHasher("ExprStmt", s.Range).node(s.X).sum()
}

// Assign is Target = Value, where Target is a Var or a PropertyFetch
type Assign struct {
	Range
	Target Expr
	Value  Expr
}

func (s *Assign) stmtNode() {}

func (s *Assign) Hash() uint64 {
	return newNodeHasher("Assign", s.Range).node(s.Target).node(s.Value).sum()
}

// If is an if/elseif/else chain. Else may be nil.
type If struct {
	Range
	Cond    Expr
	Then    *Block
	ElseIfs []*ElseIf
	Else    *Block
}

// ElseIf is one `elseif (Cond) { Body }` arm of an If
type ElseIf struct {
	Range
	Cond Expr
	Body *Block
}

func (s *If) stmtNode() {}

func (s *If) Hash() uint64 {
	h := newNodeHasher("If", s.Range).node(s.Cond)
	if s.Then != nil {
		h.node(s.Then)
	}
	for _, elseIf := range s.ElseIfs {
		h.node(elseIf.Cond)
		if elseIf.Body != nil {
			h.node(elseIf.Body)
		}
	}
	if s.Else != nil {
		h.node(s.Else)
	}
	return h.sum()
}

type Return struct {
	Range
	X Expr // may be nil
}

func (s *Return) stmtNode() {}

func (s *Return) Hash() uint64 {
	return newNodeHasher("Return", s.Range).node(s.X).sum()
}

type Throw struct {
	Range
	X Expr
}

func (s *Throw) stmtNode() {}

func (s *Throw) Hash() uint64 {
	return newNodeHasher("Throw", s.Range).node(s.X).sum()
}

type Break struct{ Range }

func (s *Break) stmtNode() {}

func (s *Break) Hash() uint64 { return newNodeHasher("Break", s.Range).sum() }

type Continue struct{ Range }

func (s *Continue) stmtNode() {}

func (s *Continue) Hash() uint64 { return newNodeHasher("Continue", s.Range).sum() }

// Exits reports whether control never falls through stmt:
// it ends in return, throw, break or continue, or it is an if chain
// with an else where every arm exits.
func Exits(stmt Stmt) bool {
	switch s := stmt.(type) {
	case nil:
		return false
	case *Return, *Throw, *Break, *Continue:
		return true
	case *Block:
		if s == nil || len(s.Stmts) == 0 {
			return false
		}
		return Exits(s.Stmts[len(s.Stmts)-1])
	case *If:
		if s.Else == nil {
			return false
		}
		if !Exits(s.Then) || !Exits(s.Else) {
			return false
		}
		for _, elseIf := range s.ElseIfs {
			if !Exits(elseIf.Body) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
