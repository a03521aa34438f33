package ast

// Node is the base interface for all AST nodes.
type Node interface {
	Positioner
	Hash() uint64
}

// Expr is the interface for all expression nodes in the AST.
type Expr interface {
	Node
	exprNode() // Marker method to distinguish expressions
}

// Stmt is the interface for all statement nodes in the AST.
type Stmt interface {
	Node
	stmtNode() // Marker method to distinguish statements
}

// File represents a source file in the AST.
//
// Classes are declared up front; the checker only needs their names,
// parents and declared property types.
type File struct {
	Range
	Name    string
	Classes []*ClassDecl
	Stmts   []Stmt
}

// Hash returns a hash value for the File, based on its structural characteristics
func (f *File) Hash() uint64 {
	h := newNodeHasher("File", f.Range).str(f.Name)
	for _, class := range f.Classes {
		h.node(class)
	}
	for _, stmt := range f.Stmts {
		h.node(stmt)
	}
	return h.sum()
}

// ClassDecl declares a class, its parent, the interfaces it implements
// and the declared types of its properties.
type ClassDecl struct {
	Range
	Name       string
	Extends    string // empty when the class has no parent
	Implements []string
	Properties []PropertyDecl
}

// PropertyDecl is a class property with its declared type in canonical type text, eg "string|B"
type PropertyDecl struct {
	Name string
	Type string
}

// Hash returns a hash value for the ClassDecl, based on its structural characteristics
func (c *ClassDecl) Hash() uint64 {
	h := newNodeHasher("ClassDecl", c.Range).str(c.Name).str(c.Extends)
	for _, iface := range c.Implements {
		h.str(iface)
	}
	for _, prop := range c.Properties {
		h.str(prop.Name).str(prop.Type)
	}
	return h.sum()
}
