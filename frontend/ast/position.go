package ast

import (
	"encoding/binary"
	"fmt"
	"go/token"
	"hash/fnv"
)

// Positioner allows finding the location in the original source file.
type Positioner interface {
	Pos() token.Pos // position of first character belonging to the node
	End() token.Pos // position of first character immediately after the node
}

// Range represents a range of positions in the source code.
type Range struct {
	PosStart token.Pos
	PosEnd   token.Pos
}

// Hash returns a hash value for the Range
func (r Range) Hash() uint64 {
	h := fnv.New64a()
	arr := []byte{}
	arr = binary.LittleEndian.AppendUint64(arr, uint64(r.PosStart))
	arr = binary.LittleEndian.AppendUint64(arr, uint64(r.PosEnd))
	_, _ = h.Write(arr)
	return h.Sum64()
}

func (r Range) Pos() token.Pos { return r.PosStart }
func (r Range) End() token.Pos { return r.PosEnd }

func (r Range) String() string {
	if r.PosStart == r.PosEnd {
		return fmt.Sprintf("%v", r.PosStart)
	}
	return fmt.Sprintf("%v-%v", r.PosStart, r.PosEnd)
}

// RangeBetween creates a Range between two Positioners.
func RangeBetween(fst, snd Positioner) Range {
	return Range{fst.Pos(), snd.End()}
}

// RangeOf creates a Range from a Positioner. A nil Positioner yields the zero Range.
func RangeOf(expr Positioner) Range {
	if expr == nil {
		return Range{}
	}
	if asRange, ok := expr.(*Range); ok {
		return *asRange
	}
	if asRange, ok := expr.(Range); ok {
		return asRange
	}
	return Range{expr.Pos(), expr.End()}
}

// nodeHasher accumulates the structural characteristics of a node.
// Every node kind starts from its own tag so that equal children under
// different parents do not collide.
type nodeHasher struct {
	arr []byte
}

func newNodeHasher(tag string, r Range) *nodeHasher {
	h := &nodeHasher{arr: []byte(tag)}
	h.arr = binary.LittleEndian.AppendUint64(h.arr, r.Hash())
	return h
}

func (h *nodeHasher) str(s string) *nodeHasher {
	h.arr = append(h.arr, s...)
	h.arr = append(h.arr, 0)
	return h
}

func (h *nodeHasher) node(n Node) *nodeHasher {
	if n != nil {
		h.arr = binary.LittleEndian.AppendUint64(h.arr, n.Hash())
	}
	return h
}

func (h *nodeHasher) sum() uint64 {
	f := fnv.New64a()
	_, _ = f.Write(h.arr)
	return f.Sum64()
}
