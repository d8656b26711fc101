package avl

import "github.com/npillmayer/pavl/timeline"

// Node is a handle into a backend's node arena.
type Node int32

// NoNode is the handle of an absent node.
const NoNode Node = -1

// Access is the contract between the balancing kernel and a persistence
// backend.
//
// Readers ask for a node's fields as of a timestamp. Writers always pass the
// timestamp of the running operation, which is never smaller than any
// timestamp used before. Modify must not change anything which is visible at
// an earlier timestamp. If the triple would not change, Modify returns n and
// records nothing.
type Access interface {
	Left(n Node, t timeline.Timestamp) Node
	Right(n Node, t timeline.Timestamp) Node
	Height(n Node, t timeline.Timestamp) int
	Modify(n Node, t timeline.Timestamp, left, right Node, height int) Node
}

// Store is a complete backend: node access plus allocation.
type Store interface {
	Access
	// Alloc creates a leaf node for a datum index, visible from t on.
	Alloc(datum int, t timeline.Timestamp) Node
	// Datum returns the datum index a node refers to. Copies of a node share
	// the datum index.
	Datum(n Node) int
	// Len returns the number of node records allocated so far.
	Len() int
	// Kind names the persistence method.
	Kind() string
}

// Dir is a descent direction.
type Dir int8

const (
	Left Dir = iota
	Right
)

func (d Dir) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Step is one element of an edit path: a node and the direction taken from it.
type Step struct {
	Node  Node
	Dir   Dir
	was   Node // handle linked from the parent before the edit
	moved bool
}

// Path is an edit path, ordered from the root downwards.
//
// Every step's node is the child of the preceding step in its direction. An
// edit which replaces a node on the path (a copy, or a different node taking
// its place) records the replacement with Replace, so the parent may still
// link the former handle.
type Path []Step

// Replace installs n as the node of step i. The handle the parent links to
// is remembered from the first replacement.
func (p Path) Replace(i int, n Node) {
	if !p[i].moved {
		p[i].was, p[i].moved = p[i].Node, true
	}
	p[i].Node = n
}

// linked reports whether c, the child found in the parent, is the node of
// step s.
func (s Step) linked(c Node) bool {
	return c == s.Node || (s.moved && c == s.was)
}

// Child returns the child of n in direction d as of t.
func Child(acc Access, n Node, d Dir, t timeline.Timestamp) Node {
	if d == Left {
		return acc.Left(n, t)
	}
	return acc.Right(n, t)
}
