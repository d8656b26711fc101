/*
Package pathcopy implements persistence by path copying.

Node records are write-once. A change to a node published in an earlier
version produces a fresh record sharing the datum; the new handle has to be
threaded into the parent, which is copied in turn, up to the root. Records
created by the running operation are not yet visible to any version and are
updated in place, so an operation allocates at most one record per node it
touches.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package pathcopy

import (
	"github.com/npillmayer/pavl/avl"
	"github.com/npillmayer/pavl/timeline"
)

type copyNode struct {
	datum  int
	at     timeline.Timestamp // creation time of this record
	left   avl.Node
	right  avl.Node
	height int
}

// Store is a path-copying arena. It implements avl.Store.
type Store struct {
	nodes  []copyNode
	copies int
}

var _ avl.Store = (*Store)(nil)

// New creates an empty path-copying store.
func New() *Store {
	return &Store{}
}

// Kind returns "pathcopy".
func (s *Store) Kind() string { return "pathcopy" }

// Len returns the number of node records, originals and copies.
func (s *Store) Len() int { return len(s.nodes) }

// Copies returns the number of records created by copying.
func (s *Store) Copies() int { return s.copies }

// Alloc creates a leaf node for a datum, visible from t on.
func (s *Store) Alloc(datum int, t timeline.Timestamp) avl.Node {
	s.nodes = append(s.nodes, copyNode{
		datum:  datum,
		at:     t,
		left:   avl.NoNode,
		right:  avl.NoNode,
		height: 1,
	})
	return avl.Node(len(s.nodes) - 1)
}

// Datum returns the datum index of n.
func (s *Store) Datum(n avl.Node) int {
	return s.nodes[n].datum
}

// Left returns the left child of n. Records never change once published,
// so the timestamp is not consulted.
func (s *Store) Left(n avl.Node, _ timeline.Timestamp) avl.Node {
	if n == avl.NoNode {
		return avl.NoNode
	}
	return s.nodes[n].left
}

// Right returns the right child of n.
func (s *Store) Right(n avl.Node, _ timeline.Timestamp) avl.Node {
	if n == avl.NoNode {
		return avl.NoNode
	}
	return s.nodes[n].right
}

// Height returns the height of n.
func (s *Store) Height(n avl.Node, _ timeline.Timestamp) int {
	if n == avl.NoNode {
		return 0
	}
	return s.nodes[n].height
}

// Modify returns a record for the datum of n carrying the new triple. Records
// created at t are updated in place, all others are copied.
func (s *Store) Modify(n avl.Node, t timeline.Timestamp, left, right avl.Node, height int) avl.Node {
	cn := &s.nodes[n]
	if cn.at > t {
		panic("pathcopy: modification of a published version")
	}
	if cn.left == left && cn.right == right && cn.height == height {
		return n
	}
	if cn.at == t {
		cn.left, cn.right, cn.height = left, right, height
		return n
	}
	s.nodes = append(s.nodes, copyNode{
		datum:  cn.datum,
		at:     t,
		left:   left,
		right:  right,
		height: height,
	})
	s.copies++
	return avl.Node(len(s.nodes) - 1)
}
