/*
Package boundedcopy implements persistence by node copying with limited
direct access.

Every node record carries two (left, right, height) slots and a split
timestamp. Before the split timestamp slot 1 is visible, at or after it slot 2.
The first change to a published record fills slot 2 in place. A change to a
record whose slot 2 is already taken by an earlier version overflows: the
record is copied, the copy carries the new triple in slot 1, and its handle
has to be linked into the parent, which may overflow in turn. Each record
absorbs one change before it is copied, which bounds the extra space to O(1)
amortized per update.

Records created by the running operation, and slots filled by it, are not
yet visible to any version and are overwritten in place.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package boundedcopy

import (
	"github.com/npillmayer/pavl/avl"
	"github.com/npillmayer/pavl/timeline"
)

type slot struct {
	left   avl.Node
	right  avl.Node
	height int
}

type boundedNode struct {
	datum int
	at    timeline.Timestamp // creation time of this record
	slot1 slot
	slot2 slot
	split timeline.Timestamp // slot2 visible from here on, if full
	full  bool               // slot2 in use
}

func (bn *boundedNode) visible(t timeline.Timestamp) slot {
	if bn.full && t >= bn.split {
		return bn.slot2
	}
	return bn.slot1
}

// Store is a bounded node-copying arena. It implements avl.Store.
type Store struct {
	nodes  []boundedNode
	splits int
}

var _ avl.Store = (*Store)(nil)

// New creates an empty bounded-copy store.
func New() *Store {
	return &Store{}
}

// Kind returns "boundedcopy".
func (s *Store) Kind() string { return "boundedcopy" }

// Len returns the number of node records, originals and split copies.
func (s *Store) Len() int { return len(s.nodes) }

// Splits returns the number of records created by slot overflow.
func (s *Store) Splits() int { return s.splits }

// Alloc creates a leaf node for a datum, visible from t on.
func (s *Store) Alloc(datum int, t timeline.Timestamp) avl.Node {
	s.nodes = append(s.nodes, boundedNode{
		datum: datum,
		at:    t,
		slot1: slot{left: avl.NoNode, right: avl.NoNode, height: 1},
		slot2: slot{left: avl.NoNode, right: avl.NoNode},
	})
	return avl.Node(len(s.nodes) - 1)
}

// Datum returns the datum index of n.
func (s *Store) Datum(n avl.Node) int {
	return s.nodes[n].datum
}

// Left returns the left child of n as of t.
func (s *Store) Left(n avl.Node, t timeline.Timestamp) avl.Node {
	if n == avl.NoNode {
		return avl.NoNode
	}
	return s.nodes[n].visible(t).left
}

// Right returns the right child of n as of t.
func (s *Store) Right(n avl.Node, t timeline.Timestamp) avl.Node {
	if n == avl.NoNode {
		return avl.NoNode
	}
	return s.nodes[n].visible(t).right
}

// Height returns the height of n as of t.
func (s *Store) Height(n avl.Node, t timeline.Timestamp) int {
	if n == avl.NoNode {
		return 0
	}
	return s.nodes[n].visible(t).height
}

// Modify records a new triple for n at t, either in place or in a split
// copy. It returns the handle to link into the parent.
func (s *Store) Modify(n avl.Node, t timeline.Timestamp, left, right avl.Node, height int) avl.Node {
	bn := &s.nodes[n]
	if bn.at > t || (bn.full && bn.split > t) {
		panic("boundedcopy: modification of a published version")
	}
	want := slot{left: left, right: right, height: height}
	if bn.visible(t) == want {
		return n
	}
	switch {
	case bn.full && bn.split == t:
		bn.slot2 = want
		return n
	case bn.at == t && !bn.full:
		bn.slot1 = want
		return n
	case !bn.full:
		bn.slot2, bn.split, bn.full = want, t, true
		return n
	}
	tracer().Debugf("boundedcopy: split node %d @%d", n, t)
	s.nodes = append(s.nodes, boundedNode{
		datum: bn.datum,
		at:    t,
		slot1: want,
		slot2: slot{left: avl.NoNode, right: avl.NoNode},
	})
	s.splits++
	return avl.Node(len(s.nodes) - 1)
}
