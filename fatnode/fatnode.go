/*
Package fatnode implements persistence by fat nodes: every node keeps an
append-only log of its (left, right, height) triples, stamped with the
timestamp they became valid at.

Node identity never changes. Reads binary-search a node's log, writes append
to it. Several changes made by one operation collapse into a single log entry,
so every operation appears as one atomic version.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package fatnode

import (
	"github.com/npillmayer/pavl/avl"
	"github.com/npillmayer/pavl/timeline"
)

// change is a node's child/height triple, valid from `at` on.
type change struct {
	at     timeline.Timestamp
	left   avl.Node
	right  avl.Node
	height int
}

func (c change) Stamp() timeline.Timestamp { return c.at }

type fatNode struct {
	datum int
	log   []change // sorted by timestamp, never empty
}

// Store is a fat-node arena. It implements avl.Store.
type Store struct {
	nodes   []fatNode
	changes int
}

var _ avl.Store = (*Store)(nil)

// New creates an empty fat-node store.
func New() *Store {
	return &Store{}
}

// Kind returns "fatnode".
func (s *Store) Kind() string { return "fatnode" }

// Len returns the number of nodes allocated.
func (s *Store) Len() int { return len(s.nodes) }

// Changes returns the number of log entries over all nodes.
func (s *Store) Changes() int { return s.changes }

// Alloc creates a leaf node for a datum, visible from t on.
func (s *Store) Alloc(datum int, t timeline.Timestamp) avl.Node {
	s.nodes = append(s.nodes, fatNode{
		datum: datum,
		log:   []change{{at: t, left: avl.NoNode, right: avl.NoNode, height: 1}},
	})
	s.changes++
	return avl.Node(len(s.nodes) - 1)
}

// Datum returns the datum index of n.
func (s *Store) Datum(n avl.Node) int {
	return s.nodes[n].datum
}

func (s *Store) at(n avl.Node, t timeline.Timestamp) (change, bool) {
	if n == avl.NoNode {
		return change{}, false
	}
	return timeline.Lookup(s.nodes[n].log, t)
}

// Left returns the left child of n as of t.
func (s *Store) Left(n avl.Node, t timeline.Timestamp) avl.Node {
	if c, ok := s.at(n, t); ok {
		return c.left
	}
	return avl.NoNode
}

// Right returns the right child of n as of t.
func (s *Store) Right(n avl.Node, t timeline.Timestamp) avl.Node {
	if c, ok := s.at(n, t); ok {
		return c.right
	}
	return avl.NoNode
}

// Height returns the height of n as of t; 0 if n did not exist at t.
func (s *Store) Height(n avl.Node, t timeline.Timestamp) int {
	if c, ok := s.at(n, t); ok {
		return c.height
	}
	return 0
}

// Modify records a new triple for n at t. If the log already ends with an
// entry for t, that entry is overwritten. The handle of n never changes.
func (s *Store) Modify(n avl.Node, t timeline.Timestamp, left, right avl.Node, height int) avl.Node {
	fn := &s.nodes[n]
	last := &fn.log[len(fn.log)-1]
	if last.at > t {
		panic("fatnode: modification of a published version")
	}
	if last.at == t {
		last.left, last.right, last.height = left, right, height
		return n
	}
	if last.left == left && last.right == right && last.height == height {
		return n
	}
	fn.log = append(fn.log, change{at: t, left: left, right: right, height: height})
	s.changes++
	return n
}
