/*
Package pavl offers a partially persistent ordered multiset, organized as an
AVL tree in which every past version stays queryable.

Every insertion or deletion creates a new version, identified by a
monotonically increasing Timestamp. Queries (Contains, Predecessor,
Successor, and friends) take a timestamp and observe the tree exactly as it
was immediately after the operation which issued it. Only the latest
version can be extended.

	tree, _ := pavl.NewOrdered[int](pavl.BoundedCopy)
	t0 := tree.Insert(5)
	tree.Insert(3)
	t2, _ := tree.Delete(5)
	tree.Contains(5, t0) // true
	tree.Contains(5, t2) // false

# Persistence

Three interchangeable methods of making a search tree persistent are
provided, following Driscoll, Sarnak, Sleator and Tarjan:

  - FatNode: every node logs its child pointers over time. O(1) extra space
    per change, reads pay a binary search per node.
  - PathCopy: nodes are never changed once published; an update copies the
    path from the root down to the change.
  - BoundedCopy: every node has room for one additional version of its
    child pointers and is copied only when that room is used up. O(1)
    amortized extra space per update and O(1) access per node.

The AVL balancing logic is written once (package avl) against a small access
contract every backend implements. All backends answer queries identically;
they differ in space consumption only (see Tree.Stats).

# Concurrency

Writes are sequential: clients must not issue Insert or Delete concurrently.
Reads of committed versions may run concurrently with each other and with a
write. Published state is never altered, writes only add.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package pavl

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// tracer writes to trace with key 'pavl'
func tracer() tracing.Trace {
	return tracing.Select("pavl")
}
