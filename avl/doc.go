/*
Package avl provides the backend-agnostic AVL balancing kernel for partially
persistent search trees.

The kernel never touches node storage directly. It talks to a backend through
the Access contract: read the left child, right child and height of a node as
of a timestamp, and record a new (left, right, height) triple for a node at a
timestamp. Backends decide how that change is made persistent: by logging it
(fat nodes), by copying the node (path copying) or by filling a spare slot and
copying only on overflow (bounded node copying).

Modify returns the handle which represents the node from the modifying
timestamp on. Callers must always continue with the returned handle; for
copying backends it differs from the handle passed in. Re-linking a changed
child into its parent is itself a Modify on the parent, which lets copies
propagate towards the root exactly as far as needed.

Rebalance checks every ancestor on the edit path, not only up to the first
rotation. For insertion this is redundant but harmless; for deletion more than
one ancestor may need to rotate. One routine therefore serves both.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package avl

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'pavl'
func tracer() tracing.Trace {
	return tracing.Select("pavl")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
