package avl

import (
	"fmt"

	"github.com/npillmayer/pavl/timeline"
)

// maxCheckDepth bounds the descent of Check; an AVL tree of this height
// would hold more nodes than any arena can address.
const maxCheckDepth = 96

// Check validates the version rooted at root as of t: recorded heights,
// AVL balance and non-decreasing in-order sequence. cmp compares the data of
// two nodes.
//
// Check is meant for tests and debugging. It visits every node.
func Check(acc Access, root Node, t timeline.Timestamp, cmp func(a, b Node) int) error {
	c := checker{acc: acc, t: t, cmp: cmp, prev: NoNode}
	_, err := c.check(root, 0)
	return err
}

type checker struct {
	acc  Access
	t    timeline.Timestamp
	cmp  func(a, b Node) int
	prev Node // in-order predecessor of the node under inspection
}

func (c *checker) check(n Node, depth int) (int, error) {
	if n == NoNode {
		return 0, nil
	}
	if depth > maxCheckDepth {
		return 0, fmt.Errorf("%w: descent deeper than %d at node %d", ErrCorrupted, maxCheckDepth, n)
	}
	lh, err := c.check(c.acc.Left(n, c.t), depth+1)
	if err != nil {
		return 0, err
	}
	if c.prev != NoNode && c.cmp(c.prev, n) > 0 {
		return 0, fmt.Errorf("%w: order violation between nodes %d and %d @%d",
			ErrCorrupted, c.prev, n, c.t)
	}
	c.prev = n
	rh, err := c.check(c.acc.Right(n, c.t), depth+1)
	if err != nil {
		return 0, err
	}
	h := 1 + max(lh, rh)
	if recorded := c.acc.Height(n, c.t); recorded != h {
		return 0, fmt.Errorf("%w: node %d records height %d, has %d @%d",
			ErrCorrupted, n, recorded, h, c.t)
	}
	if b := rh - lh; b < -1 || b > 1 {
		return 0, fmt.Errorf("%w: node %d has balance factor %d @%d", ErrCorrupted, n, b, c.t)
	}
	return h, nil
}
