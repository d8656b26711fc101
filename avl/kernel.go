package avl

import "github.com/npillmayer/pavl/timeline"

// Kernel performs AVL maintenance through an Access backend.
type Kernel struct {
	acc Access
}

// NewKernel creates a balancing kernel for a backend.
func NewKernel(acc Access) *Kernel {
	assert(acc != nil, "avl kernel needs a backend")
	return &Kernel{acc: acc}
}

// Height returns the height of n as of t, 0 for NoNode.
func (k *Kernel) Height(n Node, t timeline.Timestamp) int {
	if n == NoNode {
		return 0
	}
	return k.acc.Height(n, t)
}

// BalanceFactor is height(right) − height(left) as of t.
func (k *Kernel) BalanceFactor(n Node, t timeline.Timestamp) int {
	if n == NoNode {
		return 0
	}
	return k.Height(k.acc.Right(n, t), t) - k.Height(k.acc.Left(n, t), t)
}

// Link makes child the step.Dir-child of step.Node at t and recomputes the
// height of step.Node. It returns the handle of the (possibly copied) parent.
func (k *Kernel) Link(step Step, child Node, t timeline.Timestamp) Node {
	assert(step.Node != NoNode, "avl link into absent node")
	l, r := k.acc.Left(step.Node, t), k.acc.Right(step.Node, t)
	if step.Dir == Left {
		l = child
	} else {
		r = child
	}
	return k.acc.Modify(step.Node, t, l, r, 1+max(k.Height(l, t), k.Height(r, t)))
}

// FixHeight recomputes the height of n from its children as of t.
func (k *Kernel) FixHeight(n Node, t timeline.Timestamp) Node {
	l, r := k.acc.Left(n, t), k.acc.Right(n, t)
	return k.acc.Modify(n, t, l, r, 1+max(k.Height(l, t), k.Height(r, t)))
}

// RotateLeft lifts the right child of n. n must have a right child.
//
//	  n                r
//	 / \              / \
//	a   r     =>     n   c
//	   / \          / \
//	  b   c        a   b
func (k *Kernel) RotateLeft(n Node, t timeline.Timestamp) Node {
	r := k.acc.Right(n, t)
	assert(r != NoNode, "avl rotate left without right child")
	tracer().Debugf("avl: rotate left at node %d @%d", n, t)
	a, b, c := k.acc.Left(n, t), k.acc.Left(r, t), k.acc.Right(r, t)
	hn := 1 + max(k.Height(a, t), k.Height(b, t))
	n = k.acc.Modify(n, t, a, b, hn)
	hr := 1 + max(hn, k.Height(c, t))
	return k.acc.Modify(r, t, n, c, hr)
}

// RotateRight lifts the left child of n. n must have a left child.
func (k *Kernel) RotateRight(n Node, t timeline.Timestamp) Node {
	l := k.acc.Left(n, t)
	assert(l != NoNode, "avl rotate right without left child")
	tracer().Debugf("avl: rotate right at node %d @%d", n, t)
	a, b, c := k.acc.Left(l, t), k.acc.Right(l, t), k.acc.Right(n, t)
	hn := 1 + max(k.Height(b, t), k.Height(c, t))
	n = k.acc.Modify(n, t, b, c, hn)
	hl := 1 + max(k.Height(a, t), hn)
	return k.acc.Modify(l, t, a, n, hl)
}

// BalanceOne restores |balance| ≤ 1 at n, assuming both subtrees of n are
// AVL trees with correct heights. It returns the root of the balanced subtree.
func (k *Kernel) BalanceOne(n Node, t timeline.Timestamp) Node {
	switch b := k.BalanceFactor(n, t); {
	case b <= -2:
		left := k.acc.Left(n, t)
		if k.BalanceFactor(left, t) >= 1 { // LR
			left = k.RotateLeft(left, t)
			n = k.acc.Modify(n, t, left, k.acc.Right(n, t), k.acc.Height(n, t))
		}
		return k.RotateRight(n, t)
	case b >= 2:
		right := k.acc.Right(n, t)
		if k.BalanceFactor(right, t) <= -1 { // RL
			right = k.RotateRight(right, t)
			n = k.acc.Modify(n, t, k.acc.Left(n, t), right, k.acc.Height(n, t))
		}
		return k.RotateLeft(n, t)
	}
	return n
}

// Rebalance walks an edit path bottom-up at timestamp t and returns the new
// root.
//
// path runs from the root down to the deepest node touched by the edit. The
// edit itself has already been recorded, and path holds the current handles:
// nodes modified by the edit appear with the handles their Modify returned.
// Every node on the path gets its height recomputed and is balanced, then it
// is linked into its parent in the recorded direction. A step which is not
// the child of its predecessor (see Path.Replace) panics.
func (k *Kernel) Rebalance(path Path, t timeline.Timestamp) Node {
	assert(len(path) > 0, "avl rebalance on empty path")
	child := path[len(path)-1].Node
	for i := len(path) - 2; i >= 0; i-- {
		assert(path[i+1].linked(Child(k.acc, path[i].Node, path[i].Dir, t)),
			"avl rebalance path leaves the tree")
		child = k.settle(child, t)
		child = k.Link(path[i], child, t)
	}
	return k.settle(child, t)
}

func (k *Kernel) settle(n Node, t timeline.Timestamp) Node {
	assert(n != NoNode, "avl rebalance path contains absent node")
	return k.BalanceOne(k.FixHeight(n, t), t)
}
