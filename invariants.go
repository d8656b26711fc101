package pavl

import (
	"fmt"

	"github.com/npillmayer/pavl/avl"
)

// Check validates the structural invariants of the version at ts: recorded
// heights, AVL balance and item order.
//
// This checker visits every node and is meant for tests and debugging.
func (t *Tree[T]) Check(ts Timestamp) error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	root, at := t.rootAt(ts)
	return avl.Check(t.store, root, at, t.compareNodes)
}

// CheckAll validates every version ever committed.
func (t *Tree[T]) CheckAll() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, v := range t.versions {
		if err := avl.Check(t.store, v.root, v.at, t.compareNodes); err != nil {
			return fmt.Errorf("version %d: %w", v.at, err)
		}
	}
	return nil
}

func (t *Tree[T]) compareNodes(a, b avl.Node) int {
	return t.cfg.Compare(t.datum(a), t.datum(b))
}
