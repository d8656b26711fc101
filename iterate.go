package pavl

import "github.com/npillmayer/pavl/avl"

// Each calls fn for every item of the version at ts, in ascending order,
// until fn returns false.
func (t *Tree[T]) Each(ts Timestamp, fn func(item T) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, at := t.rootAt(ts)
	var stack []avl.Node
	for n != avl.NoNode || len(stack) > 0 {
		for n != avl.NoNode {
			stack = append(stack, n)
			n = t.store.Left(n, at)
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(t.datum(n)) {
			return
		}
		n = t.store.Right(n, at)
	}
}

// Items returns the items of the version at ts in ascending order.
func (t *Tree[T]) Items(ts Timestamp) []T {
	var items []T
	t.Each(ts, func(item T) bool {
		items = append(items, item)
		return true
	})
	return items
}

// Len returns the number of items in the version at ts. Len visits every
// node of that version.
func (t *Tree[T]) Len(ts Timestamp) int {
	count := 0
	t.Each(ts, func(T) bool {
		count++
		return true
	})
	return count
}

// Height returns the height of the version at ts, 0 for an empty tree.
func (t *Tree[T]) Height(ts Timestamp) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, at := t.rootAt(ts)
	if n == avl.NoNode {
		return 0
	}
	return t.store.Height(n, at)
}

// Min returns the least item of the version at ts.
func (t *Tree[T]) Min(ts Timestamp) (T, bool) {
	return t.extreme(ts, avl.Left)
}

// Max returns the greatest item of the version at ts.
func (t *Tree[T]) Max(ts Timestamp) (T, bool) {
	return t.extreme(ts, avl.Right)
}

func (t *Tree[T]) extreme(ts Timestamp, d avl.Dir) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, at := t.rootAt(ts)
	if n == avl.NoNode {
		var zero T
		return zero, false
	}
	for next := avl.Child(t.store, n, d, at); next != avl.NoNode; next = avl.Child(t.store, n, d, at) {
		n = next
	}
	return t.datum(n), true
}
