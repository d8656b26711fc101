package pavl

import (
	"cmp"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/pavl/avl"
	"github.com/npillmayer/pavl/timeline"
)

// Timestamp identifies a version of a tree. Timestamps are issued by
// mutating operations only.
type Timestamp = timeline.Timestamp

// version is an entry of the root table.
type version struct {
	at   Timestamp
	root avl.Node
}

func (v version) Stamp() Timestamp { return v.at }

// Tree is a partially persistent AVL multiset.
//
// Items are stored once in an append-only arena, and nothing is ever freed:
// deleted items stay reachable from the versions which contain them.
type Tree[T any] struct {
	// mu protects the arenas' slice headers. Published node state is
	// immutable, the lock only makes growth visible in a race-free way.
	mu       sync.RWMutex
	cfg      Config[T]
	store    avl.Store
	kernel   *avl.Kernel
	data     []T       // datum arena
	versions []version // root table, one entry per mutating operation
	clock    timeline.Clock
	cast     *caster.Caster // commit notifications, created on first Subscribe
	closed   chan struct{}  // closed by Close, ends forwarding subscribers
}

// New creates an empty tree with validated configuration.
func New[T any](cfg Config[T]) (*Tree[T], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	store := cfg.Backend.newStore()
	return &Tree[T]{
		cfg:    cfg,
		store:  store,
		kernel: avl.NewKernel(store),
	}, nil
}

// NewOrdered creates an empty tree for a naturally ordered item type.
func NewOrdered[T cmp.Ordered](backend Backend) (*Tree[T], error) {
	return New(Config[T]{Backend: backend, Compare: cmp.Compare[T]})
}

// Config returns a copy of the effective tree configuration.
func (t *Tree[T]) Config() Config[T] {
	return t.cfg
}

// Backend returns the persistence method of t.
func (t *Tree[T]) Backend() Backend {
	return t.cfg.Backend
}

// Latest returns the most recently issued timestamp. ok is false for a
// tree which has never been modified.
func (t *Tree[T]) Latest() (ts Timestamp, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.clock.Last()
}

// Versions returns the number of versions, i.e. of mutating operations.
func (t *Tree[T]) Versions() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.versions)
}

// Insert adds an item and returns the timestamp of the new version.
// Equal items are kept, each insertion adds one more.
func (t *Tree[T]) Insert(item T) Timestamp {
	ts := t.insert(item)
	t.publish(Commit{At: ts, Op: OpInsert})
	return ts
}

func (t *Tree[T]) insert(item T) Timestamp {
	t.mu.Lock()
	defer t.mu.Unlock()
	ts := t.clock.Next()
	t.data = append(t.data, item)
	leaf := t.store.Alloc(len(t.data)-1, ts)
	path := t.descend(t.latestRoot(), item, ts)
	root := leaf
	if len(path) > 0 {
		last := len(path) - 1
		path.Replace(last, t.kernel.Link(path[last], leaf, ts))
		root = t.kernel.Rebalance(path, ts)
	}
	t.commit(ts, root)
	return ts
}

// descend records the insertion path for item. Ties go left.
func (t *Tree[T]) descend(n avl.Node, item T, ts Timestamp) avl.Path {
	var path avl.Path
	for n != avl.NoNode {
		d := avl.Left
		if t.cfg.Compare(item, t.datum(n)) > 0 {
			d = avl.Right
		}
		path = append(path, avl.Step{Node: n, Dir: d})
		n = avl.Child(t.store, n, d, ts)
	}
	return path
}

// Delete removes one item equal to item from the latest version. It returns
// the timestamp of the new version, or false if no such item is present, in
// which case no version is created.
func (t *Tree[T]) Delete(item T) (Timestamp, bool) {
	ts, ok := t.delete(item)
	if ok {
		t.publish(Commit{At: ts, Op: OpDelete})
	}
	return ts, ok
}

func (t *Tree[T]) delete(item T) (Timestamp, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ts := t.clock.Peek()
	var path avl.Path
	n := t.latestRoot()
	for n != avl.NoNode {
		c := t.cfg.Compare(item, t.datum(n))
		if c == 0 {
			break
		}
		d := avl.Left
		if c > 0 {
			d = avl.Right
		}
		path = append(path, avl.Step{Node: n, Dir: d})
		n = avl.Child(t.store, n, d, ts)
	}
	if n == avl.NoNode {
		tracer().Debugf("pavl: delete of absent item %v", item)
		return 0, false
	}
	ts = t.clock.Next()
	l, r := t.store.Left(n, ts), t.store.Right(n, ts)
	if l != avl.NoNode && r != avl.NoNode {
		path = t.promoteSuccessor(append(path, avl.Step{Node: n, Dir: avl.Right}), l, r, ts)
	} else {
		repl := l
		if repl == avl.NoNode {
			repl = r
		}
		if len(path) == 0 {
			// a single child of the root is a valid AVL tree on its own
			t.commit(ts, repl)
			return ts, true
		}
		last := len(path) - 1
		path.Replace(last, t.kernel.Link(path[last], repl, ts))
	}
	t.commit(ts, t.kernel.Rebalance(path, ts))
	return ts, true
}

// promoteSuccessor unlinks the leftmost node s of the right subtree r and
// installs it with children (l, r) in place of the deleted node, which is the
// last step of path. The returned path continues from the deleted node's
// position through s's former location, as both regions may have lost a
// level.
func (t *Tree[T]) promoteSuccessor(path avl.Path, l, r avl.Node, ts Timestamp) avl.Path {
	var down avl.Path // from r to the parent of s
	s := r
	for next := t.store.Left(s, ts); next != avl.NoNode; next = t.store.Left(s, ts) {
		down = append(down, avl.Step{Node: s, Dir: avl.Left})
		s = next
	}
	sr := t.store.Right(s, ts)
	at := len(path) - 1
	if len(down) == 0 { // s == r
		path.Replace(at, t.store.Modify(s, ts, l, sr, t.store.Height(s, ts)))
		return path
	}
	last := len(down) - 1
	down.Replace(last, t.kernel.Link(down[last], sr, ts))
	// s's right link is redone by Rebalance once r's subtree has settled
	path.Replace(at, t.store.Modify(s, ts, l, r, t.store.Height(s, ts)))
	return append(path, down...)
}

func (t *Tree[T]) commit(ts Timestamp, root avl.Node) {
	t.versions = append(t.versions, version{at: ts, root: root})
	tracer().Debugf("pavl: committed version %d (%s), %d nodes", ts, t.store.Kind(), t.store.Len())
}

func (t *Tree[T]) latestRoot() avl.Node {
	if v, ok := timeline.Latest(t.versions); ok {
		return v.root
	}
	return avl.NoNode
}

// rootAt resolves the root of the version in effect at ts. The returned
// timestamp is the one the version was committed at; reads below the root
// use it, so they never see state beyond the version.
func (t *Tree[T]) rootAt(ts Timestamp) (avl.Node, Timestamp) {
	if v, ok := timeline.Lookup(t.versions, ts); ok {
		return v.root, v.at
	}
	return avl.NoNode, 0
}

func (t *Tree[T]) datum(n avl.Node) T {
	return t.data[t.store.Datum(n)]
}

// --- Queries ---------------------------------------------------------------

// Contains reports whether item is present in the version at ts.
func (t *Tree[T]) Contains(item T, ts Timestamp) bool {
	p, ok := t.Predecessor(item, ts)
	return ok && t.cfg.Compare(p, item) == 0
}

// Predecessor returns the greatest item ≤ item in the version at ts.
func (t *Tree[T]) Predecessor(item T, ts Timestamp) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, at := t.rootAt(ts)
	var inf T
	found := false
	for n != avl.NoNode {
		d := t.datum(n)
		if t.cfg.Compare(d, item) > 0 {
			n = t.store.Left(n, at)
		} else {
			inf, found = d, true
			n = t.store.Right(n, at)
		}
	}
	return inf, found
}

// Successor returns the least item ≥ item in the version at ts.
func (t *Tree[T]) Successor(item T, ts Timestamp) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, at := t.rootAt(ts)
	var sup T
	found := false
	for n != avl.NoNode {
		d := t.datum(n)
		if t.cfg.Compare(d, item) < 0 {
			n = t.store.Right(n, at)
		} else {
			sup, found = d, true
			n = t.store.Left(n, at)
		}
	}
	return sup, found
}
