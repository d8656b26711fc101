package pavl

import (
	"context"

	"github.com/guiguan/caster"
)

// Op names a mutating operation.
type Op int

const (
	OpInsert Op = iota
	OpDelete
)

func (op Op) String() string {
	if op == OpDelete {
		return "delete"
	}
	return "insert"
}

// Commit is broadcast to subscribers whenever a new version is committed.
type Commit struct {
	At Timestamp
	Op Op
}

// Subscribe returns a channel which receives a Commit for every version
// committed after the call. The subscription ends when ctx is done or the
// tree is closed; the channel is closed then. capacity is the channel's
// buffer size.
//
// Notifications are delivered in commit order. At the time a Commit is
// received the version is readable. A subscriber which stops reading without
// ending its subscription eventually stalls writers.
func (t *Tree[T]) Subscribe(ctx context.Context, capacity uint) (<-chan Commit, bool) {
	if ctx == nil {
		ctx = context.Background()
	}
	t.mu.Lock()
	if t.cast == nil {
		t.cast = caster.New(nil)
		t.closed = make(chan struct{})
	}
	cast, closed := t.cast, t.closed
	t.mu.Unlock()
	raw, ok := cast.Sub(ctx, capacity)
	if !ok {
		return nil, false
	}
	out := make(chan Commit, capacity)
	go func() {
		defer func() {
			close(out)
			// keep the broadcaster moving until it lets go of raw
			for range raw {
			}
		}()
		for msg := range raw {
			c, ok := msg.(Commit)
			if !ok {
				continue
			}
			select {
			case out <- c:
			case <-ctx.Done():
				return
			case <-closed:
				return
			}
		}
	}()
	return out, true
}

// publish is called after the write lock has been released, so subscribers
// may query the tree while a slow receiver holds up the broadcaster.
func (t *Tree[T]) publish(c Commit) {
	t.mu.RLock()
	cast := t.cast
	t.mu.RUnlock()
	if cast != nil {
		cast.Pub(c)
	}
}

// Close ends all subscriptions. The tree itself stays usable.
func (t *Tree[T]) Close() {
	t.mu.Lock()
	cast, closed := t.cast, t.closed
	t.cast, t.closed = nil, nil
	t.mu.Unlock()
	if cast != nil {
		close(closed)
		cast.Close()
	}
}
