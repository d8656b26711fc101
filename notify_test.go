package pavl

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestSubscribeReceivesCommits(t *testing.T) {
	tree := newIntTree(t, BoundedCopy)
	defer tree.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	commits, ok := tree.Subscribe(ctx, 8)
	if !ok {
		t.Fatalf("subscription refused")
	}
	tree.Insert(3)
	tree.Insert(1)
	tree.Delete(3)
	tree.Delete(99) // no version, no notification
	want := []Commit{{0, OpInsert}, {1, OpInsert}, {2, OpDelete}}
	for i, w := range want {
		select {
		case c := <-commits:
			if c != w {
				t.Fatalf("commit #%d = %+v, want %+v", i, c, w)
			}
			if c.Op == OpDelete && tree.Contains(3, c.At) {
				t.Fatalf("committed delete not visible")
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timeout waiting for commit #%d", i)
		}
	}
}

func TestCloseEndsSubscriptions(t *testing.T) {
	tree := newIntTree(t, FatNode)
	commits, ok := tree.Subscribe(context.Background(), 1)
	if !ok {
		t.Fatalf("subscription refused")
	}
	tree.Close()
	select {
	case _, open := <-commits:
		if open {
			t.Fatalf("expected closed channel after Close")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("subscription not closed")
	}
	tree.Insert(1) // tree stays usable
	if !tree.Contains(1, 0) {
		t.Fatalf("tree unusable after Close")
	}
}

func TestReadsDuringWrites(t *testing.T) {
	forEachBackend(t, func(t *testing.T, tree *Tree[int]) {
		for i := 0; i < 64; i++ {
			tree.Insert(i * 2)
		}
		committed, _ := tree.Latest()
		want := tree.Items(committed)
		var wg sync.WaitGroup
		errs := make(chan string, 4)
		for r := 0; r < 4; r++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for k := 0; k < 50; k++ {
					got := tree.Items(committed)
					if len(got) != len(want) {
						errs <- "committed version changed under a concurrent write"
						return
					}
					if !tree.Contains(10, committed) {
						errs <- "committed item vanished"
						return
					}
				}
			}()
		}
		for i := 0; i < 64; i++ {
			tree.Insert(i*2 + 1)
			tree.Delete(i * 2)
		}
		wg.Wait()
		close(errs)
		for e := range errs {
			t.Fatal(e)
		}
		if err := tree.CheckAll(); err != nil {
			t.Fatalf("check failed: %v", err)
		}
	})
}

// waitClosed drains commits until the channel is closed.
func waitClosed(t *testing.T, commits <-chan Commit) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, open := <-commits:
			if !open {
				return
			}
		case <-timeout:
			t.Fatalf("subscription channel not closed")
		}
	}
}

func TestAbandonedSubscriptionEndsOnCancel(t *testing.T) {
	tree := newIntTree(t, PathCopy)
	defer tree.Close()
	ctx, cancel := context.WithCancel(context.Background())
	commits, ok := tree.Subscribe(ctx, 0)
	if !ok {
		t.Fatalf("subscription refused")
	}
	tree.Insert(1) // nobody reads
	time.Sleep(50 * time.Millisecond)
	cancel()
	for i := 2; i < 6; i++ {
		tree.Insert(i) // writers must not stall on the abandoned subscriber
	}
	tree.Close()
	waitClosed(t, commits)
	if tree.Len(4) != 5 {
		t.Fatalf("tree holds %d items, want 5", tree.Len(4))
	}
}

func TestAbandonedSubscriptionEndsOnClose(t *testing.T) {
	tree := newIntTree(t, BoundedCopy)
	commits, ok := tree.Subscribe(context.Background(), 0)
	if !ok {
		t.Fatalf("subscription refused")
	}
	tree.Insert(1)
	tree.Insert(2)
	time.Sleep(50 * time.Millisecond)
	tree.Close()
	waitClosed(t, commits)
	// a new subscription after Close starts a fresh broadcaster
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	again, ok := tree.Subscribe(ctx, 1)
	if !ok {
		t.Fatalf("subscription after Close refused")
	}
	ts := tree.Insert(3)
	select {
	case c := <-again:
		if c.At != ts {
			t.Fatalf("commit at %d, want %d", c.At, ts)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no commit after resubscribing")
	}
	tree.Close()
}
