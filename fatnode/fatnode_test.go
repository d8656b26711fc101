package fatnode

import (
	"testing"

	"github.com/npillmayer/pavl/avl"
)

func TestAllocCreatesLeaf(t *testing.T) {
	s := New()
	n := s.Alloc(7, 3)
	if s.Datum(n) != 7 {
		t.Fatalf("datum = %d, want 7", s.Datum(n))
	}
	if s.Left(n, 3) != avl.NoNode || s.Right(n, 3) != avl.NoNode || s.Height(n, 3) != 1 {
		t.Fatalf("fresh node is not a leaf")
	}
	if s.Height(n, 2) != 0 {
		t.Fatalf("node must not exist before its creation")
	}
}

func TestModifyKeepsHistory(t *testing.T) {
	s := New()
	a := s.Alloc(0, 0)
	b := s.Alloc(1, 1)
	c := s.Alloc(2, 2)
	if got := s.Modify(a, 1, b, avl.NoNode, 2); got != a {
		t.Fatalf("fat node changed identity: %d -> %d", a, got)
	}
	s.Modify(a, 2, b, c, 2)
	if s.Left(a, 0) != avl.NoNode || s.Right(a, 0) != avl.NoNode {
		t.Fatalf("version 0 altered")
	}
	if s.Left(a, 1) != b || s.Right(a, 1) != avl.NoNode || s.Height(a, 1) != 2 {
		t.Fatalf("version 1 wrong")
	}
	if s.Left(a, 2) != b || s.Right(a, 2) != c {
		t.Fatalf("version 2 wrong")
	}
	if s.Right(a, 100) != c {
		t.Fatalf("later timestamps must see latest entry")
	}
}

func TestModifySameTimestampUpdatesInPlace(t *testing.T) {
	s := New()
	a := s.Alloc(0, 0)
	b := s.Alloc(1, 1)
	c := s.Alloc(2, 1)
	before := s.Changes()
	s.Modify(a, 1, b, avl.NoNode, 2)
	s.Modify(a, 1, b, c, 2)
	if s.Changes() != before+1 {
		t.Fatalf("expected one log entry for one operation, got %d", s.Changes()-before)
	}
	if s.Left(a, 1) != b || s.Right(a, 1) != c {
		t.Fatalf("in-place update lost a field")
	}
}

func TestModifyUnchangedRecordsNothing(t *testing.T) {
	s := New()
	a := s.Alloc(0, 0)
	before := s.Changes()
	s.Modify(a, 5, avl.NoNode, avl.NoNode, 1)
	if s.Changes() != before {
		t.Fatalf("identical triple must not be logged")
	}
}

func TestModifyInThePastPanics(t *testing.T) {
	s := New()
	a := s.Alloc(0, 4)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on modification of the past")
		}
	}()
	s.Modify(a, 3, avl.NoNode, avl.NoNode, 1)
}
