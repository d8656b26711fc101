package pathcopy

import (
	"testing"

	"github.com/npillmayer/pavl/avl"
)

func TestModifyCopiesPublishedRecord(t *testing.T) {
	s := New()
	a := s.Alloc(0, 0)
	b := s.Alloc(1, 1)
	a2 := s.Modify(a, 1, b, avl.NoNode, 2)
	if a2 == a {
		t.Fatalf("published record was modified in place")
	}
	if s.Datum(a2) != s.Datum(a) {
		t.Fatalf("copy must share the datum")
	}
	if s.Left(a, 1) != avl.NoNode || s.Height(a, 1) != 1 {
		t.Fatalf("original record altered")
	}
	if s.Left(a2, 1) != b || s.Height(a2, 1) != 2 {
		t.Fatalf("copy does not carry the new triple")
	}
	if s.Copies() != 1 || s.Len() != 3 {
		t.Fatalf("unexpected arena state: copies=%d len=%d", s.Copies(), s.Len())
	}
}

func TestModifyFreshRecordInPlace(t *testing.T) {
	s := New()
	a := s.Alloc(0, 0)
	b := s.Alloc(1, 1)
	c := s.Alloc(2, 1)
	a2 := s.Modify(a, 1, b, avl.NoNode, 2)
	a3 := s.Modify(a2, 1, b, c, 2)
	if a3 != a2 {
		t.Fatalf("record created at t must be updated in place")
	}
	if s.Copies() != 1 {
		t.Fatalf("expected a single copy per operation, got %d", s.Copies())
	}
}

func TestModifyUnchanged(t *testing.T) {
	s := New()
	a := s.Alloc(0, 0)
	if s.Modify(a, 3, avl.NoNode, avl.NoNode, 1) != a || s.Copies() != 0 {
		t.Fatalf("identical triple must not be copied")
	}
}
