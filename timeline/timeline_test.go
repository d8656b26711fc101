package timeline

import "testing"

type entry struct {
	at    Timestamp
	value string
}

func (e entry) Stamp() Timestamp { return e.at }

func TestLookupEmpty(t *testing.T) {
	if _, ok := Lookup[entry](nil, 5); ok {
		t.Fatalf("expected no entry in empty sequence")
	}
	if _, ok := Latest[entry](nil); ok {
		t.Fatalf("expected no latest entry in empty sequence")
	}
}

func TestLookupBeforeFirst(t *testing.T) {
	seq := []entry{{3, "a"}, {5, "b"}}
	if e, ok := Lookup(seq, 2); ok {
		t.Fatalf("expected nothing before first entry, got %v", e)
	}
}

func TestLookupFloor(t *testing.T) {
	seq := []entry{{0, "a"}, {2, "b"}, {5, "c"}, {9, "d"}}
	cases := []struct {
		at   Timestamp
		want string
	}{
		{0, "a"}, {1, "a"}, {2, "b"}, {4, "b"}, {5, "c"}, {8, "c"}, {9, "d"}, {1000, "d"},
	}
	for _, c := range cases {
		e, ok := Lookup(seq, c.at)
		if !ok {
			t.Fatalf("lookup(%d): expected entry", c.at)
		}
		if e.value != c.want {
			t.Fatalf("lookup(%d) = %q, want %q", c.at, e.value, c.want)
		}
	}
}

func TestLookupEqualStampsTakesLast(t *testing.T) {
	seq := []entry{{1, "a"}, {3, "b"}, {3, "c"}, {4, "d"}}
	e, ok := Lookup(seq, 3)
	if !ok || e.value != "c" {
		t.Fatalf("expected last of equal stamps, got %v/%v", e, ok)
	}
}

func TestLookupDoesNotMutate(t *testing.T) {
	seq := []entry{{1, "a"}, {2, "b"}}
	_, _ = Lookup(seq, 1)
	if seq[0].value != "a" || seq[1].value != "b" {
		t.Fatalf("lookup mutated its input: %v", seq)
	}
}

func TestClockIsMonotonic(t *testing.T) {
	var c Clock
	if _, ok := c.Last(); ok {
		t.Fatalf("fresh clock must not report a last timestamp")
	}
	prev := c.Next()
	if prev != 0 {
		t.Fatalf("first timestamp should be 0, is %d", prev)
	}
	for i := 0; i < 10; i++ {
		next := c.Next()
		if next <= prev {
			t.Fatalf("timestamps not strictly increasing: %d after %d", next, prev)
		}
		prev = next
	}
	if last, ok := c.Last(); !ok || last != prev {
		t.Fatalf("Last() = %d/%v, want %d", last, ok, prev)
	}
	if c.Peek() != prev+1 {
		t.Fatalf("Peek() = %d, want %d", c.Peek(), prev+1)
	}
}
