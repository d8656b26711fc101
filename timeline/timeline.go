package timeline

import "sort"

// Timestamp identifies the state of a structure immediately after a
// mutating operation. Timestamps are issued by a Clock, strictly increasing.
type Timestamp uint64

// Stamped is implemented by entries of a history sequence.
type Stamped interface {
	Stamp() Timestamp
}

// Lookup returns the entry of seq with the greatest timestamp ≤ t.
// seq has to be sorted by non-decreasing timestamp. If more than one entry
// carries the winning timestamp, the last one is returned.
//
// Lookup returns false if seq is empty or if all entries postdate t.
func Lookup[E Stamped](seq []E, t Timestamp) (E, bool) {
	// index of the first entry strictly after t
	i := sort.Search(len(seq), func(i int) bool {
		return seq[i].Stamp() > t
	})
	if i == 0 {
		var zero E
		return zero, false
	}
	return seq[i-1], true
}

// Latest returns the last entry of seq, if any.
func Latest[E Stamped](seq []E) (E, bool) {
	if len(seq) == 0 {
		var zero E
		return zero, false
	}
	return seq[len(seq)-1], true
}

// Clock issues timestamps for a single structure. The zero value is ready
// to use; the first timestamp issued is 0.
type Clock struct {
	next   Timestamp
	issued bool
}

// Next issues a fresh timestamp.
func (c *Clock) Next() Timestamp {
	t := c.next
	c.next++
	c.issued = true
	return t
}

// Peek returns the timestamp the next call to Next will issue.
func (c *Clock) Peek() Timestamp {
	return c.next
}

// Last returns the most recently issued timestamp. ok is false if the clock
// has not issued anything yet.
func (c *Clock) Last() (t Timestamp, ok bool) {
	if !c.issued {
		return 0, false
	}
	return c.next - 1, true
}
