package pavl

// Stats describes the space a tree occupies over all its versions.
type Stats struct {
	Backend  Backend
	Items    int // datum arena size, every item ever inserted
	Nodes    int // node records, including copies
	Versions int // root table entries
	// LogEntries counts change-log entries of a FatNode tree.
	LogEntries int
	// Copies counts node records created by copying (PathCopy) or by slot
	// overflow (BoundedCopy).
	Copies int
}

// Stats returns the current arena statistics.
func (t *Tree[T]) Stats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s := Stats{
		Backend:  t.cfg.Backend,
		Items:    len(t.data),
		Nodes:    t.store.Len(),
		Versions: len(t.versions),
	}
	switch st := t.store.(type) {
	case interface{ Changes() int }:
		s.LogEntries = st.Changes()
	case interface{ Copies() int }:
		s.Copies = st.Copies()
	case interface{ Splits() int }:
		s.Copies = st.Splits()
	}
	return s
}
