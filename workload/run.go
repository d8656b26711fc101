package workload

import (
	"errors"
	"fmt"

	"github.com/npillmayer/pavl"
)

// ErrDivergence signals that backends answered a query differently.
var ErrDivergence = errors.New("workload: backends diverge")

// Applied is the outcome of one operation.
type Applied struct {
	Op Op
	At pavl.Timestamp
	OK bool // false for a delete of an absent item
}

// Answer is the outcome of one query.
type Answer struct {
	Query Query
	Found bool
	Value int64 // for predecessor and successor
}

func (a Answer) String() string {
	switch {
	case a.Query.Op == Contains:
		return fmt.Sprintf("%v", a.Found)
	case a.Found:
		return fmt.Sprintf("%d", a.Value)
	}
	return "none"
}

// Result is a replayed script.
type Result struct {
	Tree    *pavl.Tree[int64]
	Applied []Applied
	Answers []Answer
}

// Run replays a script against a fresh tree with the given backend. The
// script is validated first.
func Run(s *Script, backend pavl.Backend) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	tree, err := pavl.NewOrdered[int64](backend)
	if err != nil {
		return nil, err
	}
	res := &Result{Tree: tree}
	for _, op := range s.Ops {
		item, insert := op.Item()
		if insert {
			res.Applied = append(res.Applied, Applied{Op: op, At: tree.Insert(item), OK: true})
			continue
		}
		ts, ok := tree.Delete(item)
		res.Applied = append(res.Applied, Applied{Op: op, At: ts, OK: ok})
	}
	for _, q := range s.Queries {
		res.Answers = append(res.Answers, Ask(tree, q))
	}
	tracer().Infof("workload: %s replayed %d ops, %d versions", backend, len(s.Ops), tree.Versions())
	return res, nil
}

// Ask evaluates a single query.
func Ask(tree *pavl.Tree[int64], q Query) Answer {
	at := pavl.Timestamp(q.At)
	a := Answer{Query: q}
	switch q.Op {
	case Contains:
		a.Found = tree.Contains(q.Item, at)
	case Predecessor:
		a.Value, a.Found = tree.Predecessor(q.Item, at)
	case Successor:
		a.Value, a.Found = tree.Successor(q.Item, at)
	}
	return a
}

// Compare replays a script against every backend and checks that they agree
// on the script's queries and, for every version, on all three query kinds
// for every item the script mentions and its neighbours. It returns the
// results in the order of pavl.Backends.
func Compare(s *Script) ([]*Result, error) {
	var results []*Result
	for _, b := range pavl.Backends() {
		res, err := Run(s, b)
		if err != nil {
			return nil, err
		}
		if err := res.Tree.CheckAll(); err != nil {
			return results, fmt.Errorf("%s: %w", b, err)
		}
		results = append(results, res)
	}
	ref := results[0]
	for _, other := range results[1:] {
		for i := range ref.Answers {
			if ref.Answers[i] != other.Answers[i] {
				return results, fmt.Errorf("%w: %s answers %s to %s, %s answers %s", ErrDivergence,
					ref.Tree.Backend(), ref.Answers[i], ref.Answers[i].Query,
					other.Tree.Backend(), other.Answers[i])
			}
		}
	}
	probes := s.probes()
	for v := 0; v < ref.Tree.Versions(); v++ {
		for _, item := range probes {
			for _, kind := range []string{Contains, Predecessor, Successor} {
				q := Query{Op: kind, Item: item, At: uint64(v)}
				want := Ask(ref.Tree, q)
				for _, other := range results[1:] {
					if got := Ask(other.Tree, q); got != want {
						return results, fmt.Errorf("%w: %s answers %s to %s, %s answers %s", ErrDivergence,
							ref.Tree.Backend(), want, q, other.Tree.Backend(), got)
					}
				}
			}
		}
	}
	return results, nil
}

func (s *Script) probes() []int64 {
	seen := make(map[int64]bool)
	var probes []int64
	for _, op := range s.Ops {
		item, _ := op.Item()
		for _, p := range []int64{item - 1, item, item + 1} {
			if !seen[p] {
				seen[p] = true
				probes = append(probes, p)
			}
		}
	}
	return probes
}
