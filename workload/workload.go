/*
Package workload describes operation scripts for persistent trees and
replays them.

A script is a YAML document listing mutating operations and queries:

	backend: boundedcopy
	ops:
	  - insert: 5
	  - insert: 3
	  - delete: 5
	queries:
	  - {op: contains, item: 5, at: 0}
	  - {op: successor, item: 4, at: 2}

Operation i is expected to issue timestamp i unless an earlier delete missed.
Queries are evaluated after all operations have been applied.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package workload

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/npillmayer/pavl"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer writes to trace with key 'pavl'
func tracer() tracing.Trace {
	return tracing.Select("pavl")
}

// ErrBadScript signals a malformed workload script.
var ErrBadScript = errors.New("workload: malformed script")

// Query kinds.
const (
	Contains    = "contains"
	Predecessor = "predecessor"
	Successor   = "successor"
)

// Script is a sequence of operations plus queries against the result.
type Script struct {
	Backend string  `yaml:"backend,omitempty"`
	Ops     []Op    `yaml:"ops"`
	Queries []Query `yaml:"queries,omitempty"`
}

// Op is a single mutating operation; exactly one field is set.
type Op struct {
	Insert *int64 `yaml:"insert,omitempty"`
	Delete *int64 `yaml:"delete,omitempty"`
}

// Item returns the item of an operation and whether it is an insert.
// op must be valid, see Script.Validate.
func (op Op) Item() (item int64, insert bool) {
	if op.Insert != nil {
		return *op.Insert, true
	}
	return *op.Delete, false
}

func (op Op) String() string {
	if (op.Insert == nil) == (op.Delete == nil) {
		return "invalid op"
	}
	item, insert := op.Item()
	if insert {
		return fmt.Sprintf("insert %d", item)
	}
	return fmt.Sprintf("delete %d", item)
}

// Query asks one question about the version at timestamp At.
type Query struct {
	Op   string `yaml:"op"`
	Item int64  `yaml:"item"`
	At   uint64 `yaml:"at"`
}

func (q Query) String() string {
	return fmt.Sprintf("%s(%d) @%d", q.Op, q.Item, q.At)
}

// Parse reads and validates a script.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks a script for structural errors.
func (s *Script) Validate() error {
	if s.Backend != "" {
		if _, err := pavl.ParseBackend(s.Backend); err != nil {
			return fmt.Errorf("%w: %v", ErrBadScript, err)
		}
	}
	for i, op := range s.Ops {
		if (op.Insert == nil) == (op.Delete == nil) {
			return fmt.Errorf("%w: op #%d must be exactly one of insert or delete", ErrBadScript, i)
		}
	}
	for i, q := range s.Queries {
		switch q.Op {
		case Contains, Predecessor, Successor:
		default:
			return fmt.Errorf("%w: query #%d has unknown op %q", ErrBadScript, i, q.Op)
		}
	}
	return nil
}

// Encode writes s as YAML.
func (s *Script) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// BackendOf returns the backend named by the script, FatNode if none is.
func (s *Script) BackendOf() pavl.Backend {
	b, err := pavl.ParseBackend(s.Backend)
	if err != nil {
		return pavl.FatNode
	}
	return b
}

// Random generates a script of n operations over items in [0, span), with
// about one delete per three operations, and a query of each kind per
// operation.
func Random(seed int64, n int, span int64) *Script {
	r := rand.New(rand.NewSource(seed))
	s := &Script{}
	for i := 0; i < n; i++ {
		item := r.Int63n(span)
		if r.Intn(3) == 0 {
			s.Ops = append(s.Ops, Op{Delete: &item})
		} else {
			s.Ops = append(s.Ops, Op{Insert: &item})
		}
	}
	for i := 0; i < n; i++ {
		for _, kind := range []string{Contains, Predecessor, Successor} {
			s.Queries = append(s.Queries, Query{Op: kind, Item: r.Int63n(span), At: uint64(i)})
		}
	}
	return s
}
