package pavl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/pavl/avl"
	"github.com/npillmayer/pavl/boundedcopy"
	"github.com/npillmayer/pavl/fatnode"
	"github.com/npillmayer/pavl/pathcopy"
)

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("pavl: invalid configuration")
	// ErrCorrupted signals a violated tree invariant, found by Check.
	ErrCorrupted = avl.ErrCorrupted
)

// Backend selects the persistence method of a tree.
type Backend int

const (
	// FatNode keeps a change log per node.
	FatNode Backend = iota
	// PathCopy copies every node on a modified path.
	PathCopy
	// BoundedCopy gives every node one spare version and copies on overflow.
	BoundedCopy
)

var backendNames = [...]string{"fatnode", "pathcopy", "boundedcopy"}

func (b Backend) String() string {
	if b < 0 || int(b) >= len(backendNames) {
		return fmt.Sprintf("Backend(%d)", int(b))
	}
	return backendNames[b]
}

// Backends lists all persistence methods.
func Backends() []Backend {
	return []Backend{FatNode, PathCopy, BoundedCopy}
}

// ParseBackend finds a backend by name, ignoring case and dashes
// ("bounded-copy" is accepted as well as "boundedcopy").
func ParseBackend(name string) (Backend, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "")
	for i, n := range backendNames {
		if n == key {
			return Backend(i), nil
		}
	}
	return FatNode, fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, name)
}

func (b Backend) newStore() avl.Store {
	switch b {
	case PathCopy:
		return pathcopy.New()
	case BoundedCopy:
		return boundedcopy.New()
	}
	return fatnode.New()
}

// Config configures a persistent tree.
type Config[T any] struct {
	// Backend selects the persistence method. The zero value is FatNode.
	Backend Backend
	// Compare defines the total order of items: negative if a < b, zero if
	// a == b, positive if a > b.
	Compare func(a, b T) int
}

func (cfg Config[T]) normalized() Config[T] {
	return cfg
}

func (cfg Config[T]) validate() error {
	cfg = cfg.normalized()
	if cfg.Compare == nil {
		return fmt.Errorf("%w: compare function is required", ErrInvalidConfig)
	}
	if cfg.Backend < FatNode || cfg.Backend > BoundedCopy {
		return fmt.Errorf("%w: unknown backend %d", ErrInvalidConfig, int(cfg.Backend))
	}
	return nil
}
