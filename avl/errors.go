package avl

import "errors"

// ErrCorrupted signals a violated tree invariant.
var ErrCorrupted = errors.New("avl: tree invariant violated")
