package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness
// constraint. The database constraint is the authority on uniqueness;
// any handler-level existence pre-check is only a fast path.
var ErrDuplicate = errors.New("duplicate record")
