package repository

import "errors"

// ErrNotFound is returned by repositories when the requested row does not
// exist. Callers distinguish it from storage failures with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness
// constraint (currently only users.username).
var ErrDuplicate = errors.New("duplicate")
