package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row. Callers decide
// whether absence is an error (alert lookups) or a permissive default
// (zone rules, zone costs).
var ErrNotFound = errors.New("not found")
