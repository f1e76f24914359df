package db

import "errors"

// ErrNotFound is returned when an operation references a document that
// does not exist. Lookups that may legitimately miss (Get) return (nil, nil)
// instead; only mutating operations surface this error.
var ErrNotFound = errors.New("document not found")
