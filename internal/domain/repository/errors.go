package repository

import "errors"

// ErrNotFound is returned by lookups that address a record by identity and
// find nothing.
var ErrNotFound = errors.New("record not found")
