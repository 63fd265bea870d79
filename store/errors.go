package store

import "errors"

// ErrNotFound reports that a targeted user or post does not exist for the caller.
var ErrNotFound = errors.New("record not found")
