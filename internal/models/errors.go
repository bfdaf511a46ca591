package models

import "errors"

// ErrNotFound is returned by repositories when a lookup, update, or delete
// targets a row that does not exist.
var ErrNotFound = errors.New("not found")
