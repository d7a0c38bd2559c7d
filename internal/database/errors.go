package database

import "errors"

// ErrClipNotFound is returned when an attempt is made to retrieve
// or mutate a clip using an id that doesn't exist.
var ErrClipNotFound = errors.New("clip not found")
