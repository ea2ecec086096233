// Package store persists matches, event logs, property verdicts and
// possession vectors in Postgres via pgx.
package store

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)
