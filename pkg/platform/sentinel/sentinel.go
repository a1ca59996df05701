// Package sentinel holds the shared infrastructure sentinels that store
// packages wrap into their own errors. Services match with errors.Is and
// translate to domain errors at the boundary; validation failures never
// use these.
package sentinel

import "errors"

var (
	// ErrNotFound: the entity does not exist in the store. Wrapped by the
	// artifact and progress stores so callers can match either the
	// store-level error or this sentinel.
	ErrNotFound = errors.New("not found")
)
