// Package common defines sentinel errors shared by the store, the services
// and the remote client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrNotFound is returned when a point lookup has no matching row or
	// remote record.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable wraps every failure of the local database
	// (disk full, corruption, closed handle).
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrEntryPublished is returned when a caller tries to edit or re-publish
	// an entry that has already been published.
	ErrEntryPublished = errors.New("entry already published")

	// ErrInvalidArgument flags a rejected input value.
	ErrInvalidArgument = errors.New("invalid argument")
)
