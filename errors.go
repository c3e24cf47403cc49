package wallet

import (
	"errors"
	"fmt"
)

// Sentinel errors raised by the record store. Operations wrap them with
// context, so callers test with errors.Is.
var (
	// ErrStorageUnavailable reports that the wallet directory cannot be
	// opened or written. It is fatal to the current operation and always
	// propagates to the caller.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrCollectionNotFound reports a collection name outside the wallet schema.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrRecordNotFound reports a record id absent from its collection.
	ErrRecordNotFound = errors.New("record not found")
)

// ValidationError rejects a user-supplied value before any write happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ParseError reports a malformed import stream. The whole import is aborted
// before any write is attempted.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("cannot parse backup: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// PartialRestoreError reports a restore or import that failed after some
// collections were already written. Earlier collections stay restored (no
// rollback); Collection names the first one that failed so the caller can
// retry from there.
type PartialRestoreError struct {
	Collection string
	Err        error
}

func (e *PartialRestoreError) Error() string {
	return fmt.Sprintf("restore failed on collection %q: %v", e.Collection, e.Err)
}

func (e *PartialRestoreError) Unwrap() error { return e.Err }
