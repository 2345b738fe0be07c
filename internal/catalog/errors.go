package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound signals an update/remove against an unknown entry ID. Callers
// routinely probe for existence, so this is an expected condition.
var ErrNotFound = errors.New("entry not found")

// FormatError reports a malformed import payload. No partial import is
// performed when it is returned.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("import format: %s: %v", e.Reason, e.Err)
	}
	return "import format: " + e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

// StorageError reports a persistence write failure. The in-memory document
// is retained, so a later Commit can retry the save.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("catalog storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
