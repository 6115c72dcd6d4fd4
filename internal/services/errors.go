package services

import "errors"

// Failure kinds surfaced by FileService. Callers match with errors.Is;
// the wrapping message carries the offending id or filename.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrStorageFailure  = errors.New("storage failure")
	ErrDeletionFailure = errors.New("deletion failure")
)
