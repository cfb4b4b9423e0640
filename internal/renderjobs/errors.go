package renderjobs

import "errors"

var (
	// ErrNotFound is returned when a job ID does not exist.
	ErrNotFound = errors.New("render job not found")
	// ErrInvalidTransition is returned for a status change the lifecycle
	// does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")
)
