package scheduler

import "errors"

const Namespace = "scheduler"

var (
	// ErrInvalidWorkerCount is returned by New when threadsCount < 1.
	// Per spec.md §7, this is an unrecoverable error detected synchronously
	// at construction.
	ErrInvalidWorkerCount = errors.New(Namespace + ": threads count must be >= 1")
)
