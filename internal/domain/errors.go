package domain

import "errors"

// Sentinel errors used throughout the application.
var (
	ErrNotFound           = errors.New("not found")
	ErrMissingOperation   = errors.New("payload is missing required field: operation")
	ErrMissingNodeID      = errors.New("payload is missing required field: node_id")
	ErrMissingContentType = errors.New("payload is missing required field: content_type")
	ErrInvalidOperation   = errors.New("operation must be sync or delete")

	// ErrSuspended is the explicit backpressure signal. It is the only
	// failure that halts a batch and returns the current job to the queue;
	// every other error drops the job after one attempt.
	ErrSuspended = errors.New("queue processing suspended")
)
