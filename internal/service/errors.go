package service

import "errors"

var (
	// ErrForbidden is returned when the requester is not authorized for the
	// attempted mutation (e.g. a status update by a non-assignee).
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned for malformed requests the core cannot
	// delegate to the caller's validation layer.
	ErrInvalidInput = errors.New("invalid input")
)
