package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when request validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable is returned when the search collaborator cannot be reached.
	ErrUnavailable = errors.New("search backend unavailable")
	// ErrUpstream is returned when an embedding, rerank, or generation call fails.
	ErrUpstream = errors.New("upstream service error")
	// ErrUpstreamTimeout is returned when an upstream call exceeds its deadline.
	ErrUpstreamTimeout = errors.New("upstream timeout")
)

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
