package pager

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported is returned (wrapped in a PreconditionError) when the
	// handle cannot perform the requested dispatch call.
	ErrUnsupported = errors.New("pager: operation not supported by handle")
	// ErrNoChannel is returned (wrapped in a PreconditionError) by Send when
	// the handle has no channel to send into.
	ErrNoChannel = errors.New("pager: handle has no channel")
	// ErrInvalidLimit is returned by Ready when the page size is not positive.
	ErrInvalidLimit = errors.New("pager: limit must be > 0")
)

// ConfigurationError reports a paginator built from an unusable handle.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "pager: invalid configuration: " + e.Reason
}

// PreconditionError reports a dispatch method that does not match the
// capabilities or state of the triggering handle.
type PreconditionError struct {
	Op  string
	Err error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("pager: %s: %v", e.Op, e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }
