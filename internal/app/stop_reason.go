package app

import (
	"context"
	"errors"
)

// ErrCanceled is returned by Run when the user cancels the account prompt.
var ErrCanceled = errors.New("selection canceled")

// StopReason classifies why Run returned.
type StopReason int

const (
	StopUnknown StopReason = iota
	StopSignal
	StopCanceled
	StopFatalError
)

func (r StopReason) String() string {
	switch r {
	case StopSignal:
		return "signal"
	case StopCanceled:
		return "canceled"
	case StopFatalError:
		return "fatal_error"
	default:
		return "unknown"
	}
}

// ReasonFor maps the error returned by Run to a StopReason.
func ReasonFor(err error) StopReason {
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return StopSignal
	case errors.Is(err, ErrCanceled):
		return StopCanceled
	default:
		return StopFatalError
	}
}

// Graceful reports whether the process should exit with status 0.
func (r StopReason) Graceful() bool { return r == StopSignal || r == StopCanceled }
