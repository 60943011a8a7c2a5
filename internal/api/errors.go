// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// TransportError wraps a failure where the request never completed:
// unreachable host, timeout, or a response body that could not be decoded.
type TransportError struct {
	Op    string // operation that failed: "chat", "upload", "config"
	Cause error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return e.Op + ": " + e.Cause.Error()
	}
	return e.Op + ": transport failure"
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// StatusError reports that the server answered but signaled a non-success
// status in its payload.
type StatusError struct {
	Op     string
	Status string // the status string the server returned
}

func (e *StatusError) Error() string {
	return e.Op + ": server reported status " + e.Status
}

// IsTransport checks whether an error is a transport-level failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsApplication checks whether an error is an application-level failure
// (the server completed the request but reported non-success).
func IsApplication(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// IsTimeout checks whether a transport failure was caused by a timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}
