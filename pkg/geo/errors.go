package geo

import (
	"fmt"
)

// ErrorKind classifies a failure.
type ErrorKind string

const (
	// KindAuthFailure means no credentials could be obtained.
	KindAuthFailure ErrorKind = "AuthFailure"

	// KindMissingConfiguration means neither an override nor a configured
	// default resource name was available.
	KindMissingConfiguration ErrorKind = "MissingConfiguration"

	// KindInvalidOptions means a conflicting option combination was supplied.
	KindInvalidOptions ErrorKind = "InvalidOptions"

	// KindEmptyInput means a batch operation was called with no items.
	KindEmptyInput ErrorKind = "EmptyInput"

	// KindInvalidGeofenceID means one or more geofence IDs failed validation.
	KindInvalidGeofenceID ErrorKind = "InvalidGeofenceId"

	// KindInvalidPolygon means a geofence polygon failed validation.
	KindInvalidPolygon ErrorKind = "InvalidPolygon"

	// KindInvalidInput means a required scalar input (text, place ID) was empty.
	KindInvalidInput ErrorKind = "InvalidInput"

	// KindTransport wraps an error returned by the transport client.
	KindTransport ErrorKind = "TransportError"
)

// CodeAPIConnectionError is the per-item error code recorded for every item
// of a batch chunk whose transport call failed as a whole.
const CodeAPIConnectionError = "APIConnectionError"

// CodeSerializationError is the per-item error code recorded for every item
// of a batch chunk whose request or response could not be converted locally.
const CodeSerializationError = "SerializationError"

// Sentinels for errors.Is. Matching is by Kind only.
var (
	ErrNoCredentials        = &Error{Kind: KindAuthFailure, Message: "no credentials"}
	ErrMissingConfiguration = &Error{Kind: KindMissingConfiguration, Message: "missing configuration"}
	ErrInvalidOptions       = &Error{Kind: KindInvalidOptions, Message: "invalid options"}
	ErrEmptyInput           = &Error{Kind: KindEmptyInput, Message: "empty input"}
	ErrInvalidGeofenceID    = &Error{Kind: KindInvalidGeofenceID, Message: "invalid geofence id"}
	ErrInvalidPolygon       = &Error{Kind: KindInvalidPolygon, Message: "invalid polygon"}
	ErrInvalidInput         = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrTransport            = &Error{Kind: KindTransport, Message: "transport error"}
)

// Error is the single error type returned by this module.
type Error struct {
	Kind ErrorKind

	// Code is the provider error code, when known.
	Code string

	Message string

	// ID is the offending identifier (geofence ID, place ID), if any.
	ID string

	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Code != "" {
		msg = fmt.Sprintf("%s (code %s)", msg, e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewError builds an error of the given kind.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
