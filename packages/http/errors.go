package http

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed request.
type ErrorKind int

const (
	// KindRequestFailed covers non-2xx responses without a more specific kind and
	// transport I/O failures.
	KindRequestFailed ErrorKind = iota
	// KindUnauthorized is a 401 response.
	KindUnauthorized
	// KindMalformedData means the server could not parse the submitted data or query.
	KindMalformedData
	// KindUnsupportedFormat means the server rejected the data or result format.
	KindUnsupportedFormat
	// KindProtocol is a client-side mismatch between expected and actual response type.
	KindProtocol
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindMalformedData:
		return "malformed data"
	case KindUnsupportedFormat:
		return "unsupported format"
	case KindProtocol:
		return "protocol error"
	default:
		return "request failed"
	}
}

// Sentinels for errors.Is. Every *Error matches exactly one of them.
var (
	ErrRequestFailed     = errors.New("request failed")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrMalformedData     = errors.New("malformed data")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrProtocol          = errors.New("protocol error")

	// ErrClientClosed is wrapped by requests issued after Close.
	ErrClientClosed = errors.New("client is closed")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindUnauthorized:
		return ErrUnauthorized
	case KindMalformedData:
		return ErrMalformedData
	case KindUnsupportedFormat:
		return ErrUnsupportedFormat
	case KindProtocol:
		return ErrProtocol
	default:
		return ErrRequestFailed
	}
}

// Error is returned by every failed request.
type Error struct {
	Kind       ErrorKind
	Method     string
	URL        string
	StatusCode int // zero for transport and protocol errors
	Message    string
	Info       *ErrorInfo // parsed server error body, if any
	Err        error      // underlying cause, if any
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
	case e.Err != nil && e.Message == "":
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.URL, e.Kind, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.URL, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Message)
	}
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or false if err is not an *Error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func protocolErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindProtocol, Message: fmt.Sprintf(format, args...)}
}
