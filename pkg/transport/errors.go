package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Kind classifies a failed call so callers can decide on manual retry.
type Kind string

const (
	// KindNetwork covers DNS, connect, timeout and cancellation failures.
	KindNetwork Kind = "network_error"

	// KindHTTPStatus is a non-2xx answer from the remote service.
	KindHTTPStatus Kind = "http_status"

	// KindProtocolFault is a fault reported by the structured (SOAP) transport.
	KindProtocolFault Kind = "protocol_fault"

	// KindMalformedResponse is a response that cannot be mapped onto the schema.
	KindMalformedResponse Kind = "malformed_response"
)

// Error is the only failure type returned by Client.Call.
type Error struct {
	Kind      Kind
	Operation string
	Message   string

	// StatusCode is the HTTP status, zero when no response was received.
	StatusCode int

	// Fault is the remote fault string for KindProtocolFault.
	Fault string

	// LastRequest and LastResponse hold the exchanged payloads of a failed
	// structured call, with credentials redacted.
	LastRequest  string
	LastResponse string

	Cause error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s (status %d): %s", e.Operation, e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Operation, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) IsKind(k Kind) bool {
	return e.Kind == k
}

// Timeout reports whether the failure was a deadline or dial timeout.
func (e *Error) Timeout() bool {
	if e.Kind != KindNetwork {
		return false
	}
	if errors.Is(e.Cause, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Cause, &netErr) && netErr.Timeout()
}

// Retryable reports whether repeating the same call could succeed. It says
// nothing about whether repeating is safe: that depends on the operation.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindNetwork:
		return !errors.Is(e.Cause, context.Canceled)
	case KindHTTPStatus:
		return e.StatusCode >= 500 || e.StatusCode == 429 || e.StatusCode == 408
	}
	return false
}

func AsError(err error) (*Error, bool) {
	var tErr *Error
	ok := errors.As(err, &tErr)
	return tErr, ok
}

// IsKind reports whether err is a transport Error of kind k.
func IsKind(err error, k Kind) bool {
	tErr, ok := AsError(err)
	return ok && tErr.Kind == k
}

func networkError(op string, err error) *Error {
	msg := "request failed"
	switch {
	case errors.Is(err, context.Canceled):
		msg = "request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		msg = "request deadline exceeded"
	default:
		var netErr net.Error
		var opErr *net.OpError
		var dnsErr *net.DNSError
		switch {
		case errors.As(err, &dnsErr):
			msg = fmt.Sprintf("dns lookup failed for %s", dnsErr.Name)
		case errors.As(err, &netErr) && netErr.Timeout():
			msg = "request timeout"
		case errors.As(err, &opErr):
			msg = fmt.Sprintf("connection error: %s", opErr.Op)
		}
	}

	// url.Error repeats the full URL; the cause is kept for errors.Is/As.
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}

	return &Error{
		Kind:      KindNetwork,
		Operation: op,
		Message:   msg,
		Cause:     err,
	}
}

func statusError(op string, status int, body []byte) *Error {
	msg := fmt.Sprintf("remote service returned HTTP %d", status)
	if len(body) > 0 && len(body) < 500 {
		msg = fmt.Sprintf("%s: %s", msg, string(body))
	}
	return &Error{
		Kind:       KindHTTPStatus,
		Operation:  op,
		Message:    msg,
		StatusCode: status,
	}
}

func malformedError(op, msg string, cause error) *Error {
	return &Error{
		Kind:      KindMalformedResponse,
		Operation: op,
		Message:   msg,
		Cause:     cause,
	}
}
