// Package transport is the request/response core of the client: it resolves
// endpoints, assembles the flat field payload every remote operation takes,
// sends it over form POST or SOAP, and maps the positional response back
// onto a caller-declared schema.
//
// Every failure leaving this package is an *Error; the underlying HTTP or
// XML library errors are only reachable through Unwrap.
package transport

import (
	"context"
	"net"
	"net/http"
	"time"
)

// Transport executes one assembled payload against the remote service.
// Implementations must be safe for concurrent use and must not retry.
type Transport interface {
	Execute(ctx context.Context, p *Payload) (*RawResponse, error)

	// Name returns the transport identifier ("form", "soap").
	Name() string
}

// Middleware decorates a Transport, e.g. with tracing or metrics.
type Middleware func(Transport) Transport

// Field is one named value of a structured response, in document order.
type Field struct {
	Name  string
	Value string
}

// RawResponse is either a delimited string (form transport) or the ordered
// fields of the single result object (SOAP transport).
type RawResponse struct {
	Text       string
	Fields     []Field
	Structured bool
	StatusCode int
}

// Timeouts bound a single round trip.
type Timeouts struct {
	// Connect bounds connection establishment (dial + TLS handshake).
	Connect time.Duration

	// Request bounds the whole exchange including reading the body.
	Request time.Duration
}

const (
	DefaultConnectTimeout = 3 * time.Second
	DefaultRequestTimeout = 30 * time.Second
)

func (t Timeouts) withDefaults() Timeouts {
	if t.Connect <= 0 {
		t.Connect = DefaultConnectTimeout
	}
	if t.Request <= 0 {
		t.Request = DefaultRequestTimeout
	}
	return t
}

// NewHTTPClient returns an http.Client whose dial and TLS handshake are
// bounded by the connect timeout and whose whole request is bounded by the
// request timeout.
func NewHTTPClient(t Timeouts) *http.Client {
	t = t.withDefaults()
	return &http.Client{
		Timeout: t.Request,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   t.Connect,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   t.Connect,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}
