package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config fixes everything a Client needs at construction. None of it
// changes afterwards.
type Config struct {
	Family      Family
	Environment Environment
	Credentials Credentials

	// BaseURL replaces the resolved endpoint, e.g. for a test server or proxy.
	BaseURL string

	ConnectTimeout time.Duration
	RequestTimeout time.Duration

	// Delimiter requested from the remote service; DefaultDelimiter if empty.
	Delimiter string

	// SOAPNamespace of the structured transport; DefaultSOAPNamespace if empty.
	SOAPNamespace string

	// HTTPClient overrides the client built from the timeouts.
	HTTPClient *http.Client

	Logger      *slog.Logger
	RateLimiter RateLimiter

	// Middleware wraps both transports, outermost first.
	Middleware []Middleware
}

// Client sends operations of one API family. It is safe for concurrent use.
type Client struct {
	family    Family
	endpoint  string
	creds     Credentials
	delimiter string
	form      Transport
	soap      Transport
	limiter   RateLimiter
	logger    *slog.Logger
}

func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Credentials.Validate(); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}

	endpoint, err := Resolve(cfg.Family, cfg.Environment)
	if err != nil {
		return nil, err
	}
	if cfg.BaseURL != "" {
		endpoint = strings.TrimRight(cfg.BaseURL, "/")
	}

	delimiter := cfg.Delimiter
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = NewHTTPClient(Timeouts{Connect: cfg.ConnectTimeout, Request: cfg.RequestTimeout})
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var form Transport = NewFormTransport(httpClient)
	var soap Transport = NewSOAPTransport(httpClient, cfg.SOAPNamespace)
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		form = cfg.Middleware[i](form)
		soap = cfg.Middleware[i](soap)
	}

	return &Client{
		family:    cfg.Family,
		endpoint:  endpoint,
		creds:     cfg.Credentials,
		delimiter: delimiter,
		form:      form,
		soap:      soap,
		limiter:   cfg.RateLimiter,
		logger:    logger.With("family", cfg.Family.String()),
	}, nil
}

func (c *Client) Endpoint() string { return c.endpoint }

func (c *Client) Delimiter() string { return c.delimiter }

// Call assembles op with fields, sends it over the transport the operation
// needs and decodes the answer onto schema. Every failure is an *Error.
func (c *Client) Call(ctx context.Context, op Operation, fields *Fields, schema Schema) (Result, error) {
	requestID := uuid.NewString()
	t := c.transportFor(op)
	log := c.logger.With(
		"operation", op.Name,
		"transport", t.Name(),
		"request_id", requestID,
	)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			log.Debug("rate limit wait aborted", "error", err)
			return nil, networkError(op.Name, err)
		}
	}

	payload := Assemble(c.endpoint, op, fields, c.creds, c.delimiter)

	start := time.Now()
	raw, err := t.Execute(WithRequestID(ctx, requestID), payload)
	if err != nil {
		tErr, ok := AsError(err)
		if !ok {
			tErr = networkError(op.Name, err)
		}
		log.Debug("remote call failed",
			"kind", string(tErr.Kind),
			"status", tErr.StatusCode,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, tErr
	}

	result, err := Decode(op.Name, raw, c.delimiter, schema)
	if err != nil {
		log.Debug("remote response rejected", "error", err)
		return nil, err
	}

	log.Debug("remote call completed", "duration_ms", time.Since(start).Milliseconds())
	return result, nil
}

func (c *Client) transportFor(op Operation) Transport {
	if op.Attachment {
		return c.soap
	}
	return c.form
}

type requestIDKey struct{}

// WithRequestID stores the per-call id for middleware.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the per-call id set by Client.Call, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
