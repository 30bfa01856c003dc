package transport

import (
	"context"
	"io"
	"net/http"
	"strings"
)

const userAgent = "greenmoney-go/1.0"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// FormTransport posts the payload form-encoded to {endpoint}/{operation}
// and returns the delimited response text.
type FormTransport struct {
	client *http.Client
}

// NewFormTransport uses client as is; pass NewHTTPClient for bounded timeouts.
func NewFormTransport(client *http.Client) *FormTransport {
	if client == nil {
		client = NewHTTPClient(Timeouts{})
	}
	return &FormTransport{client: client}
}

func (t *FormTransport) Name() string { return "form" }

func (t *FormTransport) Execute(ctx context.Context, p *Payload) (*RawResponse, error) {
	op := p.Operation.Name
	body := p.Fields.Values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, strings.NewReader(body))
	if err != nil {
		return nil, networkError(op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, networkError(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, networkError(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(op, resp.StatusCode, data)
	}

	text, err := unwrapXMLString(string(data))
	if err != nil {
		return nil, malformedError(op, err.Error(), err)
	}

	return &RawResponse{
		Text:       text,
		StatusCode: resp.StatusCode,
	}, nil
}
