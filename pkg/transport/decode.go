package transport

import (
	"fmt"
	"strings"
)

// Schema is the documented, ordered list of result field names of one
// operation. It is a contract with the remote service, not validated by it.
type Schema []string

// Result maps schema names to the values the remote service returned.
type Result map[string]string

// Get returns the value for name, or "" when absent.
func (r Result) Get(name string) string {
	return r[name]
}

// Decode maps raw onto schema positionally. A response with fewer values
// than the schema fails with KindMalformedResponse; extra trailing values
// are dropped.
func Decode(op string, raw *RawResponse, delimiter string, schema Schema) (Result, error) {
	if raw == nil {
		return nil, malformedError(op, "empty response", nil)
	}

	var values []string
	if raw.Structured {
		values = make([]string, len(raw.Fields))
		for i, f := range raw.Fields {
			values[i] = f.Value
		}
	} else {
		if delimiter == "" {
			return nil, malformedError(op, "no delimiter to split the response on", nil)
		}
		values = strings.Split(raw.Text, delimiter)
	}

	if len(values) < len(schema) {
		return nil, malformedError(op,
			fmt.Sprintf("response has %d values, schema expects %d", len(values), len(schema)), nil)
	}

	result := make(Result, len(schema))
	for i, name := range schema {
		result[name] = values[i]
	}
	return result, nil
}

// Format joins the result values in schema order. It is the delimited
// rendering for callers that want the raw-style string back.
func Format(result Result, schema Schema, delimiter string) string {
	values := make([]string, len(schema))
	for i, name := range schema {
		values[i] = result[name]
	}
	return strings.Join(values, delimiter)
}
