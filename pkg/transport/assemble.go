package transport

import "errors"

// Reserved field names understood by every remote operation.
const (
	FieldClientID    = "Client_ID"
	FieldAPIPassword = "ApiPassword"
	FieldDelimData   = "x_delim_data"
	FieldDelimChar   = "x_delim_char"
)

// DefaultDelimiter is the delimiter the library asks the remote service to use.
const DefaultDelimiter = ","

const delimDataTrue = "TRUE"

// Credentials authenticate every outbound request. Never log them.
type Credentials struct {
	ClientID    string
	APIPassword string
}

func (c Credentials) Validate() error {
	if c.ClientID == "" {
		return errors.New("client id is required")
	}
	if c.APIPassword == "" {
		return errors.New("api password is required")
	}
	return nil
}

// String keeps the password out of logs and fmt output.
func (c Credentials) String() string {
	return "Credentials{ClientID: " + c.ClientID + ", APIPassword: REDACTED}"
}

// Operation names a remote method and the capabilities it needs.
type Operation struct {
	Name string

	// Attachment is set for operations carrying a base64 binary payload;
	// they go over the structured (SOAP) transport.
	Attachment bool

	// ReadOnly marks lookups that are safe to repeat.
	ReadOnly bool
}

// Payload is an assembled outbound request.
type Payload struct {
	Operation Operation
	Endpoint  string
	URL       string
	Fields    *Fields
	Delimiter string
}

// Assemble builds the outbound payload for op. The caller's fields are not
// modified. Credentials are injected only when the caller did not supply
// them, and delimited output is always requested with delimiter.
func Assemble(endpoint string, op Operation, fields *Fields, creds Credentials, delimiter string) *Payload {
	out := fields.Clone()
	if !out.Has(FieldClientID) {
		out.Set(FieldClientID, creds.ClientID)
	}
	if !out.Has(FieldAPIPassword) {
		out.Set(FieldAPIPassword, creds.APIPassword)
	}
	out.Set(FieldDelimData, delimDataTrue)
	out.Set(FieldDelimChar, delimiter)

	return &Payload{
		Operation: op,
		Endpoint:  endpoint,
		URL:       endpoint + "/" + op.Name,
		Fields:    out,
		Delimiter: delimiter,
	}
}
