package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/beevik/etree"
)

const (
	nsSOAPEnv = "http://schemas.xmlsoap.org/soap/envelope/"
	nsXSI     = "http://www.w3.org/2001/XMLSchema-instance"
	nsXSD     = "http://www.w3.org/2001/XMLSchema"

	// DefaultSOAPNamespace is the target namespace of the remote web services.
	DefaultSOAPNamespace = "http://greenbyphone.com/"

	redacted = "REDACTED"
)

// SOAPTransport sends the payload as a SOAP 1.1 call to the family endpoint
// and unwraps the single result object of the response envelope.
type SOAPTransport struct {
	client    *http.Client
	namespace string
}

func NewSOAPTransport(client *http.Client, namespace string) *SOAPTransport {
	if client == nil {
		client = NewHTTPClient(Timeouts{})
	}
	if namespace == "" {
		namespace = DefaultSOAPNamespace
	}
	return &SOAPTransport{client: client, namespace: namespace}
}

func (t *SOAPTransport) Name() string { return "soap" }

// Action returns the SOAPAction header value for an operation.
func (t *SOAPTransport) Action(op string) string {
	if strings.HasSuffix(t.namespace, "/") {
		return t.namespace + op
	}
	return t.namespace + "/" + op
}

func (t *SOAPTransport) Execute(ctx context.Context, p *Payload) (*RawResponse, error) {
	op := p.Operation.Name

	doc := t.buildEnvelope(p)
	envelope, err := doc.WriteToBytes()
	if err != nil {
		return nil, &Error{Kind: KindProtocolFault, Operation: op, Message: "could not encode envelope", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, bytes.NewReader(envelope))
	if err != nil {
		return nil, networkError(op, err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", `"`+t.Action(op)+`"`)
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

	respDoc := etree.NewDocument()
	parseErr := respDoc.ReadFromBytes(data)

	// ASMX answers faults with HTTP 500, so look for one before the status.
	if parseErr == nil {
		if fault := respDoc.FindElement("//*[local-name()='Fault']"); fault != nil {
			reason := faultString(fault)
			return nil, &Error{
				Kind:         KindProtocolFault,
				Operation:    op,
				Message:      fmt.Sprintf("remote fault: %s", reason),
				StatusCode:   resp.StatusCode,
				Fault:        reason,
				LastRequest:  redactEnvelope(doc),
				LastResponse: string(data),
			}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(op, resp.StatusCode, data)
	}

	if parseErr != nil {
		return nil, &Error{
			Kind:         KindMalformedResponse,
			Operation:    op,
			Message:      "response is not a valid envelope",
			LastRequest:  redactEnvelope(doc),
			LastResponse: string(data),
			Cause:        parseErr,
		}
	}

	fields, err := unwrapResult(respDoc)
	if err != nil {
		return nil, &Error{
			Kind:         KindMalformedResponse,
			Operation:    op,
			Message:      err.Error(),
			LastRequest:  redactEnvelope(doc),
			LastResponse: string(data),
		}
	}

	return &RawResponse{
		Fields:     fields,
		Structured: true,
		StatusCode: resp.StatusCode,
	}, nil
}

// buildEnvelope writes the payload fields, in order, as children of the
// operation element. Delimited output is switched off: a structured call
// must be answered with an XML object.
func (t *SOAPTransport) buildEnvelope(p *Payload) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	env := doc.CreateElement("soap:Envelope")
	env.CreateAttr("xmlns:xsi", nsXSI)
	env.CreateAttr("xmlns:xsd", nsXSD)
	env.CreateAttr("xmlns:soap", nsSOAPEnv)

	body := env.CreateElement("soap:Body")
	call := body.CreateElement(p.Operation.Name)
	call.CreateAttr("xmlns", t.namespace)

	for _, name := range p.Fields.Names() {
		value, _ := p.Fields.Get(name)
		if name == FieldDelimData {
			value = ""
		}
		call.CreateElement(name).SetText(value)
	}
	return doc
}

func redactEnvelope(doc *etree.Document) string {
	c := doc.Copy()
	for _, el := range c.FindElements("//" + FieldAPIPassword) {
		el.SetText(redacted)
	}
	s, err := c.WriteToString()
	if err != nil {
		return ""
	}
	return s
}

func faultString(fault *etree.Element) string {
	// SOAP 1.1 faultstring, then SOAP 1.2 Reason/Text.
	if el := fault.FindElement("./*[local-name()='faultstring']"); el != nil {
		return strings.TrimSpace(el.Text())
	}
	if el := fault.FindElement(".//*[local-name()='Reason']/*[local-name()='Text']"); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return "unknown fault"
}

// unwrapResult takes Body/{Op}Response/{Op}Result and returns the result
// object's child elements in document order.
func unwrapResult(doc *etree.Document) ([]Field, error) {
	body := doc.FindElement("//*[local-name()='Body']")
	if body == nil {
		return nil, fmt.Errorf("envelope has no body")
	}
	wrappers := body.ChildElements()
	if len(wrappers) == 0 {
		return nil, fmt.Errorf("envelope body is empty")
	}
	results := wrappers[0].ChildElements()
	if len(results) == 0 {
		return nil, fmt.Errorf("%s has no result object", wrappers[0].Tag)
	}

	children := results[0].ChildElements()
	fields := make([]Field, 0, len(children))
	for _, ch := range children {
		fields = append(fields, Field{Name: ch.Tag, Value: strings.TrimSpace(ch.Text())})
	}
	return fields, nil
}

// unwrapXMLString returns the text of a response wrapped in a single XML
// element (<string>...</string>), or s unchanged when it is plain text. A
// root with child elements (an HTML page, a SOAP envelope) is not a
// delimited answer.
func unwrapXMLString(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "<") {
		return strings.Trim(s, "\r\n"), nil
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(trimmed); err != nil || doc.Root() == nil {
		return strings.Trim(s, "\r\n"), nil
	}
	root := doc.Root()
	if len(root.ChildElements()) > 0 {
		return "", fmt.Errorf("expected delimited text, got <%s> with child elements", root.Tag)
	}
	return root.Text(), nil
}
