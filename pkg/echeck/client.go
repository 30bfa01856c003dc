// Package echeck is the check-processing API: one method per remote
// operation, each owning the operation name and result schema it sends.
package echeck

import (
	"context"
	"encoding/base64"

	"github.com/greenlyst/greenmoney/pkg/model"
	"github.com/greenlyst/greenmoney/pkg/transport"
)

//go:generate mockery --name=Caller --output=mocks --outpkg=mocks --with-expecter

// Caller sends one remote operation. *transport.Client implements it.
type Caller interface {
	Call(ctx context.Context, op transport.Operation, fields *transport.Fields, schema transport.Schema) (transport.Result, error)
}

// MaxNoteLength is the longest note the remote service stores.
const MaxNoteLength = 2000

type Client struct {
	caller Caller
}

func NewClient(caller Caller) *Client {
	return &Client{caller: caller}
}

func (c *Client) send(ctx context.Context, op transport.Operation, schema transport.Schema, sources ...transport.FieldSource) (transport.Result, error) {
	return c.caller.Call(ctx, op, transport.Merge(sources...), schema)
}

func requireID(field, id string) error {
	if id == "" {
		return model.NewMissingRequiredFieldError(field)
	}
	return nil
}

func checkID(id string) transport.FieldSource {
	return transport.FieldsOf("Check_ID", id)
}

func imageData(image []byte) (transport.FieldSource, error) {
	if len(image) == 0 {
		return nil, model.NewMissingRequiredFieldError("ImageData")
	}
	return transport.FieldsOf("ImageData", base64.StdEncoding.EncodeToString(image)), nil
}

// truncateNote cuts note to MaxNoteLength characters.
func truncateNote(note string) string {
	runes := []rune(note)
	if len(runes) <= MaxNoteLength {
		return note
	}
	return string(runes[:MaxNoteLength])
}
