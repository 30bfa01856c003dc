package echeck

import (
	"context"

	"github.com/greenlyst/greenmoney/pkg/model"
	"github.com/greenlyst/greenmoney/pkg/transport"
)

// SingleInvoice emails the payor an invoice for a one-time draft.
func (c *Client) SingleInvoice(ctx context.Context, invoice model.Invoice) (transport.Result, error) {
	return c.send(ctx, opOneTimeInvoice, InvoiceSchema, invoice)
}

func (c *Client) RecurringInvoice(ctx context.Context, invoice model.Invoice, recurring model.Recurring) (transport.Result, error) {
	if err := recurring.Validate(); err != nil {
		return nil, err
	}
	return c.send(ctx, opRecurringInvoice, InvoiceSchema, invoice, recurring)
}

// CombinationInvoice invoices an initial amount and a recurring amount in
// one request.
func (c *Client) CombinationInvoice(ctx context.Context, invoice model.CombinationInvoice, recurring model.Recurring) (transport.Result, error) {
	if err := recurring.Validate(); err != nil {
		return nil, err
	}
	return c.send(ctx, opCombinationInvoice, InvoiceSchema, invoice, recurring)
}

func (c *Client) InvoiceStatus(ctx context.Context, id string) (transport.Result, error) {
	if err := requireID("Invoice_ID", id); err != nil {
		return nil, err
	}
	return c.send(ctx, opInvoiceStatus, InvoiceSchema, transport.FieldsOf("Invoice_ID", id))
}
