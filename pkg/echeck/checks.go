package echeck

import (
	"context"

	"github.com/greenlyst/greenmoney/pkg/model"
	"github.com/greenlyst/greenmoney/pkg/transport"
)

// SingleCheck enters a one-time draft. With realtime set the bank account
// is verified in real time (RTV), otherwise in batch (BV).
func (c *Client) SingleCheck(ctx context.Context, customer model.Party, bank model.BankAccount, check model.Check, realtime bool) (transport.Result, error) {
	op := opOneTimeDraftBV
	if realtime {
		op = opOneTimeDraftRTV
	}
	return c.send(ctx, op, DraftSchema, customer, bank, check)
}

// RecurringCheck enters a series of drafts. Cancelling the returned
// Check_ID cancels the whole series.
func (c *Client) RecurringCheck(ctx context.Context, customer model.Party, bank model.BankAccount, check model.Check, recurring model.Recurring, realtime bool) (transport.Result, error) {
	if err := recurring.Validate(); err != nil {
		return nil, err
	}
	op := opRecurringDraftBV
	if realtime {
		op = opRecurringDraftRTV
	}
	return c.send(ctx, op, DraftSchema, customer, bank, check, recurring)
}

// SingleCheckWithSignature enters a one-time draft together with a jpeg of
// the customer's signature.
func (c *Client) SingleCheckWithSignature(ctx context.Context, customer model.Party, bank model.BankAccount, check model.Check, image []byte) (transport.Result, error) {
	img, err := imageData(image)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, opOneTimeDraftWithSignatureImage, DraftSchema, customer, bank, check, img)
}

func (c *Client) RecurringCheckWithSignature(ctx context.Context, customer model.Party, bank model.BankAccount, check model.Check, recurring model.Recurring, image []byte) (transport.Result, error) {
	if err := recurring.Validate(); err != nil {
		return nil, err
	}
	img, err := imageData(image)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, opRecurringDraftWithSignatureImage, DraftSchema, customer, bank, check, recurring, img)
}

func (c *Client) CheckStatus(ctx context.Context, id string) (transport.Result, error) {
	if err := requireID("Check_ID", id); err != nil {
		return nil, err
	}
	return c.send(ctx, opCheckStatus, CheckStatusSchema, checkID(id))
}

// CancelCheck cancels a check that has not been processed yet.
func (c *Client) CancelCheck(ctx context.Context, id string) (transport.Result, error) {
	if err := requireID("Check_ID", id); err != nil {
		return nil, err
	}
	return c.send(ctx, opCancelCheck, StatusSchema, checkID(id))
}

// RefundCheck issues a refund of amount against a processed check.
func (c *Client) RefundCheck(ctx context.Context, id, memo, amount string) (transport.Result, error) {
	if err := requireID("Check_ID", id); err != nil {
		return nil, err
	}
	if amount == "" {
		return nil, model.NewMissingRequiredFieldError("RefundAmount")
	}
	return c.send(ctx, opRefundCheck, RefundSchema,
		checkID(id),
		transport.FieldsOf("RefundMemo", memo, "RefundAmount", amount),
	)
}

// CheckNote attaches a note to a check. Notes longer than MaxNoteLength
// characters are truncated.
func (c *Client) CheckNote(ctx context.Context, id, note string) (transport.Result, error) {
	if err := requireID("Check_ID", id); err != nil {
		return nil, err
	}
	return c.send(ctx, opCheckNote, StatusSchema,
		checkID(id),
		transport.FieldsOf("Note", truncateNote(note)),
	)
}

// UploadCheckSignature attaches a signature jpeg to an existing check.
func (c *Client) UploadCheckSignature(ctx context.Context, id string, image []byte) (transport.Result, error) {
	if err := requireID("Check_ID", id); err != nil {
		return nil, err
	}
	img, err := imageData(image)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, opUploadSignatureImage, StatusSchema, checkID(id), img)
}

func (c *Client) VerificationResult(ctx context.Context, id string) (transport.Result, error) {
	if err := requireID("Check_ID", id); err != nil {
		return nil, err
	}
	return c.send(ctx, opVerificationResult, DraftSchema, checkID(id))
}

// OverrideVerification accepts a check that verification flagged as risky
// with an overridable response code.
func (c *Client) OverrideVerification(ctx context.Context, id string) (transport.Result, error) {
	if err := requireID("Check_ID", id); err != nil {
		return nil, err
	}
	return c.send(ctx, opVerificationOverride, DraftSchema, checkID(id))
}
