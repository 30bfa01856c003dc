package echeck

import (
	"context"

	"github.com/greenlyst/greenmoney/pkg/model"
	"github.com/greenlyst/greenmoney/pkg/transport"
)

// SingleBillPay sends a check to payee, deposited into the given account.
func (c *Client) SingleBillPay(ctx context.Context, payee model.Party, bank model.BankAccount, check model.Check) (transport.Result, error) {
	return c.send(ctx, opBillPayCheck, BillPaySchema, payee, bank, check)
}

// SingleBillPayWithoutBank mails a paper check to the payee's address.
func (c *Client) SingleBillPayWithoutBank(ctx context.Context, payee model.Party, check model.Check) (transport.Result, error) {
	return c.send(ctx, opBillPayCheckNoBankInfo, BillPaySchema, payee, check)
}

func (c *Client) RecurringBillPay(ctx context.Context, payee model.Party, bank model.BankAccount, check model.Check, recurring model.Recurring) (transport.Result, error) {
	if err := recurring.Validate(); err != nil {
		return nil, err
	}
	return c.send(ctx, opRecurringBillPayCheck, BillPaySchema, payee, bank, check, recurring)
}
