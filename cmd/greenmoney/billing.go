package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/greenlyst/greenmoney/pkg/echeck"
	"github.com/greenlyst/greenmoney/pkg/model"
	"github.com/greenlyst/greenmoney/pkg/transport"
)

func newBillPayCommand(opts *rootOptions) *cobra.Command {
	var (
		payee    model.Party
		bank     model.BankAccount
		check    model.Check
		schedule recurringFlags
	)

	cmd := &cobra.Command{
		Use:   "billpay",
		Short: "Pay a payee by check",
		Long: `Pay a payee by check. With --routing and --account the payment is drafted
from that account; without them a paper check is mailed. A recurring bill
pay (--every) needs the bank account.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hasBank := cmd.Flags().Changed("routing")
			r := schedule.recurring(cmd)
			if r != nil && !hasBank {
				return errors.New("a recurring bill pay needs --routing and --account")
			}

			return withApp(cmd, opts, echeck.BillPaySchema, func(ctx context.Context, a *app) (transport.Result, error) {
				switch {
				case r != nil:
					return a.checks.RecurringBillPay(ctx, payee, bank, check, *r)
				case hasBank:
					return a.checks.SingleBillPay(ctx, payee, bank, check)
				default:
					return a.checks.SingleBillPayWithoutBank(ctx, payee, check)
				}
			})
		},
	}

	addPartyFlags(cmd, &payee)
	addBankFlags(cmd, &bank)
	addCheckFlags(cmd, &check)
	addRecurringFlags(cmd, &schedule)

	return cmd
}

func newInvoiceCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Email payment requests",
	}

	cmd.AddCommand(
		newInvoiceSingleCommand(opts),
		newInvoiceCombinationCommand(opts),
		&cobra.Command{
			Use:   "status <invoice-id>",
			Short: "Show the payment status of an invoice",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, echeck.InvoiceSchema, func(ctx context.Context, a *app) (transport.Result, error) {
					return a.checks.InvoiceStatus(ctx, args[0])
				})
			},
		},
	)

	return cmd
}

func addInvoiceFlags(cmd *cobra.Command, payor, email, item, description *string) {
	f := cmd.Flags()
	f.StringVar(payor, "payor", "", "Name of the payor")
	f.StringVar(email, "email", "", "Email address the invoice is sent to")
	f.StringVar(item, "item", "", "Item name")
	f.StringVar(description, "description", "", "Item description")
	_ = cmd.MarkFlagRequired("payor")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("item")
}

// newInvoiceSingleCommand sends a one-time invoice, or a recurring one
// when --every is given.
func newInvoiceSingleCommand(opts *rootOptions) *cobra.Command {
	var (
		invoice  model.Invoice
		schedule recurringFlags
	)

	cmd := &cobra.Command{
		Use:   "single",
		Short: "Send a one-time or recurring invoice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, echeck.InvoiceSchema, func(ctx context.Context, a *app) (transport.Result, error) {
				if r := schedule.recurring(cmd); r != nil {
					return a.checks.RecurringInvoice(ctx, invoice, *r)
				}
				return a.checks.SingleInvoice(ctx, invoice)
			})
		},
	}

	addInvoiceFlags(cmd, &invoice.PayorName, &invoice.EmailAddress, &invoice.ItemName, &invoice.ItemDescription)
	cmd.Flags().StringVar(&invoice.Amount, "amount", "", "Amount due")
	cmd.Flags().StringVar(&invoice.PaymentDate, "payment-date", "", "Payment date, MM/DD/YYYY")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("payment-date")
	addRecurringFlags(cmd, &schedule)

	return cmd
}

func newInvoiceCombinationCommand(opts *rootOptions) *cobra.Command {
	var (
		invoice  model.CombinationInvoice
		schedule recurringFlags
	)

	cmd := &cobra.Command{
		Use:   "combination",
		Short: "Send an invoice for an initial amount followed by recurring payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, echeck.InvoiceSchema, func(ctx context.Context, a *app) (transport.Result, error) {
				return a.checks.CombinationInvoice(ctx, invoice, *schedule.recurring(cmd))
			})
		},
	}

	addInvoiceFlags(cmd, &invoice.PayorName, &invoice.EmailAddress, &invoice.ItemName, &invoice.ItemDescription)
	f := cmd.Flags()
	f.StringVar(&invoice.InitialAmount, "initial-amount", "", "Initial amount due")
	f.StringVar(&invoice.InitialPaymentDate, "initial-date", "", "Initial payment date, MM/DD/YYYY")
	f.StringVar(&invoice.RecurringAmount, "recurring-amount", "", "Recurring amount")
	f.StringVar(&invoice.RecurringPaymentDate, "recurring-date", "", "First recurring payment date, MM/DD/YYYY")
	for _, name := range []string{"initial-amount", "initial-date", "recurring-amount", "recurring-date"} {
		_ = cmd.MarkFlagRequired(name)
	}
	addRecurringFlags(cmd, &schedule)
	_ = cmd.MarkFlagRequired("every")

	return cmd
}
