package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/greenlyst/greenmoney/pkg/model"
)

func addPartyFlags(cmd *cobra.Command, p *model.Party) {
	f := cmd.Flags()
	f.StringVar(&p.Name, "name", "", "Full name")
	f.StringVar(&p.EmailAddress, "email", "", "Email address")
	f.StringVar(&p.Phone, "phone", "", "Phone number")
	f.StringVar(&p.PhoneExtension, "phone-ext", "", "Phone extension")
	f.StringVar(&p.Address1, "address1", "", "Street address")
	f.StringVar(&p.Address2, "address2", "", "Street address, second line")
	f.StringVar(&p.City, "city", "", "City")
	f.StringVar(&p.State, "state", "", "State")
	f.StringVar(&p.Zip, "zip", "", "Zip code")
	f.StringVar(&p.Country, "country", "", "Country")
	_ = cmd.MarkFlagRequired("name")
}

func addBankFlags(cmd *cobra.Command, b *model.BankAccount) {
	f := cmd.Flags()
	f.StringVar(&b.RoutingNumber, "routing", "", "Bank routing number")
	f.StringVar(&b.AccountNumber, "account", "", "Bank account number")
	f.StringVar(&b.BankName, "bank-name", "", "Bank name")
	cmd.MarkFlagsRequiredTogether("routing", "account")
}

func addCheckFlags(cmd *cobra.Command, c *model.Check) {
	f := cmd.Flags()
	f.StringVar(&c.Memo, "memo", "", "Check memo")
	f.StringVar(&c.Amount, "amount", "", "Check amount, e.g. 12.50")
	f.StringVar(&c.Date, "date", "", "Check date, MM/DD/YYYY")
	f.StringVar(&c.Number, "check-number", "", "Check number")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("date")
}

type recurringFlags struct {
	kind     string
	offset   int
	payments int
}

func addRecurringFlags(cmd *cobra.Command, r *recurringFlags) {
	f := cmd.Flags()
	f.StringVar(&r.kind, "every", "", "Recurrence unit: M (month), W (week) or D (day)")
	f.IntVar(&r.offset, "offset", 1, "Number of units between drafts")
	f.IntVar(&r.payments, "payments", 0, "Number of drafts")
}

// recurring returns the schedule, or nil when --every was not given.
func (r *recurringFlags) recurring(cmd *cobra.Command) *model.Recurring {
	if !cmd.Flags().Changed("every") {
		return nil
	}
	return &model.Recurring{
		Type:     model.RecurringType(r.kind),
		Offset:   r.offset,
		Payments: r.payments,
	}
}

func readImage(path string) ([]byte, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read signature image: %w", err)
	}
	return image, nil
}
