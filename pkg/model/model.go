// Package model holds the value objects the check API takes. Each one only
// knows how to flatten itself into the remote field names.
package model

import (
	"strconv"

	"github.com/greenlyst/greenmoney/pkg/transport"
)

// Party is the customer of a draft or the payee of a bill pay check.
type Party struct {
	Name           string `json:"name" validate:"required"`
	EmailAddress   string `json:"email_address" validate:"omitempty,email"`
	Phone          string `json:"phone" validate:"required"`
	PhoneExtension string `json:"phone_extension"`
	Address1       string `json:"address1" validate:"required"`
	Address2       string `json:"address2"`
	City           string `json:"city" validate:"required"`
	State          string `json:"state" validate:"required"`
	Zip            string `json:"zip" validate:"required"`
	Country        string `json:"country"`
}

func (p Party) Fields() *transport.Fields {
	return transport.FieldsOf(
		"Name", p.Name,
		"EmailAddress", p.EmailAddress,
		"Address1", p.Address1,
		"Address2", p.Address2,
		"Phone", p.Phone,
		"PhoneExtension", p.PhoneExtension,
		"City", p.City,
		"State", p.State,
		"Zip", p.Zip,
		"Country", p.Country,
	)
}

type BankAccount struct {
	RoutingNumber string `json:"routing_number" validate:"required,numeric,len=9"`
	AccountNumber string `json:"account_number" validate:"required,numeric"`
	BankName      string `json:"bank_name"`
}

func (b BankAccount) Fields() *transport.Fields {
	return transport.FieldsOf(
		"RoutingNumber", b.RoutingNumber,
		"AccountNumber", b.AccountNumber,
		"BankName", b.BankName,
	)
}

// Check describes the draft itself. Amount and date are sent as the remote
// service expects them ("12.50", "01/31/2026"), unparsed.
type Check struct {
	Memo   string `json:"memo"`
	Amount string `json:"amount" validate:"required"`
	Date   string `json:"date" validate:"required"`
	Number string `json:"number"`
}

func (c Check) Fields() *transport.Fields {
	return transport.FieldsOf(
		"CheckMemo", c.Memo,
		"CheckAmount", c.Amount,
		"CheckDate", c.Date,
		"CheckNumber", c.Number,
	)
}

type RecurringType string

const (
	RecurringMonthly RecurringType = "M"
	RecurringWeekly  RecurringType = "W"
	RecurringDaily   RecurringType = "D"
)

// Recurring schedules Payments drafts, one every Offset units of Type.
type Recurring struct {
	Type     RecurringType `json:"type" validate:"required"`
	Offset   int           `json:"offset" validate:"required"`
	Payments int           `json:"payments" validate:"required"`
}

func (r Recurring) Validate() error {
	switch r.Type {
	case RecurringMonthly, RecurringWeekly, RecurringDaily:
	default:
		return NewInvalidRecurringTypeError(r.Type)
	}
	if r.Offset < 1 {
		return NewInvalidValueError("RecurringOffset", r.Offset)
	}
	if r.Payments < 1 {
		return NewInvalidValueError("RecurringPayments", r.Payments)
	}
	return nil
}

func (r Recurring) Fields() *transport.Fields {
	return transport.FieldsOf(
		"RecurringType", string(r.Type),
		"RecurringOffset", strconv.Itoa(r.Offset),
		"RecurringPayments", strconv.Itoa(r.Payments),
	)
}

// Invoice is an emailed payment request for a single or recurring draft.
type Invoice struct {
	PayorName       string `json:"payor_name" validate:"required"`
	EmailAddress    string `json:"email_address" validate:"required,email"`
	ItemName        string `json:"item_name" validate:"required"`
	ItemDescription string `json:"item_description"`
	Amount          string `json:"amount" validate:"required"`
	PaymentDate     string `json:"payment_date" validate:"required"`
}

func (i Invoice) Fields() *transport.Fields {
	return transport.FieldsOf(
		"PayorName", i.PayorName,
		"EmailAddress", i.EmailAddress,
		"ItemName", i.ItemName,
		"ItemDescription", i.ItemDescription,
		"Amount", i.Amount,
		"PaymentDate", i.PaymentDate,
	)
}

// CombinationInvoice charges an initial amount followed by a recurring one.
type CombinationInvoice struct {
	PayorName            string `json:"payor_name" validate:"required"`
	EmailAddress         string `json:"email_address" validate:"required,email"`
	ItemName             string `json:"item_name" validate:"required"`
	ItemDescription      string `json:"item_description"`
	InitialAmount        string `json:"initial_amount" validate:"required"`
	InitialPaymentDate   string `json:"initial_payment_date" validate:"required"`
	RecurringAmount      string `json:"recurring_amount" validate:"required"`
	RecurringPaymentDate string `json:"recurring_payment_date" validate:"required"`
}

func (c CombinationInvoice) Fields() *transport.Fields {
	return transport.FieldsOf(
		"PayorName", c.PayorName,
		"EmailAddress", c.EmailAddress,
		"ItemName", c.ItemName,
		"ItemDescription", c.ItemDescription,
		"InitialAmount", c.InitialAmount,
		"InitialPaymentDate", c.InitialPaymentDate,
		"RecurringAmount", c.RecurringAmount,
		"RecurringPaymentDate", c.RecurringPaymentDate,
	)
}
