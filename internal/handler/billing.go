package handler

import (
	"net/http"

	"github.com/greenlyst/greenmoney/pkg/model"
)

// BillPayRequest pays Payee. Without Bank a paper check is mailed; a
// recurring bill pay always needs the bank account.
type BillPayRequest struct {
	Payee     model.Party        `json:"payee"`
	Bank      *model.BankAccount `json:"bank,omitempty"`
	Check     model.Check        `json:"check"`
	Recurring *model.Recurring   `json:"recurring,omitempty"`
}

// InvoiceRequest holds exactly one of Invoice or Combination. Recurring
// turns a plain invoice into a recurring one and is required for a
// combination invoice.
type InvoiceRequest struct {
	Invoice     *model.Invoice            `json:"invoice,omitempty"`
	Combination *model.CombinationInvoice `json:"combination,omitempty"`
	Recurring   *model.Recurring          `json:"recurring,omitempty"`
}

func (h *CheckHandler) HandleBillPay(w http.ResponseWriter, r *http.Request) {
	var req BillPayRequest
	if err := h.decode(r, &req); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	switch {
	case req.Recurring != nil && req.Bank == nil:
		respondWithError(w, h.logger, model.NewMissingRequiredFieldError("bank"))
	case req.Recurring != nil:
		result, err := h.billPay.RecurringBillPay(r.Context(), req.Payee, *req.Bank, req.Check, *req.Recurring)
		h.respond(w, r, result, err)
	case req.Bank != nil:
		result, err := h.billPay.SingleBillPay(r.Context(), req.Payee, *req.Bank, req.Check)
		h.respond(w, r, result, err)
	default:
		result, err := h.billPay.SingleBillPayWithoutBank(r.Context(), req.Payee, req.Check)
		h.respond(w, r, result, err)
	}
}

func (h *CheckHandler) HandleInvoice(w http.ResponseWriter, r *http.Request) {
	var req InvoiceRequest
	if err := h.decode(r, &req); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	switch {
	case (req.Invoice == nil) == (req.Combination == nil):
		respondWithError(w, h.logger, &model.ValidationError{
			Code:    ErrCodeValidation,
			Message: "exactly one of invoice or combination is required",
		})
	case req.Combination != nil && req.Recurring == nil:
		respondWithError(w, h.logger, model.NewMissingRequiredFieldError("recurring"))
	case req.Combination != nil:
		result, err := h.invoices.CombinationInvoice(r.Context(), *req.Combination, *req.Recurring)
		h.respond(w, r, result, err)
	case req.Recurring != nil:
		result, err := h.invoices.RecurringInvoice(r.Context(), *req.Invoice, *req.Recurring)
		h.respond(w, r, result, err)
	default:
		result, err := h.invoices.SingleInvoice(r.Context(), *req.Invoice)
		h.respond(w, r, result, err)
	}
}

func (h *CheckHandler) HandleInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.invoices.InvoiceStatus(r.Context(), r.PathValue("id"))
	h.respond(w, r, result, err)
}
