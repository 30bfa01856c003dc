package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator"

	"github.com/greenlyst/greenmoney/pkg/model"
	"github.com/greenlyst/greenmoney/pkg/transport"
)

type CheckService interface {
	SingleCheck(ctx context.Context, customer model.Party, bank model.BankAccount, check model.Check, realtime bool) (transport.Result, error)
	RecurringCheck(ctx context.Context, customer model.Party, bank model.BankAccount, check model.Check, recurring model.Recurring, realtime bool) (transport.Result, error)
	SingleCheckWithSignature(ctx context.Context, customer model.Party, bank model.BankAccount, check model.Check, image []byte) (transport.Result, error)
	RecurringCheckWithSignature(ctx context.Context, customer model.Party, bank model.BankAccount, check model.Check, recurring model.Recurring, image []byte) (transport.Result, error)
	CheckStatus(ctx context.Context, id string) (transport.Result, error)
	CancelCheck(ctx context.Context, id string) (transport.Result, error)
	RefundCheck(ctx context.Context, id, memo, amount string) (transport.Result, error)
	CheckNote(ctx context.Context, id, note string) (transport.Result, error)
	UploadCheckSignature(ctx context.Context, id string, image []byte) (transport.Result, error)
	VerificationResult(ctx context.Context, id string) (transport.Result, error)
	OverrideVerification(ctx context.Context, id string) (transport.Result, error)
}

type BillPayService interface {
	SingleBillPay(ctx context.Context, payee model.Party, bank model.BankAccount, check model.Check) (transport.Result, error)
	SingleBillPayWithoutBank(ctx context.Context, payee model.Party, check model.Check) (transport.Result, error)
	RecurringBillPay(ctx context.Context, payee model.Party, bank model.BankAccount, check model.Check, recurring model.Recurring) (transport.Result, error)
}

type InvoiceService interface {
	SingleInvoice(ctx context.Context, invoice model.Invoice) (transport.Result, error)
	RecurringInvoice(ctx context.Context, invoice model.Invoice, recurring model.Recurring) (transport.Result, error)
	CombinationInvoice(ctx context.Context, invoice model.CombinationInvoice, recurring model.Recurring) (transport.Result, error)
	InvoiceStatus(ctx context.Context, id string) (transport.Result, error)
}

// maxBodyBytes leaves room for a base64 signature image.
const maxBodyBytes = 8 << 20

type CheckHandler struct {
	checks   CheckService
	billPay  BillPayService
	invoices InvoiceService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewCheckHandler(
	checks CheckService,
	billPay BillPayService,
	invoices InvoiceService,
	logger *slog.Logger,
) *CheckHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckHandler{
		checks:   checks,
		billPay:  billPay,
		invoices: invoices,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *CheckHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/checks", h.HandleSingleCheck)
	mux.HandleFunc("POST /v1/checks/recurring", h.HandleRecurringCheck)
	mux.HandleFunc("POST /v1/checks/signed", h.HandleSignedCheck)
	mux.HandleFunc("GET /v1/checks/{id}", h.HandleCheckStatus)
	mux.HandleFunc("GET /v1/checks/{id}/verification", h.HandleVerificationResult)
	mux.HandleFunc("POST /v1/checks/{id}/verification/override", h.HandleOverrideVerification)
	mux.HandleFunc("POST /v1/checks/{id}/cancel", h.HandleCancelCheck)
	mux.HandleFunc("POST /v1/checks/{id}/refund", h.HandleRefundCheck)
	mux.HandleFunc("POST /v1/checks/{id}/notes", h.HandleCheckNote)
	mux.HandleFunc("POST /v1/checks/{id}/signature", h.HandleUploadSignature)
	mux.HandleFunc("POST /v1/billpay", h.HandleBillPay)
	mux.HandleFunc("POST /v1/invoices", h.HandleInvoice)
	mux.HandleFunc("GET /v1/invoices/{id}", h.HandleInvoiceStatus)
	mux.HandleFunc("GET /healthz", h.HandleHealth)
}

func (h *CheckHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode reads a JSON body into dst and validates it.
func (h *CheckHandler) decode(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return &model.ValidationError{
			Code:    ErrCodeInvalidRequest,
			Message: "could not read request body",
			Err:     err,
		}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return &model.ValidationError{
			Code:    ErrCodeInvalidRequest,
			Message: "request body is not valid JSON",
		}
	}

	if err := h.validate.Struct(dst); err != nil {
		return &model.ValidationError{
			Code:    ErrCodeValidation,
			Message: err.Error(),
		}
	}
	return nil
}

func (h *CheckHandler) respond(w http.ResponseWriter, r *http.Request, result transport.Result, err error) {
	if err != nil {
		respondWithError(w, h.logger.With("request_id", RequestIDFrom(r.Context())), err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}
