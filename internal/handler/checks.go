package handler

import (
	"encoding/base64"
	"net/http"

	"github.com/greenlyst/greenmoney/pkg/model"
)

type CheckRequest struct {
	Customer model.Party       `json:"customer"`
	Bank     model.BankAccount `json:"bank"`
	Check    model.Check       `json:"check"`
	Realtime bool              `json:"realtime"`
}

type RecurringCheckRequest struct {
	CheckRequest
	Recurring model.Recurring `json:"recurring"`
}

// SignedCheckRequest carries a base64 jpeg of the customer's signature.
// With Recurring set the draft is entered as a series.
type SignedCheckRequest struct {
	CheckRequest
	Recurring *model.Recurring `json:"recurring,omitempty"`
	Image     string           `json:"image" validate:"required,base64"`
}

type RefundRequest struct {
	Memo   string `json:"memo"`
	Amount string `json:"amount" validate:"required"`
}

type NoteRequest struct {
	Note string `json:"note" validate:"required"`
}

type SignatureRequest struct {
	Image string `json:"image" validate:"required,base64"`
}

func (h *CheckHandler) HandleSingleCheck(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := h.decode(r, &req); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	result, err := h.checks.SingleCheck(r.Context(), req.Customer, req.Bank, req.Check, req.Realtime)
	h.respond(w, r, result, err)
}

func (h *CheckHandler) HandleRecurringCheck(w http.ResponseWriter, r *http.Request) {
	var req RecurringCheckRequest
	if err := h.decode(r, &req); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	result, err := h.checks.RecurringCheck(r.Context(), req.Customer, req.Bank, req.Check, req.Recurring, req.Realtime)
	h.respond(w, r, result, err)
}

func (h *CheckHandler) HandleSignedCheck(w http.ResponseWriter, r *http.Request) {
	var req SignedCheckRequest
	if err := h.decode(r, &req); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	image, err := decodeImage(req.Image)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	if req.Recurring != nil {
		result, err := h.checks.RecurringCheckWithSignature(r.Context(), req.Customer, req.Bank, req.Check, *req.Recurring, image)
		h.respond(w, r, result, err)
		return
	}

	result, err := h.checks.SingleCheckWithSignature(r.Context(), req.Customer, req.Bank, req.Check, image)
	h.respond(w, r, result, err)
}

func (h *CheckHandler) HandleCheckStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.checks.CheckStatus(r.Context(), r.PathValue("id"))
	h.respond(w, r, result, err)
}

func (h *CheckHandler) HandleVerificationResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.checks.VerificationResult(r.Context(), r.PathValue("id"))
	h.respond(w, r, result, err)
}

func (h *CheckHandler) HandleOverrideVerification(w http.ResponseWriter, r *http.Request) {
	result, err := h.checks.OverrideVerification(r.Context(), r.PathValue("id"))
	h.respond(w, r, result, err)
}

func (h *CheckHandler) HandleCancelCheck(w http.ResponseWriter, r *http.Request) {
	result, err := h.checks.CancelCheck(r.Context(), r.PathValue("id"))
	h.respond(w, r, result, err)
}

func (h *CheckHandler) HandleRefundCheck(w http.ResponseWriter, r *http.Request) {
	var req RefundRequest
	if err := h.decode(r, &req); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	result, err := h.checks.RefundCheck(r.Context(), r.PathValue("id"), req.Memo, req.Amount)
	h.respond(w, r, result, err)
}

func (h *CheckHandler) HandleCheckNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if err := h.decode(r, &req); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	result, err := h.checks.CheckNote(r.Context(), r.PathValue("id"), req.Note)
	h.respond(w, r, result, err)
}

func (h *CheckHandler) HandleUploadSignature(w http.ResponseWriter, r *http.Request) {
	var req SignatureRequest
	if err := h.decode(r, &req); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	image, err := decodeImage(req.Image)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	result, err := h.checks.UploadCheckSignature(r.Context(), r.PathValue("id"), image)
	h.respond(w, r, result, err)
}

func decodeImage(s string) ([]byte, error) {
	image, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &model.ValidationError{
			Code:    ErrCodeValidation,
			Message: "image must be base64 encoded",
			Err:     err,
		}
	}
	return image, nil
}
