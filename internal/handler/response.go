package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/greenlyst/greenmoney/pkg/model"
	"github.com/greenlyst/greenmoney/pkg/transport"
)

const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeInternal       = "INTERNAL_ERROR"

	ErrCodeUpstreamTimeout     = "UPSTREAM_TIMEOUT"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ErrCodeUpstreamStatus      = "UPSTREAM_HTTP_ERROR"
	ErrCodeUpstreamFault       = "UPSTREAM_FAULT"
	ErrCodeUpstreamMalformed   = "UPSTREAM_MALFORMED_RESPONSE"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondWithJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := APIResponse{
		Success: status >= 200 && status < 300,
	}

	if response.Success {
		response.Data = data
	} else {
		if apiErr, ok := data.(*APIError); ok {
			response.Error = apiErr
		}
	}

	_ = json.NewEncoder(w).Encode(response)
}

func respondWithError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status, apiErr := mapError(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "code", apiErr.Code, "error", err)
	}
	respondWithJSON(w, status, apiErr)
}

// mapError turns an error into a status and a body safe to show a client.
// Upstream detail stays in the log written by respondWithError.
func mapError(err error) (int, *APIError) {
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, &APIError{Code: vErr.Code, Message: vErr.Message}
	}

	if tErr, ok := transport.AsError(err); ok {
		switch tErr.Kind {
		case transport.KindNetwork:
			if tErr.Timeout() {
				return http.StatusGatewayTimeout, &APIError{Code: ErrCodeUpstreamTimeout, Message: "payment service timed out"}
			}
			return http.StatusBadGateway, &APIError{Code: ErrCodeUpstreamUnavailable, Message: "payment service unreachable"}
		case transport.KindHTTPStatus:
			return http.StatusBadGateway, &APIError{Code: ErrCodeUpstreamStatus, Message: "payment service returned an error status"}
		case transport.KindProtocolFault:
			return http.StatusBadGateway, &APIError{Code: ErrCodeUpstreamFault, Message: "payment service reported a fault"}
		default:
			return http.StatusBadGateway, &APIError{Code: ErrCodeUpstreamMalformed, Message: "payment service returned an unreadable response"}
		}
	}

	return http.StatusInternalServerError, &APIError{
		Code:    ErrCodeInternal,
		Message: "internal error",
	}
}
