package api

import (
	"encoding/json"
	"net/http"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/errors"
)

// errorResponse is the JSON error envelope. The code field carries the
// machine-readable error code from pkg/errors.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	s.writeJSON(w, statusFor(code), errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(code),
	})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidUTXO, errors.ErrCodeInvalidAmount,
		errors.ErrCodeInvalidAddress, errors.ErrCodeInvalidWallet, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidLayout, errors.ErrCodeEmptyInputs:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeWalletNotFound,
		errors.ErrCodePriceNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
