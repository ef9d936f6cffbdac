package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/attendease/attendease/internal/domain/assistant"
	"github.com/attendease/attendease/internal/domain/ledger"
	"github.com/attendease/attendease/internal/domain/subject"
)

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorCode(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Error: message})
}

// writeDomainError maps domain sentinels onto the error taxonomy. Unmapped
// errors are reported generically without exposing the internal cause.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, assistant.ErrEmptyMessage),
		errors.Is(err, assistant.ErrMessageTooLong),
		errors.Is(err, ledger.ErrInvalidDate),
		errors.Is(err, ledger.ErrInvalidCount),
		errors.Is(err, ledger.ErrInvalidInput),
		errors.Is(err, subject.ErrInvalidInput):
		writeErrorCode(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, assistant.ErrQuotaExceeded):
		writeErrorCode(w, http.StatusTooManyRequests, "quota_exceeded", "assistant quota exceeded, try again later")
	case errors.Is(err, assistant.ErrOracleUnavailable):
		writeErrorCode(w, http.StatusServiceUnavailable, "service_unavailable", "assistant is unavailable, safe to retry")
	case errors.Is(err, assistant.ErrExpiredState):
		writeErrorCode(w, http.StatusBadRequest, "expired_state", "no valid pending proposal, start a new one")
	case errors.Is(err, subject.ErrSubjectNotFound),
		errors.Is(err, ledger.ErrEntryNotFound):
		writeErrorCode(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeErrorCode(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
