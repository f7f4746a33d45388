// Package api exposes the ledger engine over HTTP: a JSON API plus
// health and metrics endpoints. Callers authenticate with bearer
// tokens; the token subject is the caller identity.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/remiteasy/ledger/pkg/types"
	"github.com/remiteasy/ledger/pkg/units"
)

// ErrorResponse is the standardized JSON error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError writes a standardized JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Code: code, Message: message})
}

// WriteSuccess writes a JSON success response.
func WriteSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// errorStatus maps a ledger error to its HTTP status and code string.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, types.ErrInvalidAmount), errors.Is(err, units.ErrInvalidAmount):
		return http.StatusBadRequest, "INVALID_AMOUNT"
	case errors.Is(err, types.ErrMemoTooLong):
		return http.StatusBadRequest, "MEMO_TOO_LONG"
	case errors.Is(err, types.ErrInvalidFeeRate):
		return http.StatusBadRequest, "INVALID_FEE_RATE"
	case errors.Is(err, types.ErrInvalidIdentity):
		return http.StatusBadRequest, "INVALID_IDENTITY"
	case errors.Is(err, types.ErrUnauthorizedReceipt):
		return http.StatusForbidden, "UNAUTHORIZED_RECEIPT"
	case errors.Is(err, types.ErrUnauthorizedCancellation):
		return http.StatusForbidden, "UNAUTHORIZED_CANCELLATION"
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, types.ErrTransferNotPending):
		return http.StatusConflict, "TRANSFER_NOT_PENDING"
	case errors.Is(err, types.ErrAlreadyInitialized):
		return http.StatusConflict, "ALREADY_INITIALIZED"
	case errors.Is(err, types.ErrNotInitialized):
		return http.StatusConflict, "NOT_INITIALIZED"
	case errors.Is(err, types.ErrDuplicateTransfer):
		return http.StatusConflict, "DUPLICATE_TRANSFER"
	case errors.Is(err, types.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS"
	case errors.Is(err, types.ErrInsufficientEscrowBalance):
		return http.StatusUnprocessableEntity, "INSUFFICIENT_ESCROW_BALANCE"
	case errors.Is(err, types.ErrArithmeticOverflow):
		return http.StatusUnprocessableEntity, "ARITHMETIC_OVERFLOW"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

// writeLedgerError maps err through errorStatus and writes it.
func writeLedgerError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	WriteError(w, status, code, msg)
}
