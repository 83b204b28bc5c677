package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Amount & Distribution (AMT / DIST) ----

func ErrInvalidAmount(detail string) *AppError {
	return New("AMT_001", fmt.Sprintf("Invalid amount: %s", detail), http.StatusBadRequest)
}

func ErrDistributionInvariant(detail string) *AppError {
	return New("DIST_001", fmt.Sprintf("Distribution invariant violated: %s", detail), http.StatusInternalServerError)
}

// ---- Settlement Business Logic (SET) ----

func ErrNotFound(entity string) *AppError {
	return New("SET_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrSettlementInProgress(currency string) *AppError {
	return New("SET_002", fmt.Sprintf("Settlement already in progress for %s", currency), http.StatusConflict)
}

func ErrNothingToSettle(currency string) *AppError {
	return New("SET_003", fmt.Sprintf("No settlement needed for %s", currency), http.StatusUnprocessableEntity)
}

func ErrNoCustodyBalances(currency string) *AppError {
	return New("SET_004", fmt.Sprintf("No custody balances recorded for %s", currency), http.StatusUnprocessableEntity)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrLockTimeout(err error) *AppError {
	return Wrap("SYS_002", "Lock acquisition timeout", http.StatusServiceUnavailable, err)
}

func ErrExchangeUnavailable(err error) *AppError {
	return Wrap("SYS_003", "Exchange gateway unavailable", http.StatusBadGateway, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a VAL_001 validation error with a caller-supplied message.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
