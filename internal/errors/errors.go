package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

const (
	codeNotFound         = "not_found"
	codeAlreadyExists    = "already_exists"
	codeValidation       = "validation_error"
	codeInvalidOperation = "invalid_operation"
	codeHTTPClient       = "http_client_error"
	codeDatabase         = "database_error"
	codeSystem           = "system_error"
	codeTooManyRequests  = "too_many_requests"
)

// Error kinds. Errors carry one through Mark and are tested with errors.Is.
var (
	ErrNotFound         = newKind(codeNotFound, "resource not found")
	ErrAlreadyExists    = newKind(codeAlreadyExists, "resource already exists")
	ErrValidation       = newKind(codeValidation, "validation error")
	ErrInvalidOperation = newKind(codeInvalidOperation, "invalid operation")
	ErrHTTPClient       = newKind(codeHTTPClient, "http client error")
	ErrDatabase         = newKind(codeDatabase, "database error")
	ErrSystem           = newKind(codeSystem, "system error")
	ErrTooManyRequests  = newKind(codeTooManyRequests, "too many requests")

	statusByKind = map[error]int{
		ErrNotFound:         http.StatusNotFound,
		ErrAlreadyExists:    http.StatusConflict,
		ErrValidation:       http.StatusBadRequest,
		ErrInvalidOperation: http.StatusBadRequest,
		ErrTooManyRequests:  http.StatusTooManyRequests,
		ErrHTTPClient:       http.StatusInternalServerError,
		ErrDatabase:         http.StatusInternalServerError,
		ErrSystem:           http.StatusInternalServerError,
	}
)

// InternalError is an error kind
type InternalError struct {
	Code    string
	Message string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newKind(code, message string) *InternalError {
	return &InternalError{Code: code, Message: message}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// HTTPStatusFromErr maps the error's kind to a status, 500 when it has none
func HTTPStatusFromErr(err error) int {
	for kind, status := range statusByKind {
		if errors.Is(err, kind) {
			return status
		}
	}
	return http.StatusInternalServerError
}
