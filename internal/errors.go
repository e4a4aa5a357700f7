package internal

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrReservedCircle      = errors.New("operation not allowed on the vault")
	ErrDuplicateCircle     = errors.New("circle already exists")
)

// AppError is the error body returned by the HTTP API.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}
