// Package errors provides the application error taxonomy.
// Every service-layer failure is an *AppError carrying the machine-matchable
// envelope code surfaced to clients; internal causes are attached for logging
// and never leak into responses.
package errors

// Envelope error codes. Zero means success; system-level codes live in the
// 1000 range, auth codes in the 2000 range, user codes in the 3000 range.
const (
	CodeSuccess = 0

	CodeServerError  = 1000
	CodeBadRequest   = 1001
	CodeUnauthorized = 1002
	CodeForbidden    = 1003
	CodeNotFound     = 1004
	CodeConflict     = 1005

	CodeVerificationInvalid = 2002
	CodeEmailFormat         = 2004
	CodeCodeFormat          = 2005

	CodeUserNotFound = 3000
)

// AppError represents a structured application error with an envelope error
// code, a human-readable message, and an optional internal cause.
type AppError struct {
	Code     int    `json:"error_code"`
	Message  string `json:"error_msg"`
	Internal error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal cause for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message but an internal cause.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  sentinel.Message,
		Internal: internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  message,
		Internal: sentinel.Internal,
	}
}

// System errors.
var (
	ErrInternalServer = &AppError{Code: CodeServerError, Message: "Internal server error"}
	ErrInvalidInput   = &AppError{Code: CodeBadRequest, Message: "Invalid request parameters"}
	ErrUnauthorized   = &AppError{Code: CodeUnauthorized, Message: "Unauthorized or session expired"}
	ErrForbidden      = &AppError{Code: CodeForbidden, Message: "Access denied"}
	ErrNotFound       = &AppError{Code: CodeNotFound, Message: "Resource not found"}
)

// Authentication errors. Mismatched, missing, and expired verification codes
// share a single sentinel so responses do not reveal which check failed.
var (
	ErrVerificationCode  = &AppError{Code: CodeVerificationInvalid, Message: "Invalid or expired verification code"}
	ErrInvalidEmail      = &AppError{Code: CodeEmailFormat, Message: "Invalid email format"}
	ErrInvalidCodeFormat = &AppError{Code: CodeCodeFormat, Message: "Verification code must be 6 digits"}
)

// User errors.
var (
	ErrUserNotFound = &AppError{Code: CodeUserNotFound, Message: "User not found"}
)

// Category errors.
var (
	ErrCategoryNotFound = &AppError{Code: CodeNotFound, Message: "Category not found"}
	ErrCategoryInUse    = &AppError{Code: CodeConflict, Message: "Category is used by existing transactions"}
)

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: CodeNotFound, Message: "Transaction not found"}
)
