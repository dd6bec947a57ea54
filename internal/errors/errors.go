package errors

import (
	"errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN".
// Wrapped AppErrors are unwrapped until a code is found.
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err carries the given error code
func HasCode(err error, code string) bool {
	return GetCode(err) == code
}

// Predefined error codes
const (
	CodeConfigInvalid      = "CONFIG_INVALID"
	CodeDatabaseError      = "DATABASE_ERROR"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodePreconditionFailed = "PRECONDITION_FAILED"
	CodeIllegalState       = "ILLEGAL_STATE"
	CodeAIProvider         = "AI_PROVIDER_ERROR"
	CodeEmailSendFailed    = "EMAIL_SEND_FAILED"
	CodePaymentError       = "PAYMENT_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string, cause error) *AppError {
	return &AppError{Code: CodeDatabaseError, Message: message, Cause: cause}
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func PreconditionFailed(message string) *AppError {
	return New(CodePreconditionFailed, message)
}

// IllegalState marks an internal invariant violation. These are defects,
// not user errors, and should be logged loudly at the boundary.
func IllegalState(message string) *AppError {
	return New(CodeIllegalState, message)
}

// AIProviderError hides provider detail from the caller-visible message;
// the cause is kept for operator logs only.
func AIProviderError(cause error) *AppError {
	return &AppError{
		Code:    CodeAIProvider,
		Message: "analysis failed, try again shortly",
		Cause:   cause,
	}
}

func PaymentError(message string, cause error) *AppError {
	return &AppError{Code: CodePaymentError, Message: message, Cause: cause}
}

func EmailSendFailed(cause error) *AppError {
	return &AppError{Code: CodeEmailSendFailed, Message: "failed to send result email", Cause: cause}
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}
