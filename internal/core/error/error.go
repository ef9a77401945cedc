package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an AppError independently of the transport.
type Code string

const (
	CodeInvalidArgument     Code = "INVALID_ARGUMENT"
	CodeValidation          Code = "VALIDATION_ERROR"
	CodeNotFound            Code = "NOT_FOUND"
	CodeUpstreamUnavailable Code = "UPSTREAM_UNAVAILABLE"
	CodeUpstreamTimeout     Code = "UPSTREAM_TIMEOUT"
	CodeUnknownTool         Code = "UNKNOWN_TOOL"
	CodeModelCallFailed     Code = "MODEL_CALL_FAILED"
	CodeInternal            Code = "INTERNAL"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "session store operation failed"
	// MongoErrorMessage describes document store failures.
	MongoErrorMessage = "database operation failed"
	// MongoTimeoutMessage describes document store deadline failures.
	MongoTimeoutMessage = "database operation timed out"
)

// AppError wraps an underlying error with a code, an HTTP status and a safe message.
type AppError struct {
	Code    Code
	Err     error
	Status  int
	Message string
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether the target matches the underlying error or carries the same code.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if errors.As(target, &t) && t != nil && t.Err == nil {
		return t.Code == e.Code
	}
	return errors.Is(e.Err, target)
}

// New creates a new AppError with the provided information.
func New(code Code, err error, status int, message string) *AppError {
	return &AppError{
		Code:    code,
		Err:     err,
		Status:  status,
		Message: message,
	}
}

func InvalidArgument(message string, err error) *AppError {
	return New(CodeInvalidArgument, err, http.StatusBadRequest, message)
}

func Validation(message string, err error) *AppError {
	return New(CodeValidation, err, http.StatusUnprocessableEntity, message)
}

func NotFound(message string, err error) *AppError {
	return New(CodeNotFound, err, http.StatusNotFound, message)
}

func UpstreamUnavailable(message string, err error) *AppError {
	return New(CodeUpstreamUnavailable, err, http.StatusBadGateway, message)
}

func UpstreamTimeout(message string, err error) *AppError {
	return New(CodeUpstreamTimeout, err, http.StatusGatewayTimeout, message)
}

func UnknownTool(name string) *AppError {
	return New(CodeUnknownTool, nil, http.StatusBadRequest, fmt.Sprintf("Function %s not found", name))
}

func ModelCallFailed(model string, err error) *AppError {
	return New(CodeModelCallFailed, err, http.StatusBadGateway, fmt.Sprintf("model %s call failed", model))
}

func Internal(err error) *AppError {
	return New(CodeInternal, err, http.StatusInternalServerError, SystemErrorMessage)
}

// Sentinels usable with errors.Is to match on code only.
var (
	ErrInvalidArgument     = &AppError{Code: CodeInvalidArgument}
	ErrValidation          = &AppError{Code: CodeValidation}
	ErrNotFound            = &AppError{Code: CodeNotFound}
	ErrUpstreamUnavailable = &AppError{Code: CodeUpstreamUnavailable}
	ErrUpstreamTimeout     = &AppError{Code: CodeUpstreamTimeout}
	ErrModelCallFailed     = &AppError{Code: CodeModelCallFailed}
)

// CodeOf returns the code of the first AppError in the chain, or CodeInternal.
func CodeOf(err error) Code {
	var app *AppError
	if errors.As(err, &app) {
		return app.Code
	}
	return CodeInternal
}

// StatusOf returns the HTTP status for err. Plain errors map to 500.
func StatusOf(err error) int {
	var app *AppError
	if errors.As(err, &app) && app.Status != 0 {
		return app.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the safe message of err.
func MessageOf(err error) string {
	var app *AppError
	if errors.As(err, &app) && app.Message != "" {
		return app.Message
	}
	return SystemErrorMessage
}
