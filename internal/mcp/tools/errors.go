package tools

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/usestring/schemamap/pkg/source"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeDecodeError  = "DECODE_ERROR"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapDecodeError classifies a source error. Bad options and oversized input
// are the caller's fault; anything else means the documents did not parse.
func WrapDecodeError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	switch {
	case errors.As(err, &coded):
		return err
	case errors.Is(err, source.ErrUnsupportedFormat), errors.Is(err, source.ErrDocumentTooLarge):
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: "rejected input", Cause: err}
	default:
		coded = &CodedError{Code: ErrCodeDecodeError, Message: "could not decode documents", Cause: err}
	}

	slog.Warn("decode failed",
		slog.String("code", coded.Code),
		slog.String("error", err.Error()),
	)
	return coded
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
