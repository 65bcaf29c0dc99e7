// Package errors defines domain-specific error values and codes shared
// between services and the API layer.
package errors

import "errors"

// Domain-specific error types
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoSenderAddress indicates no usable sender address could be
	// extracted from a parsed email
	ErrNoSenderAddress = errors.New("could not extract sender email address from email")

	// ErrNoActiveMember indicates no active member matched the sender
	ErrNoActiveMember = errors.New("no active member found")

	// ErrUnsupportedFileType indicates an upload with an extension the
	// parser does not handle
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrFileTooLarge indicates an upload over the size limit
	ErrFileTooLarge = errors.New("file exceeds size limit")

	// ErrParsing indicates a container could not be opened or parsed
	ErrParsing = errors.New("failed to parse email file")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal server error")
)

// Error codes for API responses
const (
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeNoSenderAddress = "NO_SENDER_ADDRESS"
	CodeNoActiveMember  = "NO_ACTIVE_MEMBER"
	CodeUnsupportedType = "UNSUPPORTED_FILE_TYPE"
	CodeFileTooLarge    = "FILE_TOO_LARGE"
	CodeParsingError    = "PARSING_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"
)

// IsNotFound checks if an error is a not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput checks if an error is an invalid-input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// GetErrorCode maps an error to its API response code
func GetErrorCode(err error) string {
	switch {
	case IsNotFound(err):
		return CodeNotFound
	case errors.Is(err, ErrNoSenderAddress):
		return CodeNoSenderAddress
	case errors.Is(err, ErrNoActiveMember):
		return CodeNoActiveMember
	case errors.Is(err, ErrUnsupportedFileType):
		return CodeUnsupportedType
	case errors.Is(err, ErrFileTooLarge):
		return CodeFileTooLarge
	case errors.Is(err, ErrParsing):
		return CodeParsingError
	case IsInvalidInput(err):
		return CodeInvalidInput
	default:
		return CodeInternalError
	}
}
