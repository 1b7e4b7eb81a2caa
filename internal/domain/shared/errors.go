package shared

import (
	"errors"
	"fmt"
)

// Error codes shared by the import, backup, restore and seed tools
const (
	CodeFileNotFound     = "FILE_NOT_FOUND"
	CodeParseError       = "PARSE_ERROR"
	CodeMissingColumn    = "MISSING_COLUMN"
	CodeNoValidRows      = "NO_VALID_ROWS"
	CodeAuthError        = "AUTH_ERROR"
	CodeRemoteWriteError = "REMOTE_WRITE_ERROR"
	CodeRemoteReadError  = "REMOTE_READ_ERROR"
	CodeInvalidPayload   = "INVALID_PAYLOAD"
	CodeForceRequired    = "FORCE_REQUIRED"
	CodeInvalidInput     = "INVALID_INPUT"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a DomainError carrying the same code, so
// errors.Is(err, shared.ErrMissingColumn) matches any missing column.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapDomainError creates a domain error that wraps cause
func WrapDomainError(code, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// CodeOf returns the code of the first DomainError in err's chain, or ""
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Common domain errors, usable as errors.Is targets
var (
	ErrFileNotFound   = NewDomainError(CodeFileNotFound, "File not found")
	ErrParse          = NewDomainError(CodeParseError, "File could not be parsed")
	ErrMissingColumn  = NewDomainError(CodeMissingColumn, "Required column missing")
	ErrNoValidRows    = NewDomainError(CodeNoValidRows, "No valid rows found")
	ErrAuth           = NewDomainError(CodeAuthError, "Authentication with the database failed")
	ErrRemoteWrite    = NewDomainError(CodeRemoteWriteError, "Database write rejected")
	ErrRemoteRead     = NewDomainError(CodeRemoteReadError, "Database read failed")
	ErrInvalidPayload = NewDomainError(CodeInvalidPayload, "Invalid payload")
	ErrForceRequired  = NewDomainError(CodeForceRequired, "Blocked: use --force to overwrite /data")
	ErrInvalidInput   = NewDomainError(CodeInvalidInput, "Invalid input provided")
)

// FileNotFound reports that path does not resolve to a readable file
func FileNotFound(path string) error {
	return NewDomainError(CodeFileNotFound, fmt.Sprintf("file not found: %s", path))
}

// ParseError reports that path could not be parsed as tabular or JSON data
func ParseError(path string, cause error) error {
	return WrapDomainError(CodeParseError, fmt.Sprintf("failed to parse %s", path), cause)
}

// MissingColumn reports a required column absent from the source header
func MissingColumn(name string) error {
	return NewDomainError(CodeMissingColumn, fmt.Sprintf("required column missing: %s", name))
}

// NoValidRows reports that no row of source survived validation
func NoValidRows(source string) error {
	return NewDomainError(CodeNoValidRows, fmt.Sprintf("no valid rows in %s", source))
}

// AuthError reports a credential loading or authentication failure
func AuthError(cause error) error {
	return WrapDomainError(CodeAuthError, "database authentication failed", cause)
}

// RemoteWriteError reports a rejected write at path
func RemoteWriteError(path string, cause error) error {
	return WrapDomainError(CodeRemoteWriteError, fmt.Sprintf("write to %s rejected", path), cause)
}

// RemoteReadError reports a failed read at path
func RemoteReadError(path string, cause error) error {
	return WrapDomainError(CodeRemoteReadError, fmt.Sprintf("read of %s failed", path), cause)
}

// InvalidInput reports an invalid user-supplied value
func InvalidInput(message string) error {
	return NewDomainError(CodeInvalidInput, message)
}
