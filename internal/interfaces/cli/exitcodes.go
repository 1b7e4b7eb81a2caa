package cli

import (
	"errors"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/shared"
)

// Exit codes shared by every tool
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (runtime failure, interrupted run)
	ExitConfigError = 2 // Configuration or usage error (missing flags, missing files, credentials)
	ExitDataError   = 3 // Data error (malformed input, validation failure, missing --force)
	ExitRemoteError = 4 // The database rejected a write
)

// usageError marks errors caused by how the tool was invoked
type usageError struct {
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

func asUsageError(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

// ExitCode maps an error returned by a command to the process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch shared.CodeOf(err) {
	case shared.CodeFileNotFound, shared.CodeAuthError, shared.CodeInvalidInput:
		return ExitConfigError
	case shared.CodeParseError, shared.CodeMissingColumn, shared.CodeNoValidRows,
		shared.CodeInvalidPayload, shared.CodeForceRequired:
		return ExitDataError
	case shared.CodeRemoteWriteError:
		return ExitRemoteError
	}

	var usage *usageError
	if errors.As(err, &usage) {
		return ExitConfigError
	}
	return ExitError
}
