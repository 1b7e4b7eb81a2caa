package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/shared"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitSuccess},
		{"file not found", shared.FileNotFound("x.csv"), ExitConfigError},
		{"auth", shared.AuthError(errors.New("bad key")), ExitConfigError},
		{"invalid input", shared.InvalidInput("bad role"), ExitConfigError},
		{"usage", asUsageError(errors.New("--file is required")), ExitConfigError},
		{"parse", shared.ParseError("x.csv", errors.New("bad quote")), ExitDataError},
		{"missing column", shared.MissingColumn("codigo"), ExitDataError},
		{"no valid rows", shared.NoValidRows("x.csv"), ExitDataError},
		{"invalid payload", shared.ErrInvalidPayload, ExitDataError},
		{"force required", shared.ErrForceRequired, ExitDataError},
		{"remote write", shared.RemoteWriteError("/data/x", errors.New("denied")), ExitRemoteError},
		{"wrapped remote write", fmt.Errorf("import: %w", shared.RemoteWriteError("/data/x", nil)), ExitRemoteError},
		{"remote read", shared.RemoteReadError("/data", errors.New("timeout")), ExitError},
		{"cancelled", context.Canceled, ExitError},
		{"other", errors.New("boom"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
