package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	t.Run("matches by code", func(t *testing.T) {
		err := MissingColumn("codigo")

		assert.ErrorIs(t, err, ErrMissingColumn)
		assert.NotErrorIs(t, err, ErrNoValidRows)
		assert.Equal(t, "required column missing: codigo", err.Error())
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		err := fmt.Errorf("import: %w", FileNotFound("/tmp/x.csv"))

		assert.ErrorIs(t, err, ErrFileNotFound)
		assert.Equal(t, CodeFileNotFound, CodeOf(err))
	})

	t.Run("unwraps cause", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := RemoteWriteError("/data/diversey_pecas/P-01", cause)

		assert.ErrorIs(t, err, ErrRemoteWrite)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "permission denied")
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "", CodeOf(errors.New("plain")))
	assert.Equal(t, "", CodeOf(nil))
	assert.Equal(t, CodeAuthError, CodeOf(AuthError(errors.New("bad key"))))
	assert.Equal(t, CodeParseError, CodeOf(ParseError("a.xlsx", errors.New("zip: not a valid zip file"))))
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		expected string
	}{
		{"root", []string{"/data"}, "/data"},
		{"child", []string{"/data", "diversey_pecas"}, "/data/diversey_pecas"},
		{"trailing slashes", []string{"/data/", "/diversey_pecas/", "P-01"}, "/data/diversey_pecas/P-01"},
		{"empty", nil, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, JoinPath(tt.segments...))
		})
	}
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"data", "diversey_users"}, SplitPath("/data//diversey_users/"))
	assert.Nil(t, SplitPath("/"))
}
