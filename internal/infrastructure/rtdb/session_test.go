package rtdb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"firebase.google.com/go/v4/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/shared"
	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/infrastructure/config"
)

func serviceAccountFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"service_account"}`), 0o600))
	return path
}

func writeServiceAccount(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const malformedKeyAccount = `{
	"type": "service_account",
	"project_id": "demo",
	"client_email": "importer@demo.iam.gserviceaccount.com",
	"private_key": "xx",
	"token_uri": "https://oauth2.googleapis.com/token"
}`

// countingDialer returns a zero client and counts how often it was called
func countingDialer(calls *int, err error) Dialer {
	return func(ctx context.Context, cfg config.RTDBConfig) (*db.Client, error) {
		*calls++
		if err != nil {
			return nil, err
		}
		return &db.Client{}, nil
	}
}

func TestSession_Connect(t *testing.T) {
	t.Run("connects once", func(t *testing.T) {
		calls := 0
		s := NewSession(config.RTDBConfig{
			ServiceAccount: serviceAccountFile(t),
			DatabaseURL:    "https://demo.firebaseio.com",
		}, WithDialer(countingDialer(&calls, nil)))

		assert.False(t, s.Connected())
		require.NoError(t, s.Connect(context.Background()))
		require.NoError(t, s.Connect(context.Background()))

		assert.True(t, s.Connected())
		assert.Equal(t, 1, calls)
	})

	t.Run("dialer receives the settings", func(t *testing.T) {
		cfg := config.RTDBConfig{
			ServiceAccount: serviceAccountFile(t),
			DatabaseURL:    "https://demo.firebaseio.com",
		}
		var got config.RTDBConfig
		s := NewSession(cfg, WithDialer(func(ctx context.Context, c config.RTDBConfig) (*db.Client, error) {
			got = c
			return &db.Client{}, nil
		}))

		require.NoError(t, s.Connect(context.Background()))
		assert.Equal(t, cfg, got)
	})

	tests := []struct {
		name string
		cfg  func(t *testing.T) config.RTDBConfig
		msg  string
	}{
		{
			name: "missing service account",
			cfg: func(t *testing.T) config.RTDBConfig {
				return config.RTDBConfig{DatabaseURL: "https://demo.firebaseio.com"}
			},
			msg: "service account path is required",
		},
		{
			name: "missing database url",
			cfg: func(t *testing.T) config.RTDBConfig {
				return config.RTDBConfig{ServiceAccount: serviceAccountFile(t)}
			},
			msg: "database URL is required",
		},
		{
			name: "service account file does not exist",
			cfg: func(t *testing.T) config.RTDBConfig {
				return config.RTDBConfig{
					ServiceAccount: filepath.Join(t.TempDir(), "missing.json"),
					DatabaseURL:    "https://demo.firebaseio.com",
				}
			},
			msg: "missing.json",
		},
		{
			name: "service account is a directory",
			cfg: func(t *testing.T) config.RTDBConfig {
				return config.RTDBConfig{ServiceAccount: t.TempDir(), DatabaseURL: "https://demo.firebaseio.com"}
			},
			msg: "is a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			s := NewSession(tt.cfg(t), WithDialer(countingDialer(&calls, nil)))

			err := s.Connect(context.Background())
			assert.ErrorIs(t, err, shared.ErrAuth)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Equal(t, 0, calls)
			assert.False(t, s.Connected())
		})
	}

	t.Run("dial failure is an auth error and can be retried", func(t *testing.T) {
		calls := 0
		s := NewSession(config.RTDBConfig{
			ServiceAccount: serviceAccountFile(t),
			DatabaseURL:    "https://demo.firebaseio.com",
		}, WithDialer(countingDialer(&calls, errors.New("invalid private key"))))

		err := s.Connect(context.Background())
		assert.ErrorIs(t, err, shared.ErrAuth)
		assert.Contains(t, err.Error(), "invalid private key")

		_ = s.Connect(context.Background())
		assert.Equal(t, 2, calls)
	})
}

func TestSession_OperationsConnectLazily(t *testing.T) {
	s := NewSession(config.RTDBConfig{DatabaseURL: "https://demo.firebaseio.com"})
	ctx := context.Background()

	var dst map[string]any
	assert.ErrorIs(t, s.Get(ctx, "/data", &dst), shared.ErrAuth)
	assert.ErrorIs(t, s.Set(ctx, "/data/x", 1), shared.ErrAuth)
	assert.ErrorIs(t, s.Transaction(ctx, "/data/x", func(current any) (any, error) {
		return current, nil
	}), shared.ErrAuth)
	assert.False(t, s.Connected())
}

func TestSession_MalformedPrivateKey(t *testing.T) {
	s := NewSession(config.RTDBConfig{
		ServiceAccount: writeServiceAccount(t, malformedKeyAccount),
		DatabaseURL:    "https://demo.firebaseio.com",
	})
	ctx := context.Background()

	err := s.Connect(ctx)
	assert.ErrorIs(t, err, shared.ErrAuth)
	assert.Contains(t, err.Error(), "private key")

	err = s.Set(ctx, "/data/diversey_pecas/P-01", map[string]any{"codigo": "P-01"})
	assert.ErrorIs(t, err, shared.ErrAuth)
	assert.NotErrorIs(t, err, shared.ErrRemoteWrite)
	assert.False(t, s.Connected())
}

func TestLoadCredentials(t *testing.T) {
	tests := []struct {
		name    string
		content string
		msg     string
	}{
		{name: "not json", content: "{", msg: "not valid JSON"},
		{name: "wrong type", content: `{"type":"authorized_user"}`, msg: "want service_account"},
		{name: "missing key", content: `{"type":"service_account","client_email":"a@b"}`, msg: "lacks client_email or private_key"},
		{name: "malformed key", content: malformedKeyAccount, msg: "private key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := LoadCredentials(context.Background(), writeServiceAccount(t, tt.content))

			assert.Nil(t, creds)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCredentials(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestRemoteError(t *testing.T) {
	refused := fmt.Errorf("post token: %w", &oauth2.RetrieveError{ErrorCode: "invalid_grant"})

	assert.ErrorIs(t, remoteError("/data/x", refused, shared.RemoteWriteError), shared.ErrAuth)
	assert.ErrorIs(t, remoteError("/data/x", refused, shared.RemoteReadError), shared.ErrAuth)

	denied := remoteError("/data/x", errors.New("permission denied"), shared.RemoteWriteError)
	assert.ErrorIs(t, denied, shared.ErrRemoteWrite)
	assert.Contains(t, denied.Error(), "/data/x")

	failed := remoteError("/data/x", errors.New("timeout"), shared.RemoteReadError)
	assert.ErrorIs(t, failed, shared.ErrRemoteRead)
}
