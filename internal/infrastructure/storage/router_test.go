package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/shared"
	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/infrastructure/config"
)

func TestRouter_Local(t *testing.T) {
	created := 0
	r := NewRouter(NewFileStorage(), func() (Backend, error) {
		created++
		return nil, errors.New("unexpected")
	})
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "backup.json")

	require.NoError(t, r.Write(ctx, path, []byte("{}")))
	data, err := r.Read(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, "{}", string(data))
	assert.Equal(t, 0, created, "object storage is not created for local paths")
}

func TestRouter_Remote(t *testing.T) {
	api := newFakeObjectAPI()
	created := 0
	r := NewRouter(NewFileStorage(), func() (Backend, error) {
		created++
		return NewS3ObjectStorage(&config.StorageConfig{}, WithObjectAPI(api))
	})
	ctx := context.Background()

	require.NoError(t, r.Write(ctx, "s3://backups/data.json", []byte(`{"k":"v"}`)))
	data, err := r.Read(ctx, "s3://backups/data.json")
	require.NoError(t, err)

	assert.Equal(t, `{"k":"v"}`, string(data))
	assert.Equal(t, []byte(`{"k":"v"}`), api.objects["backups/data.json"])
	assert.Equal(t, 1, created)
}

func TestRouter_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid location", func(t *testing.T) {
		r := NewRouter(NewFileStorage(), nil)
		_, err := r.Read(ctx, "s3://bucket-only")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("remote not configured", func(t *testing.T) {
		r := NewRouter(NewFileStorage(), nil)
		err := r.Write(ctx, "s3://backups/data.json", []byte("{}"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not configured")
	})

	t.Run("factory error is returned and retried", func(t *testing.T) {
		calls := 0
		r := NewRouter(NewFileStorage(), func() (Backend, error) {
			calls++
			return nil, errors.New("no credentials")
		})

		_, err := r.Read(ctx, "s3://backups/data.json")
		assert.EqualError(t, err, "no credentials")
		_, _ = r.Read(ctx, "s3://backups/data.json")
		assert.Equal(t, 2, calls)
	})
}
