package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/domain/shared"
	"github.com/welingtontavares15-hue/diversey-solicitacoes-pwa/internal/infrastructure/config"
)

// fakeObjectAPI keeps objects in memory, keyed by bucket and key
type fakeObjectAPI struct {
	objects      map[string][]byte
	contentTypes map[string]string
	putErr       error
	getErr       error
}

func newFakeObjectAPI() *fakeObjectAPI {
	return &fakeObjectAPI{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

func (f *fakeObjectAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	id := aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key)
	f.objects[id] = data
	f.contentTypes[id] = aws.ToString(params.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("access key without secret returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(&config.StorageConfig{AccessKey: "test-key"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be set together")
	})

	t.Run("static credentials and endpoint", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(&config.StorageConfig{
			AccessKey:    "test-key",
			SecretKey:    "test-secret",
			Endpoint:     "localhost:9000",
			UsePathStyle: true,
		})
		require.NoError(t, err)
		require.NotNil(t, storage)
		assert.Equal(t, "application/json", storage.contentType)
	})

	t.Run("default credential chain", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(&config.StorageConfig{Region: "sa-east-1"})
		require.NoError(t, err)
		require.NotNil(t, storage)
	})
}

func TestS3ObjectStorageOptions(t *testing.T) {
	cfg := &config.StorageConfig{AccessKey: "test-key", SecretKey: "test-secret", Endpoint: "http://localhost:9000"}

	t.Run("WithLogger sets custom logger", func(t *testing.T) {
		logger := zaptest.NewLogger(t)
		storage, err := NewS3ObjectStorage(cfg, WithLogger(logger))
		require.NoError(t, err)
		assert.Same(t, logger, storage.logger)
	})

	t.Run("WithContentType sets uploaded content type", func(t *testing.T) {
		api := newFakeObjectAPI()
		storage, err := NewS3ObjectStorage(cfg, WithObjectAPI(api), WithContentType("text/plain"))
		require.NoError(t, err)

		require.NoError(t, storage.Write(context.Background(), Location{Raw: "s3://b/k", Bucket: "b", Key: "k"}, []byte("x")))
		assert.Equal(t, "text/plain", api.contentTypes["b/k"])
	})
}

func TestS3ObjectStorage_WriteRead(t *testing.T) {
	api := newFakeObjectAPI()
	storage, err := NewS3ObjectStorage(&config.StorageConfig{}, WithObjectAPI(api))
	require.NoError(t, err)
	ctx := context.Background()

	loc, err := ParseLocation("s3://backups/rtdb/data.json")
	require.NoError(t, err)

	require.NoError(t, storage.Write(ctx, loc, []byte(`{"a":1}`)))
	assert.Equal(t, "application/json", api.contentTypes["backups/rtdb/data.json"])

	data, err := storage.Read(ctx, loc)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestS3ObjectStorage_Errors(t *testing.T) {
	ctx := context.Background()
	loc := Location{Raw: "s3://backups/missing.json", Bucket: "backups", Key: "missing.json"}

	t.Run("missing object is file not found", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(&config.StorageConfig{}, WithObjectAPI(newFakeObjectAPI()))
		require.NoError(t, err)

		_, err = storage.Read(ctx, loc)
		assert.ErrorIs(t, err, shared.ErrFileNotFound)
	})

	t.Run("missing bucket is file not found", func(t *testing.T) {
		api := newFakeObjectAPI()
		api.getErr = &types.NoSuchBucket{}
		storage, err := NewS3ObjectStorage(&config.StorageConfig{}, WithObjectAPI(api))
		require.NoError(t, err)

		_, err = storage.Read(ctx, loc)
		assert.ErrorIs(t, err, shared.ErrFileNotFound)
	})

	t.Run("other download errors are wrapped", func(t *testing.T) {
		api := newFakeObjectAPI()
		api.getErr = errors.New("connection reset")
		storage, err := NewS3ObjectStorage(&config.StorageConfig{}, WithObjectAPI(api))
		require.NoError(t, err)

		_, err = storage.Read(ctx, loc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to download object")
		assert.NotErrorIs(t, err, shared.ErrFileNotFound)
	})

	t.Run("upload error", func(t *testing.T) {
		api := newFakeObjectAPI()
		api.putErr = errors.New("access denied")
		storage, err := NewS3ObjectStorage(&config.StorageConfig{}, WithObjectAPI(api))
		require.NoError(t, err)

		err = storage.Write(ctx, loc, []byte("{}"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
	})

	t.Run("local location rejected", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(&config.StorageConfig{}, WithObjectAPI(newFakeObjectAPI()))
		require.NoError(t, err)

		_, err = storage.Read(ctx, Location{Raw: "backup.json"})
		assert.Error(t, err)
	})
}
