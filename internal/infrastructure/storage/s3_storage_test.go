package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/finmanager/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeObjectAPI struct {
	puts    []*s3.PutObjectInput
	bodies  [][]byte
	deletes []string
	err     error
}

func (f *fakeObjectAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.puts = append(f.puts, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deletes = append(f.deletes, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func validConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Endpoint:     "http://localhost:9000",
		Region:       "us-east-1",
		Bucket:       "receipts",
		AccessKey:    "test-key",
		SecretKey:    "test-secret",
		UsePathStyle: true,
		Domain:       "https://cdn.example.com/",
		BasePath:     "/sales/",
	}
}

func newTestStorage(t *testing.T, api *fakeObjectAPI) *S3ObjectStorage {
	t.Helper()
	s, err := NewS3ObjectStorage(validConfig(), withClient(api))
	require.NoError(t, err)
	return s
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("incomplete config is not configured", func(t *testing.T) {
		cfg := validConfig()
		cfg.Domain = ""
		_, err := NewS3ObjectStorage(cfg)
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("valid config creates storage", func(t *testing.T) {
		s, err := NewS3ObjectStorage(validConfig(), WithLogger(zap.NewNop()), WithMaxBytes(2048))
		require.NoError(t, err)
		assert.Equal(t, "receipts", s.GetBucket())
		assert.Equal(t, "https://cdn.example.com", s.domain)
		assert.Equal(t, "sales", s.basePath)
		assert.Equal(t, 2048, s.maxBytes)
	})
}

func TestS3ObjectStorage_Upload(t *testing.T) {
	api := &fakeObjectAPI{}
	s := newTestStorage(t, api)

	url, err := s.Upload(context.Background(), pngBytes(t, noiseImage(32, 32)))
	require.NoError(t, err)

	require.Len(t, api.puts, 1)
	key := *api.puts[0].Key
	assert.True(t, strings.HasPrefix(key, "sales/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.Len(t, strings.TrimSuffix(strings.TrimPrefix(key, "sales/"), ".jpg"), 32)
	assert.Equal(t, "image/jpeg", *api.puts[0].ContentType)
	assert.Equal(t, "https://cdn.example.com/"+key, url)
	assert.Equal(t, "receipts", *api.puts[0].Bucket)

	_, format := decodeBytes(t, api.bodies[0])
	assert.Equal(t, "jpeg", format)
}

func TestS3ObjectStorage_UploadErrors(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		_, err := newTestStorage(t, &fakeObjectAPI{}).Upload(context.Background(), nil)
		assert.ErrorIs(t, err, ErrEmptyImage)
	})

	t.Run("not an image", func(t *testing.T) {
		_, err := newTestStorage(t, &fakeObjectAPI{}).Upload(context.Background(), []byte("hello"))
		assert.ErrorIs(t, err, ErrUndecodableImage)
	})

	t.Run("store failure", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := newTestStorage(t, &fakeObjectAPI{err: boom}).Upload(context.Background(), pngBytes(t, noiseImage(4, 4)))
		assert.ErrorIs(t, err, boom)
	})
}

func TestS3ObjectStorage_Delete(t *testing.T) {
	api := &fakeObjectAPI{}
	s := newTestStorage(t, api)
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, "https://cdn.example.com/sales/a.jpg"))
	require.NoError(t, s.Delete(ctx, "   "))
	assert.Equal(t, []string{"sales/a.jpg"}, api.deletes)
}

func TestS3ObjectStorage_KeyFromURL(t *testing.T) {
	s := newTestStorage(t, &fakeObjectAPI{})

	tests := []struct {
		in   string
		want string
	}{
		{"https://cdn.example.com/sales/a.jpg", "sales/a.jpg"},
		{"https://other.host/x/y.jpg", "x/y.jpg"},
		{"/sales/b.jpg", "sales/b.jpg"},
		{"sales/c.jpg", "sales/c.jpg"},
		{"  ", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, s.KeyFromURL(tt.in))
		})
	}
}

func TestUnconfiguredStorage(t *testing.T) {
	ctx := context.Background()
	var s UnconfiguredStorage

	_, err := s.Upload(ctx, []byte{1})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.ErrorIs(t, err, shared.ErrServiceUnavailable)
	assert.ErrorIs(t, s.Delete(ctx, "https://cdn.example.com/a.jpg"), ErrNotConfigured)
	assert.NoError(t, s.Delete(ctx, ""))
}

func TestNewImageStorage(t *testing.T) {
	s, err := NewImageStorage(&config.StorageConfig{}, 0, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, UnconfiguredStorage{}, s)

	s, err = NewImageStorage(validConfig(), 0, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &S3ObjectStorage{}, s)
}
