// Package storage keeps sale images in an S3-compatible object store.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/finmanager/backend/internal/domain/shared"
	infraconfig "github.com/finmanager/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned by every operation of an unconfigured store
var ErrNotConfigured = shared.NewDomainError("SERVICE_UNAVAILABLE", "Image storage is not configured")

// ImageStorage stores compressed images and deletes them by public URL
type ImageStorage interface {
	Upload(ctx context.Context, data []byte) (string, error)
	Delete(ctx context.Context, imageURL string) error
}

// objectAPI is the part of the S3 client the store uses
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3ObjectStorage implements ImageStorage using AWS S3 SDK v2.
// It works with any S3-compatible storage (AWS S3, MinIO, R2, etc.).
type S3ObjectStorage struct {
	client   objectAPI
	bucket   string
	domain   string
	basePath string
	maxBytes int
	logger   *zap.Logger
}

// S3ObjectStorageOption is a functional option for configuring S3ObjectStorage
type S3ObjectStorageOption func(*S3ObjectStorage)

// WithLogger sets a custom logger for S3ObjectStorage
func WithLogger(logger *zap.Logger) S3ObjectStorageOption {
	return func(s *S3ObjectStorage) {
		s.logger = logger
	}
}

// WithMaxBytes sets the compressed size limit of uploads
func WithMaxBytes(n int) S3ObjectStorageOption {
	return func(s *S3ObjectStorage) {
		s.maxBytes = n
	}
}

// withClient replaces the S3 client, used by tests
func withClient(c objectAPI) S3ObjectStorageOption {
	return func(s *S3ObjectStorage) {
		s.client = c
	}
}

// NewS3ObjectStorage creates a new S3ObjectStorage from configuration
func NewS3ObjectStorage(cfg *infraconfig.StorageConfig, opts ...S3ObjectStorageOption) (*S3ObjectStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	endpoint := cfg.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	if endpoint != "" {
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid storage endpoint: %w", err)
		}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	s := &S3ObjectStorage{
		client:   client,
		bucket:   cfg.Bucket,
		domain:   strings.TrimRight(cfg.Domain, "/"),
		basePath: strings.Trim(cfg.BasePath, "/"),
		maxBytes: DefaultMaxImageBytes,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Upload compresses the image, stores it under a fresh key and returns its
// public URL
func (s *S3ObjectStorage) Upload(ctx context.Context, data []byte) (string, error) {
	compressed, err := Compress(data, s.maxBytes)
	if err != nil {
		return "", err
	}

	key := s.newKey()
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(compressed),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	s.logger.Debug("Image stored", zap.String("key", key), zap.Int("bytes", len(compressed)))
	return s.domain + "/" + key, nil
}

// Delete removes the object behind a public URL. URLs without a key are
// ignored.
func (s *S3ObjectStorage) Delete(ctx context.Context, imageURL string) error {
	key := s.KeyFromURL(imageURL)
	if key == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

// KeyFromURL derives the object key from a stored URL: the path of an
// absolute URL, the remainder after the configured domain, or the value
// itself without leading slashes
func (s *S3ObjectStorage) KeyFromURL(imageURL string) string {
	v := strings.TrimSpace(imageURL)
	if v == "" {
		return ""
	}
	if u, err := url.Parse(v); err == nil && u.Scheme != "" && u.Host != "" {
		return strings.TrimLeft(u.Path, "/")
	}
	if s.domain != "" {
		if rest, ok := strings.CutPrefix(v, s.domain+"/"); ok {
			return rest
		}
	}
	return strings.TrimLeft(v, "/")
}

func (s *S3ObjectStorage) newKey() string {
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ".jpg"
	if s.basePath == "" {
		return name
	}
	return s.basePath + "/" + name
}

// GetBucket returns the bucket name
func (s *S3ObjectStorage) GetBucket() string {
	return s.bucket
}

// UnconfiguredStorage stands in when no object store is configured
type UnconfiguredStorage struct{}

// Upload always fails with ErrNotConfigured
func (UnconfiguredStorage) Upload(context.Context, []byte) (string, error) {
	return "", ErrNotConfigured
}

// Delete fails with ErrNotConfigured unless there is nothing to delete
func (UnconfiguredStorage) Delete(_ context.Context, imageURL string) error {
	if strings.TrimSpace(imageURL) == "" {
		return nil
	}
	return ErrNotConfigured
}

// NewImageStorage returns the S3 store when cfg is complete and the
// unconfigured stand-in otherwise
func NewImageStorage(cfg *infraconfig.StorageConfig, maxBytes int, logger *zap.Logger) (ImageStorage, error) {
	if cfg == nil || !cfg.Configured() {
		logger.Warn("Image storage is not configured; uploads are disabled")
		return UnconfiguredStorage{}, nil
	}
	return NewS3ObjectStorage(cfg, WithLogger(logger), WithMaxBytes(maxBytes))
}

var (
	_ ImageStorage = (*S3ObjectStorage)(nil)
	_ ImageStorage = UnconfiguredStorage{}
)
