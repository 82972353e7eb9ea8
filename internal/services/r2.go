package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "eventbroker/internal/config"
)

// R2Service implements StorageService for Cloudflare R2 (S3-compatible).
type R2Service struct {
	client   *s3.Client
	uploader *manager.Uploader
	config   appconfig.R2Config
}

// NewR2Service creates a new R2 storage service
func NewR2Service(cfg appconfig.R2Config) (*R2Service, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("R2 credentials not configured")
	}

	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		} else {
			o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
		}
		o.UsePathStyle = true
	})

	return &R2Service{
		client:   client,
		uploader: manager.NewUploader(client),
		config:   cfg,
	}, nil
}

// Upload stores a file in R2 and returns its public URL.
func (r *R2Service) Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) (string, error) {
	key = strings.TrimPrefix(key, "/")

	input := &s3.PutObjectInput{
		Bucket:        aws.String(r.config.BucketName),
		Key:           aws.String(key),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		CacheControl:  aws.String("public, max-age=31536000"),
	}

	if _, err := r.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}

	return r.GetURL(key), nil
}

// Delete removes a file from R2
func (r *R2Service) Delete(ctx context.Context, key string) error {
	key = strings.TrimPrefix(key, "/")

	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from R2: %w", err)
	}
	return nil
}

// GetURL returns the public URL for a stored object
func (r *R2Service) GetURL(key string) string {
	key = strings.TrimPrefix(key, "/")

	if r.config.PublicURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(r.config.PublicURL, "/"), key)
	}
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com/%s/%s", r.config.AccountID, r.config.BucketName, key)
}

// keyFor maps a public URL back to its object key, when the URL belongs to
// this bucket.
func (r *R2Service) keyFor(mediaURL string) (string, bool) {
	prefix := r.GetURL("")
	if !strings.HasPrefix(mediaURL, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(mediaURL, prefix)
	return key, key != ""
}

// KeyFromURL maps a public media URL back to its storage key, when the
// storage backend supports it.
func KeyFromURL(s StorageService, mediaURL string) (string, bool) {
	type keyMapper interface {
		keyFor(string) (string, bool)
	}
	if m, ok := s.(keyMapper); ok {
		return m.keyFor(mediaURL)
	}
	return "", false
}
