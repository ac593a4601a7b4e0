// Package storage hosts uploaded images on Amazon S3.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/msaadaplus/msaada_backend/internal/core/ports/clients"
	"github.com/msaadaplus/msaada_backend/internal/platform/config"
)

// putObjectAPI is the subset of the S3 client used here.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ImageStore uploads images to a bucket and returns their public URL.
type S3ImageStore struct {
	client        putObjectAPI
	bucket        string
	publicBaseURL string
}

var _ clients.ImageStore = (*S3ImageStore)(nil)

// NewS3ImageStore loads AWS credentials from the default chain.
func NewS3ImageStore(ctx context.Context, cfg config.StorageConfig) (*S3ImageStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	base := cfg.PublicBaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return &S3ImageStore{client: s3.NewFromConfig(awsCfg), bucket: cfg.Bucket, publicBaseURL: base}, nil
}

// Upload stores body under key.
func (s *S3ImageStore) Upload(ctx context.Context, key string, contentType string, body io.Reader, size int64) (string, error) {
	if s.bucket == "" {
		return "", fmt.Errorf("image storage is not configured")
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return s.publicBaseURL + "/" + key, nil
}
