// Package storage is the object-storage side of the persistence boundary:
// receipt images and category images go to S3-compatible buckets and come
// back as public URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Bucket names mirror the hosted backend's storage buckets.
const (
	BucketReceipts       = "receipts"
	BucketCategoryImages = "category_images"
)

// Uploader stores an object and returns its public URL. The payment step's
// place-order control stays disabled until a receipt upload has confirmed
// a stored URL.
type Uploader interface {
	Upload(ctx context.Context, bucket, key, contentType string, body io.Reader) (string, error)
}

type s3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage uploads to S3-compatible object storage.
type S3Storage struct {
	client        s3Client
	publicBaseURL string
}

// NewS3Storage creates an uploader from the ambient AWS configuration.
// publicBaseURL is the CDN or storage host objects are served from.
func NewS3Storage(ctx context.Context, region, publicBaseURL string) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Storage{
		client:        s3.NewFromConfig(cfg),
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

// newS3StorageWithClient is used by tests to inject a fake client.
func newS3StorageWithClient(client s3Client, publicBaseURL string) *S3Storage {
	return &S3Storage{client: client, publicBaseURL: strings.TrimSuffix(publicBaseURL, "/")}
}

// Upload writes the object and returns its public URL.
func (s *S3Storage) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to %s/%s: %w", bucket, key, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, bucket, key), nil
}
