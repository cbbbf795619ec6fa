// Package blob implements the thumbnail object store over any S3-compatible
// endpoint. Uploads return the public URL under the configured base; deletes
// take the object key, recoverable from a stored URL with KeyFromURL.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/swipefile/swipe-library/internal/config"
)

// Store is the object store handle.
type Store struct {
	client   *s3.S3
	uploader *s3manager.Uploader
	bucket   string
	baseURL  string
}

// New builds a Store from the blob section of the config.
func New(cfg config.Blob) (*Store, error) {
	const op = "blob.New"
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%s: endpoint is required", op)
	}

	awsConfig := &aws.Config{
		Region:           aws.String(cfg.Region),
		Endpoint:         aws.String(cfg.Endpoint),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		S3ForcePathStyle: aws.Bool(true),
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.r2.dev", cfg.Bucket)
	}

	return &Store{
		client:   s3.New(sess),
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.Bucket,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload stores data under key and returns its public URL.
func (s *Store) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	const op = "blob.Upload"
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return s.baseURL + "/" + key, nil
}

// Delete removes the object stored under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	const op = "blob.Delete"
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// KeyFromURL recovers the object key from a stored public URL by taking
// everything after the bucket path segment. The second return is false when
// the URL does not point into this store's bucket.
func (s *Store) KeyFromURL(url string) (string, bool) {
	return KeyFromURL(url, s.bucket, s.baseURL)
}

// KeyFromURL is the bucket-aware parse shared with tests. URLs under baseURL
// map directly; otherwise the path is scanned for the bucket segment.
func KeyFromURL(url, bucket, baseURL string) (string, bool) {
	base := strings.TrimRight(baseURL, "/") + "/"
	if base != "/" && strings.HasPrefix(url, base) {
		key := strings.TrimPrefix(url, base)
		return key, key != ""
	}
	parts := strings.Split(url, "/")
	for i, part := range parts {
		if part == bucket && i+1 < len(parts) {
			return strings.Join(parts[i+1:], "/"), true
		}
	}
	return "", false
}
