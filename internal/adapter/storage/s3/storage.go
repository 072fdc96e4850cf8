// Package s3 implements the object storage contract on MinIO.
package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/SainteOfficial/autohaus-service/internal/platform/logger"
)

// Storage uploads photo objects to a single public-read bucket and builds
// the URLs the catalog serves to browsers.
type Storage struct {
	client    *minio.Client
	bucket    string
	publicURL string
	logger    *logger.Logger
}

// New connects to MinIO and makes sure the bucket exists. The bucket gets a
// public read policy so the stored photo URLs are directly servable.
func New(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool, log *logger.Logger) (*Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to object storage: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
		policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
		if err := client.SetBucketPolicy(ctx, bucket, policy); err != nil {
			log.Warn("failed to set bucket policy", "bucket", bucket, "error", err)
		}
	}

	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return &Storage{
		client:    client,
		bucket:    bucket,
		publicURL: fmt.Sprintf("%s://%s/%s", scheme, endpoint, bucket),
		logger:    log,
	}, nil
}

// Upload stores the object under key and returns its public URL.
func (s *Storage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload object %s: %w", key, err)
	}
	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}

// Remove deletes the given objects. It keeps going past individual
// failures and reports the first error at the end.
func (s *Storage) Remove(ctx context.Context, keys []string) error {
	var firstErr error
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			s.logger.Warn("failed to remove object", "key", key, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("remove object %s: %w", key, err)
			}
		}
	}
	return firstErr
}
