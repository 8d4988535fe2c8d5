package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"go.uber.org/zap"
)

// S3Storage implements Storage on an S3 bucket. Every key is placed below prefix.
type S3Storage struct {
	client   *s3.S3
	uploader *s3manager.Uploader
	bucket   string
	prefix   string
	logger   *zap.Logger
}

// NewS3Storage creates an S3 backend. Credentials come from the default AWS chain.
func NewS3Storage(region, bucket, prefix string, logger *zap.Logger) (*S3Storage, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}

	logger.Info("S3 storage initialized",
		zap.String("bucket", bucket),
		zap.String("region", region),
		zap.String("prefix", prefix),
	)

	return &S3Storage{
		client:   s3.New(sess),
		uploader: s3manager.NewUploader(sess),
		bucket:   bucket,
		prefix:   prefix,
		logger:   logger,
	}, nil
}

func (s *S3Storage) objectKey(key string) (string, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	if s.prefix == "" {
		return cleaned, nil
	}
	return path.Join(s.prefix, cleaned), nil
}

// Upload stores data under key. The returned path is the key without prefix.
func (s *S3Storage) Upload(ctx context.Context, key string, contentType string, data io.Reader) (string, int64, error) {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return "", 0, err
	}

	reader := &countingReader{r: data}
	_, err = s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		ContentType: aws.String(contentType),
		Body:        reader,
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to upload %q to %q: %w", objectKey, s.bucket, err)
	}

	s.logger.Info("Document uploaded to S3",
		zap.String("bucket", s.bucket),
		zap.String("key", objectKey),
		zap.Int64("size", reader.count),
	)

	cleaned, _ := cleanKey(key)
	return cleaned, reader.count, nil
}

// Download streams the object stored under key
func (s *S3Storage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to download %q: %w", objectKey, err)
	}
	return out.Body, nil
}

// Delete removes the object stored under key. S3 deletes are idempotent.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil && !isS3NotFound(err) {
		return fmt.Errorf("failed to delete %q: %w", objectKey, err)
	}
	return nil
}

func isS3NotFound(err error) bool {
	var aerr awserr.Error
	if !errors.As(err, &aerr) {
		return false
	}
	switch aerr.Code() {
	case s3.ErrCodeNoSuchKey, "NotFound":
		return true
	}
	return false
}
