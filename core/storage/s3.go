package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"group-planner/core/config"
	"group-planner/core/logger"
)

// ObjectStore uploads artifacts and issues time-limited download links
type ObjectStore interface {
	Upload(ctx context.Context, key string, contentType string, body []byte) error
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// S3Store backs ObjectStore with an S3 bucket
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// NewS3Store builds an S3 client from static credentials in config
func NewS3Store(cfg config.AWSConfig) (*S3Store, error) {
	if cfg.ExportBucket == "" {
		return nil, fmt.Errorf("AWS_EXPORT_BUCKET is not configured")
	}

	client := s3.New(s3.Options{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	})

	return &S3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.ExportBucket,
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, key string, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error("S3Store:Upload:Error", "error", err, "key", key, "bucket", s.bucket)
		return err
	}

	logger.Info("S3Store:Upload:Success", "key", key, "bytes", len(body))
	return nil
}

func (s *S3Store) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		logger.Error("S3Store:PresignedURL:Error", "error", err, "key", key)
		return "", err
	}
	return req.URL, nil
}
