package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config holds settings for the S3-compatible object storage backend.
type Config struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
	Folder          string
}

// S3MediaStore stores project images in an S3-compatible bucket under a
// namespaced folder and addresses them by public URL.
type S3MediaStore struct {
	cfg    Config
	client *s3.Client
	logger *zerolog.Logger
}

// NewS3MediaStore creates an S3MediaStore from the given configuration.
func NewS3MediaStore(ctx context.Context, cfg Config, logger *zerolog.Logger) (*S3MediaStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load object storage configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3MediaStore{
		cfg:    cfg,
		client: client,
		logger: logger,
	}, nil
}

// Store uploads the image and returns its public URL. Constraint
// violations fail before any network call.
func (s *S3MediaStore) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	if err := ValidateImage(int64(len(data)), contentType); err != nil {
		return "", err
	}

	key := s.objectKey(contentType)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	url := fmt.Sprintf("%s/%s", strings.TrimRight(s.cfg.PublicBaseURL, "/"), key)

	s.logger.Info().Str("key", key).Msg("image uploaded to object storage")

	return url, nil
}

// Remove deletes a previously stored object by its public URL. URLs that
// do not point into our folder are ignored.
func (s *S3MediaStore) Remove(ctx context.Context, url string) error {
	key, ok := s.objectKeyFromURL(url)
	if !ok {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image %q: %w", key, err)
	}

	s.logger.Info().Str("key", key).Msg("image deleted from object storage")

	return nil
}

func (s *S3MediaStore) objectKey(contentType string) string {
	name := fmt.Sprintf("project-%d-%s", time.Now().UnixMilli(), uuid.NewString())
	return fmt.Sprintf("%s/%s%s", s.cfg.Folder, name, imageExtensions[contentType])
}

func (s *S3MediaStore) objectKeyFromURL(url string) (string, bool) {
	base := strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/"

	key, found := strings.CutPrefix(url, base)
	if !found || !strings.HasPrefix(key, s.cfg.Folder+"/") {
		return "", false
	}

	return key, true
}
