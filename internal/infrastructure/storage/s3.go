package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"screen-match/internal/domain/port"
)

// S3Config настройки S3-хранилища артефактов
type S3Config struct {
	Bucket   string
	Prefix   string
	Endpoint string // для MinIO и других S3-совместимых хранилищ
}

type s3Storage struct {
	client *s3.Client
	config S3Config
}

// NewS3Storage создаёт хранилище артефактов в бакете S3
func NewS3Storage(ctx context.Context, s S3Config) (port.ArtifactStore, error) {
	if s.Bucket == "" {
		return nil, errors.New("S3 bucket is required")
	}

	c, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS config")
	}
	client := s3.NewFromConfig(c, func(o *s3.Options) {
		o.UsePathStyle = true
		if s.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.Endpoint)
		}
	})

	return &s3Storage{
		client: client,
		config: s,
	}, nil
}

func (s *s3Storage) objectKey(key string) string {
	if s.config.Prefix == "" {
		return key
	}
	return strings.TrimSuffix(s.config.Prefix, "/") + "/" + key
}

func (s *s3Storage) Put(ctx context.Context, key string, data []byte) (string, error) {
	objectKey := s.objectKey(key)
	contentType := http.DetectContentType(data)

	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}); err != nil {
		return "", errors.Wrap(err, "failed to upload to S3")
	}

	return fmt.Sprintf("s3://%s/%s", s.config.Bucket, objectKey), nil
}

func (s *s3Storage) Get(ctx context.Context, url string) ([]byte, error) {
	key := strings.TrimPrefix(url, fmt.Sprintf("s3://%s/", s.config.Bucket))

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to download from S3")
	}
	defer result.Body.Close()

	var buffer bytes.Buffer
	if _, err := buffer.ReadFrom(result.Body); err != nil {
		return nil, errors.Wrap(err, "failed to read S3 object")
	}
	return buffer.Bytes(), nil
}
