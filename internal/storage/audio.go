package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
)

const DefaultURLExpiry = 15 * time.Minute

// Presigner is the subset of the S3 presign client used by AudioStore.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// AudioStore hands out time-limited URLs for meditation audio. With no
// bucket configured it is disabled and URL returns "".
type AudioStore struct {
	bucket  string
	presign Presigner
	expiry  time.Duration
}

func NewAudioStore(presign Presigner, bucket string) *AudioStore {
	return &AudioStore{bucket: bucket, presign: presign, expiry: DefaultURLExpiry}
}

// NewAudioStoreFromConfig builds the S3 client from static credentials. An
// empty S3_BUCKET yields a disabled store.
func NewAudioStoreFromConfig(cfg *config.Config) *AudioStore {
	if strings.TrimSpace(cfg.S3Bucket) == "" {
		return NewAudioStore(nil, "")
	}

	opts := s3.Options{
		Region: cfg.S3Region,
	}
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	client := s3.New(opts)
	return NewAudioStore(s3.NewPresignClient(client), cfg.S3Bucket)
}

func (s *AudioStore) Enabled() bool {
	return s != nil && s.bucket != "" && s.presign != nil
}

// URL presigns a GET for key.
func (s *AudioStore) URL(ctx context.Context, key string) (string, error) {
	if !s.Enabled() || key == "" {
		return "", nil
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("storage: presign %s: %w", key, err)
	}
	return req.URL, nil
}
