package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Client is the subset of the S3 API used by S3Storage.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Config describes the bucket.
type S3Config struct {
	Bucket         string
	Region         string
	AccessKeyID    string
	SecretKey      string
	Endpoint       string // S3-compatible services
	BaseURL        string // public URL prefix
	ForcePathStyle bool
}

// S3Option configures NewS3Storage.
type S3Option func(*s3Options)

type s3Options struct {
	client        S3Client
	configOptions []func(*config.LoadOptions) error
	uploadTimeout time.Duration
}

// WithS3Client replaces the SDK client, mainly for tests.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) { o.client = client }
}

// WithS3ConfigOption appends an AWS config load option.
func WithS3ConfigOption(opt func(*config.LoadOptions) error) S3Option {
	return func(o *s3Options) { o.configOptions = append(o.configOptions, opt) }
}

// WithS3UploadTimeout bounds each upload.
func WithS3UploadTimeout(d time.Duration) S3Option {
	return func(o *s3Options) { o.uploadTimeout = d }
}

// S3Storage stores files in a bucket.
type S3Storage struct {
	client        S3Client
	bucket        string
	baseURL       string
	uploadTimeout time.Duration
}

// NewS3Storage loads AWS configuration unless a client is supplied.
func NewS3Storage(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("%w: bucket and region are required", ErrInvalidConfig)
	}

	o := &s3Options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			loadOpts = append(loadOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}
		loadOpts = append(loadOpts, o.configOptions...)

		awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
		}
		client = s3.NewFromConfig(awsCfg, func(so *s3.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
		})
	}

	baseURL := cfg.BaseURL
	switch {
	case baseURL != "":
	case cfg.Endpoint != "":
		baseURL = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &S3Storage{client: client, bucket: cfg.Bucket, baseURL: baseURL, uploadTimeout: o.uploadTimeout}, nil
}

// Put uploads data under key path.
func (s *S3Storage) Put(ctx context.Context, path string, data []byte, contentType string) (*File, error) {
	key, err := cleanPath(path)
	if err != nil {
		return nil, err
	}
	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return nil, classifyS3Error(err, "upload")
	}
	return &File{Path: key, Size: int64(len(data)), ContentType: contentType, URL: s.URL(key)}, nil
}

// Exists reports whether the object exists.
func (s *S3Storage) Exists(ctx context.Context, path string) bool {
	key, err := cleanPath(path)
	if err != nil {
		return false
	}
	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	return err == nil
}

// Delete removes the object, failing with ErrFileNotFound when it is missing.
func (s *S3Storage) Delete(ctx context.Context, path string) error {
	key, err := cleanPath(path)
	if err != nil {
		return err
	}
	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)}); err != nil {
		return classifyS3Error(err, "head")
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)}); err != nil {
		return classifyS3Error(err, "delete")
	}
	return nil
}

// URL joins the public base URL and path.
func (s *S3Storage) URL(path string) string {
	return s.baseURL + strings.TrimPrefix(path, "/")
}

func classifyS3Error(err error, op string) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s", ErrOperationTimeout, op)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s", ErrOperationCanceled, op)
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: %v", ErrFileNotFound, err)
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", ErrFileNotFound, err)
	}
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied":
			return fmt.Errorf("%w: %s", ErrAccessDenied, op)
		case "SlowDown", "ServiceUnavailable", "RequestTimeout":
			return fmt.Errorf("%w: %s", ErrServiceUnavailable, op)
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %v", ErrFileNotFound, err)
		case "NoSuchBucket":
			return ErrBucketNotFound
		}
		return fmt.Errorf("%s failed (code %s): %w", op, apiErr.ErrorCode(), err)
	}
	return fmt.Errorf("%s failed: %w", op, err)
}
