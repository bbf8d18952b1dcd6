package s3store

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jrsteele09/mobile-musician-api/internal/config"
	"github.com/jrsteele09/mobile-musician-api/storage"
	"github.com/pkg/errors"
)

var _ storage.ObjectStore = (*Store)(nil)

// PutObjectAPI is the part of the S3 client the store uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store keeps objects in an S3 compatible bucket (AWS or MinIO).
type Store struct {
	client    PutObjectAPI
	bucket    string
	publicURL string
}

// Seams for tests.
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) PutObjectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// New builds the S3 client from the storage configuration. Static
// credentials are used when an access key is configured, otherwise the
// default AWS credential chain applies.
func New(ctx context.Context, cfg config.StorageConfig) (*Store, error) {
	bucket := cfg.GetS3Bucket()
	if bucket == "" {
		return nil, errors.New("[s3store.New] S3_BUCKET is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.GetS3Region()),
	}
	if cfg.GetS3AccessKey() != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.GetS3AccessKey(),
			cfg.GetS3SecretKey(),
			"",
		)))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "[s3store.New] loading AWS config")
	}

	endpoint := cfg.GetS3Endpoint()
	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return NewWithClient(client, bucket, publicBase(cfg)), nil
}

// NewWithClient wires an existing client. Object URLs are
// <publicURL>/<bucket>/<key>.
func NewWithClient(client PutObjectAPI, bucket, publicURL string) *Store {
	return &Store{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *Store) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	key, err := storage.CleanKey(key)
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", errors.Wrapf(err, "Store.Put %s", key)
	}
	return s.URL(key), nil
}

func (s *Store) URL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key)
}

func publicBase(cfg config.StorageConfig) string {
	if u := cfg.GetS3PublicURL(); u != "" {
		return u
	}
	if e := cfg.GetS3Endpoint(); e != "" {
		return e
	}
	return fmt.Sprintf("https://s3.%s.amazonaws.com", cfg.GetS3Region())
}
