package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	s3Config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"reviewflow/internal/config"
	"reviewflow/internal/errdefs"
	"reviewflow/pkg/logging"
)

// BlobStore keeps submitted documents in an S3-compatible bucket
// (MinIO in dev). Submissions are write-once: a resubmission uploads a
// new object under a new key rather than overwriting the old one.
type BlobStore struct {
	client *s3.Client
	bucket *string
}

func New(ctx context.Context, cfg *config.Config) (*BlobStore, error) {
	s3Cfg, err := s3Config.LoadDefaultConfig(ctx,
		s3Config.WithRegion(cfg.S3Region),
		s3Config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.S3AccessKeyID,
				cfg.S3SecretAccessKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(s3Cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})

	store := &BlobStore{client: client, bucket: aws.String(cfg.S3Bucket)}
	if err := store.createBucket(ctx, cfg.S3Bucket); err != nil {
		return nil, err
	}
	return store, nil
}

func (b *BlobStore) Put(ctx context.Context, path string, data []byte) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: b.bucket,
		Key:    aws.String(path),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", path, errdefs.ErrBlobUnavailable)
	}
	return nil
}

func (b *BlobStore) Get(ctx context.Context, path string) ([]byte, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: b.bucket,
		Key:    aws.String(path),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("object %s: %w", path, errdefs.ErrFileNotFound)
		}
		return nil, fmt.Errorf("failed to get object %s: %w", path, errdefs.ErrBlobUnavailable)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", path, errdefs.ErrBlobUnavailable)
	}
	return data, nil
}

// PresignGet returns a short-lived download URL for a stored document.
func (b *BlobStore) PresignGet(ctx context.Context, path string) (string, error) {
	presigner := s3.NewPresignClient(b.client)

	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: b.bucket,
		Key:    aws.String(path),
	},
		s3.WithPresignExpires(5*time.Minute),
	)
	if err != nil {
		return "", fmt.Errorf("failed to presign object %s: %w", path, errdefs.ErrBlobUnavailable)
	}
	return req.URL, nil
}

func (b *BlobStore) createBucket(ctx context.Context, name string) error {
	_, err := b.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(name)})
	if err != nil {
		var opErr *awshttp.ResponseError
		if errors.As(err, &opErr) && opErr.HTTPStatusCode() == 409 {
			if logger, ok := logging.GetFromContext(ctx); ok {
				logger.Info(ctx, "Bucket already exists", zap.String("bucket", name))
			}
			return nil
		}
	}
	return err
}
