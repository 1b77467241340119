package s3infra

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sent-robotics/robot-relay/internal/config"
	"github.com/sent-robotics/robot-relay/internal/pkg/id"
)

// Archive keeps a history of camera captures in an S3 bucket. The local
// capture path only ever holds the latest image; the archive, when a bucket
// is configured, receives a copy of every successful capture under a
// ULID-ordered key. With no bucket configured every store is a no-op.
type Archive struct {
	client putAPI
	bucket string
}

// putAPI is the slice of the S3 client the archive uses.
type putAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewArchive builds the capture archive. When cfg.AWSEndpointURL is set
// (LocalStack), it overrides the endpoint and enables path-style
// addressing.
func NewArchive(cfg *config.Config) (*Archive, error) {
	a := &Archive{bucket: cfg.SnapshotArchiveBucket}
	if a.bucket == "" {
		return a, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config for S3: %w", err)
	}

	clientOpts := []func(*s3.Options){}
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
			o.UsePathStyle = true
		})
	}
	a.client = s3.NewFromConfig(awsCfg, clientOpts...)
	return a, nil
}

// Store uploads one capture. Best-effort: failures are logged and reported,
// and callers treat them as non-fatal; the local capture and the email
// dispatch do not depend on the archive.
func (a *Archive) Store(ctx context.Context, img []byte) (string, error) {
	if a.client == nil {
		return "", nil
	}
	key := fmt.Sprintf("captures/%s.jpg", id.New())
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(img),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		slog.Warn("capture archive upload failed", "bucket", a.bucket, "key", key, "err", err)
		return "", fmt.Errorf("s3 put object: %w", err)
	}
	slog.Info("capture archived", "bucket", a.bucket, "key", key)
	return fmt.Sprintf("s3://%s/%s", a.bucket, key), nil
}
