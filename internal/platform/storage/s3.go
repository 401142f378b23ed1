// Package storage wraps the S3 client used for publishing export archives
// and generated candidate images.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client uploads objects to a single bucket and derives the public,
// virtual-hosted-style download URL for them. The bucket is assumed to be
// publicly readable; no URLs are signed.
type Client struct {
	s3     *s3.Client
	bucket string
	region string
	logger *slog.Logger
}

// New constructs a Client from the default AWS credential chain.
func New(ctx context.Context, bucket, region string, logger *slog.Logger) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &Client{
		s3:     s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
		logger: logger.With("component", "storage"),
	}, nil
}

// Upload writes body under key with the given content type. Custom
// metadata, when non-empty, is attached to the object. A single attempt is
// made; callers decide whether a failure is fatal.
func (c *Client) Upload(ctx context.Context, key string, body []byte, contentType string, metadata map[string]string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	}
	if len(metadata) > 0 {
		input.Metadata = metadata
	}

	if _, err := c.s3.PutObject(ctx, input); err != nil {
		return fmt.Errorf("uploading s3://%s/%s: %w", c.bucket, key, err)
	}
	c.logger.InfoContext(ctx, "object uploaded", "key", key, "bytes", len(body))
	return nil
}

// PublicURL returns the virtual-hosted-style URL for key.
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}
