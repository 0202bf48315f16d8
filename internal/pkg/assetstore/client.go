package assetstore

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// UploadResult describes a stored asset: the public URL readers fetch and
// the object key used to address the asset for deletion.
type UploadResult struct {
	URL     string
	AssetID string
}

// Client wraps the S3 client with blog-asset functionality
type Client struct {
	s3Client *s3.Client
	config   *Config
}

// NewClient creates a new asset store client
func NewClient(cfg *Config) (*Client, error) {
	if !cfg.IsEnabled() {
		return nil, fmt.Errorf("asset store is disabled")
	}

	// Create AWS config
	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Create S3 client
	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			// S3-compatible services need path-style URLs
			o.UsePathStyle = true
			o.UseAccelerate = false
		}
	})

	client := &Client{
		s3Client: s3Client,
		config:   cfg,
	}

	log.Infof("[AssetStore] Initialized S3 client for bucket: %s", cfg.GetBucketName())
	return client, nil
}

// Upload stores an image blob and returns its public URL plus the asset id
// needed to delete it later.
func (c *Client) Upload(ctx context.Context, body io.Reader, size int64, mimeType string) (*UploadResult, error) {
	bucketName := c.config.GetBucketName()
	objectKey := c.config.ObjectKey(uuid.NewString(), ExtensionForMime(mimeType))

	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentType:   aws.String(mimeType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload asset to S3: %w", err)
	}

	log.Infof("[AssetStore] Uploaded: s3://%s/%s (%d bytes)", bucketName, objectKey, size)
	return &UploadResult{
		URL:     c.config.PublicURL(objectKey),
		AssetID: objectKey,
	}, nil
}

// Delete removes a stored asset. Callers treat failures as best-effort.
func (c *Client) Delete(ctx context.Context, assetID string) error {
	bucketName := c.config.GetBucketName()

	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(assetID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete asset from S3: %w", err)
	}

	log.Infof("[AssetStore] Deleted: s3://%s/%s", bucketName, assetID)
	return nil
}

// ExtensionForMime maps common image content types to a file extension for
// the object key. Unknown types fall back to a neutral extension.
func ExtensionForMime(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/avif":
		return ".avif"
	case "image/bmp":
		return ".bmp"
	default:
		return ".bin"
	}
}
