package assetstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/StefanHaring/InkPress/internal/pkg/env"
)

// Config holds asset store configuration
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	PublicBaseURL   string // Optional CDN/base URL for public links
	Enabled         bool
}

// LoadConfig loads asset store configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("ASSET_S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("ASSET_S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("ASSET_S3_REGION", "us-east-1"),
		BucketName:      env.GetEnv("ASSET_S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("ASSET_S3_ENDPOINT_URL", ""),
		PublicBaseURL:   env.GetEnv("ASSET_S3_PUBLIC_BASE_URL", ""),
		Enabled:         env.GetEnv("ASSET_S3_ENABLED", "false") == "true",
	}

	// Validate required fields if the asset store is enabled
	if config.Enabled {
		if config.AccessKeyID == "" {
			return nil, errors.New("ASSET_S3_ACCESS_KEY_ID is required when the asset store is enabled")
		}
		if config.SecretAccessKey == "" {
			return nil, errors.New("ASSET_S3_SECRET_ACCESS_KEY is required when the asset store is enabled")
		}
		if config.BucketName == "" {
			return nil, errors.New("ASSET_S3_BUCKET_NAME is required when the asset store is enabled")
		}
	}

	return config, nil
}

// IsEnabled returns true if the asset store is enabled
func (c *Config) IsEnabled() bool {
	return c.Enabled
}

// ObjectKey generates a standardized object key for a blog asset
func (c *Config) ObjectKey(assetUUID, fileExtension string) string {
	// Format: blogs/UUID.ext
	return fmt.Sprintf("blogs/%s%s", assetUUID, fileExtension)
}

// PublicURL builds the externally reachable URL for an object key
func (c *Config) PublicURL(objectKey string) string {
	if c.PublicBaseURL != "" {
		return strings.TrimRight(c.PublicBaseURL, "/") + "/" + objectKey
	}
	if c.EndpointURL != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.EndpointURL, "/"), c.BucketName, objectKey)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.BucketName, c.Region, objectKey)
}

// GetBucketName returns the bucket name as configured
func (c *Config) GetBucketName() string {
	return c.BucketName
}
