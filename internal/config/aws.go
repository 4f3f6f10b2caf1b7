package config

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
)

// LoadAwsConfig resolves AWS credentials from the default chain for the configured region
func LoadAwsConfig(ctx context.Context, cfg S3Config) (aws.Config, error) {
	opts := []func(*awsConfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsConfig.WithRegion(cfg.Region))
	}
	return awsConfig.LoadDefaultConfig(ctx, opts...)
}
