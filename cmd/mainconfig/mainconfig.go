package mainconfig

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	appconfig "github.com/wolfman30/webmcpsetup/internal/config"
)

// sesLoadOptions picks the region and, when both keys are configured, pins
// static credentials instead of walking the default provider chain.
func sesLoadOptions(cfg *appconfig.Config) []func(*config.LoadOptions) error {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.AWSRegion)}

	keyID := strings.TrimSpace(cfg.AWSAccessKeyID)
	secret := strings.TrimSpace(cfg.AWSSecretAccessKey)
	if keyID != "" && secret != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(keyID, secret, ""),
		))
	}
	return opts
}

// sesClientOptions points the client at AWS_ENDPOINT_OVERRIDE (LocalStack) when set.
func sesClientOptions(cfg *appconfig.Config) []func(*sesv2.Options) {
	endpoint := strings.TrimSpace(cfg.AWSEndpointOverride)
	if endpoint == "" {
		return nil
	}
	return []func(*sesv2.Options){func(o *sesv2.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	}}
}

// NewSESClient builds the SESv2 client used by the confirmation mailer.
func NewSESClient(ctx context.Context, cfg *appconfig.Config) (*sesv2.Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mainconfig: config is required")
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, sesLoadOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("mainconfig: load aws config: %w", err)
	}
	return sesv2.NewFromConfig(awsCfg, sesClientOptions(cfg)...), nil
}
