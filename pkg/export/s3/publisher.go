package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

const (
	DefaultRegion = "us-east-1" // Default region if not specified in AWS profile
)

// PutObjectAPI is the slice of the S3 client the publisher needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Settings struct {
	// Bucket receiving published reports. Publishing is disabled when empty.
	Bucket string
	// Prefix prepended to every object key (default: "reports/")
	Prefix string
	// Profile is the shared AWS config profile (default: "")
	Profile string
	// Region used when the profile has none (default: "us-east-1")
	Region string
}

func DefaultSettings() Settings {
	return Settings{
		Prefix: "reports/",
		Region: DefaultRegion,
	}
}

// Publisher uploads rendered reports to an S3 bucket.
type Publisher struct {
	client PutObjectAPI
	bucket string
	prefix string
}

func LoadConfig(ctx context.Context, settings Settings) (*awssdk.Config, error) {
	region := settings.Region
	if region == "" {
		region = DefaultRegion
	}
	opts := []func(*config.LoadOptions) error{config.WithDefaultRegion(region)}
	if settings.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(settings.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return &awsCfg, nil
}

func NewPublisher(ctx context.Context, settings Settings) (*Publisher, error) {
	if settings.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required for publishing")
	}
	awsCfg, err := LoadConfig(ctx, settings)
	if err != nil {
		return nil, err
	}
	return NewPublisherFromClient(s3.NewFromConfig(*awsCfg), settings.Bucket, settings.Prefix), nil
}

func NewPublisherFromClient(client PutObjectAPI, bucket, prefix string) *Publisher {
	return &Publisher{client: client, bucket: bucket, prefix: prefix}
}

// Publish stores body under prefix+name and returns the s3:// location.
func (p *Publisher) Publish(ctx context.Context, name string, body []byte) (string, error) {
	key := path.Join(strings.TrimSuffix(p.prefix, "/"), path.Base(name))
	key = strings.TrimPrefix(key, "/")

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awssdk.String(p.bucket),
		Key:         awssdk.String(key),
		Body:        bytes.NewReader(body),
		ContentType: awssdk.String(contentType(name)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to publish report to s3://%s/%s: %w", p.bucket, key, err)
	}

	location := fmt.Sprintf("s3://%s/%s", p.bucket, key)
	zerolog.Ctx(ctx).Info().Str("location", location).Int("bytes", len(body)).Msg("Report published")
	return location, nil
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".html":
		return "text/html; charset=utf-8"
	case ".json":
		return "application/json"
	case ".yaml":
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}
