package probes

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const s3Timeout = 5 * time.Second

// S3Probe checks that the configured bucket exists and is accessible
// with the ambient credentials. HeadBucket transfers no object data.
type S3Probe struct {
	bucket    string
	region    string
	endpoint  string
	accessKey string
	secretKey string
}

func NewS3Probe(cfg Settings) *S3Probe {
	return &S3Probe{
		bucket:    cfg.S3Bucket,
		region:    cfg.AWSRegion,
		endpoint:  cfg.S3Endpoint,
		accessKey: cfg.AWSAccessKey,
		secretKey: cfg.AWSSecretKey,
	}
}

func (p *S3Probe) Service() string { return "S3 Object Storage" }

// Eligible requires a bucket name. The region defaults to us-east-1
// and credentials fall back to the SDK's default chain, so neither
// gates the probe.
func (p *S3Probe) Eligible() bool { return p.bucket != "" }

func (p *S3Probe) Execute(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, s3Timeout)
	defer cancel()

	client, err := p.newClient(ctx)
	if err != nil {
		return failure(p.Service(), "S3 client initialization failed", map[string]interface{}{
			"accessible": false,
			"error":      err.Error(),
		})
	}

	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(p.bucket)}); err != nil {
		details := map[string]interface{}{
			"accessible": false,
			"bucket":     p.bucket,
		}
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			details["errorCode"] = apiErr.ErrorCode()
		} else {
			details["error"] = err.Error()
		}
		return failure(p.Service(), "S3 bucket is not accessible", details)
	}

	return success(p.Service(), "S3 bucket is accessible", map[string]interface{}{
		"accessible": true,
		"bucket":     p.bucket,
		"region":     p.region,
	})
}

func (p *S3Probe) newClient(ctx context.Context) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(p.region),
	}

	// Use explicit credentials if provided, otherwise the default
	// credential chain (IAM roles)
	if p.accessKey != "" && p.secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(p.accessKey, p.secretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	var s3Opts []func(*s3.Options)
	if p.endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(p.endpoint)
			o.UsePathStyle = true // Required for MinIO and most S3-compatible storage
		})
	}

	return s3.NewFromConfig(awsCfg, s3Opts...), nil
}
