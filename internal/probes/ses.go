package probes

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/smithy-go"
)

const sesTimeout = 5 * time.Second

// SESProbe looks up the verification status of the configured sender
// identity in SES. A reachable service with an unverified identity is
// still a successful probe; emailVerified carries the distinction.
type SESProbe struct {
	from      string
	region    string
	endpoint  string
	accessKey string
	secretKey string
}

func NewSESProbe(cfg Settings) *SESProbe {
	return &SESProbe{
		from:      cfg.EmailFrom,
		region:    cfg.SESRegion,
		endpoint:  cfg.SESEndpoint,
		accessKey: cfg.AWSAccessKey,
		secretKey: cfg.AWSSecretKey,
	}
}

func (p *SESProbe) Service() string { return "SES Email Service" }

// Eligible requires the sender address; region falls back to the
// shared AWS region.
func (p *SESProbe) Eligible() bool { return p.from != "" }

func (p *SESProbe) Execute(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, sesTimeout)
	defer cancel()

	client, err := p.newClient(ctx)
	if err != nil {
		return failure(p.Service(), "SES client initialization failed", map[string]interface{}{
			"accessible": false,
			"error":      err.Error(),
		})
	}

	out, err := client.GetEmailIdentity(ctx, &sesv2.GetEmailIdentityInput{
		EmailIdentity: aws.String(p.from),
	})
	if err != nil {
		details := map[string]interface{}{
			"accessible": false,
			"identity":   p.from,
		}
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			details["errorCode"] = apiErr.ErrorCode()
		} else {
			details["error"] = err.Error()
		}
		return failure(p.Service(), "SES identity lookup failed", details)
	}

	return success(p.Service(), "SES email service is accessible", map[string]interface{}{
		"accessible":    true,
		"identity":      p.from,
		"emailVerified": out.VerifiedForSendingStatus,
	})
}

func (p *SESProbe) newClient(ctx context.Context) (*sesv2.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(p.region),
	}

	if p.accessKey != "" && p.secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(p.accessKey, p.secretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	var sesOpts []func(*sesv2.Options)
	if p.endpoint != "" {
		sesOpts = append(sesOpts, func(o *sesv2.Options) {
			o.BaseEndpoint = aws.String(p.endpoint)
		})
	}

	return sesv2.NewFromConfig(awsCfg, sesOpts...), nil
}
