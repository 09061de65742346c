package probes

import "lookout/pkg/config"

// Settings carries the ambient configuration consumed by the probe
// set. It is materialized once at startup and handed to the engine,
// so nothing below the transport boundary reads the process
// environment directly.
type Settings struct {
	Port        string
	Environment string

	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string

	// AWSAccessKey and AWSSecretKey are shared by the S3 and SES
	// probes; when empty both fall back to the SDK's default chain.
	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string

	S3Bucket   string
	S3Endpoint string

	SESRegion   string
	SESEndpoint string
	EmailFrom   string

	DNSCheckHost string
	DNSCheckPort string
}

// LoadSettings reads probe configuration from the environment. Every
// dependency-related key is optional; a probe whose keys are absent
// is skipped by the engine.
func LoadSettings() Settings {
	region := config.GetEnv("AWS_REGION", "us-east-1")

	return Settings{
		Port:        config.GetEnv("PORT", "18030"),
		Environment: config.GetEnv("ENVIRONMENT", "development"),

		DatabaseHost:     config.GetEnv("DB_HOST", ""),
		DatabasePort:     config.GetEnv("DB_PORT", "5432"),
		DatabaseName:     config.GetEnv("DB_NAME", ""),
		DatabaseUser:     config.GetEnv("DB_USER", ""),
		DatabasePassword: config.GetEnv("DB_PASSWORD", ""),

		AWSRegion:    region,
		AWSAccessKey: config.GetEnv("S3_ACCESS_KEY", ""),
		AWSSecretKey: config.GetEnv("S3_SECRET_KEY", ""),

		S3Bucket:   config.GetEnv("S3_BUCKET_NAME", ""),
		S3Endpoint: config.GetEnv("S3_ENDPOINT", ""),

		SESRegion:   config.GetEnv("SES_REGION", region),
		SESEndpoint: config.GetEnv("SES_ENDPOINT", ""),
		EmailFrom:   config.GetEnv("SES_FROM_EMAIL", ""),

		DNSCheckHost: config.GetEnv("DNS_CHECK_HOST", ""),
		DNSCheckPort: config.GetEnv("DNS_CHECK_PORT", "80"),
	}
}

// All returns the full probe set in its fixed declaration order. The
// engine reports results in this order regardless of which probe
// finishes first.
func All(cfg Settings) []Probe {
	return []Probe{
		NewPortProbe(cfg),
		NewPostgresProbe(cfg),
		NewS3Probe(cfg),
		NewSESProbe(cfg),
		NewTCPProbe(cfg),
	}
}
