package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config enumerates every recognized environment option, defaulted where
// sensible. It is parsed and validated once at startup and passed by
// reference into components.
type Config struct {
	Environment string   `env:"APP_ENV"       envDefault:"development"`
	Port        int      `env:"PORT"          envDefault:"5000"`
	Origins     []string `env:"FRONTEND_URLS" envSeparator:","`

	Mongo   MongoConfig
	Token   TokenConfig
	SMTP    SMTPConfig
	Storage StorageConfig
}

// MongoConfig holds document store settings.
type MongoConfig struct {
	URI            string        `env:"MONGODB_URI"`
	Database       string        `env:"MONGODB_DB"              envDefault:"portfolio"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"5s"`
	MaxPoolSize    uint64        `env:"MONGODB_MAX_POOL_SIZE"   envDefault:"10"`
}

// TokenConfig holds session token settings.
type TokenConfig struct {
	Secret    string        `env:"JWT_SECRET"`
	ExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"168h"`
	Issuer    string        `env:"JWT_ISSUER"     envDefault:"portfolio-api"`
}

// SMTPConfig holds settings for the outbound email relay. Recipient
// overrides where contact notifications are delivered; it falls back to
// From.
type SMTPConfig struct {
	Host      string `env:"SMTP_HOST"`
	Port      int    `env:"SMTP_PORT"     envDefault:"465"`
	Username  string `env:"SMTP_USERNAME"`
	Password  string `env:"SMTP_PASSWORD"`
	From      string `env:"SMTP_FROM"`
	Recipient string `env:"CONTACT_RECIPIENT"`
}

// StorageConfig holds settings for the S3-compatible media storage.
type StorageConfig struct {
	Region          string `env:"STORAGE_REGION"            envDefault:"us-east-1"`
	Bucket          string `env:"STORAGE_BUCKET"`
	Endpoint        string `env:"STORAGE_ENDPOINT"`
	AccessKeyID     string `env:"STORAGE_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"STORAGE_SECRET_ACCESS_KEY"`
	PublicBaseURL   string `env:"STORAGE_PUBLIC_BASE_URL"`
	Folder          string `env:"STORAGE_FOLDER"            envDefault:"portfolio-projects"`
}

// Load parses the configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// IsProduction reports whether the server runs in production mode; error
// internals are only exposed outside of it.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ContactRecipient is where contact-form notifications are delivered.
func (c *Config) ContactRecipient() string {
	if c.SMTP.Recipient != "" {
		return c.SMTP.Recipient
	}

	return c.SMTP.From
}

func (c *Config) validate() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("missing MONGODB_URI environment variable")
	}
	if c.Token.Secret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}
	if c.SMTP.Host == "" {
		return fmt.Errorf("missing SMTP_HOST environment variable")
	}
	if c.SMTP.Username == "" {
		return fmt.Errorf("missing SMTP_USERNAME environment variable")
	}
	if c.SMTP.Password == "" {
		return fmt.Errorf("missing SMTP_PASSWORD environment variable")
	}
	if c.SMTP.From == "" {
		return fmt.Errorf("missing SMTP_FROM environment variable")
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("missing STORAGE_BUCKET environment variable")
	}
	if c.Storage.PublicBaseURL == "" {
		return fmt.Errorf("missing STORAGE_PUBLIC_BASE_URL environment variable")
	}

	return nil
}
