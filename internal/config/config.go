package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the assistant service.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"assistant-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8084"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Hosted assistant provider
	OpenAIAPIKey   string `env:"OPENAI_API_KEY,required"`
	AssistantModel string `env:"ASSISTANT_MODEL" envDefault:"gpt-4o-mini"`

	// Record store (tabular persistence)
	RecordStoreBaseURL string        `env:"RECORD_STORE_BASE_URL" envDefault:"https://api.airtable.com/v0"`
	RecordStoreAPIKey  string        `env:"RECORD_STORE_API_KEY,required"`
	RecordStoreBaseID  string        `env:"RECORD_STORE_BASE_ID,required"`
	RecordStoreTimeout time.Duration `env:"RECORD_STORE_TIMEOUT" envDefault:"30s"`

	// Tenant identity: the widget serves one client location per deployment.
	LocationID string `env:"LOCATION_ID,required"`

	// Run polling
	RunPollInterval time.Duration `env:"RUN_POLL_INTERVAL" envDefault:"1s"`
	RunPollAttempts int           `env:"RUN_POLL_ATTEMPTS" envDefault:"30"`

	// Re-engagement janitor
	ReengagementEnabled bool   `env:"REENGAGEMENT_ENABLED" envDefault:"false"`
	ReengagementCron    string `env:"REENGAGEMENT_CRON" envDefault:"*/5 * * * *"`

	AuthEnabled  bool   `env:"AUTH_ENABLED" envDefault:"false"`
	AuthIssuer   string `env:"AUTH_ISSUER"`
	AuthAudience string `env:"AUTH_AUDIENCE"`
	AuthJWKSURL  string `env:"AUTH_JWKS_URL"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if cfg.AuthEnabled {
		if strings.TrimSpace(cfg.AuthIssuer) == "" {
			return nil, fmt.Errorf("AUTH_ISSUER is required when AUTH_ENABLED is true")
		}
		if strings.TrimSpace(cfg.AuthJWKSURL) == "" {
			return nil, fmt.Errorf("AUTH_JWKS_URL is required when AUTH_ENABLED is true")
		}
	}

	if cfg.RunPollInterval <= 0 {
		cfg.RunPollInterval = time.Second
	}

	if cfg.RunPollAttempts <= 0 {
		cfg.RunPollAttempts = 30
	}

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
