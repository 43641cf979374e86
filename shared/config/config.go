// Package config resolves the runtime configuration of taskbridge from the
// environment, optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/kvisle/taskbridge/backend/gateway"
)

const (
	// DefaultPort is the local listen port of the API server.
	DefaultPort = 8000

	// DefaultAPIURL is where the CLI expects to find the API server.
	DefaultAPIURL = "http://localhost:8000"
)

type Config struct {
	// WebhookURL is the external automation endpoint. Required to serve.
	WebhookURL string

	// Port is the local listen port of the API server.
	Port int

	// WebhookTimeout bounds each outbound webhook call.
	WebhookTimeout time.Duration

	// APIURL is the base URL the CLI uses to reach the API server.
	APIURL string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present; real environment variables win.
func Load() (*Config, error) {
	// godotenv never overrides variables that are already set.
	_ = godotenv.Load()

	cfg := &Config{
		WebhookURL:     os.Getenv("TASKBRIDGE_WEBHOOK_URL"),
		Port:           DefaultPort,
		WebhookTimeout: gateway.DefaultTimeout,
		APIURL:         DefaultAPIURL,
	}

	if raw := os.Getenv("TASKBRIDGE_PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid TASKBRIDGE_PORT %q", raw)
		}
		cfg.Port = port
	}

	if raw := os.Getenv("TASKBRIDGE_WEBHOOK_TIMEOUT"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds < 1 {
			return nil, fmt.Errorf("invalid TASKBRIDGE_WEBHOOK_TIMEOUT %q (seconds)", raw)
		}
		cfg.WebhookTimeout = time.Duration(seconds) * time.Second
	}

	if raw := os.Getenv("TASKBRIDGE_API_URL"); raw != "" {
		cfg.APIURL = raw
	}

	return cfg, nil
}

// ValidateForServe checks the fields the API server cannot run without.
func (c *Config) ValidateForServe() error {
	if c.WebhookURL == "" {
		return fmt.Errorf("TASKBRIDGE_WEBHOOK_URL is not set")
	}
	return nil
}
