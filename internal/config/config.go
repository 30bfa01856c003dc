package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"

	"github.com/greenlyst/greenmoney/pkg/echeck"
	"github.com/greenlyst/greenmoney/pkg/transport"
)

const envPrefix = "GREENMONEY_"

type Config struct {
	Primary     Primary           `koanf:"primary"`
	Credentials CredentialsConfig `koanf:"credentials"`
	API         APIConfig         `koanf:"api"`
	Transport   TransportConfig   `koanf:"transport"`
	Retry       RetryConfig       `koanf:"retry"`
	Logger      LoggerConfig      `koanf:"logger"`
	Server      ServerConfig      `koanf:"server"`
	Telemetry   TelemetryConfig   `koanf:"telemetry"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type CredentialsConfig struct {
	ClientID    string `koanf:"client_id" validate:"required"`
	APIPassword string `koanf:"api_password" validate:"required"`
}

type APIConfig struct {
	Environment string `koanf:"environment" validate:"required,oneof=production live sandbox test"`
}

type TransportConfig struct {
	BaseURL        string        `koanf:"base_url" validate:"omitempty,url"`
	ConnectTimeout time.Duration `koanf:"connect_timeout" validate:"required"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"required"`
	Delimiter      string        `koanf:"delimiter" validate:"required"`
	SOAPNamespace  string        `koanf:"soap_namespace" validate:"required"`
	RateLimit      float64       `koanf:"rate_limit" validate:"gte=0"`
	RateBurst      int           `koanf:"rate_burst" validate:"gte=0"`
}

type RetryConfig struct {
	BaseDelay  time.Duration `koanf:"base_delay"`
	MaxDelay   time.Duration `koanf:"max_delay"`
	MaxRetries int           `koanf:"max_retries" validate:"gte=0"`
}

type ServerConfig struct {
	Port           string        `koanf:"port" validate:"required"`
	ReadTimeout    time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout   time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout    time.Duration `koanf:"idle_timeout" validate:"required"`
	HandlerTimeout time.Duration `koanf:"handler_timeout" validate:"required"`
}

type TelemetryConfig struct {
	Exporter     string `koanf:"exporter" validate:"oneof=none stdout otlp"`
	OTLPEndpoint string `koanf:"otlp_endpoint"`
	ServiceName  string `koanf:"service_name" validate:"required"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env":               "development",
		"api.environment":           "sandbox",
		"transport.connect_timeout": "3s",
		"transport.request_timeout": "30s",
		"transport.delimiter":       transport.DefaultDelimiter,
		"transport.soap_namespace":  transport.DefaultSOAPNamespace,
		"transport.rate_limit":      0,
		"transport.rate_burst":      1,
		"retry.base_delay":          "1s",
		"retry.max_delay":           "30s",
		"retry.max_retries":         3,
		"logger.level":              "info",
		"logger.format":             "text",
		"server.port":               "8080",
		"server.read_timeout":       "10s",
		"server.write_timeout":      "45s",
		"server.idle_timeout":       "60s",
		"server.handler_timeout":    "40s",
		"telemetry.exporter":        "none",
		"telemetry.service_name":    "greenmoney",
	}
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load defaults", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

// ClientConfig builds the transport configuration for one API family.
func (c *Config) ClientConfig(family transport.Family, logger *slog.Logger) (transport.Config, error) {
	env, err := transport.ParseEnvironment(c.API.Environment)
	if err != nil {
		return transport.Config{}, fmt.Errorf("api environment: %w", err)
	}

	return transport.Config{
		Family:      family,
		Environment: env,
		Credentials: transport.Credentials{
			ClientID:    c.Credentials.ClientID,
			APIPassword: c.Credentials.APIPassword,
		},
		BaseURL:        c.Transport.BaseURL,
		ConnectTimeout: c.Transport.ConnectTimeout,
		RequestTimeout: c.Transport.RequestTimeout,
		Delimiter:      c.Transport.Delimiter,
		SOAPNamespace:  c.Transport.SOAPNamespace,
		Logger:         logger,
		RateLimiter:    transport.NewRateLimiter(c.Transport.RateLimit, c.Transport.RateBurst),
	}, nil
}

func (r RetryConfig) Policy() echeck.RetryPolicy {
	return echeck.RetryPolicy{
		BaseDelay:  r.BaseDelay,
		MaxDelay:   r.MaxDelay,
		MaxRetries: r.MaxRetries,
	}
}
