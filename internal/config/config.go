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
	"github.com/knadh/koanf/providers/env"

	"github.com/DanielPopoola/payline-gateway/internal/domain"
)

const envPrefix = "PAYLINE_"

type Config struct {
	Gateway   GatewayConfig   `koanf:"gateway"`
	Transport TransportConfig `koanf:"transport"`
	Retry     RetryConfig     `koanf:"retry"`
	Logger    LoggerConfig    `koanf:"logger"`
	Journal   JournalConfig   `koanf:"journal"`
	// Database is only validated when the journal is enabled.
	Database DatabaseConfig `koanf:"database" validate:"-"`
}

// GatewayConfig holds the merchant account. Credentials are not required
// here: a missing merchant id or access key is reported by the gateway
// when the transport is first needed.
type GatewayConfig struct {
	MerchantID     string      `koanf:"merchant_id"`
	AccessKey      string      `koanf:"access_key"`
	ContractNumber string      `koanf:"contract_number"`
	TestMode       bool        `koanf:"test_mode"`
	Environment    string      `koanf:"environment" validate:"omitempty,oneof=live test development"`
	Proxy          ProxyConfig `koanf:"proxy"`
}

type ProxyConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port" validate:"gte=0,lte=65535"`
	Login    string `koanf:"login"`
	Password string `koanf:"password"`
}

type TransportConfig struct {
	ConnTimeout time.Duration `koanf:"conn_timeout" validate:"gte=0"`
	// Endpoint replaces the Payline base URL, e.g. to target a local stub.
	Endpoint string `koanf:"endpoint" validate:"omitempty,url"`
}

type RetryConfig struct {
	BaseDelay  time.Duration `koanf:"base_delay" validate:"gte=0"`
	MaxRetries int           `koanf:"max_retries" validate:"gte=0"`
}

// Enabled is true when more than one attempt per call is configured.
func (c RetryConfig) Enabled() bool {
	return c.MaxRetries > 1
}

type LoggerConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `koanf:"format" validate:"omitempty,oneof=text json"`
}

type JournalConfig struct {
	Enabled bool `koanf:"enabled"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

// ToDomain converts the loaded section into the gateway's baseline
// configuration.
func (c GatewayConfig) ToDomain() (domain.GatewayConfig, error) {
	environment, err := domain.ParseEnvironment(c.Environment)
	if err != nil {
		return domain.GatewayConfig{}, err
	}
	return domain.GatewayConfig{
		MerchantID:     c.MerchantID,
		AccessKey:      c.AccessKey,
		ContractNumber: c.ContractNumber,
		TestMode:       c.TestMode,
		Environment:    environment,
		Proxy: domain.Proxy{
			Host:     c.Proxy.Host,
			Port:     c.Proxy.Port,
			Login:    c.Proxy.Login,
			Password: c.Proxy.Password,
		},
	}, nil
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

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

	if err := mainConfig.Validate(); err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

// Validate checks field constraints. The database section is checked only
// when the journal needs it.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Journal.Enabled {
		if err := validate.Struct(&c.Database); err != nil {
			return fmt.Errorf("journal enabled but database config is invalid: %w", err)
		}
	}
	return nil
}
