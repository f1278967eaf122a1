package domain

import "fmt"

// Environment selects the remote endpoint family.
type Environment string

const (
	EnvironmentLive        Environment = "live"
	EnvironmentTest        Environment = "test"
	EnvironmentDevelopment Environment = "development"
)

// ParseEnvironment accepts the configured name; empty means "not set".
func ParseEnvironment(s string) (Environment, error) {
	switch Environment(s) {
	case "", EnvironmentLive, EnvironmentTest, EnvironmentDevelopment:
		return Environment(s), nil
	}
	return "", fmt.Errorf("unknown environment %q", s)
}

// Proxy describes an optional outbound HTTP proxy.
type Proxy struct {
	Host     string
	Port     int
	Login    string
	Password string
}

// GatewayConfig is the merchant configuration shared by every request of a
// gateway. It is copied by value into each request.
type GatewayConfig struct {
	MerchantID     string
	AccessKey      string
	ContractNumber string
	Proxy          Proxy
	TestMode       bool
	// Environment wins over TestMode when set.
	Environment Environment
}

// ResolveEnvironment returns the configured environment, falling back to
// test or live depending on TestMode.
func (c GatewayConfig) ResolveEnvironment() Environment {
	if c.Environment != "" {
		return c.Environment
	}
	if c.TestMode {
		return EnvironmentTest
	}
	return EnvironmentLive
}

// HasProxy reports whether a proxy host is configured.
func (c GatewayConfig) HasProxy() bool {
	return len(c.Proxy.Host) > 1
}
