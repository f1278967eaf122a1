package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DanielPopoola/payline-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	t.Run("sentinels match by code through wrapping", func(t *testing.T) {
		err := fmt.Errorf("build: %w", domain.NewMissingContractNumberError())

		assert.True(t, errors.Is(err, domain.ErrMissingContractNumber))
		assert.False(t, errors.Is(err, domain.ErrMissingIdentity))
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeMissingContractNumber))
	})

	t.Run("missing identity names the role", func(t *testing.T) {
		err := domain.NewMissingIdentityError(domain.RoleBilling)

		assert.Equal(t, "Billing customer details not provided", err.Error())
		role, ok := domain.MissingRole(err)
		assert.True(t, ok)
		assert.Equal(t, domain.RoleBilling, role)
	})

	t.Run("missing customer identity message", func(t *testing.T) {
		err := domain.NewMissingIdentityError(domain.RoleCustomer)

		assert.Equal(t, "Customer details not provided", err.Error())
	})

	t.Run("wrapped cause is kept", func(t *testing.T) {
		cause := errors.New("boom")
		err := domain.NewMalformedResponseFieldError("result.code", cause)

		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestGatewayConfig_ResolveEnvironment(t *testing.T) {
	assert.Equal(t, domain.EnvironmentLive, domain.GatewayConfig{}.ResolveEnvironment())
	assert.Equal(t, domain.EnvironmentTest, domain.GatewayConfig{TestMode: true}.ResolveEnvironment())
	assert.Equal(t, domain.EnvironmentDevelopment, domain.GatewayConfig{
		TestMode:    true,
		Environment: domain.EnvironmentDevelopment,
	}.ResolveEnvironment())

	_, err := domain.ParseEnvironment("staging")
	assert.Error(t, err)
}
