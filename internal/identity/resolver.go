// Package identity resolves the customer, billing and shipping parties of a
// request from the sources a caller may have filled in.
package identity

import (
	"github.com/DanielPopoola/payline-gateway/internal/domain"
)

// Provider returns a candidate identity, or nil when the source has none.
type Provider func() *domain.Customer

// Resolve evaluates providers in order and returns the first non-nil
// identity. It fails with a missing-identity error naming role when every
// provider comes back empty.
func Resolve(role domain.Role, providers ...Provider) (*domain.Customer, error) {
	for _, provide := range providers {
		if c := provide(); c != nil {
			return c, nil
		}
	}
	return nil, domain.NewMissingIdentityError(role)
}

// Parties is the resolved set of identities for one request.
type Parties struct {
	Customer *domain.Customer
	Billing  *domain.Customer
	Shipping *domain.Customer
}

// Chains returns the fallback chain for each role. Role-specific card
// identities come first, then the card customer, then the call-level
// customer.
func Chains(card *domain.Card, intent *domain.PaymentIntent) map[domain.Role][]Provider {
	return map[domain.Role][]Provider{
		domain.RoleCustomer: {card.GetCustomer, intent.GetCustomer},
		domain.RoleBilling:  {card.GetBillingCustomer, card.GetCustomer, intent.GetCustomer},
		domain.RoleShipping: {card.GetShippingCustomer, card.GetCustomer, intent.GetCustomer},
	}
}

// ResolveParties resolves the three roles, stopping at the first failure.
func ResolveParties(card *domain.Card, intent *domain.PaymentIntent) (Parties, error) {
	chains := Chains(card, intent)

	customer, err := Resolve(domain.RoleCustomer, chains[domain.RoleCustomer]...)
	if err != nil {
		return Parties{}, err
	}
	billing, err := Resolve(domain.RoleBilling, chains[domain.RoleBilling]...)
	if err != nil {
		return Parties{}, err
	}
	shipping, err := Resolve(domain.RoleShipping, chains[domain.RoleShipping]...)
	if err != nil {
		return Parties{}, err
	}

	return Parties{Customer: customer, Billing: billing, Shipping: shipping}, nil
}
