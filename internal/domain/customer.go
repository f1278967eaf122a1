package domain

import "strings"

// Role is the logical party an identity is used for in a request.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleBilling  Role = "billing"
	RoleShipping Role = "shipping"
)

// Customer holds the contact and postal details of one party.
type Customer struct {
	Title          string
	FirstName      string
	LastName       string
	Email          string
	Address1       string
	Address2       string
	City           string
	Postcode       string
	State          string
	Country        string
	Phone          string
	PhoneExtension string
}

// Name is the display name: first and last name joined by a space.
func (c *Customer) Name() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
