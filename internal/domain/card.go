package domain

import (
	"fmt"
	"regexp"
)

const (
	BrandVisa               = "visa"
	BrandMastercard         = "mastercard"
	BrandDiscover           = "discover"
	BrandAmex               = "amex"
	BrandDinersClub         = "diners_club"
	BrandJCB                = "jcb"
	BrandSwitch             = "switch"
	BrandSolo               = "solo"
	BrandDankort            = "dankort"
	BrandMaestro            = "maestro"
	BrandForbrugsforeningen = "forbrugsforeningen"
)

type brandPattern struct {
	brand   string
	pattern *regexp.Regexp
}

// Checked in order; the first match wins.
var brandPatterns = []brandPattern{
	{BrandVisa, regexp.MustCompile(`^4\d{12}(\d{3})?$`)},
	{BrandMastercard, regexp.MustCompile(`^(5[1-5]\d{4}|677189|222[1-9]\d{2}|22[3-9]\d{3}|2[3-6]\d{4}|27[01]\d{3}|2720\d{2})\d{10}$`)},
	{BrandDiscover, regexp.MustCompile(`^((6011|65\d{2}|64[4-9]\d)\d{12}|62\d{14})$`)},
	{BrandAmex, regexp.MustCompile(`^3[47]\d{13}$`)},
	{BrandDinersClub, regexp.MustCompile(`^3(0[0-5]|[68]\d)\d{11}$`)},
	{BrandJCB, regexp.MustCompile(`^35(28|29|[3-8]\d)\d{12}$`)},
	{BrandSwitch, regexp.MustCompile(`^6759\d{12}(\d{2,3})?$`)},
	{BrandSolo, regexp.MustCompile(`^6767\d{12}(\d{2,3})?$`)},
	{BrandDankort, regexp.MustCompile(`^5019\d{12}$`)},
	{BrandMaestro, regexp.MustCompile(`^(5[06-8]|6\d)\d{10,17}$`)},
	{BrandForbrugsforeningen, regexp.MustCompile(`^600722\d{10}$`)},
}

// Card is the payment instrument. The three identity pointers are optional
// and take part in identity resolution.
type Card struct {
	Number      string
	ExpiryMonth int
	ExpiryYear  int
	CVV         string
	// Brand overrides detection from Number when set.
	Brand string

	Customer         *Customer
	BillingCustomer  *Customer
	ShippingCustomer *Customer
}

// DetectBrand returns the card brand for a PAN, or "" if none matches.
func DetectBrand(number string) string {
	for _, bp := range brandPatterns {
		if bp.pattern.MatchString(number) {
			return bp.brand
		}
	}
	return ""
}

// CardBrand returns the explicit brand or the one detected from the number.
func (c *Card) CardBrand() string {
	if c.Brand != "" {
		return c.Brand
	}
	return DetectBrand(c.Number)
}

// ExpiryDate formats the expiry as MMYY.
func (c *Card) ExpiryDate() string {
	return fmt.Sprintf("%02d%02d", c.ExpiryMonth, c.ExpiryYear%100)
}

// The provider helpers below feed identity fallback chains; a nil card has
// no identities.

func (c *Card) GetCustomer() *Customer {
	if c == nil {
		return nil
	}
	return c.Customer
}

func (c *Card) GetBillingCustomer() *Customer {
	if c == nil {
		return nil
	}
	return c.BillingCustomer
}

func (c *Card) GetShippingCustomer() *Customer {
	if c == nil {
		return nil
	}
	return c.ShippingCustomer
}
