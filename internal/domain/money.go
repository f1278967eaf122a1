package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/bojanz/currency"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is applied by operations that allow the currency to be
// omitted (refund, capture).
const DefaultCurrency = "EUR"

var maxMinor = decimal.NewFromInt(math.MaxInt64)

// Money is an amount expressed in the smallest unit of its currency.
type Money struct {
	// Minor is the amount in minor units, e.g. 30000 for 300.00 EUR.
	Minor int64
	// Currency is the ISO 4217 alphabetic code.
	Currency string
	// Numeric is the ISO 4217 numeric code, e.g. 978 for EUR.
	Numeric int
}

// NewMoney parses a decimal amount such as "300.00" in the given currency.
// The amount may not be negative and may not carry more decimals than the
// currency allows.
func NewMoney(amount, currencyCode string) (Money, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	digits, ok := currency.GetDigits(code)
	if !ok {
		return Money{}, NewInvalidCurrencyError(currencyCode)
	}
	numericCode, ok := currency.GetNumericCode(code)
	if !ok {
		return Money{}, NewInvalidCurrencyError(currencyCode)
	}
	numeric, err := strconv.Atoi(numericCode)
	if err != nil {
		return Money{}, NewInvalidCurrencyError(currencyCode)
	}

	if strings.TrimSpace(amount) == "" {
		return Money{}, NewMissingRequiredFieldError("amount")
	}
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, NewInvalidAmountError(amount, err)
	}
	if d.IsNegative() {
		return Money{}, NewInvalidAmountError(amount, errors.New("amount cannot be negative"))
	}

	minor := d.Shift(int32(digits))
	if !minor.Equal(minor.Truncate(0)) {
		return Money{}, NewInvalidAmountError(amount, errors.New("amount precision exceeds currency digits"))
	}
	if minor.GreaterThan(maxMinor) {
		return Money{}, NewInvalidAmountError(amount, errors.New("amount too large"))
	}

	return Money{
		Minor:    minor.IntPart(),
		Currency: code,
		Numeric:  numeric,
	}, nil
}
