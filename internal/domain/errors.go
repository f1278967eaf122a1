package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DomainError represents a configuration, validation or interpretation error
// raised by the adapter before or after the remote call.
type DomainError struct {
	Code    string
	Message string
	// Field names the role, parameter or response path the error is about.
	Field string
	Err   error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError carrying the same code, so the sentinels below
// can be used with errors.Is regardless of message or field.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

const (
	ErrCodeMissingMerchantID      = "MISSING_MERCHANT_ID"
	ErrCodeMissingAccessKey       = "MISSING_ACCESS_KEY"
	ErrCodeUnsupportedOperation   = "UNSUPPORTED_OPERATION"
	ErrCodeMissingContractNumber  = "MISSING_CONTRACT_NUMBER"
	ErrCodeMissingIdentity        = "MISSING_IDENTITY"
	ErrCodeMissingInstrument      = "MISSING_INSTRUMENT"
	ErrCodeMissingRequiredField   = "MISSING_REQUIRED_FIELD"
	ErrCodeInvalidAmount          = "INVALID_AMOUNT"
	ErrCodeInvalidCurrency        = "INVALID_CURRENCY"
	ErrCodeInvalidInstallments    = "INVALID_INSTALLMENTS"
	ErrCodeMissingTransactionRef  = "MISSING_TRANSACTION_REFERENCE"
	ErrCodeMissingResponseField   = "MISSING_RESPONSE_FIELD"
	ErrCodeMalformedResponseField = "MALFORMED_RESPONSE_FIELD"
)

// Sentinels for errors.Is. Only the code is compared.
var (
	ErrMissingMerchantID      = &DomainError{Code: ErrCodeMissingMerchantID}
	ErrMissingAccessKey       = &DomainError{Code: ErrCodeMissingAccessKey}
	ErrUnsupportedOperation   = &DomainError{Code: ErrCodeUnsupportedOperation}
	ErrMissingContractNumber  = &DomainError{Code: ErrCodeMissingContractNumber}
	ErrMissingIdentity        = &DomainError{Code: ErrCodeMissingIdentity}
	ErrMissingInstrument      = &DomainError{Code: ErrCodeMissingInstrument}
	ErrMissingRequiredField   = &DomainError{Code: ErrCodeMissingRequiredField}
	ErrInvalidAmount          = &DomainError{Code: ErrCodeInvalidAmount}
	ErrInvalidCurrency        = &DomainError{Code: ErrCodeInvalidCurrency}
	ErrInvalidInstallments    = &DomainError{Code: ErrCodeInvalidInstallments}
	ErrMissingTransactionRef  = &DomainError{Code: ErrCodeMissingTransactionRef}
	ErrMissingResponseField   = &DomainError{Code: ErrCodeMissingResponseField}
	ErrMalformedResponseField = &DomainError{Code: ErrCodeMalformedResponseField}
)

func NewMissingMerchantIDError() *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingMerchantID,
		Message: `the merchant ID ("merchantId") has not been provided in the gateway configuration`,
		Field:   "merchantId",
	}
}

func NewMissingAccessKeyError() *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingAccessKey,
		Message: `the access key ("accessKey") has not been provided in the gateway configuration`,
		Field:   "accessKey",
	}
}

func NewUnsupportedOperationError(variant, operation string) *DomainError {
	return &DomainError{
		Code:    ErrCodeUnsupportedOperation,
		Message: fmt.Sprintf("%s gateway does not support %q", variant, operation),
		Field:   operation,
	}
}

func NewMissingContractNumberError() *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingContractNumber,
		Message: `the contract number ("contractNumber") has not been provided in the gateway configuration`,
		Field:   "contractNumber",
	}
}

// NewMissingIdentityError reports that no identity could be resolved for role.
func NewMissingIdentityError(role Role) *DomainError {
	msg := "customer details not provided"
	if role != RoleCustomer {
		msg = string(role) + " " + msg
	}
	return &DomainError{
		Code:    ErrCodeMissingIdentity,
		Message: strings.ToUpper(msg[:1]) + msg[1:],
		Field:   string(role),
	}
}

func NewMissingInstrumentError() *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingInstrument,
		Message: "card is required",
		Field:   "card",
	}
}

func NewMissingRequiredFieldError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingRequiredField,
		Message: fmt.Sprintf("%s is required", field),
		Field:   field,
	}
}

func NewInvalidAmountError(amount string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: fmt.Sprintf("invalid amount %q", amount),
		Field:   "amount",
		Err:     err,
	}
}

func NewInvalidCurrencyError(currency string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidCurrency,
		Message: fmt.Sprintf("unknown currency %q", currency),
		Field:   "currency",
	}
}

func NewInvalidInstallmentsError(left int) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidInstallments,
		Message: fmt.Sprintf("installment mode needs a positive paymentLeft, got %d", left),
		Field:   "paymentLeft",
	}
}

func NewMissingTransactionReferenceError() *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingTransactionRef,
		Message: "transaction reference is required",
		Field:   "transactionReference",
	}
}

func NewMissingResponseFieldError(path string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingResponseField,
		Message: fmt.Sprintf("response field %s is missing", path),
		Field:   path,
	}
}

func NewMalformedResponseFieldError(path string, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeMalformedResponseField,
		Message: fmt.Sprintf("response field %s is malformed", path),
		Field:   path,
		Err:     err,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// MissingRole returns the role named by a missing-identity error.
func MissingRole(err error) (Role, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) && domainErr.Code == ErrCodeMissingIdentity {
		return Role(domainErr.Field), true
	}
	return "", false
}
