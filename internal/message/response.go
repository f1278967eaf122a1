package message

import (
	"fmt"
	"strings"
	"time"

	"github.com/DanielPopoola/payline-gateway/internal/domain"
)

// SuccessCode is the result code of an accepted request.
const SuccessCode = "00000"

// Response is the interpreted result of one remote call.
type Response interface {
	IsSuccessful() bool
	Code() (string, error)
	ShortMessage() (string, error)
	LongMessage() (string, error)
	TransactionID() (string, error)
	Data() Tree
}

// Interpret wraps tree in the response type of kind's family.
func Interpret(kind Kind, tree Tree) Response {
	op, ok := Lookup(kind)
	if !ok {
		return &Result{data: tree}
	}
	switch op.Family {
	case FamilyAuthorization:
		return &AuthorizeResponse{Result{data: tree}}
	case FamilyWeb:
		return &WebResponse{Result{data: tree}}
	}
	return &Result{data: tree}
}

// Result exposes the fields every Payline response carries.
type Result struct {
	data Tree
}

// NewResult wraps a raw response tree.
func NewResult(tree Tree) *Result {
	return &Result{data: tree}
}

// IsSuccessful is true only when result.code is exactly "00000". A missing
// or malformed code is a failure.
func (r *Result) IsSuccessful() bool {
	code, err := r.data.String("result.code")
	return err == nil && code == SuccessCode
}

func (r *Result) Code() (string, error) {
	return r.data.String("result.code")
}

func (r *Result) ShortMessage() (string, error) {
	return r.data.String("result.shortMessage")
}

func (r *Result) LongMessage() (string, error) {
	return r.data.String("result.longMessage")
}

// TransactionID is the identifier the remote system assigned to the
// transaction.
func (r *Result) TransactionID() (string, error) {
	return r.data.String("transaction.id")
}

func (r *Result) TransactionDate() (time.Time, error) {
	return r.time("transaction.date", "02/01/06 15:04", DateLayout, "02/01/2006 15:04:05")
}

// Data returns the raw response tree. Callers must not modify it.
func (r *Result) Data() Tree {
	return r.data
}

func (r *Result) time(path string, layouts ...string) (time.Time, error) {
	s, err := r.data.String(path)
	if err != nil {
		return time.Time{}, err
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.NewMalformedResponseFieldError(path, fmt.Errorf("unrecognised date %q", s))
}

// AuthorizeResponse interprets authorization, purchase, credit and web
// payment detail responses.
type AuthorizeResponse struct {
	Result
}

func (r *AuthorizeResponse) IsPossibleFraud() (bool, error) {
	return r.data.Flag("transaction.isPossibleFraud")
}

func (r *AuthorizeResponse) IsDuplicated() (bool, error) {
	return r.data.Flag("transaction.isDuplicated")
}

func (r *AuthorizeResponse) FraudResult() (string, error) {
	return r.data.String("transaction.fraudResult")
}

func (r *AuthorizeResponse) Explanation() (string, error) {
	return r.data.String("transaction.explanation")
}

func (r *AuthorizeResponse) Score() (int, error) {
	return r.data.Int("transaction.score")
}

// IsThreeDSecure is true when transaction.threeDSecure is "Y" in any case.
func (r *AuthorizeResponse) IsThreeDSecure() (bool, error) {
	s, err := r.data.String("transaction.threeDSecure")
	if err != nil {
		return false, err
	}
	return strings.ToLower(s) == "y", nil
}

// CardNumber is the masked PAN echoed back.
func (r *AuthorizeResponse) CardNumber() (string, error) {
	return r.data.String("card.number")
}

func (r *AuthorizeResponse) CardType() (string, error) {
	return r.data.String("card.type")
}

// CardExpiration parses the MMYY expiration echoed back into the first day
// of that month.
func (r *AuthorizeResponse) CardExpiration() (time.Time, error) {
	return r.time("card.expirationDate", "0106", "01/06", "2006-01")
}

func (r *AuthorizeResponse) CardToken() (string, error) {
	return r.data.String("card.token")
}

func (r *AuthorizeResponse) ExtendedCardCountry() (string, error) {
	return r.data.String("extendedCard.country")
}

func (r *AuthorizeResponse) ExtendedCardBank() (string, error) {
	return r.data.String("extendedCard.bank")
}

func (r *AuthorizeResponse) ExtendedCardType() (string, error) {
	return r.data.String("extendedCard.type")
}

func (r *AuthorizeResponse) ExtendedCardNetwork() (string, error) {
	return r.data.String("extendedCard.network")
}

func (r *AuthorizeResponse) ExtendedCardProduct() (string, error) {
	return r.data.String("extendedCard.product")
}

func (r *AuthorizeResponse) IsExtendedCardCVD() (bool, error) {
	s, err := r.data.String("extendedCard.isCvd")
	if err != nil {
		return false, err
	}
	return strings.ToLower(s) == "y", nil
}

func (r *AuthorizeResponse) AuthorizationNumber() (string, error) {
	return r.data.String("authorization.number")
}

func (r *AuthorizeResponse) AuthorizationDate() (time.Time, error) {
	return r.time("authorization.date", "02/01/06 15:04", DateLayout, "02/01/2006 15:04:05")
}

// PrivateData returns the annotations echoed back in privateDataList.
func (r *AuthorizeResponse) PrivateData() ([]domain.PrivateData, error) {
	entries, err := r.data.List("privateDataList.privateData")
	if err != nil {
		return nil, err
	}
	out := make([]domain.PrivateData, 0, len(entries))
	for _, entry := range entries {
		key, err := entry.String("key")
		if err != nil {
			return nil, err
		}
		value, err := entry.String("value")
		if err != nil {
			return nil, err
		}
		out = append(out, domain.PrivateData{Key: key, Value: value})
	}
	return out, nil
}

// WebResponse interprets doWebPayment responses.
type WebResponse struct {
	Result
}

// Token identifies the web payment session.
func (r *WebResponse) Token() (string, error) {
	return r.data.String("token")
}

func (r *WebResponse) RedirectURL() (string, error) {
	return r.data.String("redirectURL")
}

// IsRedirect is true when the session was created and the buyer should be
// sent to the redirect URL.
func (r *WebResponse) IsRedirect() bool {
	url, err := r.RedirectURL()
	return r.IsSuccessful() && err == nil && url != ""
}
