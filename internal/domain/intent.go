package domain

import "time"

// PaymentMode is the Payline payment mode sent in payment.mode.
type PaymentMode string

const (
	ModeFull         PaymentMode = "CPT"
	ModeDeferred     PaymentMode = "DIF"
	ModeInstallments PaymentMode = "NX"
	ModeRecurring    PaymentMode = "REC"
)

// Item is one order line.
type Item struct {
	Name        string
	Price       int64
	Quantity    int
	Description string
}

// PrivateData is a key/value annotation echoed back by the remote service.
type PrivateData struct {
	Key   string
	Value string
}

// PaymentIntent carries everything a caller supplies for one operation.
type PaymentIntent struct {
	// Amount is a decimal string in major units, e.g. "300.00".
	Amount   string
	Currency string

	// TransactionID is the merchant order reference.
	TransactionID string
	// TransactionReference is the remote transaction id used by refund and capture.
	TransactionReference string

	Mode PaymentMode
	// Cycle is the billing cycle code for installments.
	Cycle int
	// Left is the number of remaining installments.
	Left int

	// Date defaults to the time of the call when zero.
	Date time.Time

	// Items is nil when the caller has no item list; a non-nil empty slice
	// is sent as an empty list.
	Items []Item

	PrivateData []PrivateData
	// OrderID is added to the private data list under the "orderId" key.
	OrderID string

	Card     *Card
	Customer *Customer

	ReturnURL string
	CancelURL string
	NotifyURL string

	// Token identifies a web payment session.
	Token string
}

// PaymentMode returns the mode or the full-payment default.
func (p *PaymentIntent) PaymentMode() PaymentMode {
	if p.Mode == "" {
		return ModeFull
	}
	return p.Mode
}

// GetCustomer is the call-level identity provider.
func (p *PaymentIntent) GetCustomer() *Customer {
	return p.Customer
}
