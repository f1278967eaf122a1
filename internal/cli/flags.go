package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/DanielPopoola/payline-gateway/internal/domain"
	"github.com/DanielPopoola/payline-gateway/internal/gateway"
	"github.com/DanielPopoola/payline-gateway/internal/message"
)

type amountFlags struct {
	amount   string
	currency string
	contract string
}

func (f *amountFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.amount, "amount", "", "Amount in major units, e.g. 300.00")
	fs.StringVar(&f.currency, "currency", domain.DefaultCurrency, "ISO 4217 currency code")
	fs.StringVar(&f.contract, "contract", "", "Contract number for this call only")
}

type orderFlags struct {
	orderRef string
	orderID  string
	date     string
	mode     string
	cycle    int
	left     int
	private  map[string]string
}

func (f *orderFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.orderRef, "order-ref", "", "Merchant order reference (generated when empty)")
	fs.StringVar(&f.orderID, "order-id", "", "Order id sent as private data")
	fs.StringVar(&f.date, "date", "", "Order date as DD/MM/YYYY HH:mm (now when empty)")
	fs.StringVar(&f.mode, "mode", string(domain.ModeFull), "Payment mode: CPT, DIF, NX or REC")
	fs.IntVar(&f.cycle, "cycle", 0, "Billing cycle for NX mode")
	fs.IntVar(&f.left, "left", 0, "Number of installments for NX mode")
	fs.StringToStringVar(&f.private, "private", nil, "Private data as key=value pairs")
}

type customerFlags struct {
	title     string
	firstName string
	lastName  string
	email     string
	address1  string
	address2  string
	city      string
	postcode  string
	state     string
	country   string
	phone     string
}

func (f *customerFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "Buyer title")
	fs.StringVar(&f.firstName, "first-name", "", "Buyer first name")
	fs.StringVar(&f.lastName, "last-name", "", "Buyer last name")
	fs.StringVar(&f.email, "email", "", "Buyer email")
	fs.StringVar(&f.address1, "address1", "", "Street, first line")
	fs.StringVar(&f.address2, "address2", "", "Street, second line")
	fs.StringVar(&f.city, "city", "", "City")
	fs.StringVar(&f.postcode, "postcode", "", "Postcode")
	fs.StringVar(&f.state, "state", "", "State or region")
	fs.StringVar(&f.country, "country", "", "ISO country code")
	fs.StringVar(&f.phone, "phone", "", "Phone number")
}

// customer returns nil when no buyer flag was given.
func (f *customerFlags) customer() *domain.Customer {
	c := domain.Customer{
		Title:     f.title,
		FirstName: f.firstName,
		LastName:  f.lastName,
		Email:     f.email,
		Address1:  f.address1,
		Address2:  f.address2,
		City:      f.city,
		Postcode:  f.postcode,
		State:     f.state,
		Country:   f.country,
		Phone:     f.phone,
	}
	if c == (domain.Customer{}) {
		return nil
	}
	return &c
}

type cardFlags struct {
	number string
	month  int
	year   int
	cvv    string
	brand  string
}

func (f *cardFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.number, "card-number", "", "Card number")
	fs.IntVar(&f.month, "expiry-month", 0, "Card expiry month")
	fs.IntVar(&f.year, "expiry-year", 0, "Card expiry year")
	fs.StringVar(&f.cvv, "cvv", "", "Card verification value")
	fs.StringVar(&f.brand, "brand", "", "Card brand (detected from the number when empty)")
}

// card returns nil when no card number was given.
func (f *cardFlags) card(owner *domain.Customer) *domain.Card {
	if f.number == "" {
		return nil
	}
	return &domain.Card{
		Number:      f.number,
		ExpiryMonth: f.month,
		ExpiryYear:  f.year,
		CVV:         f.cvv,
		Brand:       f.brand,
		Customer:    owner,
	}
}

func (f *amountFlags) params() gateway.Params {
	return gateway.Params{
		PaymentIntent: domain.PaymentIntent{
			Amount:   f.amount,
			Currency: f.currency,
		},
		Overrides: domain.GatewayConfig{ContractNumber: f.contract},
	}
}

func (f *orderFlags) apply(intent *domain.PaymentIntent) error {
	intent.TransactionID = f.orderRef
	if intent.TransactionID == "" {
		intent.TransactionID = "ORD-" + uuid.NewString()
	}
	intent.OrderID = f.orderID
	intent.Mode = domain.PaymentMode(f.mode)
	intent.Cycle = f.cycle
	intent.Left = f.left

	if f.date != "" {
		date, err := time.ParseInLocation(message.DateLayout, f.date, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", f.date, err)
		}
		intent.Date = date
	}

	keys := make([]string, 0, len(f.private))
	for k := range f.private {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		intent.PrivateData = append(intent.PrivateData, domain.PrivateData{Key: k, Value: f.private[k]})
	}
	return nil
}
