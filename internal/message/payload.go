// Package message builds Payline request payloads for each operation and
// interprets the responses the remote service sends back.
package message

import "encoding/xml"

// Field names in the tags below are the remote contract, typos included
// (shippingAdress). Do not rename them.

// APIVersion is the Payline web-service version sent with every request.
const APIVersion = "5"

// Payload is the request body of one remote call.
type Payload struct {
	Version         string          `json:"version" xml:"version"`
	TransactionID   string          `json:"transactionID,omitempty" xml:"transactionID,omitempty"`
	Payment         *Payment        `json:"payment,omitempty" xml:"payment,omitempty"`
	ReturnURL       string          `json:"returnURL,omitempty" xml:"returnURL,omitempty"`
	CancelURL       string          `json:"cancelURL,omitempty" xml:"cancelURL,omitempty"`
	NotificationURL string          `json:"notificationURL,omitempty" xml:"notificationURL,omitempty"`
	Order           *Order          `json:"order,omitempty" xml:"order,omitempty"`
	Card            *CardData       `json:"card,omitempty" xml:"card,omitempty"`
	Buyer           *Buyer          `json:"buyer,omitempty" xml:"buyer,omitempty"`
	Recurring       *Recurring      `json:"recurring,omitempty" xml:"recurring,omitempty"`
	PrivateDataList PrivateDataList `json:"privateDataList,omitempty" xml:"privateDataList,omitempty"`
	Token           string          `json:"token,omitempty" xml:"token,omitempty"`
}

type Payment struct {
	Amount         int64  `json:"amount" xml:"amount"`
	Currency       int    `json:"currency" xml:"currency"`
	Action         int    `json:"action" xml:"action"`
	Mode           string `json:"mode" xml:"mode"`
	ContractNumber string `json:"contractNumber" xml:"contractNumber"`
}

type Order struct {
	Ref      string `json:"ref" xml:"ref"`
	Amount   int64  `json:"amount" xml:"amount"`
	Currency int    `json:"currency" xml:"currency"`
	Date     string `json:"date" xml:"date"`
	// Items is nil when the caller supplied no item list.
	Items *OrderItems `json:"items,omitempty" xml:"items,omitempty"`
}

type OrderItem struct {
	Ref      string `json:"ref" xml:"ref"`
	Price    int64  `json:"price" xml:"price"`
	Quantity int    `json:"quantity" xml:"quantity"`
	Comment  string `json:"comment" xml:"comment"`
}

type CardData struct {
	Number         string `json:"number" xml:"number"`
	Type           string `json:"type" xml:"type"`
	ExpirationDate string `json:"expirationDate" xml:"expirationDate"`
	Cvx            string `json:"cvx" xml:"cvx"`
}

type Buyer struct {
	Title          string  `json:"title" xml:"title"`
	FirstName      string  `json:"firstName" xml:"firstName"`
	LastName       string  `json:"lastName" xml:"lastName"`
	Email          string  `json:"email" xml:"email"`
	ShippingAdress Address `json:"shippingAdress" xml:"shippingAdress"`
	BillingAddress Address `json:"billingAddress" xml:"billingAddress"`
}

type Address struct {
	Title     string `json:"title" xml:"title"`
	Name      string `json:"name" xml:"name"`
	FirstName string `json:"firstName" xml:"firstName"`
	LastName  string `json:"lastName" xml:"lastName"`
	Street1   string `json:"street1" xml:"street1"`
	Street2   string `json:"street2" xml:"street2"`
	CityName  string `json:"cityName" xml:"cityName"`
	ZipCode   string `json:"zipCode" xml:"zipCode"`
	State     string `json:"state" xml:"state"`
	Country   string `json:"country" xml:"country"`
	Phone     string `json:"phone" xml:"phone"`
	PhoneType string `json:"phoneType" xml:"phoneType"`
}

type Recurring struct {
	FirstAmount  int64 `json:"firstAmount" xml:"firstAmount"`
	BillingCycle int   `json:"billingCycle" xml:"billingCycle"`
	BillingLeft  int   `json:"billingLeft" xml:"billingLeft"`
}

type PrivateData struct {
	Key   string `json:"key" xml:"key"`
	Value string `json:"value" xml:"value"`
}

// PrivateDataList is sent as <privateDataList> wrapping one <privateData>
// per entry. An empty list is left out of the request.
type PrivateDataList []PrivateData

func (l PrivateDataList) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return e.EncodeElement(struct {
		Entries []PrivateData `xml:"privateData"`
	}{l}, start)
}

// OrderItems is sent as <items> wrapping one <item> per line. A non-nil
// empty list still produces an empty <items> element.
type OrderItems []OrderItem

func (l OrderItems) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return e.EncodeElement(struct {
		Entries []OrderItem `xml:"item"`
	}{l}, start)
}

// OrderRef returns the merchant order reference, if the payload has one.
func (p *Payload) OrderRef() string {
	if p == nil || p.Order == nil {
		return ""
	}
	return p.Order.Ref
}
