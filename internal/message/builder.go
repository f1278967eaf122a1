package message

import (
	"time"

	"github.com/DanielPopoola/payline-gateway/internal/domain"
	"github.com/DanielPopoola/payline-gateway/internal/identity"
)

// DateLayout is the DD/MM/YYYY HH:mm format the remote API expects for
// order dates.
const DateLayout = "02/01/2006 15:04"

// FormatDate returns the order date for intent, defaulting to now.
func FormatDate(date, now time.Time) string {
	if date.IsZero() {
		return now.Format(DateLayout)
	}
	return date.Format(DateLayout)
}

func newPayload() *Payload {
	return &Payload{Version: APIVersion}
}

func requireContract(cfg domain.GatewayConfig) error {
	if cfg.ContractNumber == "" {
		return domain.NewMissingContractNumberError()
	}
	return nil
}

func paymentSection(money domain.Money, action Action, mode domain.PaymentMode, contract string) *Payment {
	return &Payment{
		Amount:         money.Minor,
		Currency:       money.Numeric,
		Action:         int(action),
		Mode:           string(mode),
		ContractNumber: contract,
	}
}

func orderSection(intent *domain.PaymentIntent, money domain.Money, now time.Time) *Order {
	order := &Order{
		Ref:      intent.TransactionID,
		Amount:   money.Minor,
		Currency: money.Numeric,
		Date:     FormatDate(intent.Date, now),
	}

	if intent.Items != nil {
		items := make(OrderItems, 0, len(intent.Items))
		for _, item := range intent.Items {
			items = append(items, OrderItem{
				Ref:      item.Name,
				Price:    item.Price,
				Quantity: item.Quantity,
				Comment:  item.Description,
			})
		}
		order.Items = &items
	}

	return order
}

func cardSection(card *domain.Card) *CardData {
	return &CardData{
		Number:         card.Number,
		Type:           card.CardBrand(),
		ExpirationDate: card.ExpiryDate(),
		Cvx:            card.CVV,
	}
}

func buyerSection(parties identity.Parties) *Buyer {
	return &Buyer{
		Title:          parties.Customer.Title,
		FirstName:      parties.Customer.FirstName,
		LastName:       parties.Customer.LastName,
		Email:          parties.Customer.Email,
		ShippingAdress: address(parties.Shipping),
		BillingAddress: address(parties.Billing),
	}
}

func address(c *domain.Customer) Address {
	return Address{
		Title:     c.Title,
		Name:      c.Name(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Street1:   c.Address1,
		Street2:   c.Address2,
		CityName:  c.City,
		ZipCode:   c.Postcode,
		State:     c.State,
		Country:   c.Country,
		Phone:     c.Phone,
		PhoneType: c.PhoneExtension,
	}
}

// recurringSection returns the installment block, or nil outside installment
// mode. The first amount is the total divided by the remaining count,
// rounded down.
func recurringSection(intent *domain.PaymentIntent, money domain.Money) (*Recurring, error) {
	if intent.PaymentMode() != domain.ModeInstallments {
		return nil, nil
	}
	if intent.Left <= 0 {
		return nil, domain.NewInvalidInstallmentsError(intent.Left)
	}
	return &Recurring{
		FirstAmount:  money.Minor / int64(intent.Left),
		BillingCycle: intent.Cycle,
		BillingLeft:  intent.Left,
	}, nil
}

func privateDataList(intent *domain.PaymentIntent) PrivateDataList {
	var list PrivateDataList
	for _, pd := range intent.PrivateData {
		list = append(list, PrivateData{Key: pd.Key, Value: pd.Value})
	}
	if intent.OrderID != "" {
		list = append(list, PrivateData{Key: "orderId", Value: intent.OrderID})
	}
	return list
}
