package message

import (
	"time"

	"github.com/DanielPopoola/payline-gateway/internal/domain"
	"github.com/DanielPopoola/payline-gateway/internal/identity"
)

// Kind names an operation the gateway can build a request for.
type Kind string

const (
	KindAuthorize         Kind = "authorize"
	KindPurchase          Kind = "purchase"
	KindCapture           Kind = "capture"
	KindRefund            Kind = "refund"
	KindCredit            Kind = "credit"
	KindWebAuthorize      Kind = "web_authorize"
	KindWebPurchase       Kind = "web_purchase"
	KindCompleteAuthorize Kind = "complete_authorize"
)

// Action is the Payline action code sent in payment.action.
type Action int

const (
	ActionAuthorization        Action = 100
	ActionAuthorizationCapture Action = 101
	ActionCapture              Action = 201
	ActionRefund               Action = 421
	ActionCredit               Action = 422
)

// IdentityPolicy says when buyer identities are resolved.
type IdentityPolicy int

const (
	IdentitiesNone IdentityPolicy = iota
	IdentitiesRequired
	IdentitiesIfInstrument
)

// InstrumentPolicy says whether a card must be supplied.
type InstrumentPolicy int

const (
	InstrumentNone InstrumentPolicy = iota
	InstrumentRequired
	InstrumentOptional
)

// Family groups operations that share a response shape.
type Family int

const (
	FamilyTransaction Family = iota
	FamilyAuthorization
	FamilyWeb
)

type buildFunc func(op Operation, cfg domain.GatewayConfig, intent *domain.PaymentIntent, now time.Time) (*Payload, error)

// Operation is the strategy for one kind of request: which remote method it
// calls, which action code it sends, what it requires and how its payload is
// assembled.
type Operation struct {
	Kind             Kind
	Method           string
	Action           Action
	RequiresContract bool
	Identities       IdentityPolicy
	Instrument       InstrumentPolicy
	Family           Family

	build buildFunc
}

var operations = map[Kind]Operation{
	KindAuthorize: {
		Kind: KindAuthorize, Method: "doAuthorization", Action: ActionAuthorization,
		RequiresContract: true, Identities: IdentitiesRequired, Instrument: InstrumentRequired,
		Family: FamilyAuthorization, build: buildCardPayment,
	},
	KindPurchase: {
		Kind: KindPurchase, Method: "doAuthorization", Action: ActionAuthorizationCapture,
		RequiresContract: true, Identities: IdentitiesRequired, Instrument: InstrumentRequired,
		Family: FamilyAuthorization, build: buildCardPayment,
	},
	KindCredit: {
		Kind: KindCredit, Method: "doCredit", Action: ActionCredit,
		RequiresContract: true, Identities: IdentitiesRequired, Instrument: InstrumentRequired,
		Family: FamilyAuthorization, build: buildCardPayment,
	},
	KindCapture: {
		Kind: KindCapture, Method: "doCapture", Action: ActionCapture,
		RequiresContract: true, Identities: IdentitiesNone, Instrument: InstrumentNone,
		Family: FamilyTransaction, build: buildTransactionPayment,
	},
	KindRefund: {
		Kind: KindRefund, Method: "doRefund", Action: ActionRefund,
		RequiresContract: true, Identities: IdentitiesNone, Instrument: InstrumentNone,
		Family: FamilyTransaction, build: buildTransactionPayment,
	},
	KindWebAuthorize: {
		Kind: KindWebAuthorize, Method: "doWebPayment", Action: ActionAuthorization,
		RequiresContract: true, Identities: IdentitiesIfInstrument, Instrument: InstrumentOptional,
		Family: FamilyWeb, build: buildCardPayment,
	},
	KindWebPurchase: {
		Kind: KindWebPurchase, Method: "doWebPayment", Action: ActionAuthorizationCapture,
		RequiresContract: true, Identities: IdentitiesIfInstrument, Instrument: InstrumentOptional,
		Family: FamilyWeb, build: buildCardPayment,
	},
	KindCompleteAuthorize: {
		Kind: KindCompleteAuthorize, Method: "getWebPaymentDetails",
		Identities: IdentitiesNone, Instrument: InstrumentNone,
		Family: FamilyAuthorization, build: buildWebDetails,
	},
}

// Lookup returns the operation registered for kind.
func Lookup(kind Kind) (Operation, bool) {
	op, ok := operations[kind]
	return op, ok
}

// Build assembles the payload for intent. It fails with a typed validation
// error rather than returning a partial payload.
func (o Operation) Build(cfg domain.GatewayConfig, intent domain.PaymentIntent, now time.Time) (*Payload, error) {
	return o.build(o, cfg, &intent, now)
}

func buildCardPayment(op Operation, cfg domain.GatewayConfig, intent *domain.PaymentIntent, now time.Time) (*Payload, error) {
	if op.RequiresContract {
		if err := requireContract(cfg); err != nil {
			return nil, err
		}
	}

	card := intent.Card
	if card == nil && op.Instrument == InstrumentRequired {
		return nil, domain.NewMissingInstrumentError()
	}

	money, err := domain.NewMoney(intent.Amount, intent.Currency)
	if err != nil {
		return nil, err
	}

	mode := intent.PaymentMode()
	p := newPayload()
	p.Payment = paymentSection(money, op.Action, mode, cfg.ContractNumber)
	p.Order = orderSection(intent, money, now)

	if card != nil {
		p.Card = cardSection(card)
	}

	switch {
	case op.Identities == IdentitiesRequired,
		op.Identities == IdentitiesIfInstrument && card != nil:
		parties, err := identity.ResolveParties(card, intent)
		if err != nil {
			return nil, err
		}
		p.Buyer = buyerSection(parties)
	case op.Identities == IdentitiesIfInstrument && intent.Customer != nil:
		c := intent.Customer
		p.Buyer = buyerSection(identity.Parties{Customer: c, Billing: c, Shipping: c})
	}

	p.Recurring, err = recurringSection(intent, money)
	if err != nil {
		return nil, err
	}

	p.PrivateDataList = privateDataList(intent)

	if op.Family == FamilyWeb {
		p.ReturnURL = intent.ReturnURL
		p.CancelURL = intent.CancelURL
		p.NotificationURL = intent.NotifyURL
	}

	return p, nil
}

// buildTransactionPayment covers operations on an existing remote
// transaction. The currency falls back to EUR when the caller omits it.
func buildTransactionPayment(op Operation, cfg domain.GatewayConfig, intent *domain.PaymentIntent, _ time.Time) (*Payload, error) {
	if err := requireContract(cfg); err != nil {
		return nil, err
	}
	if intent.TransactionReference == "" {
		return nil, domain.NewMissingTransactionReferenceError()
	}

	currencyCode := intent.Currency
	if currencyCode == "" {
		currencyCode = domain.DefaultCurrency
	}
	money, err := domain.NewMoney(intent.Amount, currencyCode)
	if err != nil {
		return nil, err
	}

	p := newPayload()
	p.TransactionID = intent.TransactionReference
	p.Payment = paymentSection(money, op.Action, domain.ModeFull, cfg.ContractNumber)
	p.PrivateDataList = privateDataList(intent)

	return p, nil
}

func buildWebDetails(_ Operation, _ domain.GatewayConfig, intent *domain.PaymentIntent, _ time.Time) (*Payload, error) {
	if intent.Token == "" {
		return nil, domain.NewMissingRequiredFieldError("token")
	}
	p := newPayload()
	p.Token = intent.Token
	return p, nil
}
