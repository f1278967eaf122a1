// Package gateway is the entry point of the adapter. A Gateway selects the
// request builder for a named operation, merges its baseline configuration
// with per-call overrides and hands back an unsent Request bound to the
// transport.
package gateway

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"dario.cat/mergo"

	"github.com/DanielPopoola/payline-gateway/internal/config"
	"github.com/DanielPopoola/payline-gateway/internal/domain"
	"github.com/DanielPopoola/payline-gateway/internal/infrastructure/soap"
	"github.com/DanielPopoola/payline-gateway/internal/journal"
	"github.com/DanielPopoola/payline-gateway/internal/message"
)

// Variant selects the Payline API family.
type Variant string

const (
	Direct Variant = "direct"
	Web    Variant = "web"
)

var baseURLs = map[domain.Environment]string{
	domain.EnvironmentLive:        "https://services.payline.com/V4/services",
	domain.EnvironmentTest:        "https://homologation.payline.com/V4/services",
	domain.EnvironmentDevelopment: "https://ws.dev.payline.com/V4/services",
}

var services = map[Variant]string{
	Direct: "DirectPaymentAPI",
	Web:    "WebPaymentAPI",
}

var supported = map[Variant]map[message.Kind]bool{
	Direct: {
		message.KindAuthorize: true,
		message.KindPurchase:  true,
		message.KindCapture:   true,
		message.KindRefund:    true,
		message.KindCredit:    true,
	},
	Web: {
		message.KindWebAuthorize:      true,
		message.KindWebPurchase:       true,
		message.KindCompleteAuthorize: true,
	},
}

// Params carries the payment data of one call and optional overrides of the
// gateway configuration. Non-zero override fields win over the baseline.
type Params struct {
	domain.PaymentIntent
	// Overrides apply to the payload only. The transport authenticates
	// with the baseline MerchantID and AccessKey whatever is set here.
	Overrides domain.GatewayConfig
}

type Option func(*Gateway)

// WithClient injects the transport. Credentials are then not checked by the
// gateway.
func WithClient(client message.RemoteClient) Option {
	return func(g *Gateway) { g.injected = client }
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) { g.logger = logger }
}

// WithClock replaces time.Now as the default order date.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

func WithTimeout(timeout time.Duration) Option {
	return func(g *Gateway) { g.timeout = timeout }
}

// WithRetry resends calls that fail with a transient transport error.
func WithRetry(cfg config.RetryConfig) Option {
	return func(g *Gateway) { g.retry = cfg }
}

// WithJournal records every remote attempt in store.
func WithJournal(store journal.Store) Option {
	return func(g *Gateway) { g.store = store }
}

// WithBaseURL replaces the Payline base URL of the resolved environment.
func WithBaseURL(baseURL string) Option {
	return func(g *Gateway) { g.baseURL = baseURL }
}

// Gateway is immutable after New and safe for concurrent use.
type Gateway struct {
	variant  Variant
	config   domain.GatewayConfig
	endpoint string

	baseURL  string
	logger   *slog.Logger
	now      func() time.Time
	timeout  time.Duration
	retry    config.RetryConfig
	store    journal.Store
	injected message.RemoteClient

	clientOnce sync.Once
	client     message.RemoteClient
	clientErr  error
}

// New builds a gateway for variant. The endpoint is resolved here, once,
// from the environment of cfg.
func New(variant Variant, cfg domain.GatewayConfig, opts ...Option) (*Gateway, error) {
	service, ok := services[variant]
	if !ok {
		return nil, fmt.Errorf("unknown gateway variant %q", variant)
	}

	g := &Gateway{
		variant: variant,
		config:  cfg,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}

	base := g.baseURL
	if base == "" {
		base = baseURLs[cfg.ResolveEnvironment()]
	}
	g.endpoint = strings.TrimRight(base, "/") + "/" + service

	return g, nil
}

func (g *Gateway) Variant() Variant {
	return g.variant
}

// Endpoint is the URL requests of this gateway are sent to.
func (g *Gateway) Endpoint() string {
	return g.endpoint
}

// Config returns a copy of the baseline configuration.
func (g *Gateway) Config() domain.GatewayConfig {
	return g.config
}

// Supports reports whether kind can be requested through this gateway.
func (g *Gateway) Supports(kind message.Kind) bool {
	return supported[g.variant][kind]
}

// CreateRequest returns the unsent request for kind. It fails when the
// variant does not offer kind or when the transport cannot be acquired.
// Payload validation happens when the request is built or sent.
func (g *Gateway) CreateRequest(kind message.Kind, params Params) (*Request, error) {
	if !g.Supports(kind) {
		return nil, domain.NewUnsupportedOperationError(string(g.variant), string(kind))
	}
	op, _ := message.Lookup(kind)

	cfg, err := g.merge(params.Overrides)
	if err != nil {
		return nil, err
	}

	client, err := g.transport()
	if err != nil {
		return nil, err
	}

	g.logger.Debug("request created",
		"variant", g.variant,
		"operation", kind,
		"method", op.Method,
	)

	return &Request{
		op:     op,
		config: cfg,
		intent: params.PaymentIntent,
		client: client,
		now:    g.now,
		logger: g.logger,
	}, nil
}

// merge returns a copy of the baseline with the non-zero fields of
// overrides applied. The baseline itself is never modified.
func (g *Gateway) merge(overrides domain.GatewayConfig) (domain.GatewayConfig, error) {
	merged := overrides
	if err := mergo.Merge(&merged, g.config); err != nil {
		return domain.GatewayConfig{}, fmt.Errorf("merge gateway configuration: %w", err)
	}
	return merged, nil
}

// transport acquires the remote client once. Without an injected client
// the merchant credentials must be configured.
func (g *Gateway) transport() (message.RemoteClient, error) {
	g.clientOnce.Do(func() {
		client := g.injected
		if client == nil {
			if g.config.MerchantID == "" {
				g.clientErr = domain.NewMissingMerchantIDError()
				return
			}
			if g.config.AccessKey == "" {
				g.clientErr = domain.NewMissingAccessKeyError()
				return
			}
			client = soap.NewClient(g.endpoint, g.config, g.timeout, g.logger)
		}

		if g.store != nil {
			client = journal.NewClient(client, g.store, g.logger)
		}
		if g.retry.Enabled() {
			client = soap.NewRetryClient(client, g.retry, g.logger)
		}
		g.client = client
	})
	return g.client, g.clientErr
}

func (g *Gateway) Authorize(params Params) (*Request, error) {
	if g.variant == Web {
		return g.CreateRequest(message.KindWebAuthorize, params)
	}
	return g.CreateRequest(message.KindAuthorize, params)
}

func (g *Gateway) Purchase(params Params) (*Request, error) {
	if g.variant == Web {
		return g.CreateRequest(message.KindWebPurchase, params)
	}
	return g.CreateRequest(message.KindPurchase, params)
}

// Capture settles an authorization on the direct API. On the web API it
// opens a payment session that authorizes and captures in one step.
func (g *Gateway) Capture(params Params) (*Request, error) {
	if g.variant == Web {
		return g.CreateRequest(message.KindWebPurchase, params)
	}
	return g.CreateRequest(message.KindCapture, params)
}

func (g *Gateway) Refund(params Params) (*Request, error) {
	return g.CreateRequest(message.KindRefund, params)
}

func (g *Gateway) Credit(params Params) (*Request, error) {
	return g.CreateRequest(message.KindCredit, params)
}

// CompleteAuthorize fetches the outcome of a web payment session by token.
func (g *Gateway) CompleteAuthorize(params Params) (*Request, error) {
	return g.CreateRequest(message.KindCompleteAuthorize, params)
}
