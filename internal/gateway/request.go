package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanielPopoola/payline-gateway/internal/domain"
	"github.com/DanielPopoola/payline-gateway/internal/message"
)

// Request is a single unsent call. Its configuration is a private copy, so
// it never observes later changes to the gateway or to other requests.
type Request struct {
	op     message.Operation
	config domain.GatewayConfig
	intent domain.PaymentIntent
	client message.RemoteClient
	now    func() time.Time
	logger *slog.Logger
}

func (r *Request) Kind() message.Kind {
	return r.op.Kind
}

// Method is the remote operation the request will call.
func (r *Request) Method() string {
	return r.op.Method
}

// Data builds the payload without sending it. Each call returns a new
// payload.
func (r *Request) Data() (*message.Payload, error) {
	return r.op.Build(r.config, r.intent, r.now())
}

// Send builds the payload, calls the transport and interprets the result.
// Validation errors are returned before the transport is touched; transport
// errors are returned unchanged.
func (r *Request) Send(ctx context.Context) (message.Response, error) {
	payload, err := r.Data()
	if err != nil {
		r.logger.Debug("request rejected",
			"operation", r.op.Kind,
			"error", err,
		)
		return nil, err
	}

	tree, err := r.client.Call(ctx, r.op.Method, payload)
	if err != nil {
		r.logger.Error("remote call failed",
			"operation", r.op.Kind,
			"method", r.op.Method,
			"order_ref", payload.OrderRef(),
			"error", err,
		)
		return nil, err
	}

	resp := message.Interpret(r.op.Kind, tree)

	code, _ := resp.Code()
	r.logger.Info("remote call completed",
		"operation", r.op.Kind,
		"method", r.op.Method,
		"order_ref", payload.OrderRef(),
		"result_code", code,
		"successful", resp.IsSuccessful(),
	)

	return resp, nil
}
