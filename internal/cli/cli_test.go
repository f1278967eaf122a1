package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/DanielPopoola/payline-gateway/internal/cli"
	"github.com/DanielPopoola/payline-gateway/internal/domain"
	"github.com/DanielPopoola/payline-gateway/internal/gateway"
	"github.com/DanielPopoola/payline-gateway/internal/message"
	"github.com/DanielPopoola/payline-gateway/internal/message/mocks"
)

type harness struct {
	client   *mocks.MockRemoteClient
	variants []gateway.Variant
	released int
}

func (h *harness) factory(_ context.Context, variant gateway.Variant, _ bool) (*gateway.Gateway, func(), error) {
	h.variants = append(h.variants, variant)
	g, err := gateway.New(variant, domain.GatewayConfig{
		MerchantID:     "merchant",
		AccessKey:      "secret",
		ContractNumber: "1234567",
		TestMode:       true,
	},
		gateway.WithClient(h.client),
		gateway.WithClock(func() time.Time { return time.Date(2024, time.March, 9, 14, 5, 0, 0, time.UTC) }),
	)
	return g, func() { h.released++ }, err
}

func execute(t *testing.T, h *harness, args ...string) (map[string]any, error) {
	t.Helper()
	var out bytes.Buffer
	root := cli.NewRootCommand("test", &out, h.factory)
	root.SetArgs(args)
	root.SetErr(&bytes.Buffer{})

	if err := root.ExecuteContext(context.Background()); err != nil {
		return nil, err
	}

	var result map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &result), out.String())
	return result, nil
}

func authorizeArgs(extra ...string) []string {
	return append([]string{
		"authorize",
		"--amount", "300.00",
		"--currency", "EUR",
		"--order-ref", "ORDER_42",
		"--card-number", "4111111111111111",
		"--expiry-month", "12",
		"--expiry-year", "2030",
		"--cvv", "123",
		"--first-name", "Jane",
		"--last-name", "Doe",
	}, extra...)
}

func TestDryRunPrintsPayload(t *testing.T) {
	h := &harness{client: mocks.NewMockRemoteClient(t)}

	result, err := execute(t, h, authorizeArgs(
		"--dry-run",
		"--date", "09/03/2024 14:05",
		"--order-id", "42",
		"--private", "channel=web",
	)...)
	require.NoError(t, err)

	assert.Equal(t, "https://homologation.payline.com/V4/services/DirectPaymentAPI", result["endpoint"])
	assert.Equal(t, "doAuthorization", result["method"])

	payload := result["payload"].(map[string]any)
	payment := payload["payment"].(map[string]any)
	assert.EqualValues(t, 30000, payment["amount"])
	assert.EqualValues(t, 978, payment["currency"])
	assert.EqualValues(t, 100, payment["action"])
	assert.Equal(t, "1234567", payment["contractNumber"])

	order := payload["order"].(map[string]any)
	assert.Equal(t, "ORDER_42", order["ref"])
	assert.Equal(t, "09/03/2024 14:05", order["date"])

	card := payload["card"].(map[string]any)
	assert.Equal(t, "visa", card["type"])
	assert.Equal(t, "1230", card["expirationDate"])

	assert.Equal(t, []any{
		map[string]any{"key": "channel", "value": "web"},
		map[string]any{"key": "orderId", "value": "42"},
	}, payload["privateDataList"])

	assert.Equal(t, 1, h.released)
	h.client.AssertNotCalled(t, "Call", mock.Anything, mock.Anything, mock.Anything)
}

func TestDryRunGeneratesOrderRef(t *testing.T) {
	h := &harness{client: mocks.NewMockRemoteClient(t)}

	result, err := execute(t, h, "purchase", "--dry-run", "--amount", "10.00",
		"--card-number", "4111111111111111", "--expiry-month", "1", "--expiry-year", "2031",
		"--first-name", "Jane")
	require.NoError(t, err)

	order := result["payload"].(map[string]any)["order"].(map[string]any)
	assert.Regexp(t, `^ORD-[0-9a-f-]{36}$`, order["ref"])
}

func TestAuthorizeSendsAndPrintsResult(t *testing.T) {
	h := &harness{client: mocks.NewMockRemoteClient(t)}
	h.client.EXPECT().
		Call(mock.Anything, "doAuthorization", mock.MatchedBy(func(p *message.Payload) bool {
			return p.Order.Ref == "ORDER_42" && p.Payment.Amount == 30000
		})).
		Return(message.Tree{
			"result":      map[string]any{"code": "00000", "shortMessage": "ACCEPTED"},
			"transaction": map[string]any{"id": "26118120438171"},
		}, nil).
		Once()

	result, err := execute(t, h, authorizeArgs()...)
	require.NoError(t, err)

	assert.Equal(t, true, result["successful"])
	assert.Equal(t, "00000", result["code"])
	response := result["response"].(map[string]any)
	assert.Equal(t, "26118120438171", response["transaction"].(map[string]any)["id"])
	assert.NotContains(t, result, "redirectURL")
	assert.Equal(t, []gateway.Variant{gateway.Direct}, h.variants)
}

func TestDeclinedIsNotAnError(t *testing.T) {
	h := &harness{client: mocks.NewMockRemoteClient(t)}
	h.client.EXPECT().
		Call(mock.Anything, "doAuthorization", mock.Anything).
		Return(message.Tree{"result": map[string]any{"code": "01100", "shortMessage": "REFUSED"}}, nil).
		Once()

	result, err := execute(t, h, authorizeArgs()...)
	require.NoError(t, err)
	assert.Equal(t, false, result["successful"])
	assert.Equal(t, "01100", result["code"])
}

func TestRefundRequiresTransactionRef(t *testing.T) {
	h := &harness{client: mocks.NewMockRemoteClient(t)}

	_, err := execute(t, h, "refund", "--amount", "5.00")
	require.Error(t, err)

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	h.client.AssertNotCalled(t, "Call", mock.Anything, mock.Anything, mock.Anything)
}

func TestCaptureUsesTransactionRef(t *testing.T) {
	h := &harness{client: mocks.NewMockRemoteClient(t)}
	h.client.EXPECT().
		Call(mock.Anything, "doCapture", mock.MatchedBy(func(p *message.Payload) bool {
			return p.TransactionID == "26118120438171" && p.Payment.Action == int(message.ActionCapture)
		})).
		Return(message.Tree{"result": map[string]any{"code": "00000"}}, nil).
		Once()

	result, err := execute(t, h, "capture", "--amount", "300.00", "--transaction-ref", "26118120438171")
	require.NoError(t, err)
	assert.Equal(t, true, result["successful"])
}

func TestWebAuthorizePrintsRedirect(t *testing.T) {
	h := &harness{client: mocks.NewMockRemoteClient(t)}
	h.client.EXPECT().
		Call(mock.Anything, "doWebPayment", mock.MatchedBy(func(p *message.Payload) bool {
			return p.ReturnURL == "https://shop.example/return" && p.Payment.Action == int(message.ActionAuthorizationCapture)
		})).
		Return(message.Tree{
			"result":      map[string]any{"code": "00000"},
			"token":       "1CuBhbvLXKD",
			"redirectURL": "https://homologation-webpayment.payline.com/webpayment/?token=1CuBhbvLXKD",
		}, nil).
		Once()

	result, err := execute(t, h, "web-authorize", "--capture",
		"--amount", "300.00",
		"--return-url", "https://shop.example/return",
		"--cancel-url", "https://shop.example/cancel",
	)
	require.NoError(t, err)

	assert.Equal(t, "https://homologation-webpayment.payline.com/webpayment/?token=1CuBhbvLXKD", result["redirectURL"])
	assert.Equal(t, []gateway.Variant{gateway.Web}, h.variants)
}

func TestCompleteNeedsToken(t *testing.T) {
	h := &harness{client: mocks.NewMockRemoteClient(t)}

	_, err := execute(t, h, "complete")
	require.Error(t, err)
	assert.Empty(t, h.variants)
}

func TestCompleteSendsToken(t *testing.T) {
	h := &harness{client: mocks.NewMockRemoteClient(t)}
	h.client.EXPECT().
		Call(mock.Anything, "getWebPaymentDetails", mock.MatchedBy(func(p *message.Payload) bool {
			return p.Token == "1CuBhbvLXKD"
		})).
		Return(message.Tree{"result": map[string]any{"code": "00000"}}, nil).
		Once()

	result, err := execute(t, h, "complete", "--token", "1CuBhbvLXKD")
	require.NoError(t, err)
	assert.Equal(t, true, result["successful"])
}

func TestTransportErrorIsReturned(t *testing.T) {
	h := &harness{client: mocks.NewMockRemoteClient(t)}
	boom := errors.New("connection refused")
	h.client.EXPECT().
		Call(mock.Anything, mock.Anything, mock.Anything).
		Return(nil, boom).
		Once()

	_, err := execute(t, h, authorizeArgs()...)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, h.released)
}

func TestInvalidDate(t *testing.T) {
	h := &harness{client: mocks.NewMockRemoteClient(t)}

	_, err := execute(t, h, authorizeArgs("--date", "2024-03-09")...)
	assert.ErrorContains(t, err, "invalid --date")
}
