package soap_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielPopoola/payline-gateway/internal/domain"
	"github.com/DanielPopoola/payline-gateway/internal/infrastructure/soap"
	"github.com/DanielPopoola/payline-gateway/internal/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const authorizationResponse = `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:impl="http://impl.ws.payline.experian.com" xmlns:obj="http://obj.ws.payline.experian.com">
  <soapenv:Body>
    <impl:doAuthorizationResponse>
      <impl:result>
        <obj:code>00000</obj:code>
        <obj:shortMessage>ACCEPTED</obj:shortMessage>
        <obj:longMessage>Transaction approved</obj:longMessage>
      </impl:result>
      <impl:transaction>
        <obj:id>26118120438171</obj:id>
        <obj:isPossibleFraud>0</obj:isPossibleFraud>
        <obj:score xsi:nil="true" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"/>
      </impl:transaction>
      <impl:privateDataList>
        <obj:privateData><obj:key>orderId</obj:key><obj:value>42</obj:value></obj:privateData>
      </impl:privateDataList>
    </impl:doAuthorizationResponse>
  </soapenv:Body>
</soapenv:Envelope>`

const faultResponse = `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <soapenv:Fault>
      <faultcode>soapenv:Server</faultcode>
      <faultstring>Unmarshalling Error</faultstring>
    </soapenv:Fault>
  </soapenv:Body>
</soapenv:Envelope>`

func credentials() domain.GatewayConfig {
	return domain.GatewayConfig{MerchantID: "merchant", AccessKey: "secret", ContractNumber: "1234567"}
}

func samplePayload() *message.Payload {
	return &message.Payload{
		Version: message.APIVersion,
		Payment: &message.Payment{Amount: 30000, Currency: 978, Action: 100, Mode: "CPT", ContractNumber: "1234567"},
		Order:   &message.Order{Ref: "ORDER_42", Amount: 30000, Currency: 978, Date: "09/03/2024 14:05"},
	}
}

func TestClient_Call_Success(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "merchant", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "doAuthorization", r.Header.Get("SOAPAction"))
		assert.Equal(t, soap.ClientVersion, r.Header.Get("version"))
		assert.Contains(t, r.Header.Get("Content-Type"), "text/xml")

		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		_, _ = io.WriteString(w, authorizationResponse)
	}))
	defer server.Close()

	client := soap.NewClient(server.URL, credentials(), time.Second, nil)

	tree, err := client.Call(context.Background(), "doAuthorization", samplePayload())

	require.NoError(t, err)
	assert.Contains(t, gotBody, `<doAuthorizationRequest xmlns="http://impl.ws.payline.experian.com">`)
	assert.Contains(t, gotBody, `<amount>30000</amount>`)
	assert.Contains(t, gotBody, `<contractNumber>1234567</contractNumber>`)
	assert.Contains(t, gotBody, `<date>09/03/2024 14:05</date>`)
	assert.NotContains(t, gotBody, `<card>`)

	resp := message.Interpret(message.KindAuthorize, tree).(*message.AuthorizeResponse)
	assert.True(t, resp.IsSuccessful())

	id, err := resp.TransactionID()
	require.NoError(t, err)
	assert.Equal(t, "26118120438171", id)

	fraud, err := resp.IsPossibleFraud()
	require.NoError(t, err)
	assert.False(t, fraud)

	score, err := tree.String("transaction.score")
	require.NoError(t, err)
	assert.Equal(t, "", score)

	pd, err := resp.PrivateData()
	require.NoError(t, err)
	assert.Equal(t, []domain.PrivateData{{Key: "orderId", Value: "42"}}, pd)
}

func TestClient_Call_Fault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, faultResponse)
	}))
	defer server.Close()

	client := soap.NewClient(server.URL, credentials(), time.Second, nil)

	tree, err := client.Call(context.Background(), "doAuthorization", samplePayload())

	assert.Nil(t, tree)
	transportErr, ok := soap.IsTransportError(err)
	require.True(t, ok)
	assert.True(t, transportErr.Fault)
	assert.Equal(t, "soapenv:Server", transportErr.Code)
	assert.Equal(t, "Unmarshalling Error", transportErr.Message)
	assert.Equal(t, http.StatusInternalServerError, transportErr.StatusCode)
	assert.False(t, transportErr.IsRetryable())
}

func TestClient_Call_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := soap.NewClient(server.URL, credentials(), time.Second, nil)

	_, err := client.Call(context.Background(), "doRefund", samplePayload())

	transportErr, ok := soap.IsTransportError(err)
	require.True(t, ok)
	assert.False(t, transportErr.Fault)
	assert.Equal(t, http.StatusServiceUnavailable, transportErr.StatusCode)
	assert.True(t, transportErr.IsRetryable())
}

func TestClient_Call_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := soap.NewClient(server.URL, credentials(), time.Second, nil)

	_, err := client.Call(context.Background(), "doCredit", samplePayload())

	transportErr, ok := soap.IsTransportError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, transportErr.StatusCode)
	assert.False(t, transportErr.IsRetryable())
}

func TestClient_Call_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = io.WriteString(w, authorizationResponse)
	}))
	defer server.Close()

	client := soap.NewClient(server.URL, credentials(), 50*time.Millisecond, nil)

	_, err := client.Call(context.Background(), "doAuthorization", samplePayload())

	transportErr, ok := soap.IsTransportError(err)
	require.True(t, ok)
	assert.Equal(t, 0, transportErr.StatusCode)
	assert.True(t, transportErr.IsRetryable())
}

func TestClient_Call_Malformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>not soap</html>")
	}))
	defer server.Close()

	client := soap.NewClient(server.URL, credentials(), time.Second, nil)

	_, err := client.Call(context.Background(), "doAuthorization", samplePayload())

	transportErr, ok := soap.IsTransportError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, transportErr.StatusCode)
	assert.Error(t, transportErr.Err)
}

func TestClient_Endpoint(t *testing.T) {
	client := soap.NewClient("https://homologation.payline.com/V4/services/DirectPaymentAPI", credentials(), 0, nil)

	assert.Equal(t, "https://homologation.payline.com/V4/services/DirectPaymentAPI", client.Endpoint())
}
