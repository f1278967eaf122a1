// Package soap is the Payline web-service transport: it wraps payloads in a
// SOAP envelope, posts them with basic auth and decodes the response body
// into a message.Tree.
package soap

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/clbanning/mxj/v2"
	"github.com/go-resty/resty/v2"

	"github.com/DanielPopoola/payline-gateway/internal/domain"
	"github.com/DanielPopoola/payline-gateway/internal/message"
)

const (
	EnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
	ServiceNamespace  = "http://impl.ws.payline.experian.com"

	// ClientVersion is sent in the version header of every call.
	ClientVersion = "payline-gateway - WSDL v4.49"

	DefaultTimeout = 5 * time.Second
)

type envelope struct {
	XMLName xml.Name `xml:"http://schemas.xmlsoap.org/soap/envelope/ Envelope"`
	Body    struct {
		Request request
	} `xml:"http://schemas.xmlsoap.org/soap/envelope/ Body"`
}

type request struct {
	XMLName xml.Name
	*message.Payload
}

type Client struct {
	endpoint string
	http     *resty.Client
	logger   *slog.Logger
}

// NewClient builds a transport for endpoint authenticated with the merchant
// credentials of cfg. A zero timeout means DefaultTimeout.
func NewClient(endpoint string, cfg domain.GatewayConfig, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := resty.New().
		SetTimeout(timeout).
		SetBasicAuth(cfg.MerchantID, cfg.AccessKey).
		SetHeader("Content-Type", "text/xml; charset=utf-8").
		SetHeader("version", ClientVersion)

	if cfg.HasProxy() {
		r.SetProxy(proxyURL(cfg.Proxy))
	}

	return &Client{
		endpoint: endpoint,
		http:     r,
		logger:   logger,
	}
}

func proxyURL(p domain.Proxy) string {
	host := p.Host
	if p.Port > 0 {
		host = net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
	}
	u := &url.URL{Scheme: "http", Host: host}
	if p.Login != "" {
		u.User = url.UserPassword(p.Login, p.Password)
	}
	return u.String()
}

// Endpoint is the URL every call is posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Call posts payload as the named SOAP operation and returns the content of
// the response element.
func (c *Client) Call(ctx context.Context, method string, payload *message.Payload) (message.Tree, error) {
	body, err := encode(method, payload)
	if err != nil {
		return nil, fmt.Errorf("error encoding %s request: %w", method, err)
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("SOAPAction", method).
		SetBody(body).
		Post(c.endpoint)
	if err != nil {
		c.logger.Warn("remote call failed",
			"method", method,
			"error", err,
		)
		return nil, &TransportError{Message: "error making request", Err: err}
	}

	c.logger.Debug("remote call completed",
		"method", method,
		"status", resp.StatusCode(),
		"duration", time.Since(start),
	)

	tree, decodeErr := decode(resp.Body())
	if fault, ok := decodeErr.(*TransportError); ok {
		fault.StatusCode = resp.StatusCode()
		return nil, fault
	}

	if resp.IsError() {
		return nil, &TransportError{
			Code:       strconv.Itoa(resp.StatusCode()),
			Message:    resp.Status(),
			StatusCode: resp.StatusCode(),
		}
	}
	if decodeErr != nil {
		return nil, &TransportError{
			Message:    "error decoding response",
			StatusCode: resp.StatusCode(),
			Err:        decodeErr,
		}
	}

	return tree, nil
}

func encode(method string, payload *message.Payload) ([]byte, error) {
	var env envelope
	env.Body.Request = request{
		XMLName: xml.Name{Space: ServiceNamespace, Local: method + "Request"},
		Payload: payload,
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(env); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decode unwraps Envelope/Body and returns the first element inside it. A
// SOAP fault comes back as a *TransportError.
func decode(raw []byte) (message.Tree, error) {
	m, err := mxj.NewMapXml(raw)
	if err != nil {
		return nil, err
	}

	body, err := m.ValueForPath("Envelope.Body")
	if err != nil {
		return nil, fmt.Errorf("response has no SOAP body: %w", err)
	}
	content, ok := normalize(body).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response SOAP body is empty")
	}

	if fault, ok := content["Fault"].(map[string]any); ok {
		code, _ := fault["faultcode"].(string)
		msg, _ := fault["faultstring"].(string)
		return nil, &TransportError{Code: code, Message: msg, Fault: true}
	}

	for _, v := range content {
		if inner, ok := v.(map[string]any); ok {
			return message.Tree(inner), nil
		}
		// an empty response element decodes as ""
		return message.Tree{}, nil
	}
	return nil, fmt.Errorf("response SOAP body is empty")
}

// normalize drops XML attributes from a decoded value and collapses elements
// that only carried text and attributes back into their text.
func normalize(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			if len(k) > 0 && k[0] == '-' {
				continue
			}
			out[k] = normalize(child)
		}
		if text, ok := out["#text"]; ok && len(out) == 1 {
			return text
		}
		if len(out) == 0 {
			return ""
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = normalize(child)
		}
		return out
	}
	return v
}
