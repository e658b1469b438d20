package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/tgshop/miniapp-backend/pkg/errors"
	"github.com/tgshop/miniapp-backend/pkg/types"
)

const (
	sendOrderPath               = "/api/send-order"
	responseBodyReadLimit int64 = 1 << 20
)

var errBaseURLRequired = errors.New("relay base url is required")

// Client submits orders to the relay's send-order endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the overall request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient builds a relay client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// SendOrder posts req and decodes the relay's verdict. Any non-success reply
// is returned as a typed error carrying the relay's code and message.
func (c *Client) SendOrder(ctx context.Context, req types.OrderRequest) (*types.OrderResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal order request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendOrderPath, bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDelivery, err, "build order request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDelivery, err, "execute order request")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDelivery, err, "read order response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, relayError(resp.StatusCode, body)
	}

	var out types.OrderResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDelivery, err, "decode order response")
	}
	if !out.Success {
		return nil, relayError(resp.StatusCode, body)
	}
	return &out, nil
}

func relayError(status int, body []byte) error {
	var failure types.ErrorResponse
	if err := json.Unmarshal(body, &failure); err != nil || failure.Error == "" {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > 256 {
			snippet = snippet[:256]
		}
		return pkgerrors.Wrap(pkgerrors.CodeDelivery, fmt.Errorf("status %d: %s", status, snippet), "order relay failed")
	}
	code := pkgerrors.Code(failure.Code)
	if code == "" {
		code = pkgerrors.CodeDelivery
	}
	return pkgerrors.New(code, failure.Error).WithDetails(failure.Fields)
}
