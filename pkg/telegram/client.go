package telegram

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
)

const (
	defaultBaseURL              = "https://api.telegram.org"
	ParseModeMarkdown           = "Markdown"
	responseBodyReadLimit int64 = 64 * 1024
)

var errTokenRequired = errors.New("telegram bot token is required")

// Client wraps the Bot API methods used to notify the shop and its customers.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
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

// WithBaseURL overrides the Bot API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithTimeout bounds each Bot API call.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient builds a Bot API client for the given bot token.
func NewClient(token string, opts ...Option) (*Client, error) {
	trimmedToken := strings.TrimSpace(token)
	if trimmedToken == "" {
		return nil, errTokenRequired
	}

	client := &Client{
		token:      trimmedToken,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// Message is a sendMessage payload.
type Message struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// SendMessage delivers msg and returns the provider's raw JSON reply. The raw
// body is returned on failure too, whenever one was received.
func (c *Client) SendMessage(ctx context.Context, msg Message) (json.RawMessage, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "telegram client not configured")
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDelivery, err, "marshal sendMessage request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL("sendMessage"), bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDelivery, err, "build sendMessage request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDelivery, c.redact(err), "execute sendMessage request")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDelivery, err, "read sendMessage response")
	}
	raw := rawJSON(body)

	var apiResp struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	decodeErr := json.Unmarshal(body, &apiResp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		desc := apiResp.Description
		if desc == "" {
			desc = strings.TrimSpace(string(body))
		}
		return raw, pkgerrors.Wrap(pkgerrors.CodeDelivery, fmt.Errorf("status %d: %s", resp.StatusCode, desc), "sendMessage request failed")
	}
	if decodeErr != nil {
		return raw, pkgerrors.Wrap(pkgerrors.CodeDelivery, decodeErr, "decode sendMessage response")
	}
	if !apiResp.OK {
		return raw, pkgerrors.Wrap(pkgerrors.CodeDelivery, fmt.Errorf("status %d: %s", resp.StatusCode, apiResp.Description), "sendMessage rejected")
	}
	return raw, nil
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", strings.TrimRight(c.baseURL, "/"), c.token, method)
}

// url errors embed the request URL, which carries the token.
func (c *Client) redact(err error) error {
	msg := err.Error()
	if !strings.Contains(msg, c.token) {
		return err
	}
	return errors.New(strings.ReplaceAll(msg, c.token, "<redacted>"))
}

func rawJSON(body []byte) json.RawMessage {
	if len(body) == 0 || !json.Valid(body) {
		return nil
	}
	return json.RawMessage(body)
}
