package catalog

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

	"github.com/shopspring/decimal"

	"github.com/tgshop/miniapp-backend/internal/cart"
	pkgerrors "github.com/tgshop/miniapp-backend/pkg/errors"
)

const responseBodyReadLimit int64 = 4 << 20

var errCatalogURLRequired = errors.New("catalog url is required")

// Product is one entry of the shop catalog.
type Product struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	Image       string
	Description string
}

// the product source has shipped both spellings of image and description
type productPayload struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Mage        string          `json:"mage"`
	Description string          `json:"description"`
	Dsc         string          `json:"dsc"`
}

func (p productPayload) product() Product {
	out := Product{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
	}
	if out.Image == "" {
		out.Image = p.Mage
	}
	if out.Description == "" {
		out.Description = p.Dsc
	}
	return out
}

// CartItem converts the product into a cart line with quantity 1.
func (p Product) CartItem() cart.Item {
	return cart.Item{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		Quantity:    1,
	}
}

// ImageURL resolves a relative image name against storageBase. Absolute
// image URLs are returned unchanged.
func (p Product) ImageURL(storageBase string) string {
	if p.Image == "" || strings.HasPrefix(p.Image, "http://") || strings.HasPrefix(p.Image, "https://") {
		return p.Image
	}
	base := strings.TrimRight(strings.TrimSpace(storageBase), "/")
	if base == "" {
		return p.Image
	}
	return base + "/" + strings.TrimLeft(p.Image, "/")
}

// Find returns the product with the given id.
func Find(products []Product, id int64) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Client reads the product list from the shop's product source.
type Client struct {
	httpClient *http.Client
	url        string
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

// NewClient builds a catalog client for the products endpoint at url.
func NewClient(url string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return nil, errCatalogURLRequired
	}
	client := &Client{
		url:        trimmed,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// Products fetches the catalog. The source may answer with a bare array or
// with the array under "data"; any other shape yields an empty list.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build products request")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute products request")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read products response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), "products request failed")
	}
	return decodeProducts(body)
}

func decodeProducts(body []byte) ([]Product, error) {
	trimmed := bytes.TrimSpace(body)

	var payloads []productPayload
	switch {
	case bytes.HasPrefix(trimmed, []byte("[")):
		if err := json.Unmarshal(trimmed, &payloads); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode products response")
		}
	case bytes.HasPrefix(trimmed, []byte("{")):
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode products response")
		}
		data := bytes.TrimSpace(envelope.Data)
		if !bytes.HasPrefix(data, []byte("[")) {
			return []Product{}, nil
		}
		if err := json.Unmarshal(data, &payloads); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode products response")
		}
	default:
		return []Product{}, nil
	}

	products := make([]Product, 0, len(payloads))
	for _, p := range payloads {
		products = append(products, p.product())
	}
	return products, nil
}
