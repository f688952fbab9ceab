package ecommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/storebot/backend/internal/domain/commerce"
)

// maxResponseSize is the maximum allowed response size from the WooCommerce API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// htmlTagPattern matches HTML tags in product descriptions
var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// WooAdapter implements the commerce.Platform interface for WooCommerce stores
type WooAdapter struct {
	config     *WooConfig
	httpClient *http.Client
}

// NewWooAdapter creates a new WooCommerce adapter with the given configuration
func NewWooAdapter(config *WooConfig) (*WooAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &WooAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// ListProducts retrieves the first page of published products
func (a *WooAdapter) ListProducts(ctx context.Context, pageSize int) ([]commerce.Product, error) {
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(pageSize))

	body, err := a.doRequest(ctx, http.MethodGet, "/products", query, nil)
	if err != nil {
		return nil, err
	}

	var items []wooProduct
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: failed to parse product list: %v", commerce.ErrPlatformInvalidResponse, err)
	}

	products := make([]commerce.Product, 0, len(items))
	for _, item := range items {
		product, err := convertWooProduct(&item)
		if err != nil {
			// A product with an unparsable price cannot be sold; skip it
			continue
		}
		products = append(products, product)
	}

	return products, nil
}

// GetProduct retrieves a single product by its platform ID
func (a *WooAdapter) GetProduct(ctx context.Context, productID int64) (*commerce.Product, error) {
	body, err := a.doRequest(ctx, http.MethodGet, "/products/"+strconv.FormatInt(productID, 10), nil, nil)
	if err != nil {
		return nil, err
	}

	var item wooProduct
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, fmt.Errorf("%w: failed to parse product: %v", commerce.ErrPlatformInvalidResponse, err)
	}

	product, err := convertWooProduct(&item)
	if err != nil {
		return nil, err
	}

	return &product, nil
}

// CreateOrder places an order on the WooCommerce store
func (a *WooAdapter) CreateOrder(ctx context.Context, req *commerce.OrderRequest) (*commerce.OrderConfirmation, error) {
	payload := wooOrderRequest{
		PaymentMethod:      req.PaymentMethod,
		PaymentMethodTitle: req.PaymentMethodTitle,
		SetPaid:            req.SetPaid,
		Billing:            convertWooAddress(&req.Billing),
		Shipping:           convertWooAddress(&req.Shipping),
		LineItems:          make([]wooLineItem, 0, len(req.LineItems)),
	}
	for _, item := range req.LineItems {
		payload.LineItems = append(payload.LineItems, wooLineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("woocommerce: failed to encode order: %w", err)
	}

	body, err := a.doRequest(ctx, http.MethodPost, "/orders", nil, reqBody)
	if err != nil {
		return nil, err
	}

	var resp wooOrderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse order response: %v", commerce.ErrPlatformInvalidResponse, err)
	}
	if resp.ID == 0 {
		return nil, fmt.Errorf("%w: order response missing id", commerce.ErrPlatformInvalidResponse)
	}

	return &commerce.OrderConfirmation{ID: resp.ID}, nil
}

// doRequest performs an HTTP request against the WooCommerce REST API.
// Authentication uses consumer key/secret query parameters, which WooCommerce
// requires for HTTPS stores.
func (a *WooAdapter) doRequest(ctx context.Context, method, path string, query url.Values, body []byte) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("consumer_key", a.config.ConsumerKey)
	query.Set("consumer_secret", a.config.ConsumerSecret)

	endpoint := a.config.BaseURL + wooAPIPrefix + path + "?" + query.Encode()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("woocommerce: failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", commerce.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("woocommerce: failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, commerce.ErrProductNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", commerce.ErrPlatformRequestFailed, resp.StatusCode)
	}

	return respBody, nil
}

// convertWooProduct converts an API product to the domain model
func convertWooProduct(item *wooProduct) (commerce.Product, error) {
	price, err := decimal.NewFromString(item.Price)
	if err != nil {
		return commerce.Product{}, fmt.Errorf("%w: product %d has price %q", commerce.ErrInvalidProduct, item.ID, item.Price)
	}

	product := commerce.Product{
		ID:               item.ID,
		Name:             item.Name,
		Price:            price,
		ShortDescription: stripHTML(item.ShortDescription),
	}
	if len(item.Images) > 0 {
		product.ImageURL = item.Images[0].Src
	}

	return product, nil
}

// convertWooAddress converts a domain address to the API representation
func convertWooAddress(addr *commerce.Address) wooAddress {
	return wooAddress{
		FirstName: addr.FirstName,
		LastName:  addr.LastName,
		Address1:  addr.Address1,
		City:      addr.City,
		State:     addr.State,
		Postcode:  addr.Postcode,
		Country:   addr.Country,
		Email:     addr.Email,
		Phone:     addr.Phone,
	}
}

// stripHTML removes HTML tags from short descriptions so captions render as
// plain text in chat messages
func stripHTML(s string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(s, ""))
}

// Ensure WooAdapter implements the commerce.Platform interface
var _ commerce.Platform = (*WooAdapter)(nil)
