package commerce

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Platform Errors
// ---------------------------------------------------------------------------

var (
	// ErrPlatformUnavailable indicates a network-level failure or timeout
	// talking to the commerce backend.
	ErrPlatformUnavailable = errors.New("commerce: platform temporarily unavailable")
	// ErrPlatformRequestFailed indicates the backend rejected the request
	// with a non-2xx response.
	ErrPlatformRequestFailed = errors.New("commerce: platform request failed")
	// ErrPlatformInvalidResponse indicates the backend answered with a body
	// that could not be parsed.
	ErrPlatformInvalidResponse = errors.New("commerce: invalid platform response")
	// ErrProductNotFound indicates the requested product does not exist.
	ErrProductNotFound = errors.New("commerce: product not found")
	// ErrInvalidProduct indicates a catalog entry that cannot be sold,
	// typically one without a parseable positive price.
	ErrInvalidProduct = errors.New("commerce: invalid catalog product")
)

// ---------------------------------------------------------------------------
// Catalog Types
// ---------------------------------------------------------------------------

// Product is a catalog entry as seen by the storefront.
type Product struct {
	ID               int64
	Name             string
	Price            decimal.Decimal
	ShortDescription string
	ImageURL         string
}

// ---------------------------------------------------------------------------
// Order Types
// ---------------------------------------------------------------------------

// Address holds the identity and address fields the backend expects on an
// order. The storefront collects only name, phone and email; the remaining
// fields are filled with fixed placeholders by the submitter.
type Address struct {
	FirstName string
	LastName  string
	Address1  string
	City      string
	State     string
	Postcode  string
	Country   string
	Email     string
	Phone     string
}

// LineItem references a product by id and quantity only. Prices are not
// resent; the backend prices the order authoritatively.
type LineItem struct {
	ProductID int64
	Quantity  int
}

// OrderRequest is the backend order-creation payload.
type OrderRequest struct {
	PaymentMethod      string
	PaymentMethodTitle string
	SetPaid            bool
	Billing            Address
	Shipping           Address
	LineItems          []LineItem
}

// OrderConfirmation is the backend's acknowledgment of a created order.
type OrderConfirmation struct {
	ID int64
}

// ---------------------------------------------------------------------------
// Platform Interface
// ---------------------------------------------------------------------------

// Platform is the port to the external commerce system of record.
type Platform interface {
	// ListProducts fetches one page of catalog products.
	ListProducts(ctx context.Context, pageSize int) ([]Product, error)

	// GetProduct fetches a single product by its backend id.
	GetProduct(ctx context.Context, productID int64) (*Product, error)

	// CreateOrder submits a new order and returns its backend id.
	CreateOrder(ctx context.Context, order *OrderRequest) (*OrderConfirmation, error)
}
