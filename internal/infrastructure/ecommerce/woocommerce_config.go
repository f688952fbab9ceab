package ecommerce

import (
	"errors"
	"strings"
	"time"
)

// wooAPIPrefix is the REST API path prefix for the WooCommerce v3 API
const wooAPIPrefix = "/wp-json/wc/v3"

// Errors for WooCommerce configuration
var (
	ErrWooConfigMissingBaseURL        = errors.New("woocommerce: base URL is required")
	ErrWooConfigMissingConsumerKey    = errors.New("woocommerce: consumer key is required")
	ErrWooConfigMissingConsumerSecret = errors.New("woocommerce: consumer secret is required")
)

// WooConfig holds configuration for the WooCommerce REST API
type WooConfig struct {
	// BaseURL is the store root, e.g. https://shop.example.com
	BaseURL string
	// ConsumerKey is the REST API consumer key (ck_...)
	ConsumerKey string
	// ConsumerSecret is the REST API consumer secret (cs_...)
	ConsumerSecret string
	// Timeout is the HTTP request timeout
	Timeout time.Duration
}

// NewWooConfig creates a new WooCommerce configuration with defaults
func NewWooConfig(baseURL, consumerKey, consumerSecret string) *WooConfig {
	return &WooConfig{
		BaseURL:        baseURL,
		ConsumerKey:    consumerKey,
		ConsumerSecret: consumerSecret,
		Timeout:        30 * time.Second,
	}
}

// Validate validates the WooCommerce configuration
func (c *WooConfig) Validate() error {
	if c.BaseURL == "" {
		return ErrWooConfigMissingBaseURL
	}
	if c.ConsumerKey == "" {
		return ErrWooConfigMissingConsumerKey
	}
	if c.ConsumerSecret == "" {
		return ErrWooConfigMissingConsumerSecret
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}
